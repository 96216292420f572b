package lca

import (
	"reflect"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/tree"
)

func build(t *testing.T, outline string) (*tree.Tree, *Finder) {
	t.Helper()
	tr, err := tree.FromOutline(outline, r3.Vec{X: 1, Y: 1, Z: 1})
	if err != nil {
		t.Fatalf("FromOutline: %v", err)
	}
	f, err := tree.Whole(tr)
	if err != nil {
		t.Fatalf("Whole: %v", err)
	}
	return tr, New(f)
}

func id(t *testing.T, tr *tree.Tree, name string) tree.NodeID {
	t.Helper()
	n, ok := tr.Lookup(name)
	if !ok {
		t.Fatalf("node %q not found", name)
	}
	return n
}

func TestLCA(t *testing.T) {
	tr, fd := build(t, "root{a{a1,a2},b{b1},c{c1{c11,c12},c2}}")

	tests := []struct {
		a, b, want string
	}{
		{"a1", "a2", "a"},
		{"a1", "b1", "root"},
		{"c11", "c12", "c1"},
		{"c11", "c2", "c"},
		{"c12", "a2", "root"},
		{"c1", "c11", "c1"},
		{"b1", "b1", "b1"},
		{"root", "c12", "root"},
	}
	for _, tt := range tests {
		got, ok := fd.LCA(id(t, tr, tt.a), id(t, tr, tt.b))
		if !ok {
			t.Errorf("LCA(%s, %s) reported no ancestor", tt.a, tt.b)
			continue
		}
		if name := tr.Node(got).ID; name != tt.want {
			t.Errorf("LCA(%s, %s) = %s, want %s", tt.a, tt.b, name, tt.want)
		}
		// Symmetric.
		if back, _ := fd.LCA(id(t, tr, tt.b), id(t, tr, tt.a)); back != got {
			t.Errorf("LCA(%s, %s) = %d, want %d", tt.b, tt.a, back, got)
		}
	}
}

func TestLCAForest(t *testing.T) {
	tr, fd := build(t, "x{x1,x2},y{y1}")

	if _, ok := fd.LCA(id(t, tr, "x1"), id(t, tr, "y1")); ok {
		t.Error("LCA across trees reported an ancestor")
	}
	if got, ok := fd.LCA(id(t, tr, "x1"), id(t, tr, "x2")); !ok || tr.Node(got).ID != "x" {
		t.Errorf("LCA(x1, x2) = %d, %v, want x", got, ok)
	}
	if _, ok := fd.Path(id(t, tr, "x2"), id(t, tr, "y1")); ok {
		t.Error("Path across trees reported a path")
	}
}

func TestLCANonMember(t *testing.T) {
	tr, err := tree.FromOutline("r{a,b{b1}}", r3.Vec{X: 1, Y: 1, Z: 1})
	if err != nil {
		t.Fatalf("FromOutline: %v", err)
	}
	b, _ := tr.Lookup("b")
	b1, _ := tr.Lookup("b1")
	a, _ := tr.Lookup("a")
	f, err := tree.NewForest(tr, []tree.NodeID{b, b1})
	if err != nil {
		t.Fatalf("NewForest: %v", err)
	}
	fd := New(f)
	if _, ok := fd.LCA(a, b1); ok {
		t.Error("LCA with a non-member reported an ancestor")
	}
	if got := fd.Level(a); got != -1 {
		t.Errorf("Level(non-member) = %d, want -1", got)
	}
	if got, ok := fd.LCA(b1, b1); !ok || got != b1 {
		t.Errorf("LCA(b1, b1) = %d, %v, want %d", got, ok, b1)
	}
}

func TestPath(t *testing.T) {
	tr, fd := build(t, "root{a{a1,a2},b{b1},c{c1{c11,c12},c2}}")

	tests := []struct {
		a, b string
		want []string
	}{
		{"a1", "a2", []string{"a1", "a", "a2"}},
		{"c11", "b1", []string{"c11", "c1", "c", "root", "b", "b1"}},
		{"c2", "c2", []string{"c2"}},
		{"c1", "c12", []string{"c1", "c12"}},
	}
	for _, tt := range tests {
		path, ok := fd.Path(id(t, tr, tt.a), id(t, tr, tt.b))
		if !ok {
			t.Errorf("Path(%s, %s) reported no ancestor", tt.a, tt.b)
			continue
		}
		got := make([]string, len(path))
		for i, n := range path {
			got[i] = tr.Node(n).ID
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Path(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDepthAndLevel(t *testing.T) {
	tr, fd := build(t, "root{a{a1,a2},b{b1},c{c1{c11,c12},c2}}")
	if got := fd.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
	for name, want := range map[string]int{"root": 0, "b": 1, "c1": 2, "c12": 3} {
		if got := fd.Level(id(t, tr, name)); got != want {
			t.Errorf("Level(%s) = %d, want %d", name, got, want)
		}
	}
}

func TestLCADeepChain(t *testing.T) {
	tr := tree.New()
	parent := tree.NoParent
	var ids []tree.NodeID
	for i := 0; i < 100; i++ {
		n, err := tr.Add(tree.Node{ID: string(rune('A'+i%26)) + string(rune('0'+i/26))}, parent)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		ids = append(ids, n)
		parent = n
	}
	leaf, err := tr.Add(tree.Node{ID: "leaf", Leaf: true}, ids[49])
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	f, err := tree.Whole(tr)
	if err != nil {
		t.Fatalf("Whole: %v", err)
	}
	fd := New(f)
	if got, ok := fd.LCA(ids[99], leaf); !ok || got != ids[49] {
		t.Errorf("LCA(deep, leaf) = %d, %v, want %d", got, ok, ids[49])
	}
	if got, ok := fd.LCA(ids[99], ids[7]); !ok || got != ids[7] {
		t.Errorf("LCA(deep, ancestor) = %d, %v, want %d", got, ok, ids[7])
	}
}
