package tree

import (
	"errors"
	"testing"

	cityerrors "github.com/matzehuels/codecity/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAdd(t *testing.T) {
	tr := New()
	root, err := tr.Add(Node{ID: "root"}, NoParent)
	if err != nil {
		t.Fatalf("Add(root) error: %v", err)
	}
	a, err := tr.Add(Node{ID: "a", Leaf: true, Size: r3.Vec{X: 1, Y: 2, Z: 3}}, root)
	if err != nil {
		t.Fatalf("Add(a) error: %v", err)
	}

	tests := []struct {
		name    string
		node    Node
		parent  NodeID
		wantErr error
	}{
		{"empty id", Node{}, root, ErrInvalidNodeID},
		{"duplicate", Node{ID: "a"}, root, ErrDuplicateNodeID},
		{"unknown parent", Node{ID: "x"}, NodeID(42), ErrUnknownParent},
		{"leaf parent", Node{ID: "y"}, a, ErrLeafParent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tr.Add(tt.node, tt.parent); !errors.Is(err, tt.wantErr) {
				t.Errorf("Add() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := tr.Node(root).Children; len(got) != 1 || got[0] != a {
		t.Errorf("Children(root) = %v, want [%d]", got, a)
	}
	if got := tr.Node(a).Parent; got != root {
		t.Errorf("Parent(a) = %v, want %v", got, root)
	}
	if tr.Node(a).Metrics == nil {
		t.Error("Metrics should never be nil after Add")
	}
}

func TestTryGetNumeric(t *testing.T) {
	n := Node{Metrics: map[string]float64{"loc": 12}}
	if v, ok := n.TryGetNumeric("loc"); !ok || v != 12 {
		t.Errorf("TryGetNumeric(loc) = %v, %v, want 12, true", v, ok)
	}
	if _, ok := n.TryGetNumeric("mcc"); ok {
		t.Error("TryGetNumeric(mcc) should report missing")
	}
}

func TestFromOutline(t *testing.T) {
	tr, err := FromOutline("root{a{a1,a2}, b{b1}, c{c1{c11,c12}, c2}}", r3.Vec{X: 1, Y: 1, Z: 1})
	if err != nil {
		t.Fatalf("FromOutline error: %v", err)
	}
	if tr.Len() != 11 {
		t.Errorf("Len() = %d, want 11", tr.Len())
	}
	c11, ok := tr.Lookup("c11")
	if !ok {
		t.Fatal("c11 not found")
	}
	if got := tr.Level(c11); got != 3 {
		t.Errorf("Level(c11) = %d, want 3", got)
	}
	if !tr.Node(c11).Leaf {
		t.Error("c11 should be a leaf")
	}
	c, _ := tr.Lookup("c")
	var names []string
	for _, id := range tr.Node(c).Children {
		names = append(names, tr.Node(id).ID)
	}
	if len(names) != 2 || names[0] != "c1" || names[1] != "c2" {
		t.Errorf("children of c = %v, want [c1 c2]", names)
	}
}

func TestFromOutlineErrors(t *testing.T) {
	for _, in := range []string{"", "a{b", "a{b}}", "a,a", "a{,}"} {
		if _, err := FromOutline(in, r3.Vec{}); err == nil {
			t.Errorf("FromOutline(%q) = nil error, want error", in)
		}
	}
}

func TestNewForest(t *testing.T) {
	tr, err := FromOutline("root{a{a1,a2},b{b1}}", r3.Vec{X: 1, Y: 1, Z: 1})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := tr.Lookup("a")
	a1, _ := tr.Lookup("a1")
	a2, _ := tr.Lookup("a2")
	b1, _ := tr.Lookup("b1")

	t.Run("subtree", func(t *testing.T) {
		f, err := NewForest(tr, []NodeID{a, a1, a2})
		if err != nil {
			t.Fatal(err)
		}
		if got := f.Roots(); len(got) != 1 || got[0] != a {
			t.Errorf("Roots() = %v, want [%d]", got, a)
		}
		if got := f.Level(a1); got != 1 {
			t.Errorf("Level(a1) = %d, want 1", got)
		}
		if got := f.MaxDepth(); got != 1 {
			t.Errorf("MaxDepth() = %d, want 1", got)
		}
		if got := f.Parent(a); got != NoParent {
			t.Errorf("Parent(a) = %v, want NoParent", got)
		}
	})

	t.Run("leaves form a forest", func(t *testing.T) {
		f, err := NewForest(tr, tr.Leaves())
		if err != nil {
			t.Fatal(err)
		}
		if got := len(f.Roots()); got != 3 {
			t.Errorf("len(Roots()) = %d, want 3", got)
		}
		if _, err := f.Root(); !cityerrors.Is(err, cityerrors.ErrCodeMultipleRoots) {
			t.Errorf("Root() error = %v, want MULTIPLE_ROOTS", err)
		}
		if got := f.Children(b1); len(got) != 0 {
			t.Errorf("Children(b1) = %v, want none", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewForest(tr, nil)
		if !cityerrors.Is(err, cityerrors.ErrCodeNoRoots) {
			t.Errorf("NewForest(nil) error = %v, want NO_ROOTS", err)
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		if _, err := NewForest(tr, []NodeID{a, a}); err == nil {
			t.Error("NewForest with duplicate ids should fail")
		}
	})

	t.Run("post order", func(t *testing.T) {
		f, _ := Whole(tr)
		root, _ := tr.Lookup("root")
		order := f.PostOrder(root)
		if order[len(order)-1] != root {
			t.Errorf("PostOrder should end with root, got %v", order)
		}
		if order[0] != a1 {
			t.Errorf("PostOrder should start with a1, got %v", order)
		}
	})
}
