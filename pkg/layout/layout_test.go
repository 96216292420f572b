package layout

import (
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
	"pgregory.net/rapid"

	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/geom"
	"github.com/matzehuels/codecity/pkg/tree"
)

var unit = r3.Vec{X: 1, Y: 1, Z: 1}

// fataler is the part of testing.T and rapid.T the helpers need.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func mustOutline(t fataler, outline string) *tree.Tree {
	t.Helper()
	tr, err := tree.FromOutline(outline, unit)
	if err != nil {
		t.Fatalf("FromOutline: %v", err)
	}
	return tr
}

func mustNew(t fataler, kind Kind, opts Options) Layout {
	t.Helper()
	l, err := New(kind, opts)
	if err != nil {
		t.Fatalf("New(%s): %v", kind, err)
	}
	return l
}

// input returns the handles a layout of the given kind is fed with.
func input(tr *tree.Tree, l Layout) []tree.NodeID {
	if l.IsHierarchical() {
		return tr.IDs()
	}
	return tr.Leaves()
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"treemap", KindTreemap, false},
		{"Balloon", KindBalloon, false},
		{" evostreets ", KindEvoStreets, false},
		{"circlepacking", KindCirclePacking, false},
		{"rectpacker", KindRectPacker, false},
		{"manhattan", KindManhattan, false},
		{"spiral", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidLayout) {
			t.Errorf("ParseKind(%q) error code = %s, want INVALID_LAYOUT", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	for _, k := range Kinds {
		l := mustNew(t, k, Options{})
		if l.Kind() != k {
			t.Errorf("New(%s).Kind() = %s", k, l.Kind())
		}
		wantFlat := k == KindRectPacker || k == KindManhattan
		if l.IsHierarchical() == wantFlat {
			t.Errorf("New(%s).IsHierarchical() = %v, want %v", k, l.IsHierarchical(), !wantFlat)
		}
	}

	if _, err := New("spiral", Options{}); !errors.Is(err, errors.ErrCodeInvalidLayout) {
		t.Errorf("New(spiral) error = %v, want INVALID_LAYOUT", err)
	}
	for _, opts := range []Options{{Padding: -1}, {InnerHeight: math.NaN()}, {StreetWidth: math.Inf(1)}} {
		if _, err := New(KindTreemap, opts); !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("New(%+v) error = %v, want INVALID_ARGUMENT", opts, err)
		}
	}
}

func TestLayoutNoRoots(t *testing.T) {
	tr := mustOutline(t, "r{a,b}")
	for _, k := range Kinds {
		_, err := mustNew(t, k, Options{}).Layout(tr, nil)
		if !errors.Is(err, errors.ErrCodeNoRoots) {
			t.Errorf("%s: Layout(empty) error = %v, want NO_ROOTS", k, err)
		}
	}
}

func TestLayoutSingleNode(t *testing.T) {
	tr := tree.New()
	size := r3.Vec{X: 2, Y: 3, Z: 4}
	id, err := tr.Add(tree.Node{ID: "only", Leaf: true, Size: size}, tree.NoParent)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	for _, k := range Kinds {
		res, err := mustNew(t, k, Options{Padding: 1}).Layout(tr, []tree.NodeID{id})
		if err != nil {
			t.Fatalf("%s: Layout: %v", k, err)
		}
		want := geom.Transform{Scale: size}
		if got := res[id]; got != want {
			t.Errorf("%s: single node = %+v, want %+v", k, got, want)
		}
	}
}

func TestFlatLayoutsRejectInnerNodes(t *testing.T) {
	tr := mustOutline(t, "r{a,b}")
	for _, k := range []Kind{KindRectPacker, KindManhattan} {
		_, err := mustNew(t, k, Options{}).Layout(tr, tr.IDs())
		if !errors.Is(err, errors.ErrCodeUnsupportedShape) {
			t.Errorf("%s: Layout(with inner) error = %v, want UNSUPPORTED_SHAPE", k, err)
		}
	}
}

func TestLayoutUnknownHandle(t *testing.T) {
	tr := mustOutline(t, "r{a}")
	for _, k := range Kinds {
		_, err := mustNew(t, k, Options{}).Layout(tr, []tree.NodeID{99})
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("%s: Layout(unknown) error = %v, want INVALID_INPUT", k, err)
		}
	}
}

func TestHierarchicalStacking(t *testing.T) {
	tr := mustOutline(t, "root{a{a1,a2},b{b1},c{c1{c11,c12},c2}}")
	f, err := tree.Whole(tr)
	if err != nil {
		t.Fatalf("Whole: %v", err)
	}
	for _, k := range []Kind{KindTreemap, KindCirclePacking, KindBalloon, KindEvoStreets} {
		res, err := mustNew(t, k, Options{Padding: 0.2, InnerHeight: 0.5, StreetWidth: 1}).Layout(tr, tr.IDs())
		if err != nil {
			t.Fatalf("%s: Layout: %v", k, err)
		}
		for _, id := range tr.IDs() {
			p := f.Parent(id)
			if p == tree.NoParent {
				if y := res[id].Position.Y; y != 0 {
					t.Errorf("%s: root Y = %v, want 0", k, y)
				}
				continue
			}
			if got, want := res[id].Position.Y, res[p].Top(); math.Abs(got-want) > 1e-9 {
				t.Errorf("%s: %s Y = %v, want %v", k, tr.Node(id).ID, got, want)
			}
		}
	}
}

func TestLayoutIdempotent(t *testing.T) {
	tr := mustOutline(t, "root{a{a1,a2},b{b1},c{c1{c11,c12},c2}}")
	for _, k := range Kinds {
		l := mustNew(t, k, Options{Padding: 0.1, InnerHeight: 0.1, StreetWidth: 1})
		first, err := l.Layout(tr, input(tr, l))
		if err != nil {
			t.Fatalf("%s: Layout: %v", k, err)
		}
		second, err := l.Layout(tr, input(tr, l))
		if err != nil {
			t.Fatalf("%s: Layout: %v", k, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: repeated layouts differ", k)
		}
	}
}

func TestSubsetLayout(t *testing.T) {
	tr := mustOutline(t, "root{a{a1,a2},b{b1}}")
	a, _ := tr.Lookup("a")
	a1, _ := tr.Lookup("a1")
	a2, _ := tr.Lookup("a2")
	res, err := mustNew(t, KindTreemap, Options{}).Layout(tr, []tree.NodeID{a, a1, a2})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(res) != 3 {
		t.Fatalf("len(result) = %d, want 3", len(res))
	}
	if got := res[a].Scale; math.Abs(got.X*got.Z-2) > 1e-9 {
		t.Errorf("subset root area = %v, want 2", got.X*got.Z)
	}
}

// ============================================================================
// Property tests
// ============================================================================

// drawTree builds a random forest with 1 to 3 roots and leaf sizes in
// [0.1, 5].
func drawTree(t *rapid.T) *tree.Tree {
	tr := tree.New()
	var inner []tree.NodeID
	roots := rapid.IntRange(1, 3).Draw(t, "roots")
	for i := 0; i < roots; i++ {
		id, err := tr.Add(tree.Node{ID: "root" + string(rune('a'+i))}, tree.NoParent)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		inner = append(inner, id)
	}
	n := rapid.IntRange(1, 30).Draw(t, "nodes")
	for i := 0; i < n; i++ {
		parent := rapid.SampledFrom(inner).Draw(t, "parent")
		leaf := i == n-1 || rapid.Bool().Draw(t, "leaf")
		node := tree.Node{ID: "n" + itoa(i), Leaf: leaf}
		if leaf {
			node.Size = r3.Vec{
				X: rapid.Float64Range(0.1, 5).Draw(t, "w"),
				Y: rapid.Float64Range(0.1, 10).Draw(t, "h"),
				Z: rapid.Float64Range(0.1, 5).Draw(t, "d"),
			}
		}
		id, err := tr.Add(node, parent)
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if !leaf {
			inner = append(inner, id)
		}
	}
	return tr
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return itoa(i/10) + string(rune('0'+i%10))
}

func circular(k Kind) bool { return k == KindBalloon || k == KindCirclePacking }

// disc returns the disc a node occupies in a circular layout.
func disc(tr *tree.Tree, id tree.NodeID, x geom.Transform) geom.Circle {
	c := geom.Circle{Center: r2.Vec{X: x.Position.X, Y: x.Position.Z}}
	if tr.Node(id).Leaf {
		c.Radius = geom.HalfDiagonal(x.Scale.X, x.Scale.Z)
	} else {
		c.Radius = x.Scale.X / 2
	}
	return c
}

func checkSiblings(t *rapid.T, k Kind, tr *tree.Tree, res Result, sibs []tree.NodeID) {
	for i := 0; i < len(sibs); i++ {
		for j := i + 1; j < len(sibs); j++ {
			a, b := sibs[i], sibs[j]
			if circular(k) {
				if disc(tr, a, res[a]).Overlaps(disc(tr, b, res[b]), 0.01) {
					t.Fatalf("%s: discs of %s and %s overlap", k, tr.Node(a).ID, tr.Node(b).ID)
				}
				continue
			}
			if res[a].Footprint().Overlaps(res[b].Footprint(), 1e-6) {
				t.Fatalf("%s: footprints of %s %+v and %s %+v overlap", k, tr.Node(a).ID, res[a].Footprint(), tr.Node(b).ID, res[b].Footprint())
			}
		}
	}
}

func TestLayoutProperties(t *testing.T) {
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				tr := drawTree(rt)
				opts := Options{
					Padding:     rapid.Float64Range(0, 0.5).Draw(rt, "padding"),
					InnerHeight: 0.1,
					StreetWidth: rapid.Float64Range(0.1, 2).Draw(rt, "street"),
				}
				l := mustNew(rt, k, opts)
				ids := input(tr, l)
				res, err := l.Layout(tr, ids)
				if err != nil {
					rt.Fatalf("Layout: %v", err)
				}
				if len(res) != len(ids) {
					rt.Fatalf("len(result) = %d, want %d", len(res), len(ids))
				}
				for id, x := range res {
					if x.Rotation < 0 || x.Rotation >= 360 {
						rt.Fatalf("%s: rotation %v out of range", tr.Node(id).ID, x.Rotation)
					}
					for _, v := range []float64{x.Position.X, x.Position.Y, x.Position.Z, x.Scale.X, x.Scale.Y, x.Scale.Z} {
						if math.IsNaN(v) || math.IsInf(v, 0) {
							rt.Fatalf("%s: non-finite transform %+v", tr.Node(id).ID, x)
						}
					}
				}

				f, err := tree.NewForest(tr, ids)
				if err != nil {
					rt.Fatalf("NewForest: %v", err)
				}
				checkSiblings(rt, k, tr, res, f.Roots())
				for _, id := range f.InnerNodes() {
					checkSiblings(rt, k, tr, res, f.Children(id))
				}

				if !circular(k) {
					return
				}
				for _, id := range f.IDs() {
					p := f.Parent(id)
					if p == tree.NoParent {
						continue
					}
					outer, in := disc(tr, p, res[p]), disc(tr, id, res[id])
					if !outer.Contains(in, 1e-6*math.Max(1, outer.Radius)) {
						rt.Fatalf("%s: %s %+v escapes parent %s %+v", k, tr.Node(id).ID, in, tr.Node(p).ID, outer)
					}
				}
			})
		})
	}
}
