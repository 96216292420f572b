package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/circlepack"
	"github.com/matzehuels/codecity/pkg/geom"
	"github.com/matzehuels/codecity/pkg/tree"
)

// minRadius keeps zero-sized nodes packable.
const minRadius = 1e-6

// CirclePacking nests every node's children inside its disc. Leaves keep
// their rectangular footprint inside a disc of half their diagonal; inner
// nodes become discs around their packed children.
type CirclePacking struct {
	opts Options
}

// Kind implements [Layout].
func (*CirclePacking) Kind() Kind { return KindCirclePacking }

// IsHierarchical implements [Layout].
func (*CirclePacking) IsHierarchical() bool { return true }

// Layout implements [Layout].
func (l *CirclePacking) Layout(t *tree.Tree, ids []tree.NodeID) (Result, error) {
	f, err := tree.NewForest(t, ids)
	if err != nil {
		return nil, err
	}
	if res, ok := single(f); ok {
		return res, nil
	}

	radius := make(map[tree.NodeID]float64, f.Len())
	offset := make(map[tree.NodeID]r2.Vec, f.Len())
	for _, r := range f.Roots() {
		for _, id := range f.PostOrder(r) {
			kids := f.Children(id)
			if len(kids) == 0 {
				w, d := footprint(f.Node(id))
				radius[id] = geom.HalfDiagonal(w, d)
				continue
			}
			centers, outer, err := packDiscs(kids, radius, l.opts.Padding)
			if err != nil {
				return nil, err
			}
			for i, c := range kids {
				offset[c] = centers[i]
			}
			radius[id] = outer
		}
	}

	roots := f.Roots()
	if len(roots) > 1 {
		centers, _, err := packDiscs(roots, radius, l.opts.Padding)
		if err != nil {
			return nil, err
		}
		for i, r := range roots {
			offset[r] = centers[i]
		}
	}

	res := make(Result, f.Len())
	var place func(id tree.NodeID, center r2.Vec)
	place = func(id tree.NodeID, center r2.Vec) {
		n := f.Node(id)
		var scale r3.Vec
		if !n.Leaf {
			d := 2 * radius[id]
			scale = r3.Vec{X: d, Y: height(n, l.opts), Z: d}
		} else {
			w, dd := footprint(n)
			scale = r3.Vec{X: w, Y: height(n, l.opts), Z: dd}
		}
		res[id] = geom.Transform{Position: r3.Vec{X: center.X, Z: center.Y}, Scale: scale}
		for _, c := range f.Children(id) {
			place(c, r2.Add(center, offset[c]))
		}
	}
	for _, r := range roots {
		place(r, offset[r])
	}
	stack(f, res)

	l.opts.logger().Debug("circle packing layout", "forest", f)
	return res, nil
}

// packDiscs packs the discs of ids, each grown by padding, and returns their
// centres relative to the enclosing centre together with the enclosing radius.
func packDiscs(ids []tree.NodeID, radius map[tree.NodeID]float64, padding float64) ([]r2.Vec, float64, error) {
	cs := make([]geom.Circle, len(ids))
	for i, id := range ids {
		cs[i].Radius = math.Max(radius[id]+padding, minRadius)
	}
	circlepack.PlaceOnRing(cs, 1)
	outer, err := circlepack.Pack(cs)
	if err != nil {
		return nil, 0, err
	}
	centers := make([]r2.Vec, len(cs))
	for i, c := range cs {
		centers[i] = c.Center
	}
	return centers, outer, nil
}
