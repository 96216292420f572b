package layout

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/geom"
	"github.com/matzehuels/codecity/pkg/tree"
)

// RectPacker packs leaf footprints into a compact, roughly square area. It
// accepts leaves only.
//
// Nodes are placed largest area first. A free cell that fits the node
// without growing the covered area (a preserver) is preferred, choosing the
// one that wastes least; otherwise the cell whose use keeps the covered area
// closest to a square (an expander) wins.
type RectPacker struct {
	opts Options
}

// Kind implements [Layout].
func (*RectPacker) Kind() Kind { return KindRectPacker }

// IsHierarchical implements [Layout].
func (*RectPacker) IsHierarchical() bool { return false }

// Layout implements [Layout].
func (l *RectPacker) Layout(t *tree.Tree, ids []tree.NodeID) (Result, error) {
	if err := requireLeaves(t, ids, KindRectPacker); err != nil {
		return nil, err
	}
	f, err := tree.NewForest(t, ids)
	if err != nil {
		return nil, err
	}
	if res, ok := single(f); ok {
		return res, nil
	}

	type item struct {
		id   tree.NodeID
		w, d float64
	}
	items := make([]item, 0, f.Len())
	var sumW, sumD float64
	for _, id := range f.IDs() {
		w, d := footprint(f.Node(id))
		it := item{id: id, w: w + l.opts.Padding, d: d + l.opts.Padding}
		items = append(items, it)
		sumW += it.w
		sumD += it.d
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].w*items[a].d > items[b].w*items[b].d })

	pt := NewPTree(sumW, sumD)
	var coverW, coverD float64
	cells := make(map[tree.NodeID]geom.Rect, len(items))
	for _, it := range items {
		n := l.choose(pt, it.w, it.d, coverW, coverD)
		if n == nil {
			return nil, errors.New(errors.ErrCodeInternal, "no free cell for node %q", f.Node(it.id).ID)
		}
		cell := pt.Split(n, it.w, it.d)
		cells[it.id] = cell
		coverW = math.Max(coverW, cell.MaxX())
		coverD = math.Max(coverD, cell.MaxZ())
	}

	res := make(Result, len(cells))
	for id, cell := range cells {
		n := f.Node(id)
		w, d := footprint(n)
		cx, cz := cell.Center()
		res[id] = geom.Transform{
			Position: r3.Vec{X: cx - coverW/2, Z: cz - coverD/2},
			Scale:    r3.Vec{X: w, Y: height(n, l.opts), Z: d},
		}
	}

	l.opts.logger().Debug("rectangle packer layout", "nodes", len(res), "width", coverW, "depth", coverD)
	return res, nil
}

// choose picks the free leaf for a w×d cell given the covered area so far.
func (l *RectPacker) choose(pt *PTree, w, d, coverW, coverD float64) *PNode {
	var (
		preserver *PNode
		waste     = math.Inf(1)
		expander  *PNode
		ratio     = math.Inf(1)
	)
	for _, n := range pt.FreeLeaves() {
		if !n.Fits(w, d) {
			continue
		}
		newW := math.Max(coverW, n.Rect.X+w)
		newD := math.Max(coverD, n.Rect.Z+d)
		if newW <= coverW && newD <= coverD {
			if wst := n.Rect.Area() - w*d; wst < waste {
				preserver, waste = n, wst
			}
			continue
		}
		if r := squareness(newW, newD); r < ratio {
			expander, ratio = n, r
		}
	}
	if preserver != nil {
		return preserver
	}
	return expander
}

// squareness returns how far a w×d box is from a square, 1 being a square.
func squareness(w, d float64) float64 {
	if w <= 0 || d <= 0 {
		return math.Inf(1)
	}
	return math.Max(w/d, d/w)
}
