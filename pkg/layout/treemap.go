package layout

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/geom"
	"github.com/matzehuels/codecity/pkg/tree"
)

// Treemap is the squarified treemap layout. Leaves get an area equal to
// their ground footprint, inner nodes the sum of their children, and the
// root is a square of the total area centred on the origin.
type Treemap struct {
	opts Options
}

// Kind implements [Layout].
func (*Treemap) Kind() Kind { return KindTreemap }

// IsHierarchical implements [Layout].
func (*Treemap) IsHierarchical() bool { return true }

// Layout implements [Layout].
func (l *Treemap) Layout(t *tree.Tree, ids []tree.NodeID) (Result, error) {
	f, err := tree.NewForest(t, ids)
	if err != nil {
		return nil, err
	}
	if res, ok := single(f); ok {
		return res, nil
	}

	area := make(map[tree.NodeID]float64, f.Len())
	var total float64
	for _, r := range f.Roots() {
		for _, id := range f.PostOrder(r) {
			area[id] = l.area(f, id, area)
		}
		total += area[r]
	}

	side := math.Sqrt(total)
	square := geom.Rect{X: -side / 2, Z: -side / 2, Width: side, Depth: side}
	res := make(Result, f.Len())

	roots := f.Roots()
	if len(roots) == 1 {
		l.place(f, roots[0], square, area, res)
	} else {
		// Several roots behave like children of an implicit super-root.
		rects := Squarify(areasOf(roots, area), square, l.opts.Padding)
		for i, r := range roots {
			l.place(f, r, rects[i], area, res)
		}
	}
	stack(f, res)

	l.opts.logger().Debug("treemap layout", "forest", f, "side", side)
	return res, nil
}

func (l *Treemap) area(f *tree.Forest, id tree.NodeID, known map[tree.NodeID]float64) float64 {
	kids := f.Children(id)
	if f.IsLeaf(id) || len(kids) == 0 {
		w, d := footprint(f.Node(id))
		return w * d
	}
	var sum float64
	for _, c := range kids {
		sum += known[c]
	}
	return sum
}

func (l *Treemap) place(f *tree.Forest, id tree.NodeID, rect geom.Rect, area map[tree.NodeID]float64, res Result) {
	cx, cz := rect.Center()
	res[id] = geom.Transform{
		Position: r3.Vec{X: cx, Z: cz},
		Scale:    r3.Vec{X: rect.Width, Y: height(f.Node(id), l.opts), Z: rect.Depth},
	}
	kids := f.Children(id)
	if len(kids) == 0 {
		return
	}
	rects := Squarify(areasOf(kids, area), rect, l.opts.Padding)
	for i, c := range kids {
		l.place(f, c, rects[i], area, res)
	}
}

func areasOf(ids []tree.NodeID, area map[tree.NodeID]float64) []float64 {
	out := make([]float64, len(ids))
	for i, id := range ids {
		out[i] = area[id]
	}
	return out
}

// Squarify divides bounds into one rectangle per size, with areas
// proportional to the sizes, and returns them in input order.
//
// Sizes are sorted descending (stable). Rows are grown greedily while the
// worst aspect ratio of the row does not increase and are laid along the
// shorter side of the remaining space; on a tie the row spans z. Each result
// is then shrunk by padding on every side when it is large enough. Sizes
// <= 0 get a degenerate rectangle at the corner of the space left over.
func Squarify(sizes []float64, bounds geom.Rect, padding float64) []geom.Rect {
	out := make([]geom.Rect, len(sizes))
	if len(sizes) == 0 {
		return out
	}

	var total float64
	for _, s := range sizes {
		if s > 0 {
			total += s
		}
	}
	order := make([]int, 0, len(sizes))
	for i, s := range sizes {
		if s > 0 {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return sizes[order[a]] > sizes[order[b]] })

	areas := make([]float64, len(sizes))
	if total > 0 {
		for _, i := range order {
			areas[i] = sizes[i] / total * bounds.Area()
		}
	}

	free := bounds
	for start := 0; start < len(order); {
		alongZ := free.Depth <= free.Width
		side := free.Width
		if alongZ {
			side = free.Depth
		}

		end := start + 1
		sum := areas[order[start]]
		worstSoFar := worst(areas, order[start:end], sum, side)
		for end < len(order) {
			next := sum + areas[order[end]]
			w := worst(areas, order[start:end+1], next, side)
			if w > worstSoFar {
				break
			}
			sum, worstSoFar = next, w
			end++
		}

		thick := 0.0
		if side > 0 {
			thick = sum / side
		}
		offset := 0.0
		for _, i := range order[start:end] {
			length := 0.0
			if thick > 0 {
				length = areas[i] / thick
			}
			if alongZ {
				out[i] = geom.Rect{X: free.X, Z: free.Z + offset, Width: thick, Depth: length}
			} else {
				out[i] = geom.Rect{X: free.X + offset, Z: free.Z, Width: length, Depth: thick}
			}
			offset += length
		}
		if alongZ {
			free = geom.Rect{X: free.X + thick, Z: free.Z, Width: math.Max(0, free.Width-thick), Depth: free.Depth}
		} else {
			free = geom.Rect{X: free.X, Z: free.Z + thick, Width: free.Width, Depth: math.Max(0, free.Depth-thick)}
		}
		start = end
	}

	for i, s := range sizes {
		if s > 0 {
			out[i] = out[i].Shrink(padding)
		} else {
			out[i] = geom.Rect{X: free.X, Z: free.Z}
		}
	}
	return out
}

// worst returns the largest aspect ratio of a row with the given total laid
// along side.
func worst(areas []float64, row []int, sum, side float64) float64 {
	if sum <= 0 || side <= 0 {
		return math.Inf(1)
	}
	lo, hi := math.Inf(1), 0.0
	for _, i := range row {
		lo = math.Min(lo, areas[i])
		hi = math.Max(hi, areas[i])
	}
	s2, w2 := sum*sum, side*side
	return math.Max(w2*hi/s2, s2/(w2*lo))
}
