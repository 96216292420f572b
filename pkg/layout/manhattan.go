package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/geom"
	"github.com/matzehuels/codecity/pkg/tree"
)

// Manhattan places leaves on a uniform grid, row by row, with
// ceil(sqrt(n)) columns. Every cell is as large as the largest padded
// footprint. It accepts leaves only.
type Manhattan struct {
	opts Options
}

// Kind implements [Layout].
func (*Manhattan) Kind() Kind { return KindManhattan }

// IsHierarchical implements [Layout].
func (*Manhattan) IsHierarchical() bool { return false }

// Layout implements [Layout].
func (l *Manhattan) Layout(t *tree.Tree, ids []tree.NodeID) (Result, error) {
	if err := requireLeaves(t, ids, KindManhattan); err != nil {
		return nil, err
	}
	f, err := tree.NewForest(t, ids)
	if err != nil {
		return nil, err
	}
	if res, ok := single(f); ok {
		return res, nil
	}

	var cellW, cellD float64
	for _, id := range f.IDs() {
		w, d := footprint(f.Node(id))
		cellW = math.Max(cellW, w+l.opts.Padding)
		cellD = math.Max(cellD, d+l.opts.Padding)
	}

	n := f.Len()
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + cols - 1) / cols
	x0 := -float64(cols) * cellW / 2
	z0 := -float64(rows) * cellD / 2

	res := make(Result, n)
	for i, id := range f.IDs() {
		node := f.Node(id)
		w, d := footprint(node)
		col, row := i%cols, i/cols
		res[id] = geom.Transform{
			Position: r3.Vec{X: x0 + (float64(col)+0.5)*cellW, Z: z0 + (float64(row)+0.5)*cellD},
			Scale:    r3.Vec{X: w, Y: height(node, l.opts), Z: d},
		}
	}

	l.opts.logger().Debug("manhattan layout", "nodes", n, "columns", cols)
	return res, nil
}
