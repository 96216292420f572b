package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/geom"
	"github.com/matzehuels/codecity/pkg/tree"
)

// Balloon is the disc-tree layout: the children of a node sit on a ring
// around its centre, and the node's disc covers the ring.
//
// Each child claims the angular wedge it subtends from the parent centre,
// asin(r/ρ) on both sides; the wedges never overlap, so neither do the
// children. Angular slack is spread evenly between them.
type Balloon struct {
	opts Options
}

// Kind implements [Layout].
func (*Balloon) Kind() Kind { return KindBalloon }

// IsHierarchical implements [Layout].
func (*Balloon) IsHierarchical() bool { return true }

type balloonDisc struct {
	rad    float64 // Radius of the child ring's inner bound
	outRad float64 // Radius of the disc covering the subtree
	ring   float64 // Distance of child centres from the node centre
}

// Layout implements [Layout].
func (l *Balloon) Layout(t *tree.Tree, ids []tree.NodeID) (Result, error) {
	f, err := tree.NewForest(t, ids)
	if err != nil {
		return nil, err
	}
	if res, ok := single(f); ok {
		return res, nil
	}

	discs := make(map[tree.NodeID]balloonDisc, f.Len())
	for _, r := range f.Roots() {
		for _, id := range f.PostOrder(r) {
			discs[id] = l.calculateRadius(f, id, discs)
		}
	}

	res := make(Result, f.Len())
	roots := f.Roots()
	var width float64
	for _, r := range roots {
		width += 2 * discs[r].outRad
	}
	width += l.opts.Padding * float64(len(roots)-1)

	x := -width / 2
	for _, r := range roots {
		out := discs[r].outRad
		l.drawCircles(f, r, r2.Vec{X: x + out}, discs, res)
		x += 2*out + l.opts.Padding
	}
	stack(f, res)

	l.opts.logger().Debug("balloon layout", "forest", f, "roots", len(roots))
	return res, nil
}

// calculateRadius derives the disc of id from the discs of its children.
func (l *Balloon) calculateRadius(f *tree.Forest, id tree.NodeID, discs map[tree.NodeID]balloonDisc) balloonDisc {
	kids := f.Children(id)
	if len(kids) == 0 {
		w, d := footprint(f.Node(id))
		r := geom.HalfDiagonal(w, d)
		return balloonDisc{rad: r, outRad: r}
	}
	if len(kids) == 1 {
		r := discs[kids[0]].outRad
		return balloonDisc{rad: r, outRad: r + l.opts.Padding}
	}

	var sum, largest float64
	for _, c := range kids {
		r := discs[c].outRad
		sum += r
		largest = math.Max(largest, r)
	}
	// Wedges of asin(r/ρ) fit into a full turn once ρ >= sum/2.
	rad := math.Max(largest, sum/2)
	ring := rad + math.Min(l.opts.Padding, largest)
	return balloonDisc{rad: rad, outRad: rad + 2*largest, ring: ring}
}

// drawCircles places id at center and its children on the ring around it.
func (l *Balloon) drawCircles(f *tree.Forest, id tree.NodeID, center r2.Vec, discs map[tree.NodeID]balloonDisc, res Result) {
	n := f.Node(id)
	disc := discs[id]
	if n.Leaf {
		w, d := footprint(n)
		res[id] = geom.Transform{
			Position: r3.Vec{X: center.X, Z: center.Y},
			Scale:    r3.Vec{X: w, Y: height(n, l.opts), Z: d},
		}
	} else {
		res[id] = geom.Transform{
			Position: r3.Vec{X: center.X, Z: center.Y},
			Scale:    r3.Vec{X: 2 * disc.outRad, Y: height(n, l.opts), Z: 2 * disc.outRad},
		}
	}

	kids := f.Children(id)
	switch len(kids) {
	case 0:
		return
	case 1:
		l.drawCircles(f, kids[0], center, discs, res)
		return
	}

	half := make([]float64, len(kids))
	var used float64
	for i, c := range kids {
		half[i] = math.Asin(math.Min(1, discs[c].outRad/disc.ring))
		used += 2 * half[i]
	}
	gap := math.Max(0, 2*math.Pi-used) / float64(len(kids))

	angle := 0.0
	for i, c := range kids {
		angle += half[i]
		at := r2.Add(center, r2.Vec{X: disc.ring * math.Cos(angle), Y: disc.ring * math.Sin(angle)})
		l.drawCircles(f, c, at, discs, res)
		angle += half[i] + gap
	}
}
