package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/geom"
	"github.com/matzehuels/codecity/pkg/tree"
)

// EvoStreets lays inner nodes out as streets and leaves as houses along
// them. Children alternate to the side of the street whose pivot (the
// running length already used on that side) is smaller; sub-streets branch
// off at right angles. Street width shrinks with depth.
type EvoStreets struct {
	opts Options
}

// Kind implements [Layout].
func (*EvoStreets) Kind() Kind { return KindEvoStreets }

// IsHierarchical implements [Layout].
func (*EvoStreets) IsHierarchical() bool { return true }

type side int

const (
	sideLeft  side = 1
	sideRight side = -1
)

// enode is the local geometry of a street or house. In the local frame the
// street starts at along=0 on its centreline and left is the positive
// across direction.
type enode struct {
	street     bool
	width      float64 // Street width, or house extent along the parent street
	depth      float64 // House extent across the parent street
	length     float64 // Street length
	leftDepth  float64
	rightDepth float64
	slots      []eslot
}

type eslot struct {
	id    tree.NodeID
	side  side
	pivot float64
}

// breadth is the extent of a street across its own direction.
func (e *enode) breadth() float64 { return e.leftDepth + e.width + e.rightDepth }

// alongParent and acrossParent give the footprint an element claims next to
// its parent street. Sub-streets run perpendicular to the parent.
func (e *enode) alongParent() float64 {
	if e.street {
		return e.breadth()
	}
	return e.width
}

func (e *enode) acrossParent() float64 {
	if e.street {
		return e.length
	}
	return e.depth
}

// Layout implements [Layout].
func (l *EvoStreets) Layout(t *tree.Tree, ids []tree.NodeID) (Result, error) {
	f, err := tree.NewForest(t, ids)
	if err != nil {
		return nil, err
	}
	if res, ok := single(f); ok {
		return res, nil
	}

	nodes := make(map[tree.NodeID]*enode, f.Len())
	for _, r := range f.Roots() {
		for _, id := range f.PostOrder(r) {
			nodes[id] = l.build(f, id, nodes)
		}
	}

	res := make(Result, f.Len())
	roots := f.Roots()
	var total float64
	for _, r := range roots {
		total += rootExtent(nodes[r])
	}
	total += l.opts.Padding * float64(len(roots)-1)

	x := -total / 2
	for _, r := range roots {
		e := nodes[r]
		if e.street {
			origin := r2.Vec{X: x, Y: -(e.leftDepth - e.rightDepth) / 2}
			l.place(f, r, e, origin, 0, nodes, res)
		} else {
			n := f.Node(r)
			res[r] = geom.Transform{
				Position: r3.Vec{X: x + e.width/2},
				Scale:    r3.Vec{X: e.width, Y: height(n, l.opts), Z: e.depth},
			}
		}
		x += rootExtent(e) + l.opts.Padding
	}
	stack(f, res)

	l.opts.logger().Debug("evostreets layout", "forest", f, "roots", len(roots))
	return res, nil
}

func rootExtent(e *enode) float64 {
	if e.street {
		return e.length
	}
	return e.width
}

// streetWidth attenuates the configured width with depth so that main
// streets are wider than side streets.
func (l *EvoStreets) streetWidth(level, maxDepth int) float64 {
	return l.opts.StreetWidth * float64(maxDepth-level+1) / float64(maxDepth+1)
}

func (l *EvoStreets) build(f *tree.Forest, id tree.NodeID, nodes map[tree.NodeID]*enode) *enode {
	if f.IsLeaf(id) {
		w, d := footprint(f.Node(id))
		return &enode{width: w, depth: d}
	}

	e := &enode{street: true, width: l.streetWidth(f.Level(id), f.MaxDepth())}
	var left, right float64
	for _, c := range f.Children(id) {
		ce := nodes[c]
		s := sideLeft
		pivot := &left
		if right < left {
			s, pivot = sideRight, &right
		}
		e.slots = append(e.slots, eslot{id: c, side: s, pivot: *pivot})
		*pivot += ce.alongParent() + l.opts.Padding
		if s == sideLeft {
			e.leftDepth = math.Max(e.leftDepth, ce.acrossParent())
		} else {
			e.rightDepth = math.Max(e.rightDepth, ce.acrossParent())
		}
	}
	e.length = math.Max(left, right)
	if len(e.slots) > 0 {
		// Drop the trailing gap.
		e.length -= l.opts.Padding
	}
	e.length = math.Max(e.length, e.width)
	return e
}

// place writes the street id with its origin and direction in world space,
// then its children.
func (l *EvoStreets) place(f *tree.Forest, id tree.NodeID, e *enode, origin r2.Vec, theta float64, nodes map[tree.NodeID]*enode, res Result) {
	rad := theta * math.Pi / 180
	u := r2.Vec{X: math.Cos(rad), Y: math.Sin(rad)}
	nrm := r2.Vec{X: -math.Sin(rad), Y: math.Cos(rad)}
	at := func(along, across float64) r2.Vec {
		return r2.Add(origin, r2.Add(r2.Scale(along, u), r2.Scale(across, nrm)))
	}

	c := at(e.length/2, 0)
	res[id] = geom.NewTransform(
		r3.Vec{X: c.X, Z: c.Y},
		r3.Vec{X: e.length, Y: height(f.Node(id), l.opts), Z: e.width},
		theta,
	)

	for _, s := range e.slots {
		ce := nodes[s.id]
		across := float64(s.side) * e.width / 2
		if !ce.street {
			p := at(s.pivot+ce.width/2, across+float64(s.side)*ce.depth/2)
			rot := theta
			if s.side == sideLeft {
				rot += 180
			}
			res[s.id] = geom.NewTransform(
				r3.Vec{X: p.X, Z: p.Y},
				r3.Vec{X: ce.width, Y: height(f.Node(s.id), l.opts), Z: ce.depth},
				rot,
			)
			continue
		}

		// The sub-street's own left side faces back along this street on
		// the left and forward on the right.
		offset := ce.leftDepth
		childTheta := theta + 90
		if s.side == sideRight {
			offset = ce.rightDepth
			childTheta = theta - 90
		}
		l.place(f, s.id, ce, at(s.pivot+offset+ce.width/2, across), geom.NormalizeDegrees(childTheta), nodes, res)
	}
}
