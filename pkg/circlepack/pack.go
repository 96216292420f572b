package circlepack

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/geom"
)

const (
	// overlapEps is the squared-distance slack below which a pair counts as
	// overlapping. It is scaled down for circles smaller than unit size.
	overlapEps = 0.01

	// DefaultMaxIterations caps the relaxation passes of [Pack].
	DefaultMaxIterations = 1000

	// goldenAngle spreads coincident pairs over distinct directions.
	goldenAngle = 2.399963229728653
)

// Packer configures the relaxation.
//
// MaxIterations bounds the number of relaxation passes; 1 gives a single
// pass. Damping > 0 pulls circles toward their centroid by Damping/(k+1)
// during the first passes, which yields a tighter packing at the cost of more
// passes.
type Packer struct {
	MaxIterations int
	Damping       float64
}

// Pack relaxes cs with the default packer and returns the outer radius.
func Pack(cs []geom.Circle) (float64, error) {
	return Packer{}.Pack(cs)
}

// Pack relaxes overlaps among cs, encloses them and moves every centre so
// the enclosing circle is centred at the origin. The order of cs is left
// untouched. It returns an errors.ErrCodeInvalidArgument error for
// non-positive or non-finite radii.
func (p Packer) Pack(cs []geom.Circle) (float64, error) {
	for i, c := range cs {
		if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
			return 0, errors.New(errors.ErrCodeInvalidArgument, "circle %d has invalid radius %v", i, c.Radius)
		}
		if math.IsNaN(c.Center.X) || math.IsNaN(c.Center.Y) {
			return 0, errors.New(errors.ErrCodeInvalidArgument, "circle %d has invalid center", i)
		}
	}
	if len(cs) == 0 {
		return 0, nil
	}

	order := make([]int, len(cs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cs[order[a]].Radius > cs[order[b]].Radius
	})

	iterations := p.MaxIterations
	if iterations <= 0 {
		iterations = DefaultMaxIterations
	}
	contractFor := 0
	if p.Damping > 0 {
		contractFor = min(iterations/2, 50)
	}
	for k := 0; k < iterations; k++ {
		contracting := k < contractFor
		if contracting {
			contract(cs, p.Damping/float64(k+1))
		}
		if !relax(cs, order) && !contracting {
			break
		}
	}

	sorted := make([]geom.Circle, len(cs))
	for i, idx := range order {
		sorted[i] = cs[idx]
	}
	enc := Enclose(sorted)
	for i := range cs {
		cs[i].Center = r2.Sub(cs[i].Center, enc.Center)
	}
	return enc.Radius, nil
}

// relax runs one pass over every pair in sorted order and reports whether
// any circle moved.
func relax(cs []geom.Circle, order []int) bool {
	moved := false
	for a := 0; a < len(order)-1; a++ {
		for b := a + 1; b < len(order); b++ {
			ci, cj := &cs[order[a]], &cs[order[b]]
			ab := r2.Sub(cj.Center, ci.Center)
			d2 := r2.Norm2(ab)
			rs := ci.Radius + cj.Radius
			if d2 >= rs*rs-overlapEps*math.Min(1, rs*rs) {
				continue
			}
			d := math.Sqrt(d2)
			var dir r2.Vec
			if d > 1e-12 {
				dir = r2.Scale(1/d, ab)
			} else {
				theta := goldenAngle * float64(a*len(order)+b)
				dir = r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
			}
			push := r2.Scale((rs-d)/2, dir)
			cj.Center = r2.Add(cj.Center, push)
			ci.Center = r2.Sub(ci.Center, push)
			moved = true
		}
	}
	return moved
}

// contract pulls every centre toward the centroid by factor f.
func contract(cs []geom.Circle, f float64) {
	var c r2.Vec
	for _, ci := range cs {
		c = r2.Add(c, ci.Center)
	}
	c = r2.Scale(1/float64(len(cs)), c)
	for i := range cs {
		cs[i].Center = r2.Sub(cs[i].Center, r2.Scale(f, r2.Sub(cs[i].Center, c)))
	}
}

// PlaceOnRing spreads the centres of cs evenly over a circle of the given
// radius around the origin, starting on +X. It is the initial guess used
// before [Pack].
func PlaceOnRing(cs []geom.Circle, radius float64) {
	n := len(cs)
	for i := range cs {
		theta := 2 * math.Pi * float64(i) / float64(n)
		cs[i].Center = r2.Vec{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
}
