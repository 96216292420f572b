package circlepack

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/codecity/pkg/geom"
)

// containEps is the tolerance used when testing containment during the
// enclosing-circle recursion.
const containEps = 1e-9

// Enclose returns the smallest circle containing every circle of cs. The
// input is expected to be sorted by descending radius; the recursion removes
// circles from the end, so the smallest ones are tried last. An empty input
// yields the zero circle.
func Enclose(cs []geom.Circle) geom.Circle {
	border := make([]geom.Circle, 0, 3)
	return minCircle(cs, border)
}

func minCircle(cs []geom.Circle, border []geom.Circle) geom.Circle {
	if len(cs) == 0 || len(border) == 3 {
		switch len(border) {
		case 0:
			return geom.Circle{}
		case 1:
			return border[0]
		case 2:
			return encloseTwo(border[0], border[1])
		default:
			return encloseThree(border[0], border[1], border[2])
		}
	}

	last := cs[len(cs)-1]
	rest := cs[:len(cs)-1]
	d := minCircle(rest, border)
	if !contains(d, last) {
		d = minCircle(rest, append(border, last))
	}
	return d
}

func contains(outer, inner geom.Circle) bool {
	eps := containEps * math.Max(1, outer.Radius)
	return outer.Contains(inner, eps)
}

// encloseTwo returns the smallest circle tangent to a and b from the inside.
func encloseTwo(a, b geom.Circle) geom.Circle {
	if contains(a, b) {
		return a
	}
	if contains(b, a) {
		return b
	}
	ab := r2.Sub(b.Center, a.Center)
	l := r2.Norm(ab)
	r := (l + a.Radius + b.Radius) / 2
	// Walk from a's far side along ab by the new diameter's half.
	center := r2.Add(a.Center, r2.Scale((r-a.Radius)/l, ab))
	return geom.Circle{Center: center, Radius: r}
}

// encloseThree returns the circle internally tangent to a, b and c. The
// centre lies on the intersection of the two radical lines of the
// tangency conditions, which reduces the system to a quadratic in the radius.
// Collinear centres have no unique solution; the best pairwise enclosure is
// used instead.
func encloseThree(a, b, c geom.Circle) geom.Circle {
	x1, y1, ra := a.Center.X, a.Center.Y, a.Radius
	x2, y2, rb := b.Center.X, b.Center.Y, b.Radius
	x3, y3, rc := c.Center.X, c.Center.Y, c.Radius

	a2, a3 := x1-x2, x1-x3
	b2, b3 := y1-y2, y1-y3
	c2, c3 := rb-ra, rc-ra
	d1 := x1*x1 + y1*y1 - ra*ra
	d2 := d1 - x2*x2 - y2*y2 + rb*rb
	d3 := d1 - x3*x3 - y3*y3 + rc*rc
	ab := a3*b2 - a2*b3
	if math.Abs(ab) < 1e-12 {
		return encloseThreeFallback(a, b, c)
	}

	xa := (b2*d3-b3*d2)/(ab*2) - x1
	xb := (b3*c2 - b2*c3) / ab
	ya := (a3*d2-a2*d3)/(ab*2) - y1
	yb := (a2*c3 - a3*c2) / ab

	qa := xb*xb + yb*yb - 1
	qb := 2 * (ra + xa*xb + ya*yb)
	qc := xa*xa + ya*ya - ra*ra

	var r float64
	if math.Abs(qa) > 1e-6 {
		disc := qb*qb - 4*qa*qc
		if disc < 0 {
			return encloseThreeFallback(a, b, c)
		}
		r = -(qb + math.Sqrt(disc)) / (2 * qa)
	} else {
		r = -qc / qb
	}
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return encloseThreeFallback(a, b, c)
	}

	return geom.Circle{Center: r2.Vec{X: x1 + xa + xb*r, Y: y1 + ya + yb*r}, Radius: r}
}

func encloseThreeFallback(a, b, c geom.Circle) geom.Circle {
	best := geom.Circle{Radius: math.Inf(1)}
	all := []geom.Circle{a, b, c}
	for _, cand := range []geom.Circle{encloseTwo(a, b), encloseTwo(a, c), encloseTwo(b, c)} {
		ok := true
		for _, o := range all {
			if !contains(cand, o) {
				ok = false
				break
			}
		}
		if ok && cand.Radius < best.Radius {
			best = cand
		}
	}
	if math.IsInf(best.Radius, 1) {
		// No pair encloses the third: grow the widest pair until it does.
		best = encloseTwo(a, b)
		for _, o := range all {
			if !contains(best, o) {
				best.Radius = r2.Norm(r2.Sub(o.Center, best.Center)) + o.Radius
			}
		}
	}
	return best
}
