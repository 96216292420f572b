package edges

import "gonum.org/v1/gonum/spatial/r3"

// Sample evaluates the clamped uniform B-spline through ctrl at n evenly
// spaced parameters and returns the resulting polyline. The degree is 3, or
// lower when there are fewer than four control points. The first and last
// samples coincide with the first and last control points. Fewer than two
// control points or n < 2 return a copy of ctrl.
func Sample(ctrl []r3.Vec, n int) []r3.Vec {
	if len(ctrl) < 2 || n < 2 {
		return append([]r3.Vec(nil), ctrl...)
	}
	k := min(3, len(ctrl)-1)
	knots := clampedKnots(len(ctrl), k)

	out := make([]r3.Vec, n)
	d := make([]r3.Vec, k+1)
	for s := 0; s < n; s++ {
		u := float64(s) / float64(n-1)
		out[s] = deBoor(ctrl, knots, k, u, d)
	}
	return out
}

func clampedKnots(n, k int) []float64 {
	knots := make([]float64, n+k+1)
	spans := n - k
	for i := range knots {
		switch {
		case i <= k:
			knots[i] = 0
		case i >= n:
			knots[i] = 1
		default:
			knots[i] = float64(i-k) / float64(spans)
		}
	}
	return knots
}

// deBoor evaluates the spline at u using d as scratch space.
func deBoor(ctrl []r3.Vec, knots []float64, k int, u float64, d []r3.Vec) r3.Vec {
	j := k
	for j < len(ctrl)-1 && knots[j+1] <= u {
		j++
	}
	for i := 0; i <= k; i++ {
		d[i] = ctrl[j-k+i]
	}
	for r := 1; r <= k; r++ {
		for i := k; i >= r; i-- {
			lo, hi := knots[i+j-k], knots[i+1+j-r]
			alpha := 0.0
			if hi > lo {
				alpha = (u - lo) / (hi - lo)
			}
			d[i] = r3.Add(r3.Scale(1-alpha, d[i-1]), r3.Scale(alpha, d[i]))
		}
	}
	return d[k]
}
