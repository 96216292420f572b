package geom

import "math"

// Rect is an axis-aligned rectangle on the ground plane. X and Z address the
// minimum corner.
type Rect struct {
	X, Z         float64
	Width, Depth float64
}

// Area returns Width×Depth.
func (r Rect) Area() float64 { return r.Width * r.Depth }

// Center returns the centre of the rectangle.
func (r Rect) Center() (x, z float64) { return r.X + r.Width/2, r.Z + r.Depth/2 }

// MaxX returns the X coordinate of the far edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxZ returns the Z coordinate of the far edge.
func (r Rect) MaxZ() float64 { return r.Z + r.Depth }

// AspectRatio returns max(w/d, d/w). Degenerate rectangles report +Inf.
func (r Rect) AspectRatio() float64 {
	if r.Width <= 0 || r.Depth <= 0 {
		return math.Inf(1)
	}
	return math.Max(r.Width/r.Depth, r.Depth/r.Width)
}

// Shrink returns r reduced by pad on every side. When the rectangle is too
// small to absorb the padding it is returned unchanged.
func (r Rect) Shrink(pad float64) Rect {
	if pad <= 0 || r.Width <= 2*pad || r.Depth <= 2*pad {
		return r
	}
	return Rect{X: r.X + pad, Z: r.Z + pad, Width: r.Width - 2*pad, Depth: r.Depth - 2*pad}
}

// Overlaps reports whether the interiors of r and o intersect by more than
// eps on both axes.
func (r Rect) Overlaps(o Rect, eps float64) bool {
	dx := math.Min(r.MaxX(), o.MaxX()) - math.Max(r.X, o.X)
	dz := math.Min(r.MaxZ(), o.MaxZ()) - math.Max(r.Z, o.Z)
	return dx > eps && dz > eps
}

// Contains reports whether o lies inside r, with a tolerance of eps.
func (r Rect) Contains(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Z >= r.Z-eps && o.MaxX() <= r.MaxX()+eps && o.MaxZ() <= r.MaxZ()+eps
}

// Union returns the bounding box of r and o.
func (r Rect) Union(o Rect) Rect {
	x, z := math.Min(r.X, o.X), math.Min(r.Z, o.Z)
	return Rect{X: x, Z: z, Width: math.Max(r.MaxX(), o.MaxX()) - x, Depth: math.Max(r.MaxZ(), o.MaxZ()) - z}
}
