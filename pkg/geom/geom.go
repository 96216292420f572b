// Package geom holds the value types shared by the layout algorithms:
// node transforms, ground rectangles and circles.
//
// Coordinates follow a Y-up convention. The ground plane is X/Z, and a
// rotation is measured in degrees about the Y axis, from +X toward +Z.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is the placement of one node.
//
// Position is the ground anchor: X and Z are the centre of the footprint and
// Y is the bottom of the block, not its centre. Scale is the final
// width/height/depth and Rotation is in degrees within [0, 360).
type Transform struct {
	Position r3.Vec
	Scale    r3.Vec
	Rotation float64
}

// NewTransform builds a transform with a normalised rotation.
func NewTransform(position, scale r3.Vec, rotation float64) Transform {
	return Transform{Position: position, Scale: scale, Rotation: NormalizeDegrees(rotation)}
}

// Roof returns the centre of the top face.
func (t Transform) Roof() r3.Vec {
	return r3.Vec{X: t.Position.X, Y: t.Position.Y + t.Scale.Y, Z: t.Position.Z}
}

// Top returns the Y coordinate of the top face.
func (t Transform) Top() float64 { return t.Position.Y + t.Scale.Y }

// Footprint returns the axis-aligned ground rectangle covered by the node,
// taking its rotation into account.
func (t Transform) Footprint() Rect {
	w, d := t.Scale.X, t.Scale.Z
	if r := NormalizeDegrees(t.Rotation); r != 0 && r != 180 {
		rad := r * math.Pi / 180
		c, s := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
		w, d = t.Scale.X*c+t.Scale.Z*s, t.Scale.X*s+t.Scale.Z*c
	}
	return Rect{X: t.Position.X - w/2, Z: t.Position.Z - d/2, Width: w, Depth: d}
}

// Translate returns the transform moved by offset.
func (t Transform) Translate(offset r3.Vec) Transform {
	t.Position = r3.Add(t.Position, offset)
	return t
}

// NormalizeDegrees maps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Circle is a disc on the ground plane.
type Circle struct {
	Center r2.Vec
	Radius float64
}

// Contains reports whether c fully contains o, with a tolerance of eps.
func (c Circle) Contains(o Circle, eps float64) bool {
	return r2.Norm(r2.Sub(o.Center, c.Center))+o.Radius <= c.Radius+eps
}

// Overlaps reports whether the interiors of c and o intersect by more than
// eps.
func (c Circle) Overlaps(o Circle, eps float64) bool {
	return r2.Norm(r2.Sub(o.Center, c.Center)) < c.Radius+o.Radius-eps
}

// HalfDiagonal returns half the diagonal of a w×d footprint, the radius of
// the smallest circle around it.
func HalfDiagonal(w, d float64) float64 {
	return math.Hypot(w, d) / 2
}
