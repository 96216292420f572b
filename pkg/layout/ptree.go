package layout

import "github.com/matzehuels/codecity/pkg/geom"

// PTree is a binary space partition of a rectangle into occupied and free
// cells, used by the rectangle packer.
type PTree struct {
	root *PNode
}

// PNode is one cell of a [PTree]. Only leaves hold free space.
type PNode struct {
	Rect     geom.Rect
	Occupied bool

	left, right *PNode
}

// IsLeaf reports whether the cell has not been split.
func (n *PNode) IsLeaf() bool { return n.left == nil && n.right == nil }

// NewPTree returns a tree with a single free cell of the given size at the
// origin.
func NewPTree(width, depth float64) *PTree {
	return &PTree{root: &PNode{Rect: geom.Rect{Width: width, Depth: depth}}}
}

// FreeLeaves returns the unoccupied leaves in depth-first order, left before
// right.
func (p *PTree) FreeLeaves() []*PNode {
	var out []*PNode
	var walk func(n *PNode)
	walk = func(n *PNode) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			if !n.Occupied {
				out = append(out, n)
			}
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(p.root)
	return out
}

// Split carves a width×depth cell out of the corner of the free leaf n and
// returns the occupied rectangle. The leaf becomes an inner node with a left
// column of the requested width, itself split into the occupied cell and the
// free remainder below it, and a free right part of full depth. Empty
// remainders are not created.
func (p *PTree) Split(n *PNode, width, depth float64) geom.Rect {
	r := n.Rect
	occupied := &PNode{Rect: geom.Rect{X: r.X, Z: r.Z, Width: width, Depth: depth}, Occupied: true}

	column := occupied
	if r.Depth > depth {
		column = &PNode{
			Rect:  geom.Rect{X: r.X, Z: r.Z, Width: width, Depth: r.Depth},
			left:  occupied,
			right: &PNode{Rect: geom.Rect{X: r.X, Z: r.Z + depth, Width: width, Depth: r.Depth - depth}},
		}
	}
	n.left = column
	if r.Width > width {
		n.right = &PNode{Rect: geom.Rect{X: r.X + width, Z: r.Z, Width: r.Width - width, Depth: r.Depth}}
	}
	return occupied.Rect
}

// Fits reports whether a width×depth cell fits into the free leaf n. Cells
// are cut by subtraction, so a relative rounding slack is allowed.
func (n *PNode) Fits(width, depth float64) bool {
	if n.Occupied || !n.IsLeaf() {
		return false
	}
	return width <= n.Rect.Width*(1+fitEps)+fitEps && depth <= n.Rect.Depth*(1+fitEps)+fitEps
}

const fitEps = 1e-9
