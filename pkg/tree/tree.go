package tree

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrInvalidNodeID is returned by [Tree.Add] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Tree.Add] when a node with the same
	// ID already exists. Link names are unique across the whole arena.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownParent is returned by [Tree.Add] when the parent handle does
	// not refer to a node of this tree.
	ErrUnknownParent = errors.New("unknown parent node")

	// ErrLeafParent is returned by [Tree.Add] when the parent is a leaf.
	// Leaves are terminal by definition.
	ErrLeafParent = errors.New("parent node is a leaf")
)

// NodeID is a handle into a [Tree] arena.
type NodeID int

// NoParent marks a root node.
const NoParent NodeID = -1

// Node is one element of the containment hierarchy.
//
// Size is the intrinsic extent before layout: X is the width, Y the height and
// Z the depth. Metrics hold raw metric values used by the scalers.
type Node struct {
	ID      string // Unique link name
	Leaf    bool
	Size    r3.Vec
	Metrics map[string]float64

	// Set by the tree.
	Parent   NodeID
	Children []NodeID
}

// TryGetNumeric returns the value of a metric. Missing, NaN and infinite
// values report false.
func (n *Node) TryGetNumeric(name string) (float64, bool) {
	v, ok := n.Metrics[name]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsRoot reports whether the node has no parent in its arena.
func (n *Node) IsRoot() bool { return n.Parent == NoParent }

// Tree is an arena of nodes forming a forest.
//
// The zero value is not usable - use New. Tree is not safe for concurrent
// mutation; concurrent reads are fine once construction is done.
type Tree struct {
	nodes []Node
	index map[string]NodeID
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{index: make(map[string]NodeID)}
}

// Add appends n as the last child of parent (or as a root when parent is
// NoParent) and returns its handle. The Parent and Children fields of n are
// ignored.
func (t *Tree) Add(n Node, parent NodeID) (NodeID, error) {
	if n.ID == "" {
		return NoParent, ErrInvalidNodeID
	}
	if _, exists := t.index[n.ID]; exists {
		return NoParent, ErrDuplicateNodeID
	}
	if parent != NoParent {
		if !t.Has(parent) {
			return NoParent, ErrUnknownParent
		}
		if t.nodes[parent].Leaf {
			return NoParent, ErrLeafParent
		}
	}

	id := NodeID(len(t.nodes))
	n.Parent = parent
	n.Children = nil
	if n.Metrics == nil {
		n.Metrics = map[string]float64{}
	}
	t.nodes = append(t.nodes, n)
	t.index[n.ID] = id
	if parent != NoParent {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}
	return id, nil
}

// Has reports whether id is a valid handle.
func (t *Tree) Has(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the node for a handle. It panics on an invalid handle, like
// a slice index would.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Lookup finds a node handle by link name.
func (t *Tree) Lookup(name string) (NodeID, bool) {
	id, ok := t.index[name]
	return id, ok
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// IDs returns every handle in insertion order.
func (t *Tree) IDs() []NodeID {
	ids := make([]NodeID, len(t.nodes))
	for i := range ids {
		ids[i] = NodeID(i)
	}
	return ids
}

// Leaves returns the handles of all leaves in insertion order.
func (t *Tree) Leaves() []NodeID {
	var ids []NodeID
	for i := range t.nodes {
		if t.nodes[i].Leaf {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// Roots returns the handles of all arena roots in insertion order.
func (t *Tree) Roots() []NodeID {
	var ids []NodeID
	for i := range t.nodes {
		if t.nodes[i].Parent == NoParent {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// Level returns the distance of id from its arena root.
func (t *Tree) Level(id NodeID) int {
	level := 0
	for p := t.nodes[id].Parent; p != NoParent; p = t.nodes[p].Parent {
		level++
	}
	return level
}

// SetSize replaces the intrinsic size of a node. The pipeline uses it to
// apply scaled metric values before layout.
func (t *Tree) SetSize(id NodeID, size r3.Vec) {
	t.nodes[id].Size = size
}
