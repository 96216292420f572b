package tree

import (
	"fmt"

	"github.com/matzehuels/codecity/pkg/errors"
)

// Forest is a read-only view over a subset of a [Tree].
//
// Only members are visible: Children filters out non-members and a member
// whose parent is not a member becomes a root. Levels are measured inside the
// view, so a view rooted at a class reports that class at level 0.
type Forest struct {
	tree    *Tree
	ids     []NodeID
	member  map[NodeID]bool
	roots   []NodeID
	level   map[NodeID]int
	maxDeep int
}

// NewForest builds a view over ids. Duplicate and invalid handles are
// rejected. It returns an errors.ErrCodeNoRoots error when the view is empty.
func NewForest(t *Tree, ids []NodeID) (*Forest, error) {
	f := &Forest{
		tree:   t,
		ids:    make([]NodeID, 0, len(ids)),
		member: make(map[NodeID]bool, len(ids)),
		level:  make(map[NodeID]int, len(ids)),
	}
	for _, id := range ids {
		if !t.Has(id) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown node handle %d", id)
		}
		if f.member[id] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %q listed twice", t.Node(id).ID)
		}
		f.member[id] = true
		f.ids = append(f.ids, id)
	}
	for _, id := range f.ids {
		if p := t.Node(id).Parent; p == NoParent || !f.member[p] {
			f.roots = append(f.roots, id)
		}
	}
	if len(f.roots) == 0 {
		return nil, errors.New(errors.ErrCodeNoRoots, "no roots among %d nodes", len(ids))
	}

	for _, r := range f.roots {
		f.walk(r, 0)
	}
	return f, nil
}

// Whole returns a view over every node of t.
func Whole(t *Tree) (*Forest, error) {
	return NewForest(t, t.IDs())
}

func (f *Forest) walk(id NodeID, level int) {
	f.level[id] = level
	if level > f.maxDeep {
		f.maxDeep = level
	}
	for _, c := range f.Children(id) {
		f.walk(c, level+1)
	}
}

// Tree returns the underlying arena.
func (f *Forest) Tree() *Tree { return f.tree }

// Node returns the node for a handle.
func (f *Forest) Node(id NodeID) *Node { return f.tree.Node(id) }

// Contains reports whether id is a member of the view.
func (f *Forest) Contains(id NodeID) bool { return f.member[id] }

// IDs returns the members in the order they were given.
func (f *Forest) IDs() []NodeID { return f.ids }

// Len returns the number of members.
func (f *Forest) Len() int { return len(f.ids) }

// Roots returns the roots of the view in member order.
func (f *Forest) Roots() []NodeID { return f.roots }

// Root returns the only root of the view, or an errors.ErrCodeMultipleRoots
// error when the view is a forest.
func (f *Forest) Root() (NodeID, error) {
	if len(f.roots) != 1 {
		return NoParent, errors.New(errors.ErrCodeMultipleRoots, "expected a single root, found %d", len(f.roots))
	}
	return f.roots[0], nil
}

// Parent returns the parent of id inside the view, or NoParent for roots.
func (f *Forest) Parent(id NodeID) NodeID {
	p := f.tree.Node(id).Parent
	if p == NoParent || !f.member[p] {
		return NoParent
	}
	return p
}

// Children returns the member children of id in insertion order.
func (f *Forest) Children(id NodeID) []NodeID {
	all := f.tree.Node(id).Children
	out := make([]NodeID, 0, len(all))
	for _, c := range all {
		if f.member[c] {
			out = append(out, c)
		}
	}
	return out
}

// IsLeaf reports whether id is a leaf node.
func (f *Forest) IsLeaf(id NodeID) bool { return f.tree.Node(id).Leaf }

// Level returns the distance of id from its root inside the view.
func (f *Forest) Level(id NodeID) int { return f.level[id] }

// MaxDepth returns the largest level in the view.
func (f *Forest) MaxDepth() int { return f.maxDeep }

// Leaves returns the leaf members in member order.
func (f *Forest) Leaves() []NodeID {
	var out []NodeID
	for _, id := range f.ids {
		if f.IsLeaf(id) {
			out = append(out, id)
		}
	}
	return out
}

// InnerNodes returns the non-leaf members in member order.
func (f *Forest) InnerNodes() []NodeID {
	var out []NodeID
	for _, id := range f.ids {
		if !f.IsLeaf(id) {
			out = append(out, id)
		}
	}
	return out
}

// PostOrder returns the members of the subtree rooted at id, children first.
func (f *Forest) PostOrder(id NodeID) []NodeID {
	var out []NodeID
	var visit func(NodeID)
	visit = func(n NodeID) {
		for _, c := range f.Children(n) {
			visit(c)
		}
		out = append(out, n)
	}
	visit(id)
	return out
}

// String returns a short description for logs.
func (f *Forest) String() string {
	return fmt.Sprintf("forest(%d nodes, %d roots, depth %d)", len(f.ids), len(f.roots), f.maxDeep)
}
