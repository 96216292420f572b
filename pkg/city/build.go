package city

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/edges"
	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/tree"
)

// DefaultLeafSize is the size of a leaf that declares none.
var DefaultLeafSize = r3.Vec{X: 1, Y: 1, Z: 1}

// BuildTree turns the node list into a tree arena. Children keep their
// order of appearance. It fails with errors.ErrCodeNoRoots when no node is a
// root, and with errors.ErrCodeInvalidInput for duplicate IDs, unknown
// parents, malformed sizes, leaves with children and parent cycles.
func BuildTree(c *City) (*tree.Tree, error) {
	byID := make(map[string]int, len(c.Nodes))
	for i, n := range c.Nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		if _, dup := byID[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node %q", n.ID)
		}
		if len(n.Size) != 0 && len(n.Size) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %q: size must have 3 components, got %d", n.ID, len(n.Size))
		}
		byID[n.ID] = i
	}

	children := make(map[string][]int, len(c.Nodes))
	var roots []int
	for i, n := range c.Nodes {
		if n.Parent == "" {
			roots = append(roots, i)
			continue
		}
		if _, ok := byID[n.Parent]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %q: unknown parent %q", n.ID, n.Parent)
		}
		children[n.Parent] = append(children[n.Parent], i)
	}
	if len(roots) == 0 {
		return nil, errors.New(errors.ErrCodeNoRoots, "no root among %d nodes", len(c.Nodes))
	}

	t := tree.New()
	var add func(i int, parent tree.NodeID) error
	add = func(i int, parent tree.NodeID) error {
		n := c.Nodes[i]
		leaf := len(children[n.ID]) == 0
		if n.Leaf != nil {
			leaf = *n.Leaf
		}
		node := tree.Node{ID: n.ID, Leaf: leaf, Metrics: n.Metrics}
		switch {
		case len(n.Size) == 3:
			node.Size = r3.Vec{X: n.Size[0], Y: n.Size[1], Z: n.Size[2]}
		case leaf:
			node.Size = DefaultLeafSize
		}
		id, err := t.Add(node, parent)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %q", n.ID)
		}
		for _, ci := range children[n.ID] {
			if err := add(ci, id); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := add(r, tree.NoParent); err != nil {
			return nil, err
		}
	}

	if t.Len() != len(c.Nodes) {
		for _, n := range c.Nodes {
			if _, ok := t.Lookup(n.ID); !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "node %q is part of a parent cycle", n.ID)
			}
		}
	}
	return t, nil
}

// ResolveEdges maps the edges of c onto handles of t.
func ResolveEdges(c *City, t *tree.Tree) ([]edges.Edge, error) {
	out := make([]edges.Edge, 0, len(c.Edges))
	for _, e := range c.Edges {
		from, ok := t.Lookup(e.From)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %q: unknown source %q", e.Key(), e.From)
		}
		to, ok := t.Lookup(e.To)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %q: unknown target %q", e.Key(), e.To)
		}
		out = append(out, edges.Edge{ID: e.Key(), Source: from, Target: to})
	}
	return out, nil
}
