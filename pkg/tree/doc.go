// Package tree provides the arena-backed node hierarchy consumed by the
// layout engine.
//
// # Overview
//
// A code city is a containment hierarchy: packages contain classes, classes
// contain methods. Every layout algorithm receives this hierarchy as a set of
// nodes with an intrinsic size and must place each of them. This package
// stores the hierarchy as an arena of [Node] values addressed by [NodeID]
// handles, with a parent handle and an ordered child list per node. There
// are no back-pointers between Go values, so the structure can be copied,
// compared and discarded freely.
//
// # Basic Usage
//
// Create a tree with [New] and add nodes top-down with [Tree.Add]. A parent
// must exist before its children are added, which makes the relation a forest
// by construction:
//
//	t := tree.New()
//	root, _ := t.Add(tree.Node{ID: "app"}, tree.NoParent)
//	_, _ = t.Add(tree.Node{ID: "Main", Leaf: true, Size: r3.Vec{X: 1, Y: 2, Z: 1}}, root)
//
// # Forests
//
// Layout algorithms work on a [Forest]: a read-only view over a subset of
// node handles. Roots are nodes whose parent is absent or outside the subset,
// so a caller can lay out a sub-hierarchy without rebuilding the arena.
// [NewForest] fails with an errors.ErrCodeNoRoots error when no root can be
// discovered.
//
// Child order is insertion order and every traversal in this package follows
// it, which keeps layouts deterministic.
package tree
