// Package lca answers lowest-common-ancestor queries over a [tree.Forest].
//
// The finder is built once per forest with binary lifting: every member
// stores its 2^k-th ancestor, so a query climbs O(log depth) steps. Queries
// between members of different trees of the forest report false.
package lca

import "github.com/matzehuels/codecity/pkg/tree"

// Finder holds the ancestor table of one forest.
type Finder struct {
	forest *tree.Forest
	index  map[tree.NodeID]int
	nodes  []tree.NodeID
	level  []int
	up     [][]int // up[k][i]: 2^k-th ancestor of nodes[i], -1 above the root
	root   []int   // root[i]: root of nodes[i]
	depth  int
}

// New builds a finder over f.
func New(f *tree.Forest) *Finder {
	n := f.Len()
	fd := &Finder{
		forest: f,
		index:  make(map[tree.NodeID]int, n),
		nodes:  make([]tree.NodeID, 0, n),
		level:  make([]int, 0, n),
		root:   make([]int, 0, n),
		depth:  f.MaxDepth(),
	}

	// Pre-order so that every parent is indexed before its children.
	var visit func(id tree.NodeID, root int)
	visit = func(id tree.NodeID, root int) {
		i := len(fd.nodes)
		if root < 0 {
			root = i
		}
		fd.index[id] = i
		fd.nodes = append(fd.nodes, id)
		fd.level = append(fd.level, f.Level(id))
		fd.root = append(fd.root, root)
		for _, c := range f.Children(id) {
			visit(c, root)
		}
	}
	for _, r := range f.Roots() {
		visit(r, -1)
	}

	logN := 1
	for 1<<logN <= fd.depth {
		logN++
	}
	fd.up = make([][]int, logN)
	fd.up[0] = make([]int, len(fd.nodes))
	for i, id := range fd.nodes {
		fd.up[0][i] = -1
		if p := f.Parent(id); p != tree.NoParent {
			fd.up[0][i] = fd.index[p]
		}
	}
	for k := 1; k < logN; k++ {
		fd.up[k] = make([]int, len(fd.nodes))
		for i := range fd.nodes {
			if mid := fd.up[k-1][i]; mid >= 0 {
				fd.up[k][i] = fd.up[k-1][mid]
			} else {
				fd.up[k][i] = -1
			}
		}
	}
	return fd
}

// Depth returns the largest level of the forest.
func (fd *Finder) Depth() int { return fd.depth }

// Level returns the level of id, or -1 when id is not a member.
func (fd *Finder) Level(id tree.NodeID) int {
	i, ok := fd.index[id]
	if !ok {
		return -1
	}
	return fd.level[i]
}

// LCA returns the deepest node that is an ancestor of both a and b. A node
// is its own ancestor, so LCA(a, a) is a. It reports false when a and b are
// in different trees or either is not a member.
func (fd *Finder) LCA(a, b tree.NodeID) (tree.NodeID, bool) {
	i, ok := fd.index[a]
	if !ok {
		return tree.NoParent, false
	}
	j, ok := fd.index[b]
	if !ok || fd.root[i] != fd.root[j] {
		return tree.NoParent, false
	}

	if fd.level[i] < fd.level[j] {
		i, j = j, i
	}
	i = fd.climb(i, fd.level[i]-fd.level[j])
	if i == j {
		return fd.nodes[i], true
	}
	for k := len(fd.up) - 1; k >= 0; k-- {
		if fd.up[k][i] != fd.up[k][j] {
			i, j = fd.up[k][i], fd.up[k][j]
		}
	}
	return fd.nodes[fd.up[0][i]], true
}

// Path returns the nodes from a up to their lowest common ancestor and down
// to b, with the ancestor listed once. It reports false when no common
// ancestor exists.
func (fd *Finder) Path(a, b tree.NodeID) ([]tree.NodeID, bool) {
	anc, ok := fd.LCA(a, b)
	if !ok {
		return nil, false
	}
	var up []tree.NodeID
	for n := a; n != anc; n = fd.forest.Parent(n) {
		up = append(up, n)
	}
	up = append(up, anc)

	var down []tree.NodeID
	for n := b; n != anc; n = fd.forest.Parent(n) {
		down = append(down, n)
	}
	for k := len(down) - 1; k >= 0; k-- {
		up = append(up, down[k])
	}
	return up, true
}

func (fd *Finder) climb(i, steps int) int {
	for k := 0; steps > 0 && i >= 0; k++ {
		if steps&1 == 1 {
			i = fd.up[k][i]
		}
		steps >>= 1
	}
	return i
}
