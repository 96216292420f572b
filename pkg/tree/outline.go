package tree

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// FromOutline builds a tree from the compact outline notation
// "root{a{a1,a2},b{b1}}". Names followed by braces become inner nodes, bare
// names become leaves of size leafSize. Several top-level entries separated by
// commas produce a forest.
func FromOutline(outline string, leafSize r3.Vec) (*Tree, error) {
	p := &outlineParser{src: outline, tree: New(), leafSize: leafSize}
	if err := p.list(NoParent); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("outline: unexpected %q at offset %d", p.src[p.pos], p.pos)
	}
	return p.tree, nil
}

type outlineParser struct {
	src      string
	pos      int
	tree     *Tree
	leafSize r3.Vec
}

func (p *outlineParser) list(parent NodeID) error {
	for {
		if err := p.entry(parent); err != nil {
			return err
		}
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
			continue
		}
		return nil
	}
}

func (p *outlineParser) entry(parent NodeID) error {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("{},", rune(p.src[p.pos])) {
		p.pos++
	}
	name := strings.TrimSpace(p.src[start:p.pos])
	if name == "" {
		return fmt.Errorf("outline: missing name at offset %d", start)
	}

	inner := p.pos < len(p.src) && p.src[p.pos] == '{'
	n := Node{ID: name, Leaf: !inner}
	if !inner {
		n.Size = p.leafSize
	}
	id, err := p.tree.Add(n, parent)
	if err != nil {
		return fmt.Errorf("outline: add %q: %w", name, err)
	}
	if !inner {
		return nil
	}

	p.pos++ // '{'
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] != '}' {
		if err := p.list(id); err != nil {
			return err
		}
	}
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '}' {
		return fmt.Errorf("outline: unclosed %q", name)
	}
	p.pos++
	return nil
}

func (p *outlineParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\n' || p.src[p.pos] == '\t') {
		p.pos++
	}
}
