package layout

import (
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/geom"
	"github.com/matzehuels/codecity/pkg/tree"
)

// Kind names a layout algorithm.
type Kind string

// Layout kinds.
const (
	KindTreemap       Kind = "treemap"
	KindCirclePacking Kind = "circlepacking"
	KindBalloon       Kind = "balloon"
	KindEvoStreets    Kind = "evostreets"
	KindRectPacker    Kind = "rectpacker"
	KindManhattan     Kind = "manhattan"
)

// Kinds lists every layout kind.
var Kinds = []Kind{KindTreemap, KindCirclePacking, KindBalloon, KindEvoStreets, KindRectPacker, KindManhattan}

// Defaults used by the pipeline when options are left unset.
const (
	DefaultPadding     = 0.1
	DefaultInnerHeight = 0.1
	DefaultStreetWidth = 1.0
)

// Result maps node handles to their transforms.
type Result map[tree.NodeID]geom.Transform

// Layout computes transforms for a set of nodes.
type Layout interface {
	Kind() Kind

	// IsHierarchical reports whether the layout places inner nodes. Flat
	// layouts reject them with errors.ErrCodeUnsupportedShape.
	IsHierarchical() bool

	// Layout places ids. It returns an errors.ErrCodeNoRoots error when ids
	// contain no root.
	Layout(t *tree.Tree, ids []tree.NodeID) (Result, error)
}

// Options configures a layout. Zero lengths are valid; negative or
// non-finite ones are rejected by [New].
type Options struct {
	Padding     float64 // Gap between sibling footprints
	InnerHeight float64 // Height of inner-node plates
	StreetWidth float64 // Width of a root street (EvoStreets)

	Logger *log.Logger
}

func (o Options) validate() error {
	if err := errors.ValidateLength("padding", o.Padding); err != nil {
		return err
	}
	if err := errors.ValidateLength("inner height", o.InnerHeight); err != nil {
		return err
	}
	return errors.ValidateLength("street width", o.StreetWidth)
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// ParseKind parses a layout name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	names := make([]string, len(Kinds))
	for i, known := range Kinds {
		names[i] = string(known)
	}
	return "", errors.New(errors.ErrCodeInvalidLayout, "invalid layout: %q (must be one of: %s)", s, strings.Join(names, ", "))
}

// New returns the layout of the given kind.
func New(kind Kind, opts Options) (Layout, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	switch kind {
	case KindTreemap:
		return &Treemap{opts: opts}, nil
	case KindCirclePacking:
		return &CirclePacking{opts: opts}, nil
	case KindBalloon:
		return &Balloon{opts: opts}, nil
	case KindEvoStreets:
		return &EvoStreets{opts: opts}, nil
	case KindRectPacker:
		return &RectPacker{opts: opts}, nil
	case KindManhattan:
		return &Manhattan{opts: opts}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidLayout, "invalid layout: %q", kind)
	}
}

// ============================================================================
// Shared helpers
// ============================================================================

// single handles the one-node case shared by every layout: the node sits at
// the origin with its intrinsic size.
func single(f *tree.Forest) (Result, bool) {
	if f.Len() != 1 {
		return nil, false
	}
	id := f.IDs()[0]
	return Result{id: geom.Transform{Scale: f.Node(id).Size}}, true
}

// requireLeaves rejects inner nodes for flat layouts.
func requireLeaves(t *tree.Tree, ids []tree.NodeID, kind Kind) error {
	for _, id := range ids {
		if t.Has(id) && !t.Node(id).Leaf {
			return errors.New(errors.ErrCodeUnsupportedShape, "%s layout only accepts leaves, got inner node %q", kind, t.Node(id).ID)
		}
	}
	return nil
}

// footprint returns the ground extent of a node, clamping negative or
// non-finite sizes to 0.
func footprint(n *tree.Node) (w, d float64) {
	return clampLength(n.Size.X), clampLength(n.Size.Z)
}

func clampLength(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// height returns the block height of a node: leaves keep their own, inner
// nodes get the plate height.
func height(n *tree.Node, opts Options) float64 {
	if n.Leaf {
		return clampLength(n.Size.Y)
	}
	return opts.InnerHeight
}

// stack lifts every child onto its parent's top face, walking down from the
// roots of f.
func stack(f *tree.Forest, res Result) {
	var visit func(id tree.NodeID, base float64)
	visit = func(id tree.NodeID, base float64) {
		tr := res[id]
		tr.Position.Y = base
		res[id] = tr
		for _, c := range f.Children(id) {
			visit(c, tr.Top())
		}
	}
	for _, r := range f.Roots() {
		visit(r, 0)
	}
}

// bounds returns the union of the footprints in res.
func bounds(res Result) geom.Rect {
	var b geom.Rect
	first := true
	for _, tr := range res {
		fp := tr.Footprint()
		if first {
			b, first = fp, false
			continue
		}
		b = b.Union(fp)
	}
	return b
}
