package edges

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/errors"
	"github.com/matzehuels/codecity/pkg/geom"
	"github.com/matzehuels/codecity/pkg/layout"
	"github.com/matzehuels/codecity/pkg/lca"
	"github.com/matzehuels/codecity/pkg/tree"
)

// Defaults for unset options.
const (
	DefaultSelfLoopFactor = 0.5
	MinLevelDistance      = 0.5
)

// Edge connects two nodes of the forest.
type Edge struct {
	ID     string
	Source tree.NodeID
	Target tree.NodeID
}

// Options configures a [Bundler].
type Options struct {
	// LevelDistance is the vertical gap between two hierarchy levels. Zero
	// derives it from the tallest block.
	LevelDistance float64

	// Offset is the clearance between the tallest roof and the lowest
	// control level. Zero uses the level distance.
	Offset float64

	// EdgesAboveBlocks routes edges above the city. When false, heights are
	// mirrored below the ground plane and edges leave blocks at their base.
	EdgesAboveBlocks bool

	// SelfLoopFactor scales the height of a self-loop relative to the roof
	// diagonal. Zero means DefaultSelfLoopFactor.
	SelfLoopFactor float64

	Logger *log.Logger
}

// Bundler draws bundled edges.
type Bundler struct {
	opts Options
}

// New returns a bundler after validating opts.
func New(opts Options) (*Bundler, error) {
	if err := errors.ValidateLength("level distance", opts.LevelDistance); err != nil {
		return nil, err
	}
	if err := errors.ValidateLength("offset", opts.Offset); err != nil {
		return nil, err
	}
	if err := errors.ValidateLength("self-loop factor", opts.SelfLoopFactor); err != nil {
		return nil, err
	}
	if opts.SelfLoopFactor == 0 {
		opts.SelfLoopFactor = DefaultSelfLoopFactor
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Bundler{opts: opts}, nil
}

// DrawEdges returns the control points of every edge, keyed by edge ID.
//
// The forest must have a single root; a forest yields an
// errors.ErrCodeMultipleRoots error. Endpoints outside the forest and
// duplicate edge IDs are rejected with errors.ErrCodeInvalidInput. Nodes
// without a transform (inner nodes of flat layouts) are anchored at the
// centre of their descendants.
func (b *Bundler) DrawEdges(edges []Edge, transforms layout.Result, forest *tree.Forest) (map[string][]r3.Vec, error) {
	if _, err := forest.Root(); err != nil {
		return nil, err
	}
	return b.draw(edges, transforms, forest, lca.New(forest))
}

// scene holds the per-call geometry shared by all edges.
type scene struct {
	forest        *tree.Forest
	finder        *lca.Finder
	transforms    layout.Result
	anchors       map[tree.NodeID]geom.Transform
	minY          float64
	levelDistance float64
	sign          float64 // +1 above the city, -1 below the ground
}

func (b *Bundler) draw(edges []Edge, transforms layout.Result, forest *tree.Forest, finder *lca.Finder) (map[string][]r3.Vec, error) {
	s := b.newScene(transforms, forest, finder)
	out := make(map[string][]r3.Vec, len(edges))
	for _, e := range edges {
		if _, dup := out[e.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate edge %q", e.ID)
		}
		if !forest.Contains(e.Source) || !forest.Contains(e.Target) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %q has an endpoint outside the layout", e.ID)
		}
		out[e.ID] = b.drawEdge(s, e)
	}
	b.opts.Logger.Debug("edges bundled", "edges", len(out), "levelDistance", s.levelDistance, "minY", s.minY)
	return out, nil
}

func (b *Bundler) newScene(transforms layout.Result, forest *tree.Forest, finder *lca.Finder) *scene {
	s := &scene{
		forest:     forest,
		finder:     finder,
		transforms: transforms,
		anchors:    make(map[tree.NodeID]geom.Transform),
		sign:       1,
	}
	if !b.opts.EdgesAboveBlocks {
		s.sign = -1
	}

	var top float64
	for _, id := range forest.IDs() {
		if tr, ok := transforms[id]; ok {
			top = math.Max(top, tr.Top())
		}
	}
	maxDepth := forest.MaxDepth()
	s.levelDistance = b.opts.LevelDistance
	if s.levelDistance == 0 {
		s.levelDistance = math.Max(MinLevelDistance, top/float64(maxDepth+1))
	}
	offset := b.opts.Offset
	if offset == 0 {
		offset = s.levelDistance
	}
	s.minY = offset
	if b.opts.EdgesAboveBlocks {
		s.minY += top
	}
	return s
}

// height returns the control height of a hierarchy level.
func (s *scene) height(level int) float64 {
	return s.sign * (s.minY + float64(s.forest.MaxDepth()-level)*s.levelDistance)
}

// anchor returns the transform used for a node, deriving one from the
// bounding box of its descendants when the layout did not place it.
func (s *scene) anchor(id tree.NodeID) geom.Transform {
	if tr, ok := s.transforms[id]; ok {
		return tr
	}
	if tr, ok := s.anchors[id]; ok {
		return tr
	}
	var box geom.Rect
	found := false
	for _, n := range s.forest.PostOrder(id) {
		tr, ok := s.transforms[n]
		if !ok {
			continue
		}
		if !found {
			box, found = tr.Footprint(), true
			continue
		}
		box = box.Union(tr.Footprint())
	}
	cx, cz := box.Center()
	tr := geom.Transform{Position: r3.Vec{X: cx, Z: cz}}
	s.anchors[id] = tr
	return tr
}

// endpoint is where an edge leaves or enters a block: the roof above the
// city, the base below it.
func (s *scene) endpoint(id tree.NodeID) r3.Vec {
	tr := s.anchor(id)
	if s.sign > 0 {
		return tr.Roof()
	}
	return tr.Position
}

func (s *scene) at(id tree.NodeID, y float64) r3.Vec {
	p := s.anchor(id).Position
	return r3.Vec{X: p.X, Y: y, Z: p.Z}
}

func (b *Bundler) drawEdge(s *scene, e Edge) []r3.Vec {
	if e.Source == e.Target {
		return b.selfLoop(s, e.Source)
	}

	src, dst := s.endpoint(e.Source), s.endpoint(e.Target)
	f := s.forest
	if p := f.Parent(e.Source); p != tree.NoParent && p == f.Parent(e.Target) {
		mid := r3.Scale(0.5, r3.Add(src, dst))
		mid.Y = s.height(f.Level(p))
		return []r3.Vec{src, mid, mid, dst}
	}

	path, ok := s.finder.Path(e.Source, e.Target)
	if !ok {
		b.opts.Logger.Warn("edge endpoints share no ancestor, using a direct arc",
			"edge", e.ID, "code", errors.ErrCodeMissingLCA)
		mid := r3.Scale(0.5, r3.Add(src, dst))
		mid.Y = s.height(0)
		return []r3.Vec{src, mid, dst}
	}

	points := make([]r3.Vec, 0, len(path)+2)
	points = append(points, src)
	for _, n := range path {
		points = append(points, s.at(n, s.height(f.Level(n))))
	}
	return append(points, dst)
}

// selfLoop arcs over the roof diagonal of a block.
func (b *Bundler) selfLoop(s *scene, id tree.NodeID) []r3.Vec {
	tr := s.anchor(id)
	base := s.endpoint(id)
	half := r3.Vec{X: tr.Scale.X / 2, Z: tr.Scale.Z / 2}
	lift := r3.Vec{Y: s.sign * 2 * r3.Norm(half) * b.opts.SelfLoopFactor}

	from := r3.Sub(base, half)
	to := r3.Add(base, half)
	return []r3.Vec{from, r3.Add(from, lift), r3.Add(to, lift), to}
}
