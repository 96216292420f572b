package pipeline

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/codecity/pkg/city"
	"github.com/matzehuels/codecity/pkg/edges"
	"github.com/matzehuels/codecity/pkg/layout"
	"github.com/matzehuels/codecity/pkg/metric"
	"github.com/matzehuels/codecity/pkg/observability"
	"github.com/matzehuels/codecity/pkg/tree"
)

// Compute runs every stage on c without caching. opts must have been
// validated. Cancellation is checked between stages.
func Compute(ctx context.Context, c *city.City, opts Options) (*city.Layout, Stats, error) {
	var stats Stats

	t, err := city.BuildTree(c)
	if err != nil {
		return nil, stats, err
	}
	whole, err := tree.Whole(t)
	if err != nil {
		return nil, stats, err
	}
	stats.NodeCount = t.Len()
	stats.EdgeCount = len(c.Edges)

	// Stage 1: Scale
	var colors map[tree.NodeID]float64
	if opts.Scales() {
		start := time.Now()
		observability.Pipeline().OnScaleStart(ctx, opts.Scale, len(whole.Leaves()))
		colors, err = scaleSizes(whole, opts)
		stats.ScaleTime = time.Since(start)
		observability.Pipeline().OnScaleComplete(ctx, opts.Scale, stats.ScaleTime, err)
		if err != nil {
			return nil, stats, fmt.Errorf("scale: %w", err)
		}
		opts.Logger.Debug("scaled sizes", "scale", opts.Scale, "duration", stats.ScaleTime)
	}
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	// Stage 2: Layout
	start := time.Now()
	transforms, err := placeNodes(ctx, t, opts)
	stats.LayoutTime = time.Since(start)
	if err != nil {
		return nil, stats, fmt.Errorf("layout: %w", err)
	}
	opts.Logger.Debug("computed layout", "layout", opts.Layout, "placed", len(transforms), "duration", stats.LayoutTime)
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	out := &city.Layout{Kind: opts.Layout, Nodes: make([]city.PlacedNode, 0, len(transforms))}
	for _, id := range t.IDs() {
		tr, ok := transforms[id]
		if !ok {
			continue
		}
		pn := city.PlacedNode{
			ID:       t.Node(id).ID,
			Position: vec3(tr.Position),
			Scale:    vec3(tr.Scale),
			Rotation: tr.Rotation,
		}
		if v, ok := colors[id]; ok {
			pn.Color = &v
		}
		out.Nodes = append(out.Nodes, pn)
	}

	// Stage 3: Edges
	if opts.SkipEdges || len(c.Edges) == 0 {
		return out, stats, nil
	}
	start = time.Now()
	observability.Pipeline().OnEdgesStart(ctx, len(c.Edges))
	placed, err := bundleEdges(c, t, whole, transforms, opts)
	stats.EdgeTime = time.Since(start)
	observability.Pipeline().OnEdgesComplete(ctx, len(c.Edges), stats.EdgeTime, err)
	if err != nil {
		return nil, stats, fmt.Errorf("edges: %w", err)
	}
	out.Edges = placed
	opts.Logger.Debug("bundled edges", "edges", len(placed), "duration", stats.EdgeTime)
	return out, stats, nil
}

// scaleSizes overwrites the leaf sizes of f from the configured metrics and
// returns the normalized color value of every node when a color metric is
// set. Axes without a metric keep their intrinsic length.
func scaleSizes(f *tree.Forest, opts Options) (map[tree.NodeID]float64, error) {
	scaler, err := metric.New(metric.Kind(opts.Scale), f, opts.metrics(), metric.Options{
		MinimalLength:  opts.MinLength,
		MaximalLength:  opts.MaxLength,
		StandardLength: opts.StandardLength,
		LeavesOnly:     opts.LeavesOnly,
		Logger:         opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	axis := func(id tree.NodeID, m string, fallback float64) float64 {
		if m == "" {
			return fallback
		}
		return scaler.Normalize(id, m)
	}
	for _, id := range f.Leaves() {
		size := f.Node(id).Size
		f.Tree().SetSize(id, r3.Vec{
			X: axis(id, opts.WidthMetric, size.X),
			Y: axis(id, opts.HeightMetric, size.Y),
			Z: axis(id, opts.DepthMetric, size.Z),
		})
	}

	if opts.ColorMetric == "" {
		return nil, nil
	}
	span := opts.MaxLength - opts.MinLength
	colors := make(map[tree.NodeID]float64, f.Len())
	for _, id := range f.IDs() {
		v := 0.0
		if span > 0 {
			v = (scaler.Normalize(id, opts.ColorMetric) - opts.MinLength) / span
		}
		colors[id] = min(1, max(0, v))
	}
	return colors, nil
}

// placeNodes runs the configured layout. Hierarchical layouts place every
// node; flat layouts place the leaves only.
func placeNodes(ctx context.Context, t *tree.Tree, opts Options) (layout.Result, error) {
	l, err := layout.New(layout.Kind(opts.Layout), layout.Options{
		Padding:     opts.Padding,
		InnerHeight: opts.InnerHeight,
		StreetWidth: opts.StreetWidth,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	ids := t.IDs()
	if !l.IsHierarchical() {
		ids = t.Leaves()
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Layout, len(ids))
	res, err := l.Layout(t, ids)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Layout, time.Since(start), err)
	return res, err
}

// bundleEdges routes the city's edges through the containment hierarchy.
func bundleEdges(c *city.City, t *tree.Tree, whole *tree.Forest, transforms layout.Result, opts Options) ([]city.PlacedEdge, error) {
	resolved, err := city.ResolveEdges(c, t)
	if err != nil {
		return nil, err
	}
	b, err := edges.New(edges.Options{
		LevelDistance:    opts.LevelDistance,
		EdgesAboveBlocks: !opts.EdgesBelowGround,
		Logger:           opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	points, err := b.DrawEdges(resolved, transforms, whole)
	if err != nil {
		return nil, err
	}

	out := make([]city.PlacedEdge, 0, len(c.Edges))
	for _, e := range c.Edges {
		ctrl := points[e.Key()]
		if opts.EdgeSamples > 0 {
			ctrl = edges.Sample(ctrl, opts.EdgeSamples)
		}
		pe := city.PlacedEdge{ID: e.Key(), From: e.From, To: e.To, Points: make([][3]float64, len(ctrl))}
		for i, p := range ctrl {
			pe.Points[i] = vec3(p)
		}
		out = append(out, pe)
	}
	return out, nil
}

func vec3(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
