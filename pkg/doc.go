// Package pkg holds the libraries behind codecity, a layout engine that
// turns hierarchical software structure into a 3D city.
//
// # Overview
//
// Packages become districts, classes become buildings and metrics decide
// building sizes. The engine computes where every block sits; rendering is
// left to the consumer of the output document.
//
//	city.json (nodes, parents, metrics, edges)
//	         ↓
//	    [city] package (decode, build the tree)
//	         ↓
//	    [metric] package (metric values -> block lengths)
//	         ↓
//	    [layout] package (transforms per node)
//	         ↓
//	    [edges] package (bundled control points, via [lca])
//	         ↓
//	    layout.json
//
// [pipeline] chains these stages with caching ([cache]) and event hooks
// ([observability]).
//
// # Quick Start
//
//	c, err := city.ImportCity("app.json")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Run(ctx, c, pipeline.Options{
//	    Layout:       "evostreets",
//	    HeightMetric: "loc",
//	})
//	if err != nil {
//	    return err
//	}
//	return city.ExportLayout(res.Layout, "app.layout.json")
//
// The layout algorithms can be used directly on a [tree.Tree]:
//
//	l, _ := layout.New(layout.KindTreemap, layout.Options{Padding: 0.1})
//	transforms, err := l.Layout(t, t.IDs())
//
// # Packages
//
//   - [tree]: arena tree and forest views over node subsets
//   - [geom]: transforms, rectangles and circles
//   - [metric]: linear and z-score scalers
//   - [circlepack]: circle relaxation and smallest enclosing circle
//   - [lca]: lowest common ancestor queries
//   - [layout]: treemap, circle packing, balloon, EvoStreets, rectangle packer, Manhattan grid
//   - [edges]: hierarchical edge bundling and B-spline sampling
//   - [city]: JSON wire format
//   - [pipeline], [cache], [observability], [errors], [buildinfo]: plumbing
package pkg
