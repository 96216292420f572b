// Package edges computes hierarchically bundled control points for the
// dependency edges of a laid-out code city.
//
// An edge between two blocks climbs the containment tree from its source to
// the lowest common ancestor of both endpoints and descends to the target.
// Every node on that path contributes one control point above its anchor, at
// a height that grows with how close the node is to the root:
//
//	y = minY + (maxDepth - level) * levelDistance
//
// Edges between nodes deep in the hierarchy therefore stay low, while edges
// that cross the city arc high, and edges sharing ancestors share control
// points, which bundles them visually. Siblings skip the hierarchy and
// self-loops get a small arc over their own roof.
//
// [Sample] turns control points into a polyline along a clamped B-spline for
// consumers that do not evaluate splines themselves.
package edges
