// Package city defines the JSON wire format of the layout engine.
//
// # Input
//
// A [City] lists nodes and dependency edges. Parents may appear after their
// children:
//
//	{
//	  "nodes": [
//	    {"id": "app"},
//	    {"id": "app/Main.java", "parent": "app", "size": [1, 4, 1], "metrics": {"loc": 120}},
//	    {"id": "app/Util.java", "parent": "app", "metrics": {"loc": 40}}
//	  ],
//	  "edges": [
//	    {"from": "app/Main.java", "to": "app/Util.java"}
//	  ]
//	}
//
// Node fields:
//   - id: unique link name (required)
//   - parent: link name of the containing node; empty for roots
//   - leaf: forces the leaf flag; by default a node is a leaf when nothing
//     names it as parent
//   - size: [width, height, depth]; leaves default to [1, 1, 1]
//   - metrics: raw metric values used by the scalers
//
// Edge IDs default to "from->to".
//
// # Output
//
// A [Layout] carries one entry per placed node, with the ground-anchored
// position, scale and rotation in degrees, and one entry per edge with its
// control points.
package city
