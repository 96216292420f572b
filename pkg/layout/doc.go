// Package layout places the nodes of a code city on the ground plane.
//
// Every algorithm implements [Layout]: it receives a tree arena and the
// handles to lay out, and returns one [geom.Transform] per handle. Roots are
// the handles whose parent is absent or not among the handles, so any subtree
// or subset can be laid out on its own.
//
// # Algorithms
//
// Hierarchical layouts nest children inside their parent and stack them on
// top of the parent's plate:
//
//   - [KindTreemap]: squarified treemap
//   - [KindCirclePacking]: children packed into the parent's disc
//   - [KindBalloon]: children on a ring around the parent's disc
//   - [KindEvoStreets]: packages as streets, classes as houses along them
//
// Flat layouts only accept leaves:
//
//   - [KindRectPacker]: guillotine rectangle packing
//   - [KindManhattan]: uniform grid
//
// # Coordinates
//
// Y is up. A transform's Position is the ground anchor: X and Z are the centre
// of the footprint and Y is the bottom of the block. A child of a
// hierarchical layout sits at its parent's Y plus the parent's height. The
// returned map is fresh for every call; layouts keep no state between calls,
// so repeated calls on the same input yield identical results.
package layout
