// Package circlepack relaxes overlapping circles and computes the smallest
// circle enclosing them.
//
// The package is layout-agnostic: the circle-packing and balloon layouts use
// it to turn a set of child discs into one parent disc, but it knows nothing
// about trees.
//
// # Algorithm
//
// [Pack] sorts circles by descending radius (stable), then runs relaxation
// passes: every overlapping pair is pushed apart symmetrically by half of its
// overlap. Passes repeat until no pair overlaps or the iteration cap is hit.
// The smallest enclosing circle is then built with [Enclose], and every circle
// is translated so that the enclosing centre becomes the origin.
//
// [Enclose] is the recursive construction of Welzl adapted to circles: the
// smallest circle is removed, the rest is enclosed recursively, and if the
// removed circle sticks out it is added to the boundary set and the rest is
// enclosed again. Boundary sets of 0 to 3 circles have closed forms.
package circlepack
