// Package pointset defines the contract between the spatial index and the
// container that owns vertex positions and identities. The index only reads
// positions and identities through this interface: once at build time to fill
// its element buffer, and again when reporting canonical nearest-point results.
package pointset

import (
	"iter"

	"github.com/hupe1980/pointbsp/geom"
)

// Compile time check to ensure Slice satisfies the PointSet interface.
var _ PointSet = (Slice)(nil)

// PointSet enumerates a static set of 3D points. Each point has a stable
// integer identity; enumeration order is not required to survive an index
// build, but identities are.
type PointSet interface {
	// Len returns the number of points in the set.
	Len() int

	// All yields every (identity, position) pair in enumeration order.
	All() iter.Seq2[uint32, geom.Vec3]

	// Position resolves the position of the point with the given identity.
	// It returns false if no such point exists.
	Position(id uint32) (geom.Vec3, bool)
}

// Slice is a PointSet backed by a plain slice of positions. The identity of
// each point is its index in the slice.
type Slice []geom.Vec3

// Len returns the number of points in the set.
func (s Slice) Len() int { return len(s) }

// All yields every (identity, position) pair in slice order.
func (s Slice) All() iter.Seq2[uint32, geom.Vec3] {
	return func(yield func(uint32, geom.Vec3) bool) {
		for i, p := range s {
			if !yield(uint32(i), p) {
				return
			}
		}
	}
}

// Position resolves a position by identity.
func (s Slice) Position(id uint32) (geom.Vec3, bool) {
	if int(id) >= len(s) {
		return geom.Vec3{}, false
	}
	return s[id], true
}
