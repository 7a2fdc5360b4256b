package pointbsp

import "github.com/hupe1980/pointbsp/geom"

// element pairs a point position with its identity. Elements are copied from
// the point set once per build and rearranged in place while partitioning, so
// buffer order does not match point-set enumeration order afterwards; only
// the identity is authoritative.
type element struct {
	position geom.Vec3
	id       uint32
}

// node references a contiguous half-open sub-range [begin, end) of the
// element buffer. Internal nodes additionally carry the split axis and value
// and own both children; a node is a leaf iff both children are nil. The
// children's ranges are disjoint and their union equals the parent's range.
type node struct {
	begin, end int

	axis  int
	split float64

	left, right *node
}

func (n *node) isLeaf() bool { return n.left == nil }

func (n *node) size() int { return n.end - n.begin }
