package pointbsp

import (
	"time"

	"github.com/hupe1980/pointbsp/pointset"
)

// Tree is a binary space partition over a static set of 3D points. It owns a
// contiguous element buffer copied from the point set and a recursively split
// node hierarchy over that buffer.
//
// A Tree is build-once, query-many: after Build completes, the structure is
// immutable and concurrent read-only queries are safe. A rebuild discards the
// previous buffer and node hierarchy and must not run concurrently with
// queries; that exclusion is the caller's responsibility.
type Tree struct {
	points    pointset.PointSet
	elements  []element
	root      *node
	nodeCount int

	logger  *Logger
	metrics MetricsCollector
}

// New creates a tree over the given point set. The tree is empty until Build
// is called.
func New(points pointset.PointSet, optFns ...Option) *Tree {
	opts := applyOptions(optFns)

	return &Tree{
		points:  points,
		logger:  opts.logger,
		metrics: opts.metrics,
	}
}

// Len returns the number of indexed points.
func (t *Tree) Len() int { return len(t.elements) }

// Build copies all points from the point set into the element buffer,
// discards any previous tree, and recursively splits the longest bounding-box
// axis at its midpoint. A range stops splitting once it holds fewer than
// maxLeafSize elements or the depth budget is exhausted.
//
// It returns the number of nodes created beyond the root: each split adds
// exactly two.
func (t *Tree) Build(maxLeafSize, maxDepth int) (int, error) {
	start := time.Now()

	nodes, err := t.build(maxLeafSize, maxDepth)

	duration := time.Since(start)
	t.metrics.RecordBuild(len(t.elements), nodes, duration, err)
	t.logger.LogBuild(len(t.elements), nodes, duration, err)

	return nodes, err
}

func (t *Tree) build(maxLeafSize, maxDepth int) (int, error) {
	if t.points == nil {
		return 0, ErrNoPointSet
	}
	if maxLeafSize < 1 {
		return 0, &ErrInvalidBuildOption{Name: "maxLeafSize", Value: maxLeafSize}
	}
	if maxDepth < 0 {
		return 0, &ErrInvalidBuildOption{Name: "maxDepth", Value: maxDepth}
	}

	// Copy points to the element buffer in enumeration order.
	t.elements = make([]element, 0, t.points.Len())
	for id, p := range t.points.All() {
		t.elements = append(t.elements, element{position: p, id: id})
	}

	// Discard any previous tree. Dropping the old root releases the whole
	// node hierarchy at once.
	t.root = &node{begin: 0, end: len(t.elements)}
	t.nodeCount = 0

	t.buildRecurse(t.root, maxLeafSize, maxDepth)

	return t.nodeCount, nil
}

func (t *Tree) buildRecurse(n *node, maxLeafSize, depth int) {
	// A single element cannot be partitioned further, whatever maxLeafSize is.
	if depth == 0 || n.size() <= 1 || n.size() < maxLeafSize {
		return
	}

	// Compute the axis-aligned bounding box of the range.
	lo := t.elements[n.begin].position
	hi := lo
	for i := n.begin + 1; i < n.end; i++ {
		lo = lo.MinElem(t.elements[i].position)
		hi = hi.MaxElem(t.elements[i].position)
	}

	// Split the longest side of the bounding box. A later axis wins a tie
	// only when strictly longer.
	extent := hi.Sub(lo)
	axis := 0
	length := extent[0]
	if extent[1] > length {
		axis, length = 1, extent[1]
	}
	if extent[2] > length {
		axis = 2
	}
	split := 0.5 * (lo[axis] + hi[axis])

	n.axis = axis
	n.split = split

	mid := t.partition(n.begin, n.end, axis, split)

	t.nodeCount += 2
	n.left = &node{begin: n.begin, end: mid}
	n.right = &node{begin: mid, end: n.end}

	t.buildRecurse(n.left, maxLeafSize, depth-1)
	t.buildRecurse(n.right, maxLeafSize, depth-1)
}

// partition reorders elements[begin:end) in place so every element with
// coordinate <= split on the given axis precedes every element with a greater
// coordinate, returning the boundary offset. Order within each side is
// unspecified. A zero-extent range lands entirely on the left side, so the
// builder cannot loop: the right child is empty and the depth budget bounds
// the left branch.
func (t *Tree) partition(begin, end, axis int, split float64) int {
	i := begin
	for j := begin; j < end; j++ {
		if t.elements[j].position[axis] <= split {
			t.elements[i], t.elements[j] = t.elements[j], t.elements[i]
			i++
		}
	}
	return i
}

// Stats describes a built tree.
type Stats struct {
	// Points is the number of indexed points.
	Points int

	// Nodes is the number of nodes created beyond the root.
	Nodes int

	// Leaves is the number of terminal nodes.
	Leaves int

	// Depth is the depth of the deepest leaf (the root has depth 0).
	Depth int

	// MaxLeafRange is the size of the largest leaf range.
	MaxLeafRange int
}

// Stats walks the tree and reports its shape. An unbuilt tree yields zeros.
func (t *Tree) Stats() Stats {
	s := Stats{Points: len(t.elements), Nodes: t.nodeCount}
	if t.root != nil {
		statsRecurse(t.root, 0, &s)
	}
	return s
}

func statsRecurse(n *node, depth int, s *Stats) {
	if n.isLeaf() {
		s.Leaves++
		if depth > s.Depth {
			s.Depth = depth
		}
		if n.size() > s.MaxLeafRange {
			s.MaxLeafRange = n.size()
		}
		return
	}
	statsRecurse(n.left, depth+1, s)
	statsRecurse(n.right, depth+1, s)
}
