package pointbsp

import (
	"math"
	"time"

	"github.com/hupe1980/pointbsp/geom"
	"github.com/hupe1980/pointbsp/queue"
)

// SearchOptions contains options shared by the three query kinds.
type SearchOptions struct {
	// Filter restricts results to identities it admits. A nil filter admits
	// every point. Filtering happens at leaf scans and never loosens pruning.
	Filter FilterFunc
}

// NearestResult is the answer to a nearest-point query.
type NearestResult struct {
	// ID is the identity of the nearest point.
	ID uint32

	// Position is the canonical position of the nearest point, resolved
	// through the point set when one is attached.
	Position geom.Vec3

	// Distance is the Euclidean distance from the query to the nearest point.
	Distance float64

	// LeafVisits is the number of terminal nodes scanned by this query.
	LeafVisits int
}

// Neighbor is one entry of a k-nearest answer.
type Neighbor struct {
	// ID is the identity of the neighbor.
	ID uint32

	// Distance is the Euclidean distance from the query to the neighbor.
	Distance float64
}

// KNearestResult is the answer to a k-nearest query.
type KNearestResult struct {
	// Neighbors is ordered from nearest to farthest. It holds fewer than k
	// entries when the index holds fewer than k points, or when a filter
	// rejects too many candidates.
	Neighbors []Neighbor

	// LeafVisits is the number of terminal nodes scanned by this query.
	LeafVisits int
}

// BallResult is the answer to a fixed-radius range query.
type BallResult struct {
	// IDs holds the identities of all points strictly within the radius,
	// in no particular order.
	IDs []uint32

	// LeafVisits is the number of terminal nodes scanned by this query.
	LeafVisits int
}

// Nearest returns the single point closest to q.
func (t *Tree) Nearest(q geom.Vec3, optFns ...func(o *SearchOptions)) (NearestResult, error) {
	start := time.Now()

	res, err := t.nearest(q, applySearchOptions(optFns))

	t.observeQuery(QueryNearest, res.LeafVisits, start, err)
	return res, err
}

func (t *Tree) nearest(q geom.Vec3, opts SearchOptions) (NearestResult, error) {
	if t.root == nil || len(t.elements) == 0 {
		return NearestResult{}, ErrEmptyIndex
	}

	st := nearestState{
		query:  q,
		dist:   math.Inf(1),
		filter: opts.Filter,
	}
	t.nearestRecurse(t.root, &st)

	if !st.found {
		return NearestResult{LeafVisits: st.leafVisits}, ErrNotFound
	}

	res := NearestResult{
		ID:         st.id,
		Position:   st.position,
		Distance:   math.Sqrt(st.dist),
		LeafVisits: st.leafVisits,
	}

	// Report the canonical position owned by the point set, not the buffered copy.
	if t.points != nil {
		if p, ok := t.points.Position(st.id); ok {
			res.Position = p
		}
	}

	return res, nil
}

// nearestState carries the running best across one nearest traversal.
type nearestState struct {
	query      geom.Vec3
	dist       float64 // squared
	id         uint32
	position   geom.Vec3
	found      bool
	leafVisits int
	filter     FilterFunc
}

func (t *Tree) nearestRecurse(n *node, st *nearestState) {
	// Non-terminal node: descend the side the query falls on first, then the
	// far side only while the splitting plane is closer than the current best.
	if !n.isLeaf() {
		off := st.query[n.axis] - n.split

		if off > 0 {
			t.nearestRecurse(n.right, st)
			if off*off < st.dist {
				t.nearestRecurse(n.left, st)
			}
		} else {
			t.nearestRecurse(n.left, st)
			if off*off < st.dist {
				t.nearestRecurse(n.right, st)
			}
		}

		return
	}

	// Terminal node: scan the leaf range.
	st.leafVisits++

	for i := n.begin; i < n.end; i++ {
		e := &t.elements[i]
		if st.filter != nil && !st.filter(e.id) {
			continue
		}

		if d := e.position.SquaredDistance(st.query); d < st.dist {
			st.dist = d
			st.id = e.id
			st.position = e.position
			st.found = true
		}
	}
}

// KNearest returns the k points closest to q, ordered from nearest to
// farthest. When the index holds fewer than k points, k is capped and fewer
// neighbors are returned.
func (t *Tree) KNearest(q geom.Vec3, k int, optFns ...func(o *SearchOptions)) (KNearestResult, error) {
	start := time.Now()

	res, err := t.kNearest(q, k, applySearchOptions(optFns))

	t.observeQuery(QueryKNearest, res.LeafVisits, start, err)
	return res, err
}

func (t *Tree) kNearest(q geom.Vec3, k int, opts SearchOptions) (KNearestResult, error) {
	if k < 1 {
		return KNearestResult{}, ErrInvalidK
	}
	if t.root == nil || len(t.elements) == 0 {
		return KNearestResult{}, ErrEmptyIndex
	}
	if k > len(t.elements) {
		k = len(t.elements)
	}

	st := kNearestState{
		query:      q,
		candidates: queue.NewCandidateQueue(k),
		filter:     opts.Filter,
	}
	t.kNearestRecurse(t.root, &st)

	drained := st.candidates.Drain()
	neighbors := make([]Neighbor, 0, len(drained))
	for _, c := range drained {
		neighbors = append(neighbors, Neighbor{ID: c.ID, Distance: math.Sqrt(c.Distance)})
	}

	return KNearestResult{Neighbors: neighbors, LeafVisits: st.leafVisits}, nil
}

// kNearestState carries the bounded candidate queue across one traversal.
type kNearestState struct {
	query      geom.Vec3
	candidates *queue.CandidateQueue
	leafVisits int
	filter     FilterFunc
}

func (t *Tree) kNearestRecurse(n *node, st *kNearestState) {
	// Non-terminal node: the pruning threshold is the worst retained distance.
	if !n.isLeaf() {
		off := st.query[n.axis] - n.split

		if off > 0 {
			t.kNearestRecurse(n.right, st)
			if off*off < st.candidates.Worst() {
				t.kNearestRecurse(n.left, st)
			}
		} else {
			t.kNearestRecurse(n.left, st)
			if off*off < st.candidates.Worst() {
				t.kNearestRecurse(n.right, st)
			}
		}

		return
	}

	// Terminal node: admit every element closer than the worst retained.
	st.leafVisits++

	for i := n.begin; i < n.end; i++ {
		e := &t.elements[i]
		if st.filter != nil && !st.filter(e.id) {
			continue
		}

		st.candidates.Offer(e.id, e.position.SquaredDistance(st.query))
	}
}

// Ball returns the identities of all points strictly within radius of q.
// Boundary points at exactly the radius are excluded.
func (t *Tree) Ball(q geom.Vec3, radius float64, optFns ...func(o *SearchOptions)) (BallResult, error) {
	start := time.Now()

	res, err := t.ball(q, radius, applySearchOptions(optFns))

	t.observeQuery(QueryBall, res.LeafVisits, start, err)
	return res, err
}

func (t *Tree) ball(q geom.Vec3, radius float64, opts SearchOptions) (BallResult, error) {
	if radius < 0 || math.IsNaN(radius) {
		return BallResult{}, ErrInvalidRadius
	}
	if t.root == nil || len(t.elements) == 0 {
		return BallResult{}, ErrEmptyIndex
	}

	st := ballState{
		query:         q,
		squaredRadius: radius * radius,
		ids:           make([]uint32, 0),
		filter:        opts.Filter,
	}
	t.ballRecurse(t.root, &st)

	return BallResult{IDs: st.ids, LeafVisits: st.leafVisits}, nil
}

// ballState accumulates identities within the fixed squared radius.
type ballState struct {
	query         geom.Vec3
	squaredRadius float64
	ids           []uint32
	leafVisits    int
	filter        FilterFunc
}

func (t *Tree) ballRecurse(n *node, st *ballState) {
	// Non-terminal node: the pruning threshold is the fixed squared radius.
	if !n.isLeaf() {
		off := st.query[n.axis] - n.split

		if off > 0 {
			t.ballRecurse(n.right, st)
			if off*off < st.squaredRadius {
				t.ballRecurse(n.left, st)
			}
		} else {
			t.ballRecurse(n.left, st)
			if off*off < st.squaredRadius {
				t.ballRecurse(n.right, st)
			}
		}

		return
	}

	// Terminal node: collect every element strictly inside the ball.
	st.leafVisits++

	for i := n.begin; i < n.end; i++ {
		e := &t.elements[i]
		if st.filter != nil && !st.filter(e.id) {
			continue
		}

		if e.position.SquaredDistance(st.query) < st.squaredRadius {
			st.ids = append(st.ids, e.id)
		}
	}
}

func (t *Tree) observeQuery(kind QueryKind, leafVisits int, start time.Time, err error) {
	duration := time.Since(start)
	t.metrics.RecordQuery(kind, leafVisits, duration, err)
	t.logger.LogQuery(kind, leafVisits, duration, err)
}

func applySearchOptions(optFns []func(o *SearchOptions)) SearchOptions {
	var opts SearchOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}
