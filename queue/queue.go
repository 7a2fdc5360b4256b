// Package queue implements the bounded max-priority candidate queue used by
// k-nearest-neighbor traversals.
package queue

import (
	"container/heap"
	"math"
)

// Compile time check to ensure CandidateQueue satisfies the heap interface.
var _ heap.Interface = (*CandidateQueue)(nil)

// Candidate is a point identity paired with its squared distance to the query.
type Candidate struct {
	ID       uint32  // ID is the point identity.
	Distance float64 // Distance is the squared distance to the query point.
}

// CandidateQueue is a max-priority queue over candidates, bounded to the k
// best (smallest-distance) entries. Until k candidates have been collected,
// the pruning threshold reported by Worst is +Inf, so every finite candidate
// is admitted. No identity value is reserved; the full uint32 range is usable.
type CandidateQueue struct {
	k     int
	items []Candidate
}

// NewCandidateQueue creates an empty candidate queue bounded to k entries.
// k must be positive.
func NewCandidateQueue(k int) *CandidateQueue {
	return &CandidateQueue{k: k}
}

// Len returns the number of candidates currently retained.
func (q *CandidateQueue) Len() int { return len(q.items) }

// Less orders candidates farthest-first (max-heap on distance).
func (q *CandidateQueue) Less(i, j int) bool {
	return q.items[i].Distance > q.items[j].Distance
}

// Swap swaps the candidates with indexes i and j.
func (q *CandidateQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
}

// Push adds x to the queue. It is required by heap.Interface; use Offer instead.
func (q *CandidateQueue) Push(x any) {
	q.items = append(q.items, x.(Candidate))
}

// Pop removes and returns the farthest candidate. It is required by
// heap.Interface; use Drain instead.
func (q *CandidateQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// Worst returns the squared distance of the farthest retained candidate, or
// +Inf while fewer than k candidates have been collected. This is the pruning
// threshold for the traversal.
func (q *CandidateQueue) Worst() float64 {
	if len(q.items) < q.k {
		return math.Inf(1)
	}
	return q.items[0].Distance
}

// Offer admits the candidate if it is strictly closer than the current worst,
// evicting the farthest entry when the bound k is exceeded. It reports
// whether the candidate was admitted.
func (q *CandidateQueue) Offer(id uint32, distance float64) bool {
	if distance >= q.Worst() {
		return false
	}

	heap.Push(q, Candidate{ID: id, Distance: distance})
	if len(q.items) > q.k {
		heap.Pop(q)
	}

	return true
}

// Drain empties the queue and returns the retained candidates ordered from
// nearest to farthest.
func (q *CandidateQueue) Drain() []Candidate {
	out := make([]Candidate, 0, len(q.items))

	for q.Len() > 0 {
		out = append(out, heap.Pop(q).(Candidate))
	}

	// Pop order is farthest to nearest; callers want the reverse.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}
