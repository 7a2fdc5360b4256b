package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/pointbsp/geom"
	"github.com/hupe1980/pointbsp/pointset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Vec3 returns a pseudo-random point in the unit cube [0,1)^3.
func (r *RNG) Vec3() geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vec3Locked()
}

func (r *RNG) vec3Locked() geom.Vec3 {
	return geom.Vec3{r.rand.Float64(), r.rand.Float64(), r.rand.Float64()}
}

// UniformCloud generates num points uniformly distributed in the unit cube.
func (r *RNG) UniformCloud(num int) []geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	cloud := make([]geom.Vec3, num)
	for i := range cloud {
		cloud[i] = r.vec3Locked()
	}

	return cloud
}

// UniformCloudRange generates num points uniformly distributed in the cube
// [minVal, maxVal)^3.
func (r *RNG) UniformCloudRange(num int, minVal, maxVal float64) []geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := maxVal - minVal

	cloud := make([]geom.Vec3, num)
	for i := range cloud {
		for c := 0; c < 3; c++ {
			cloud[i][c] = minVal + r.rand.Float64()*span
		}
	}

	return cloud
}

// ClusteredCloud generates points clustered around random centroids with
// Gaussian noise of the given spread. Useful for non-uniform distributions
// where midpoint splits produce unbalanced trees.
func (r *RNG) ClusteredCloud(num, clusters int, spread float64) []geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	centroids := make([]geom.Vec3, clusters)
	for i := range centroids {
		centroids[i] = r.vec3Locked()
	}

	cloud := make([]geom.Vec3, num)
	for i := range cloud {
		centroid := centroids[i%clusters]
		for c := 0; c < 3; c++ {
			cloud[i][c] = centroid[c] + r.rand.NormFloat64()*spread
		}
	}

	return cloud
}

// PlanarCloud generates points whose coordinate on the given axis is fixed
// to value, so the cloud has zero extent on that axis.
func (r *RNG) PlanarCloud(num, axis int, value float64) []geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	cloud := make([]geom.Vec3, num)
	for i := range cloud {
		cloud[i] = r.vec3Locked()
		cloud[i][axis] = value
	}

	return cloud
}

// WithDuplicates appends copies of randomly chosen existing points, so the
// returned cloud contains coincident positions under distinct identities.
func (r *RNG) WithDuplicates(cloud []geom.Vec3, copies int) []geom.Vec3 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(cloud)
	for i := 0; i < copies; i++ {
		out = append(out, cloud[r.rand.Intn(len(cloud))])
	}

	return out
}

// ExactNeighbor is one entry of a brute-force search answer.
type ExactNeighbor struct {
	ID       uint32
	Distance float64
}

// ExactNearest scans all points and returns the one closest to q. The second
// return value is false when the point set is empty.
func ExactNearest(points pointset.PointSet, q geom.Vec3) (ExactNeighbor, bool) {
	best := ExactNeighbor{Distance: math.Inf(1)}
	found := false

	for id, p := range points.All() {
		if d := p.SquaredDistance(q); d < best.Distance {
			best = ExactNeighbor{ID: id, Distance: d}
			found = true
		}
	}
	if !found {
		return ExactNeighbor{}, false
	}

	best.Distance = math.Sqrt(best.Distance)
	return best, true
}

// ExactKNearest scans all points and returns the k closest to q, ordered from
// nearest to farthest with ties broken by identity.
func ExactKNearest(points pointset.PointSet, q geom.Vec3, k int) []ExactNeighbor {
	all := make([]ExactNeighbor, 0, points.Len())
	for id, p := range points.All() {
		all = append(all, ExactNeighbor{ID: id, Distance: p.Distance(q)})
	}

	slices.SortFunc(all, func(a, b ExactNeighbor) int {
		if a.Distance != b.Distance {
			if a.Distance < b.Distance {
				return -1
			}
			return 1
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	if k > len(all) {
		k = len(all)
	}
	return all[:k]
}

// ExactBall scans all points and returns the identities strictly within
// radius of q, sorted ascending. An empty answer is an empty, non-nil slice,
// matching what tree queries report.
func ExactBall(points pointset.PointSet, q geom.Vec3, radius float64) []uint32 {
	squaredRadius := radius * radius

	ids := make([]uint32, 0)
	for id, p := range points.All() {
		if p.SquaredDistance(q) < squaredRadius {
			ids = append(ids, id)
		}
	}

	slices.Sort(ids)
	return ids
}
