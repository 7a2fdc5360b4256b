package pointbsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pointbsp/geom"
	"github.com/hupe1980/pointbsp/pointset"
	"github.com/hupe1980/pointbsp/testutil"
)

// unitCubeCorners returns the eight corners of the unit cube, identity i
// holding corner (i&1, i>>1&1, i>>2&1).
func unitCubeCorners() pointset.Slice {
	corners := make(pointset.Slice, 8)
	for i := range corners {
		corners[i] = geom.Vec3{
			float64(i & 1),
			float64(i >> 1 & 1),
			float64(i >> 2 & 1),
		}
	}
	return corners
}

func TestBuild(t *testing.T) {
	t.Run("UnitCube", func(t *testing.T) {
		tree := New(unitCubeCorners())

		nodes, err := tree.Build(1, 10)
		require.NoError(t, err)
		assert.Equal(t, 14, nodes)
		assert.Equal(t, 8, tree.Len())

		stats := tree.Stats()
		assert.Equal(t, 8, stats.Points)
		assert.Equal(t, 14, stats.Nodes)
		assert.Equal(t, 8, stats.Leaves)
		assert.Equal(t, 3, stats.Depth)
		assert.Equal(t, 1, stats.MaxLeafRange)
	})

	t.Run("ElementsCoverPointSet", func(t *testing.T) {
		rng := testutil.NewRNG(1)
		points := pointset.Slice(rng.UniformCloud(200))

		tree := New(points)
		_, err := tree.Build(8, 20)
		require.NoError(t, err)

		seen := make(map[uint32]int)
		for _, e := range tree.elements {
			seen[e.id]++
			p, ok := points.Position(e.id)
			require.True(t, ok)
			assert.Equal(t, p, e.position)
		}
		assert.Equal(t, 200, len(seen))
		for _, count := range seen {
			assert.Equal(t, 1, count)
		}
	})

	t.Run("NodeInvariants", func(t *testing.T) {
		rng := testutil.NewRNG(2)
		tree := New(pointset.Slice(rng.UniformCloud(500)))

		_, err := tree.Build(4, 24)
		require.NoError(t, err)

		var walk func(n *node, depth int)
		walk = func(n *node, depth int) {
			if n.isLeaf() {
				assert.LessOrEqual(t, depth, 24)
				return
			}

			// Children tile the parent range.
			assert.Equal(t, n.begin, n.left.begin)
			assert.Equal(t, n.left.end, n.right.begin)
			assert.Equal(t, n.end, n.right.end)

			// The split separates the ranges on the split axis.
			for i := n.left.begin; i < n.left.end; i++ {
				assert.LessOrEqual(t, tree.elements[i].position[n.axis], n.split)
			}
			for i := n.right.begin; i < n.right.end; i++ {
				assert.Greater(t, tree.elements[i].position[n.axis], n.split)
			}

			walk(n.left, depth+1)
			walk(n.right, depth+1)
		}
		walk(tree.root, 0)
	})

	t.Run("DepthBudget", func(t *testing.T) {
		rng := testutil.NewRNG(3)
		tree := New(pointset.Slice(rng.UniformCloud(500)))

		_, err := tree.Build(1, 4)
		require.NoError(t, err)
		assert.LessOrEqual(t, tree.Stats().Depth, 4)
	})

	t.Run("ZeroDepthLeavesRootAsLeaf", func(t *testing.T) {
		tree := New(unitCubeCorners())

		nodes, err := tree.Build(1, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, nodes)
		assert.Equal(t, 1, tree.Stats().Leaves)
	})

	t.Run("Rebuild", func(t *testing.T) {
		tree := New(unitCubeCorners())

		first, err := tree.Build(1, 10)
		require.NoError(t, err)

		second, err := tree.Build(1, 10)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 8, tree.Len())
	})

	t.Run("CoincidentPoints", func(t *testing.T) {
		points := make(pointset.Slice, 16)
		for i := range points {
			points[i] = geom.Vec3{0.5, 0.5, 0.5}
		}

		// Zero extent on all axes: the partition sends everything left and
		// the depth budget stops the recursion.
		tree := New(points)
		_, err := tree.Build(1, 10)
		require.NoError(t, err)

		res, err := tree.Nearest(geom.Vec3{0, 0, 0})
		require.NoError(t, err)
		assert.Equal(t, geom.Vec3{0.5, 0.5, 0.5}, res.Position)
	})

	t.Run("EmptyPointSet", func(t *testing.T) {
		tree := New(pointset.Slice{})

		nodes, err := tree.Build(1, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, nodes)

		_, err = tree.Nearest(geom.Vec3{})
		assert.ErrorIs(t, err, ErrEmptyIndex)
	})

	t.Run("NoPointSet", func(t *testing.T) {
		tree := New(nil)

		_, err := tree.Build(1, 10)
		assert.ErrorIs(t, err, ErrNoPointSet)
	})

	t.Run("InvalidMaxLeafSize", func(t *testing.T) {
		tree := New(unitCubeCorners())

		_, err := tree.Build(0, 10)

		var optErr *ErrInvalidBuildOption
		require.ErrorAs(t, err, &optErr)
		assert.Equal(t, "maxLeafSize", optErr.Name)
	})

	t.Run("InvalidMaxDepth", func(t *testing.T) {
		tree := New(unitCubeCorners())

		_, err := tree.Build(1, -1)

		var optErr *ErrInvalidBuildOption
		require.ErrorAs(t, err, &optErr)
		assert.Equal(t, "maxDepth", optErr.Name)
	})
}

func TestStatsUnbuilt(t *testing.T) {
	tree := New(unitCubeCorners())
	assert.Equal(t, Stats{}, tree.Stats())
}
