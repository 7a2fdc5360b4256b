package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3(t *testing.T) {
	t.Run("Arithmetic", func(t *testing.T) {
		v := V(1, 2, 3)
		w := V(4, 6, 8)

		assert.Equal(t, V(5, 8, 11), v.Add(w))
		assert.Equal(t, V(3, 4, 5), w.Sub(v))
		assert.Equal(t, V(2, 4, 6), v.Scale(2))
		assert.InDelta(t, 40.0, v.Dot(w), 1e-12)
	})

	t.Run("Norms", func(t *testing.T) {
		v := V(3, 4, 0)

		assert.InDelta(t, 25.0, v.SquaredNorm(), 1e-12)
		assert.InDelta(t, 5.0, v.Norm(), 1e-12)
		assert.InDelta(t, 25.0, v.SquaredDistance(V(0, 0, 0)), 1e-12)
		assert.InDelta(t, 5.0, v.Distance(V(0, 0, 0)), 1e-12)
	})

	t.Run("MinMaxElem", func(t *testing.T) {
		v := V(1, 5, 3)
		w := V(2, 4, 3)

		assert.Equal(t, V(1, 4, 3), v.MinElem(w))
		assert.Equal(t, V(2, 5, 3), v.MaxElem(w))
	})

	t.Run("AxisIndexing", func(t *testing.T) {
		v := V(7, 8, 9)
		assert.Equal(t, 7.0, v[0])
		assert.Equal(t, 8.0, v[1])
		assert.Equal(t, 9.0, v[2])
	})
}
