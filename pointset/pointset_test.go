package pointset

import (
	"testing"

	"github.com/hupe1980/pointbsp/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	s := Slice{geom.V(1, 0, 0), geom.V(0, 2, 0), geom.V(0, 0, 3)}

	t.Run("Len", func(t *testing.T) {
		assert.Equal(t, 3, s.Len())
	})

	t.Run("All", func(t *testing.T) {
		ids := make([]uint32, 0, s.Len())
		for id, p := range s.All() {
			ids = append(ids, id)
			assert.Equal(t, geom.Vec3(s[id]), p)
		}
		assert.Equal(t, []uint32{0, 1, 2}, ids)
	})

	t.Run("AllEarlyStop", func(t *testing.T) {
		var count int
		for range s.All() {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})

	t.Run("Position", func(t *testing.T) {
		p, ok := s.Position(1)
		require.True(t, ok)
		assert.Equal(t, geom.V(0, 2, 0), p)

		_, ok = s.Position(3)
		assert.False(t, ok)
	})
}
