package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededReproducible(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntRange(-2, 8), b.IntRange(-2, 8))
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestIntRangeInclusive(t *testing.T) {
	s := New(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := s.IntRange(-2, 8)
		require.GreaterOrEqual(t, v, -2)
		require.LessOrEqual(t, v, 8)
		seen[v] = true
	}
	assert.Len(t, seen, 11)
	assert.Equal(t, 3, s.IntRange(3, 3))
}

func TestNewSeed(t *testing.T) {
	seed, err := NewSeed()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, seed, int64(0))
}

func TestScripted(t *testing.T) {
	s := &Scripted{Floats: []float64{0.1}, Ints: []int{12, 99}}
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.99, s.Float64())
	assert.Equal(t, 12, s.IntRange(5, 20))
	assert.Equal(t, 20, s.IntRange(5, 20))
	assert.Equal(t, 5, s.IntRange(5, 20))
}
