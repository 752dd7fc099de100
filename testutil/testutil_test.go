package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloats(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Floats(32)

	assert.Len(t, v, 32)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, float32(-1))
		assert.Less(t, x, float32(1))
	}
}

func TestInts(t *testing.T) {
	rng := NewRNG(4711)

	for _, x := range rng.Ints(1000, 15) {
		assert.GreaterOrEqual(t, x, 0)
		assert.LessOrEqual(t, x, 15)
	}
}

func TestBits(t *testing.T) {
	rng := NewRNG(4711)

	bits := rng.Bits(10000, 0.25)

	ones := 0
	for _, b := range bits {
		require.Contains(t, []int{0, 1}, b)
		ones += b
	}
	assert.InDelta(t, 2500, ones, 250)
}

func TestSparseIndices(t *testing.T) {
	rng := NewRNG(4711)

	idx := rng.SparseIndices(500, 0.05)

	require.NotEmpty(t, idx)
	assert.True(t, slices.IsSorted(idx))
	assert.Equal(t, 499, idx[len(idx)-1])
	assert.Equal(t, len(idx), len(slices.Compact(slices.Clone(idx))))

	assert.Nil(t, rng.SparseIndices(0, 0.5))
}

func TestSparseIndices64(t *testing.T) {
	rng := NewRNG(4711)

	idx := rng.SparseIndices64(100, 1<<40)

	assert.Len(t, idx, 100)
	assert.True(t, slices.IsSorted(idx))
	for _, i := range idx {
		assert.Less(t, i, int64(1<<40))
	}
}

func TestZipfPairs(t *testing.T) {
	rng := NewRNG(42)

	pairs := rng.ZipfPairs(1000, 100, 1.5)

	require.Len(t, pairs, 2000)
	counts := make([]int, 100)
	for i := 0; i < len(pairs); i += 2 {
		counts[pairs[i]]++
		assert.Positive(t, pairs[i+1])
	}
	assert.Greater(t, counts[0], counts[50], "low indices dominate")
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.Floats(10)

	rng.Reset()
	v2 := rng.Floats(10)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}
