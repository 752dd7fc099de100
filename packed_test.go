package vecmath

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecmath/testutil"
)

var thirtyFiveBits = []int{
	1, 0, 1, 1, 1, 0, 0, 1, 1, 0,
	1, 1, 1, 0, 1, 0, 0, 0, 1, 0,
	1, 1, 0, 1, 1, 1, 1, 0, 0, 1,
	0, 0, 1, 1, 1,
}

func TestPackedBitVectorAcrossWords(t *testing.T) {
	v := PackedBitVectorFromInts(thirtyFiveBits)

	require.Equal(t, 35, v.Length())
	assert.Equal(t, thirtyFiveBits, ints(v))

	sub, err := v.SubVector(30, 33)
	require.NoError(t, err)
	assert.True(t, PackedBitVectorFromInts([]int{0, 0, 1, 1}).Equals(sub))

	assert.Equal(t,
		"vector type=packed-bit length=35\n"+
			"1 0 1 1 1 0 0 1 1 0 1 1 1 0 1 0 0 0 1 0 1 1 0 1 1 1 1 0 0 1 0 0 1 1 1\n",
		v.String())

	ones := 0
	for _, b := range thirtyFiveBits {
		ones += b
	}
	assert.Equal(t, ones, v.Cardinality())
	assert.Equal(t, float32(ones), v.Sum())

	dot, err := v.DotProduct(v.Clone())
	require.NoError(t, err)
	assert.Equal(t, float32(ones), dot)
}

func TestPackedBitVectorMutation(t *testing.T) {
	v := NewPackedBitVector(40)

	require.NoError(t, v.AddIndex(33))
	require.NoError(t, v.AddAll([]int{0, 31, 32}))
	assert.Equal(t, []int{0, 31, 32, 33}, v.Values())

	require.NoError(t, v.RemoveIndex(31))
	require.NoError(t, v.SetFloat(5, 0.5))
	assert.Equal(t, []int{0, 5, 32, 33}, v.Values())

	require.NoError(t, v.RemoveAll([]int{0, 5}))
	assert.Equal(t, 32, v.ArgMax())
	assert.Equal(t, 0, v.ArgMin())

	require.ErrorIs(t, v.AddIndex(40), ErrOutOfRange)
}

func TestPackedIntVectorRoundTripEveryWidth(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, bits := range []int{1, 2, 4, 8, 16, 32} {
		t.Run(fmt.Sprintf("bits=%d", bits), func(t *testing.T) {
			const length = 97
			maxValue := int(uint32(1<<bits - 1))

			v, err := NewPackedIntVector(length, bits)
			require.NoError(t, err)
			assert.Equal(t, bits, v.Bits())
			assert.Equal(t, maxValue, v.MaxValue())

			want := make([]int, length)
			for range 4 * length {
				i := rng.Intn(length)
				x := rng.Intn(maxValue + 1)
				require.NoError(t, v.SetInt(i, x))
				want[i] = x
			}
			assert.Equal(t, want, ints(v))

			// overwriting with zero must clear every bit of the field
			for i := range length {
				require.NoError(t, v.SetInt(i, 0))
			}
			assert.Equal(t, make([]int, length), ints(v))

			err = v.SetInt(0, maxValue+1)
			var vr *ValueOutOfRangeError
			require.ErrorAs(t, err, &vr)
			assert.Equal(t, maxValue, vr.Max)

			require.ErrorIs(t, v.SetInt(0, -1), ErrOutOfRange)
		})
	}
}

func TestPackedIntVectorConstruction(t *testing.T) {
	for _, bits := range []int{0, 3, 5, 64} {
		_, err := NewPackedIntVector(4, bits)
		var ub *UnsupportedBitsError
		require.ErrorAs(t, err, &ub)
		assert.Equal(t, bits, ub.Bits)
		require.ErrorIs(t, err, ErrUnsupportedBits)
	}

	_, err := PackedIntVectorFrom([]int{1, 16}, 4)
	require.ErrorIs(t, err, ErrOutOfRange)

	err = mustPackedInt(t, 4, 1, 2).SetInt(4, 1)
	var oor *IndexOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, int64(4), oor.Index)
	assert.Equal(t, int64(2), oor.Length)
}

func TestPackedIntVectorArithmetic(t *testing.T) {
	t.Run("add stays packed", func(t *testing.T) {
		got, err := mustPackedInt(t, 4, 1, 2).Add(mustPackedInt(t, 4, 3, 4))
		require.NoError(t, err)
		assert.True(t, mustPackedInt(t, 4, 4, 6).Equals(got))
	})

	t.Run("add overflowing the width fails", func(t *testing.T) {
		_, err := mustPackedInt(t, 4, 15, 1).Add(mustPackedInt(t, 4, 1, 0))
		require.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("different widths fall back to int", func(t *testing.T) {
		got, err := mustPackedInt(t, 4, 15, 1).Add(mustPackedInt(t, 8, 100, 0))
		require.NoError(t, err)
		assert.True(t, IntVectorFrom([]int{115, 1}).Equals(got))
	})

	t.Run("scalar multiply stays packed while it fits", func(t *testing.T) {
		v := mustPackedInt(t, 4, 1, 3, 7)

		fits := v.ScalarMultiply(2)
		assert.True(t, mustPackedInt(t, 4, 2, 6, 14).Equals(fits))

		overflows := v.ScalarMultiply(3)
		assert.True(t, IntVectorFrom([]int{3, 9, 21}).Equals(overflows))
	})

	t.Run("sub vector keeps the width", func(t *testing.T) {
		sub, err := mustPackedInt(t, 16, 1, 60000, 3, 4).SubVector(1, 2)
		require.NoError(t, err)
		assert.True(t, mustPackedInt(t, 16, 60000, 3).Equals(sub))
	})
}
