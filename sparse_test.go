package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImmutableSparseBitsRejectMutation(t *testing.T) {
	small := mustSparseBits(t, 1, 4)
	large, err := NewLargeSparseBitVector([]int64{1, 4})
	require.NoError(t, err)

	for _, v := range []BitVector{small, large} {
		t.Run(v.Kind().String(), func(t *testing.T) {
			require.ErrorIs(t, v.SetInt(0, 1), ErrImmutable)
			require.ErrorIs(t, v.SetFloat(0, 1), ErrImmutable)
			require.ErrorIs(t, v.SetBoolean(0, true), ErrImmutable)
			require.ErrorIs(t, v.SetString(0, "1"), ErrImmutable)
			require.ErrorIs(t, v.AddIndex(2), ErrImmutable)
			require.ErrorIs(t, v.RemoveIndex(1), ErrImmutable)
			require.ErrorIs(t, v.AddAll([]int{2, 3}), ErrImmutable)
			require.ErrorIs(t, v.RemoveAll([]int{1}), ErrImmutable)
			assert.Equal(t, []int{1, 4}, v.Values())
		})
	}

	require.ErrorIs(t, large.LargeAddIndex(1<<40), ErrImmutable)
	require.ErrorIs(t, large.LargeSetBoolean(0, true), ErrImmutable)
}

func TestSparseBitVectorConstruction(t *testing.T) {
	v := mustSparseBits(t, 7, 3, 3, 0)
	assert.Equal(t, []int{0, 3, 7}, v.Values())
	assert.Equal(t, 8, v.Length())
	assert.Equal(t, 3, v.Cardinality())
	assert.True(t, v.Contains(3))
	assert.False(t, v.Contains(100))
	assert.False(t, v.GetBoolean(-1))

	empty := mustSparseBits(t)
	assert.Equal(t, 0, empty.Length())

	_, err := NewSparseBitVector([]int{-1})
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewSparseBitVector([]int{1 << 31})
	require.ErrorIs(t, err, ErrOutOfRange)

	fromBools := SparseBitVectorFromBooleans([]bool{false, true, false, true, false})
	assert.Equal(t, []int{1, 3}, fromBools.Values())
	assert.Equal(t, 4, fromBools.Length())
}

func TestSparseBitSubVector(t *testing.T) {
	v := mustSparseBits(t, 1, 4, 6, 9)

	sub, err := v.SubVector(1, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3, 5}, sub.(BitVector).Values())
	assert.Equal(t, 6, sub.Length())

	m, err := MutableSparseBitVectorFrom([]int{1, 4, 6, 9})
	require.NoError(t, err)
	msub, err := m.SubVector(2, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, msub.(BitVector).Values())
}

func TestMutableSparseBitDynamicLength(t *testing.T) {
	v := NewMutableSparseBitVector()
	assert.Equal(t, 0, v.Length())

	require.NoError(t, v.AddIndex(5))
	assert.Equal(t, 6, v.Length())

	require.NoError(t, v.AddIndex(2))
	assert.Equal(t, 6, v.Length())

	require.NoError(t, v.RemoveIndex(5))
	assert.Equal(t, 3, v.Length())

	require.NoError(t, v.RemoveIndex(2))
	assert.Equal(t, 0, v.Length())

	require.ErrorIs(t, v.AddIndex(-1), ErrOutOfRange)

	require.NoError(t, v.AddAll([]int{9, 1, 3}))
	assert.Equal(t, []int{1, 3, 9}, v.Values())
	require.NoError(t, v.RemoveAll([]int{9, 3}))
	assert.Equal(t, []int{1}, v.Values())

	require.NoError(t, v.SetString(4, "true"))
	assert.True(t, v.Contains(4))
	require.NoError(t, v.SetInt(4, 0))
	assert.False(t, v.Contains(4))
}

func TestMutableSparseBitArgMinArgMax(t *testing.T) {
	tests := []struct {
		name           string
		indices        []int
		argMin, argMax int
	}{
		{"gap after a prefix", []int{0, 1, 3, 5}, 2, 0},
		{"leading gap", []int{2, 4}, 0, 2},
		{"fully populated", []int{0, 1, 2}, 0, 0},
		{"empty", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := MutableSparseBitVectorFrom(tt.indices)
			require.NoError(t, err)
			assert.Equal(t, tt.argMin, v.ArgMin())
			assert.Equal(t, tt.argMax, v.ArgMax())
		})
	}
}

func TestMutableSparseBitSetOperations(t *testing.T) {
	a, err := MutableSparseBitVectorFrom([]int{1, 3, 5, 7})
	require.NoError(t, err)
	b, err := MutableSparseBitVectorFrom([]int{3, 4, 7})
	require.NoError(t, err)

	union, err := a.Union(b)
	require.NoError(t, err)
	assert.Equal(t, KindMutableSparseBit, union.Kind())
	assert.Equal(t, []int{1, 3, 4, 5, 7}, union.Values())

	inter, err := a.Intersection(b)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7}, inter.Values())

	dot, err := a.DotProduct(b)
	require.NoError(t, err)
	assert.Equal(t, float32(2), dot)

	// operands are left untouched
	assert.Equal(t, []int{1, 3, 5, 7}, a.Values())

	mixed, err := a.Union(mustSparseBits(t, 0))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3, 5, 7}, mixed.Values())

	a.Trim()
	assert.Equal(t, 4, a.Cardinality())
}

func TestLargeSparseBits(t *testing.T) {
	const big = int64(1) << 40

	v := NewLargeMutableSparseBitVector()
	require.NoError(t, v.LargeAddIndex(big))
	require.NoError(t, v.LargeAddIndex(3))
	assert.Equal(t, big+1, v.LargeLength())
	assert.True(t, v.LargeContains(big))
	assert.False(t, v.LargeContains(big-1))
	assert.Equal(t, []int64{3, big}, v.LargeValues())
	assert.Equal(t, int64(3), v.LargeArgMax())
	assert.Equal(t, int64(0), v.LargeArgMin())

	require.NoError(t, v.LargeRemoveIndex(big))
	assert.Equal(t, int64(4), v.LargeLength())

	immutable, err := NewLargeSparseBitVector([]int64{5, 1 << 35, 5})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 1 << 35}, immutable.LargeValues())
	assert.Equal(t, int64(1)<<35+1, immutable.LargeLength())

	var seen []int64
	for i := range immutable.LargeAll() {
		seen = append(seen, i)
	}
	assert.Equal(t, immutable.LargeValues(), seen)

	sub, err := immutable.LargeSubVector(5, 1<<35)
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<35-4, sub.LargeLength())
}

func TestHashSparseFromPairs(t *testing.T) {
	pairs := []float32{0, -11, 2, 11, 3, 22, 4, 33, 5, 44, 6, 55, 7, 66, 8, 77, 9, 88, 10, 99}

	v, err := HashSparseFloatVectorFromPairs(pairs)
	require.NoError(t, err)

	assert.Equal(t, 11, v.Length())
	assert.Equal(t, float32(0), v.GetFloat(1))
	assert.Equal(t, float32(-11), v.GetFloat(0))
	assert.Equal(t, float32(99), v.GetFloat(10))
	assert.Equal(t, 10, v.Populated())
	assert.Equal(t, float32(0), v.DefaultValue())
	assert.Equal(t, 0, v.ArgMin())
	assert.Equal(t, 10, v.ArgMax())

	_, err = HashSparseFloatVectorFromPairs([]float32{1, 2, 3})
	require.ErrorIs(t, err, ErrMalformedInput)

	_, err = HashSparseFloatVectorFromPairs([]float32{1.5, 2})
	require.ErrorIs(t, err, ErrMalformedInput)

	_, err = HashSparseIntVectorFromPairs([]int{-1, 2})
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = HashSparseIntVectorFromPairs([]int{9, 2}, WithLength(5))
	require.ErrorIs(t, err, ErrOutOfRange)

	padded, err := HashSparseIntVectorFromPairs([]int{1, 2}, WithLength(5))
	require.NoError(t, err)
	assert.Equal(t, 5, padded.Length())
}

func TestHashSparseDefaultValue(t *testing.T) {
	v := NewHashSparseFloatVector(4, WithDefault(2.5))
	require.NoError(t, v.SetFloat(1, -1))

	assert.Equal(t, []float32{2.5, -1, 2.5, 2.5}, floats(v))
	assert.Equal(t, float32(6.5), v.Sum())
	assert.Equal(t, float32(-1), v.Min())
	assert.Equal(t, float32(2.5), v.Max())
	assert.Equal(t, 1, v.ArgMin())
	assert.Equal(t, 0, v.ArgMax())

	i := NewHashSparseIntVector(3, WithDefault(1.6))
	assert.Equal(t, []int{2, 2, 2}, ints(i))
}

func TestHashSparseSetGrowsLength(t *testing.T) {
	v := NewHashSparseIntVector(2)
	require.NoError(t, v.SetInt(6, 3))
	assert.Equal(t, 7, v.Length())
	assert.Equal(t, 3, v.GetInt(6))

	require.ErrorIs(t, v.SetInt(-1, 3), ErrOutOfRange)
}

func TestHashSparseUnion(t *testing.T) {
	a, err := HashSparseFloatVectorFromPairs([]float32{0, 1, 2, 5})
	require.NoError(t, err)
	b, err := HashSparseFloatVectorFromPairs([]float32{1, 3, 2, 4, 4, 9})
	require.NoError(t, err)

	u, err := a.Union(b, SemiringTropical)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 3, 5, 0, 9}, floats(u))

	reversed, err := b.Union(a, SemiringTropical)
	require.NoError(t, err)
	assert.True(t, u.Equals(reversed))

	_, err = a.Union(b, SemiringLog)
	require.ErrorIs(t, err, ErrUnsupportedSemiring)
	_, err = a.Union(b, SemiringReal)
	require.ErrorIs(t, err, ErrUnsupportedSemiring)

	_, err = a.Union(NewHashSparseFloatVector(3, WithDefault(1)), SemiringTropical)
	var se *UnsupportedSemiringError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, SemiringTropical, se.Semiring)
}

func TestHashSparseInPlace(t *testing.T) {
	v, err := HashSparseIntVectorFromPairs([]int{1, 5, 3, 7})
	require.NoError(t, err)

	got, err := v.InPlaceAdd(IntVectorFrom([]int{1, 1, 1, 1}))
	require.NoError(t, err)
	assert.Same(t, v, got)
	assert.Equal(t, []int{1, 6, 1, 8}, ints(v))

	_, err = v.InPlaceElementwiseMultiply(mustSparseBits(t, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6, 0, 8}, ints(v))

	v.InPlaceScalarAdd(1)
	assert.Equal(t, []int{1, 7, 1, 9}, ints(v))

	v.InPlaceScalarMultiply(2)
	assert.Equal(t, []int{2, 14, 2, 18}, ints(v))

	_, err = v.InPlaceAdd(NewIntVector(5))
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestHashSparseTrimKeepsValues(t *testing.T) {
	v, err := HashSparseFloatVectorFromPairs([]float32{1, 2, 8, 3})
	require.NoError(t, err)

	before := floats(v)
	v.Trim()
	assert.Equal(t, before, floats(v))
}

func TestHashSparseUnsortedPairsLength(t *testing.T) {
	v, err := HashSparseIntVectorFromPairs([]int{7, 1, 2, 3, 5, 9})
	require.NoError(t, err)
	assert.Equal(t, 8, v.Length())
	assert.Equal(t, 1, v.GetInt(7))
	assert.Equal(t, 9, v.GetInt(5))
}

func TestHashSparseForEachPopulated(t *testing.T) {
	v, err := HashSparseIntVectorFromPairs([]int{7, 1, 2, 3, 5, 9})
	require.NoError(t, err)

	var indices []int
	v.ForEachPopulated(func(i int, value float32) bool {
		indices = append(indices, i)
		return i < 5
	})
	assert.Equal(t, []int{2, 5}, indices)
}

func TestLargeHashSparse(t *testing.T) {
	const big = int64(1) << 33

	v := NewLargeHashSparseFloatVector(10, WithDefault(-1))
	require.NoError(t, v.LargeSetFloat(big, 4.5))

	assert.Equal(t, big+1, v.LargeLength())
	assert.Equal(t, float32(4.5), v.LargeGetFloat(big))
	assert.Equal(t, float32(-1), v.LargeGetFloat(7))
	assert.Equal(t, big, v.LargeArgMax())

	sub, err := v.LargeSubVector(big-2, big)
	require.NoError(t, err)
	assert.Equal(t, int64(3), sub.LargeLength())
	assert.Equal(t, float32(4.5), sub.LargeGetFloat(2))
	assert.Equal(t, float32(-1), sub.LargeGetFloat(0))

	i, err := LargeHashSparseIntVectorFromPairs([]int{3, 4})
	require.NoError(t, err)
	require.NoError(t, i.LargeSetInt(big, 2))
	assert.Equal(t, 2, i.LargeGetInt(big))
	assert.Equal(t, 4, i.LargeGetInt(3))
}
