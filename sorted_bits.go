package vecmath

import (
	"iter"
	"math"
	"slices"
)

type sparseIndex interface{ ~int32 | ~int64 }

// sortedBits is the read-only core of the immutable sparse bit vectors: a sorted,
// duplicate-free index array. Length is derived as last index + 1.
type sortedBits[T sparseIndex] struct {
	indices []T
}

func newSortedBits[T sparseIndex](indices []T) sortedBits[T] {
	out := slices.Clone(indices)
	slices.Sort(out)
	return sortedBits[T]{indices: slices.Compact(out)}
}

// toIndex narrows i to T, reporting false when it does not fit or is negative.
func toIndex[T sparseIndex](i int64) (T, bool) {
	t := T(i)
	return t, i >= 0 && int64(t) == i
}

// collectIndices drains an ascending index sequence into a T slice.
func collectIndices[T sparseIndex](seq iter.Seq[int]) ([]T, error) {
	var out []T
	for i := range seq {
		t, ok := toIndex[T](int64(i))
		if !ok {
			return nil, indexOutOfRange(int64(i), maxIndex[T]()+1)
		}
		out = append(out, t)
	}
	return out, nil
}

func maxIndex[T sparseIndex]() int64 {
	var t T
	if _, ok := any(t).(int32); ok {
		return math.MaxInt32
	}
	return math.MaxInt64 - 1
}

func (s *sortedBits[T]) largeLength() int64 {
	if len(s.indices) == 0 {
		return 0
	}
	return int64(s.indices[len(s.indices)-1]) + 1
}

func (s *sortedBits[T]) Length() int { return int(s.largeLength()) }

func (s *sortedBits[T]) contains(i int64) bool {
	t, ok := toIndex[T](i)
	if !ok {
		return false
	}
	_, found := slices.BinarySearch(s.indices, t)
	return found
}

func (s *sortedBits[T]) Contains(i int) bool        { return s.contains(int64(i)) }
func (s *sortedBits[T]) GetBoolean(i int) bool      { return s.contains(int64(i)) }
func (s *sortedBits[T]) GetInt(i int) int           { return boolToInt(s.contains(int64(i))) }
func (s *sortedBits[T]) GetFloat(i int) float32     { return boolToFloat(s.contains(int64(i))) }
func (s *sortedBits[T]) Infinity() float32          { return 1 }
func (s *sortedBits[T]) NegativeInfinity() float32  { return 0 }
func (s *sortedBits[T]) DefaultValue() float32      { return 0 }
func (s *sortedBits[T]) Cardinality() int           { return len(s.indices) }
func (s *sortedBits[T]) Populated() int             { return len(s.indices) }
func (s *sortedBits[T]) Trim()                      { s.indices = slices.Clip(s.indices) }
func (s *sortedBits[T]) SetInt(int, int) error      { return ErrImmutable }
func (s *sortedBits[T]) SetFloat(int, float32) error { return ErrImmutable }
func (s *sortedBits[T]) SetBoolean(int, bool) error { return ErrImmutable }
func (s *sortedBits[T]) SetString(int, string) error { return ErrImmutable }
func (s *sortedBits[T]) AddIndex(int) error         { return ErrImmutable }
func (s *sortedBits[T]) RemoveIndex(int) error      { return ErrImmutable }
func (s *sortedBits[T]) AddAll([]int) error         { return ErrImmutable }
func (s *sortedBits[T]) RemoveAll([]int) error      { return ErrImmutable }

func (s *sortedBits[T]) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, i := range s.indices {
			if !yield(int(i)) {
				return
			}
		}
	}
}

func (s *sortedBits[T]) largeAll() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for _, i := range s.indices {
			if !yield(int64(i)) {
				return
			}
		}
	}
}

func (s *sortedBits[T]) Values() []int {
	out := make([]int, len(s.indices))
	for n, i := range s.indices {
		out[n] = int(i)
	}
	return out
}

func (s *sortedBits[T]) ForEachPopulated(fn func(i int, value float32) bool) {
	for _, i := range s.indices {
		if !fn(int(i), 1) {
			return
		}
	}
}

func (s *sortedBits[T]) Sum() float32 { return float32(len(s.indices)) }

func (s *sortedBits[T]) Min() float32 {
	if len(s.indices) == 0 {
		return s.Infinity()
	}
	return float32(s.IntMin())
}

func (s *sortedBits[T]) Max() float32 {
	if len(s.indices) == 0 {
		return s.NegativeInfinity()
	}
	return 1
}

// IntMin is 1 only when every slot in [0, length) is populated.
func (s *sortedBits[T]) IntMin() int {
	if len(s.indices) == 0 {
		return math.MaxInt
	}
	if int64(len(s.indices)) == s.largeLength() {
		return 1
	}
	return 0
}

func (s *sortedBits[T]) IntMax() int {
	if len(s.indices) == 0 {
		return math.MinInt
	}
	return 1
}

// largeArgMin returns the first unpopulated index, or 0 when there is none.
func (s *sortedBits[T]) largeArgMin() int64 {
	for n, i := range s.indices {
		if int64(i) != int64(n) {
			return int64(n)
		}
	}
	return 0
}

// largeArgMax returns the lowest populated index, or 0 when empty.
func (s *sortedBits[T]) largeArgMax() int64 {
	if len(s.indices) == 0 {
		return 0
	}
	return int64(s.indices[0])
}

func (s *sortedBits[T]) ArgMin() int { return int(s.largeArgMin()) }
func (s *sortedBits[T]) ArgMax() int { return int(s.largeArgMax()) }

func (s *sortedBits[T]) ScalarAdd(addend int) Vector {
	out := make([]int, s.Length())
	for n := range out {
		out[n] = addend
	}
	for _, i := range s.indices {
		out[i]++
	}
	return &IntVector{values: out}
}

func (s *sortedBits[T]) ScalarAddFloat(addend float32) Vector {
	out := make([]float32, s.Length())
	for n := range out {
		out[n] = addend
	}
	for _, i := range s.indices {
		out[i]++
	}
	return &FloatVector{values: out}
}

func (s *sortedBits[T]) ScalarMultiply(multiplier int) Vector {
	out := make([]int, s.Length())
	for _, i := range s.indices {
		out[i] = multiplier
	}
	return &IntVector{values: out}
}

func (s *sortedBits[T]) ScalarMultiplyFloat(multiplier float32) Vector {
	out := make([]float32, s.Length())
	for _, i := range s.indices {
		out[i] = multiplier
	}
	return &FloatVector{values: out}
}

// window returns the indices in [i0, i1], shifted down by i0.
func (s *sortedBits[T]) window(i0, i1 int64) ([]T, error) {
	if i0 < 0 || i1 < i0 {
		return nil, indexOutOfRange(i0, s.largeLength())
	}
	start, ok := toIndex[T](i0)
	if !ok {
		return nil, nil
	}
	lo, _ := slices.BinarySearch(s.indices, start)
	var out []T
	for _, i := range s.indices[lo:] {
		if int64(i) > i1 {
			break
		}
		out = append(out, i-start)
	}
	return out, nil
}

// union merges two sorted index arrays.
func union[T sparseIndex](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	for len(a) > 0 && len(b) > 0 {
		switch {
		case a[0] < b[0]:
			out = append(out, a[0])
			a = a[1:]
		case b[0] < a[0]:
			out = append(out, b[0])
			b = b[1:]
		default:
			out = append(out, a[0])
			a, b = a[1:], b[1:]
		}
	}
	out = append(out, a...)
	return append(out, b...)
}

// intersect iterates the smaller operand and looks each index up in the other.
func (s *sortedBits[T]) intersect(other BitVector) []T {
	var out []T
	if other.Cardinality() < len(s.indices) {
		for i := range other.All() {
			if s.contains(int64(i)) {
				out = append(out, T(i))
			}
		}
		return out
	}
	for _, i := range s.indices {
		if other.Contains(int(i)) {
			out = append(out, i)
		}
	}
	return out
}

func (s *sortedBits[T]) unionWith(other BitVector) ([]T, error) {
	o, err := collectIndices[T](other.All())
	if err != nil {
		return nil, err
	}
	return union(s.indices, o), nil
}

func (s *sortedBits[T]) equalIndices(o *sortedBits[T]) bool {
	return slices.Equal(s.indices, o.indices)
}
