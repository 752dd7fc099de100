package vecmath

import (
	"io"
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// LargeMutableSparseBitVector is the int64-indexed counterpart of
// MutableSparseBitVector, backed by a 64-bit roaring bitmap.
type LargeMutableSparseBitVector struct {
	rb *roaring64.Bitmap
}

var (
	_ LargeBitVector = (*LargeMutableSparseBitVector)(nil)
	_ SparseVector   = (*LargeMutableSparseBitVector)(nil)
)

// NewLargeMutableSparseBitVector returns an empty vector.
func NewLargeMutableSparseBitVector() *LargeMutableSparseBitVector {
	return &LargeMutableSparseBitVector{rb: roaring64.New()}
}

// LargeMutableSparseBitVectorFrom populates indices, which may be unordered or repeated.
func LargeMutableSparseBitVectorFrom(indices []int64) (*LargeMutableSparseBitVector, error) {
	v := NewLargeMutableSparseBitVector()
	for _, i := range indices {
		if err := v.LargeAddIndex(i); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func toKey64(i int64) (uint64, bool) {
	if i < 0 || i == math.MaxInt64 {
		return 0, false
	}
	return uint64(i), true
}

func (v *LargeMutableSparseBitVector) Kind() Kind { return KindLargeMutableSparseBit }

func (v *LargeMutableSparseBitVector) LargeLength() int64 {
	if v.rb.IsEmpty() {
		return 0
	}
	return int64(v.rb.Maximum()) + 1
}

func (v *LargeMutableSparseBitVector) Length() int { return int(v.LargeLength()) }

func (v *LargeMutableSparseBitVector) LargeContains(i int64) bool {
	k, ok := toKey64(i)
	return ok && v.rb.Contains(k)
}

func (v *LargeMutableSparseBitVector) Contains(i int) bool { return v.LargeContains(int64(i)) }

func (v *LargeMutableSparseBitVector) LargeGetBoolean(i int64) bool { return v.LargeContains(i) }
func (v *LargeMutableSparseBitVector) LargeGetInt(i int64) int {
	return boolToInt(v.LargeContains(i))
}
func (v *LargeMutableSparseBitVector) LargeGetFloat(i int64) float32 {
	return boolToFloat(v.LargeContains(i))
}

func (v *LargeMutableSparseBitVector) GetBoolean(i int) bool  { return v.LargeContains(int64(i)) }
func (v *LargeMutableSparseBitVector) GetInt(i int) int       { return v.LargeGetInt(int64(i)) }
func (v *LargeMutableSparseBitVector) GetFloat(i int) float32 { return v.LargeGetFloat(int64(i)) }

func (v *LargeMutableSparseBitVector) Infinity() float32         { return 1 }
func (v *LargeMutableSparseBitVector) NegativeInfinity() float32 { return 0 }
func (v *LargeMutableSparseBitVector) DefaultValue() float32     { return 0 }

func (v *LargeMutableSparseBitVector) LargeSetBoolean(i int64, value bool) error {
	k, ok := toKey64(i)
	if !ok {
		return indexOutOfRange(i, math.MaxInt64)
	}
	if value {
		v.rb.Add(k)
	} else {
		v.rb.Remove(k)
	}
	return nil
}

func (v *LargeMutableSparseBitVector) LargeSetInt(i int64, value int) error {
	return v.LargeSetBoolean(i, value != 0)
}

func (v *LargeMutableSparseBitVector) LargeSetFloat(i int64, value float32) error {
	return v.LargeSetBoolean(i, value != 0)
}

func (v *LargeMutableSparseBitVector) SetBoolean(i int, value bool) error {
	return v.LargeSetBoolean(int64(i), value)
}

func (v *LargeMutableSparseBitVector) SetInt(i int, value int) error {
	return v.LargeSetBoolean(int64(i), value != 0)
}

func (v *LargeMutableSparseBitVector) SetFloat(i int, value float32) error {
	return v.LargeSetBoolean(int64(i), value != 0)
}

func (v *LargeMutableSparseBitVector) SetString(i int, value string) error {
	return setString(v, i, value)
}

func (v *LargeMutableSparseBitVector) LargeAddIndex(i int64) error {
	return v.LargeSetBoolean(i, true)
}

func (v *LargeMutableSparseBitVector) LargeRemoveIndex(i int64) error {
	return v.LargeSetBoolean(i, false)
}

func (v *LargeMutableSparseBitVector) AddIndex(i int) error    { return v.LargeAddIndex(int64(i)) }
func (v *LargeMutableSparseBitVector) RemoveIndex(i int) error { return v.LargeRemoveIndex(int64(i)) }

func (v *LargeMutableSparseBitVector) AddAll(indices []int) error {
	for _, i := range indices {
		if err := v.AddIndex(i); err != nil {
			return err
		}
	}
	return nil
}

func (v *LargeMutableSparseBitVector) RemoveAll(indices []int) error {
	for _, i := range indices {
		if err := v.RemoveIndex(i); err != nil {
			return err
		}
	}
	return nil
}

func (v *LargeMutableSparseBitVector) LargeAll() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		it := v.rb.Iterator()
		for it.HasNext() {
			if !yield(int64(it.Next())) {
				return
			}
		}
	}
}

func (v *LargeMutableSparseBitVector) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range v.LargeAll() {
			if !yield(int(i)) {
				return
			}
		}
	}
}

func (v *LargeMutableSparseBitVector) LargeValues() []int64 {
	out := make([]int64, 0, v.rb.GetCardinality())
	for i := range v.LargeAll() {
		out = append(out, i)
	}
	return out
}

func (v *LargeMutableSparseBitVector) Values() []int {
	out := make([]int, 0, v.rb.GetCardinality())
	for i := range v.All() {
		out = append(out, i)
	}
	return out
}

func (v *LargeMutableSparseBitVector) Cardinality() int { return int(v.rb.GetCardinality()) }
func (v *LargeMutableSparseBitVector) Populated() int   { return int(v.rb.GetCardinality()) }

// Trim converts containers to run encoding where that is smaller.
func (v *LargeMutableSparseBitVector) Trim() { v.rb.RunOptimize() }

func (v *LargeMutableSparseBitVector) ForEachPopulated(fn func(i int, value float32) bool) {
	for i := range v.All() {
		if !fn(i, 1) {
			return
		}
	}
}

func (v *LargeMutableSparseBitVector) Union(other BitVector) (BitVector, error) {
	if o, ok := other.(*LargeMutableSparseBitVector); ok {
		return &LargeMutableSparseBitVector{rb: roaring64.Or(v.rb, o.rb)}, nil
	}
	out := &LargeMutableSparseBitVector{rb: v.rb.Clone()}
	for i := range other.All() {
		if err := out.AddIndex(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (v *LargeMutableSparseBitVector) Intersection(other BitVector) (BitVector, error) {
	if o, ok := other.(*LargeMutableSparseBitVector); ok {
		return &LargeMutableSparseBitVector{rb: roaring64.And(v.rb, o.rb)}, nil
	}
	out := NewLargeMutableSparseBitVector()
	if other.Cardinality() < v.Cardinality() {
		for i := range other.All() {
			if v.Contains(i) {
				out.rb.Add(uint64(i))
			}
		}
		return out, nil
	}
	for i := range v.All() {
		if other.Contains(i) {
			out.rb.Add(uint64(i))
		}
	}
	return out, nil
}

func (v *LargeMutableSparseBitVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *LargeMutableSparseBitVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *LargeMutableSparseBitVector) ScalarAdd(addend int) Vector { return scalarAdd(v, addend) }
func (v *LargeMutableSparseBitVector) ScalarAddFloat(addend float32) Vector {
	return scalarAddFloat(v, addend)
}
func (v *LargeMutableSparseBitVector) ScalarMultiply(multiplier int) Vector {
	return scalarMultiply(v, multiplier)
}
func (v *LargeMutableSparseBitVector) ScalarMultiplyFloat(multiplier float32) Vector {
	return scalarMultiplyFloat(v, multiplier)
}

func (v *LargeMutableSparseBitVector) DotProduct(other Vector) (float32, error) {
	if o, ok := other.(*LargeMutableSparseBitVector); ok {
		return float32(v.rb.AndCardinality(o.rb)), nil
	}
	return dotProduct(v, other)
}

func (v *LargeMutableSparseBitVector) Sum() float32 { return float32(v.rb.GetCardinality()) }

func (v *LargeMutableSparseBitVector) Min() float32 {
	if v.rb.IsEmpty() {
		return v.Infinity()
	}
	return float32(v.IntMin())
}

func (v *LargeMutableSparseBitVector) Max() float32 {
	if v.rb.IsEmpty() {
		return v.NegativeInfinity()
	}
	return 1
}

// IntMin is 1 only when every slot in [0, length) is populated.
func (v *LargeMutableSparseBitVector) IntMin() int {
	if v.rb.IsEmpty() {
		return math.MaxInt
	}
	if int64(v.rb.GetCardinality()) == v.LargeLength() {
		return 1
	}
	return 0
}

func (v *LargeMutableSparseBitVector) IntMax() int {
	if v.rb.IsEmpty() {
		return math.MinInt
	}
	return 1
}

// LargeArgMin returns the first unpopulated index in [0, length), or 0 when every
// slot is populated.
func (v *LargeMutableSparseBitVector) LargeArgMin() int64 {
	var expected int64
	for i := range v.LargeAll() {
		if i != expected {
			return expected
		}
		expected++
	}
	return 0
}

// LargeArgMax returns the lowest populated index, or 0 when empty.
func (v *LargeMutableSparseBitVector) LargeArgMax() int64 {
	if v.rb.IsEmpty() {
		return 0
	}
	return int64(v.rb.Minimum())
}

func (v *LargeMutableSparseBitVector) ArgMin() int { return int(v.LargeArgMin()) }
func (v *LargeMutableSparseBitVector) ArgMax() int { return int(v.LargeArgMax()) }

func (v *LargeMutableSparseBitVector) SubVector(i0, i1 int) (Vector, error) {
	return v.LargeSubVector(int64(i0), int64(i1))
}

// LargeSubVector returns the populated indices in [i0, i1] rebased to 0.
func (v *LargeMutableSparseBitVector) LargeSubVector(i0, i1 int64) (LargeVector, error) {
	if i0 < 0 || i1 < i0 {
		return nil, indexOutOfRange(i0, v.LargeLength())
	}
	out := NewLargeMutableSparseBitVector()
	it := v.rb.Iterator()
	it.AdvanceIfNeeded(uint64(i0))
	for it.HasNext() {
		i := it.Next()
		if int64(i) > i1 {
			break
		}
		out.rb.Add(i - uint64(i0))
	}
	return out, nil
}

func (v *LargeMutableSparseBitVector) Clone() Vector {
	return &LargeMutableSparseBitVector{rb: v.rb.Clone()}
}

func (v *LargeMutableSparseBitVector) Equals(other Vector) bool {
	o, ok := other.(*LargeMutableSparseBitVector)
	return ok && v.rb.Equals(o.rb)
}

func (v *LargeMutableSparseBitVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *LargeMutableSparseBitVector) String() string { return vectorString(v) }
