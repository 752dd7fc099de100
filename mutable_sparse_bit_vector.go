package vecmath

import (
	"io"
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// MutableSparseBitVector is a growable set of populated uint32 indices backed by a
// roaring bitmap. Its length is the highest populated index + 1, recomputed after
// every mutation.
type MutableSparseBitVector struct {
	rb *roaring.Bitmap
}

var (
	_ BitVector    = (*MutableSparseBitVector)(nil)
	_ SparseVector = (*MutableSparseBitVector)(nil)
)

// NewMutableSparseBitVector returns an empty vector.
func NewMutableSparseBitVector() *MutableSparseBitVector {
	return &MutableSparseBitVector{rb: roaring.New()}
}

// MutableSparseBitVectorFrom populates indices, which may be unordered or repeated.
func MutableSparseBitVectorFrom(indices []int) (*MutableSparseBitVector, error) {
	v := NewMutableSparseBitVector()
	if err := v.AddAll(indices); err != nil {
		return nil, err
	}
	return v, nil
}

// MutableSparseBitVectorFromBooleans populates the positions of values that are true.
func MutableSparseBitVectorFromBooleans(values []bool) *MutableSparseBitVector {
	v := NewMutableSparseBitVector()
	for i, b := range values {
		if b {
			v.rb.Add(uint32(i))
		}
	}
	return v
}

func toKey32(i int) (uint32, bool) {
	if i < 0 || uint64(i) > math.MaxUint32 {
		return 0, false
	}
	return uint32(i), true
}

func (v *MutableSparseBitVector) Kind() Kind { return KindMutableSparseBit }

func (v *MutableSparseBitVector) Length() int {
	if v.rb.IsEmpty() {
		return 0
	}
	return int(v.rb.Maximum()) + 1
}

func (v *MutableSparseBitVector) Contains(i int) bool {
	k, ok := toKey32(i)
	return ok && v.rb.Contains(k)
}

func (v *MutableSparseBitVector) GetBoolean(i int) bool  { return v.Contains(i) }
func (v *MutableSparseBitVector) GetInt(i int) int       { return boolToInt(v.Contains(i)) }
func (v *MutableSparseBitVector) GetFloat(i int) float32 { return boolToFloat(v.Contains(i)) }

func (v *MutableSparseBitVector) Infinity() float32         { return 1 }
func (v *MutableSparseBitVector) NegativeInfinity() float32 { return 0 }
func (v *MutableSparseBitVector) DefaultValue() float32     { return 0 }

func (v *MutableSparseBitVector) SetBoolean(i int, value bool) error {
	k, ok := toKey32(i)
	if !ok {
		return indexOutOfRange(int64(i), math.MaxUint32+1)
	}
	if value {
		v.rb.Add(k)
	} else {
		v.rb.Remove(k)
	}
	return nil
}

func (v *MutableSparseBitVector) SetInt(i int, value int) error       { return v.SetBoolean(i, value != 0) }
func (v *MutableSparseBitVector) SetFloat(i int, value float32) error { return v.SetBoolean(i, value != 0) }
func (v *MutableSparseBitVector) SetString(i int, value string) error { return setString(v, i, value) }

func (v *MutableSparseBitVector) AddIndex(i int) error    { return v.SetBoolean(i, true) }
func (v *MutableSparseBitVector) RemoveIndex(i int) error { return v.SetBoolean(i, false) }

func (v *MutableSparseBitVector) AddAll(indices []int) error {
	for _, i := range indices {
		if err := v.AddIndex(i); err != nil {
			return err
		}
	}
	return nil
}

func (v *MutableSparseBitVector) RemoveAll(indices []int) error {
	for _, i := range indices {
		if err := v.RemoveIndex(i); err != nil {
			return err
		}
	}
	return nil
}

func (v *MutableSparseBitVector) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := v.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

func (v *MutableSparseBitVector) Values() []int {
	out := make([]int, 0, v.rb.GetCardinality())
	for i := range v.All() {
		out = append(out, i)
	}
	return out
}

func (v *MutableSparseBitVector) Cardinality() int { return int(v.rb.GetCardinality()) }
func (v *MutableSparseBitVector) Populated() int   { return int(v.rb.GetCardinality()) }

// Trim converts containers to run encoding where that is smaller.
func (v *MutableSparseBitVector) Trim() { v.rb.RunOptimize() }

func (v *MutableSparseBitVector) ForEachPopulated(fn func(i int, value float32) bool) {
	for i := range v.All() {
		if !fn(i, 1) {
			return
		}
	}
}

func (v *MutableSparseBitVector) Union(other BitVector) (BitVector, error) {
	if o, ok := other.(*MutableSparseBitVector); ok {
		return &MutableSparseBitVector{rb: roaring.Or(v.rb, o.rb)}, nil
	}
	out := &MutableSparseBitVector{rb: v.rb.Clone()}
	for i := range other.All() {
		if err := out.AddIndex(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (v *MutableSparseBitVector) Intersection(other BitVector) (BitVector, error) {
	if o, ok := other.(*MutableSparseBitVector); ok {
		return &MutableSparseBitVector{rb: roaring.And(v.rb, o.rb)}, nil
	}
	out := NewMutableSparseBitVector()
	if other.Cardinality() < v.Cardinality() {
		for i := range other.All() {
			if v.Contains(i) {
				out.rb.Add(uint32(i))
			}
		}
		return out, nil
	}
	for i := range v.All() {
		if other.Contains(i) {
			out.rb.Add(uint32(i))
		}
	}
	return out, nil
}

func (v *MutableSparseBitVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *MutableSparseBitVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *MutableSparseBitVector) ScalarAdd(addend int) Vector { return scalarAdd(v, addend) }
func (v *MutableSparseBitVector) ScalarAddFloat(addend float32) Vector {
	return scalarAddFloat(v, addend)
}
func (v *MutableSparseBitVector) ScalarMultiply(multiplier int) Vector {
	return scalarMultiply(v, multiplier)
}
func (v *MutableSparseBitVector) ScalarMultiplyFloat(multiplier float32) Vector {
	return scalarMultiplyFloat(v, multiplier)
}

func (v *MutableSparseBitVector) DotProduct(other Vector) (float32, error) {
	if o, ok := other.(*MutableSparseBitVector); ok {
		return float32(v.rb.AndCardinality(o.rb)), nil
	}
	return dotProduct(v, other)
}

func (v *MutableSparseBitVector) Sum() float32 { return float32(v.rb.GetCardinality()) }

func (v *MutableSparseBitVector) Min() float32 {
	if v.rb.IsEmpty() {
		return v.Infinity()
	}
	return float32(v.IntMin())
}

func (v *MutableSparseBitVector) Max() float32 {
	if v.rb.IsEmpty() {
		return v.NegativeInfinity()
	}
	return 1
}

// IntMin is 1 only when every slot in [0, length) is populated.
func (v *MutableSparseBitVector) IntMin() int {
	if v.rb.IsEmpty() {
		return math.MaxInt
	}
	if v.Cardinality() == v.Length() {
		return 1
	}
	return 0
}

func (v *MutableSparseBitVector) IntMax() int {
	if v.rb.IsEmpty() {
		return math.MinInt
	}
	return 1
}

// ArgMin returns the first unpopulated index in [0, length), or 0 when every
// slot is populated.
func (v *MutableSparseBitVector) ArgMin() int {
	expected := 0
	for i := range v.All() {
		if i != expected {
			return expected
		}
		expected++
	}
	return 0
}

// ArgMax returns the lowest populated index, or 0 when empty.
func (v *MutableSparseBitVector) ArgMax() int {
	if v.rb.IsEmpty() {
		return 0
	}
	return int(v.rb.Minimum())
}

// SubVector returns the populated indices in [i0, i1] rebased to 0.
func (v *MutableSparseBitVector) SubVector(i0, i1 int) (Vector, error) {
	if i0 < 0 || i1 < i0 {
		return nil, indexOutOfRange(int64(i0), int64(v.Length()))
	}
	out := NewMutableSparseBitVector()
	start, ok := toKey32(i0)
	if !ok {
		return out, nil
	}
	it := v.rb.Iterator()
	it.AdvanceIfNeeded(start)
	for it.HasNext() {
		i := it.Next()
		if int(i) > i1 {
			break
		}
		out.rb.Add(i - start)
	}
	return out, nil
}

func (v *MutableSparseBitVector) Clone() Vector {
	return &MutableSparseBitVector{rb: v.rb.Clone()}
}

func (v *MutableSparseBitVector) Equals(other Vector) bool {
	o, ok := other.(*MutableSparseBitVector)
	return ok && v.rb.Equals(o.rb)
}

func (v *MutableSparseBitVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *MutableSparseBitVector) String() string { return vectorString(v) }
