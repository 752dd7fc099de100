package vecmath

import (
	"io"
	"iter"
)

// SparseBitVector is an immutable set of populated int32 indices.
//
// Its length is derived from the highest populated index. Every mutator fails
// with ErrImmutable.
type SparseBitVector struct {
	sortedBits[int32]
}

var (
	_ BitVector    = (*SparseBitVector)(nil)
	_ SparseVector = (*SparseBitVector)(nil)
)

// NewSparseBitVector builds a SparseBitVector from unordered, possibly repeated indices.
func NewSparseBitVector(indices []int) (*SparseBitVector, error) {
	narrow := make([]int32, len(indices))
	for n, i := range indices {
		t, ok := toIndex[int32](int64(i))
		if !ok {
			return nil, indexOutOfRange(int64(i), maxIndex[int32]()+1)
		}
		narrow[n] = t
	}
	return &SparseBitVector{newSortedBits(narrow)}, nil
}

// SparseBitVectorFromBooleans populates the positions of values that are true.
func SparseBitVectorFromBooleans(values []bool) *SparseBitVector {
	var indices []int32
	for i, b := range values {
		if b {
			indices = append(indices, int32(i))
		}
	}
	return &SparseBitVector{sortedBits[int32]{indices: indices}}
}

func (v *SparseBitVector) Kind() Kind { return KindSparseBit }

func (v *SparseBitVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *SparseBitVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *SparseBitVector) DotProduct(other Vector) (float32, error) { return dotProduct(v, other) }

func (v *SparseBitVector) Union(other BitVector) (BitVector, error) {
	indices, err := v.unionWith(other)
	if err != nil {
		return nil, err
	}
	return &SparseBitVector{sortedBits[int32]{indices: indices}}, nil
}

func (v *SparseBitVector) Intersection(other BitVector) (BitVector, error) {
	return &SparseBitVector{sortedBits[int32]{indices: v.intersect(other)}}, nil
}

// SubVector returns the populated indices in [i0, i1] rebased to 0. The result's
// length is derived from its own contents.
func (v *SparseBitVector) SubVector(i0, i1 int) (Vector, error) {
	indices, err := v.window(int64(i0), int64(i1))
	if err != nil {
		return nil, err
	}
	return &SparseBitVector{sortedBits[int32]{indices: indices}}, nil
}

func (v *SparseBitVector) Clone() Vector {
	return &SparseBitVector{newSortedBits(v.indices)}
}

func (v *SparseBitVector) Equals(other Vector) bool {
	o, ok := other.(*SparseBitVector)
	return ok && v.equalIndices(&o.sortedBits)
}

func (v *SparseBitVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *SparseBitVector) String() string { return vectorString(v) }

// LargeSparseBitVector is the int64-indexed counterpart of SparseBitVector.
type LargeSparseBitVector struct {
	sortedBits[int64]
}

var (
	_ LargeBitVector = (*LargeSparseBitVector)(nil)
	_ SparseVector   = (*LargeSparseBitVector)(nil)
)

// NewLargeSparseBitVector builds a LargeSparseBitVector from unordered, possibly repeated indices.
func NewLargeSparseBitVector(indices []int64) (*LargeSparseBitVector, error) {
	for _, i := range indices {
		if i < 0 {
			return nil, indexOutOfRange(i, maxIndex[int64]()+1)
		}
	}
	return &LargeSparseBitVector{newSortedBits(indices)}, nil
}

// LargeSparseBitVectorFromBooleans populates the positions of values that are true.
func LargeSparseBitVectorFromBooleans(values []bool) *LargeSparseBitVector {
	var indices []int64
	for i, b := range values {
		if b {
			indices = append(indices, int64(i))
		}
	}
	return &LargeSparseBitVector{sortedBits[int64]{indices: indices}}
}

func (v *LargeSparseBitVector) Kind() Kind { return KindLargeSparseBit }

func (v *LargeSparseBitVector) LargeLength() int64 { return v.largeLength() }

func (v *LargeSparseBitVector) LargeGetBoolean(i int64) bool { return v.contains(i) }
func (v *LargeSparseBitVector) LargeGetInt(i int64) int      { return boolToInt(v.contains(i)) }
func (v *LargeSparseBitVector) LargeGetFloat(i int64) float32 {
	return boolToFloat(v.contains(i))
}

func (v *LargeSparseBitVector) LargeSetInt(int64, int) error      { return ErrImmutable }
func (v *LargeSparseBitVector) LargeSetFloat(int64, float32) error { return ErrImmutable }
func (v *LargeSparseBitVector) LargeSetBoolean(int64, bool) error  { return ErrImmutable }
func (v *LargeSparseBitVector) LargeAddIndex(int64) error          { return ErrImmutable }
func (v *LargeSparseBitVector) LargeRemoveIndex(int64) error       { return ErrImmutable }

func (v *LargeSparseBitVector) LargeContains(i int64) bool { return v.contains(i) }
func (v *LargeSparseBitVector) LargeArgMin() int64          { return v.largeArgMin() }
func (v *LargeSparseBitVector) LargeArgMax() int64          { return v.largeArgMax() }
func (v *LargeSparseBitVector) LargeAll() iter.Seq[int64]   { return v.largeAll() }

func (v *LargeSparseBitVector) LargeValues() []int64 {
	out := make([]int64, len(v.indices))
	copy(out, v.indices)
	return out
}

func (v *LargeSparseBitVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *LargeSparseBitVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *LargeSparseBitVector) DotProduct(other Vector) (float32, error) {
	return dotProduct(v, other)
}

func (v *LargeSparseBitVector) Union(other BitVector) (BitVector, error) {
	indices, err := v.unionWith(other)
	if err != nil {
		return nil, err
	}
	return &LargeSparseBitVector{sortedBits[int64]{indices: indices}}, nil
}

func (v *LargeSparseBitVector) Intersection(other BitVector) (BitVector, error) {
	return &LargeSparseBitVector{sortedBits[int64]{indices: v.intersect(other)}}, nil
}

func (v *LargeSparseBitVector) SubVector(i0, i1 int) (Vector, error) {
	return v.LargeSubVector(int64(i0), int64(i1))
}

func (v *LargeSparseBitVector) LargeSubVector(i0, i1 int64) (LargeVector, error) {
	indices, err := v.window(i0, i1)
	if err != nil {
		return nil, err
	}
	return &LargeSparseBitVector{sortedBits[int64]{indices: indices}}, nil
}

func (v *LargeSparseBitVector) Clone() Vector {
	return &LargeSparseBitVector{newSortedBits(v.indices)}
}

func (v *LargeSparseBitVector) Equals(other Vector) bool {
	o, ok := other.(*LargeSparseBitVector)
	return ok && v.equalIndices(&o.sortedBits)
}

func (v *LargeSparseBitVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *LargeSparseBitVector) String() string { return vectorString(v) }
