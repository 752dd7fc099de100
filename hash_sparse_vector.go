package vecmath

import (
	"io"
	"math"
)

// HashSparseIntVector stores populated int slots in a map; every other slot reads
// as the default value. Setting a slot past the end grows the vector.
type HashSparseIntVector struct {
	sparseMap[int]
}

var (
	_ NumericVector = (*HashSparseIntVector)(nil)
	_ SparseVector  = (*HashSparseIntVector)(nil)
)

// NewHashSparseIntVector returns an unpopulated vector of the given length.
func NewHashSparseIntVector(length int, opts ...SparseOption) *HashSparseIntVector {
	return &HashSparseIntVector{newSparseMap[int](int64(length), math.MaxInt32, applySparseOptions(opts))}
}

// HashSparseIntVectorFromPairs populates from interleaved [index, value, ...] pairs.
func HashSparseIntVectorFromPairs(pairs []int, opts ...SparseOption) (*HashSparseIntVector, error) {
	m, err := sparseMapFromPairs(pairs, math.MaxInt32, applySparseOptions(opts))
	if err != nil {
		return nil, err
	}
	return &HashSparseIntVector{m}, nil
}

func (v *HashSparseIntVector) Kind() Kind { return KindHashSparseInt }

func (v *HashSparseIntVector) SetString(i int, value string) error { return setString(v, i, value) }

func (v *HashSparseIntVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *HashSparseIntVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *HashSparseIntVector) ScalarAdd(addend int) Vector          { return scalarAdd(v, addend) }
func (v *HashSparseIntVector) ScalarAddFloat(addend float32) Vector { return scalarAddFloat(v, addend) }
func (v *HashSparseIntVector) ScalarMultiply(multiplier int) Vector {
	return scalarMultiply(v, multiplier)
}
func (v *HashSparseIntVector) ScalarMultiplyFloat(multiplier float32) Vector {
	return scalarMultiplyFloat(v, multiplier)
}

func (v *HashSparseIntVector) DotProduct(other Vector) (float32, error) { return dotProduct(v, other) }

func (v *HashSparseIntVector) ElementwiseDivide(other Vector) (*FloatVector, error) {
	return elementwiseDivide(v, other)
}

func (v *HashSparseIntVector) ElementwiseLog() *FloatVector { return elementwiseLog(v) }

func (v *HashSparseIntVector) Multiply(m Matrix) (NumericVector, error) { return multiply(v, m) }

// Union combines v and other under s. Only SemiringTropical is supported, and
// both vectors must share a default value.
func (v *HashSparseIntVector) Union(other *HashSparseIntVector, s Semiring) (*HashSparseIntVector, error) {
	m, err := v.union(&other.sparseMap, s)
	if err != nil {
		return nil, err
	}
	return &HashSparseIntVector{m}, nil
}

func (v *HashSparseIntVector) SubVector(i0, i1 int) (Vector, error) {
	m, err := v.window(int64(i0), int64(i1))
	if err != nil {
		return nil, err
	}
	return &HashSparseIntVector{m}, nil
}

func (v *HashSparseIntVector) Clone() Vector { return &HashSparseIntVector{v.clone()} }

func (v *HashSparseIntVector) Equals(other Vector) bool {
	o, ok := other.(*HashSparseIntVector)
	return ok && v.equal(&o.sparseMap)
}

func (v *HashSparseIntVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *HashSparseIntVector) String() string { return vectorString(v) }

// InPlaceAdd adds other to v slot by slot and returns v.
func (v *HashSparseIntVector) InPlaceAdd(other Vector) (*HashSparseIntVector, error) {
	if err := v.combine(other, arithAdd); err != nil {
		return nil, err
	}
	return v, nil
}

// InPlaceElementwiseMultiply multiplies v by other slot by slot and returns v.
func (v *HashSparseIntVector) InPlaceElementwiseMultiply(other Vector) (*HashSparseIntVector, error) {
	if err := v.combine(other, arithMultiply); err != nil {
		return nil, err
	}
	return v, nil
}

// InPlaceScalarAdd adds addend to every slot, the default included, and returns v.
func (v *HashSparseIntVector) InPlaceScalarAdd(addend int) *HashSparseIntVector {
	v.scalarAdd(addend)
	return v
}

// InPlaceScalarMultiply multiplies every slot, the default included, and returns v.
func (v *HashSparseIntVector) InPlaceScalarMultiply(multiplier int) *HashSparseIntVector {
	v.scalarMultiply(multiplier)
	return v
}

// HashSparseFloatVector stores populated float32 slots in a map; every other slot
// reads as the default value. Setting a slot past the end grows the vector.
type HashSparseFloatVector struct {
	sparseMap[float32]
}

var (
	_ NumericVector = (*HashSparseFloatVector)(nil)
	_ SparseVector  = (*HashSparseFloatVector)(nil)
)

// NewHashSparseFloatVector returns an unpopulated vector of the given length.
func NewHashSparseFloatVector(length int, opts ...SparseOption) *HashSparseFloatVector {
	return &HashSparseFloatVector{newSparseMap[float32](int64(length), math.MaxInt32, applySparseOptions(opts))}
}

// HashSparseFloatVectorFromPairs populates from interleaved [index, value, ...]
// pairs. Indices must be integral.
func HashSparseFloatVectorFromPairs(pairs []float32, opts ...SparseOption) (*HashSparseFloatVector, error) {
	m, err := sparseMapFromPairs(pairs, math.MaxInt32, applySparseOptions(opts))
	if err != nil {
		return nil, err
	}
	return &HashSparseFloatVector{m}, nil
}

func (v *HashSparseFloatVector) Kind() Kind { return KindHashSparseFloat }

func (v *HashSparseFloatVector) SetString(i int, value string) error {
	return setString(v, i, value)
}

func (v *HashSparseFloatVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *HashSparseFloatVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *HashSparseFloatVector) ScalarAdd(addend int) Vector {
	return scalarAddFloat(v, float32(addend))
}
func (v *HashSparseFloatVector) ScalarAddFloat(addend float32) Vector {
	return scalarAddFloat(v, addend)
}
func (v *HashSparseFloatVector) ScalarMultiply(multiplier int) Vector {
	return scalarMultiplyFloat(v, float32(multiplier))
}
func (v *HashSparseFloatVector) ScalarMultiplyFloat(multiplier float32) Vector {
	return scalarMultiplyFloat(v, multiplier)
}

func (v *HashSparseFloatVector) DotProduct(other Vector) (float32, error) {
	return dotProduct(v, other)
}

func (v *HashSparseFloatVector) ElementwiseDivide(other Vector) (*FloatVector, error) {
	return elementwiseDivide(v, other)
}

func (v *HashSparseFloatVector) ElementwiseLog() *FloatVector { return elementwiseLog(v) }

func (v *HashSparseFloatVector) Multiply(m Matrix) (NumericVector, error) { return multiply(v, m) }

// Union combines v and other under s. Only SemiringTropical is supported, and
// both vectors must share a default value.
func (v *HashSparseFloatVector) Union(other *HashSparseFloatVector, s Semiring) (*HashSparseFloatVector, error) {
	m, err := v.union(&other.sparseMap, s)
	if err != nil {
		return nil, err
	}
	return &HashSparseFloatVector{m}, nil
}

func (v *HashSparseFloatVector) SubVector(i0, i1 int) (Vector, error) {
	m, err := v.window(int64(i0), int64(i1))
	if err != nil {
		return nil, err
	}
	return &HashSparseFloatVector{m}, nil
}

func (v *HashSparseFloatVector) Clone() Vector { return &HashSparseFloatVector{v.clone()} }

func (v *HashSparseFloatVector) Equals(other Vector) bool {
	o, ok := other.(*HashSparseFloatVector)
	return ok && v.equal(&o.sparseMap)
}

func (v *HashSparseFloatVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *HashSparseFloatVector) String() string { return vectorString(v) }

// InPlaceAdd adds other to v slot by slot and returns v.
func (v *HashSparseFloatVector) InPlaceAdd(other Vector) (*HashSparseFloatVector, error) {
	if err := v.combine(other, arithAdd); err != nil {
		return nil, err
	}
	return v, nil
}

// InPlaceElementwiseMultiply multiplies v by other slot by slot and returns v.
func (v *HashSparseFloatVector) InPlaceElementwiseMultiply(other Vector) (*HashSparseFloatVector, error) {
	if err := v.combine(other, arithMultiply); err != nil {
		return nil, err
	}
	return v, nil
}

// InPlaceScalarAdd adds addend to every slot, the default included, and returns v.
func (v *HashSparseFloatVector) InPlaceScalarAdd(addend float32) *HashSparseFloatVector {
	v.scalarAdd(addend)
	return v
}

// InPlaceScalarMultiply multiplies every slot, the default included, and returns v.
func (v *HashSparseFloatVector) InPlaceScalarMultiply(multiplier float32) *HashSparseFloatVector {
	v.scalarMultiply(multiplier)
	return v
}
