package vecmath

import (
	"io"
	"math"
)

const largeIndexLimit = math.MaxInt64 - 1

// LargeHashSparseIntVector is the int64-indexed counterpart of HashSparseIntVector.
type LargeHashSparseIntVector struct {
	sparseMap[int]
}

var (
	_ LargeVector   = (*LargeHashSparseIntVector)(nil)
	_ NumericVector = (*LargeHashSparseIntVector)(nil)
	_ SparseVector  = (*LargeHashSparseIntVector)(nil)
)

// NewLargeHashSparseIntVector returns an unpopulated vector of the given length.
func NewLargeHashSparseIntVector(length int64, opts ...SparseOption) *LargeHashSparseIntVector {
	return &LargeHashSparseIntVector{newSparseMap[int](length, largeIndexLimit, applySparseOptions(opts))}
}

// LargeHashSparseIntVectorFromPairs populates from interleaved [index, value, ...] pairs.
func LargeHashSparseIntVectorFromPairs(pairs []int, opts ...SparseOption) (*LargeHashSparseIntVector, error) {
	m, err := sparseMapFromPairs(pairs, largeIndexLimit, applySparseOptions(opts))
	if err != nil {
		return nil, err
	}
	return &LargeHashSparseIntVector{m}, nil
}

func (v *LargeHashSparseIntVector) Kind() Kind { return KindLargeHashSparseInt }

func (v *LargeHashSparseIntVector) LargeLength() int64 { return v.length }

func (v *LargeHashSparseIntVector) LargeGetInt(i int64) int       { return v.get(i) }
func (v *LargeHashSparseIntVector) LargeGetFloat(i int64) float32 { return float32(v.get(i)) }
func (v *LargeHashSparseIntVector) LargeGetBoolean(i int64) bool  { return v.get(i) != 0 }

func (v *LargeHashSparseIntVector) LargeSetInt(i int64, value int) error { return v.set(i, value) }
func (v *LargeHashSparseIntVector) LargeSetFloat(i int64, value float32) error {
	return v.set(i, roundFloat(value))
}
func (v *LargeHashSparseIntVector) LargeSetBoolean(i int64, value bool) error {
	return v.set(i, boolToInt(value))
}

func (v *LargeHashSparseIntVector) LargeArgMin() int64 { return v.largeArgMin() }
func (v *LargeHashSparseIntVector) LargeArgMax() int64 { return v.largeArgMax() }

func (v *LargeHashSparseIntVector) SetString(i int, value string) error {
	return setString(v, i, value)
}

func (v *LargeHashSparseIntVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *LargeHashSparseIntVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *LargeHashSparseIntVector) ScalarAdd(addend int) Vector { return scalarAdd(v, addend) }
func (v *LargeHashSparseIntVector) ScalarAddFloat(addend float32) Vector {
	return scalarAddFloat(v, addend)
}
func (v *LargeHashSparseIntVector) ScalarMultiply(multiplier int) Vector {
	return scalarMultiply(v, multiplier)
}
func (v *LargeHashSparseIntVector) ScalarMultiplyFloat(multiplier float32) Vector {
	return scalarMultiplyFloat(v, multiplier)
}

func (v *LargeHashSparseIntVector) DotProduct(other Vector) (float32, error) {
	return dotProduct(v, other)
}

func (v *LargeHashSparseIntVector) ElementwiseDivide(other Vector) (*FloatVector, error) {
	return elementwiseDivide(v, other)
}

func (v *LargeHashSparseIntVector) ElementwiseLog() *FloatVector { return elementwiseLog(v) }

func (v *LargeHashSparseIntVector) Multiply(m Matrix) (NumericVector, error) { return multiply(v, m) }

// Union combines v and other under s. Only SemiringTropical is supported, and
// both vectors must share a default value.
func (v *LargeHashSparseIntVector) Union(other *LargeHashSparseIntVector, s Semiring) (*LargeHashSparseIntVector, error) {
	m, err := v.union(&other.sparseMap, s)
	if err != nil {
		return nil, err
	}
	return &LargeHashSparseIntVector{m}, nil
}

func (v *LargeHashSparseIntVector) SubVector(i0, i1 int) (Vector, error) {
	return v.LargeSubVector(int64(i0), int64(i1))
}

func (v *LargeHashSparseIntVector) LargeSubVector(i0, i1 int64) (LargeVector, error) {
	m, err := v.window(i0, i1)
	if err != nil {
		return nil, err
	}
	return &LargeHashSparseIntVector{m}, nil
}

func (v *LargeHashSparseIntVector) Clone() Vector { return &LargeHashSparseIntVector{v.clone()} }

func (v *LargeHashSparseIntVector) Equals(other Vector) bool {
	o, ok := other.(*LargeHashSparseIntVector)
	return ok && v.equal(&o.sparseMap)
}

func (v *LargeHashSparseIntVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *LargeHashSparseIntVector) String() string { return vectorString(v) }

// InPlaceAdd adds other to v slot by slot and returns v.
func (v *LargeHashSparseIntVector) InPlaceAdd(other Vector) (*LargeHashSparseIntVector, error) {
	if err := v.combine(other, arithAdd); err != nil {
		return nil, err
	}
	return v, nil
}

// InPlaceElementwiseMultiply multiplies v by other slot by slot and returns v.
func (v *LargeHashSparseIntVector) InPlaceElementwiseMultiply(other Vector) (*LargeHashSparseIntVector, error) {
	if err := v.combine(other, arithMultiply); err != nil {
		return nil, err
	}
	return v, nil
}

// InPlaceScalarAdd adds addend to every slot, the default included, and returns v.
func (v *LargeHashSparseIntVector) InPlaceScalarAdd(addend int) *LargeHashSparseIntVector {
	v.scalarAdd(addend)
	return v
}

// InPlaceScalarMultiply multiplies every slot, the default included, and returns v.
func (v *LargeHashSparseIntVector) InPlaceScalarMultiply(multiplier int) *LargeHashSparseIntVector {
	v.scalarMultiply(multiplier)
	return v
}

// LargeHashSparseFloatVector is the int64-indexed counterpart of HashSparseFloatVector.
type LargeHashSparseFloatVector struct {
	sparseMap[float32]
}

var (
	_ LargeVector   = (*LargeHashSparseFloatVector)(nil)
	_ NumericVector = (*LargeHashSparseFloatVector)(nil)
	_ SparseVector  = (*LargeHashSparseFloatVector)(nil)
)

// NewLargeHashSparseFloatVector returns an unpopulated vector of the given length.
func NewLargeHashSparseFloatVector(length int64, opts ...SparseOption) *LargeHashSparseFloatVector {
	return &LargeHashSparseFloatVector{newSparseMap[float32](length, largeIndexLimit, applySparseOptions(opts))}
}

// LargeHashSparseFloatVectorFromPairs populates from interleaved [index, value, ...] pairs.
func LargeHashSparseFloatVectorFromPairs(pairs []float32, opts ...SparseOption) (*LargeHashSparseFloatVector, error) {
	m, err := sparseMapFromPairs(pairs, largeIndexLimit, applySparseOptions(opts))
	if err != nil {
		return nil, err
	}
	return &LargeHashSparseFloatVector{m}, nil
}

func (v *LargeHashSparseFloatVector) Kind() Kind { return KindLargeHashSparseFloat }

func (v *LargeHashSparseFloatVector) LargeLength() int64 { return v.length }

func (v *LargeHashSparseFloatVector) LargeGetInt(i int64) int       { return roundFloat(v.get(i)) }
func (v *LargeHashSparseFloatVector) LargeGetFloat(i int64) float32 { return v.get(i) }
func (v *LargeHashSparseFloatVector) LargeGetBoolean(i int64) bool  { return v.get(i) != 0 }

func (v *LargeHashSparseFloatVector) LargeSetInt(i int64, value int) error {
	return v.set(i, float32(value))
}
func (v *LargeHashSparseFloatVector) LargeSetFloat(i int64, value float32) error {
	return v.set(i, value)
}
func (v *LargeHashSparseFloatVector) LargeSetBoolean(i int64, value bool) error {
	return v.set(i, boolToFloat(value))
}

func (v *LargeHashSparseFloatVector) LargeArgMin() int64 { return v.largeArgMin() }
func (v *LargeHashSparseFloatVector) LargeArgMax() int64 { return v.largeArgMax() }

func (v *LargeHashSparseFloatVector) SetString(i int, value string) error {
	return setString(v, i, value)
}

func (v *LargeHashSparseFloatVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *LargeHashSparseFloatVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *LargeHashSparseFloatVector) ScalarAdd(addend int) Vector {
	return scalarAddFloat(v, float32(addend))
}
func (v *LargeHashSparseFloatVector) ScalarAddFloat(addend float32) Vector {
	return scalarAddFloat(v, addend)
}
func (v *LargeHashSparseFloatVector) ScalarMultiply(multiplier int) Vector {
	return scalarMultiplyFloat(v, float32(multiplier))
}
func (v *LargeHashSparseFloatVector) ScalarMultiplyFloat(multiplier float32) Vector {
	return scalarMultiplyFloat(v, multiplier)
}

func (v *LargeHashSparseFloatVector) DotProduct(other Vector) (float32, error) {
	return dotProduct(v, other)
}

func (v *LargeHashSparseFloatVector) ElementwiseDivide(other Vector) (*FloatVector, error) {
	return elementwiseDivide(v, other)
}

func (v *LargeHashSparseFloatVector) ElementwiseLog() *FloatVector { return elementwiseLog(v) }

func (v *LargeHashSparseFloatVector) Multiply(m Matrix) (NumericVector, error) {
	return multiply(v, m)
}

// Union combines v and other under s. Only SemiringTropical is supported, and
// both vectors must share a default value.
func (v *LargeHashSparseFloatVector) Union(other *LargeHashSparseFloatVector, s Semiring) (*LargeHashSparseFloatVector, error) {
	m, err := v.union(&other.sparseMap, s)
	if err != nil {
		return nil, err
	}
	return &LargeHashSparseFloatVector{m}, nil
}

func (v *LargeHashSparseFloatVector) SubVector(i0, i1 int) (Vector, error) {
	return v.LargeSubVector(int64(i0), int64(i1))
}

func (v *LargeHashSparseFloatVector) LargeSubVector(i0, i1 int64) (LargeVector, error) {
	m, err := v.window(i0, i1)
	if err != nil {
		return nil, err
	}
	return &LargeHashSparseFloatVector{m}, nil
}

func (v *LargeHashSparseFloatVector) Clone() Vector { return &LargeHashSparseFloatVector{v.clone()} }

func (v *LargeHashSparseFloatVector) Equals(other Vector) bool {
	o, ok := other.(*LargeHashSparseFloatVector)
	return ok && v.equal(&o.sparseMap)
}

func (v *LargeHashSparseFloatVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *LargeHashSparseFloatVector) String() string { return vectorString(v) }

// InPlaceAdd adds other to v slot by slot and returns v.
func (v *LargeHashSparseFloatVector) InPlaceAdd(other Vector) (*LargeHashSparseFloatVector, error) {
	if err := v.combine(other, arithAdd); err != nil {
		return nil, err
	}
	return v, nil
}

// InPlaceElementwiseMultiply multiplies v by other slot by slot and returns v.
func (v *LargeHashSparseFloatVector) InPlaceElementwiseMultiply(other Vector) (*LargeHashSparseFloatVector, error) {
	if err := v.combine(other, arithMultiply); err != nil {
		return nil, err
	}
	return v, nil
}

// InPlaceScalarAdd adds addend to every slot, the default included, and returns v.
func (v *LargeHashSparseFloatVector) InPlaceScalarAdd(addend float32) *LargeHashSparseFloatVector {
	v.scalarAdd(addend)
	return v
}

// InPlaceScalarMultiply multiplies every slot, the default included, and returns v.
func (v *LargeHashSparseFloatVector) InPlaceScalarMultiply(multiplier float32) *LargeHashSparseFloatVector {
	v.scalarMultiply(multiplier)
	return v
}
