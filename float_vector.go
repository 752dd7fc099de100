package vecmath

import (
	"io"
	"math"
	"slices"

	"github.com/hupe1980/vecmath/internal/simd"
)

// FloatVector is a dense, fixed-length vector of float32.
type FloatVector struct {
	values []float32
}

var _ NumericVector = (*FloatVector)(nil)

// NewFloatVector returns a zero-filled FloatVector of the given length.
func NewFloatVector(length int) *FloatVector {
	return &FloatVector{values: make([]float32, length)}
}

// FloatVectorFrom returns a FloatVector holding a copy of values.
func FloatVectorFrom(values []float32) *FloatVector {
	return &FloatVector{values: slices.Clone(values)}
}

func (v *FloatVector) Kind() Kind  { return KindFloat }
func (v *FloatVector) Length() int { return len(v.values) }

// GetInt rounds to the nearest integer, halves away from zero.
func (v *FloatVector) GetInt(i int) int       { return roundFloat(v.values[i]) }
func (v *FloatVector) GetFloat(i int) float32 { return v.values[i] }
func (v *FloatVector) GetBoolean(i int) bool  { return v.values[i] != 0 }

func (v *FloatVector) Infinity() float32         { return float32(math.Inf(1)) }
func (v *FloatVector) NegativeInfinity() float32 { return float32(math.Inf(-1)) }

// Values returns the backing slice. Writes through it are visible to v.
func (v *FloatVector) Values() []float32 { return v.values }

func (v *FloatVector) SetFloat(i int, value float32) error {
	if i < 0 || i >= len(v.values) {
		return indexOutOfRange(int64(i), int64(len(v.values)))
	}
	v.values[i] = value
	return nil
}

func (v *FloatVector) SetInt(i int, value int) error      { return v.SetFloat(i, float32(value)) }
func (v *FloatVector) SetBoolean(i int, value bool) error { return v.SetFloat(i, boolToFloat(value)) }
func (v *FloatVector) SetString(i int, value string) error { return setString(v, i, value) }

func (v *FloatVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *FloatVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *FloatVector) ScalarAdd(addend int) Vector          { return scalarAddFloat(v, float32(addend)) }
func (v *FloatVector) ScalarAddFloat(addend float32) Vector { return scalarAddFloat(v, addend) }
func (v *FloatVector) ScalarMultiply(multiplier int) Vector {
	return scalarMultiplyFloat(v, float32(multiplier))
}
func (v *FloatVector) ScalarMultiplyFloat(multiplier float32) Vector {
	return scalarMultiplyFloat(v, multiplier)
}

func (v *FloatVector) DotProduct(other Vector) (float32, error) {
	if o, ok := other.(*FloatVector); ok {
		if len(o.values) != len(v.values) {
			return 0, lengthMismatch(int64(len(v.values)), int64(len(o.values)))
		}
		return simd.Dot(v.values, o.values), nil
	}
	return dotProduct(v, other)
}

func (v *FloatVector) ElementwiseDivide(other Vector) (*FloatVector, error) {
	return elementwiseDivide(v, other)
}

func (v *FloatVector) ElementwiseLog() *FloatVector { return elementwiseLog(v) }

func (v *FloatVector) Multiply(m Matrix) (NumericVector, error) { return multiply(v, m) }

func (v *FloatVector) Sum() float32 { return simd.Sum(v.values) }

func (v *FloatVector) Min() float32 {
	if len(v.values) == 0 {
		return v.Infinity()
	}
	return v.values[v.ArgMin()]
}

func (v *FloatVector) Max() float32 {
	if len(v.values) == 0 {
		return v.NegativeInfinity()
	}
	return v.values[v.ArgMax()]
}

func (v *FloatVector) IntMin() int { return intMin(v) }
func (v *FloatVector) IntMax() int { return intMax(v) }

func (v *FloatVector) ArgMin() int {
	best := 0
	for i, x := range v.values {
		if x < v.values[best] {
			best = i
		}
	}
	return best
}

func (v *FloatVector) ArgMax() int {
	best := 0
	for i, x := range v.values {
		if x > v.values[best] {
			best = i
		}
	}
	return best
}

func (v *FloatVector) SubVector(i0, i1 int) (Vector, error) {
	if err := subVectorRange(i0, i1, len(v.values)); err != nil {
		return nil, err
	}
	return &FloatVector{values: slices.Clone(v.values[i0 : i1+1])}, nil
}

func (v *FloatVector) Clone() Vector { return &FloatVector{values: slices.Clone(v.values)} }

func (v *FloatVector) Equals(other Vector) bool {
	if o, ok := other.(*FloatVector); ok {
		return slices.Equal(v.values, o.values)
	}
	return false
}

func (v *FloatVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *FloatVector) String() string { return vectorString(v) }

// InPlaceAdd adds other to v slot by slot and returns v.
func (v *FloatVector) InPlaceAdd(other Vector) (*FloatVector, error) {
	if err := checkOperand(len(v.values), other); err != nil {
		return nil, err
	}
	if b, ok := other.(BitVector); ok && other.Kind().IsSparseBit() {
		for i := range b.All() {
			v.values[i]++
		}
		return v, nil
	}
	for i := range v.values {
		v.values[i] += other.GetFloat(i)
	}
	return v, nil
}

// InPlaceElementwiseMultiply multiplies v by other slot by slot and returns v.
func (v *FloatVector) InPlaceElementwiseMultiply(other Vector) (*FloatVector, error) {
	if err := checkOperand(len(v.values), other); err != nil {
		return nil, err
	}
	for i := range v.values {
		v.values[i] *= other.GetFloat(i)
	}
	return v, nil
}

// InPlaceElementwiseDivide divides v by other slot by slot and returns v.
// Slots past the end of a shorter sparse-bit operand divide by zero.
func (v *FloatVector) InPlaceElementwiseDivide(other Vector) (*FloatVector, error) {
	if err := checkOperand(len(v.values), other); err != nil {
		return nil, err
	}
	for i := range v.values {
		v.values[i] /= other.GetFloat(i)
	}
	return v, nil
}

// InPlaceElementwiseLog replaces every slot with its natural logarithm and returns v.
func (v *FloatVector) InPlaceElementwiseLog() *FloatVector {
	for i, x := range v.values {
		v.values[i] = float32(math.Log(float64(x)))
	}
	return v
}

// InPlaceScalarAdd adds addend to every slot and returns v.
func (v *FloatVector) InPlaceScalarAdd(addend float32) *FloatVector {
	for i := range v.values {
		v.values[i] += addend
	}
	return v
}

// InPlaceScalarMultiply multiplies every slot by multiplier and returns v.
func (v *FloatVector) InPlaceScalarMultiply(multiplier float32) *FloatVector {
	for i := range v.values {
		v.values[i] *= multiplier
	}
	return v
}

func roundFloat(f float32) int {
	return int(math.Round(float64(f)))
}
