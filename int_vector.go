package vecmath

import (
	"io"
	"math"
	"slices"
)

// IntVector is a dense, fixed-length vector of ints.
type IntVector struct {
	values []int
}

var _ NumericVector = (*IntVector)(nil)

// NewIntVector returns a zero-filled IntVector of the given length.
func NewIntVector(length int) *IntVector {
	return &IntVector{values: make([]int, length)}
}

// IntVectorFrom returns an IntVector holding a copy of values.
func IntVectorFrom(values []int) *IntVector {
	return &IntVector{values: slices.Clone(values)}
}

func (v *IntVector) Kind() Kind  { return KindInt }
func (v *IntVector) Length() int { return len(v.values) }

func (v *IntVector) GetInt(i int) int         { return v.values[i] }
func (v *IntVector) GetFloat(i int) float32   { return float32(v.values[i]) }
func (v *IntVector) GetBoolean(i int) bool    { return v.values[i] != 0 }
func (v *IntVector) Infinity() float32        { return math.MaxInt }
func (v *IntVector) NegativeInfinity() float32 { return math.MinInt }

// Values returns the backing slice. Writes through it are visible to v.
func (v *IntVector) Values() []int { return v.values }

func (v *IntVector) SetInt(i int, value int) error {
	if i < 0 || i >= len(v.values) {
		return indexOutOfRange(int64(i), int64(len(v.values)))
	}
	v.values[i] = value
	return nil
}

func (v *IntVector) SetFloat(i int, value float32) error {
	return v.SetInt(i, roundFloat(value))
}

func (v *IntVector) SetBoolean(i int, value bool) error {
	return v.SetInt(i, boolToInt(value))
}

func (v *IntVector) SetString(i int, value string) error { return setString(v, i, value) }

func (v *IntVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *IntVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *IntVector) ScalarAdd(addend int) Vector             { return scalarAdd(v, addend) }
func (v *IntVector) ScalarAddFloat(addend float32) Vector    { return scalarAddFloat(v, addend) }
func (v *IntVector) ScalarMultiply(multiplier int) Vector    { return scalarMultiply(v, multiplier) }
func (v *IntVector) ScalarMultiplyFloat(m float32) Vector    { return scalarMultiplyFloat(v, m) }
func (v *IntVector) DotProduct(other Vector) (float32, error) { return dotProduct(v, other) }

func (v *IntVector) ElementwiseDivide(other Vector) (*FloatVector, error) {
	return elementwiseDivide(v, other)
}

func (v *IntVector) ElementwiseLog() *FloatVector { return elementwiseLog(v) }

func (v *IntVector) Multiply(m Matrix) (NumericVector, error) { return multiply(v, m) }

func (v *IntVector) Sum() float32 {
	var s int
	for _, x := range v.values {
		s += x
	}
	return float32(s)
}

func (v *IntVector) Min() float32 { return minimum(v) }
func (v *IntVector) Max() float32 { return maximum(v) }

func (v *IntVector) IntMin() int {
	if len(v.values) == 0 {
		return math.MaxInt
	}
	return slices.Min(v.values)
}

func (v *IntVector) IntMax() int {
	if len(v.values) == 0 {
		return math.MinInt
	}
	return slices.Max(v.values)
}

func (v *IntVector) ArgMin() int {
	best := 0
	for i, x := range v.values {
		if x < v.values[best] {
			best = i
		}
	}
	return best
}

func (v *IntVector) ArgMax() int {
	best := 0
	for i, x := range v.values {
		if x > v.values[best] {
			best = i
		}
	}
	return best
}

func (v *IntVector) SubVector(i0, i1 int) (Vector, error) {
	if err := subVectorRange(i0, i1, len(v.values)); err != nil {
		return nil, err
	}
	return &IntVector{values: slices.Clone(v.values[i0 : i1+1])}, nil
}

func (v *IntVector) Clone() Vector { return &IntVector{values: slices.Clone(v.values)} }

func (v *IntVector) Equals(other Vector) bool {
	if o, ok := other.(*IntVector); ok {
		return slices.Equal(v.values, o.values)
	}
	return false
}

func (v *IntVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *IntVector) String() string { return vectorString(v) }

// InPlaceAdd adds other to v slot by slot and returns v.
func (v *IntVector) InPlaceAdd(other Vector) (*IntVector, error) {
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
		v.values[i] += other.GetInt(i)
	}
	return v, nil
}

// InPlaceElementwiseMultiply multiplies v by other slot by slot and returns v.
func (v *IntVector) InPlaceElementwiseMultiply(other Vector) (*IntVector, error) {
	if err := checkOperand(len(v.values), other); err != nil {
		return nil, err
	}
	for i := range v.values {
		v.values[i] *= other.GetInt(i)
	}
	return v, nil
}

// InPlaceScalarAdd adds addend to every slot and returns v.
func (v *IntVector) InPlaceScalarAdd(addend int) *IntVector {
	for i := range v.values {
		v.values[i] += addend
	}
	return v
}

// InPlaceScalarMultiply multiplies every slot by multiplier and returns v.
func (v *IntVector) InPlaceScalarMultiply(multiplier int) *IntVector {
	for i := range v.values {
		v.values[i] *= multiplier
	}
	return v
}
