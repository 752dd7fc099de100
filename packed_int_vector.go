package vecmath

import (
	"io"
	"math/bits"
	"slices"
)

// PackedIntVector stores unsigned values of a fixed power-of-two width in 32-bit words.
//
// Every stored value lies in [0, 2^bits-1]. Slot i lives in word i>>indexShift at bit
// offset (i&indexMask)<<shiftShift.
type PackedIntVector struct {
	words  []uint32
	length int

	bits       int
	maxValue   uint32
	indexShift int
	indexMask  int
	shiftShift int
}

var _ NumericVector = (*PackedIntVector)(nil)

// NewPackedIntVector returns a zero-filled PackedIntVector. bitWidth must be
// one of 1, 2, 4, 8, 16 or 32.
func NewPackedIntVector(length, bitWidth int) (*PackedIntVector, error) {
	switch bitWidth {
	case 1, 2, 4, 8, 16, 32:
	default:
		return nil, &UnsupportedBitsError{Bits: bitWidth}
	}

	elementsPerWord := 32 / bitWidth
	v := &PackedIntVector{
		length:     length,
		bits:       bitWidth,
		maxValue:   uint32(uint64(1)<<bitWidth - 1),
		indexShift: bits.TrailingZeros(uint(elementsPerWord)),
		indexMask:  elementsPerWord - 1,
		shiftShift: bits.TrailingZeros(uint(bitWidth)),
	}
	v.words = make([]uint32, (length+elementsPerWord-1)>>v.indexShift)
	return v, nil
}

// PackedIntVectorFrom packs values at the given width.
func PackedIntVectorFrom(values []int, bitWidth int) (*PackedIntVector, error) {
	v, err := NewPackedIntVector(len(values), bitWidth)
	if err != nil {
		return nil, err
	}
	for i, x := range values {
		if err := v.SetInt(i, x); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Bits returns the field width.
func (v *PackedIntVector) Bits() int { return v.bits }

// MaxValue returns the largest storable value, 2^bits-1.
func (v *PackedIntVector) MaxValue() int { return int(v.maxValue) }

func (v *PackedIntVector) get(i int) uint32 {
	shift := (i & v.indexMask) << v.shiftShift
	return (v.words[i>>v.indexShift] >> shift) & v.maxValue
}

func (v *PackedIntVector) put(i int, value uint32) {
	shift := (i & v.indexMask) << v.shiftShift
	w := i >> v.indexShift
	v.words[w] = v.words[w]&^(v.maxValue<<shift) | value<<shift
}

func (v *PackedIntVector) Kind() Kind  { return KindPackedInt }
func (v *PackedIntVector) Length() int { return v.length }

func (v *PackedIntVector) GetInt(i int) int {
	if i < 0 || i >= v.length {
		panic(indexOutOfRange(int64(i), int64(v.length)))
	}
	return int(v.get(i))
}

func (v *PackedIntVector) GetFloat(i int) float32 { return float32(v.GetInt(i)) }
func (v *PackedIntVector) GetBoolean(i int) bool  { return v.GetInt(i) != 0 }

func (v *PackedIntVector) Infinity() float32         { return float32(v.maxValue) }
func (v *PackedIntVector) NegativeInfinity() float32 { return 0 }

func (v *PackedIntVector) SetInt(i int, value int) error {
	if i < 0 || i >= v.length {
		return indexOutOfRange(int64(i), int64(v.length))
	}
	if value < 0 || value > int(v.maxValue) {
		return &ValueOutOfRangeError{Value: value, Max: int(v.maxValue)}
	}
	v.put(i, uint32(value))
	return nil
}

func (v *PackedIntVector) SetFloat(i int, value float32) error { return v.SetInt(i, roundFloat(value)) }
func (v *PackedIntVector) SetBoolean(i int, value bool) error  { return v.SetInt(i, boolToInt(value)) }
func (v *PackedIntVector) SetString(i int, value string) error { return setString(v, i, value) }

func (v *PackedIntVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *PackedIntVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

// packedOp combines two packed vectors of equal width and length.
func (v *PackedIntVector) packedOp(o *PackedIntVector, op arith) (Vector, error) {
	out, _ := NewPackedIntVector(v.length, v.bits)
	for i := range v.length {
		if err := out.SetInt(i, op.ints(int(v.get(i)), int(o.get(i)))); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (v *PackedIntVector) ScalarAdd(addend int) Vector          { return scalarAdd(v, addend) }
func (v *PackedIntVector) ScalarAddFloat(addend float32) Vector { return scalarAddFloat(v, addend) }

// ScalarMultiply stays packed when every product fits the field width.
func (v *PackedIntVector) ScalarMultiply(multiplier int) Vector {
	if multiplier >= 0 {
		if top := v.IntMax(); top <= 0 || multiplier <= int(v.maxValue)/top {
			out, _ := NewPackedIntVector(v.length, v.bits)
			for i := range v.length {
				out.put(i, v.get(i)*uint32(multiplier))
			}
			return out
		}
	}
	return scalarMultiply(v, multiplier)
}

func (v *PackedIntVector) ScalarMultiplyFloat(multiplier float32) Vector {
	return scalarMultiplyFloat(v, multiplier)
}

func (v *PackedIntVector) DotProduct(other Vector) (float32, error) { return dotProduct(v, other) }

func (v *PackedIntVector) ElementwiseDivide(other Vector) (*FloatVector, error) {
	return elementwiseDivide(v, other)
}

func (v *PackedIntVector) ElementwiseLog() *FloatVector { return elementwiseLog(v) }

func (v *PackedIntVector) Multiply(m Matrix) (NumericVector, error) { return multiply(v, m) }

func (v *PackedIntVector) Sum() float32 {
	var s int
	for i := range v.length {
		s += int(v.get(i))
	}
	return float32(s)
}

func (v *PackedIntVector) Min() float32 { return minimum(v) }
func (v *PackedIntVector) Max() float32 { return maximum(v) }
func (v *PackedIntVector) IntMin() int  { return intMin(v) }
func (v *PackedIntVector) IntMax() int  { return intMax(v) }
func (v *PackedIntVector) ArgMin() int  { return argMin(v) }
func (v *PackedIntVector) ArgMax() int  { return argMax(v) }

// SubVector re-packs the window slot by slot; it need not be word aligned.
func (v *PackedIntVector) SubVector(i0, i1 int) (Vector, error) {
	if err := subVectorRange(i0, i1, v.length); err != nil {
		return nil, err
	}
	out, _ := NewPackedIntVector(i1-i0+1, v.bits)
	for i := i0; i <= i1; i++ {
		out.put(i-i0, v.get(i))
	}
	return out, nil
}

func (v *PackedIntVector) Clone() Vector {
	out := *v
	out.words = slices.Clone(v.words)
	return &out
}

func (v *PackedIntVector) Equals(other Vector) bool {
	o, ok := other.(*PackedIntVector)
	if !ok || o.length != v.length {
		return false
	}
	if o.bits == v.bits {
		return slices.Equal(o.words, v.words)
	}
	for i := range v.length {
		if v.get(i) != o.get(i) {
			return false
		}
	}
	return true
}

func (v *PackedIntVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *PackedIntVector) String() string { return vectorString(v) }
