package vecmath

import (
	"io"
	"iter"
	"math/bits"
	"slices"
)

// PackedBitVector stores one bit per slot in 32-bit words.
//
// Bit i lives in word i>>5 at offset i&31. Bits past Length in the last word
// are always zero.
type PackedBitVector struct {
	words  []uint32
	length int
}

var _ BitVector = (*PackedBitVector)(nil)

// NewPackedBitVector returns an all-false PackedBitVector of the given length.
func NewPackedBitVector(length int) *PackedBitVector {
	return &PackedBitVector{
		words:  make([]uint32, (length+31)>>5),
		length: length,
	}
}

// PackedBitVectorFrom packs values.
func PackedBitVectorFrom(values []bool) *PackedBitVector {
	v := NewPackedBitVector(len(values))
	for i, b := range values {
		if b {
			v.set(i)
		}
	}
	return v
}

// PackedBitVectorFromInts packs values, treating any non-zero value as true.
func PackedBitVectorFromInts(values []int) *PackedBitVector {
	v := NewPackedBitVector(len(values))
	for i, x := range values {
		if x != 0 {
			v.set(i)
		}
	}
	return v
}

func (v *PackedBitVector) set(i int)   { v.words[i>>5] |= 1 << (i & 31) }
func (v *PackedBitVector) clear(i int) { v.words[i>>5] &^= 1 << (i & 31) }
func (v *PackedBitVector) bit(i int) bool {
	return v.words[i>>5]&(1<<(i&31)) != 0
}

func (v *PackedBitVector) mustIndex(i int) {
	if i < 0 || i >= v.length {
		panic(indexOutOfRange(int64(i), int64(v.length)))
	}
}

func (v *PackedBitVector) Kind() Kind  { return KindPackedBit }
func (v *PackedBitVector) Length() int { return v.length }

func (v *PackedBitVector) GetBoolean(i int) bool {
	v.mustIndex(i)
	return v.bit(i)
}

func (v *PackedBitVector) GetInt(i int) int       { return boolToInt(v.GetBoolean(i)) }
func (v *PackedBitVector) GetFloat(i int) float32 { return boolToFloat(v.GetBoolean(i)) }

func (v *PackedBitVector) Infinity() float32         { return 1 }
func (v *PackedBitVector) NegativeInfinity() float32 { return 0 }

func (v *PackedBitVector) SetBoolean(i int, value bool) error {
	if i < 0 || i >= v.length {
		return indexOutOfRange(int64(i), int64(v.length))
	}
	if value {
		v.set(i)
	} else {
		v.clear(i)
	}
	return nil
}

func (v *PackedBitVector) SetInt(i int, value int) error       { return v.SetBoolean(i, value != 0) }
func (v *PackedBitVector) SetFloat(i int, value float32) error { return v.SetBoolean(i, value != 0) }
func (v *PackedBitVector) SetString(i int, value string) error { return setString(v, i, value) }

func (v *PackedBitVector) AddIndex(i int) error    { return v.SetBoolean(i, true) }
func (v *PackedBitVector) RemoveIndex(i int) error { return v.SetBoolean(i, false) }

func (v *PackedBitVector) Contains(i int) bool {
	return i >= 0 && i < v.length && v.bit(i)
}

func (v *PackedBitVector) AddAll(indices []int) error {
	for _, i := range indices {
		if err := v.AddIndex(i); err != nil {
			return err
		}
	}
	return nil
}

func (v *PackedBitVector) RemoveAll(indices []int) error {
	for _, i := range indices {
		if err := v.RemoveIndex(i); err != nil {
			return err
		}
	}
	return nil
}

func (v *PackedBitVector) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for w, word := range v.words {
			for word != 0 {
				tz := bits.TrailingZeros32(word)
				if !yield(w<<5 + tz) {
					return
				}
				word &= word - 1
			}
		}
	}
}

func (v *PackedBitVector) Values() []int {
	return slices.AppendSeq(make([]int, 0, v.Cardinality()), v.All())
}

func (v *PackedBitVector) Cardinality() int {
	n := 0
	for _, word := range v.words {
		n += bits.OnesCount32(word)
	}
	return n
}

// Union returns a PackedBitVector of v's length with the slots of either operand set.
func (v *PackedBitVector) Union(other BitVector) (BitVector, error) {
	if o, ok := other.(*PackedBitVector); ok {
		if o.length != v.length {
			return nil, lengthMismatch(int64(v.length), int64(o.length))
		}
		out := v.cloneBits()
		for w := range out.words {
			out.words[w] |= o.words[w]
		}
		return out, nil
	}
	if other.Length() > v.length {
		return nil, lengthMismatch(int64(v.length), int64(other.Length()))
	}
	out := v.cloneBits()
	for i := range other.All() {
		out.set(i)
	}
	return out, nil
}

// Intersection returns a PackedBitVector of v's length with the slots of both operands set.
func (v *PackedBitVector) Intersection(other BitVector) (BitVector, error) {
	if o, ok := other.(*PackedBitVector); ok {
		if o.length != v.length {
			return nil, lengthMismatch(int64(v.length), int64(o.length))
		}
		out := v.cloneBits()
		for w := range out.words {
			out.words[w] &= o.words[w]
		}
		return out, nil
	}
	out := NewPackedBitVector(v.length)
	for i := range other.All() {
		if i >= v.length {
			break
		}
		if v.bit(i) {
			out.set(i)
		}
	}
	return out, nil
}

func (v *PackedBitVector) Add(other Vector) (Vector, error) {
	return binaryOp(v, other, arithAdd)
}

func (v *PackedBitVector) ElementwiseMultiply(other Vector) (Vector, error) {
	return binaryOp(v, other, arithMultiply)
}

func (v *PackedBitVector) ScalarAdd(addend int) Vector          { return scalarAdd(v, addend) }
func (v *PackedBitVector) ScalarAddFloat(addend float32) Vector { return scalarAddFloat(v, addend) }
func (v *PackedBitVector) ScalarMultiply(multiplier int) Vector { return scalarMultiply(v, multiplier) }
func (v *PackedBitVector) ScalarMultiplyFloat(multiplier float32) Vector {
	return scalarMultiplyFloat(v, multiplier)
}

func (v *PackedBitVector) DotProduct(other Vector) (float32, error) {
	if o, ok := other.(*PackedBitVector); ok {
		if o.length != v.length {
			return 0, lengthMismatch(int64(v.length), int64(o.length))
		}
		n := 0
		for w, word := range v.words {
			n += bits.OnesCount32(word & o.words[w])
		}
		return float32(n), nil
	}
	return dotProduct(v, other)
}

func (v *PackedBitVector) Sum() float32 { return float32(v.Cardinality()) }

func (v *PackedBitVector) Min() float32 {
	if v.length == 0 {
		return v.Infinity()
	}
	return v.GetFloat(v.ArgMin())
}

func (v *PackedBitVector) Max() float32 {
	if v.length == 0 {
		return v.NegativeInfinity()
	}
	return v.GetFloat(v.ArgMax())
}

func (v *PackedBitVector) IntMin() int { return intMin(v) }
func (v *PackedBitVector) IntMax() int { return intMax(v) }

// ArgMin returns the first clear slot, or 0 when every slot is set.
func (v *PackedBitVector) ArgMin() int {
	for w, word := range v.words {
		if word != ^uint32(0) {
			if i := w<<5 + bits.TrailingZeros32(^word); i < v.length {
				return i
			}
		}
	}
	return 0
}

// ArgMax returns the first set slot, or 0 when no slot is set.
func (v *PackedBitVector) ArgMax() int {
	for w, word := range v.words {
		if word != 0 {
			return w<<5 + bits.TrailingZeros32(word)
		}
	}
	return 0
}

func (v *PackedBitVector) SubVector(i0, i1 int) (Vector, error) {
	if err := subVectorRange(i0, i1, v.length); err != nil {
		return nil, err
	}
	out := NewPackedBitVector(i1 - i0 + 1)
	for i := i0; i <= i1; i++ {
		if v.bit(i) {
			out.set(i - i0)
		}
	}
	return out, nil
}

func (v *PackedBitVector) cloneBits() *PackedBitVector {
	return &PackedBitVector{words: slices.Clone(v.words), length: v.length}
}

func (v *PackedBitVector) Clone() Vector { return v.cloneBits() }

func (v *PackedBitVector) Equals(other Vector) bool {
	o, ok := other.(*PackedBitVector)
	return ok && o.length == v.length && slices.Equal(o.words, v.words)
}

func (v *PackedBitVector) Write(w io.Writer) error { return writeVector(w, v) }

func (v *PackedBitVector) String() string { return vectorString(v) }
