package vecmath

import (
	"io"
	"iter"
)

// Vector is the capability contract shared by every encoding.
//
// Slots read as int, float32 or bool (a slot is true when its value is non-zero).
// Get* panic on indices outside [0, Length()) like slice indexing does, except for
// sparse encodings, which report the unpopulated value for any non-negative index.
// Set* return an error instead.
//
// Functional operators (Add, ElementwiseMultiply, Scalar*, SubVector, Clone)
// always allocate; operands are never modified. Vectors are not safe for
// concurrent mutation.
type Vector interface {
	// Kind returns the physical encoding of the vector.
	Kind() Kind
	// Length returns the number of slots.
	Length() int

	GetInt(i int) int
	GetFloat(i int) float32
	GetBoolean(i int) bool

	SetInt(i int, value int) error
	SetFloat(i int, value float32) error
	SetBoolean(i int, value bool) error
	// SetString parses value in the vector's element domain and stores it.
	SetString(i int, value string) error

	// Add returns the elementwise sum. The result encoding follows Promote.
	Add(other Vector) (Vector, error)
	// ElementwiseMultiply returns the elementwise product. The result encoding follows Promote.
	ElementwiseMultiply(other Vector) (Vector, error)

	ScalarAdd(addend int) Vector
	ScalarAddFloat(addend float32) Vector
	ScalarMultiply(multiplier int) Vector
	ScalarMultiplyFloat(multiplier float32) Vector

	DotProduct(other Vector) (float32, error)

	Sum() float32
	Min() float32
	Max() float32
	IntMin() int
	IntMax() int
	// ArgMin returns the index of the minimum, the first one on ties.
	ArgMin() int
	// ArgMax returns the index of the maximum, the first one on ties.
	ArgMax() int

	// Infinity returns the largest value representable in the element domain.
	Infinity() float32
	// NegativeInfinity returns the smallest value representable in the element domain.
	NegativeInfinity() float32

	// SubVector copies the inclusive window [i0, i1] into a new vector.
	SubVector(i0, i1 int) (Vector, error)
	Clone() Vector

	// Equals reports whether other has the same kind, length and element values.
	Equals(other Vector) bool

	// Write serializes the vector in the text format understood by Read.
	Write(w io.Writer) error
}

// NumericVector is a Vector of int or float elements.
type NumericVector interface {
	Vector

	// ElementwiseDivide returns v[i] / other[i] as a dense float vector.
	ElementwiseDivide(other Vector) (*FloatVector, error)
	// ElementwiseLog returns ln(v[i]) as a dense float vector.
	ElementwiseLog() *FloatVector
	// Multiply returns m · v; m.Columns() must equal Length().
	Multiply(m Matrix) (NumericVector, error)
}

// BitVector is a boolean Vector that also behaves as a set of populated indices.
type BitVector interface {
	Vector

	AddIndex(i int) error
	RemoveIndex(i int) error
	Contains(i int) bool
	AddAll(indices []int) error
	RemoveAll(indices []int) error

	// Values returns the populated indices in ascending order.
	Values() []int
	// All iterates the populated indices in ascending order.
	All() iter.Seq[int]
	// Cardinality returns the number of populated indices.
	Cardinality() int

	Union(other BitVector) (BitVector, error)
	Intersection(other BitVector) (BitVector, error)
}

// SparseVector is implemented by encodings that store only populated slots.
type SparseVector interface {
	Vector

	// Trim releases unused backing storage. Contents are unchanged.
	Trim()
	// Populated returns the number of explicitly stored slots.
	Populated() int
	// ForEachPopulated calls fn for every stored slot in ascending index order
	// until fn returns false.
	ForEachPopulated(fn func(i int, value float32) bool)
	// DefaultValue is the value reported for unpopulated slots.
	DefaultValue() float32
}

// LargeVector is a Vector addressed with 64-bit indices.
type LargeVector interface {
	Vector

	LargeLength() int64

	LargeGetInt(i int64) int
	LargeGetFloat(i int64) float32
	LargeGetBoolean(i int64) bool

	LargeSetInt(i int64, value int) error
	LargeSetFloat(i int64, value float32) error
	LargeSetBoolean(i int64, value bool) error

	LargeArgMin() int64
	LargeArgMax() int64

	LargeSubVector(i0, i1 int64) (LargeVector, error)
}

// LargeBitVector is a BitVector addressed with 64-bit indices.
type LargeBitVector interface {
	LargeVector
	BitVector

	LargeAddIndex(i int64) error
	LargeRemoveIndex(i int64) error
	LargeContains(i int64) bool
	LargeValues() []int64
	LargeAll() iter.Seq[int64]
}
