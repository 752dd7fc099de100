// Package vecmath provides fixed-length numeric and bit vectors behind one
// polymorphic arithmetic contract.
//
// Each concrete type is a different physical encoding of the same abstraction:
//
//	IntVector, FloatVector                       dense slices
//	PackedBitVector                              one bit per slot in 32-bit words
//	PackedIntVector                              1, 2, 4, 8, 16 or 32 bits per slot
//	SparseBitVector, LargeSparseBitVector        immutable sorted index sets
//	MutableSparseBitVector, LargeMutable...      roaring bitmaps
//	HashSparseIntVector, HashSparseFloatVector   index->value maps with a default
//	LargeHashSparse{Int,Float}Vector             int64-indexed maps
//
// # Arithmetic
//
// Add and ElementwiseMultiply accept any pair of encodings. The result encoding
// is picked by Promote from the operands' kinds:
//
//	a := vecmath.IntVectorFrom([]int{1, 2, 3, 4})
//	b := vecmath.FloatVectorFrom([]float32{4, 3, 2, 1})
//	sum, _ := a.Add(b) // *FloatVector [5 5 5 5]
//
// Sparse bit vectors derive their length from the highest populated index, so a
// shorter sparse bit operand is zero extended instead of rejected.
//
// # Serialization
//
// Every vector writes a one-line header followed by a one-line body:
//
//	vector type=packed-int length=4 bits=4
//	3 0 15 7
//
// Read dispatches on the header and rebuilds the same encoding.
//
// # Concurrency
//
// Vectors are not safe for concurrent mutation. Clone and SubVector return
// independent copies that can be handed to another goroutine.
package vecmath
