package vecmath

import "fmt"

// Kind identifies the physical encoding of a vector.
//
// Kinds form a closed set; binary operators resolve their result encoding from
// the kinds of both operands through Promote.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindPackedBit
	KindPackedInt
	KindSparseBit
	KindMutableSparseBit
	KindHashSparseInt
	KindHashSparseFloat
	KindLargeSparseBit
	KindLargeMutableSparseBit
	KindLargeHashSparseInt
	KindLargeHashSparseFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindPackedBit:
		return "packed-bit"
	case KindPackedInt:
		return "packed-int"
	case KindSparseBit:
		return "sparse-bit"
	case KindMutableSparseBit:
		return "mutable-sparse-bit"
	case KindHashSparseInt:
		return "hash-sparse-int"
	case KindHashSparseFloat:
		return "hash-sparse-float"
	case KindLargeSparseBit:
		return "large-sparse-bit"
	case KindLargeMutableSparseBit:
		return "large-mutable-sparse-bit"
	case KindLargeHashSparseInt:
		return "large-hash-sparse-int"
	case KindLargeHashSparseFloat:
		return "large-hash-sparse-float"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// IsBit reports whether the kind stores only booleans.
func (k Kind) IsBit() bool {
	switch k {
	case KindPackedBit, KindSparseBit, KindMutableSparseBit, KindLargeSparseBit, KindLargeMutableSparseBit:
		return true
	default:
		return false
	}
}

// IsSparseBit reports whether the kind is an index-set bit vector with derived length.
func (k Kind) IsSparseBit() bool {
	switch k {
	case KindSparseBit, KindMutableSparseBit, KindLargeSparseBit, KindLargeMutableSparseBit:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the kind stores floating point values.
func (k Kind) IsFloat() bool {
	switch k {
	case KindFloat, KindHashSparseFloat, KindLargeHashSparseFloat:
		return true
	default:
		return false
	}
}

// IsInt reports whether the kind stores integer values (bit kinds excluded).
func (k Kind) IsInt() bool {
	switch k {
	case KindInt, KindPackedInt, KindHashSparseInt, KindLargeHashSparseInt:
		return true
	default:
		return false
	}
}

// IsLarge reports whether the kind is addressed with 64-bit indices.
func (k Kind) IsLarge() bool {
	switch k {
	case KindLargeSparseBit, KindLargeMutableSparseBit, KindLargeHashSparseInt, KindLargeHashSparseFloat:
		return true
	default:
		return false
	}
}

// Promotion is the resolved result encoding of a binary operator.
type Promotion struct {
	// Result is the kind of the vector the operator allocates.
	Result Kind
	// Swap delegates the operation to the right operand's implementation.
	Swap bool
	// ZeroExtend allows the sparse-bit operand to be shorter than the numeric one.
	ZeroExtend bool
}

// Promote resolves the result encoding of Add and ElementwiseMultiply.
//
//	bit        x sparse-bit  -> delegate to the sparse operand
//	sparse-bit x sparse-bit  -> left kind
//	bit        x bit         -> left kind
//	packed-int x packed-int  -> packed-int (same width and length only)
//	numeric    x sparse-bit  -> int or float by the numeric side, zero extended
//	int-like   x int-like    -> int
//	anything   x float-like  -> float
//
// The table is symmetric except for the bit rows, which keep the left encoding.
func Promote(left, right Kind) Promotion {
	switch {
	case left.IsBit() && right.IsSparseBit() && !left.IsSparseBit():
		return Promotion{Result: right, Swap: true}
	case left.IsBit() && right.IsBit():
		return Promotion{Result: left}
	case left == KindPackedInt && right == KindPackedInt:
		return Promotion{Result: KindPackedInt}
	case right.IsSparseBit():
		return Promotion{Result: numericResult(left), ZeroExtend: true}
	case left.IsSparseBit():
		return Promotion{Result: numericResult(right), ZeroExtend: true}
	case left.IsFloat() || right.IsFloat():
		return Promotion{Result: KindFloat}
	default:
		return Promotion{Result: KindInt}
	}
}

func numericResult(k Kind) Kind {
	if k.IsFloat() {
		return KindFloat
	}
	return KindInt
}

// scalarResult is the dense kind produced by a scalar operator.
func scalarResult(receiver Kind, floatScalar bool) Kind {
	if floatScalar || receiver.IsFloat() {
		return KindFloat
	}
	return KindInt
}
