package vecmath_test

import (
	"fmt"
	"log"
	"os"

	"github.com/hupe1980/vecmath"
)

// Example_promotion shows how Add picks the result encoding from both operands.
func Example_promotion() {
	a := vecmath.IntVectorFrom([]int{1, 2, 3, 4})
	b := vecmath.FloatVectorFrom([]float32{4, 3, 2, 1})

	sum, err := a.Add(b)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(sum.Kind(), sum.GetFloat(0))
	// Output: float 5
}

// Example_sparseBits demonstrates zero extension of a shorter sparse bit operand.
func Example_sparseBits() {
	bits, err := vecmath.NewSparseBitVector([]int{1, 2}) // length 3
	if err != nil {
		log.Fatal(err)
	}

	sum, err := vecmath.IntVectorFrom([]int{1, 2, 3, 4}).Add(bits)
	if err != nil {
		log.Fatal(err)
	}

	if err := sum.Write(os.Stdout); err != nil {
		log.Fatal(err)
	}
	// Output:
	// vector type=int length=4 sparse=false
	// 1 3 4 4
}

// Example_packedInt demonstrates the text format of a packed integer vector.
func Example_packedInt() {
	v, err := vecmath.PackedIntVectorFrom([]int{3, 0, 15, 7}, 4)
	if err != nil {
		log.Fatal(err)
	}

	if err := v.Write(os.Stdout); err != nil {
		log.Fatal(err)
	}

	round, err := vecmath.ReadString(v.String())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(round.Equals(v))
	// Output:
	// vector type=packed-int length=4 bits=4
	// 3 0 15 7
	// true
}

// Example_hashSparse demonstrates a hash-sparse vector with a default value.
func Example_hashSparse() {
	v, err := vecmath.HashSparseFloatVectorFromPairs([]float32{2, 1.5}, vecmath.WithDefault(-1), vecmath.WithLength(4))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(v.GetFloat(0), v.GetFloat(2), v.Populated(), v.Length())
	// Output: -1 1.5 1 4
}
