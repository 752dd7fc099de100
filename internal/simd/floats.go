package simd

import "github.com/viterin/vek/vek32"

var (
	dotImpl = dotGeneric
	sumImpl = sumGeneric
)

func selectKernels() {
	if activeISA == Generic {
		dotImpl = dotGeneric
		sumImpl = sumGeneric
		return
	}
	dotImpl = vek32.Dot
	sumImpl = vek32.Sum
}

// Dot calculates the dot product of two vectors.
//
// Callers must ensure len(a) == len(b); the accelerated kernel panics otherwise.
func Dot(a, b []float32) float32 {
	if len(a) == 0 {
		return 0
	}
	return dotImpl(a, b)
}

// Sum returns the sum of all elements of a.
func Sum(a []float32) float32 {
	if len(a) == 0 {
		return 0
	}
	return sumImpl(a)
}

func dotGeneric(a, b []float32) float32 {
	var ret float32
	for i := range a {
		ret += a[i] * b[i]
	}
	return ret
}

func sumGeneric(a []float32) float32 {
	var ret float32
	for _, v := range a {
		ret += v
	}
	return ret
}
