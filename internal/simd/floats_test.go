package simd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Empty", nil, nil, 0},
		{"Positive values (size 3)", []float32{1, 2, 3}, []float32{4, 5, 6}, 32.0},
		{"Negative values (size 3)", []float32{-1, -2, -3}, []float32{-4, -5, -6}, 32.0},
		{"Mixed values (size 3)", []float32{1, -2, 3}, []float32{-4, 5, -6}, -32.0},
		{"Positive values (size 9)", []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9}, 285.0},
		{"Positive values (size 16)", []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, 1496.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Dot(tc.a, tc.b))
		})
	}
}

func TestDotMatchesGeneric(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	a := make([]float32, 1031)
	b := make([]float32, 1031)
	for i := range a {
		a[i] = r.Float32()
		b[i] = r.Float32()
	}
	assert.InDelta(t, dotGeneric(a, b), Dot(a, b), 1e-2)
}

func TestSum(t *testing.T) {
	assert.Equal(t, float32(0), Sum(nil))
	assert.Equal(t, float32(10), Sum([]float32{1, 2, 3, 4}))
	assert.Equal(t, float32(-1.5), Sum([]float32{0.5, -2}))
}

func TestParseISA(t *testing.T) {
	isa, ok := ParseISA(" AVX2 ")
	assert.True(t, ok)
	assert.Equal(t, AVX2, isa)

	_, ok = ParseISA("sse9")
	assert.False(t, ok)

	assert.Equal(t, "generic", Generic.String())
	assert.Equal(t, "unknown", ISA(42).String())
}

func TestGenericAlwaysAvailable(t *testing.T) {
	assert.True(t, isISAAvailable(Generic))
	assert.Equal(t, ActiveISA() != Generic, Accelerated())
}

func BenchmarkDot(b *testing.B) {
	const size = 1 << 16
	r := rand.New(rand.NewSource(1))
	va := make([]float32, size)
	vb := make([]float32, size)
	for i := range va {
		va[i] = r.Float32()
		vb[i] = r.Float32()
	}

	b.ResetTimer()
	for b.Loop() {
		_ = Dot(va, vb)
	}
}
