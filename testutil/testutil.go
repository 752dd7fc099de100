package testutil

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float32 in a loop).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float32, minVal, maxVal float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float32()*span
	}
}

// FillGaussian fills dst with values from a standard normal distribution.
func (r *RNG) FillGaussian(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = float32(r.rand.NormFloat64())
	}
}

// Floats returns n values in range [-1, 1).
func (r *RNG) Floats(n int) []float32 {
	out := make([]float32, n)
	r.FillUniformRange(out, -1, 1)
	return out
}

// Ints returns n values in range [0, maxValue].
func (r *RNG) Ints(n, maxValue int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(maxValue + 1)
	}
	return out
}

// Bits returns n 0/1 values where each slot is 1 with probability density.
func (r *RNG) Bits(n int, density float64) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		if r.rand.Float64() < density {
			out[i] = 1
		}
	}
	return out
}

// SparseIndices returns a sorted set of distinct indices in [0, length) where each
// index is present with probability density. The last index is always present
// so a set built from the result has exactly the given length.
func (r *RNG) SparseIndices(length int, density float64) []int {
	if length <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []int
	for i := range length - 1 {
		if r.rand.Float64() < density {
			out = append(out, i)
		}
	}
	return append(out, length-1)
}

// SparseIndices64 draws n distinct indices from [0, limit) and returns them sorted.
func (r *RNG) SparseIndices64(n int, limit int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int64]struct{}, n)
	for len(seen) < n {
		seen[r.rand.Int63n(limit)] = struct{}{}
	}

	out := make([]int64, 0, n)
	for i := range seen {
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// ZipfPairs returns count index/value pairs whose indices follow a Zipfian
// distribution over [0, length). Repeated indices keep the last value drawn.
// Values are small integers so they survive a text round trip unchanged.
func (r *RNG) ZipfPairs(count, length int, s float64) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	pairs := make([]int, 0, 2*count)
	for range count {
		pairs = append(pairs, r.zipfLocked(length, s), 1+r.rand.Intn(100))
	}
	return pairs
}
