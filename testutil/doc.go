// Package testutil provides testing utilities for vecmath.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, goroutine-safe RNG and helpers that produce the raw
// material for every vector encoding.
//
// # Random Values
//
//	rng := testutil.NewRNG(seed)
//	dense := rng.Floats(128)              // uniform [-1, 1)
//	bits := rng.Bits(128, 0.1)            // 0/1 slots, 10% set
//	idx := rng.SparseIndices(1000, 0.01)  // sorted, always contains 999
//	pairs := rng.ZipfPairs(50, 1000, 1.5) // skewed index/value pairs
package testutil
