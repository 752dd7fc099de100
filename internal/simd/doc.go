// Package simd selects the float32 kernels used by dense vector arithmetic.
//
// # Supported Platforms
//
//   - x86-64: AVX2+FMA, AVX-512
//   - ARM64: NEON
//
// Runtime CPU feature detection (golang.org/x/sys/cpu) decides whether the
// vek32 kernels are used or the generic Go loops. Set VECMATH_SIMD=generic to
// force the fallback, e.g. when comparing results bit-for-bit across machines.
package simd
