// Package conv provides bounds-checked integer conversions for the length
// fields of serialized frames and compressed blocks.
//
// Conversions that are provably safe, such as loop indices, use plain casts.
package conv
