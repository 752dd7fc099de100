// Package hash provides the CRC32-Castagnoli checksums used for archived
// vector frames and S3 upload integrity.
//
// Go's hash/crc32 uses SSE4.2 or the ARM CRC extension when available.
//
//	sum := hash.CRC32C(payload)
//	if err := hash.VerifyCRC32C(payload, sum); err != nil { ... }
package hash
