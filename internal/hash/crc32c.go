package hash

import (
	"fmt"
	"hash"
	"hash/crc32"
)

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}

// UpdateCRC32C extends crc with data.
func UpdateCRC32C(crc uint32, data []byte) uint32 {
	return crc32.Update(crc, crc32cTable, data)
}

// NewCRC32C returns a new CRC32-Castagnoli hash.Hash32.
func NewCRC32C() hash.Hash32 {
	return crc32.New(crc32cTable)
}

// ChecksumError reports a CRC32C mismatch.
type ChecksumError struct {
	Want uint32
	Got  uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: want %08x, got %08x", e.Want, e.Got)
}

// VerifyCRC32C returns a *ChecksumError if data does not hash to want.
func VerifyCRC32C(data []byte, want uint32) error {
	if got := CRC32C(data); got != want {
		return &ChecksumError{Want: want, Got: got}
	}
	return nil
}
