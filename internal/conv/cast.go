package conv

import (
	"fmt"
	"math"
)

// OverflowError reports a value that does not fit the target integer type.
type OverflowError struct {
	Value  string
	Target string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("integer overflow: %s does not fit %s", e.Value, e.Target)
}

func overflow[T int | int64 | uint32 | uint64](v T, target string) error {
	return &OverflowError{Value: fmt.Sprint(v), Target: target}
}

// IntToUint32 narrows a byte count to a 32-bit header field.
func IntToUint32(v int) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, overflow(v, "uint32")
	}
	return uint32(v), nil
}

// Uint32ToInt widens a 32-bit header field to int.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, overflow(v, "int")
	}
	return int(v), nil
}

// Int64ToUint64 rejects negative values.
func Int64ToUint64(v int64) (uint64, error) {
	if v < 0 {
		return 0, overflow(v, "uint64")
	}
	return uint64(v), nil
}

// Uint64ToInt64 rejects values above math.MaxInt64.
func Uint64ToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, overflow(v, "int64")
	}
	return int64(v), nil
}
