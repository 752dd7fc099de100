package vecmath

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is matched by every *LengthMismatchError.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrImmutable is returned by every mutator of an immutable sparse encoding.
	ErrImmutable = errors.New("immutable vector: mutation not supported")

	// ErrOutOfRange is matched by *IndexOutOfRangeError and *ValueOutOfRangeError.
	ErrOutOfRange = errors.New("out of range")

	// ErrUnsupportedBits is matched by *UnsupportedBitsError.
	ErrUnsupportedBits = errors.New("unsupported bit width")

	// ErrMalformedInput is matched by every *MalformedInputError.
	ErrMalformedInput = errors.New("malformed vector input")

	// ErrUnsupportedSemiring is matched by every *UnsupportedSemiringError.
	ErrUnsupportedSemiring = errors.New("unsupported semiring")
)

// LengthMismatchError indicates that the operands of a binary operator disagree in length.
type LengthMismatchError struct {
	Expected int64
	Actual   int64
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *LengthMismatchError) Unwrap() error { return ErrLengthMismatch }

// IndexOutOfRangeError indicates an index outside [0, Length).
type IndexOutOfRangeError struct {
	Index  int64
	Length int64
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Length)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrOutOfRange }

// ValueOutOfRangeError indicates a value outside the domain [0, Max] of a packed-int vector.
type ValueOutOfRangeError struct {
	Value int
	Max   int
}

func (e *ValueOutOfRangeError) Error() string {
	return fmt.Sprintf("value %d out of range [0, %d]", e.Value, e.Max)
}

func (e *ValueOutOfRangeError) Unwrap() error { return ErrOutOfRange }

// UnsupportedBitsError indicates a packed-int width outside {1, 2, 4, 8, 16, 32}.
type UnsupportedBitsError struct {
	Bits int
}

func (e *UnsupportedBitsError) Error() string {
	return fmt.Sprintf("unsupported bit width: %d (must be one of 1, 2, 4, 8, 16, 32)", e.Bits)
}

func (e *UnsupportedBitsError) Unwrap() error { return ErrUnsupportedBits }

// MalformedInputError indicates a serialized vector that cannot be parsed.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type MalformedInputError struct {
	Reason string
	cause  error
}

func (e *MalformedInputError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("malformed vector input: %s: %v", e.Reason, e.cause)
	}
	return "malformed vector input: " + e.Reason
}

func (e *MalformedInputError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrMalformedInput, e.cause}
	}
	return []error{ErrMalformedInput}
}

func malformed(format string, args ...any) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}

func malformedCause(cause error, format string, args ...any) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...), cause: cause}
}

// UnsupportedSemiringError indicates a union that is not defined for the requested
// semiring or for operands with different default values.
type UnsupportedSemiringError struct {
	Semiring Semiring
	Reason   string
}

func (e *UnsupportedSemiringError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported semiring %s: %s", e.Semiring, e.Reason)
	}
	return fmt.Sprintf("unsupported semiring %s", e.Semiring)
}

func (e *UnsupportedSemiringError) Unwrap() error { return ErrUnsupportedSemiring }

func lengthMismatch(expected, actual int64) error {
	return &LengthMismatchError{Expected: expected, Actual: actual}
}

func indexOutOfRange(i, length int64) error {
	return &IndexOutOfRangeError{Index: i, Length: length}
}
