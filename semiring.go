package vecmath

import "fmt"

// Semiring names the combination rule used by Union on hash-sparse vectors.
type Semiring uint8

const (
	// SemiringTropical combines values with max.
	SemiringTropical Semiring = iota
	// SemiringLog combines values with log-sum-exp.
	SemiringLog
	// SemiringReal combines values with ordinary addition.
	SemiringReal
)

func (s Semiring) String() string {
	switch s {
	case SemiringTropical:
		return "tropical"
	case SemiringLog:
		return "log"
	case SemiringReal:
		return "real"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(s))
	}
}
