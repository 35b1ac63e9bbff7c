package game

import "errors"

var (
	// ErrOutOfRange is returned for a note index that does not exist.
	ErrOutOfRange = errors.New("note index out of range")

	ErrInvalidNote        = errors.New("invalid note")
	ErrInvalidBPM         = errors.New("invalid bpm")
	ErrInvalidPermutation = errors.New("invalid permutation")

	// ErrMalformed is returned for a persisted chart that cannot be decoded.
	ErrMalformed = errors.New("malformed chart")
)

// IsValidation reports whether err rejected its input as invalid.
// Nothing was mutated when this is true.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidNote) ||
		errors.Is(err, ErrInvalidBPM) ||
		errors.Is(err, ErrInvalidPermutation) ||
		errors.Is(err, ErrMalformed)
}
