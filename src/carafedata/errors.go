package carafedata

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Domain errors for board content mutations. Infrastructure failures (bad
// queries, dead connections) are wrapped with oops instead; callers branch
// on these three and db.NotFound with errors.Is.
var (
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

func conflictErr(constraint string) error {
	return fmt.Errorf("%w: %s is already taken", ErrConflict, constraint)
}

func validationErr(what string, min, max int) error {
	return fmt.Errorf("%w: %s must be between %d and %d characters", ErrValidation, what, min, max)
}

func validateLength(what, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return validationErr(what, min, max)
	}
	return nil
}
