package et

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned when a keyed encoding is missing "sec" or "nsec".
type ErrMissingField struct {
	Field string
}

func (e ErrMissingField) Error() string {
	return fmt.Sprintf("et: missing field %q", e.Field)
}

// ErrUnknownField is returned when a keyed encoding contains a field other than "sec" or "nsec".
type ErrUnknownField struct {
	Field string
}

func (e ErrUnknownField) Error() string {
	return fmt.Sprintf("et: unknown field %q, expected %q or %q", e.Field, fieldSec, fieldNsec)
}

// ErrMalformed is returned when an encoding is truncated, has trailing data,
// or contains a value of the wrong type or width.
type ErrMalformed struct {
	Format string
	Err    error
}

func (e ErrMalformed) Error() string {
	return fmt.Sprintf("et: malformed %s: %v", e.Format, e.Err)
}

func (e ErrMalformed) Unwrap() error {
	return e.Err
}

// ErrFormatRange is returned when a Timestamp's seconds cannot be displayed as a calendar date.
type ErrFormatRange struct {
	Sec int64
}

func (e ErrFormatRange) Error() string {
	return fmt.Sprintf("et: seconds %d out of range for display [%d, %d]", e.Sec, MinDisplaySec, MaxDisplaySec)
}

func IsMissingField(err error) bool {
	return errors.As(err, &ErrMissingField{})
}

func IsUnknownField(err error) bool {
	return errors.As(err, &ErrUnknownField{})
}

func IsMalformed(err error) bool {
	return errors.As(err, &ErrMalformed{})
}

func IsFormatRange(err error) bool {
	return errors.As(err, &ErrFormatRange{})
}
