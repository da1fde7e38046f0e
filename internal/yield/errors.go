package yield

import (
	"errors"
	"fmt"
)

// Kind classifies estimation failures.
type Kind string

const KindInvalidInput Kind = "InvalidInput"

// ErrInvalidInput matches any *Error of kind InvalidInput via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Error is returned when a request cannot be scored.
type Error struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Msg)
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalidInput && e.Kind == KindInvalidInput
}

func invalid(field, msg string) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Msg: msg}
}
