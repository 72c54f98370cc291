package bria

import (
	"errors"
	"fmt"
)

// Kind classifies why a vendor call attempt failed.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindNetwork        Kind = "network"
	KindTimeout        Kind = "timeout"
	KindResponseFormat Kind = "response_format"
	KindUnexpected     Kind = "unexpected"
)

// Error is the single failure type crossing the vendor boundary. Exactly one
// Kind applies to every failed attempt; Status is set for non-2xx responses
// and Field for rejected caller input.
type Error struct {
	Kind    Kind
	Status  int
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("bria: %s: %s: %s", e.Kind, e.Field, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("bria: %s: status %d: %s", e.Kind, e.Status, e.Message)
	default:
		return fmt.Sprintf("bria: %s: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid reports a rejected input parameter before any network I/O.
func Invalid(field, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Classify maps any error to its taxonomy kind. Errors that did not originate
// from this package are uncategorized.
func Classify(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnexpected
}
