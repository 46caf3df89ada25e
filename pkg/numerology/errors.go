package numerology

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidGridPayload = errors.New("invalid grid payload")
)

// ErrorKind is a coarse-grained categorisation used by transports to pick a
// status code.
type ErrorKind string

const (
	KindInvalidInput       ErrorKind = "invalid_input"
	KindInvalidDate        ErrorKind = "invalid_date"
	KindInvalidGridPayload ErrorKind = "invalid_grid_payload"
)

// OpError wraps an underlying error with the failing operation, the offending
// field and a kind.
type OpError struct {
	Op    string
	Kind  ErrorKind
	Field string
	Err   error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match an OpError against the sentinel of its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrInvalidDate:
		return e.Kind == KindInvalidDate
	case ErrInvalidGridPayload:
		return e.Kind == KindInvalidGridPayload
	}
	return false
}

// IsKind reports whether err (or anything it wraps) is an OpError of kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// FieldOf returns the form field an OpError refers to, or "" when err does not
// carry one.
func FieldOf(err error) string {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Field
	}
	return ""
}
