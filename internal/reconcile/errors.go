package reconcile

import (
	"errors"
	"fmt"
)

// ErrorType is the category of a reconciliation failure.
type ErrorType string

const (
	// ErrorTypeConfiguration: the desired state is unusable; nothing was sent.
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeAmbiguousState: the remote state could not be mapped to one record.
	ErrorTypeAmbiguousState ErrorType = "ambiguous_state"
	// ErrorTypePrecondition: the record exists but the action is not allowed.
	ErrorTypePrecondition ErrorType = "precondition"
)

// Error is a fatal reconciliation failure raised by the engine itself.
// Errors returned by the remote API are passed through unchanged instead.
type Error struct {
	Type    ErrorType
	Kind    string
	Name    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Errorf creates an Error of the given type.
func Errorf(t ErrorType, kind, name, format string, args ...any) *Error {
	return &Error{
		Type:    t,
		Kind:    kind,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
	}
}

// ConfigurationError reports unusable input.
func ConfigurationError(kind, name, format string, args ...any) *Error {
	return Errorf(ErrorTypeConfiguration, kind, name, format, args...)
}

// AmbiguousStateError reports remote state that cannot be classified.
func AmbiguousStateError(kind, name, format string, args ...any) *Error {
	return Errorf(ErrorTypeAmbiguousState, kind, name, format, args...)
}

// PreconditionError reports an action the remote record does not permit.
func PreconditionError(kind, name, format string, args ...any) *Error {
	return Errorf(ErrorTypePrecondition, kind, name, format, args...)
}

// IsType checks if err is an *Error of type t.
func IsType(err error, t ErrorType) bool {
	var rErr *Error
	if errors.As(err, &rErr) {
		return rErr.Type == t
	}
	return false
}
