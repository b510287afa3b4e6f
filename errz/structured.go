package errz

import "fmt"

// FriendlyError is an interface for errors that have a human friendly message
// in addition to the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// Located is implemented by errors that point into a script.
type Located interface {
	error
	Message() string
	ErrorContext() Context
}

// StructuredError is the base of every TFMT stage error. Kind is a sentinel
// error identifying the failure so callers can match it with errors.Is.
type StructuredError struct {
	Kind    error
	Detail  string
	Cause   error
	Context Context
}

// Message returns the error message without location information.
func (e *StructuredError) Message() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Context.IsZero() {
		return e.Message()
	}
	return fmt.Sprintf("%s (%d:%d)", e.Message(), e.Context.Line, e.Context.Column)
}

// Unwrap exposes both the Kind and the Cause to errors.Is and errors.As.
func (e *StructuredError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// ErrorContext returns where the error occurred.
func (e *StructuredError) ErrorContext() Context {
	return e.Context
}

// FriendlyErrorMessage returns the caret-pointed rendering of the error.
func (e *StructuredError) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(e)
}
