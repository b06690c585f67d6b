package generator

import (
	"errors"
	"fmt"
)

// ErrInput marks failures caused by the answers given, as opposed to defects
// in a generator. Test with errors.Is.
var ErrInput = errors.New("invalid input")

// InputError reports an answer a generator cannot work with. It aborts the
// current run before anything is written.
type InputError struct {
	Field      string // question key (e.g., "collections")
	Message    string
	Suggestion string // Helpful suggestion (optional)
	Err        error  // optional underlying cause
}

// Error returns the message, followed by the suggestion when there is one.
func (e *InputError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s. Suggestion: %s", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns ErrInput and the optional cause so errors.Is and errors.As
// see both.
func (e *InputError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInput}
	}
	return []error{ErrInput, e.Err}
}
