package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/plume/internal/generator"
)

// ErrInput marks failures caused by the answers given.
var ErrInput = generator.ErrInput

// InputError reports an answer the store generator cannot work with.
type InputError = generator.InputError

// InvalidCollectionNameError names a collection that does not match the
// identifier pattern.
type InvalidCollectionNameError struct {
	Name string
}

func (e *InvalidCollectionNameError) Error() string {
	return fmt.Sprintf("invalid collection name %q: must start with a letter and contain only letters, digits, '_' or '-'", e.Name)
}

func (e *InvalidCollectionNameError) Unwrap() error {
	return ErrInput
}

// invalidCollections joins every rejected name into a single InputError.
func invalidCollections(errs []error) error {
	names := make([]string, 0, len(errs))
	for _, err := range errs {
		var inv *InvalidCollectionNameError
		if errors.As(err, &inv) {
			names = append(names, fmt.Sprintf("%q", inv.Name))
		}
	}
	return &InputError{
		Field:   "collections",
		Message: fmt.Sprintf("invalid collection name(s) %s: names must start with a letter and contain only letters, digits, '_' or '-'", strings.Join(names, ", ")),
		Err:     errors.Join(errs...),
	}
}

// CompositionError wraps a failure while composing one artifact. Valid input
// never produces one; it points at a defect in a descriptor or template.
type CompositionError struct {
	Artifact string
	Err      error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composing %s: %v", e.Artifact, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}
