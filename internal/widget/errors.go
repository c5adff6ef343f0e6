package widget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/plotsync/internal/registry"
)

var (
	// ErrUnknownProperty is returned for local assignments to undeclared
	// names. Inbound patches ignore such keys instead.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrMissingReference is returned when a reference-valued assignment
	// names an object the registry cannot resolve.
	ErrMissingReference = errors.New("missing required reference")
	// ErrWrongTarget is returned when a reference names an object outside
	// the class the property accepts, such as a mark bound as a scale.
	ErrWrongTarget = errors.New("reference target has the wrong class")
	// ErrSelfReference is returned when an object would hold itself.
	ErrSelfReference = errors.New("object cannot reference itself")
	// ErrAbstractClass is returned when instantiating a class without
	// renderer names.
	ErrAbstractClass = errors.New("abstract class")
)

// PatchError batches the per-key failures of one patch. Keys not listed
// were applied.
type PatchError struct {
	ID     registry.ID
	Errors []error
}

func (e *PatchError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("patch %s: %d rejected: %s", e.ID.Wire(), len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *PatchError) Unwrap() []error { return e.Errors }
