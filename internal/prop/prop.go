package prop

import (
	"errors"
	"fmt"
)

// Kind enumerates the closed set of property value kinds.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindEnum
	KindColor
	KindOptional
	KindSequence
	KindMapping
	KindData
	KindObject
	KindReference
)

var kindNames = [...]string{
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindEnum:      "enum",
	KindColor:     "color",
	KindOptional:  "optional",
	KindSequence:  "sequence",
	KindMapping:   "mapping",
	KindData:      "data",
	KindObject:    "object",
	KindReference: "reference",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Validation failure reasons. Every error returned by Type.Coerce wraps one
// of these.
var (
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrUnknownEnumValue = errors.New("value not in enumeration")
	ErrMalformedColor   = errors.New("malformed color")
	ErrInvalidElement   = errors.New("invalid container element")
	ErrOutOfRange       = errors.New("value out of range")
	ErrReadOnly         = errors.New("property is read-only")
)

// Type validates raw assignments and converts between the stored and wire
// forms of one property kind.
//
// Coerce accepts JSON-decoded values as well as native Go values and returns
// the canonical stored form. Encode turns a stored value into a fresh
// JSON-compatible value that Coerce maps back to an equal stored value.
type Type interface {
	Kind() Kind
	Coerce(raw any) (any, error)
	Encode(v any) any
	// Zero is the value used when a descriptor declares no default.
	Zero() any
	String() string
}

// ValidationError reports which property rejected an assignment and why.
type ValidationError struct {
	Property string
	Reason   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("property %q: %v", e.Property, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

func mismatch(want string, raw any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrTypeMismatch, want, raw)
}
