package registry

import (
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// WirePrefix marks a string as a reference to another synchronized object.
const WirePrefix = "IPY_MODEL_"

// ID identifies a registered object. The zero ID never names a live object.
type ID ulid.ULID

// NewID returns a fresh, process-unique identifier.
func NewID() ID {
	return ID(ulid.Make())
}

// ParseID accepts both the bare ULID and the wire form with WirePrefix.
func ParseID(s string) (ID, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), WirePrefix)
	u, err := ulid.ParseStrict(trimmed)
	if err != nil {
		return ID{}, fmt.Errorf("parse reference %q: %w", s, err)
	}
	return ID(u), nil
}

// IsZero reports whether id is unset.
func (id ID) IsZero() bool {
	return id == ID{}
}

func (id ID) String() string {
	return ulid.ULID(id).String()
}

// Wire returns the encoding used for reference-valued properties.
func (id ID) Wire() string {
	return WirePrefix + id.String()
}

// Compare orders identifiers by creation time, then entropy.
func (id ID) Compare(other ID) int {
	return ulid.ULID(id).Compare(ulid.ULID(other))
}

// MarshalText implements encoding.TextMarshaler using the wire form.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.Wire()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
