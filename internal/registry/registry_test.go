package registry

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestRegistry_RegisterResolve(t *testing.T) {
	reg := New[string]()

	a := reg.Register("a")
	b := reg.Register("b")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a.IsZero(), false)

	got, err := reg.Resolve(a)
	assert.Equal(t, err, nil)
	assert.Equal(t, got, "a")

	assert.Equal(t, reg.IDs(), []ID{a, b})
	assert.Equal(t, reg.Len(), 2)
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := New[string]()

	_, err := reg.Resolve(NewID())
	assert.NotEqual(t, err, nil)
	assert.Equal(t, errors.Is(err, ErrNotFound), true)

	var refErr *ReferenceError
	assert.Equal(t, errors.As(err, &refErr), true)
	assert.Equal(t, refErr.Op, "resolve")
}

func TestRegistry_ReleaseFreesAtZero(t *testing.T) {
	reg := New[string]()
	id := reg.Register("scale")

	// two marks share the scale
	assert.Equal(t, reg.Acquire(id), nil)
	assert.Equal(t, reg.Acquire(id), nil)
	assert.Equal(t, reg.Refs(id), 3)

	_, freed, err := reg.Release(id)
	assert.Equal(t, err, nil)
	assert.Equal(t, freed, false)

	_, freed, _ = reg.Release(id)
	assert.Equal(t, freed, false)
	_, err = reg.Resolve(id)
	assert.Equal(t, err, nil)

	obj, freed, err := reg.Release(id)
	assert.Equal(t, err, nil)
	assert.Equal(t, freed, true)
	assert.Equal(t, obj, "scale")

	_, err = reg.Resolve(id)
	assert.Equal(t, errors.Is(err, ErrNotFound), true)
	assert.Equal(t, reg.Refs(id), 0)

	_, _, err = reg.Release(id)
	assert.Equal(t, errors.Is(err, ErrNotFound), true)
	assert.Equal(t, errors.Is(reg.Acquire(id), ErrNotFound), true)
}

func TestParseID_WireRoundTrip(t *testing.T) {
	id := NewID()

	parsed, err := ParseID(id.Wire())
	assert.Equal(t, err, nil)
	assert.Equal(t, parsed, id)

	parsed, err = ParseID(id.String())
	assert.Equal(t, err, nil)
	assert.Equal(t, parsed, id)

	_, err = ParseID("IPY_MODEL_nope")
	assert.NotEqual(t, err, nil)

	text, err := id.MarshalText()
	assert.Equal(t, err, nil)
	var back ID
	assert.Equal(t, back.UnmarshalText(text), nil)
	assert.Equal(t, back, id)
}
