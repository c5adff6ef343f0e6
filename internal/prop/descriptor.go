package prop

import "fmt"

// Descriptor is a typed property slot declared by a class: its name, value
// type and default.
type Descriptor struct {
	Name string
	Type Type
	// Default is coerced through Type when the owning class is defined; nil
	// selects Type.Zero.
	Default any
	// ReadOnly descriptors are fixed at construction. A patch may repeat the
	// current value but never change it.
	ReadOnly bool
}

// New declares a property.
func New(name string, t Type, def any) Descriptor {
	return Descriptor{Name: name, Type: t, Default: def}
}

// Fixed declares a read-only property.
func Fixed(name string, t Type, def any) Descriptor {
	return Descriptor{Name: name, Type: t, Default: def, ReadOnly: true}
}

// Validate coerces raw into the stored form, reporting failures as
// *ValidationError.
func (d Descriptor) Validate(raw any) (any, error) {
	v, err := d.Type.Coerce(raw)
	if err != nil {
		return nil, &ValidationError{Property: d.Name, Reason: err}
	}
	return v, nil
}

// DefaultValue returns a freshly coerced default.
func (d Descriptor) DefaultValue() (any, error) {
	if d.Default == nil {
		return d.Type.Zero(), nil
	}
	v, err := d.Validate(d.Default)
	if err != nil {
		return nil, fmt.Errorf("default: %w", err)
	}
	return v, nil
}

// Encode returns the wire form of a stored value.
func (d Descriptor) Encode(v any) any {
	return d.Type.Encode(v)
}
