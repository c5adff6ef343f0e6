// Package prop defines the typed property model shared by every synchronized
// object: value kinds, their validators, and property descriptors.
//
// # Kinds
//
// The set of kinds is closed:
//
//   - Bool, Int, Float, String: scalars (Int and Float take an optional range)
//   - Enum: string matched case-insensitively, stored lower-case
//   - Color: "#RRGGBB" or an accepted color name, stored as given
//   - Optional(T): nil means absent; anything else must satisfy T
//   - Sequence(T), Mapping(T): homogeneous containers, all-or-nothing
//   - Data: boxed numeric series, flat or one row per curve
//   - Object: free-form JSON object (styles, interaction maps, metadata)
//   - Reference: identifier of another registered object
//
// # Stored and wire forms
//
// Coerce returns the canonical stored form. Encode produces the value sent to
// the renderer. The two agree for every kind except Reference, which is
// stored as registry.ID and encoded as "IPY_MODEL_<id>". Coerce accepts both
// JSON-decoded input (integral float64 for ints, json.Number) and native Go
// values (int, []float64, map[string]string and so on), so
//
//	t.Coerce(t.Encode(v))
//
// yields a value equal to v for every stored v.
//
// # Errors
//
// Every Coerce failure wraps one of ErrTypeMismatch, ErrUnknownEnumValue,
// ErrMalformedColor, ErrInvalidElement or ErrOutOfRange. Descriptor.Validate
// wraps it again in *ValidationError naming the property. Container failures
// wrap ErrInvalidElement around the element's own reason:
//
//	property "colors": invalid container element at index 2: malformed color: unknown color name "blurple"
package prop
