package prop

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/five82/plotsync/internal/registry"
)

// OptionalType wraps another type; nil means absent and is always valid.
type OptionalType struct {
	elem Type
}

// Optional makes elem optional.
func Optional(elem Type) OptionalType { return OptionalType{elem: elem} }

// Elem returns the wrapped type.
func (t OptionalType) Elem() Type { return t.elem }

func (t OptionalType) Kind() Kind     { return KindOptional }
func (t OptionalType) Zero() any      { return nil }
func (t OptionalType) String() string { return "optional<" + t.elem.String() + ">" }

func (t OptionalType) Coerce(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return t.elem.Coerce(raw)
}

func (t OptionalType) Encode(v any) any {
	if v == nil {
		return nil
	}
	return t.elem.Encode(v)
}

// SequenceType is an ordered homogeneous container.
type SequenceType struct {
	elem Type
}

// Sequence returns a sequence whose entries must all satisfy elem.
func Sequence(elem Type) SequenceType { return SequenceType{elem: elem} }

// Elem returns the element type.
func (t SequenceType) Elem() Type { return t.elem }

func (t SequenceType) Kind() Kind     { return KindSequence }
func (t SequenceType) Zero() any      { return []any{} }
func (t SequenceType) String() string { return "sequence<" + t.elem.String() + ">" }

// Coerce is all-or-nothing: one bad element rejects the whole value.
func (t SequenceType) Coerce(raw any) (any, error) {
	items, ok := asSlice(raw)
	if !ok {
		return nil, mismatch("sequence", raw)
	}
	out := make([]any, len(items))
	for i, item := range items {
		v, err := t.elem.Coerce(item)
		if err != nil {
			return nil, fmt.Errorf("%w at index %d: %w", ErrInvalidElement, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func (t SequenceType) Encode(v any) any {
	items, _ := v.([]any)
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = t.elem.Encode(item)
	}
	return out
}

// MappingType maps string keys to values of one type.
type MappingType struct {
	elem Type
}

// Mapping returns a string-keyed mapping whose values must satisfy elem.
func Mapping(elem Type) MappingType { return MappingType{elem: elem} }

// Elem returns the value type.
func (t MappingType) Elem() Type { return t.elem }

func (t MappingType) Kind() Kind     { return KindMapping }
func (t MappingType) Zero() any      { return map[string]any{} }
func (t MappingType) String() string { return "mapping<" + t.elem.String() + ">" }

func (t MappingType) Coerce(raw any) (any, error) {
	entries, ok := asMap(raw)
	if !ok {
		return nil, mismatch("mapping", raw)
	}
	out := make(map[string]any, len(entries))
	// sorted so the reported failure is deterministic
	for _, k := range sortedKeys(entries) {
		v, err := t.elem.Coerce(entries[k])
		if err != nil {
			return nil, fmt.Errorf("%w at key %q: %w", ErrInvalidElement, k, err)
		}
		out[k] = v
	}
	return out, nil
}

func (t MappingType) Encode(v any) any {
	entries, _ := v.(map[string]any)
	out := make(map[string]any, len(entries))
	for k, item := range entries {
		out[k] = t.elem.Encode(item)
	}
	return out
}

type dataType struct{}

// Data is the boxed numeric container used for plotted series: either a flat
// sequence of numbers or a sequence of equally typed numeric rows (one per
// curve).
func Data() Type { return dataType{} }

func (dataType) Kind() Kind     { return KindData }
func (dataType) Zero() any      { return []any{} }
func (dataType) String() string { return "data" }

func (dataType) Coerce(raw any) (any, error) {
	items, ok := asSlice(raw)
	if !ok {
		return nil, mismatch("numeric sequence", raw)
	}
	out := make([]any, len(items))
	if len(items) == 0 {
		return out, nil
	}
	if _, nested := asSlice(items[0]); nested {
		for i, item := range items {
			row, ok := asSlice(item)
			if !ok {
				return nil, fmt.Errorf("%w at index %d: %w", ErrInvalidElement, i, mismatch("numeric row", item))
			}
			vals, err := coerceNumbers(row)
			if err != nil {
				return nil, fmt.Errorf("%w at index %d: %w", ErrInvalidElement, i, err)
			}
			out[i] = vals
		}
		return out, nil
	}
	vals, err := coerceNumbers(items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidElement, err)
	}
	return vals, nil
}

func (dataType) Encode(v any) any {
	return copyJSON(v)
}

func coerceNumbers(items []any) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("index %d: %w: not finite", i, ErrOutOfRange)
		}
		out[i] = f
	}
	return out, nil
}

type objectType struct{}

// Object is a free-form JSON object such as a style dictionary. Numbers are
// normalized to float64 so values compare equal after a JSON round trip.
func Object() Type { return objectType{} }

func (objectType) Kind() Kind     { return KindObject }
func (objectType) Zero() any      { return map[string]any{} }
func (objectType) String() string { return "object" }

func (objectType) Coerce(raw any) (any, error) {
	if _, ok := asMap(raw); !ok {
		return nil, mismatch("object", raw)
	}
	return normalizeJSON(raw)
}

func (objectType) Encode(v any) any {
	return copyJSON(v)
}

type referenceType struct {
	of string
}

// Reference points at another registered object. It is stored as a
// registry.ID and written on the wire as "IPY_MODEL_<id>".
func Reference() Type { return referenceType{} }

// ReferenceTo is a Reference whose target must have tag in its class chain.
// The tag is checked by the owner of the registry when the value is
// assigned.
func ReferenceTo(tag string) Type { return referenceType{of: tag} }

func (referenceType) Kind() Kind { return KindReference }
func (referenceType) Zero() any  { return registry.ID{} }

func (t referenceType) String() string {
	if t.of == "" {
		return "reference"
	}
	return "reference(" + t.of + ")"
}

func (referenceType) Coerce(raw any) (any, error) {
	switch v := raw.(type) {
	case registry.ID:
		if v.IsZero() {
			return nil, mismatch("reference", raw)
		}
		return v, nil
	case string:
		id, err := registry.ParseID(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTypeMismatch, err)
		}
		return id, nil
	}
	return nil, mismatch("reference", raw)
}

func (referenceType) Encode(v any) any {
	id, ok := v.(registry.ID)
	if !ok || id.IsZero() {
		return nil
	}
	return id.Wire()
}

// Target is one reference held in a value, with the class tag its target
// must carry. Of is empty for unconstrained references.
type Target struct {
	ID registry.ID
	Of string
}

// Refs collects every reference held in v, a stored value of type t.
func Refs(t Type, v any) []registry.ID {
	targets := Targets(t, v)
	if len(targets) == 0 {
		return nil
	}
	out := make([]registry.ID, len(targets))
	for i, target := range targets {
		out[i] = target.ID
	}
	return out
}

// Targets is Refs with the target constraint of each reference.
func Targets(t Type, v any) []Target {
	var out []Target
	collectRefs(t, v, &out)
	return out
}

func collectRefs(t Type, v any, out *[]Target) {
	switch tt := t.(type) {
	case referenceType:
		if id, ok := v.(registry.ID); ok && !id.IsZero() {
			*out = append(*out, Target{ID: id, Of: tt.of})
		}
	case OptionalType:
		if v != nil {
			collectRefs(tt.elem, v, out)
		}
	case SequenceType:
		items, _ := v.([]any)
		for _, item := range items {
			collectRefs(tt.elem, item, out)
		}
	case MappingType:
		entries, _ := v.(map[string]any)
		for _, k := range sortedKeys(entries) {
			collectRefs(tt.elem, entries[k], out)
		}
	}
}

func asSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case nil, string:
		return nil, false
	case []any:
		return v, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func asMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return v, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeJSON deep-copies raw into plain JSON shapes: nil, bool, float64,
// string, []any and map[string]any.
func normalizeJSON(raw any) (any, error) {
	switch v := raw.(type) {
	case nil, bool, string:
		return v, nil
	case registry.ID:
		return v.Wire(), nil
	}
	if entries, ok := asMap(raw); ok {
		out := make(map[string]any, len(entries))
		for k, item := range entries {
			n, err := normalizeJSON(item)
			if err != nil {
				return nil, fmt.Errorf("%w at key %q: %w", ErrInvalidElement, k, err)
			}
			out[k] = n
		}
		return out, nil
	}
	if items, ok := asSlice(raw); ok {
		out := make([]any, len(items))
		for i, item := range items {
			n, err := normalizeJSON(item)
			if err != nil {
				return nil, fmt.Errorf("%w at index %d: %w", ErrInvalidElement, i, err)
			}
			out[i] = n
		}
		return out, nil
	}
	f, err := toFloat(raw)
	if err != nil {
		return nil, mismatch("JSON value", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: not finite", ErrOutOfRange)
	}
	return f, nil
}

// copyJSON deep-copies a value already in normalized JSON shape.
func copyJSON(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, item := range tv {
			out[k] = copyJSON(item)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, item := range tv {
			out[i] = copyJSON(item)
		}
		return out
	}
	return v
}
