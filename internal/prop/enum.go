package prop

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// EnumType matches strings case-insensitively against a fixed allowed set and
// stores the canonical lower-case member.
type EnumType struct {
	values []string
	folded map[string]string
}

// Enum builds an enumeration over values. Values are canonicalized to lower
// case; Enum panics on an empty or duplicate set since both are definition
// errors.
func Enum(values ...string) EnumType {
	if len(values) == 0 {
		panic("prop: empty enumeration")
	}
	t := EnumType{
		values: make([]string, 0, len(values)),
		folded: make(map[string]string, len(values)),
	}
	for _, v := range values {
		canonical := strings.ToLower(v)
		key := fold(v)
		if _, dup := t.folded[key]; dup {
			panic(fmt.Sprintf("prop: duplicate enumeration value %q", v))
		}
		t.folded[key] = canonical
		t.values = append(t.values, canonical)
	}
	return t
}

// Values lists the canonical members in declaration order.
func (t EnumType) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

func (t EnumType) Kind() Kind       { return KindEnum }
func (t EnumType) Zero() any        { return t.values[0] }
func (t EnumType) Encode(v any) any { return v }

func (t EnumType) String() string {
	return "enum(" + strings.Join(t.values, "|") + ")"
}

func (t EnumType) Coerce(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, mismatch("string", raw)
	}
	canonical, ok := t.folded[fold(s)]
	if !ok {
		return nil, fmt.Errorf("%w: %q not one of %s", ErrUnknownEnumValue, s, strings.Join(t.values, ", "))
	}
	return canonical, nil
}

// fold uses Unicode case folding. Casers carry state, so each call gets its
// own.
func fold(s string) string {
	return cases.Fold().String(s)
}
