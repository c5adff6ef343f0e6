package prop

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/plotsync/internal/palette"
)

const hexDigits = "0123456789abcdefABCDEF"

type colorType struct{}

// Color accepts a "#RRGGBB" hex string or an accepted color name (matched
// case-insensitively). The accepted string is stored as given.
func Color() Type { return colorType{} }

func (colorType) Kind() Kind       { return KindColor }
func (colorType) Zero() any        { return "black" }
func (colorType) String() string   { return "color" }
func (colorType) Encode(v any) any { return v }

func (colorType) Coerce(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, mismatch("color string", raw)
	}
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 || strings.Trim(s[1:], hexDigits) != "" {
			return nil, fmt.Errorf("%w: %q is not #RRGGBB", ErrMalformedColor, s)
		}
		if _, err := colorful.Hex(s); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedColor, s, err)
		}
		return s, nil
	}
	if !palette.IsName(s) {
		return nil, fmt.Errorf("%w: unknown color name %q", ErrMalformedColor, s)
	}
	return s, nil
}
