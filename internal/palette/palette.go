// Package palette holds the static color data used for mark defaults and
// color validation.
package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var category10 = []string{
	"#1f77b4",
	"#ff7f0e",
	"#2ca02c",
	"#d62728",
	"#9467bd",
	"#8c564b",
	"#e377c2",
	"#7f7f7f",
	"#bcbd22",
	"#17becf",
}

// Category10 returns a fresh copy of the ten-color categorical palette.
func Category10() []string {
	out := make([]string, len(category10))
	copy(out, category10)
	return out
}

// IsName reports whether name is an accepted color name. Matching is
// case-insensitive; the registry is the SVG 1.1 named color table.
func IsName(name string) bool {
	_, ok := colornames.Map[strings.ToLower(name)]
	return ok
}

// Hex returns the #rrggbb form of a color name or hex string.
func Hex(value string) (string, bool) {
	if strings.HasPrefix(value, "#") {
		c, err := colorful.Hex(value)
		if err != nil {
			return "", false
		}
		return c.Hex(), true
	}
	rgba, ok := colornames.Map[strings.ToLower(value)]
	if !ok {
		return "", false
	}
	c, _ := colorful.MakeColor(rgba)
	return c.Hex(), true
}
