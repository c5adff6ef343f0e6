package mark

import (
	"github.com/five82/plotsync/internal/palette"
	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/widget"
)

// Lines draws one or more curves.
var Lines = widget.NewClass("Lines", Base,
	prop.New("x", prop.Data(), nil),
	prop.New("y", prop.Data(), nil),
	prop.New("color", prop.Sequence(prop.Color()), nil),
	prop.New("colors", prop.Sequence(prop.Color()), palette.Category10()),
	prop.New("fill_colors", prop.Sequence(prop.Color()), nil),
	prop.New("stroke_width", prop.Float().Min(0), 2.0),
	prop.New("labels_visibility", prop.Enum("none", "labels"), "none"),
	prop.New("curves_subset", prop.Sequence(prop.Int().Min(0)), nil),
	prop.New("line_style", prop.Enum("solid", "dashed", "dotted", "dash_dotted"), "solid"),
	prop.New("interpolation", prop.Enum("linear", "basis", "basis-open", "basis-closed",
		"bundle", "cardinal", "cardinal-open", "cardinal-closed", "monotone",
		"step-before", "step-after"), "linear"),
	prop.New("close_path", prop.Bool(), false),
	prop.New("fill", prop.Enum("none", "bottom", "top", "inside"), "none"),
	prop.New("marker", prop.Optional(markerShapes), nil),
	prop.New("marker_size", prop.Int().Min(0), 64),
	prop.New("opacities", prop.Sequence(prop.Float().Between(0, 1)), nil),
	prop.New("fill_opacities", prop.Sequence(prop.Float().Between(0, 1)), nil),
).Concrete("LinesModel", "Lines")

// NewLines builds a Lines mark plotted against the x and y scales.
func NewLines(m *widget.Manager, x, y registry.ID, opts ...widget.Option) (*Mark, error) {
	return construct(m, Lines, axisX, axisY, x, y, []axis{channel("color")}, opts)
}
