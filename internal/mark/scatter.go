package mark

import (
	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/widget"
)

// ScatterBase holds the per-point data channels and editing toggles shared
// by point marks. It is abstract.
var ScatterBase = widget.NewClass("ScatterBase", Base,
	prop.New("x", prop.Data(), nil),
	prop.New("y", prop.Data(), nil),
	prop.New("color", prop.Data(), nil),
	prop.New("opacity", prop.Data(), nil),
	prop.New("size", prop.Data(), nil),
	prop.New("rotation", prop.Data(), nil),
	prop.New("default_opacities", prop.Data(), nil),
	prop.New("hovered_style", prop.Object(), nil),
	prop.New("unhovered_style", prop.Object(), nil),
	prop.New("hovered_point", prop.Optional(prop.Int().Min(0)), nil),
	prop.New("enable_move", prop.Bool(), false),
	prop.New("enable_delete", prop.Bool(), false),
	prop.New("restrict_x", prop.Bool(), false),
	prop.New("restrict_y", prop.Bool(), false),
	prop.New("update_on_move", prop.Bool(), false),
)

// Scatter draws one glyph per point.
var Scatter = widget.NewClass("Scatter", ScatterBase,
	prop.New("skew", prop.Data(), nil),
	prop.New("marker", markerShapes, "circle"),
	prop.New("colors", prop.Sequence(prop.Optional(prop.Color())), []string{"DeepSkyBlue"}),
	prop.New("stroke", prop.Optional(prop.Color()), nil),
	prop.New("stroke_width", prop.Float().Min(0), 1.5),
	prop.New("default_skew", prop.Float().Between(0, 1), 0.5),
	prop.New("default_size", prop.Int().Min(0), 64),
	prop.New("names", prop.Sequence(prop.String()), nil),
	prop.New("display_names", prop.Bool(), true),
	prop.New("fill", prop.Bool(), true),
	prop.New("drag_color", prop.Optional(prop.Color()), nil),
	prop.New("drag_size", prop.Float().Min(0), 5.0),
	prop.New("names_unique", prop.Bool(), true),
).Concrete("ScatterModel", "Scatter")

var scatterChannels = []axis{
	channel("color"),
	channel("size"),
	channel("opacity"),
	channel("rotation"),
}

// NewScatter builds a Scatter mark plotted against the x and y scales.
func NewScatter(m *widget.Manager, x, y registry.ID, opts ...widget.Option) (*Mark, error) {
	return construct(m, Scatter, axisX, axisY, x, y, scatterChannels, opts)
}
