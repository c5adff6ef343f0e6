package mark

import (
	"github.com/five82/plotsync/internal/palette"
	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/widget"
)

// Bars draws categorical bars, stacked or grouped.
var Bars = widget.NewClass("Bars", Base,
	prop.New("x", prop.Data(), nil),
	prop.New("y", prop.Data(), nil),
	prop.New("padding", prop.Float().Between(0, 1), 0.05),
	prop.New("opacities", prop.Sequence(prop.Float().Between(0, 1)), nil),
	prop.New("color", prop.Sequence(prop.Color()), nil),
	prop.New("colors", prop.Sequence(prop.Color()), palette.Category10()),
	prop.New("stroke", prop.Optional(prop.Color()), nil),
	prop.New("align", prop.Enum("center", "left", "right"), "center"),
	prop.New("color_mode", prop.Enum("auto", "group", "element"), "auto"),
	prop.New("orientation", prop.Enum("vertical", "horizontal"), "vertical"),
	prop.New("type", prop.Enum("stacked", "grouped"), "stacked"),
).Concrete("BarsModel", "Bars")

// NewBars builds a bar chart plotted against the x and y scales.
func NewBars(m *widget.Manager, x, y registry.ID, opts ...widget.Option) (*Mark, error) {
	return construct(m, Bars, axisX, axisY, x, y, []axis{channel("color")}, opts)
}
