package mark

import (
	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/widget"
)

// Histogram bins raw samples. count and midpoints are computed elsewhere and
// carried here as plain data.
var Histogram = widget.NewClass("Hist", Base,
	prop.New("bins", prop.Int().Min(1), 10),
	prop.New("colors", prop.Sequence(prop.Color()), []string{"#1f77b4"}),
	prop.New("count", prop.Data(), nil),
	prop.New("midpoints", prop.Data(), nil),
	prop.New("normalized", prop.Bool(), false),
	prop.New("opacities", prop.Sequence(prop.Float().Between(0, 1)), nil),
	prop.New("sample", prop.Data(), nil),
	prop.New("stroke", prop.Optional(prop.Color()), nil),
).Concrete("HistModel", "Hist")

var (
	axisSample = axis{channel: "sample", orientation: "horizontal", dimension: "x"}
	axisCount  = axis{channel: "count", orientation: "vertical", dimension: "y"}
)

// NewHistogram builds a histogram with its sample (horizontal) and count
// (vertical) scales.
func NewHistogram(m *widget.Manager, sample, count registry.ID, opts ...widget.Option) (*Mark, error) {
	return construct(m, Histogram, axisSample, axisCount, sample, count, nil, opts)
}
