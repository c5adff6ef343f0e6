package app

import (
	"fmt"
	"math"

	"github.com/five82/plotsync/internal/mark"
	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/scale"
	"github.com/five82/plotsync/internal/widget"
)

// Demo is the sample scene built by -demo: a lines and a bars mark sharing
// one x scale.
type Demo struct {
	X, Y, BarY  registry.ID
	Lines, Bars registry.ID
}

// BuildDemo registers the demo scene with mgr.
func BuildDemo(mgr *widget.Manager) (Demo, error) {
	x, err := scale.NewLinear(mgr)
	if err != nil {
		return Demo{}, fmt.Errorf("demo x scale: %w", err)
	}
	y, err := scale.NewLinear(mgr, widget.With("min", -1.0), widget.With("max", 1.0))
	if err != nil {
		return Demo{}, fmt.Errorf("demo y scale: %w", err)
	}
	by, err := scale.NewLinear(mgr, widget.With("min", 0.0))
	if err != nil {
		return Demo{}, fmt.Errorf("demo bar scale: %w", err)
	}

	xs := make([]float64, 20)
	ys := make([]float64, len(xs))
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = math.Sin(float64(i) / 3)
	}
	lines, err := mark.NewLines(mgr, x.ID(), y.ID(),
		widget.With("x", xs),
		widget.With("y", ys),
		widget.With("labels", []string{"sin"}),
		widget.With("display_legend", true),
	)
	if err != nil {
		return Demo{}, fmt.Errorf("demo lines: %w", err)
	}

	bars, err := mark.NewBars(mgr, x.ID(), by.ID(),
		widget.With("x", []float64{2, 6, 10, 14, 18}),
		widget.With("y", []float64{3, 1, 4, 1, 5}),
		widget.With("padding", 0.2),
	)
	if err != nil {
		return Demo{}, fmt.Errorf("demo bars: %w", err)
	}
	return Demo{X: x.ID(), Y: y.ID(), BarY: by.ID(), Lines: lines.ID(), Bars: bars.ID()}, nil
}
