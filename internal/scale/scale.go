// Package scale declares the scale objects marks reference for their axes
// and data channels.
package scale

import (
	"fmt"

	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/widget"
)

var (
	// Base holds the properties every scale shares.
	Base = widget.NewClass("Scale", widget.Base,
		prop.New("reverse", prop.Bool(), false),
		prop.New("allow_padding", prop.Bool(), true),
	)

	Linear = widget.NewClass("LinearScale", Base,
		prop.New("min", prop.Optional(prop.Float()), nil),
		prop.New("max", prop.Optional(prop.Float()), nil),
		prop.New("stabilized", prop.Bool(), false),
		prop.New("mid_range", prop.Float().Between(0.1, 1), 0.8),
		prop.New("min_range", prop.Float().Between(0, 1), 0.6),
	).Concrete("LinearScaleModel", "LinearScale")

	Log = widget.NewClass("LogScale", Base,
		prop.New("min", prop.Optional(prop.Float().Min(0)), nil),
		prop.New("max", prop.Optional(prop.Float().Min(0)), nil),
	).Concrete("LogScaleModel", "LogScale")

	Ordinal = widget.NewClass("OrdinalScale", Base,
		prop.New("domain", prop.Sequence(prop.String()), nil),
	).Concrete("OrdinalScaleModel", "OrdinalScale")

	Color = widget.NewClass("ColorScale", Base,
		prop.New("scale_type", prop.Enum("linear", "log"), "linear"),
		prop.New("scheme", prop.String(), "RdYlGn"),
		prop.New("colors", prop.Sequence(prop.Color()), nil),
		prop.New("min", prop.Optional(prop.Float()), nil),
		prop.New("max", prop.Optional(prop.Float()), nil),
		prop.New("mid", prop.Optional(prop.Float()), nil),
	).Concrete("ColorScaleModel", "ColorScale")
)

// Scale is a synchronized scale object.
type Scale struct {
	*widget.Object
}

// New creates a scale of the given concrete class.
func New(m *widget.Manager, class *widget.Class, opts ...widget.Option) (*Scale, error) {
	if !class.IsA(Base) {
		return nil, fmt.Errorf("%s is not a scale class", class.Tag())
	}
	o, err := m.Create(class, widget.Collect(nil, opts...))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", class.Tag(), err)
	}
	return &Scale{Object: o}, nil
}

// NewLinear creates a linear scale.
func NewLinear(m *widget.Manager, opts ...widget.Option) (*Scale, error) {
	return New(m, Linear, opts...)
}

// NewLog creates a logarithmic scale.
func NewLog(m *widget.Manager, opts ...widget.Option) (*Scale, error) {
	return New(m, Log, opts...)
}

// NewOrdinal creates an ordinal scale.
func NewOrdinal(m *widget.Manager, opts ...widget.Option) (*Scale, error) {
	return New(m, Ordinal, opts...)
}

// NewColor creates a color scale.
func NewColor(m *widget.Manager, opts ...widget.Option) (*Scale, error) {
	return New(m, Color, opts...)
}
