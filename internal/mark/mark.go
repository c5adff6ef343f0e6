package mark

import (
	"errors"
	"fmt"

	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/scale"
	"github.com/five82/plotsync/internal/widget"
)

// Base is the abstract root of the mark catalog.
var Base = widget.NewClass("Mark", widget.Base,
	prop.New("scales", prop.Mapping(prop.ReferenceTo(scale.Base.Tag())), nil),
	prop.New("scales_metadata", prop.Object(), nil),
	prop.New("preserve_domain", prop.Mapping(prop.Bool()), nil),
	prop.New("display_legend", prop.Bool(), false),
	prop.New("labels", prop.Sequence(prop.String()), nil),
	prop.New("apply_clip", prop.Bool(), true),
	prop.New("visible", prop.Bool(), true),
	prop.New("selected_style", prop.Object(), nil),
	prop.New("unselected_style", prop.Object(), nil),
	prop.New("selected", prop.Sequence(prop.Optional(prop.Int())), nil),
	prop.New("tooltip", prop.Optional(prop.Reference()), nil),
	prop.New("tooltip_style", prop.Object(), nil),
	prop.New("enable_hover", prop.Bool(), true),
	prop.New("interactions", prop.Object(), map[string]any{"hover": "tooltip"}),
	prop.New("tooltip_location", prop.Enum("mouse", "center"), "mouse"),
)

var markerShapes = prop.Enum("circle", "cross", "diamond", "square",
	"triangle-down", "triangle-up", "arrow", "rectangle", "ellipse")

// ErrMissingScale is returned when a constructor is not given one of its
// mandatory axis scales.
var ErrMissingScale = errors.New("missing scale")

// ConstructionError reports why a mark could not be built. No part of a
// failed mark is registered.
type ConstructionError struct {
	Model string
	Err   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct %s: %v", e.Model, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// Mark is a synchronized plot entity.
type Mark struct {
	*widget.Object
}

// axis names one mandatory scale channel and the metadata it is bound with.
type axis struct {
	channel     string
	orientation string
	dimension   string
}

func (a axis) metadata() map[string]any {
	md := map[string]any{"dimension": a.dimension}
	if a.orientation != "" {
		md["orientation"] = a.orientation
	}
	return md
}

var (
	axisX = axis{channel: "x", orientation: "horizontal", dimension: "x"}
	axisY = axis{channel: "y", orientation: "vertical", dimension: "y"}
)

// channel returns metadata for a data channel that has no orientation.
func channel(name string) axis {
	return axis{channel: name, dimension: name}
}

// WithScale binds an additional data channel (color, size, ...) to a scale.
func WithScale(channel string, id registry.ID) widget.Option {
	return func(values map[string]any) {
		scales, _ := values["scales"].(map[string]any)
		if scales == nil {
			scales = make(map[string]any)
			values["scales"] = scales
		}
		scales[channel] = id
	}
}

// construct builds a mark of class with its two mandatory scales bound
// before anything is registered, so no caller can observe a mark without
// them. extra lists the channels described in scales_metadata beyond the
// mandatory pair.
func construct(m *widget.Manager, class *widget.Class, first, second axis, a, b registry.ID, extra []axis, opts []widget.Option) (*Mark, error) {
	fail := func(err error) (*Mark, error) {
		return nil, &ConstructionError{Model: class.ModelName(), Err: err}
	}

	metadata := map[string]any{
		first.channel:  first.metadata(),
		second.channel: second.metadata(),
	}
	for _, ax := range extra {
		metadata[ax.channel] = ax.metadata()
	}
	values := widget.Collect(map[string]any{
		"scales":          map[string]any{},
		"scales_metadata": metadata,
	}, opts...)

	scales, ok := values["scales"].(map[string]any)
	if !ok {
		return fail(fmt.Errorf("scales option must be map[string]any, got %T", values["scales"]))
	}
	for _, req := range []struct {
		ax axis
		id registry.ID
	}{{first, a}, {second, b}} {
		if req.id.IsZero() {
			return fail(fmt.Errorf("%w: %s", ErrMissingScale, req.ax.channel))
		}
		scales[req.ax.channel] = req.id
	}
	for name, ref := range scales {
		id, err := scaleID(ref)
		if err != nil {
			return fail(fmt.Errorf("%s scale: %w", name, err))
		}
		target, err := m.Resolve(id)
		if err != nil {
			return fail(fmt.Errorf("%s scale: %w", name, err))
		}
		if !target.Class().IsA(scale.Base) {
			return fail(fmt.Errorf("%s scale: %s is a %s, not a scale", name, id.Wire(), target.Class().Tag()))
		}
	}

	o, err := m.Create(class, values)
	if err != nil {
		return fail(err)
	}
	return &Mark{Object: o}, nil
}

// scaleID accepts a scale given as an ID or in its wire form.
func scaleID(ref any) (registry.ID, error) {
	switch v := ref.(type) {
	case registry.ID:
		return v, nil
	case string:
		return registry.ParseID(v)
	}
	return registry.ID{}, fmt.Errorf("%w: %T", prop.ErrTypeMismatch, ref)
}

// Scale returns the scale bound to channel.
func (mk *Mark) Scale(channel string) (registry.ID, bool) {
	raw, _ := mk.Get("scales")
	scales, _ := raw.(map[string]any)
	wire, ok := scales[channel].(string)
	if !ok {
		return registry.ID{}, false
	}
	id, err := registry.ParseID(wire)
	if err != nil {
		return registry.ID{}, false
	}
	return id, true
}
