package mark

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/five82/plotsync/internal/prop"
	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/scale"
	"github.com/five82/plotsync/internal/widget"
)

func newScales(t *testing.T, m *widget.Manager) (registry.ID, registry.ID) {
	t.Helper()
	x, err := scale.NewLinear(m)
	if err != nil {
		t.Fatalf("NewLinear returned error: %v", err)
	}
	y, err := scale.NewLinear(m)
	if err != nil {
		t.Fatalf("NewLinear returned error: %v", err)
	}
	return x.ID(), y.ID()
}

func TestNewLines_Defaults(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)

	lines, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}
	state := lines.State()

	wantScales := map[string]any{"x": sx.Wire(), "y": sy.Wire()}
	if !reflect.DeepEqual(state["scales"], wantScales) {
		t.Fatalf("scales = %v, want %v", state["scales"], wantScales)
	}
	if state["stroke_width"] != 2.0 {
		t.Fatalf("stroke_width = %v, want 2.0", state["stroke_width"])
	}
	if state["line_style"] != "solid" || state["interpolation"] != "linear" {
		t.Fatalf("line_style/interpolation = %v/%v", state["line_style"], state["interpolation"])
	}
	if state["close_path"] != false {
		t.Fatalf("close_path = %v, want false", state["close_path"])
	}
	if state["_model_name"] != "LinesModel" || state["_view_name"] != "Lines" {
		t.Fatalf("routing = %v/%v", state["_model_name"], state["_view_name"])
	}
	if colors, _ := state["colors"].([]any); len(colors) != 10 {
		t.Fatalf("colors has %d entries, want 10", len(colors))
	}

	md, _ := state["scales_metadata"].(map[string]any)
	x, _ := md["x"].(map[string]any)
	if x["orientation"] != "horizontal" || x["dimension"] != "x" {
		t.Fatalf("scales_metadata.x = %v", x)
	}
	if _, ok := md["color"]; !ok {
		t.Fatalf("scales_metadata missing color channel: %v", md)
	}

	if got, ok := lines.Scale("y"); !ok || got != sy {
		t.Fatalf("Scale(y) = %v, %v; want %v", got, ok, sy)
	}
	if _, ok := lines.Scale("color"); ok {
		t.Fatalf("Scale(color) reported a binding")
	}
}

func TestLines_CoercesPatch(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	lines, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}

	if err := lines.ApplyPatch(map[string]any{"marker_size": 10.0, "line_style": "DASHED"}); err != nil {
		t.Fatalf("ApplyPatch returned error: %v", err)
	}
	state := lines.State()
	if state["marker_size"] != int64(10) {
		t.Fatalf("marker_size = %#v, want int64(10)", state["marker_size"])
	}
	if state["line_style"] != "dashed" {
		t.Fatalf("line_style = %v, want dashed", state["line_style"])
	}
}

func TestLines_RejectsUnknownEnumValue(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	lines, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}

	err = lines.ApplyPatch(map[string]any{"interpolation": "zigzag"})
	if !errors.Is(err, prop.ErrUnknownEnumValue) {
		t.Fatalf("ApplyPatch error = %v, want ErrUnknownEnumValue", err)
	}
	var perr *widget.PatchError
	if !errors.As(err, &perr) || len(perr.Errors) != 1 {
		t.Fatalf("error = %v, want one PatchError entry", err)
	}
	if got, _ := lines.Get("interpolation"); got != "linear" {
		t.Fatalf("interpolation = %v, want linear", got)
	}
}

func TestBars_TypeDefaultAndCoercion(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	bars, err := NewBars(m, sx, sy)
	if err != nil {
		t.Fatalf("NewBars returned error: %v", err)
	}
	if got, _ := bars.Get("type"); got != "stacked" {
		t.Fatalf("type = %v, want stacked", got)
	}
	if err := bars.ApplyPatch(map[string]any{"type": "Grouped"}); err != nil {
		t.Fatalf("ApplyPatch returned error: %v", err)
	}
	if got, _ := bars.Get("type"); got != "grouped" {
		t.Fatalf("type = %v, want grouped", got)
	}
	if err := bars.ApplyPatch(map[string]any{"padding": 1.5}); !errors.Is(err, prop.ErrOutOfRange) {
		t.Fatalf("padding 1.5 error = %v, want ErrOutOfRange", err)
	}
}

func TestNewHistogram_SampleAndCountScales(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sample, count := newScales(t, m)
	hist, err := NewHistogram(m, sample, count, widget.With("sample", []float64{1, 2, 2, 3}))
	if err != nil {
		t.Fatalf("NewHistogram returned error: %v", err)
	}
	state := hist.State()
	want := map[string]any{"sample": sample.Wire(), "count": count.Wire()}
	if !reflect.DeepEqual(state["scales"], want) {
		t.Fatalf("scales = %v, want %v", state["scales"], want)
	}
	if state["bins"] != int64(10) {
		t.Fatalf("bins = %#v, want 10", state["bins"])
	}
	if !reflect.DeepEqual(state["sample"], []any{1.0, 2.0, 2.0, 3.0}) {
		t.Fatalf("sample = %v", state["sample"])
	}
	if err := hist.ApplyPatch(map[string]any{"bins": 0}); !errors.Is(err, prop.ErrOutOfRange) {
		t.Fatalf("bins 0 error = %v, want ErrOutOfRange", err)
	}
	md, _ := state["scales_metadata"].(map[string]any)
	if s, _ := md["sample"].(map[string]any); s["orientation"] != "horizontal" {
		t.Fatalf("scales_metadata.sample = %v", md["sample"])
	}
}

func TestScatter_ExtraChannelsAndDefaults(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	colors, err := scale.NewColor(m)
	if err != nil {
		t.Fatalf("NewColor returned error: %v", err)
	}

	sc, err := NewScatter(m, sx, sy, WithScale("color", colors.ID()),
		widget.With("color", []float64{0.1, 0.5}))
	if err != nil {
		t.Fatalf("NewScatter returned error: %v", err)
	}
	if got, ok := sc.Scale("color"); !ok || got != colors.ID() {
		t.Fatalf("Scale(color) = %v, %v", got, ok)
	}
	state := sc.State()
	if state["marker"] != "circle" || state["default_size"] != int64(64) {
		t.Fatalf("marker/default_size = %v/%v", state["marker"], state["default_size"])
	}
	if !reflect.DeepEqual(state["colors"], []any{"DeepSkyBlue"}) {
		t.Fatalf("colors = %v", state["colors"])
	}
	md, _ := state["scales_metadata"].(map[string]any)
	for _, ch := range []string{"x", "y", "color", "size", "opacity", "rotation"} {
		if _, ok := md[ch]; !ok {
			t.Fatalf("scales_metadata missing %s", ch)
		}
	}
	if err := sc.ApplyPatch(map[string]any{"colors": []any{"red", nil}}); err != nil {
		t.Fatalf("optional color entry rejected: %v", err)
	}
}

func TestScatterBase_IsAbstract(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	_, err := construct(m, ScatterBase, axisX, axisY, sx, sy, nil, nil)
	if !errors.Is(err, widget.ErrAbstractClass) {
		t.Fatalf("construct(ScatterBase) error = %v, want ErrAbstractClass", err)
	}
}

func TestMarks_OwnStateRoundTripIsNoOp(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)

	builders := map[string]func() (*Mark, error){
		"lines":   func() (*Mark, error) { return NewLines(m, sx, sy) },
		"scatter": func() (*Mark, error) { return NewScatter(m, sx, sy) },
		"hist":    func() (*Mark, error) { return NewHistogram(m, sx, sy) },
		"bars":    func() (*Mark, error) { return NewBars(m, sx, sy) },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			mk, err := build()
			if err != nil {
				t.Fatalf("build returned error: %v", err)
			}
			before := mk.State()
			raw, err := json.Marshal(before)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var patch map[string]any
			if err := json.Unmarshal(raw, &patch); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if err := mk.ApplyPatch(patch); err != nil {
				t.Fatalf("ApplyPatch(own state) returned error: %v", err)
			}
			if after := mk.State(); !reflect.DeepEqual(before, after) {
				t.Fatalf("state changed after round trip:\nbefore %v\nafter  %v", before, after)
			}
			if dirty := mk.Dirty(); len(dirty) != 0 {
				t.Fatalf("Dirty = %v after round trip", dirty)
			}
		})
	}
}

func TestMarks_ContainerRejectionIsPerKey(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	lines, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}

	err = lines.ApplyPatch(map[string]any{
		"colors":     []any{"red", "not-a-color"},
		"visible":    false,
		"line_style": "dotted",
	})
	if !errors.Is(err, prop.ErrInvalidElement) {
		t.Fatalf("ApplyPatch error = %v, want ErrInvalidElement", err)
	}
	state := lines.State()
	if state["visible"] != false || state["line_style"] != "dotted" {
		t.Fatalf("valid keys not applied: visible=%v line_style=%v", state["visible"], state["line_style"])
	}
	if colors, _ := state["colors"].([]any); len(colors) != 10 {
		t.Fatalf("colors = %v, want category10 unchanged", state["colors"])
	}
}

func TestMarks_SharedScaleRefcount(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)

	a, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}
	b, err := NewScatter(m, sx, sy)
	if err != nil {
		t.Fatalf("NewScatter returned error: %v", err)
	}

	// creator plus two marks
	if err := m.Release(sx); err != nil {
		t.Fatalf("Release(sx) returned error: %v", err)
	}
	if err := m.Release(sy); err != nil {
		t.Fatalf("Release(sy) returned error: %v", err)
	}
	if err := m.Release(a.ID()); err != nil {
		t.Fatalf("Release(lines) returned error: %v", err)
	}
	if _, err := m.Resolve(sx); err != nil {
		t.Fatalf("x scale freed while scatter still holds it: %v", err)
	}
	if err := m.Release(b.ID()); err != nil {
		t.Fatalf("Release(scatter) returned error: %v", err)
	}
	if _, err := m.Resolve(sx); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("Resolve(sx) error = %v, want ErrNotFound", err)
	}
}

func TestConstruct_Failures(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	other, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}

	tests := []struct {
		name string
		x, y registry.ID
		want error
	}{
		{name: "zero x", x: registry.ID{}, y: sy, want: ErrMissingScale},
		{name: "unregistered y", x: sx, y: registry.NewID(), want: registry.ErrNotFound},
		{name: "not a scale", x: sx, y: other.ID(), want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(m.Snapshot())
			_, err := NewLines(m, tt.x, tt.y)
			var cerr *ConstructionError
			if !errors.As(err, &cerr) {
				t.Fatalf("error = %v, want *ConstructionError", err)
			}
			if cerr.Model != "LinesModel" {
				t.Fatalf("Model = %q, want LinesModel", cerr.Model)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if after := len(m.Snapshot()); after != before {
				t.Fatalf("object count %d -> %d after failed construction", before, after)
			}
		})
	}
}

func TestScaleUpdate_NotifiesMarks(t *testing.T) {
	var msgs []widget.Message
	m := widget.NewManager(widget.Options{Sink: widget.SinkFunc(func(msg widget.Message) {
		msgs = append(msgs, msg)
	})})
	sx, sy := newScales(t, m)
	lines, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}
	msgs = nil

	if err := m.Apply(sx, map[string]any{"min": 0.0}); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	var found bool
	for _, msg := range msgs {
		if msg.Method == widget.MethodUpdate && msg.ID == lines.ID() {
			if _, ok := msg.State["scales"]; ok {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("no scales update sent for the lines mark: %+v", msgs)
	}
}

func TestConstruct_WireScaleMustBeScale(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	other, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}
	before := len(m.Snapshot())

	_, err = NewLines(m, sx, sy, widget.With("scales", map[string]any{"color": other.ID().Wire()}))
	var cerr *ConstructionError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ConstructionError", err)
	}
	if after := len(m.Snapshot()); after != before {
		t.Fatalf("object count %d -> %d after failed construction", before, after)
	}

	_, err = NewLines(m, sx, sy, widget.With("scales", map[string]any{"color": 7}))
	if !errors.Is(err, prop.ErrTypeMismatch) {
		t.Fatalf("error = %v, want ErrTypeMismatch", err)
	}
}

func TestPatch_ScaleRebindRejectsNonScale(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	lines, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}
	bars, err := NewBars(m, sx, sy)
	if err != nil {
		t.Fatalf("NewBars returned error: %v", err)
	}

	err = m.Apply(lines.ID(), map[string]any{
		"scales":  map[string]any{"x": bars.ID().Wire(), "y": sy.Wire()},
		"visible": false,
	})
	if !errors.Is(err, widget.ErrWrongTarget) {
		t.Fatalf("Apply error = %v, want ErrWrongTarget", err)
	}
	if got, _ := lines.Scale("x"); got != sx {
		t.Fatalf("x scale = %v, want %v", got, sx)
	}
	if got, _ := lines.Get("visible"); got != false {
		t.Fatalf("visible = %v, want false", got)
	}
	views := m.Snapshot()
	for _, v := range views {
		if v.ID == bars.ID() && v.Holders != 1 {
			t.Fatalf("bars holders = %d, want 1", v.Holders)
		}
	}

	nx, err := scale.NewLinear(m)
	if err != nil {
		t.Fatalf("NewLinear returned error: %v", err)
	}
	if err := m.Apply(lines.ID(), map[string]any{"scales": map[string]any{"x": nx.ID().Wire(), "y": sy.Wire()}}); err != nil {
		t.Fatalf("rebinding to a scale returned error: %v", err)
	}
	if got, _ := lines.Scale("x"); got != nx.ID() {
		t.Fatalf("x scale = %v, want %v", got, nx.ID())
	}
}

func TestPatch_SelfReferenceRejected(t *testing.T) {
	m := widget.NewManager(widget.Options{})
	sx, sy := newScales(t, m)
	lines, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}

	err = m.Apply(lines.ID(), map[string]any{"tooltip": lines.ID().Wire()})
	if !errors.Is(err, widget.ErrSelfReference) {
		t.Fatalf("Apply error = %v, want ErrSelfReference", err)
	}
	if got, _ := lines.Get("tooltip"); got != nil {
		t.Fatalf("tooltip = %v, want nil", got)
	}

	if err := m.Release(lines.ID()); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}
	if _, err := m.Resolve(lines.ID()); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("Resolve after release = %v, want ErrNotFound", err)
	}
}

func TestScaleSetFlush_NotifiesMarks(t *testing.T) {
	var msgs []widget.Message
	m := widget.NewManager(widget.Options{Sink: widget.SinkFunc(func(msg widget.Message) {
		msgs = append(msgs, msg)
	})})
	sx, sy := newScales(t, m)
	lines, err := NewLines(m, sx, sy)
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}
	o, err := m.Resolve(sx)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	msgs = nil

	if err := o.Set("min", 0.0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := m.Flush(sx); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want scale then lines: %+v", len(msgs), msgs)
	}
	if msgs[0].ID != sx || msgs[1].ID != lines.ID() {
		t.Fatalf("message order = %v, %v; want scale then lines", msgs[0].ID, msgs[1].ID)
	}
	if _, ok := msgs[1].State["scales"]; !ok {
		t.Fatalf("lines update = %v, want scales", msgs[1].State)
	}

	msgs = nil
	if err := m.Flush(sx); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("clean flush sent %d messages, want 0", len(msgs))
	}
}
