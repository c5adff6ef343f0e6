package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/plotsync/internal/mark"
	"github.com/five82/plotsync/internal/prefs"
	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/scale"
	"github.com/five82/plotsync/internal/state"
	"github.com/five82/plotsync/internal/widget"
)

type harness struct {
	t     *testing.T
	mgr   *widget.Manager
	lines *mark.Mark
	model Model
	prefs string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	mgr := widget.NewManager(widget.Options{})
	x, err := scale.NewLinear(mgr)
	if err != nil {
		t.Fatalf("NewLinear returned error: %v", err)
	}
	y, err := scale.NewLinear(mgr)
	if err != nil {
		t.Fatalf("NewLinear returned error: %v", err)
	}
	lines, err := mark.NewLines(mgr, x.ID(), y.ID())
	if err != nil {
		t.Fatalf("NewLines returned error: %v", err)
	}

	store := &state.Store{}
	store.Update(mgr.Snapshot(), mgr.Stats(), 1)

	h := &harness{t: t, mgr: mgr, lines: lines, prefs: filepath.Join(t.TempDir(), "prefs.toml")}
	h.model = New(Options{Manager: mgr, Store: store, Addr: "127.0.0.1:8765", PrefsPath: h.prefs})
	h.send(tea.WindowSizeMsg{Width: 140, Height: 40})
	h.send(snapshotMsg(store.Snapshot()))
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	next, _ := h.model.Update(msg)
	h.model = next.(Model)
}

func (h *harness) press(keys string) {
	h.t.Helper()
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
}

func TestModel_RendersObjects(t *testing.T) {
	h := newHarness(t)

	view := h.model.View()
	for _, want := range []string{"plotsync", "LinesModel", "LinearScaleModel", "Objects (3)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q", want)
		}
	}

	h.press("G")
	if v, ok := h.model.selectedView(); !ok || v.ID != h.lines.ID() {
		t.Fatalf("selected = %v, want the lines mark", v.ID)
	}
	if !strings.Contains(h.model.View(), "interpolation") {
		t.Fatalf("View() should show the selected object's state")
	}
}

func TestModel_PatchPrompt(t *testing.T) {
	h := newHarness(t)
	h.press("G")

	h.press("p")
	if !h.model.inputActive {
		t.Fatalf("p should open the patch prompt")
	}
	h.press(`{"line_style": "DASHED"}`)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if h.model.inputActive {
		t.Fatalf("enter should close the patch prompt")
	}
	if h.model.statusErr || !strings.Contains(h.model.status, "patched 1 key") {
		t.Fatalf("status = %q (err=%v), want success", h.model.status, h.model.statusErr)
	}
	if got, _ := h.lines.Get("line_style"); got != "dashed" {
		t.Fatalf("line_style = %v, want dashed", got)
	}
	if h.model.snapshot.Stats.Applied != 1 {
		t.Fatalf("Stats.Applied = %d, want 1", h.model.snapshot.Stats.Applied)
	}
}

func TestModel_RejectedPatchShowsReason(t *testing.T) {
	h := newHarness(t)
	h.press("G")
	h.press("p")
	h.press(`{"interpolation": "zigzag", "visible": false}`)
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if !h.model.statusErr || !strings.Contains(h.model.status, "interpolation") {
		t.Fatalf("status = %q (err=%v), want interpolation rejection", h.model.status, h.model.statusErr)
	}
	if got, _ := h.lines.Get("visible"); got != false {
		t.Fatalf("visible = %v, want false (valid keys still apply)", got)
	}
}

func TestModel_EscapeCancelsPrompt(t *testing.T) {
	h := newHarness(t)
	h.press("p")
	h.press(`{"visible": false}`)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.model.inputActive {
		t.Fatalf("esc should close the patch prompt")
	}
	if h.model.snapshot.Stats.Applied != 0 {
		t.Fatalf("cancelled patch was applied")
	}
}

func TestModel_ReleaseSelected(t *testing.T) {
	h := newHarness(t)
	h.press("G")
	h.press("x")
	if len(h.model.snapshot.Objects) != 2 {
		t.Fatalf("objects after release = %d, want 2", len(h.model.snapshot.Objects))
	}
	if _, err := h.mgr.Resolve(h.lines.ID()); err == nil {
		t.Fatalf("lines mark still registered after release")
	}
}

func TestModel_ThemeAndLogPrefsPersist(t *testing.T) {
	h := newHarness(t)
	h.press("T")
	h.press("l")
	h.press("L")

	if _, err := os.Stat(h.prefs); err != nil {
		t.Fatalf("prefs not saved: %v", err)
	}
	p, err := prefs.Load(h.prefs)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Kanagawa" || !p.ShowLogs || p.LogLevel != "warn" {
		t.Fatalf("prefs = %+v, want Kanagawa/true/warn", p)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	h := newHarness(t)
	h.press("?")
	if !strings.Contains(h.model.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	h.press("j")
	if h.model.showHelp {
		t.Fatalf("any key should close help")
	}
}

func TestParsePatch(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: `{"visible": false}`},
		{in: "  ", wantErr: true},
		{in: "{}", wantErr: true},
		{in: "[1, 2]", wantErr: true},
		{in: `{"x": `, wantErr: true},
	}
	for _, tt := range tests {
		_, err := parsePatch(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parsePatch(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestFormatting(t *testing.T) {
	if got := formatValue(map[string]any{"hover": "tooltip"}); got != `{"hover":"tooltip"}` {
		t.Fatalf("formatValue = %q", got)
	}
	if got := swatches("visible", true); got != "" {
		t.Fatalf("swatches for a non-color key = %q, want empty", got)
	}
	if got := swatches("colors", []any{"red", "#00ff00", "nope"}); strings.Count(got, "■") != 2 {
		t.Fatalf("swatches = %q, want two blocks", got)
	}
	id := registry.NewID()
	if got := shortID(id.Wire()); len(got) != 8 || !strings.HasSuffix(id.String(), got) {
		t.Fatalf("shortID(%q) = %q", id.Wire(), got)
	}
	if got := category(widget.View{Chain: []string{"Lines", "Mark", "Widget"}}); got != "Mark" {
		t.Fatalf("category = %q, want Mark", got)
	}
	if got := stripTime(`time=2026-01-01T00:00:00Z level=WARN msg="x"`); got != `msg="x"` {
		t.Fatalf("stripTime = %q", got)
	}
	if got := nextLogLevel("error"); got != "debug" {
		t.Fatalf("nextLogLevel(error) = %q, want debug", got)
	}
}
