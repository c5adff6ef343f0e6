package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/plotsync/internal/config"
	"github.com/five82/plotsync/internal/logging"
	"github.com/five82/plotsync/internal/logtail"
	"github.com/five82/plotsync/internal/prefs"
	"github.com/five82/plotsync/internal/state"
	"github.com/five82/plotsync/internal/widget"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Manager   *widget.Manager
	Store     *state.Store
	Config    *config.Config
	Addr      string
	PollTick  time.Duration
	Prefs     prefs.Prefs
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	manager   *widget.Manager
	store     *state.Store
	config    *config.Config
	addr      string
	prefs     prefs.Prefs
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot state.Snapshot
	selected int

	// Detail pane
	detail    viewport.Model
	dirtyOnly bool

	// Log pane
	logs       viewport.Model
	logEntries []logtail.Entry

	// Patch prompt
	input       textinput.Model
	inputActive bool

	// Status line
	status    string
	statusErr bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Default()
	}

	input := textinput.New()
	input.Prompt = "patch> "
	input.Placeholder = `{"visible": false}`
	input.CharLimit = 4096

	return Model{
		ctx:       ctx,
		manager:   opts.Manager,
		store:     opts.Store,
		config:    opts.Config,
		addr:      opts.Addr,
		prefs:     p,
		prefsPath: opts.PrefsPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(p.Theme),
		input:     input,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.prefs.ShowLogs {
		cmds = append(cmds, m.refreshLogs())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detail = viewport.New(0, 0)
			m.logs = viewport.New(0, 0)
		}
		m.ready = true
		m.resize()
		m.updateDetail()
		m.updateLogView()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampSelection()
		m.updateDetail()
		return m, nil

	case logMsg:
		if msg.err != nil {
			logging.Logger().Debug("log tail failed", "error", msg.err)
			return m, nil
		}
		m.logEntries = msg.entries
		m.updateLogView()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.inputActive {
		return m.handlePatchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.updateDetail()
		m.updateLogView()

	case key.Matches(msg, m.keys.Patch):
		if _, ok := m.selectedView(); !ok {
			m.setStatus("no object selected", true)
			return m, nil
		}
		m.inputActive = true
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.ToggleDirty):
		m.dirtyOnly = !m.dirtyOnly
		m.updateDetail()

	case key.Matches(msg, m.keys.Release):
		m.releaseSelected()
		m.reloadSnapshot()

	case key.Matches(msg, m.keys.ToggleLogs):
		m.prefs.ShowLogs = !m.prefs.ShowLogs
		m.savePrefs()
		m.resize()
		if m.prefs.ShowLogs {
			return m, m.refreshLogs()
		}

	case key.Matches(msg, m.keys.CycleLogLevel):
		m.prefs.LogLevel = nextLogLevel(m.prefs.LogLevel)
		m.savePrefs()
		m.setStatus("log level "+m.prefs.LogLevel, false)
		return m, m.refreshLogs()

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.updateDetail()
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.snapshot.Objects)-1 {
			m.selected++
			m.updateDetail()
		}

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.updateDetail()

	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(len(m.snapshot.Objects)-1, 0)
		m.updateDetail()

	case key.Matches(msg, m.keys.HalfPageDown):
		m.detail.HalfPageDown()

	case key.Matches(msg, m.keys.HalfPageUp):
		m.detail.HalfPageUp()
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.prefs.ShowLogs {
		cmds = append(cmds, m.refreshLogs())
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m *Model) selectedView() (widget.View, bool) {
	if m.selected < 0 || m.selected >= len(m.snapshot.Objects) {
		return widget.View{}, false
	}
	return m.snapshot.Objects[m.selected], true
}

func (m *Model) clampSelection() {
	if m.selected >= len(m.snapshot.Objects) {
		m.selected = max(len(m.snapshot.Objects)-1, 0)
	}
}

func (m *Model) releaseSelected() {
	v, ok := m.selectedView()
	if !ok || m.manager == nil {
		return
	}
	if err := m.manager.Release(v.ID); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("released "+shortID(v.ID.String()), false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		logging.Logger().Warn("save prefs", "error", err)
	}
}

// reloadSnapshot reads the manager directly after a local change so the
// panes do not wait for the next poll.
func (m *Model) reloadSnapshot() {
	if m.manager == nil {
		return
	}
	m.snapshot.Objects = m.manager.Snapshot()
	m.snapshot.Stats = m.manager.Stats()
	m.clampSelection()
	m.updateDetail()
}

// contentHeight is what remains after the header, command bar and status
// line, one row each.
func (m Model) contentHeight() int {
	return max(m.height-3, 4)
}

// paneHeight is the height of the object panes; the log pane takes the
// rest when shown.
func (m Model) paneHeight() int {
	if m.prefs.ShowLogs {
		return m.contentHeight() * 2 / 3
	}
	return m.contentHeight()
}

func (m *Model) resize() {
	if m.prefs.ShowLogs {
		m.logs.Width = max(m.width-2, 0)
		m.logs.Height = max(m.contentHeight()-m.paneHeight()-2, 1)
	}
	m.detail.Width = max(m.width-m.listWidth()-2, 0)
	m.detail.Height = max(m.paneHeight()-2, 1)
	m.input.Width = max(m.width-len(m.input.Prompt)-2, 10)
}

func (m Model) listWidth() int {
	if m.width >= LayoutWideWidth {
		return m.width * 30 / 100
	}
	return m.width * 40 / 100
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderObjects())
	if m.prefs.ShowLogs {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func nextLogLevel(current string) string {
	level, _ := logging.ParseLevel(current)
	switch level {
	case slog.LevelDebug:
		return "info"
	case slog.LevelInfo:
		return "warn"
	case slog.LevelWarn:
		return "error"
	default:
		return "debug"
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		// killed by the server shutting down
		return nil
	}
	return err
}
