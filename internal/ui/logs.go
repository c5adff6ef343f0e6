package ui

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/plotsync/internal/logging"
	"github.com/five82/plotsync/internal/logtail"
)

type logMsg struct {
	entries []logtail.Entry
	err     error
}

// refreshLogs tails the server log at the preferred level.
func (m Model) refreshLogs() tea.Cmd {
	if m.config == nil {
		return nil
	}
	path := m.config.LogPath()
	level, _ := logging.ParseLevel(m.prefs.LogLevel)
	return func() tea.Msg {
		entries, err := logtail.Tail(path, LogTailLines, level)
		return logMsg{entries: entries, err: err}
	}
}

func (m *Model) updateLogView() {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()
	lines := make([]string, len(m.logEntries))
	for i, e := range m.logEntries {
		level := e.Level.String()
		badge := styles.Badge(level, padLevel(level))
		lines[i] = badge + " " + styles.Text.Render(truncate(stripTime(e.Text), max(m.logs.Width-10, 8)))
	}
	m.logs.SetContent(strings.Join(lines, "\n"))
	m.logs.GotoBottom()
}

func (m Model) renderLogs() string {
	title := "Logs ≥ " + strings.ToUpper(m.prefs.LogLevel)
	if m.config != nil {
		title += " · " + filepath.Base(m.config.LogPath())
	}
	height := m.contentHeight() - m.paneHeight()
	return m.renderTitledBox(title, m.logs.View(), m.width, height, false)
}

// stripTime drops the leading time=... and level=... attributes, which the
// pane already shows as a badge.
func stripTime(line string) string {
	for _, prefix := range []string{"time=", "level="} {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		if i := strings.IndexByte(line, ' '); i >= 0 {
			line = line[i+1:]
		}
	}
	return line
}

func padLevel(level string) string {
	if len(level) >= 5 {
		return level
	}
	return level + strings.Repeat(" ", 5-len(level))
}
