package ui

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/plotsync/internal/palette"
	"github.com/five82/plotsync/internal/widget"
)

// renderObjects renders the object list and the state of the selected
// object side by side.
func (m Model) renderObjects() string {
	styles := m.theme.Styles()
	height := m.paneHeight()

	if len(m.snapshot.Objects) == 0 {
		msg := styles.MutedText.Render("No live objects")
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	listWidth := m.listWidth()
	listTitle := fmt.Sprintf("Objects (%d)", len(m.snapshot.Objects))
	listBg := m.theme.Focus
	if m.inputActive {
		listBg = m.theme.Pane
	}
	list := m.renderTitledBox(listTitle, m.renderObjectList(listWidth-2, listBg), listWidth, height, !m.inputActive)

	detailTitle := "State"
	if v, ok := m.selectedView(); ok {
		detailTitle = v.Model + " " + shortID(v.ID.String())
		if m.dirtyOnly {
			detailTitle += " · dirty"
		}
	}
	detail := m.renderTitledBox(detailTitle, m.detail.View(), m.width-listWidth, height, m.inputActive)

	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

// renderObjectList renders one row per live object:
// "Mark LinesModel 1a2b3c4d ×2 *".
func (m Model) renderObjectList(width int, bgColor string) string {
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.snapshot.Objects))
	for i, v := range m.snapshot.Objects {
		rowBg := bgColor
		textStyle := styles.Text
		mutedStyle := styles.MutedText
		if i == m.selected {
			rowBg = m.theme.Cursor
			textStyle = styles.Selected
			mutedStyle = textStyle
		}
		bg := NewBgStyle(rowBg)

		parts := []string{
			styles.Badge(category(v), category(v)),
			bg.Render(truncate(v.Model, max(width-22, 6)), textStyle),
			bg.Render(shortID(v.ID.String()), mutedStyle),
		}
		if v.Holders > 1 {
			parts = append(parts, bg.Render(fmt.Sprintf("×%d", v.Holders), mutedStyle))
		}
		if len(v.Dirty) > 0 {
			parts = append(parts, bg.Render("*", styles.WarningText))
		}
		line := lipgloss.NewStyle().
			Background(lipgloss.Color(rowBg)).
			Width(width).
			Render(bg.Join(parts, " "))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// updateDetail refreshes the state viewport for the selected object.
func (m *Model) updateDetail() {
	if !m.ready {
		return
	}
	v, ok := m.selectedView()
	if !ok {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(m.renderState(v, m.detail.Width))
}

// renderState lists an object's identity followed by its properties in name
// order, one per line.
func (m Model) renderState(v widget.View, width int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	meta := func(label, value string) {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-8s", label)))
		b.WriteString(styles.Text.Render(value))
		b.WriteString("\n")
	}
	meta("id", v.ID.Wire())
	meta("chain", strings.Join(v.Chain, " → "))
	meta("holders", fmt.Sprintf("%d", v.Holders))
	if len(v.Refs) > 0 {
		refs := make([]string, len(v.Refs))
		for i, id := range v.Refs {
			refs[i] = shortID(id.String())
		}
		meta("refs", strings.Join(refs, ", "))
	}
	b.WriteString("\n")

	names := make([]string, 0, len(v.State))
	for name := range v.State {
		if m.dirtyOnly && !slices.Contains(v.Dirty, name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 && m.dirtyOnly {
		b.WriteString(styles.MutedText.Render("No pending local changes"))
		return b.String()
	}

	nameWidth := 0
	for _, name := range names {
		nameWidth = max(nameWidth, len(name))
	}
	for _, name := range names {
		nameStyle := styles.AccentText
		if slices.Contains(v.Dirty, name) {
			nameStyle = styles.WarningText
		}
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)))
		b.WriteString(" ")
		b.WriteString(swatches(name, v.State[name]))
		b.WriteString(styles.Text.Render(truncate(formatValue(v.State[name]), max(width-nameWidth-4, 8))))
		b.WriteString("\n")
	}
	return b.String()
}

// formatValue renders a wire value as compact JSON.
func formatValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// swatches renders a colored block per color found in a color-valued
// property such as colors or stroke.
func swatches(name string, v any) string {
	if !strings.Contains(name, "color") && !strings.Contains(name, "stroke") {
		return ""
	}
	var values []string
	switch tv := v.(type) {
	case string:
		values = []string{tv}
	case []any:
		for _, item := range tv {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
	}
	var b strings.Builder
	for _, value := range values {
		hex, ok := palette.Hex(value)
		if !ok {
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("■"))
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + " "
}

// category returns the badge for a view: the first catalog root found in
// its chain.
func category(v widget.View) string {
	for _, tag := range v.Chain {
		if tag == "Mark" || tag == "Scale" {
			return tag
		}
	}
	if len(v.Chain) > 0 {
		return v.Chain[0]
	}
	return "?"
}
