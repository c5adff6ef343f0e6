package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: endpoint, renderers, objects and
// patch counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{bg.Render("plotsync", styles.Logo)}

	endpoint := m.addr
	if m.config != nil {
		endpoint = "ws://" + m.addr + m.config.Path
	}
	if endpoint != "" {
		parts = append(parts, bg.Render("● "+endpoint, styles.SuccessText))
	}

	clientStyle := styles.Text
	if m.snapshot.Clients == 0 {
		clientStyle = styles.WarningText
	}
	parts = append(parts,
		bg.Render("Renderers:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", m.snapshot.Clients), clientStyle),
		bg.Render("Objects:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Objects)), styles.Text),
	)

	if !compact {
		st := m.snapshot.Stats
		rejected := styles.Text
		if st.Rejected > 0 {
			rejected = styles.DangerText
		}
		ignored := styles.Text
		if st.Ignored > 0 {
			ignored = styles.WarningText
		}
		parts = append(parts,
			bg.Render("Applied:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", st.Applied), styles.Text),
			bg.Render("Rejected:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", st.Rejected), rejected),
			bg.Render("Ignored:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", st.Ignored), ignored),
		)
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar lists the short key help.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(h.Desc, styles.MutedText))
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// renderStatusLine shows the patch prompt while it is open, otherwise the
// outcome of the last action.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	if m.inputActive {
		return styles.Footer.Width(m.width).Render(m.input.View())
	}
	switch {
	case m.status == "":
		updated := "waiting for first snapshot"
		if !m.snapshot.LastUpdated.IsZero() {
			updated = "updated " + m.snapshot.LastUpdated.Format("15:04:05")
		}
		return styles.Footer.Width(m.width).Render(styles.FaintText.Render(updated))
	case m.statusErr:
		return styles.Footer.Width(m.width).Render(styles.DangerText.Render(truncate(m.status, m.width-2)))
	default:
		return styles.Footer.Width(m.width).Render(styles.SuccessText.Render(truncate(m.status, m.width-2)))
	}
}
