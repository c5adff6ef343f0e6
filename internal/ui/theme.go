package ui

import "github.com/charmbracelet/lipgloss"

// Theme is a named color set for the inspector. Colors are hex strings.
type Theme struct {
	Name string

	// Panes: Background behind everything, Surface for the header and
	// status bars, Pane for an idle box, Focus for the box taking keys.
	Background string
	Surface    string
	Pane       string
	Focus      string
	Border     string
	FocusRule  string

	// Object list cursor.
	Cursor     string
	CursorText string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// Badges colors the object categories (Mark, Scale) and log levels
	// (DEBUG, INFO, WARN, ERROR).
	Badges map[string]string
}

// Styles are the text styles the panes render with.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	Selected    lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style

	badges   map[string]string
	badgeInk string
	fallback string
}

// Styles builds the text styles for t.
func (t Theme) Styles() Styles {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	bar := lipgloss.NewStyle().Background(lipgloss.Color(t.Surface)).Padding(0, 1)
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		Selected:    fg(t.CursorText),

		Header: bar.Foreground(lipgloss.Color(t.Text)),
		Footer: bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:   fg(t.Warning).Bold(true),

		badges:   t.Badges,
		badgeInk: t.Background,
		fallback: t.Muted,
	}
}

// Badge renders label as a filled chip in the color of tag.
func (s Styles) Badge(tag, label string) string {
	color, ok := s.badges[tag]
	if !ok {
		color = s.fallback
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.badgeInk)).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Render(label)
}

// WithBackground paints every text style on color, so spans inside a
// colored bar do not punch holes in it.
func (s Styles) WithBackground(color string) Styles {
	bg := lipgloss.Color(color)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.SuccessText, &s.WarningText, &s.DangerText, &s.Selected,
		&s.Header, &s.Footer, &s.Logo,
	} {
		*st = st.Background(bg)
	}
	return s
}

// themes is also the cycle order for T.
var themes = []Theme{
	{
		// https://github.com/EdenEast/nightfox.nvim
		Name:       "Nightfox",
		Background: "#131a24",
		Surface:    "#192330",
		Pane:       "#212e3f",
		Focus:      "#29394f",
		Border:     "#39506d",
		FocusRule:  "#719cd6",
		Cursor:     "#2b3b51",
		CursorText: "#cdcecf",
		Text:       "#cdcecf",
		Muted:      "#738091",
		Faint:      "#71839b",
		Accent:     "#719cd6",
		Success:    "#81b29a",
		Warning:    "#dbc074",
		Danger:     "#c94f6d",
		Badges: map[string]string{
			"Mark": "#719cd6", "Scale": "#9d79d6",
			"DEBUG": "#71839b", "INFO": "#63cdcf", "WARN": "#dbc074", "ERROR": "#c94f6d",
		},
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		Name:       "Kanagawa",
		Background: "#16161D",
		Surface:    "#1F1F28",
		Pane:       "#2A2A37",
		Focus:      "#363646",
		Border:     "#54546D",
		FocusRule:  "#7E9CD8",
		Cursor:     "#2D4F67",
		CursorText: "#DCD7BA",
		Text:       "#DCD7BA",
		Muted:      "#C8C093",
		Faint:      "#727169",
		Accent:     "#7E9CD8",
		Success:    "#98BB6C",
		Warning:    "#E6C384",
		Danger:     "#E46876",
		Badges: map[string]string{
			"Mark": "#7E9CD8", "Scale": "#957FB8",
			"DEBUG": "#727169", "INFO": "#7FB4CA", "WARN": "#E6C384", "ERROR": "#E46876",
		},
	},
	{
		// Tailwind slate and sky.
		Name:       "Slate",
		Background: "#020617",
		Surface:    "#0f172a",
		Pane:       "#1e293b",
		Focus:      "#283548",
		Border:     "#334155",
		FocusRule:  "#38bdf8",
		Cursor:     "#0284c7",
		CursorText: "#f8fafc",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#38bdf8",
		Success:    "#22c55e",
		Warning:    "#f59e0b",
		Danger:     "#ef4444",
		Badges: map[string]string{
			"Mark": "#38bdf8", "Scale": "#06b6d4",
			"DEBUG": "#64748b", "INFO": "#0ea5e9", "WARN": "#f59e0b", "ERROR": "#dc2626",
		},
	},
}

// GetTheme returns the named theme, or the first one when name is unknown.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// ThemeNames lists the themes in cycle order.
func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
