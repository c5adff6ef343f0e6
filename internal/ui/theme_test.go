package ui

import (
	"strings"
	"testing"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	tests := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range tests {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemes_CoverTagsAndLevels(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, tag := range []string{"Mark", "Scale", "DEBUG", "INFO", "WARN", "ERROR"} {
			if th.Badges[tag] == "" {
				t.Fatalf("theme %s has no color for %s", name, tag)
			}
		}
	}
}

func TestStyles_BadgeFallsBackToMuted(t *testing.T) {
	styles := GetTheme("Slate").Styles()
	if got := styles.Badge("Widget", "Widget"); !strings.Contains(got, "Widget") {
		t.Fatalf("Badge(Widget) = %q, want label kept", got)
	}
	if styles.badges["Widget"] != "" || styles.fallback != GetTheme("Slate").Muted {
		t.Fatalf("fallback = %q, want the muted color", styles.fallback)
	}
}
