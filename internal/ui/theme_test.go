package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	for _, name := range names {
		if GetTheme(name).Name != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, GetTheme(name).Name)
		}
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_Fallback(t *testing.T) {
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestThemesDefineBadges(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, badge := range []string{"pending", "saved", "error", "history"} {
			if th.BadgeColors[badge] == "" {
				t.Fatalf("theme %s has no %q badge color", name, badge)
			}
		}
	}
}
