package ui

import "testing"

func TestGetTheme_UnknownFallsBack(t *testing.T) {
	theme := GetTheme("NotATheme")
	if theme.Name != "Nightfox" {
		t.Errorf("fallback theme = %q, want Nightfox", theme.Name)
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	seen := map[string]bool{}
	name := themeOrder[0]
	for range themeOrder {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != themeOrder[0] {
		t.Errorf("cycle did not return to start: %q", name)
	}
	for _, want := range ThemeNames() {
		if !seen[want] {
			t.Errorf("theme %q never reached", want)
		}
	}

	if NextTheme("NotATheme") != themeOrder[0] {
		t.Error("unknown theme should restart the cycle")
	}
}

func TestThemes_CoverAllVerdicts(t *testing.T) {
	verdicts := []string{"supported", "disputed", "uncertain", "refuted"}
	for name, theme := range themes {
		for _, v := range verdicts {
			if theme.VerdictColors[v] == "" {
				t.Errorf("theme %s missing verdict color %s", name, v)
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 20); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	got := truncate("a very long claim that keeps going", 10)
	if len(got) > 12 { // ellipsis rune is multi-byte
		t.Errorf("truncate did not shorten: %q", got)
	}
}
