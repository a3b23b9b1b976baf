package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-factory/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawTextColored(0, 0, "Belt >", core.ColorCyan)
	s.DrawTextColored(6, 0, "[]", core.ColorBrightRed)
	s.DrawText(0, 2, "plain")

	for name, theme := range map[string]Theme{"default": DefaultTheme(), "mono": MonochromeTheme()} {
		t.Run(name, func(t *testing.T) {
			got := ansi.Strip(theme.RenderScreen(s))
			if got != s.String() {
				t.Errorf("stripped render = %q, want %q", got, s.String())
			}
		})
	}
}

func TestThemesStyleEveryColor(t *testing.T) {
	for _, theme := range []Theme{DefaultTheme(), MonochromeTheme()} {
		for c := range ansiPalette {
			if _, ok := theme.Board[c]; !ok {
				t.Errorf("color %v has no board style", c)
			}
		}
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range []string{"", "default", "mono", "monochrome"} {
		if _, ok := ThemeByName(name); !ok {
			t.Errorf("ThemeByName(%q) not found", name)
		}
	}
	if _, ok := ThemeByName("neon"); ok {
		t.Error("ThemeByName accepted an unknown theme")
	}
}
