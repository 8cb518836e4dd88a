package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pinball-madness/internal/core"
)

func TestRenderScreenRows(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "TIME")
	s.SetColored(2, 1, '●', core.ColorBrightWhite)

	out := RenderScreen(s)
	if n := strings.Count(out, "\n"); n != 2 {
		t.Errorf("expected 2 line breaks, got %d", n)
	}
	if !strings.Contains(out, "TIME") || !strings.Contains(out, "●") {
		t.Errorf("rendered output lost content: %q", out)
	}
}

func TestDrawToast(t *testing.T) {
	s := core.NewScreen(40, 5)
	s.Fill('#')
	drawToast(s, "Achievement unlocked: Survivor")

	row := s.Row(4)
	if !strings.Contains(row, "Achievement unlocked: Survivor") {
		t.Errorf("bottom row = %q", row)
	}
	if strings.Contains(row, "#") {
		t.Error("toast row should be cleared")
	}
	if s.Row(3) != strings.Repeat("#", 40) {
		t.Error("rows above the toast must be untouched")
	}
}

func TestDrawToastTruncates(t *testing.T) {
	s := core.NewScreen(8, 2)
	drawToast(s, "a very long banner")
	if got := s.Row(1); len([]rune(got)) != 8 {
		t.Errorf("row = %q, expected width 8", got)
	}
}
