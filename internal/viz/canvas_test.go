package viz

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCanvasDot(t *testing.T) {
	c := NewCanvas(10, 5)
	c.SetWindow(0, 100, 0, 50)

	tests := []struct {
		x, y   float64
		px, py int
	}{
		{0, 0, 0, 19},
		{100, 50, 19, 0},
		{50, 25, 10, 10},
	}
	for _, tt := range tests {
		px, py := c.Dot(tt.x, tt.y)
		if px != tt.px || py != tt.py {
			t.Errorf("Dot(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, px, py, tt.px, tt.py)
		}
	}
}

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(100, 0)

	if c.Grid[0][0] != brailleBlank|0x1 {
		t.Errorf("cell 0 = %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != brailleBlank|0x80 {
		t.Errorf("cell 1 = %U", c.Grid[0][1])
	}

	c.Clear()
	for _, r := range c.Grid[0] {
		if r != brailleBlank {
			t.Errorf("cell not cleared: %U", r)
		}
	}
}

func TestCanvasPolyline(t *testing.T) {
	c := NewCanvas(8, 4)
	c.SetWindow(0, 1, 0, 1)
	c.Polyline([]float64{0, 1}, []float64{0, 1})

	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	for i, line := range lines {
		if utf8.RuneCountInString(line) != 8 {
			t.Errorf("line %d has %d cells", i, utf8.RuneCountInString(line))
		}
	}
	// the diagonal touches both corners
	if c.Grid[3][0] == brailleBlank || c.Grid[0][7] == brailleBlank {
		t.Error("diagonal does not reach the corners")
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Errorf("Sparkline = %q", got)
	}
	if n := utf8.RuneCountInString(Sparkline(make([]float64, 100), 10)); n != 10 {
		t.Errorf("sampled sparkline has %d runes, want 10", n)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("empty sparkline = %q", got)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(CurrentTheme.Name)

	SetTheme("retro")
	if CurrentTheme.Name != "retro" {
		t.Fatalf("SetTheme did not switch, current %s", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "minimal" {
		t.Errorf("NextTheme = %s, want minimal", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "mission" {
		t.Errorf("NextTheme did not wrap, got %s", CurrentTheme.Name)
	}
	if GetTheme("nope").Name != "mission" {
		t.Error("unknown theme should fall back to mission")
	}
}
