package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/cardstock/internal/card"
)

func mustHex(t *testing.T, s string) colorful.Color {
	t.Helper()
	c, err := colorful.Hex(s)
	if err != nil {
		t.Fatalf("Hex(%q): %v", s, err)
	}
	return c
}

func TestGradientEndpoints(t *testing.T) {
	from, to := mustHex(t, "#000000"), mustHex(t, "#ffffff")

	linear := card.Gradient{Enabled: true, Kind: "linear", Angle: 90}
	if got := gradientAt(linear, from, to, 0, 0, 10, 5); got.Hex() != "#000000" {
		t.Fatalf("left edge = %s, want #000000", got.Hex())
	}
	if got := gradientAt(linear, from, to, 9, 0, 10, 5); got.Hex() != "#ffffff" {
		t.Fatalf("right edge = %s, want #ffffff", got.Hex())
	}

	radial := card.Gradient{Enabled: true, Kind: "radial"}
	centre := gradientAt(radial, from, to, 5, 5, 11, 11)
	corner := gradientAt(radial, from, to, 0, 0, 11, 11)
	if centre.Hex() != "#000000" || corner.Hex() != "#ffffff" {
		t.Fatalf("radial centre/corner = %s/%s, want #000000/#ffffff", centre.Hex(), corner.Hex())
	}
}

func TestAdjustBrightness(t *testing.T) {
	grey := mustHex(t, "#808080")
	if got := adjustBrightness(grey, 100); got != grey {
		t.Fatalf("brightness 100 changed colour to %s", got.Hex())
	}
	if got := adjustBrightness(grey, 0).Hex(); got != "#000000" {
		t.Fatalf("brightness 0 = %s, want #000000", got)
	}
	if got := adjustBrightness(grey, 300).Hex(); got != "#ffffff" {
		t.Fatalf("brightness 300 = %s, want #ffffff", got)
	}
}

func TestFade(t *testing.T) {
	red, black := mustHex(t, "#ff0000"), mustHex(t, "#000000")
	if got := fade(red, black, 1).Hex(); got != "#ff0000" {
		t.Fatalf("fade opacity 1 = %s", got)
	}
	if got := fade(red, black, 0).Hex(); got != "#000000" {
		t.Fatalf("fade opacity 0 = %s", got)
	}
}

func TestShadowOffset(t *testing.T) {
	tests := []struct {
		name   string
		shadow card.Shadow
		dx, dy int
	}{
		{"disabled", card.Shadow{OffsetX: 16, OffsetY: 32, Opacity: 1}, 0, 0},
		{"transparent", card.Shadow{Enabled: true, OffsetX: 16, Opacity: 0}, 0, 0},
		{"offset", card.Shadow{Enabled: true, OffsetX: 16, OffsetY: 32, Opacity: 0.5}, 2, 2},
		{"clamped", card.Shadow{Enabled: true, OffsetX: -200, OffsetY: 200, Opacity: 0.5}, -3, 2},
		{"halo", card.Shadow{Enabled: true, Blur: 10, Opacity: 0.5}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := shadowOffset(tt.shadow)
			if dx != tt.dx || dy != tt.dy {
				t.Fatalf("shadowOffset = (%d, %d), want (%d, %d)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestRenderPreviewFitsAndShowsText(t *testing.T) {
	c := card.Default()
	c.Title = "Hello"
	c.Shadow.Enabled = false

	out := renderPreview(c, "#000000", 30, 10)

	if w := lipgloss.Width(out); w > 30 {
		t.Fatalf("preview width = %d, want <= 30", w)
	}
	if h := lipgloss.Height(out); h > 10 {
		t.Fatalf("preview height = %d, want <= 10", h)
	}
	if !strings.Contains(out, "Hello") {
		t.Fatal("preview missing title")
	}
	if !strings.Contains(out, "╭") {
		t.Fatal("rounded border expected for radius 12")
	}

	c.BorderRadius = 0
	if out := renderPreview(c, "#000000", 30, 10); !strings.Contains(out, "┌") {
		t.Fatal("square border expected for radius 0")
	}
}

func TestRenderPreviewShadowAddsSpace(t *testing.T) {
	c := card.Default()
	c.Shadow = card.Shadow{Enabled: true, OffsetX: 16, OffsetY: 16, Color: "#000000", Opacity: 0.5}
	c.Width, c.Height = 160, 96 // 20×6 cells

	out := renderPreview(c, "#101010", 80, 40)
	if w, h := lipgloss.Width(out), lipgloss.Height(out); w != 22 || h != 7 {
		t.Fatalf("preview size = %d×%d, want 22×7", w, h)
	}
}

func TestLayoutTextAlignsAndWraps(t *testing.T) {
	c := card.Default()
	c.Title = ""
	c.Subtitle = ""
	c.Body = "one two three four five six"
	c.Typography.LineHeight = 1

	lines := layoutText(c, 10)
	if len(lines) < 3 {
		t.Fatalf("lines = %d, want wrapped body", len(lines))
	}
	for _, ln := range lines {
		if len([]rune(ln.text)) > 10 {
			t.Fatalf("line %q wider than 10", ln.text)
		}
	}
}
