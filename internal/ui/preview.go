package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/five82/cardstock/internal/card"
)

// Card pixels per terminal cell. Cells are roughly twice as tall as wide.
const (
	pxPerCol = 8
	pxPerRow = 16
)

// cell is one painted terminal cell of the preview.
type cell struct {
	r         rune
	fg, bg    colorful.Color
	bold      bool
	italic    bool
	underline bool
}

// canvas is a fixed-size grid of cells.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int, bg colorful.Color) *canvas {
	cv := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range cv.cells {
		cv.cells[i] = cell{r: ' ', fg: bg, bg: bg}
	}
	return cv
}

func (cv *canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return nil
	}
	return &cv.cells[y*cv.w+x]
}

// render turns the grid into styled lines, grouping runs of equal style.
func (cv *canvas) render() string {
	lines := make([]string, 0, cv.h)
	for y := 0; y < cv.h; y++ {
		var b strings.Builder
		row := cv.cells[y*cv.w : (y+1)*cv.w]
		for start := 0; start < len(row); {
			end := start + 1
			for end < len(row) && sameStyle(row[start], row[end]) {
				end++
			}
			var run strings.Builder
			for _, c := range row[start:end] {
				run.WriteRune(c.r)
			}
			b.WriteString(cellStyle(row[start]).Render(run.String()))
			start = end
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold && a.italic == b.italic && a.underline == b.underline
}

func cellStyle(c cell) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.fg.Hex())).
		Background(lipgloss.Color(c.bg.Hex())).
		Bold(c.bold).
		Italic(c.italic).
		Underline(c.underline)
}

// parseColor returns fallback for anything that is not a hex colour.
func parseColor(hex string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// previewSize maps the card's pixel size and scale to cells, bounded by the
// space available.
func previewSize(c card.Card, maxCols, maxRows int) (int, int) {
	scale := c.Transform.Scale
	if scale <= 0 {
		scale = 1
	}
	cols := int(math.Round(float64(c.Width) * scale / pxPerCol))
	rows := int(math.Round(float64(c.Height) * scale / pxPerRow))
	return clampInt(cols, 12, max(12, maxCols)), clampInt(rows, 5, max(5, maxRows))
}

// gradientAt returns the gradient colour at cell (x, y) of a w×h card.
// Linear gradients run along Angle (0 = bottom to top, 90 = left to right,
// as in CSS); radial gradients run from the centre outwards.
func gradientAt(g card.Gradient, from, to colorful.Color, x, y, w, h int) colorful.Color {
	if w <= 1 && h <= 1 {
		return from
	}
	// Normalise to [-0.5, 0.5]. Rows are doubled to keep the aspect square.
	nx := float64(x)/math.Max(1, float64(w-1)) - 0.5
	ny := float64(y)/math.Max(1, float64(h-1)) - 0.5

	var t float64
	if g.Kind == "radial" {
		t = math.Hypot(nx, ny) / math.Hypot(0.5, 0.5)
	} else {
		rad := float64(g.Angle) * math.Pi / 180
		dx, dy := math.Sin(rad), -math.Cos(rad)
		reach := (math.Abs(dx) + math.Abs(dy)) / 2
		t = (nx*dx+ny*dy)/math.Max(reach, 1e-9)/2 + 0.5
	}
	t = math.Max(0, math.Min(1, t))
	return from.BlendLab(to, t).Clamped()
}

// adjustBrightness scales a colour the way a CSS brightness() filter does:
// 100 leaves it alone, 0 is black, 200 moves halfway to white.
func adjustBrightness(c colorful.Color, percent int) colorful.Color {
	switch {
	case percent == 100:
		return c
	case percent < 100:
		return c.BlendRgb(colorful.Color{}, 1-float64(percent)/100).Clamped()
	default:
		white := colorful.Color{R: 1, G: 1, B: 1}
		return c.BlendRgb(white, math.Min(1, float64(percent-100)/200)).Clamped()
	}
}

// fade blends c over base at the given opacity.
func fade(c, base colorful.Color, opacity float64) colorful.Color {
	opacity = math.Max(0, math.Min(1, opacity))
	return base.BlendRgb(c, opacity).Clamped()
}

type borderRunes struct {
	h, v, tl, tr, bl, br rune
}

func borderFor(c card.Card) borderRunes {
	switch {
	case c.BorderWidth >= 3:
		return borderRunes{'━', '┃', '┏', '┓', '┗', '┛'}
	case c.BorderRadius >= 8:
		return borderRunes{'─', '│', '╭', '╮', '╰', '╯'}
	default:
		return borderRunes{'─', '│', '┌', '┐', '└', '┘'}
	}
}

// shadowOffset converts the shadow to a cell offset. A shadow with blur or
// spread but no offset still shows as a one-cell halo.
func shadowOffset(s card.Shadow) (int, int) {
	if !s.Enabled || s.Opacity <= 0 {
		return 0, 0
	}
	dx := clampInt(int(math.Round(float64(s.OffsetX)/pxPerCol)), -3, 3)
	dy := clampInt(int(math.Round(float64(s.OffsetY)/pxPerRow)), -2, 2)
	if dx == 0 && dy == 0 && (s.Blur > 0 || s.Spread > 0) {
		dx, dy = 1, 1
	}
	return dx, dy
}

// renderPreview draws c onto a canvas coloured canvasHex, no larger than
// maxCols×maxRows including the shadow.
func renderPreview(c card.Card, canvasHex string, maxCols, maxRows int) string {
	base := parseColor(canvasHex, colorful.Color{})
	dx, dy := shadowOffset(c.Shadow)
	cols, rows := previewSize(c, maxCols-abs(dx), maxRows-abs(dy))

	cv := newCanvas(cols+abs(dx), rows+abs(dy), base)
	ox, oy := max(0, -dx), max(0, -dy)

	opacity := c.Effects.Opacity
	paint := func(col colorful.Color) colorful.Color {
		return fade(adjustBrightness(col, c.Effects.Brightness), base, opacity)
	}

	if dx != 0 || dy != 0 {
		shadow := fade(parseColor(c.Shadow.Color, colorful.Color{}), base, c.Shadow.Opacity*opacity)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				if p := cv.at(ox+dx+x, oy+dy+y); p != nil {
					p.bg, p.fg = shadow, shadow
				}
			}
		}
	}

	bg := parseColor(c.BackgroundColor, base)
	from := parseColor(c.Background.From, bg)
	to := parseColor(c.Background.To, bg)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			col := bg
			if c.Background.Enabled {
				col = gradientAt(c.Background, from, to, x, y, cols, rows)
			}
			p := cv.at(ox+x, oy+y)
			p.r, p.bg = ' ', paint(col)
			p.fg = p.bg
		}
	}

	inset := 0
	if c.BorderWidth > 0 {
		inset = 1
		drawBorder(cv, ox, oy, cols, rows, borderFor(c), paint(parseColor(c.BorderColor, bg)))
	}

	drawText(cv, c, ox+inset, oy+inset, cols-2*inset, rows-2*inset, paint)

	return cv.render()
}

func drawBorder(cv *canvas, ox, oy, w, h int, b borderRunes, fg colorful.Color) {
	set := func(x, y int, r rune) {
		if p := cv.at(ox+x, oy+y); p != nil {
			p.r, p.fg = r, fg
		}
	}
	for x := 1; x < w-1; x++ {
		set(x, 0, b.h)
		set(x, h-1, b.h)
	}
	for y := 1; y < h-1; y++ {
		set(0, y, b.v)
		set(w-1, y, b.v)
	}
	set(0, 0, b.tl)
	set(w-1, 0, b.tr)
	set(0, h-1, b.bl)
	set(w-1, h-1, b.br)
}

// textLine is one laid-out line of card text.
type textLine struct {
	text   string
	bold   bool
	italic bool
	under  bool
	muted  bool
}

// layoutText wraps the card's text into lines no wider than width.
func layoutText(c card.Card, width int) []textLine {
	ty := c.Typography
	var lines []textLine
	if c.Title != "" {
		lines = append(lines, textLine{text: c.Title, bold: true, italic: ty.Italic, under: ty.Underline})
	}
	if c.Subtitle != "" {
		lines = append(lines, textLine{text: c.Subtitle, muted: true, italic: ty.Italic})
	}
	if c.Body != "" {
		if len(lines) > 0 {
			lines = append(lines, textLine{})
		}
		gap := int(math.Round(ty.LineHeight)) - 1
		for i, ln := range strings.Split(ansi.Wordwrap(c.Body, width, ""), "\n") {
			if i > 0 {
				for j := 0; j < gap; j++ {
					lines = append(lines, textLine{})
				}
			}
			lines = append(lines, textLine{text: ln, bold: ty.Bold || ty.FontWeight >= 700, italic: ty.Italic, under: ty.Underline})
		}
	}
	for i := range lines {
		if ansi.StringWidth(lines[i].text) > width {
			lines[i].text = ansi.Truncate(lines[i].text, width, "…")
		}
	}
	return lines
}

func drawText(cv *canvas, c card.Card, x0, y0, w, h int, paint func(colorful.Color) colorful.Color) {
	padX := clampInt(c.Padding/pxPerCol, 0, max(0, (w-4)/2))
	padY := clampInt(c.Padding/(pxPerRow*2), 0, max(0, (h-1)/2))
	x0, y0 = x0+padX, y0+padY
	w, h = w-2*padX, h-2*padY
	if w <= 0 || h <= 0 {
		return
	}

	textColor := parseColor(c.Typography.Color, colorful.Color{R: 1, G: 1, B: 1})
	blurMix := float64(c.Effects.Blur) / 50 * 0.6

	for i, ln := range layoutText(c, w) {
		if i >= h {
			break
		}
		runes := []rune(ln.text)
		indent := 0
		switch c.Typography.Align {
		case "center":
			indent = (w - len(runes)) / 2
		case "right":
			indent = w - len(runes)
		}
		indent = max(0, indent)
		for j, r := range runes {
			p := cv.at(x0+indent+j, y0+i)
			if p == nil || indent+j >= w {
				break
			}
			fg := textColor
			if ln.muted {
				fg = fg.BlendRgb(p.bg, 0.35)
			}
			fg = paint(fg)
			if blurMix > 0 {
				fg = fg.BlendRgb(p.bg, blurMix).Clamped()
			}
			p.r, p.fg = r, fg
			p.bold, p.italic, p.underline = ln.bold, ln.italic, ln.under
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
