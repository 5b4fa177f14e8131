package ui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/five82/cardstock/internal/card"
)

// fieldKind decides how a field reacts to keys.
type fieldKind int

const (
	kindNumber fieldKind = iota // nudged with left/right, deferred
	kindToggle                  // space/enter, immediate
	kindText                    // enter opens an input, immediate
	kindColor                   // like kindText, validated as hex
	kindChoice                  // left/right cycles, immediate
)

// field is one editable property. Numeric fields keep their value as a
// float64 so ints and fractions share the nudge code.
type field struct {
	label string
	kind  fieldKind

	// kindNumber
	step     float64
	min, max float64
	decimals int
	num      func(c card.Card) float64
	setNum   func(c card.Card, v float64) card.Patch

	// kindToggle
	on     func(c card.Card) bool
	toggle func(c card.Card) card.Patch

	// kindText, kindColor and kindChoice
	text    func(c card.Card) string
	setText func(c card.Card, v string) card.Patch
	choices []string
}

// value renders the field's current value for the panel list.
func (f field) value(c card.Card) string {
	switch f.kind {
	case kindNumber:
		return strconv.FormatFloat(f.num(c), 'f', f.decimals, 64)
	case kindToggle:
		if f.on(c) {
			return "on"
		}
		return "off"
	default:
		return f.text(c)
	}
}

// nudge returns the patch that moves a numeric field by steps, clamped to
// its range. ok is false when the value is already at the bound.
func (f field) nudge(c card.Card, steps int) (card.Patch, bool) {
	if f.kind != kindNumber {
		return card.Patch{}, false
	}
	cur := f.num(c)
	next := cur + f.step*float64(steps)
	next = math.Max(f.min, math.Min(f.max, next))
	scale := math.Pow(10, float64(f.decimals))
	next = math.Round(next*scale) / scale
	if next == cur {
		return card.Patch{}, false
	}
	return f.setNum(c, next), true
}

// cycle returns the patch selecting the next (or previous) choice.
func (f field) cycle(c card.Card, dir int) (card.Patch, bool) {
	if f.kind != kindChoice || len(f.choices) == 0 {
		return card.Patch{}, false
	}
	cur := f.text(c)
	idx := 0
	for i, ch := range f.choices {
		if ch == cur {
			idx = i
			break
		}
	}
	n := len(f.choices)
	idx = ((idx+dir)%n + n) % n
	return f.setText(c, f.choices[idx]), true
}

// panel groups related fields. The presets panel has no fields; it lists
// the preset library instead.
type panel struct {
	name   string
	fields []field
}

const presetsPanel = "Presets"

func intField(label string, step, min, max int, get func(card.Card) int, set func(card.Card, int) card.Patch) field {
	return field{
		label: label,
		kind:  kindNumber,
		step:  float64(step),
		min:   float64(min),
		max:   float64(max),
		num:   func(c card.Card) float64 { return float64(get(c)) },
		setNum: func(c card.Card, v float64) card.Patch {
			return set(c, int(math.Round(v)))
		},
	}
}

func floatField(label string, step, min, max float64, decimals int, get func(card.Card) float64, set func(card.Card, float64) card.Patch) field {
	return field{
		label:    label,
		kind:     kindNumber,
		step:     step,
		min:      min,
		max:      max,
		decimals: decimals,
		num:      get,
		setNum:   set,
	}
}

func toggleField(label string, get func(card.Card) bool, set func(card.Card, bool) card.Patch) field {
	return field{
		label:  label,
		kind:   kindToggle,
		on:     get,
		toggle: func(c card.Card) card.Patch { return set(c, !get(c)) },
	}
}

func textField(label string, kind fieldKind, get func(card.Card) string, set func(card.Card, string) card.Patch) field {
	return field{label: label, kind: kind, text: get, setText: set}
}

func choiceField(label string, choices []string, get func(card.Card) string, set func(card.Card, string) card.Patch) field {
	return field{label: label, kind: kindChoice, text: get, setText: set, choices: choices}
}

// Nested settings are replaced as a whole, so each setter copies the
// card's current struct and changes one member.

func withShadow(c card.Card, fn func(*card.Shadow)) card.Patch {
	s := c.Shadow
	fn(&s)
	return card.Patch{Shadow: &s}
}

func withGradient(c card.Card, fn func(*card.Gradient)) card.Patch {
	g := c.Background
	fn(&g)
	return card.Patch{Background: &g}
}

func withTypography(c card.Card, fn func(*card.Typography)) card.Patch {
	t := c.Typography
	fn(&t)
	return card.Patch{Typography: &t}
}

func withTransform(c card.Card, fn func(*card.Transform)) card.Patch {
	t := c.Transform
	fn(&t)
	return card.Patch{Transform: &t}
}

func withEffects(c card.Card, fn func(*card.Effects)) card.Patch {
	e := c.Effects
	fn(&e)
	return card.Patch{Effects: &e}
}

var alignChoices = []string{"left", "center", "right"}

// editorPanels returns the panel layout in display order.
func editorPanels() []panel {
	return []panel{
		{
			name: "Content",
			fields: []field{
				textField("Title", kindText,
					func(c card.Card) string { return c.Title },
					func(_ card.Card, v string) card.Patch { return card.Patch{Title: card.Ptr(v)} }),
				textField("Subtitle", kindText,
					func(c card.Card) string { return c.Subtitle },
					func(_ card.Card, v string) card.Patch { return card.Patch{Subtitle: card.Ptr(v)} }),
				textField("Body", kindText,
					func(c card.Card) string { return c.Body },
					func(_ card.Card, v string) card.Patch { return card.Patch{Body: card.Ptr(v)} }),
				toggleField("Bold",
					func(c card.Card) bool { return c.Typography.Bold },
					func(c card.Card, v bool) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.Bold = v })
					}),
				toggleField("Italic",
					func(c card.Card) bool { return c.Typography.Italic },
					func(c card.Card, v bool) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.Italic = v })
					}),
				toggleField("Underline",
					func(c card.Card) bool { return c.Typography.Underline },
					func(c card.Card, v bool) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.Underline = v })
					}),
			},
		},
		{
			name: "Style",
			fields: []field{
				intField("Width", 10, 40, 2000,
					func(c card.Card) int { return c.Width },
					func(_ card.Card, v int) card.Patch { return card.Patch{Width: card.Ptr(v)} }),
				intField("Height", 10, 40, 2000,
					func(c card.Card) int { return c.Height },
					func(_ card.Card, v int) card.Patch { return card.Patch{Height: card.Ptr(v)} }),
				intField("Padding", 2, 0, 200,
					func(c card.Card) int { return c.Padding },
					func(_ card.Card, v int) card.Patch { return card.Patch{Padding: card.Ptr(v)} }),
				intField("Radius", 1, 0, 200,
					func(c card.Card) int { return c.BorderRadius },
					func(_ card.Card, v int) card.Patch { return card.Patch{BorderRadius: card.Ptr(v)} }),
				intField("Border width", 1, 0, 20,
					func(c card.Card) int { return c.BorderWidth },
					func(_ card.Card, v int) card.Patch { return card.Patch{BorderWidth: card.Ptr(v)} }),
				textField("Border color", kindColor,
					func(c card.Card) string { return c.BorderColor },
					func(_ card.Card, v string) card.Patch { return card.Patch{BorderColor: card.Ptr(v)} }),
				textField("Background", kindColor,
					func(c card.Card) string { return c.BackgroundColor },
					func(_ card.Card, v string) card.Patch { return card.Patch{BackgroundColor: card.Ptr(v)} }),
			},
		},
		{
			name: "Gradient",
			fields: []field{
				toggleField("Enabled",
					func(c card.Card) bool { return c.Background.Enabled },
					func(c card.Card, v bool) card.Patch {
						return withGradient(c, func(g *card.Gradient) { g.Enabled = v })
					}),
				choiceField("Kind", []string{"linear", "radial"},
					func(c card.Card) string { return c.Background.Kind },
					func(c card.Card, v string) card.Patch {
						return withGradient(c, func(g *card.Gradient) { g.Kind = v })
					}),
				textField("From", kindColor,
					func(c card.Card) string { return c.Background.From },
					func(c card.Card, v string) card.Patch {
						return withGradient(c, func(g *card.Gradient) { g.From = v })
					}),
				textField("To", kindColor,
					func(c card.Card) string { return c.Background.To },
					func(c card.Card, v string) card.Patch {
						return withGradient(c, func(g *card.Gradient) { g.To = v })
					}),
				intField("Angle", 5, 0, 355,
					func(c card.Card) int { return c.Background.Angle },
					func(c card.Card, v int) card.Patch {
						return withGradient(c, func(g *card.Gradient) { g.Angle = v })
					}),
			},
		},
		{
			name: "Shadow",
			fields: []field{
				toggleField("Enabled",
					func(c card.Card) bool { return c.Shadow.Enabled },
					func(c card.Card, v bool) card.Patch {
						return withShadow(c, func(s *card.Shadow) { s.Enabled = v })
					}),
				intField("Offset X", 1, -200, 200,
					func(c card.Card) int { return c.Shadow.OffsetX },
					func(c card.Card, v int) card.Patch {
						return withShadow(c, func(s *card.Shadow) { s.OffsetX = v })
					}),
				intField("Offset Y", 1, -200, 200,
					func(c card.Card) int { return c.Shadow.OffsetY },
					func(c card.Card, v int) card.Patch {
						return withShadow(c, func(s *card.Shadow) { s.OffsetY = v })
					}),
				intField("Blur", 1, 0, 200,
					func(c card.Card) int { return c.Shadow.Blur },
					func(c card.Card, v int) card.Patch {
						return withShadow(c, func(s *card.Shadow) { s.Blur = v })
					}),
				intField("Spread", 1, -100, 100,
					func(c card.Card) int { return c.Shadow.Spread },
					func(c card.Card, v int) card.Patch {
						return withShadow(c, func(s *card.Shadow) { s.Spread = v })
					}),
				textField("Color", kindColor,
					func(c card.Card) string { return c.Shadow.Color },
					func(c card.Card, v string) card.Patch {
						return withShadow(c, func(s *card.Shadow) { s.Color = v })
					}),
				floatField("Opacity", 0.05, 0, 1, 2,
					func(c card.Card) float64 { return c.Shadow.Opacity },
					func(c card.Card, v float64) card.Patch {
						return withShadow(c, func(s *card.Shadow) { s.Opacity = v })
					}),
			},
		},
		{
			name: "Typography",
			fields: []field{
				textField("Font", kindText,
					func(c card.Card) string { return c.Typography.FontFamily },
					func(c card.Card, v string) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.FontFamily = v })
					}),
				intField("Size", 1, 6, 200,
					func(c card.Card) int { return c.Typography.FontSize },
					func(c card.Card, v int) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.FontSize = v })
					}),
				intField("Weight", 100, 100, 900,
					func(c card.Card) int { return c.Typography.FontWeight },
					func(c card.Card, v int) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.FontWeight = v })
					}),
				floatField("Line height", 0.1, 0.5, 4, 1,
					func(c card.Card) float64 { return c.Typography.LineHeight },
					func(c card.Card, v float64) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.LineHeight = v })
					}),
				floatField("Letter spacing", 0.5, -10, 50, 1,
					func(c card.Card) float64 { return c.Typography.LetterSpacing },
					func(c card.Card, v float64) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.LetterSpacing = v })
					}),
				choiceField("Align", alignChoices,
					func(c card.Card) string { return c.Typography.Align },
					func(c card.Card, v string) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.Align = v })
					}),
				textField("Color", kindColor,
					func(c card.Card) string { return c.Typography.Color },
					func(c card.Card, v string) card.Patch {
						return withTypography(c, func(t *card.Typography) { t.Color = v })
					}),
			},
		},
		{
			name: "Effects",
			fields: []field{
				floatField("Opacity", 0.05, 0, 1, 2,
					func(c card.Card) float64 { return c.Effects.Opacity },
					func(c card.Card, v float64) card.Patch {
						return withEffects(c, func(e *card.Effects) { e.Opacity = v })
					}),
				intField("Blur", 1, 0, 50,
					func(c card.Card) int { return c.Effects.Blur },
					func(c card.Card, v int) card.Patch {
						return withEffects(c, func(e *card.Effects) { e.Blur = v })
					}),
				intField("Brightness", 5, 0, 300,
					func(c card.Card) int { return c.Effects.Brightness },
					func(c card.Card, v int) card.Patch {
						return withEffects(c, func(e *card.Effects) { e.Brightness = v })
					}),
				intField("Rotate", 5, -360, 360,
					func(c card.Card) int { return c.Transform.Rotate },
					func(c card.Card, v int) card.Patch {
						return withTransform(c, func(t *card.Transform) { t.Rotate = v })
					}),
				floatField("Scale", 0.05, 0.1, 5, 2,
					func(c card.Card) float64 { return c.Transform.Scale },
					func(c card.Card, v float64) card.Patch {
						return withTransform(c, func(t *card.Transform) { t.Scale = v })
					}),
				intField("Skew X", 1, -89, 89,
					func(c card.Card) int { return c.Transform.SkewX },
					func(c card.Card, v int) card.Patch {
						return withTransform(c, func(t *card.Transform) { t.SkewX = v })
					}),
				intField("Skew Y", 1, -89, 89,
					func(c card.Card) int { return c.Transform.SkewY },
					func(c card.Card, v int) card.Patch {
						return withTransform(c, func(t *card.Transform) { t.SkewY = v })
					}),
			},
		},
		{name: presetsPanel},
	}
}

// panelIndex finds a panel by name, falling back to the first one.
func panelIndex(panels []panel, name string) int {
	for i, p := range panels {
		if p.name == name {
			return i
		}
	}
	return 0
}

func describeField(f field, c card.Card) string {
	return fmt.Sprintf("%s: %s", f.label, f.value(c))
}
