package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidPatch marks a patch carrying out-of-range or malformed values.
	ErrInvalidPatch = errors.New("invalid patch")
	// ErrEmptyPatch marks a patch with no fields set.
	ErrEmptyPatch = errors.New("empty patch")
)

// Patch is a partial update of a Card. A nil field is absent and leaves the
// card's value untouched. Nested settings are replaced as a whole: to change
// one shadow property the caller supplies the complete Shadow.
type Patch struct {
	Title    *string `json:"title,omitempty" toml:"title,omitempty"`
	Subtitle *string `json:"subtitle,omitempty" toml:"subtitle,omitempty"`
	Body     *string `json:"body,omitempty" toml:"body,omitempty"`

	Width        *int    `json:"width,omitempty" toml:"width,omitempty"`
	Height       *int    `json:"height,omitempty" toml:"height,omitempty"`
	Padding      *int    `json:"padding,omitempty" toml:"padding,omitempty"`
	BorderRadius *int    `json:"borderRadius,omitempty" toml:"border_radius,omitempty"`
	BorderWidth  *int    `json:"borderWidth,omitempty" toml:"border_width,omitempty"`
	BorderColor  *string `json:"borderColor,omitempty" toml:"border_color,omitempty"`

	BackgroundColor *string   `json:"backgroundColor,omitempty" toml:"background_color,omitempty"`
	Background      *Gradient `json:"gradient,omitempty" toml:"gradient,omitempty"`

	Shadow     *Shadow     `json:"shadow,omitempty" toml:"shadow,omitempty"`
	Typography *Typography `json:"typography,omitempty" toml:"typography,omitempty"`
	Transform  *Transform  `json:"transform,omitempty" toml:"transform,omitempty"`
	Effects    *Effects    `json:"effects,omitempty" toml:"effects,omitempty"`
}

// Ptr returns a pointer to v. It keeps patch literals short.
func Ptr[T any](v T) *T {
	return &v
}

// Apply returns c with every field present in p overwritten. It is a
// one-level shallow merge; c itself is not modified.
func Apply(c Card, p Patch) Card {
	setIf(&c.Title, p.Title)
	setIf(&c.Subtitle, p.Subtitle)
	setIf(&c.Body, p.Body)
	setIf(&c.Width, p.Width)
	setIf(&c.Height, p.Height)
	setIf(&c.Padding, p.Padding)
	setIf(&c.BorderRadius, p.BorderRadius)
	setIf(&c.BorderWidth, p.BorderWidth)
	setIf(&c.BorderColor, p.BorderColor)
	setIf(&c.BackgroundColor, p.BackgroundColor)
	setIf(&c.Background, p.Background)
	setIf(&c.Shadow, p.Shadow)
	setIf(&c.Typography, p.Typography)
	setIf(&c.Transform, p.Transform)
	setIf(&c.Effects, p.Effects)
	return c
}

// Merge folds next into p; fields present in next win.
func (p Patch) Merge(next Patch) Patch {
	out := p
	pick(&out.Title, next.Title)
	pick(&out.Subtitle, next.Subtitle)
	pick(&out.Body, next.Body)
	pick(&out.Width, next.Width)
	pick(&out.Height, next.Height)
	pick(&out.Padding, next.Padding)
	pick(&out.BorderRadius, next.BorderRadius)
	pick(&out.BorderWidth, next.BorderWidth)
	pick(&out.BorderColor, next.BorderColor)
	pick(&out.BackgroundColor, next.BackgroundColor)
	pick(&out.Background, next.Background)
	pick(&out.Shadow, next.Shadow)
	pick(&out.Typography, next.Typography)
	pick(&out.Transform, next.Transform)
	pick(&out.Effects, next.Effects)
	return out
}

// IsEmpty reports whether no field is set.
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields lists the JSON names of the fields present in p.
func (p Patch) Fields() []string {
	var out []string
	add := func(name string, set bool) {
		if set {
			out = append(out, name)
		}
	}
	add("title", p.Title != nil)
	add("subtitle", p.Subtitle != nil)
	add("body", p.Body != nil)
	add("width", p.Width != nil)
	add("height", p.Height != nil)
	add("padding", p.Padding != nil)
	add("borderRadius", p.BorderRadius != nil)
	add("borderWidth", p.BorderWidth != nil)
	add("borderColor", p.BorderColor != nil)
	add("backgroundColor", p.BackgroundColor != nil)
	add("gradient", p.Background != nil)
	add("shadow", p.Shadow != nil)
	add("typography", p.Typography != nil)
	add("transform", p.Transform != nil)
	add("effects", p.Effects != nil)
	return out
}

// String renders the present field names, e.g. "patch{width,shadow}".
func (p Patch) String() string {
	return "patch{" + strings.Join(p.Fields(), ",") + "}"
}

// Validate checks every present field against its allowed range. All
// problems are reported together; each one wraps ErrInvalidPatch.
func (p Patch) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	if p.Width != nil {
		check(inRange("width", *p.Width, 40, 2000))
	}
	if p.Height != nil {
		check(inRange("height", *p.Height, 40, 2000))
	}
	if p.Padding != nil {
		check(inRange("padding", *p.Padding, 0, 200))
	}
	if p.BorderRadius != nil {
		check(inRange("borderRadius", *p.BorderRadius, 0, 200))
	}
	if p.BorderWidth != nil {
		check(inRange("borderWidth", *p.BorderWidth, 0, 20))
	}
	if p.BorderColor != nil {
		check(hexColor("borderColor", *p.BorderColor))
	}
	if p.BackgroundColor != nil {
		check(hexColor("backgroundColor", *p.BackgroundColor))
	}
	if g := p.Background; g != nil {
		check(oneOf("gradient.kind", g.Kind, "linear", "radial"))
		check(hexColor("gradient.from", g.From))
		check(hexColor("gradient.to", g.To))
		check(inRange("gradient.angle", g.Angle, 0, 359))
	}
	if s := p.Shadow; s != nil {
		check(inRange("shadow.offsetX", s.OffsetX, -200, 200))
		check(inRange("shadow.offsetY", s.OffsetY, -200, 200))
		check(inRange("shadow.blur", s.Blur, 0, 200))
		check(inRange("shadow.spread", s.Spread, -100, 100))
		check(hexColor("shadow.color", s.Color))
		check(inRange("shadow.opacity", s.Opacity, 0, 1))
	}
	if t := p.Typography; t != nil {
		check(inRange("typography.fontSize", t.FontSize, 6, 200))
		check(inRange("typography.fontWeight", t.FontWeight, 100, 900))
		if t.FontWeight%100 != 0 {
			check(fmt.Errorf("%w: typography.fontWeight %d is not a multiple of 100", ErrInvalidPatch, t.FontWeight))
		}
		check(inRange("typography.lineHeight", t.LineHeight, 0.5, 4))
		check(inRange("typography.letterSpacing", t.LetterSpacing, -10, 50))
		check(oneOf("typography.align", t.Align, "left", "center", "right"))
		check(hexColor("typography.color", t.Color))
	}
	if t := p.Transform; t != nil {
		check(inRange("transform.rotate", t.Rotate, -360, 360))
		check(inRange("transform.scale", t.Scale, 0.1, 5))
		check(inRange("transform.skewX", t.SkewX, -89, 89))
		check(inRange("transform.skewY", t.SkewY, -89, 89))
	}
	if e := p.Effects; e != nil {
		check(inRange("effects.opacity", e.Opacity, 0, 1))
		check(inRange("effects.blur", e.Blur, 0, 50))
		check(inRange("effects.brightness", e.Brightness, 0, 300))
	}

	return errors.Join(errs...)
}

// AsPatch returns the patch that sets every editable field of c.
func (c Card) AsPatch() Patch {
	return Patch{
		Title:           &c.Title,
		Subtitle:        &c.Subtitle,
		Body:            &c.Body,
		Width:           &c.Width,
		Height:          &c.Height,
		Padding:         &c.Padding,
		BorderRadius:    &c.BorderRadius,
		BorderWidth:     &c.BorderWidth,
		BorderColor:     &c.BorderColor,
		BackgroundColor: &c.BackgroundColor,
		Background:      &c.Background,
		Shadow:          &c.Shadow,
		Typography:      &c.Typography,
		Transform:       &c.Transform,
		Effects:         &c.Effects,
	}
}

// Validate checks every field of c with the rules Patch.Validate applies,
// so a valid card is one that edits could have produced.
func (c Card) Validate() error {
	return c.AsPatch().Validate()
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func inRange[T int | float64](name string, v, lo, hi T) error {
	if v < lo || v > hi {
		return fmt.Errorf("%w: %s %v out of range [%v, %v]", ErrInvalidPatch, name, v, lo, hi)
	}
	return nil
}

func oneOf(name, v string, allowed ...string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q must be one of %s", ErrInvalidPatch, name, v, strings.Join(allowed, ", "))
}

func hexColor(name, v string) error {
	if _, err := colorful.Hex(v); err != nil {
		return fmt.Errorf("%w: %s %q is not a hex colour", ErrInvalidPatch, name, v)
	}
	return nil
}
