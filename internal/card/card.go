package card

import "github.com/google/uuid"

// Card is one editable card document. It is a plain value: copying a Card
// never shares state with the source, so history entries are stored as is.
type Card struct {
	ID       string `json:"id" toml:"id"`
	Title    string `json:"title" toml:"title"`
	Subtitle string `json:"subtitle" toml:"subtitle"`
	Body     string `json:"body" toml:"body"`

	Width        int    `json:"width" toml:"width"`
	Height       int    `json:"height" toml:"height"`
	Padding      int    `json:"padding" toml:"padding"`
	BorderRadius int    `json:"borderRadius" toml:"border_radius"`
	BorderWidth  int    `json:"borderWidth" toml:"border_width"`
	BorderColor  string `json:"borderColor" toml:"border_color"`

	BackgroundColor string   `json:"backgroundColor" toml:"background_color"`
	Background      Gradient `json:"gradient" toml:"gradient"`

	Shadow     Shadow     `json:"shadow" toml:"shadow"`
	Typography Typography `json:"typography" toml:"typography"`
	Transform  Transform  `json:"transform" toml:"transform"`
	Effects    Effects    `json:"effects" toml:"effects"`
}

// Gradient is a two-stop background gradient.
type Gradient struct {
	Enabled bool   `json:"enabled" toml:"enabled"`
	Kind    string `json:"kind" toml:"kind"` // "linear" or "radial"
	From    string `json:"from" toml:"from"`
	To      string `json:"to" toml:"to"`
	Angle   int    `json:"angle" toml:"angle"`
}

// Shadow is a box shadow.
type Shadow struct {
	Enabled bool    `json:"enabled" toml:"enabled"`
	OffsetX int     `json:"offsetX" toml:"offset_x"`
	OffsetY int     `json:"offsetY" toml:"offset_y"`
	Blur    int     `json:"blur" toml:"blur"`
	Spread  int     `json:"spread" toml:"spread"`
	Color   string  `json:"color" toml:"color"`
	Opacity float64 `json:"opacity" toml:"opacity"`
}

// Typography controls how the card's text is set.
type Typography struct {
	FontFamily    string  `json:"fontFamily" toml:"font_family"`
	FontSize      int     `json:"fontSize" toml:"font_size"`
	FontWeight    int     `json:"fontWeight" toml:"font_weight"`
	LineHeight    float64 `json:"lineHeight" toml:"line_height"`
	LetterSpacing float64 `json:"letterSpacing" toml:"letter_spacing"`
	Align         string  `json:"align" toml:"align"` // left, center, right
	Color         string  `json:"color" toml:"color"`
	Bold          bool    `json:"bold" toml:"bold"`
	Italic        bool    `json:"italic" toml:"italic"`
	Underline     bool    `json:"underline" toml:"underline"`
}

// Transform is a 2D transform applied to the whole card.
type Transform struct {
	Rotate int     `json:"rotate" toml:"rotate"` // degrees
	Scale  float64 `json:"scale" toml:"scale"`
	SkewX  int     `json:"skewX" toml:"skew_x"`
	SkewY  int     `json:"skewY" toml:"skew_y"`
}

// Effects are filter-style effects.
type Effects struct {
	Opacity    float64 `json:"opacity" toml:"opacity"`
	Blur       int     `json:"blur" toml:"blur"`
	Brightness int     `json:"brightness" toml:"brightness"` // percent
}

// Default returns the card every new session starts from.
func Default() Card {
	return Card{
		ID:       uuid.NewString(),
		Title:    "Untitled card",
		Subtitle: "Subtitle",
		Body:     "Start typing to edit this card.",

		Width:        320,
		Height:       200,
		Padding:      24,
		BorderRadius: 12,
		BorderWidth:  1,
		BorderColor:  "#334155",

		BackgroundColor: "#1e293b",
		Background: Gradient{
			Enabled: true,
			Kind:    "linear",
			From:    "#6366f1",
			To:      "#ec4899",
			Angle:   135,
		},
		Shadow: Shadow{
			Enabled: true,
			OffsetX: 0,
			OffsetY: 8,
			Blur:    24,
			Spread:  0,
			Color:   "#000000",
			Opacity: 0.35,
		},
		Typography: Typography{
			FontFamily:    "Inter",
			FontSize:      16,
			FontWeight:    400,
			LineHeight:    1.5,
			LetterSpacing: 0,
			Align:         "left",
			Color:         "#f8fafc",
		},
		Transform: Transform{Scale: 1},
		Effects:   Effects{Opacity: 1, Brightness: 100},
	}
}
