package preset

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/five82/cardstock/internal/card"
)

// Preset is a named template. Applying it commits Patch as one immediate
// update.
type Preset struct {
	Name        string     `toml:"name"`
	Description string     `toml:"description"`
	Patch       card.Patch `toml:"patch"`
	Builtin     bool       `toml:"-"`
}

// Builtins returns the templates that ship with the editor.
func Builtins() []Preset {
	return []Preset{
		{
			Name:        "Classic",
			Description: "Slate card with a soft shadow",
			Builtin:     true,
			Patch: card.Patch{
				BackgroundColor: card.Ptr("#1e293b"),
				BorderColor:     card.Ptr("#334155"),
				BorderRadius:    card.Ptr(12),
				Background:      &card.Gradient{Kind: "linear", From: "#6366f1", To: "#ec4899", Angle: 135},
				Shadow:          &card.Shadow{Enabled: true, OffsetY: 8, Blur: 24, Color: "#000000", Opacity: 0.35},
				Typography:      &card.Typography{FontFamily: "Inter", FontSize: 16, FontWeight: 400, LineHeight: 1.5, Align: "left", Color: "#f8fafc"},
			},
		},
		{
			Name:        "Sunset",
			Description: "Warm orange to pink gradient",
			Builtin:     true,
			Patch: card.Patch{
				Background:   &card.Gradient{Enabled: true, Kind: "linear", From: "#f97316", To: "#db2777", Angle: 45},
				BorderRadius: card.Ptr(20),
				BorderWidth:  card.Ptr(0),
				Shadow:       &card.Shadow{Enabled: true, OffsetY: 12, Blur: 32, Color: "#7c2d12", Opacity: 0.4},
				Typography:   &card.Typography{FontFamily: "Inter", FontSize: 18, FontWeight: 600, LineHeight: 1.4, Align: "center", Color: "#fff7ed", Bold: true},
			},
		},
		{
			Name:        "Ocean",
			Description: "Cool radial blues",
			Builtin:     true,
			Patch: card.Patch{
				Background:   &card.Gradient{Enabled: true, Kind: "radial", From: "#0ea5e9", To: "#1e3a8a", Angle: 0},
				BorderRadius: card.Ptr(16),
				BorderColor:  card.Ptr("#38bdf8"),
				BorderWidth:  card.Ptr(1),
				Shadow:       &card.Shadow{Enabled: true, OffsetY: 6, Blur: 20, Color: "#082f49", Opacity: 0.5},
				Typography:   &card.Typography{FontFamily: "Inter", FontSize: 16, FontWeight: 500, LineHeight: 1.5, Align: "left", Color: "#e0f2fe"},
			},
		},
		{
			Name:        "Midnight",
			Description: "Near-black with a violet edge",
			Builtin:     true,
			Patch: card.Patch{
				BackgroundColor: card.Ptr("#0b1020"),
				Background:      &card.Gradient{Kind: "linear", From: "#0b1020", To: "#1e1b4b", Angle: 180},
				BorderColor:     card.Ptr("#7c3aed"),
				BorderWidth:     card.Ptr(2),
				BorderRadius:    card.Ptr(8),
				Shadow:          &card.Shadow{Enabled: true, OffsetY: 0, Blur: 40, Spread: 4, Color: "#7c3aed", Opacity: 0.3},
				Typography:      &card.Typography{FontFamily: "JetBrains Mono", FontSize: 14, FontWeight: 400, LineHeight: 1.6, Align: "left", Color: "#c4b5fd"},
			},
		},
		{
			Name:        "Minimal",
			Description: "Flat white, no decoration",
			Builtin:     true,
			Patch: card.Patch{
				BackgroundColor: card.Ptr("#ffffff"),
				Background:      &card.Gradient{Kind: "linear", From: "#ffffff", To: "#ffffff", Angle: 0},
				BorderColor:     card.Ptr("#e5e7eb"),
				BorderWidth:     card.Ptr(1),
				BorderRadius:    card.Ptr(4),
				Shadow:          &card.Shadow{Color: "#000000"},
				Typography:      &card.Typography{FontFamily: "Inter", FontSize: 15, FontWeight: 400, LineHeight: 1.5, Align: "left", Color: "#111827"},
			},
		},
	}
}

type rawFile struct {
	Presets []Preset `toml:"preset"`
}

// Load returns the built-in presets with any user presets from path merged
// in. A user preset replaces the built-in of the same name (case-insensitive)
// and otherwise is appended. A missing file yields the built-ins alone.
func Load(path string) ([]Preset, error) {
	presets := Builtins()
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return presets, nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var raw rawFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	for i, p := range raw.Presets {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, fmt.Errorf("preset #%d: missing name", i+1)
		}
		if p.Patch.IsEmpty() {
			return nil, fmt.Errorf("preset %q: %w", p.Name, card.ErrEmptyPatch)
		}
		if err := p.Patch.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		p.Builtin = false
		if idx := indexOf(presets, p.Name); idx >= 0 {
			presets[idx] = p
		} else {
			presets = append(presets, p)
		}
	}
	return presets, nil
}

func indexOf(presets []Preset, name string) int {
	for i, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}

// Library is the ordered preset set the UI browses. It is safe for
// concurrent use; the watcher replaces its contents from another goroutine.
type Library struct {
	mu      sync.RWMutex
	presets []Preset
}

// NewLibrary creates a library holding presets.
func NewLibrary(presets []Preset) *Library {
	l := &Library{}
	l.Replace(presets)
	return l
}

// All returns a copy of every preset in display order.
func (l *Library) All() []Preset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Preset(nil), l.presets...)
}

// Get looks up a preset by name, ignoring case.
func (l *Library) Get(name string) (Preset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if idx := indexOf(l.presets, name); idx >= 0 {
		return l.presets[idx], true
	}
	return Preset{}, false
}

// Len returns the number of presets.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.presets)
}

// Replace swaps in a new preset set.
func (l *Library) Replace(presets []Preset) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.presets = append([]Preset(nil), presets...)
}
