// Package prefs handles cardstock user preferences persistence.
// Preferences are stored in ~/.config/cardstock/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/cardstock/internal/logger"
)

// Prefs holds user preferences that survive restarts.
type Prefs struct {
	Theme string `toml:"theme"`
	Panel string `toml:"panel"` // last focused editor panel
}

const (
	defaultPrefsPath = "~/.config/cardstock/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Panels are the editor panels a saved Panel may name, in tab order.
var Panels = []string{"Content", "Style", "Gradient", "Shadow", "Typography", "Effects", "Presets"}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if missing.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{Theme: defaultTheme}, nil
	}

	prefs := Prefs{Theme: defaultTheme}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		logger.Warnf("ignoring unreadable prefs %s: %v", resolved, err)
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	prefs.Panel = canonicalPanel(prefs.Panel)

	return prefs, nil
}

// canonicalPanel maps a saved panel name onto Panels, ignoring case. Unknown
// names become empty so the editor opens on its first panel.
func canonicalPanel(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	for _, p := range Panels {
		if strings.EqualFold(p, name) {
			return p
		}
	}
	logger.Warnf("ignoring unknown panel %q in prefs", name)
	return ""
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	logger.Debugf("saved prefs to %s", resolved)

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
