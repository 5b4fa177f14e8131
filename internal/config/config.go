package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/cardstock/internal/coalesce"
	"github.com/five82/cardstock/internal/history"
)

// Config holds the editor settings.
type Config struct {
	QuietWindow   time.Duration
	MaxHistory    int
	ExportDir     string
	PresetsPath   string
	AutosavePath  string
	AutosaveEvery time.Duration // zero disables autosave
	LogLevel      string
	LogFile       string // empty discards logs
}

const (
	defaultConfigPath    = "~/.config/cardstock/config.toml"
	defaultExportDir     = "~/Documents/cardstock"
	defaultPresetsPath   = "~/.config/cardstock/presets.toml"
	defaultAutosavePath  = "~/.local/share/cardstock/autosave.json"
	defaultAutosaveEvery = 30 * time.Second
	defaultLogLevel      = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		QuietWindow:   coalesce.DefaultQuietWindow,
		MaxHistory:    history.DefaultMaxEntries,
		ExportDir:     mustExpand(defaultExportDir),
		PresetsPath:   mustExpand(defaultPresetsPath),
		AutosavePath:  mustExpand(defaultAutosavePath),
		AutosaveEvery: defaultAutosaveEvery,
		LogLevel:      defaultLogLevel,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		QuietWindow   string `toml:"quiet_window"`
		MaxHistory    *int   `toml:"max_history"`
		ExportDir     string `toml:"export_dir"`
		PresetsPath   string `toml:"presets_path"`
		AutosavePath  string `toml:"autosave_path"`
		AutosaveEvery string `toml:"autosave_interval"`
		LogLevel      string `toml:"log_level"`
		LogFile       string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if s := strings.TrimSpace(raw.QuietWindow); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("parse config: quiet_window %q must be a positive duration", s)
		}
		cfg.QuietWindow = d
	}
	if s := strings.TrimSpace(raw.AutosaveEvery); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("parse config: autosave_interval %q must be a duration >= 0", s)
		}
		cfg.AutosaveEvery = d
	}
	if raw.MaxHistory != nil {
		cfg.MaxHistory = *raw.MaxHistory
		if cfg.MaxHistory == 0 {
			cfg.MaxHistory = history.DefaultMaxEntries
		}
	}

	cfg.ExportDir = pathOr(raw.ExportDir, cfg.ExportDir)
	cfg.PresetsPath = pathOr(raw.PresetsPath, cfg.PresetsPath)
	cfg.AutosavePath = pathOr(raw.AutosavePath, cfg.AutosavePath)
	if lf := strings.TrimSpace(raw.LogFile); lf != "" {
		cfg.LogFile = mustExpand(lf)
	}
	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		cfg.LogLevel = strings.ToLower(lvl)
	}

	return cfg, nil
}

func pathOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return mustExpand(value)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves "~" and relative paths. Empty input is an error.
func ExpandPath(path string) (string, error) {
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
