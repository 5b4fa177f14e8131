package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/five82/cardstock/internal/card"
	"github.com/five82/cardstock/internal/config"
	"github.com/five82/cardstock/internal/editor"
	"github.com/five82/cardstock/internal/export"
	"github.com/five82/cardstock/internal/logger"
	"github.com/five82/cardstock/internal/prefs"
	"github.com/five82/cardstock/internal/preset"
	"github.com/five82/cardstock/internal/state"
	"github.com/five82/cardstock/internal/ui"
)

// Options configure the cardstock application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath  string
	PresetsPath string
	LogLevel    string
	LogFile     string
	PrefsPath   string // empty uses default ~/.config/cardstock/prefs.toml
	ImportPath  string // optional export file to open
}

// Run boots the editor TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	closeLog, err := initLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warnf("load prefs: %v", err)
	}

	initial, err := initialCard(opts.ImportPath)
	if err != nil {
		return err
	}

	presets, err := preset.Load(cfg.PresetsPath)
	if err != nil {
		logger.Warnf("using built-in presets: %v", err)
		presets = preset.Builtins()
	}
	library := preset.NewLibrary(presets)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.PresetsPath != "" {
		err := preset.Watch(ctx, cfg.PresetsPath, library, func(_ []preset.Preset, err error) {
			if err == nil {
				logger.Infof("presets reloaded: %d available", library.Len())
			}
		})
		if err != nil {
			logger.Warnf("preset hot reload disabled: %v", err)
		}
	}

	store := &state.Store{}
	session := editor.New(editor.Options{
		Initial:     initial,
		QuietWindow: cfg.QuietWindow,
		MaxHistory:  cfg.MaxHistory,
		Store:       store,
	})
	defer session.Close()

	done := StartAutosave(ctx, session, store, cfg.AutosavePath, cfg.AutosaveEvery)

	logger.Infof("editor started: quiet window %s, history %d", cfg.QuietWindow, cfg.MaxHistory)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Editor:    session,
		Store:     store,
		Presets:   library,
		ExportDir: cfg.ExportDir,
		Clipboard: export.SystemClipboard{},
		ThemeName: userPrefs.Theme,
		Panel:     userPrefs.Panel,
		PrefsPath: opts.PrefsPath,
	})

	// Commit anything still batched so the last autosave includes it.
	session.Flush()
	cancel()
	<-done
	return err
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.PresetsPath != "" {
		if p, err := config.ExpandPath(opts.PresetsPath); err == nil {
			cfg.PresetsPath = p
		}
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.LogFile != "" {
		if p, err := config.ExpandPath(opts.LogFile); err == nil {
			cfg.LogFile = p
		}
	}
}

// initLogging points the logger at the configured file. The TUI owns the
// terminal, so with no file the logs are discarded.
func initLogging(cfg config.Config) (func(), error) {
	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if cfg.LogFile == "" {
		logger.Init(level, nil)
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.Init(level, f)
	return func() { _ = f.Close() }, nil
}

// initialCard reads the card to start from, or nil for a fresh one.
func initialCard(path string) (*card.Card, error) {
	if path == "" {
		return nil, nil
	}
	env, err := export.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	logger.Infof("opened %s (exported %s)", path, env.Timestamp.Format("2006-01-02 15:04"))
	return &env.Document, nil
}
