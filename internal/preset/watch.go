package preset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/five82/cardstock/internal/coalesce"
	"github.com/five82/cardstock/internal/logger"
)

// reloadQuiet absorbs the burst of events editors emit for a single save.
const reloadQuiet = 150 * time.Millisecond

// ReloadFunc is told about every reload attempt. On error the library keeps
// its previous contents.
type ReloadFunc func(presets []Preset, err error)

// Watch reloads path into lib whenever the file is written, created or
// renamed into place. It watches the parent directory so atomic saves are
// seen. Watch returns once the watcher is running; it stops when ctx is done.
func Watch(ctx context.Context, path string, lib *Library, onReload ReloadFunc) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch presets: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch presets: %w", err)
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch presets: %w", err)
	}

	reload := func(struct{}) {
		presets, err := Load(absPath)
		if err != nil {
			logger.Warnf("preset reload failed: %v", err)
		} else {
			lib.Replace(presets)
			logger.Infof("reloaded %d presets from %s", len(presets), absPath)
		}
		if onReload != nil {
			onReload(presets, err)
		}
	}
	debounce := coalesce.New(reloadQuiet, func(_, next struct{}) struct{} { return next }, reload)

	go func() {
		defer fsw.Close()
		defer debounce.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != absPath {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				debounce.Request(struct{}{}, false)
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warnf("preset watcher: %v", err)
			}
		}
	}()
	return nil
}
