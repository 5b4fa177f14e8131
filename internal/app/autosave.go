package app

import (
	"context"
	"fmt"
	"time"

	"github.com/five82/cardstock/internal/card"
	"github.com/five82/cardstock/internal/export"
	"github.com/five82/cardstock/internal/logger"
	"github.com/five82/cardstock/internal/state"
)

// Document is the part of the session autosave reads.
type Document interface {
	Current() card.Card
}

// StartAutosave launches a background goroutine that writes the committed
// card to path every interval, skipping ticks where the store revision has
// not moved since the last write. A zero interval or empty path disables it.
// The returned channel closes when the goroutine exits after ctx is done,
// following a last save of any outstanding changes.
func StartAutosave(ctx context.Context, doc Document, store *state.Store, path string, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 || path == "" {
		close(done)
		return done
	}

	saver := &autosaver{doc: doc, store: store, path: path, now: time.Now}
	saver.saved = store.Snapshot().Revision

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				saver.save()
				return
			case <-ticker.C:
				saver.save()
			}
		}
	}()
	return done
}

type autosaver struct {
	doc   Document
	store *state.Store
	path  string
	now   func() time.Time
	saved uint64 // revision last written
}

// save writes the card if the store moved on. It reports whether a file was
// written.
func (a *autosaver) save() bool {
	rev := a.store.Snapshot().Revision
	if rev == a.saved {
		return false
	}
	if err := export.WriteFileAt(a.path, a.doc.Current(), a.now()); err != nil {
		err = fmt.Errorf("autosave: %w", err)
		logger.Errorf("%v", err)
		a.store.RecordError(err)
		return false
	}
	a.saved = rev
	logger.Debugf("autosaved revision %d to %s", rev, a.path)
	return true
}
