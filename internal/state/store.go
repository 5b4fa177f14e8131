package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/cardstock/internal/card"
)

// Snapshot represents the latest editor state available to the UI.
type Snapshot struct {
	Current    card.Card // document at the history cursor
	Preview    card.Card // Current with any pending batch applied
	Pending    bool
	Cursor     int
	Entries    int
	CanUndo    bool
	CanRedo    bool
	Revision   uint64 // increments on every Update
	LastCommit time.Time
	LastError  error
}

// Dirty reports whether the preview differs from the committed document.
func (s Snapshot) Dirty() bool {
	return s.Pending
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	changes  chan struct{}
}

// Update replaces the stored editor state. The revision and the last error
// are owned by the store and survive the replacement.
func (s *Store) Update(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap.Revision = s.snapshot.Revision + 1
	snap.LastError = s.snapshot.LastError
	s.snapshot = snap
	s.notifyLocked()
}

// RecordError keeps the previous editor state but records err for display.
// A nil err clears the last error.
func (s *Store) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.notifyLocked()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Changes returns a channel that receives a value after Update or
// RecordError. Bursts collapse into one notification.
func (s *Store) Changes() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.changes == nil {
		s.changes = make(chan struct{}, 1)
	}
	return s.changes
}

func (s *Store) notifyLocked() {
	if s.changes == nil {
		s.changes = make(chan struct{}, 1)
	}
	select {
	case s.changes <- struct{}{}:
	default:
	}
}
