package history

import (
	"sync"

	"github.com/five82/cardstock/internal/logger"
)

const (
	// DefaultMaxEntries caps history when the caller passes zero.
	DefaultMaxEntries = 100
	// Unbounded disables eviction.
	Unbounded = -1
)

// MergeFunc produces the next document from the current one and a partial
// update. It must not modify base.
type MergeFunc[D, P any] func(base D, patch P) D

// State is a consistent view of the store taken under one lock.
type State[D any] struct {
	Current D
	Cursor  int
	Len     int
}

// CanUndo reports whether an older entry exists.
func (s State[D]) CanUndo() bool { return s.Cursor > 0 }

// CanRedo reports whether a newer entry exists.
func (s State[D]) CanRedo() bool { return s.Cursor < s.Len-1 }

// Store is a linear undo/redo history of document snapshots.
type Store[D, P any] struct {
	mu         sync.Mutex
	entries    []D
	cursor     int // index of the current document
	maxEntries int
	merge      MergeFunc[D, P]
}

// New seeds a store with initial. maxEntries of zero uses DefaultMaxEntries;
// a negative value keeps every entry.
func New[D, P any](initial D, merge MergeFunc[D, P], maxEntries int) *Store[D, P] {
	if merge == nil {
		panic("history: nil merge func")
	}
	if maxEntries == 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Store[D, P]{
		entries:    []D{initial},
		maxEntries: maxEntries,
		merge:      merge,
	}
}

// Commit merges patch onto the current document, drops any redo entries,
// appends the result and makes it current.
func (s *Store[D, P]) Commit(patch P) D {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.merge(s.entries[s.cursor], patch)

	// Branching after undo discards the redo tail.
	if s.cursor < len(s.entries)-1 {
		clear(s.entries[s.cursor+1:])
		s.entries = s.entries[:s.cursor+1]
	}
	s.entries = append(s.entries, next)

	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		excess := len(s.entries) - s.maxEntries
		clear(s.entries[:excess])
		s.entries = s.entries[excess:]
	}
	s.cursor = len(s.entries) - 1

	logger.Debugf("history: commit, cursor=%d len=%d", s.cursor, len(s.entries))
	return next
}

// Undo moves to the previous entry. At the oldest entry it does nothing.
func (s *Store[D, P]) Undo() D {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor == 0 {
		logger.Debugf("history: nothing to undo")
		return s.entries[0]
	}
	s.cursor--
	logger.Debugf("history: undo, cursor=%d len=%d", s.cursor, len(s.entries))
	return s.entries[s.cursor]
}

// Redo moves to the next entry. At the newest entry it does nothing.
func (s *Store[D, P]) Redo() D {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cursor >= len(s.entries)-1 {
		logger.Debugf("history: nothing to redo")
		return s.entries[s.cursor]
	}
	s.cursor++
	logger.Debugf("history: redo, cursor=%d len=%d", s.cursor, len(s.entries))
	return s.entries[s.cursor]
}

// Reset discards all entries and reseeds the store with initial.
func (s *Store[D, P]) Reset(initial D) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.entries)
	s.entries = append(s.entries[:0], initial)
	s.cursor = 0
	logger.Debugf("history: reset")
}

// Current returns the document at the cursor.
func (s *Store[D, P]) Current() D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.cursor]
}

// CanUndo reports whether Undo would move the cursor.
func (s *Store[D, P]) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (s *Store[D, P]) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor < len(s.entries)-1
}

// Len returns the number of entries.
func (s *Store[D, P]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cursor returns the index of the current entry.
func (s *Store[D, P]) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Entries returns a copy of all entries, oldest first.
func (s *Store[D, P]) Entries() []D {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]D, len(s.entries))
	copy(out, s.entries)
	return out
}

// State returns the current document, cursor and length together.
func (s *Store[D, P]) State() State[D] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State[D]{
		Current: s.entries[s.cursor],
		Cursor:  s.cursor,
		Len:     len(s.entries),
	}
}
