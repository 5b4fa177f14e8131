package editor

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/cardstock/internal/card"
	"github.com/five82/cardstock/internal/coalesce"
	"github.com/five82/cardstock/internal/history"
	"github.com/five82/cardstock/internal/logger"
	"github.com/five82/cardstock/internal/state"
)

// Options configures a Session. The zero value edits card.Default with the
// default quiet window and history limit.
type Options struct {
	Initial     *card.Card
	QuietWindow time.Duration
	MaxHistory  int
	Store       *state.Store

	// CoalesceOptions are passed through to the coalescer (tests use them to
	// install a fake clock).
	CoalesceOptions []coalesce.Option

	// Now stamps commits. Defaults to time.Now.
	Now func() time.Time
}

// Session is the editing surface the UI talks to.
type Session struct {
	// mu keeps history moves and the snapshot that describes them together.
	mu         sync.Mutex
	history    *history.Store[card.Card, card.Patch]
	coalescer  *coalesce.Coalescer[card.Patch]
	store      *state.Store
	now        func() time.Time
	lastCommit time.Time
}

// New creates a Session and publishes its initial snapshot.
func New(opts Options) *Session {
	initial := card.Default()
	if opts.Initial != nil {
		initial = *opts.Initial
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		history: history.New[card.Card, card.Patch](initial, card.Apply, opts.MaxHistory),
		store:   store,
		now:     now,
	}
	s.coalescer = coalesce.New(opts.QuietWindow, card.Patch.Merge, s.commit, opts.CoalesceOptions...)

	s.mu.Lock()
	s.publishLocked()
	s.mu.Unlock()
	return s
}

// Store returns the snapshot store the session publishes to.
func (s *Session) Store() *state.Store {
	return s.store
}

// RequestUpdate submits a partial update. Deferred updates are batched until
// the input goes quiet; immediate ones discard any pending batch and commit
// at once. An empty or invalid patch is rejected and nothing changes.
func (s *Session) RequestUpdate(p card.Patch, immediate bool) error {
	if p.IsEmpty() {
		logger.Warnf("editor: rejected empty update")
		return card.ErrEmptyPatch
	}
	if err := p.Validate(); err != nil {
		logger.Warnf("editor: rejected %s: %v", p, err)
		return fmt.Errorf("request update: %w", err)
	}

	s.coalescer.Request(p, immediate)
	if !immediate {
		s.mu.Lock()
		s.publishLocked()
		s.mu.Unlock()
	}
	return nil
}

// Undo discards any pending batch and steps back one entry. A batch whose
// commit is already running lands first, so Undo steps back from it.
func (s *Session) Undo() card.Card {
	return s.move(s.history.Undo)
}

// Redo discards any pending batch and steps forward one entry.
func (s *Session) Redo() card.Card {
	return s.move(s.history.Redo)
}

// move runs a cursor move in commit order with the pending batch dropped.
func (s *Session) move(step func() card.Card) card.Card {
	var c card.Card
	s.coalescer.CancelThen(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		c = step()
		s.publishLocked()
	})
	return c
}

// Load replaces the document and its history, for example after an import.
func (s *Session) Load(c card.Card) {
	s.coalescer.CancelThen(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.history.Reset(c)
		s.lastCommit = time.Time{}
		s.publishLocked()
	})
	logger.Infof("editor: loaded card %s", c.ID)
}

// Current returns the committed document at the history cursor.
func (s *Session) Current() card.Card {
	return s.history.Current()
}

// Preview returns the committed document with any pending batch applied.
func (s *Session) Preview() card.Card {
	cur := s.history.Current()
	if p, ok := s.coalescer.Pending(); ok {
		return card.Apply(cur, p)
	}
	return cur
}

// Pending reports whether a deferred batch is waiting to be committed.
func (s *Session) Pending() bool {
	_, ok := s.coalescer.Pending()
	return ok
}

// CanUndo reports whether an older entry exists. A pending batch does not
// count; Undo drops it either way.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Undo left newer entries to step forward to.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Entries returns a copy of the history entries, oldest first.
func (s *Session) Entries() []card.Card {
	return s.history.Entries()
}

// Flush commits the pending batch now. It reports whether there was one.
func (s *Session) Flush() bool {
	return s.coalescer.Flush()
}

// Close flushes the pending batch and stops accepting updates.
func (s *Session) Close() {
	s.coalescer.Flush()
	s.coalescer.Close()
}

// commit is the coalescer's commit callback. It must not call back into the
// coalescer except for Pending.
func (s *Session) commit(p card.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Commit(p)
	s.lastCommit = s.now()
	s.publishLocked()
}

func (s *Session) publishLocked() {
	st := s.history.State()
	preview := st.Current
	p, pending := s.coalescer.Pending()
	if pending {
		preview = card.Apply(st.Current, p)
	}
	s.store.Update(state.Snapshot{
		Current:    st.Current,
		Preview:    preview,
		Pending:    pending,
		Cursor:     st.Cursor,
		Entries:    st.Len,
		CanUndo:    st.CanUndo(),
		CanRedo:    st.CanRedo(),
		LastCommit: s.lastCommit,
	})
}
