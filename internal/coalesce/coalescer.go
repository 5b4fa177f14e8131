package coalesce

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/cardstock/internal/logger"
)

// DefaultQuietWindow is the debounce interval used when none is given.
const DefaultQuietWindow = 200 * time.Millisecond

// Timer is the part of *time.Timer the coalescer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the default.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Coalescer.
type Option func(*options)

type options struct {
	afterFunc AfterFunc
}

// WithAfterFunc replaces the timer source, mainly for tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.afterFunc = fn
		}
	}
}

// Coalescer batches deferred updates into one commit per quiet window.
//
// Thread-safety: all methods are safe for concurrent use. commit is never
// called concurrently with itself and must not call back into the Coalescer.
type Coalescer[P any] struct {
	mu       sync.Mutex
	commitMu sync.Mutex // held across commit so commits keep decision order

	quiet     time.Duration
	merge     func(prev, next P) P
	commit    func(P)
	afterFunc AfterFunc

	pending    P
	hasPending bool
	timer      Timer
	gen        uint64 // bumped on every arm or cancel; stale callbacks compare against it
	closed     bool

	// view mirrors pending for lock-free reads from inside commit callbacks.
	view atomic.Pointer[P]
}

// New creates a Coalescer. merge folds a new partial update into the pending
// batch; commit receives each finished batch or immediate update.
func New[P any](quiet time.Duration, merge func(prev, next P) P, commit func(P), opts ...Option) *Coalescer[P] {
	if merge == nil || commit == nil {
		panic("coalesce: nil merge or commit func")
	}
	if quiet <= 0 {
		quiet = DefaultQuietWindow
	}
	o := options{afterFunc: realAfterFunc}
	for _, opt := range opts {
		opt(&o)
	}
	return &Coalescer[P]{
		quiet:     quiet,
		merge:     merge,
		commit:    commit,
		afterFunc: o.afterFunc,
	}
}

// Request submits a partial update.
//
// An immediate update discards any pending batch without committing it and
// commits p before returning. A deferred update is merged into the pending
// batch and the commit is rescheduled for one quiet window after this call.
func (c *Coalescer[P]) Request(p P, immediate bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		logger.Warnf("coalesce: request after close ignored")
		return
	}

	if immediate {
		dropped := c.cancelLocked()
		if dropped {
			logger.Debugf("coalesce: immediate update discarded pending batch")
		}
		c.commitMu.Lock()
		c.mu.Unlock()
		c.commit(p)
		c.commitMu.Unlock()
		return
	}

	if c.hasPending {
		c.pending = c.merge(c.pending, p)
	} else {
		c.pending = p
		c.hasPending = true
	}
	batch := c.pending
	c.view.Store(&batch)
	c.armLocked()
	c.mu.Unlock()
}

// Pending returns the batch waiting for its quiet window, if any. It never
// blocks, so it is safe to call from the commit callback.
func (c *Coalescer[P]) Pending() (P, bool) {
	if v := c.view.Load(); v != nil {
		return *v, true
	}
	var zero P
	return zero, false
}

// Flush commits the pending batch now. It reports whether there was one.
func (c *Coalescer[P]) Flush() bool {
	c.mu.Lock()
	if !c.hasPending {
		c.mu.Unlock()
		return false
	}
	batch := c.takeLocked()
	c.commitMu.Lock()
	c.mu.Unlock()
	c.commit(batch)
	c.commitMu.Unlock()
	return true
}

// Cancel discards the pending batch. It reports whether there was one.
func (c *Coalescer[P]) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelLocked()
}

// CancelThen discards the pending batch and runs fn in commit order: after
// any commit already in flight and before any later one. fn must not call
// back into the Coalescer except for Pending. It reports whether a batch was
// discarded.
func (c *Coalescer[P]) CancelThen(fn func()) bool {
	c.mu.Lock()
	had := c.cancelLocked()
	c.commitMu.Lock()
	c.mu.Unlock()
	defer c.commitMu.Unlock()
	fn()
	return had
}

// Close discards the pending batch and ignores all later requests.
func (c *Coalescer[P]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.closed = true
}

// armLocked (re)schedules the commit for the current generation.
func (c *Coalescer[P]) armLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.timer = c.afterFunc(c.quiet, func() { c.fire(gen) })
}

// fire runs on the timer goroutine.
func (c *Coalescer[P]) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || !c.hasPending {
		// Superseded or cancelled after Stop lost the race.
		c.mu.Unlock()
		return
	}
	batch := c.takeLocked()
	c.commitMu.Lock()
	c.mu.Unlock()
	c.commit(batch)
	c.commitMu.Unlock()
}

// takeLocked removes and returns the pending batch and invalidates its timer.
func (c *Coalescer[P]) takeLocked() P {
	batch := c.pending
	c.cancelLocked()
	return batch
}

func (c *Coalescer[P]) cancelLocked() bool {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	had := c.hasPending
	var zero P
	c.pending = zero
	c.hasPending = false
	c.view.Store(nil)
	return had
}
