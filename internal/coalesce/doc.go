// Package coalesce batches rapid partial updates into single commits.
//
// Continuous inputs such as a slider held down fire many updates per second.
// Committing each one would fill the undo history with near-identical entries.
// A Coalescer collects those updates into one pending batch and commits it
// once the input has been quiet for a fixed window (trailing-edge debounce):
//
//	Request(x=1, deferred)  ─┐
//	Request(x=2, deferred)   ├─ batch {x=3}, timer re-armed on every call
//	Request(x=3, deferred)  ─┘
//	            … quiet window …
//	commit({x=3})                exactly once
//
// Discrete actions (template selection, toggles, text entry) pass
// immediate=true. An immediate request discards the pending batch without
// committing it and commits its own update synchronously.
//
// # Stale timers
//
// Every arm and every cancel bumps a generation counter, and each timer
// callback carries the generation it was armed with. A callback that fires
// after its timer was stopped, or after a newer batch was armed, sees a
// different generation and returns without committing.
//
// # Ordering
//
// The commit callback runs outside the state lock but under a second commit
// lock that is acquired before the state lock is released. Commits therefore
// happen one at a time and in the order the coalescer decided them, whether
// they come from a timer goroutine or from the caller.
//
// # Testing
//
// WithAfterFunc swaps time.AfterFunc for a controllable scheduler so tests can
// fire, or refuse to stop, individual timers.
package coalesce
