// Package history implements the linear undo/redo history behind the editor.
//
// # Model
//
// A Store holds an ordered list of document snapshots and a cursor pointing at
// the current one:
//
//	entries: [A, B, C]
//	cursor:        ^ (2)
//
// The store is seeded with one document, so it is never empty and the cursor
// is always valid:
//
//	0 <= cursor < len(entries), len(entries) >= 1
//
// # Operations
//
//   - Commit(patch): merge patch onto the current document, discard every
//     entry after the cursor, append the result and move the cursor to it.
//     This is the only operation that creates documents.
//   - Undo / Redo: move the cursor one step. At either end they return the
//     current document unchanged; running out of history is not an error.
//   - Reset: drop everything and reseed (used when a file is loaded).
//
// Branching after undo truncates:
//
//	[A, B, C] cursor=2
//	Undo, Undo          → cursor=0
//	Commit(D)           → [A, D] cursor=1, CanRedo() == false
//
// # Merge
//
// The store is generic over the document type D and the patch type P and
// never looks inside either. The caller supplies the merge function; the
// editor passes card.Apply, a one-level shallow merge.
//
// # Capacity
//
// The store keeps at most maxEntries snapshots (DefaultMaxEntries when zero is
// passed, no limit when Unbounded). Eviction drops the oldest entries.
//
// # Concurrency
//
// Every method takes the same mutex, so entries and cursor always change
// together. The debounce timer commits from its own goroutine while the UI
// reads from another; both see a consistent store.
package history
