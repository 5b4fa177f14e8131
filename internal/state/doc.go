// Package state provides the thread-safe snapshot store between the editor
// session and the UI.
//
// # Overview
//
// The editor session changes state from two places: the UI goroutine (key
// presses, immediate mutations, undo/redo) and the coalescer's timer goroutine
// (deferred batches reaching the end of their quiet window). The UI must
// notice both. The session therefore publishes a Snapshot into a Store after
// every change, and the UI reads it back on its own schedule.
//
//	Producers (Session):          Consumer (UI):
//	┌──────────────────┐         ┌──────────────────┐
//	│ RequestUpdate()  │         │ <-store.Changes()│
//	│ timer commit     │         │        ↓         │
//	│ Undo()/Redo()    │         │ store.Snapshot() │
//	│       ↓          │         │        ↓         │
//	│ store.Update()   │────────→│ render preview   │
//	└──────────────────┘ (mutex) └──────────────────┘
//
// # Core Types
//
// Store:
//   - Guarded by sync.RWMutex; zero value is ready to use
//   - Changes() returns a one-slot channel; bursts of updates collapse into
//     a single wake-up
//
// Snapshot:
//   - Current: the document at the history cursor
//   - Preview: Current with the pending batch applied (what the user sees
//     while dragging)
//   - Cursor/Entries/CanUndo/CanRedo: history position for the status line
//   - Revision: bumped by every Update, used by autosave to skip unchanged
//     documents
//   - LastError: most recent export/autosave failure, kept until cleared
//
// # Update Semantics
//
//	store.Update(snap)        → replaces editor state, Revision++,
//	                            LastError preserved
//	store.RecordError(err)    → editor state unchanged, LastError = err
//	store.RecordError(nil)    → clears LastError
//
// # Copying
//
// Card is a value type, so copying the Snapshot struct copies the documents.
// The error is wrapped on the way out so callers never share the stored
// instance.
package state
