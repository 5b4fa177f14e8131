// Package ui provides the terminal card editor for cardstock.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program in the usual Model/Update/View shape. It
// never mutates the card itself: every edit becomes a card.Patch handed to
// the Editor (an editor.Session in production), and the screen is redrawn
// from the state.Snapshot the session publishes.
//
// # Package Structure
//
//   - app.go: Model, message handling, layout and the Run entry point
//   - panels.go: editable fields grouped into panels, and the patches they build
//   - preview.go: cell-based rendering of the card (gradient, border, shadow, text)
//   - modal.go: text and colour entry with bubbles/textinput
//   - keys.go, help.go: key bindings and the help overlay
//   - theme.go: colour palettes and pre-built lipgloss styles
//
// # Editing Model
//
// Numeric fields are nudged with h/l (H/L for ten steps). Nudges are sent
// as deferred updates built on the preview, so holding a key produces one
// history entry once the quiet window passes. Toggles, choices, text and
// colour entry, and presets are immediate updates built on the committed
// card; they drop any batch still waiting.
//
// # Event Flow
//
//  1. Run starts the program with the caller's context
//  2. Init subscribes to state.Store.Changes
//  3. Key presses call Editor.RequestUpdate, Undo or Redo and re-read the snapshot
//  4. Timer-driven commits arrive as changedMsg through the store subscription
//  5. Quit flushes any pending batch and saves preferences
//
// # Usage Example
//
//	session := editor.New(editor.Options{Store: store})
//	err := ui.Run(ui.Options{
//		Context: ctx,
//		Editor:  session,
//		Store:   store,
//		Presets: preset.NewLibrary(preset.Builtins()),
//	})
//
// # Key Bindings
//
//   - tab/shift+tab, 1-7: switch panel
//   - j/k: select field or preset
//   - h/l, H/L: nudge numeric field
//   - enter/space: edit text or colour, toggle, apply preset
//   - ctrl+z / ctrl+y: undo / redo
//   - ctrl+s: export JSON, y: copy JSON
//   - T: cycle theme, ?: help, q: quit
package ui
