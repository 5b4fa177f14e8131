// Package editor ties the undo history and the update coalescer into the
// session the UI edits through.
//
// Every change goes through RequestUpdate. Continuous controls (sliders,
// nudges) pass immediate=false and their updates collapse into one history
// entry once input pauses. Discrete controls (toggles, text, presets) pass
// immediate=true. Undo and Redo are discrete too: they drop an unfinished
// batch rather than committing it.
//
// After each change the session publishes a state.Snapshot so the UI can
// redraw without holding any editor lock.
package editor
