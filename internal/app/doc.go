// Package app is the composition root of cardstock.
//
// # Overview
//
// Run loads configuration, points the logger at the log file, restores user
// preferences, loads the preset library, creates the editing session and
// hands everything to the TUI. It blocks until the user quits or the context
// is cancelled.
//
// # Startup
//
//  1. config.Load reads ~/.config/cardstock/config.toml (missing file = defaults)
//  2. CLI flag overrides are applied on top (presets path, log level, log file)
//  3. logger.Init writes to the log file, or discards when none is set
//  4. prefs.Load restores theme and last panel
//  5. An optional export file given on the command line becomes the initial card
//  6. preset.Load and preset.Watch provide hot-reloaded templates
//  7. editor.New creates the session publishing into a state.Store
//  8. StartAutosave and ui.Run start; Run blocks on the UI
//
// # Autosave
//
// StartAutosave writes the committed card with export.WriteFileAt on a fixed
// interval. A tick is skipped when the store revision has not changed since
// the last write, so an idle editor does not touch the disk. When the context
// ends the loop saves once more before exiting, and Run waits for it.
//
// Failures are logged and recorded on the store so the status line shows
// them; the next tick retries.
//
// # Shutdown
//
// Leaving the UI cancels the run context, which stops the preset watcher and
// the autosave loop. The deferred session.Close flushes any pending batch
// into history.
package app
