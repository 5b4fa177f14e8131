// Package export serializes cards to the JSON envelope
//
//	{"document": {...}, "timestamp": "2026-01-02T15:04:05Z", "version": "1.0"}
//
// and reads it back. Exports go to a file, the clipboard or the autosave
// path.
package export
