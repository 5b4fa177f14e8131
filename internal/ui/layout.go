package ui

import "time"

// Terminal size thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the panel stacks above the
	// preview instead of beside it.
	LayoutCompactWidth = 90

	// PanelWidth is the width of the field panel in the side-by-side layout.
	PanelWidth = 38

	// chromeHeight is the rows used by header, tabs, status and footer.
	chromeHeight = 5
)

// Timing constants.
const (
	// DefaultUIInterval refreshes relative times in the status line.
	DefaultUIInterval = time.Second

	// FlashDuration is how long a status message stays visible.
	FlashDuration = 4 * time.Second
)
