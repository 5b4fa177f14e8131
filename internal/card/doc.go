// Package card defines the document edited by cardstock and its partial
// update type.
//
// # Card
//
// A Card holds every editable property of one card: text, geometry, border,
// background gradient, shadow, typography, transform and effects. All nested
// settings are value structs, so a Card copied into history can never be
// changed through another copy.
//
// # Patch
//
// A Patch carries one pointer per top-level Card field. Apply performs a
// one-level shallow merge:
//
//	c := card.Default()                     // Title "Untitled card", Width 320
//	c = card.Apply(c, card.Patch{Title: card.Ptr("Hello")})
//	// c.Title == "Hello", c.Width == 320
//
// Nested settings are replaced wholesale. A patch that sets Shadow replaces
// the whole Shadow, so callers changing one shadow property start from the
// current value:
//
//	s := c.Shadow
//	s.Blur = 32
//	c = card.Apply(c, card.Patch{Shadow: &s})
//
// Merge folds two patches together with later fields winning; the coalescer
// uses it to accumulate slider drags into one batch.
//
// # Validation
//
// Validate reports every out-of-range value at once. Each error wraps
// ErrInvalidPatch so callers can test with errors.Is.
package card
