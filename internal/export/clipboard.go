package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"

	"github.com/five82/cardstock/internal/card"
)

// ErrClipboardUnavailable is returned when no system clipboard tool exists.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard receives exported text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// Copy places the export of c on cb.
func Copy(cb Clipboard, c card.Card, now time.Time) error {
	data, err := Marshal(c, now)
	if err != nil {
		return err
	}
	if err := cb.WriteAll(string(data)); err != nil {
		return fmt.Errorf("copy export: %w", err)
	}
	return nil
}
