package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/five82/cardstock/internal/card"
)

// Version is written into every envelope.
const Version = "1.0"

var (
	// ErrMalformed marks input that is not a card export.
	ErrMalformed = errors.New("malformed export")
	// ErrUnsupportedVersion marks an export from an incompatible format.
	ErrUnsupportedVersion = errors.New("unsupported export version")
)

// Envelope is the on-disk export format.
type Envelope struct {
	Document  card.Card `json:"document"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Marshal wraps c in an envelope stamped with now.
func Marshal(c card.Card, now time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(Envelope{Document: c, Timestamp: now.UTC(), Version: Version}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return append(data, '\n'), nil
}

// FileName returns the default export file name for c.
func FileName(c card.Card, now time.Time) string {
	id := c.ID
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		id = "card"
	}
	return fmt.Sprintf("card-%s-%s.json", id, now.Format("20060102-150405"))
}

// WriteFile exports c into dir under FileName and returns the path written.
func WriteFile(dir string, c card.Card, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(c, now))
	if err := WriteFileAt(path, c, now); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFileAt exports c to path. The file is written to a temporary sibling
// and renamed into place so readers never see a partial export.
func WriteFileAt(path string, c card.Card, now time.Time) error {
	data, err := Marshal(c, now)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write export: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Parse reads an export. Fields missing from the document keep the values
// of card.Default.
func Parse(data []byte) (Envelope, error) {
	if !gjson.ValidBytes(data) {
		return Envelope{}, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	version := gjson.GetBytes(data, "version")
	if !version.Exists() || version.Type != gjson.String {
		return Envelope{}, fmt.Errorf("%w: missing version", ErrMalformed)
	}
	if major, _, _ := strings.Cut(version.Str, "."); major != "1" {
		return Envelope{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version.Str)
	}

	doc := gjson.GetBytes(data, "document")
	if !doc.IsObject() {
		return Envelope{}, fmt.Errorf("%w: missing document", ErrMalformed)
	}

	c := card.Default()
	generatedID := c.ID
	c.ID = ""
	if err := json.Unmarshal([]byte(doc.Raw), &c); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if c.ID == "" {
		c.ID = generatedID
	}
	if err := c.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	env := Envelope{Document: c, Version: version.Str}
	if ts := gjson.GetBytes(data, "timestamp"); ts.Exists() {
		env.Timestamp = ts.Time()
	}
	return env, nil
}

// ReadFile parses the export at path.
func ReadFile(path string) (Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Envelope{}, fmt.Errorf("read export: %w", err)
	}
	env, err := Parse(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return env, nil
}
