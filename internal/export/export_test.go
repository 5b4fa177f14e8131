package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/five82/cardstock/internal/card"
)

var stamp = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func TestMarshal_EnvelopeKeys(t *testing.T) {
	c := card.Default()
	data, err := Marshal(c, stamp)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var keys []string
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if strings.Join(keys, ",") != "document,timestamp,version" {
		t.Fatalf("keys = %v, want [document timestamp version]", keys)
	}
	if string(raw["version"]) != `"1.0"` {
		t.Fatalf("version = %s, want \"1.0\"", raw["version"])
	}
}

func TestParse_RoundTrip(t *testing.T) {
	c := card.Default()
	c.Title = "Round trip"
	c.Shadow.Blur = 40

	data, err := Marshal(c, stamp)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	env, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if env.Document != c {
		t.Fatalf("Document = %+v, want %+v", env.Document, c)
	}
	if !env.Timestamp.Equal(stamp) {
		t.Fatalf("Timestamp = %v, want %v", env.Timestamp, stamp)
	}
}

func TestParse_PartialDocumentUsesDefaults(t *testing.T) {
	env, err := Parse([]byte(`{"version":"1.2","document":{"title":"Hi","width":500}}`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	def := card.Default()
	if env.Document.Title != "Hi" || env.Document.Width != 500 {
		t.Fatalf("Document = %+v", env.Document)
	}
	if env.Document.Height != def.Height || env.Document.Shadow != def.Shadow {
		t.Fatal("missing fields did not fall back to defaults")
	}
	if env.Document.ID == "" {
		t.Fatal("ID not generated")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `{"version":`, ErrMalformed},
		{"no version", `{"document":{}}`, ErrMalformed},
		{"numeric version", `{"version":1,"document":{}}`, ErrMalformed},
		{"future version", `{"version":"2.0","document":{}}`, ErrUnsupportedVersion},
		{"no document", `{"version":"1.0"}`, ErrMalformed},
		{"bad field type", `{"version":"1.0","document":{"width":"wide"}}`, ErrMalformed},
		{"out of range", `{"version":"1.0","document":{"width":-500,"backgroundColor":"nope","effects":{"opacity":7}}}`, ErrMalformed},
		{"out of range is invalid", `{"version":"1.0","document":{"width":-500}}`, card.ErrInvalidPatch},
		{"bad nested value", `{"version":"1.0","document":{"typography":{"align":"justify"}}}`, card.ErrInvalidPatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	c := card.Default()

	path, err := WriteFile(dir, c, stamp)
	if err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("path = %s, want inside %s", path, dir)
	}
	if !strings.HasSuffix(path, "-20260304-050607.json") {
		t.Fatalf("path = %s, want timestamped name", path)
	}

	env, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if env.Document.ID != c.ID {
		t.Fatalf("ID = %s, want %s", env.Document.ID, c.ID)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir has %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestWriteFileAt_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.json")
	c := card.Default()

	if err := WriteFileAt(path, c, stamp); err != nil {
		t.Fatalf("WriteFileAt error: %v", err)
	}
	c.Title = "second"
	if err := WriteFileAt(path, c, stamp.Add(time.Minute)); err != nil {
		t.Fatalf("WriteFileAt error: %v", err)
	}

	env, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if env.Document.Title != "second" {
		t.Fatalf("Title = %q, want second", env.Document.Title)
	}
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func TestCopy(t *testing.T) {
	cb := &fakeClipboard{}
	c := card.Default()
	if err := Copy(cb, c, stamp); err != nil {
		t.Fatalf("Copy error: %v", err)
	}
	env, err := Parse([]byte(cb.text))
	if err != nil {
		t.Fatalf("clipboard text does not parse: %v", err)
	}
	if env.Document.ID != c.ID {
		t.Fatalf("ID = %s, want %s", env.Document.ID, c.ID)
	}

	cb.err = ErrClipboardUnavailable
	if err := Copy(cb, c, stamp); !errors.Is(err, ErrClipboardUnavailable) {
		t.Fatalf("Copy error = %v, want ErrClipboardUnavailable", err)
	}
}
