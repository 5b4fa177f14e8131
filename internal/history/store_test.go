package history

import (
	"sync"
	"testing"

	"github.com/five82/cardstock/internal/card"
)

// doc is a tiny document for tests that only care about identity.
type doc struct {
	Title string
	Color string
}

type docPatch struct {
	Title *string
	Color *string
}

func mergeDoc(base doc, p docPatch) doc {
	if p.Title != nil {
		base.Title = *p.Title
	}
	if p.Color != nil {
		base.Color = *p.Color
	}
	return base
}

func title(s string) docPatch { return docPatch{Title: &s} }

func titles(entries []doc) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew_StartsWithSeed(t *testing.T) {
	seed := doc{Title: "seed"}
	s := New(seed, mergeDoc, 0)

	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if s.Cursor() != 0 {
		t.Fatalf("Cursor() = %d, want 0", s.Cursor())
	}
	if s.Current() != seed {
		t.Fatalf("Current() = %#v, want %#v", s.Current(), seed)
	}
	if s.CanUndo() || s.CanRedo() {
		t.Fatalf("CanUndo/CanRedo = %v/%v, want false/false", s.CanUndo(), s.CanRedo())
	}
}

func TestNew_NilMergePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New with nil merge did not panic")
		}
	}()
	New[doc, docPatch](doc{}, nil, 0)
}

func TestCommit_Monotonic(t *testing.T) {
	s := New(doc{Title: "A"}, mergeDoc, Unbounded)

	for i := 1; i <= 10; i++ {
		before := s.Cursor()
		s.Commit(title(string(rune('A' + i))))
		if s.Cursor() != before+1 {
			t.Fatalf("commit %d: Cursor() = %d, want %d", i, s.Cursor(), before+1)
		}
		if s.Len() != s.Cursor()+1 {
			t.Fatalf("commit %d: Len() = %d, want Cursor()+1 = %d", i, s.Len(), s.Cursor()+1)
		}
	}
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	s := New(doc{Title: "A"}, mergeDoc, 0)

	d1 := s.Commit(docPatch{Title: ptr("B"), Color: ptr("blue")})
	if got := s.Undo(); got.Title != "A" {
		t.Fatalf("Undo() = %#v, want title A", got)
	}
	if got := s.Redo(); got != d1 {
		t.Fatalf("Redo() = %#v, want %#v", got, d1)
	}
	if s.Current() != d1 {
		t.Fatalf("Current() = %#v, want %#v", s.Current(), d1)
	}
}

func TestCommit_BranchTruncatesRedo(t *testing.T) {
	s := New(doc{Title: "A"}, mergeDoc, 0)
	s.Commit(title("B"))
	s.Commit(title("C"))

	s.Undo()
	s.Undo()
	if s.Current().Title != "A" {
		t.Fatalf("after two undos Current().Title = %q, want A", s.Current().Title)
	}

	s.Commit(title("D"))

	if got, want := titles(s.Entries()), []string{"A", "D"}; !equalStrings(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
	if s.Cursor() != 1 {
		t.Fatalf("Cursor() = %d, want 1", s.Cursor())
	}
	if s.CanRedo() {
		t.Fatal("CanRedo() = true after branching, want false")
	}
}

func TestUndoRedo_BoundaryNoOps(t *testing.T) {
	s := New(doc{Title: "A"}, mergeDoc, 0)

	if got := s.Undo(); got.Title != "A" || s.Cursor() != 0 {
		t.Fatalf("Undo at start = %#v cursor %d, want A cursor 0", got, s.Cursor())
	}

	s.Commit(title("B"))
	if got := s.Redo(); got.Title != "B" || s.Cursor() != 1 {
		t.Fatalf("Redo at tail = %#v cursor %d, want B cursor 1", got, s.Cursor())
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestCommit_ShallowMergeWithCards(t *testing.T) {
	start := card.Default()
	start.Title = "A"
	start.BorderColor = "#ff0000"
	s := New(start, card.Apply, 0)

	got := s.Commit(card.Patch{Title: card.Ptr("X")})
	if got.Title != "X" || got.BorderColor != "#ff0000" {
		t.Fatalf("Commit = title %q border %q, want X #ff0000", got.Title, got.BorderColor)
	}
	if s.Entries()[0].Title != "A" {
		t.Fatalf("seed entry changed to %q", s.Entries()[0].Title)
	}
}

func TestCommit_EvictsOldest(t *testing.T) {
	s := New(doc{Title: "0"}, mergeDoc, 3)
	for _, tt := range []string{"1", "2", "3", "4"} {
		s.Commit(title(tt))
	}

	if got, want := titles(s.Entries()), []string{"2", "3", "4"}; !equalStrings(got, want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}
	if s.Cursor() != 2 {
		t.Fatalf("Cursor() = %d, want 2", s.Cursor())
	}

	s.Undo()
	s.Undo()
	if s.CanUndo() {
		t.Fatal("CanUndo() = true at oldest retained entry")
	}
	if s.Current().Title != "2" {
		t.Fatalf("Current().Title = %q, want 2", s.Current().Title)
	}
}

func TestNew_ZeroMaxUsesDefault(t *testing.T) {
	s := New(doc{}, mergeDoc, 0)
	for i := 0; i < DefaultMaxEntries+20; i++ {
		s.Commit(title("x"))
	}
	if s.Len() != DefaultMaxEntries {
		t.Fatalf("Len() = %d, want %d", s.Len(), DefaultMaxEntries)
	}
}

func TestReset(t *testing.T) {
	s := New(doc{Title: "A"}, mergeDoc, 0)
	s.Commit(title("B"))
	s.Commit(title("C"))

	s.Reset(doc{Title: "Z"})

	st := s.State()
	if st.Len != 1 || st.Cursor != 0 || st.Current.Title != "Z" {
		t.Fatalf("State() = %#v, want single entry Z", st)
	}
	if st.CanUndo() || st.CanRedo() {
		t.Fatal("State reports undo/redo after Reset")
	}
}

func TestState_Consistent(t *testing.T) {
	s := New(doc{Title: "A"}, mergeDoc, 0)
	s.Commit(title("B"))
	s.Undo()

	st := s.State()
	if st.Current.Title != "A" || st.Cursor != 0 || st.Len != 2 {
		t.Fatalf("State() = %#v, want A cursor 0 len 2", st)
	}
	if st.CanUndo() || !st.CanRedo() {
		t.Fatalf("CanUndo/CanRedo = %v/%v, want false/true", st.CanUndo(), st.CanRedo())
	}
}

func TestStore_ConcurrentUse(t *testing.T) {
	s := New(doc{}, mergeDoc, Unbounded)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Commit(title("x"))
				s.Undo()
				s.Redo()
				_ = s.State()
			}
		}()
	}
	wg.Wait()

	st := s.State()
	if st.Cursor < 0 || st.Cursor >= st.Len {
		t.Fatalf("cursor %d out of range for len %d", st.Cursor, st.Len)
	}
}

func ptr(s string) *string { return &s }
