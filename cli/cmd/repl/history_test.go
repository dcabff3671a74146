package repl

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistoryWriteAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	for _, e := range []HistoryEntry{
		{`"a"`, modeProgram},
		{"alice", modeInput},
		{"help", modeCtrl},
		{`{x}: $_`, modeProgram},
	} {
		if _, err := h.Write(e.Line, e.Mode); err != nil {
			t.Fatalf("Write(%q) error = %v", e.Line, err)
		}
	}

	loaded := NewHistory(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", loaded.Len())
	}

	entry, err := loaded.GetEntry(1)
	if err != nil {
		t.Fatalf("GetEntry(1) error = %v", err)
	}

	if entry != (HistoryEntry{"alice", modeInput}) {
		t.Errorf("GetEntry(1) = %+v", entry)
	}

	got := loaded.Lines(modeProgram)
	want := []string{`{x}: $_`, `"a"`}

	if !slices.Equal(got, want) {
		t.Errorf("Lines(modeProgram) = %q, want %q", got, want)
	}
}

func TestHistoryDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path)

	for _, line := range []string{`"a"`, `"b"`, `"b"`, `"a"`} {
		if _, err := h.Write(line, modeProgram); err != nil {
			t.Fatal(err)
		}
	}

	// The same line in another mode is a distinct entry.
	if _, err := h.Write(`"a"`, modeInput); err != nil {
		t.Fatal(err)
	}

	if got, want := h.Lines(modeProgram), []string{`"a"`, `"b"`}; !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "P:\"b\"\nP:\"a\"\nI:\"a\"\n"; string(data) != want {
		t.Errorf("history file = %q, want %q", data, want)
	}
}

func TestHistoryIgnoresBlankAndMultiline(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	for _, line := range []string{"", "   ", "a\nb"} {
		n, err := h.Write(line, modeProgram)
		if err != nil || n != 0 {
			t.Errorf("Write(%q) = (%d, %v), want (0, nil)", line, n, err)
		}
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistoryLoadSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	content := "P:\"ok\"\nE:legacy\nC:\nC:quit\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}

	if _, err := parseEntry("E:legacy"); !errors.Is(err, ErrHistoryEntry) {
		t.Errorf("parseEntry() error = %v, want %v", err, ErrHistoryEntry)
	}
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "missing", baseHistory))
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}

	if _, err := h.GetEntry(0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetEntry(0) error = %v, want %v", err, ErrOutOfBounds)
	}
}
