package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// modePrefix marks the mode of each line in the history file.
var modePrefix = map[inputMode]string{
	modeProgram: "P:",
	modeInput:   "I:",
	modeCtrl:    "C:",
}

// HistoryEntry represents a single history entry with its mode.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

// History manages command history with file persistence.
type History struct {
	path    string
	entries []HistoryEntry
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file. Lines without a known
// mode prefix are skipped.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		entry, err := parseEntry(scanner.Text())
		if err != nil {
			continue
		}

		h.entries = append(h.entries, entry)
	}

	return scanner.Err()
}

func parseEntry(line string) (HistoryEntry, error) {
	for mode, prefix := range modePrefix {
		if s, ok := strings.CutPrefix(line, prefix); ok && s != "" {
			return HistoryEntry{Line: s, Mode: mode}, nil
		}
	}

	return HistoryEntry{}, ErrHistoryEntry
}

func (e HistoryEntry) String() string { return modePrefix[e.Mode] + e.Line }

// Write appends a new entry to the history with the specified mode. If a
// duplicate entry exists (same line and mode), the old one is removed.
// Leading and trailing spaces are significant in programs, so only blank
// entries and entries containing a line break are ignored.
func (h *History) Write(entry string, mode inputMode) (int, error) {
	if strings.TrimSpace(entry) == "" || strings.ContainsAny(entry, "\r\n") {
		return 0, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	item := HistoryEntry{Line: entry, Mode: mode}

	// Skip if same as last entry (both line and mode)
	if n := len(h.entries); n > 0 && h.entries[n-1] == item {
		return len(entry), nil
	}

	i := slices.Index(h.entries, item)
	if i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = append(h.entries, item)

	// If we removed a duplicate, rewrite the entire file
	// Otherwise, just append
	if i >= 0 {
		return h.rewriteFile()
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	return file.WriteString(item.String() + "\n")
}

// GetEntry retrieves a historic entry (line and mode) by index.
// Index 0 is the oldest entry.
func (h *History) GetEntry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Lines returns the lines entered in the given mode, most recent first.
func (h *History) Lines(mode inputMode) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var lines []string

	for _, entry := range slices.Backward(h.entries) {
		if entry.Mode == mode {
			lines = append(lines, entry.Line)
		}
	}

	return lines
}

// rewriteFile rewrites the entire history file with current entries.
// Must be called with h.mu held.
func (h *History) rewriteFile() (int, error) {
	file, err := os.OpenFile(h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	totalBytes := 0

	for _, entry := range h.entries {
		n, err := file.WriteString(entry.String() + "\n")
		if err != nil {
			return totalBytes, err
		}

		totalBytes += n
	}

	return totalBytes, nil
}
