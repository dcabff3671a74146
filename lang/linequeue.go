package lang

import "strings"

// LineQueue accumulates output chunks and releases them as whole lines.
// The zero value is an empty queue.
type LineQueue struct {
	pending strings.Builder
}

// Insert appends chunk and returns every line completed by it, in order.
// Each line excludes its newline and has trailing whitespace removed.
func (q *LineQueue) Insert(chunk string) []string {
	if !strings.Contains(chunk, "\n") {
		q.pending.WriteString(chunk)

		return nil
	}

	buf := q.pending.String() + chunk
	q.pending.Reset()

	var lines []string

	for {
		line, rest, found := strings.Cut(buf, "\n")
		if !found {
			q.pending.WriteString(line)

			return lines
		}

		lines = append(lines, strings.TrimRightFunc(line, isSpace))
		buf = rest
	}
}

// Flush returns whatever follows the last newline and empties the queue.
func (q *LineQueue) Flush() string {
	s := q.pending.String()
	q.pending.Reset()

	return s
}

// Len returns the number of bytes waiting for a newline.
func (q *LineQueue) Len() int { return q.pending.Len() }
