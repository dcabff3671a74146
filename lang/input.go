package lang

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"unicode"

	"github.com/edwingeng/deque"
)

// InputFunc returns the next line of input for a prompt.
type InputFunc func(ctx context.Context) (string, error)

// OutputFunc receives one chunk (or, when line buffered, one line) of
// program output.
type OutputFunc func(text string) error

// ReaderInput returns an InputFunc that reads one line from r per request.
// The line ending ("\n" or "\r\n") is removed, and end of input yields an
// empty line.
func ReaderInput(r io.Reader) InputFunc {
	br := bufio.NewReader(r)

	var mu sync.Mutex

	return func(ctx context.Context) (string, error) {
		if err := context.Cause(ctx); err != nil {
			return "", err
		}

		mu.Lock()
		defer mu.Unlock()

		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", ErrReadInput.Wrap(err)
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		return line, nil
	}
}

// QueueInput returns an InputFunc that answers prompts with lines in order.
// Once they are used up, requests go to fallback, or yield an empty line if
// fallback is nil.
func QueueInput(fallback InputFunc, lines ...string) InputFunc {
	q := deque.NewDeque()

	for _, line := range lines {
		q.PushBack(line)
	}

	var mu sync.Mutex

	return func(ctx context.Context) (string, error) {
		mu.Lock()

		if !q.Empty() {
			line := q.PopFront().(string)
			mu.Unlock()

			return line, nil
		}

		mu.Unlock()

		if fallback == nil {
			return "", nil
		}

		return fallback(ctx)
	}
}

// WriterOutput returns an OutputFunc that writes text to w unchanged.
func WriterOutput(w io.Writer) OutputFunc {
	return func(text string) error {
		_, err := io.WriteString(w, text)

		return err
	}
}

// LineWriterOutput returns an OutputFunc that writes text followed by a
// newline, for use with line-buffered interpreters.
func LineWriterOutput(w io.Writer) OutputFunc {
	return func(text string) error {
		_, err := io.WriteString(w, text+"\n")

		return err
	}
}

func isSpace(r rune) bool { return unicode.IsSpace(r) }
