package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestReaderInput(t *testing.T) {
	in := ReaderInput(strings.NewReader("one\r\ntwo\nthree"))

	for _, want := range []string{"one", "two", "three", "", ""} {
		got, err := in(t.Context())
		if err != nil {
			t.Fatal(err)
		}

		if got != want {
			t.Errorf("line %q, want %q", got, want)
		}
	}
}

func TestReaderInputCancelled(t *testing.T) {
	ctx, cancel := context.WithCancelCause(t.Context())
	cause := errors.New("stop")
	cancel(cause)

	if _, err := ReaderInput(strings.NewReader("x\n"))(ctx); !errors.Is(err, cause) {
		t.Errorf("error = %v, want %v", err, cause)
	}
}

func TestQueueInput(t *testing.T) {
	fallback := ReaderInput(strings.NewReader("late\n"))
	in := QueueInput(fallback, "first", "second")

	for _, want := range []string{"first", "second", "late", ""} {
		got, err := in(t.Context())
		if err != nil {
			t.Fatal(err)
		}

		if got != want {
			t.Errorf("line %q, want %q", got, want)
		}
	}

	if got, _ := QueueInput(nil)(t.Context()); got != "" {
		t.Errorf("empty queue without fallback returned %q", got)
	}
}
