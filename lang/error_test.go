package lang

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestErrorMatchesSentinel(t *testing.T) {
	derived := ErrInvalidBound.Wrap(io.EOF).With(slog.String("bound", "x"))

	if !errors.Is(derived, ErrInvalidBound) {
		t.Error("wrapped error does not match its sentinel")
	}

	if errors.Is(derived, ErrInvalidIndex) {
		t.Error("wrapped error matches an unrelated sentinel")
	}

	if !errors.Is(derived, io.EOF) {
		t.Error("cause not reachable through Unwrap")
	}

	if got := derived.Error(); got != "invalid bound: EOF" {
		t.Errorf("Error() = %q", got)
	}

	reworded := ErrExpected.Reword("expected %s, found %s", "x", "y")
	if !errors.Is(reworded, ErrExpected) || reworded.Error() != "expected x, found y" {
		t.Errorf("reworded error %q lost its sentinel or message", reworded)
	}
}

func TestErrorLogValue(t *testing.T) {
	v := ErrInvalidIndex.With(slog.Int("upper", 9)).LogValue()

	got := map[string]string{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value.String()
	}

	if got["error"] != "invalid index" || got["upper"] != "9" {
		t.Errorf("LogValue() = %v", got)
	}
}
