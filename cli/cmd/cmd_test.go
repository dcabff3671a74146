package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/stringed/lang"
)

// writeProgram writes src to a file named name in dir and returns its path.
func writeProgram(t *testing.T, dir, name, src string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestResolveSource(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	writeProgram(t, second, "only.str", `"second"`)
	writeProgram(t, first, "both.str", `"first"`)
	writeProgram(t, second, "both.str", `"second"`)

	ctx := WithSearchPath(t.Context(), []string{first, second})

	tests := []struct {
		name string
		want string
	}{
		{"only.str", filepath.Join(second, "only.str")},
		{"both.str", filepath.Join(first, "both.str")},
		{"missing.str", "missing.str"},
		{stdinSource, stdinSource},
		{filepath.Join(first, "both.str"), filepath.Join(first, "both.str")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSource(ctx, tt.name); got != tt.want {
				t.Errorf("resolveSource(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolveSourceWithoutSearchPath(t *testing.T) {
	if got := resolveSource(context.Background(), "nowhere.str"); got != "nowhere.str" {
		t.Errorf("resolveSource() = %q", got)
	}
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := writeProgram(t, dir, "hello.str", `"hello"`)

	src, err := readSource(t.Context(), path, nil)
	if err != nil || src != `"hello"` {
		t.Errorf("readSource(file) = (%q, %v)", src, err)
	}

	src, err = readSource(t.Context(), stdinSource, strings.NewReader(`"piped"`))
	if err != nil || src != `"piped"` {
		t.Errorf("readSource(stdin) = (%q, %v)", src, err)
	}

	_, err = readSource(t.Context(), filepath.Join(dir, "missing.str"), nil)
	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("readSource(missing) error = %v, want %v", err, ErrOpenSource)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("readSource(missing) error = %v, want wrapped %v", err, os.ErrNotExist)
	}
}

func TestParseSource(t *testing.T) {
	node, err := parseSource(t.Context(), stdinSource, strings.NewReader(`"a" + "b"`))
	if err != nil {
		t.Fatalf("parseSource() error = %v", err)
	}

	if _, ok := node.(*lang.Concat); !ok {
		t.Errorf("parseSource() = %T, want *lang.Concat", node)
	}

	_, err = parseSource(t.Context(), stdinSource, strings.NewReader(`"a" +`))
	if !errors.Is(err, lang.ErrExpected) {
		t.Errorf("parseSource() error = %v, want %v", err, lang.ErrExpected)
	}
}

func TestKongVarWithoutContext(t *testing.T) {
	if got := kongVar(t.Context(), CacheIdentifier, "fallback"); got != "fallback" {
		t.Errorf("kongVar() = %q, want fallback", got)
	}
}

func TestErrorIs(t *testing.T) {
	err := ErrScriptFailed.Wrap(lang.ErrInvalidIndex)

	if !errors.Is(err, ErrScriptFailed) {
		t.Error("wrapped error does not match its sentinel")
	}

	if errors.Is(err, ErrOpenSource) {
		t.Error("wrapped error matches an unrelated sentinel")
	}

	if !errors.Is(err, lang.ErrInvalidIndex) {
		t.Error("wrapped error does not match its cause")
	}

	if got, want := err.Error(), "script failed: invalid index"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
