package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() { color.NoColor = true }

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		stdin    string
		input    []string
		buffered bool
		want     string
		wantErr  string
	}{
		{
			name: "hello",
			src:  `"Hello world"`,
			want: "Hello world",
		},
		{
			name:  "prompt from stdin",
			src:   "\"Name:\nHello \" + ? + \"!\"",
			stdin: "Ada\n",
			want:  "Name:\nHello Ada!",
		},
		{
			name:  "queued input first",
			src:   `? + "," + ?`,
			stdin: "from stdin\n",
			input: []string{"queued"},
			want:  "queued,from stdin",
		},
		{
			name: "stdin exhausted",
			src:  `"[" + ? + "]"`,
			want: "[]",
		},
		{
			name:     "line buffered",
			src:      "\"a  \nb\" + \"c\"",
			buffered: true,
			want:     "a\nbc\n",
		},
		{
			name:    "runtime error",
			src:     `"x" + "ab"["9":]`,
			want:    "x",
			wantErr: "error: invalid index\n",
		},
		{
			name:    "parse error",
			src:     `"x" +`,
			wantErr: "error: expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProgram(t, t.TempDir(), "prog.str", tt.src)

			var stdout, stderr bytes.Buffer

			r := &Run{
				Input:        tt.input,
				LineBuffered: tt.buffered,
				Source:       path,
				Stdin:        strings.NewReader(tt.stdin),
				Stdout:       &stdout,
				Stderr:       &stderr,
			}

			err := r.Run(t.Context())

			if got := stdout.String(); got != tt.want {
				t.Errorf("stdout = %q, want %q", got, tt.want)
			}

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Run() error = %v", err)
				}

				if stderr.Len() != 0 {
					t.Errorf("stderr = %q, want empty", stderr.String())
				}

				return
			}

			if !errors.Is(err, ErrScriptFailed) {
				t.Errorf("Run() error = %v, want %v", err, ErrScriptFailed)
			}

			if !strings.HasPrefix(stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want prefix %q", stderr.String(), tt.wantErr)
			}
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	var stderr bytes.Buffer

	r := &Run{Source: "definitely-missing.str", Stderr: &stderr}

	err := r.Run(t.Context())
	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("Run() error = %v, want %v", err, ErrOpenSource)
	}

	if errors.Is(err, ErrScriptFailed) {
		t.Error("missing file reported as a failed script")
	}
}

func TestRunFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeProgram(t, dir, "lib.str", `"found"`)

	var stdout bytes.Buffer

	r := &Run{Source: "lib.str", Stdin: strings.NewReader(""), Stdout: &stdout}

	if err := r.Run(WithSearchPath(t.Context(), []string{dir})); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stdout.String() != "found" {
		t.Errorf("stdout = %q, want found", stdout.String())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	path := writeProgram(t, t.TempDir(), "loop.str", `{$_}: $_`)

	var stderr bytes.Buffer

	r := &Run{Source: path, Stdin: strings.NewReader(""), Stdout: &bytes.Buffer{}, Stderr: &stderr}

	err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
}
