package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/stringed/lang"
)

func sourceArgs(src string, out *bytes.Buffer) SourceArgs {
	return SourceArgs{Source: stdinSource, Stdin: strings.NewReader(src), Stdout: out}
}

func TestFmtNative(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"a"+"b"`, `"a" + "b"`},
		{`{say "hi"}:$_`, `{say "hi"}: $_`},
		{`  ( ?  )[ "1" : ]`, `(?)["1":]`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			var out bytes.Buffer

			f := &Native{SourceArgs: sourceArgs(tt.src, &out)}
			if err := f.Run(t.Context()); err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got := out.String(); got != tt.want+"\n" {
				t.Errorf("output = %q, want %q", got, tt.want+"\n")
			}
		})
	}
}

func TestFmtNativeParseError(t *testing.T) {
	var out bytes.Buffer

	f := &Native{SourceArgs: sourceArgs(`"a" ]`, &out)}

	err := f.Run(t.Context())
	if !errors.Is(err, lang.ErrUnexpected) {
		t.Errorf("Run() error = %v, want %v", err, lang.ErrUnexpected)
	}

	e, ok := lang.AsError(err)
	if !ok {
		t.Fatalf("Run() error %T is not a lang error", err)
	}

	if v, ok := e.Attr("format"); !ok || v.String() != "native" {
		t.Errorf("format attribute = %v, %v", v, ok)
	}
}

func TestFmtJSON(t *testing.T) {
	var out bytes.Buffer

	j := &JSON{Indent: 2, SourceArgs: sourceArgs(`#"abc"`, &out)}
	if err := j.Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var tree map[string]any
	if err := json.Unmarshal(out.Bytes(), &tree); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}

	if tree["kind"] != "length" {
		t.Errorf("kind = %v, want length", tree["kind"])
	}
}

func TestFmtYAML(t *testing.T) {
	var out bytes.Buffer

	y := &YAML{Indent: 2, SourceArgs: sourceArgs(`"a" = "b"`, &out)}
	if err := y.Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(out.String(), "kind: equal") {
		t.Errorf("output = %q, want kind: equal", out.String())
	}
}

func TestFmtAST(t *testing.T) {
	var out bytes.Buffer

	a := &AST{SourceArgs: sourceArgs(`$_`, &out)}
	if err := a.Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.Contains(out.String(), "eval") {
		t.Errorf("output = %q, want an eval node", out.String())
	}
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer

	if err := (&Version{Stdout: &out}).Run(t.Context()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !strings.HasPrefix(out.String(), "STRINGED ") {
		t.Errorf("output = %q, want STRINGED prefix", out.String())
	}
}

func TestHelpWithoutKongContext(t *testing.T) {
	err := (&Help{}).Run(t.Context())
	if !errors.Is(err, ErrUnknownTopic) {
		t.Errorf("Run() error = %v, want %v", err, ErrUnknownTopic)
	}
}
