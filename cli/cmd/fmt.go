package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/stringed/lang"
)

// Fmt parses a program and prints its syntax tree in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical stringed source (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as an indented syntax tree."`
}

// SourceArgs holds the arguments shared by every fmt subcommand.
type SourceArgs struct {
	Source string `arg:"" default:"-" help:"Program file or '-' for stdin." name:"file"`

	Stdin  io.Reader `kong:"-"`
	Stdout io.Writer `kong:"-"`
}

func (s *SourceArgs) parse(ctx context.Context, format string) (lang.Node, error) {
	node, err := parseSource(ctx, s.Source, orStdin(s.Stdin))
	if err != nil {
		if e, ok := lang.AsError(err); ok {
			return nil, e.With(slog.String("format", format))
		}

		return nil, err
	}

	return node, nil
}

// Native formats a program as canonical stringed source.
type Native struct {
	SourceArgs `embed:""`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) error {
	node, err := f.parse(ctx, "native")
	if err != nil {
		return err
	}

	w := orStdout(f.Stdout)

	if err := lang.Format(w, node); err != nil {
		return err
	}

	_, err = io.WriteString(w, "\n")

	return err
}

// JSON formats a program's syntax tree as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	SourceArgs `embed:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	node, err := j.parse(ctx, "json")
	if err != nil {
		return err
	}

	return lang.FormatJSON(orStdout(j.Stdout), node, j.Indent)
}

// YAML formats a program's syntax tree as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output, or 0 for flow style" short:"i"`

	SourceArgs `embed:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	node, err := y.parse(ctx, "yaml")
	if err != nil {
		return err
	}

	return lang.FormatYAML(ctx, orStdout(y.Stdout), node, y.Indent)
}

// AST prints a program's syntax tree as an indented outline.
type AST struct {
	SourceArgs `embed:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	node, err := a.parse(ctx, "ast")
	if err != nil {
		return err
	}

	return lang.Print(orStdout(a.Stdout), node)
}
