package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/ardnew/stringed/lang"
	"github.com/ardnew/stringed/log"
)

// Run executes a program against stdin and stdout.
type Run struct {
	Input        []string `help:"Answer the first prompts with these lines before reading stdin" placeholder:"LINE" short:"i"`
	LineBuffered bool     `help:"Write output a line at a time, trimming trailing whitespace"    short:"l"`

	Source string `arg:"" help:"Program file or '-' for stdin" name:"file"`

	Stdin  io.Reader `kong:"-"`
	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

var errorPrefix = color.New(color.FgRed, color.Bold)

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stdin, stdout, stderr := orStdin(r.Stdin), orStdout(r.Stdout), orStderr(r.Stderr)

	src, err := readSource(ctx, r.Source, stdin)
	if err != nil {
		return err
	}

	output := lang.WriterOutput(stdout)
	if r.LineBuffered {
		output = lang.LineWriterOutput(stdout)
	}

	logger := log.Default().With(slog.String("file", r.Source))

	interp := lang.Interpreter{
		Input:        lang.QueueInput(lang.ReaderInput(stdin), r.Input...),
		Output:       output,
		Logger:       logger,
		LineBuffered: r.LineBuffered,
	}

	err = interp.Run(ctx, src)
	if err != nil {
		errorPrefix.Fprint(stderr, "error:")
		fmt.Fprintln(stderr, " "+err.Error())

		return ErrScriptFailed.
			With(slog.String("file", r.Source)).
			Wrap(err)
	}

	return nil
}
