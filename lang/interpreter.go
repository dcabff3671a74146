package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/stringed/log"
)

// Interpreter drives a [Machine] to completion, feeding it input and
// forwarding its output.
type Interpreter struct {
	// Input answers prompts. If nil, every prompt reads an empty line.
	Input InputFunc
	// Output receives program output. If nil, output is discarded.
	Output OutputFunc
	// Cache memoizes parsing. If nil, [DefaultCache] is used.
	Cache *Cache
	// Logger receives trace records from the machine and driver.
	Logger log.Logger
	// LineBuffered passes output to Output one line at a time, without the
	// newline and with trailing whitespace removed. Any unterminated text is
	// passed on when the program finishes.
	LineBuffered bool
}

// Run executes source and returns the program's error, if any. Cancelling
// ctx abandons the program between steps and returns the cancellation cause.
func (it *Interpreter) Run(ctx context.Context, source string) error {
	cache := it.Cache
	if cache == nil {
		cache = DefaultCache()
	}

	m := Start(source, WithContext(ctx), WithLogger(it.Logger), WithCache(cache))

	var (
		queue  LineQueue
		chunks int
	)

	emit := func(text string) error {
		if it.Output == nil {
			return nil
		}

		if err := it.Output(text); err != nil {
			return ErrWriteOutput.Wrap(err)
		}

		return nil
	}

	flush := func() error {
		if it.LineBuffered && queue.Len() > 0 {
			return emit(queue.Flush())
		}

		return nil
	}

	res := m.Step()

	for {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		switch res.Status {
		case StatusOutput:
			chunks++

			if it.LineBuffered {
				for _, line := range queue.Insert(res.Value) {
					if err := emit(line); err != nil {
						return err
					}
				}
			} else if err := emit(res.Value); err != nil {
				return err
			}

			res = m.Step()

		case StatusInput:
			line := ""

			if it.Input != nil {
				var err error
				if line, err = it.Input(ctx); err != nil {
					return err
				}
			}

			res = m.Resume(line)

		case StatusError:
			if err := flush(); err != nil {
				return err
			}

			it.Logger.DebugContext(ctx, "program failed",
				slog.Int("chunks", chunks),
				slog.Any("error", res.Err),
			)

			return res.Err

		case StatusDone:
			it.Logger.DebugContext(ctx, "program finished", slog.Int("chunks", chunks))

			return flush()
		}
	}
}
