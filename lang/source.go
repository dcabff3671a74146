package lang

import (
	"context"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/klauspost/readahead"

	"github.com/ardnew/stringed/log"
)

// ReadSource reads an entire program from r. Reading happens ahead of
// consumption on a separate goroutine, which helps with slow sources such as
// pipes.
func ReadSource(ctx context.Context, r io.Reader, logger log.Logger) (string, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadSource.Wrap(err)
	}

	if !utf8.Valid(data) {
		logger.WarnContext(ctx, "source is not valid UTF-8",
			slog.Int("bytes", len(data)))
	}

	logger.TraceContext(ctx, "read source", slog.Int("bytes", len(data)))

	return string(data), nil
}

// ReadSourceFile reads the program stored in the named file.
func ReadSourceFile(ctx context.Context, name string, logger log.Logger) (string, error) {
	f, err := os.Open(name)
	if err != nil {
		return "", ErrReadSource.Wrap(err).With(slog.String("path", name))
	}
	defer f.Close()

	return ReadSource(ctx, f, logger.With(slog.String("path", name)))
}
