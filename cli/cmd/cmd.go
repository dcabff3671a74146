package cmd

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ardnew/stringed/lang"
	"github.com/ardnew/stringed/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named key, or fallback if ctx carries no
// kong.Context or the variable is undefined.
func kongVar(ctx context.Context, key, fallback string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return fallback
	}

	if v, ok := ktx.Model.Vars()[key]; ok {
		return v
	}

	return fallback
}

type searchPathKey struct{}

// WithSearchPath returns a new context.Context containing the directories
// searched for program files named by a relative path.
func WithSearchPath(ctx context.Context, dirs []string) context.Context {
	return context.WithValue(ctx, searchPathKey{}, dirs)
}

func searchPathFrom(ctx context.Context) []string {
	dirs, _ := ctx.Value(searchPathKey{}).([]string)

	return dirs
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// resolveSource returns the path of the program file name. A relative name
// that does not exist in the working directory is looked up in each search
// path directory in order. If no candidate exists, name is returned as is.
func resolveSource(ctx context.Context, name string) string {
	if name == stdinSource || filepath.IsAbs(name) || exists(name) {
		return name
	}

	for _, dir := range searchPathFrom(ctx) {
		path := filepath.Join(dir, name)
		if exists(path) {
			log.TraceContext(ctx, "resolved source",
				slog.String("name", name),
				slog.String("path", path),
			)

			return path
		}
	}

	return name
}

func exists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// readSource reads the program named by name, or stdin if name is "-".
func readSource(ctx context.Context, name string, stdin io.Reader) (string, error) {
	logger := log.Default()

	if name == stdinSource {
		return lang.ReadSource(ctx, stdin, logger.With(slog.String("path", name)))
	}

	path := resolveSource(ctx, name)

	src, err := lang.ReadSourceFile(ctx, path, logger)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return "", ErrOpenSource.
				With(slog.String("path", path)).
				Wrap(pathErr.Err)
		}

		return "", err
	}

	return src, nil
}

// parseSource reads and parses the program named by name.
func parseSource(ctx context.Context, name string, stdin io.Reader) (lang.Node, error) {
	src, err := readSource(ctx, name, stdin)
	if err != nil {
		return nil, err
	}

	return lang.Parse(src)
}

func orStdin(r io.Reader) io.Reader {
	if r == nil {
		return os.Stdin
	}

	return r
}

func orStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}

	return w
}

func orStderr(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}

	return w
}
