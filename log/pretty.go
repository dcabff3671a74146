package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Palette used by the pretty handlers. Color output is suppressed
// automatically when [color.NoColor] is set.
var (
	keyColor     = color.New(color.FgHiBlack)
	stringColor  = color.New(color.FgCyan)
	numberColor  = color.New(color.FgYellow)
	trueColor    = color.New(color.FgGreen)
	falseColor   = color.New(color.FgRed)
	timeColor    = color.New(color.FgBlue)
	durColor     = color.New(color.FgMagenta)
	traceColor   = color.New(color.FgHiBlue)
	debugColor   = color.New(color.FgBlue)
	infoColor    = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	messageColor = color.New(color.FgWhite, color.Bold)
)

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return errorColor
	case level >= slog.LevelWarn:
		return warnColor
	case level >= slog.LevelInfo:
		return infoColor
	case level >= slog.LevelDebug:
		return debugColor
	default:
		return traceColor
	}
}

func levelLabel(level slog.Level) string {
	return strings.ToUpper(Level(level).String())
}

// prettyBase holds the state shared by both pretty handlers.
type prettyBase struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	prefix     string
}

func (h *prettyBase) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		h.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], a)
	}

	return h
}

func (h prettyBase) withGroup(name string) prettyBase {
	if name != "" {
		h.prefix += name + "."
	}

	return h
}

// fields flattens a record into its header and attribute lists.
func (h *prettyBase) fields(r slog.Record) (head, attrs []slog.Attr) {
	if !r.Time.IsZero() {
		if ts := h.formatTime(r.Time); ts != "" {
			head = append(head, slog.String(slog.TimeKey, ts))
		}
	}

	head = append(head, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			head = append(head,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	head = append(head, slog.String(slog.MessageKey, r.Message))

	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, flatten(h.prefix, a)...)

		return true
	})

	return head, attrs
}

func (h *prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// flatten expands group attributes into dotted keys.
func flatten(prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup {
		if a.Equal(slog.Attr{}) {
			return nil
		}

		a.Key = prefix + a.Key

		return []slog.Attr{a}
	}

	if a.Key != "" {
		prefix += a.Key + "."
	}

	var out []slog.Attr
	for _, g := range a.Value.Group() {
		out = append(out, flatten(prefix, g)...)
	}

	return out
}

func writeValue(buf *bytes.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		buf.WriteString(stringColor.Sprint(v.String()))

	case slog.KindInt64:
		buf.WriteString(numberColor.Sprint(strconv.FormatInt(v.Int64(), 10)))

	case slog.KindUint64:
		buf.WriteString(numberColor.Sprint(strconv.FormatUint(v.Uint64(), 10)))

	case slog.KindFloat64:
		buf.WriteString(numberColor.Sprint(strconv.FormatFloat(v.Float64(), 'g', -1, 64)))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(trueColor.Sprint("true"))
		} else {
			buf.WriteString(falseColor.Sprint("false"))
		}

	case slog.KindDuration:
		buf.WriteString(durColor.Sprint(v.Duration().String()))

	case slog.KindTime:
		buf.WriteString(timeColor.Sprint(v.Time().String()))

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			buf.WriteString(levelColor(level).Sprint(levelLabel(level)))

			return
		}

		buf.WriteString(stringColor.Sprint(v.String()))

	default:
		buf.WriteString(stringColor.Sprint(v.String()))
	}
}

// prettyTextHandler writes one colorized key=value line per record.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyTextHandler {
	return &prettyTextHandler{prettyBase{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}}
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	head, attrs := h.fields(r)

	buf := new(bytes.Buffer)

	for _, a := range append(head, attrs...) {
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		if a.Key == slog.MessageKey {
			buf.WriteString(messageColor.Sprint(a.Value.String()))

			continue
		}

		buf.WriteString(keyColor.Sprint(a.Key))
		buf.WriteByte('=')
		writeValue(buf, a.Value)
	}

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

// prettyJSONHandler writes an indented, colorized JSON-like object per record.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyJSONHandler {
	return &prettyJSONHandler{prettyBase{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
	}}
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	head, attrs := h.fields(r)

	buf := new(bytes.Buffer)
	buf.WriteString("{")

	for i, a := range append(head, attrs...) {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString("\n  ")
		buf.WriteString(keyColor.Sprint(strconv.Quote(a.Key)))
		buf.WriteString(": ")
		writeValue(buf, a.Value)
	}

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}
