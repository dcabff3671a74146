// Package log is the structured logger used by the interpreter and its
// command-line front end. It wraps [log/slog] with a value-typed [Logger]
// configured through functional options.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Debug("step", slog.String("op", "concat"))
//
// Every level has a context-aware variant. The context-unaware variants use
// [DefaultContextProvider].
//
// The package also keeps a default logger writing to [os.Stderr]. Package-level
// functions such as [Info] and [Debug] log through it, and [Config] replaces
// its options.
//
// Pretty output ([WithPretty]) colorizes keys, values and levels using
// [github.com/fatih/color], which honors NO_COLOR and non-terminal outputs.
package log
