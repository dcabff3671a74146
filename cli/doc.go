// Package cli contains the command line interface for stringed.
//
// # Usage
//
//	stringed run hello.str
//	stringed run --input=alice greet.str
//	stringed fmt yaml loop.str
//	stringed repl
//
// Relative program paths that do not exist in the working directory are
// looked up in each --path directory and then in $STRINGED_PATH.
//
// Flags may also be given in the JSON file config.json in the user
// configuration directory (for example ~/.config/stringed/config.json):
//
//	{ "log-level": "debug", "log-pretty": false }
//
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (Go layout or a name such as
//     rfc3339, kitchen, or none)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// Logs are written to stderr so they never mix with program output.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o stringed .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/stringed/pprof)
package cli
