// Package profile wraps [github.com/pkg/profile] so the interpreter can be
// profiled while it runs a script.
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	stringed --pprof-mode cpu run script.str
//
// Without the tag, [Modes] is empty and [Config.Start] returns a no-op
// stopper, so callers never need to check the build configuration.
//
// A [Config] is built from functional options:
//
//	stop := profile.Make(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//		profile.WithQuiet(true),
//	).Start()
//	defer stop.Stop()
package profile
