// Package cmd implements the stringed subcommands: run, fmt, repl, version
// and help.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the JSON configuration file.
	ConfigIdentifier = "config"
)
