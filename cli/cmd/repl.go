package cmd

import (
	"context"
	"os"

	"github.com/ardnew/stringed/cli/cmd/repl"
	"github.com/ardnew/stringed/log"
)

// Repl starts the interactive playground.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, kongVar(ctx, CacheIdentifier, os.TempDir()), log.Default())
}
