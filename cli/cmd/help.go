package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
)

// Help prints usage for the application or one of its commands.
type Help struct {
	Command []string `arg:"" help:"Command to describe" optional:""`
}

// Run executes the help command.
func (h *Help) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrUnknownTopic
	}

	topic := slog.String("command", strings.Join(h.Command, " "))

	tctx, err := kong.Trace(ktx.Kong, h.Command)
	if err != nil {
		return ErrUnknownTopic.With(topic).Wrap(err)
	}

	if tctx.Error != nil {
		return ErrUnknownTopic.With(topic).Wrap(tctx.Error)
	}

	return tctx.PrintUsage(false)
}
