package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ardnew/stringed/cli"
	"github.com/ardnew/stringed/cli/cmd"
	"github.com/ardnew/stringed/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Run(ctx, os.Exit, os.Args[1:]...)

	stop()

	if err != nil {
		// Failed programs have already reported their error.
		if !errors.Is(err, cmd.ErrScriptFailed) {
			log.Error(
				"run failed",
				slog.Any("error", err),
			) // slog automatically uses LogValue()
		}

		os.Exit(1)
	}
}
