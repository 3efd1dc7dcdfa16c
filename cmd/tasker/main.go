// Package main is the entry point for the tasker task runner.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasker/cmd/tasker/commands"
	"go.trai.ch/tasker/internal/app"
	"go.trai.ch/tasker/internal/core/domain"
	_ "go.trai.ch/tasker/internal/wiring"
	"go.trai.ch/zerr"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := components.Close(); err != nil {
			_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}
	}()

	cli := commands.New(components.App)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(zerr.With(err, "kind", domain.KindOf(err)))
		return 1
	}
	return 0
}
