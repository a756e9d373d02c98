// Package main is the entry point for the coil runner.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/coil/cmd/coil/commands"
	"go.trai.ch/coil/internal/app"
	"go.trai.ch/coil/internal/core/domain"
	_ "go.trai.ch/coil/internal/wiring"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string, opts ...func(*app.App)) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() { _ = components.Shutdown(context.WithoutCancel(ctx)) }()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		var exit *domain.ExitStatus
		if errors.As(err, &exit) {
			return exit.Code
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
