package ports

import (
	"context"
	"io"

	"go.trai.ch/coil/internal/core/domain"
)

// ProcessRunner starts child processes.
//
//go:generate mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessRunner interface {
	// Run starts the request, streams its output and waits for it to exit.
	// A non-zero exit is reported through the returned code, not the error.
	Run(ctx context.Context, req domain.SpawnRequest, stdout, stderr io.Writer) (int, error)
}

// SpawnRewriter adjusts spawn requests before they reach a ProcessRunner.
type SpawnRewriter interface {
	// Rewrite redirects requests for registered source files to the runner
	// binary. It fails when the runner binary cannot be resolved.
	Rewrite(req domain.SpawnRequest) (domain.SpawnRequest, error)
}
