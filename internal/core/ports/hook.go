package ports

import (
	"context"

	"go.trai.ch/coil/internal/core/domain"
)

// LoadHandler produces the compiled body of the module at path.
type LoadHandler func(ctx context.Context, path string) (*domain.CompiledArtifact, error)

// HandlerLookup resolves the handler registered for a path's extension.
type HandlerLookup interface {
	Lookup(path string) (LoadHandler, bool)
}

// ScriptRuntime evaluates an entry module with the registered hooks.
type ScriptRuntime interface {
	Run(ctx context.Context, entry string, args []string) error
}
