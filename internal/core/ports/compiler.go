package ports

import (
	"context"

	"go.trai.ch/coil/internal/core/domain"
)

// Compiler turns source text into its target representation.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Name identifies the compiler in logs and traces.
	Name() string

	// Variant names the output flavour for opts. Units of identical content
	// compiled under different variants are cached separately.
	Variant(opts domain.CompileOptions) string

	// Compile compiles the unit. Rejected source yields a *domain.CompileError.
	Compile(ctx context.Context, src domain.SourceUnit, opts domain.CompileOptions) (*domain.CompiledArtifact, error)
}
