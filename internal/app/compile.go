package app

import (
	"context"
	"os"

	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
)

// CompileOptions configures the compile command.
type CompileOptions struct {
	// NoBare keeps the module wrapper around the output.
	NoBare bool
	// MapFile receives an external source map instead of the inline one.
	MapFile string
}

// cached reports whether the options match what the cache stores.
func (o CompileOptions) cached() bool {
	return !o.NoBare && o.MapFile == ""
}

// Compile writes the compiled output of path to stdout. The default options
// go through the cache; any other combination compiles directly.
func (a *App) Compile(ctx context.Context, path string, opts CompileOptions) error {
	if err := a.prepare(); err != nil {
		return err
	}

	l, err := a.loaderFor(path)
	if err != nil {
		return err
	}

	var artifact *domain.CompiledArtifact
	if opts.cached() {
		res, err := l.Load(ctx, path)
		if err != nil {
			return err
		}
		artifact = res.Artifact
	} else {
		artifact, err = a.compileDirect(ctx, l.Compiler(), path, opts)
		if err != nil {
			return err
		}
		if opts.MapFile != "" && len(artifact.SourceMap) == 0 {
			return zerr.With(zerr.With(domain.ErrSourceMapUnsupported, "compiler", l.Compiler().Name()), "path", path)
		}
	}

	if _, err := a.stdout.Write(artifact.Code); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}

	if opts.MapFile != "" {
		if err := os.WriteFile(opts.MapFile, artifact.SourceMap, domain.FilePerm); err != nil { //nolint:gosec // map is not secret
			return zerr.With(zerr.Wrap(err, "failed to write source map"), "path", opts.MapFile)
		}
		a.logger.Info("wrote source map " + opts.MapFile)
	}
	return nil
}

func (a *App) compileDirect(
	ctx context.Context,
	compiler ports.Compiler,
	path string,
	opts CompileOptions,
) (*domain.CompiledArtifact, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path names the file to compile
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
	}

	artifact, err := compiler.Compile(ctx, domain.SourceUnit{Path: path, Content: content}, domain.CompileOptions{
		SourceFileName:  path,
		Bare:            !opts.NoBare,
		InlineSourceMap: opts.MapFile == "",
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "path", path)
	}
	return artifact, nil
}
