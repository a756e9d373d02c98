// Package esbuild compiles TypeScript and JSX through esbuild's transform API.
package esbuild

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
)

// Name identifies the compiler in logs and spans.
const Name = "esbuild"

var _ ports.Compiler = (*Compiler)(nil)

// Compiler implements ports.Compiler with an in-process esbuild transform.
type Compiler struct {
	target api.Target
}

// NewCompiler creates a Compiler emitting ES2017, which the embedded runtime
// executes without further lowering.
func NewCompiler() *Compiler {
	return &Compiler{target: api.ES2017}
}

// Name returns "esbuild".
func (c *Compiler) Name() string {
	return Name
}

// Variant is "esbuild-<loader>", the loader picked for opts.SourceFileName.
func (c *Compiler) Variant(opts domain.CompileOptions) string {
	return Name + "-" + loaderName(opts.SourceFileName)
}

// Compile transforms the source unit. The loader is picked from the
// extension of opts.SourceFileName, falling back to the unit's path.
func (c *Compiler) Compile(
	ctx context.Context,
	src domain.SourceUnit,
	opts domain.CompileOptions,
) (*domain.CompiledArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := opts.SourceFileName
	if name == "" {
		name = src.Path
	}

	transform := api.TransformOptions{
		Loader:     loaderFor(name),
		Sourcefile: name,
		Target:     c.target,
		Format:     api.FormatIIFE,
		Sourcemap:  api.SourceMapExternal,
	}
	if opts.Bare {
		transform.Format = api.FormatCommonJS
	}
	if opts.InlineSourceMap {
		transform.Sourcemap = api.SourceMapInline
	}

	result := api.Transform(string(src.Content), transform)
	if len(result.Errors) > 0 {
		return nil, toCompileError(name, result.Errors[0])
	}

	artifact := &domain.CompiledArtifact{Code: result.Code}
	if !opts.InlineSourceMap {
		artifact.SourceMap = result.Map
	}
	return artifact, nil
}

func loaderName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ts", ".mts", ".cts":
		return "ts"
	case ".tsx":
		return "tsx"
	case ".jsx":
		return "jsx"
	default:
		return "js"
	}
}

func loaderFor(name string) api.Loader {
	switch loaderName(name) {
	case "ts":
		return api.LoaderTS
	case "tsx":
		return api.LoaderTSX
	case "jsx":
		return api.LoaderJSX
	default:
		return api.LoaderJS
	}
}

// toCompileError converts an esbuild message. esbuild columns are 0-based.
func toCompileError(name string, msg api.Message) *domain.CompileError {
	ce := &domain.CompileError{File: name, Message: msg.Text}
	if loc := msg.Location; loc != nil {
		if loc.File != "" {
			ce.File = loc.File
		}
		ce.Line = loc.Line
		ce.Column = loc.Column + 1
	}
	return ce
}
