package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
)

// FilePlaceholder is replaced by the source file name in command arguments.
const FilePlaceholder = "{file}"

var _ ports.Compiler = (*Compiler)(nil)

// diagnostic matches "path:line:col: [error: ]message".
var diagnostic = regexp.MustCompile(`(?m)^(.*?):(\d+):(\d+):\s*(?:error:\s*)?(.+)$`)

// Compiler runs an external command that reads source on stdin and writes
// the compiled output to stdout.
type Compiler struct {
	spec ports.CompilerSpec
}

// NewCompiler creates a Compiler for a project file entry.
func NewCompiler(spec ports.CompilerSpec) (*Compiler, error) {
	if len(spec.Command) == 0 || spec.Command[0] == "" {
		return nil, zerr.With(domain.ErrInvalidCompilerConfig, "compiler", spec.Name)
	}
	return &Compiler{spec: spec}, nil
}

// Name returns the configured compiler name.
func (c *Compiler) Name() string {
	return c.spec.Name
}

// Variant is the configured compiler name. Every extension of an external
// compiler goes through the same command.
func (c *Compiler) Variant(domain.CompileOptions) string {
	return c.spec.Name
}

// Spec returns the project file entry the compiler was built from.
func (c *Compiler) Spec() ports.CompilerSpec {
	return c.spec
}

// Compile runs the command. A non-zero exit becomes a *domain.CompileError
// built from the command's stderr.
func (c *Compiler) Compile(
	ctx context.Context,
	src domain.SourceUnit,
	opts domain.CompileOptions,
) (*domain.CompiledArtifact, error) {
	name := opts.SourceFileName
	if name == "" {
		name = src.Path
	}

	argv := c.Args(name, opts)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // configured in the project file
	cmd.Env = os.Environ()
	cmd.Stdin = bytes.NewReader(src.Content)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, zerr.With(zerr.Wrap(ctxErr, domain.ErrCompileFailed.Error()), "compiler", c.spec.Name)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, ParseDiagnostic(name, stderr.String())
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompilerStartFailed.Error()), "compiler", c.spec.Name)
	}

	return &domain.CompiledArtifact{Code: stdout.Bytes()}, nil
}

// Args returns the argument vector for compiling name with opts.
func (c *Compiler) Args(name string, opts domain.CompileOptions) []string {
	argv := make([]string, 0, len(c.spec.Command)+2)
	for _, arg := range c.spec.Command {
		argv = append(argv, strings.ReplaceAll(arg, FilePlaceholder, name))
	}
	if opts.Bare && c.spec.BareFlag != "" {
		argv = append(argv, c.spec.BareFlag)
	}
	if opts.InlineSourceMap && c.spec.InlineMapFlag != "" {
		argv = append(argv, c.spec.InlineMapFlag)
	}
	return argv
}

// ParseDiagnostic builds a CompileError from compiler stderr. Without a
// recognisable position the whole output is the message.
func ParseDiagnostic(file, stderr string) *domain.CompileError {
	stderr = strings.TrimSpace(stderr)

	m := diagnostic.FindStringSubmatch(stderr)
	if m == nil {
		if stderr == "" {
			stderr = "compiler exited with an error"
		}
		return &domain.CompileError{File: file, Message: stderr}
	}

	line, _ := strconv.Atoi(m[2])
	col, _ := strconv.Atoi(m[3])
	return &domain.CompileError{
		File:    file,
		Line:    line,
		Column:  col,
		Message: strings.TrimSpace(m[4]),
	}
}
