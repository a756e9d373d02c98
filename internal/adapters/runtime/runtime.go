// Package runtime evaluates entry modules in an embedded JavaScript engine.
// Every require of a registered extension goes through the loader hook.
package runtime

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
)

// ExecPath is reported as process.argv[0] and process.execPath when the
// running executable cannot be determined.
const ExecPath = "coil"

var _ ports.ScriptRuntime = (*Runtime)(nil)

// Handlers resolves load handlers and lists the extensions they serve.
type Handlers interface {
	ports.HandlerLookup
	Extensions() []string
}

// Runtime runs entry modules. Each Run uses a fresh VM.
type Runtime struct {
	handlers Handlers
	rewriter ports.SpawnRewriter
	runner   ports.ProcessRunner
	settings ports.Settings
	logger   ports.Logger

	// primary is tried first when a required path has no extension.
	primary string

	stdout io.Writer
	stderr io.Writer
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput sets the writers that console and child processes use.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runtime) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithPrimaryExtension sets the extension tried first when resolving a
// require without an extension.
func WithPrimaryExtension(ext string) Option {
	return func(r *Runtime) {
		r.primary = ext
	}
}

// New creates a Runtime.
func New(
	handlers Handlers,
	rewriter ports.SpawnRewriter,
	runner ports.ProcessRunner,
	settings ports.Settings,
	logger ports.Logger,
	opts ...Option,
) *Runtime {
	r := &Runtime{
		handlers: handlers,
		rewriter: rewriter,
		runner:   runner,
		settings: settings,
		logger:   logger,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run evaluates entry with args as process.argv[2:]. A call to process.exit
// with a non-zero code returns a *domain.ExitStatus.
func (r *Runtime) Run(ctx context.Context, entry string, args []string) error {
	abs, err := filepath.Abs(entry)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", entry)
	}
	if _, err := os.Stat(abs); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", entry)
	}

	vm := goja.New()
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()

	registry := require.NewRegistry(require.WithLoader(r.sourceLoader(ctx)))
	registry.RegisterNativeModule(console.ModuleName, console.RequireWithPrinter(&printer{
		stdout: r.stdout,
		stderr: r.stderr,
	}))
	registry.RegisterNativeModule(ChildProcessModule, r.childProcess(ctx))

	modules := registry.Enable(vm)
	console.Enable(vm)
	exit := installProcess(vm, abs, args)

	r.logger.Debug("run " + abs)
	_, err = modules.Require(abs)
	if code := exit.code(); code >= 0 {
		if code == 0 {
			return nil
		}
		return &domain.ExitStatus{Code: code}
	}
	if err != nil {
		return r.scriptError(ctx, abs, err)
	}
	return nil
}

// scriptError maps a VM failure onto the error taxonomy. Go errors raised
// inside the VM, like a CompileError from the hook, are kept in the chain.
func (r *Runtime) scriptError(ctx context.Context, entry string, err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zerr.Wrap(ctxErr, domain.ErrScriptFailed.Error())
		}
	}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		if inner := exc.Unwrap(); inner != nil {
			return zerr.With(zerr.Wrap(inner, domain.ErrScriptFailed.Error()), "entry", entry)
		}
		msg := exc.Error()
		if r.settings.SourceMaps() {
			msg = exc.String()
		}
		return zerr.With(zerr.Wrap(errors.New(msg), domain.ErrScriptFailed.Error()), "entry", entry)
	}

	return zerr.With(zerr.Wrap(err, domain.ErrScriptFailed.Error()), "entry", entry)
}
