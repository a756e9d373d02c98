// Package spawn redirects child processes that target registered source files
// to the runner binary, so the child loads them through the same hook.
package spawn

import (
	"context"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SpawnRewriter = (*Rewriter)(nil)

// SpawnFunc starts a child process and waits for it.
type SpawnFunc func(ctx context.Context, req domain.SpawnRequest, stdout, stderr io.Writer) (int, error)

// Rewriter rewrites spawn requests whose target has a registered extension
// into an invocation of the runner binary.
type Rewriter struct {
	settings   ports.Settings
	executable func() (string, error)

	mu         sync.RWMutex
	extensions []string
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithExecutable replaces the lookup of the running executable.
func WithExecutable(fn func() (string, error)) Option {
	return func(r *Rewriter) {
		r.executable = fn
	}
}

// WithExtensions sets the redirected extensions.
func WithExtensions(exts ...string) Option {
	return func(r *Rewriter) {
		r.extensions = normalize(exts)
	}
}

// NewRewriter creates a Rewriter for the primary extension.
func NewRewriter(settings ports.Settings, opts ...Option) *Rewriter {
	r := &Rewriter{
		settings:   settings,
		executable: sync.OnceValues(os.Executable),
		extensions: []string{domain.PrimaryExtension},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetExtensions replaces the redirected extensions. An empty list keeps the
// current set.
func (r *Rewriter) SetExtensions(exts ...string) {
	exts = normalize(exts)
	if len(exts) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.extensions = exts
}

// Extensions returns the redirected extensions.
func (r *Rewriter) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.extensions)
}

// Matches reports whether path has a redirected extension.
func (r *Rewriter) Matches(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ext := range r.extensions {
		if strings.HasSuffix(path, ext) && len(path) > len(ext) {
			return true
		}
	}
	return false
}

// RunnerPath returns the binary that rewritten requests invoke.
func (r *Rewriter) RunnerPath() (string, error) {
	if runner := r.settings.Runner(); runner != "" {
		return runner, nil
	}

	path, err := r.executable()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrRunnerNotFound.Error())
	}
	return path, nil
}

// Rewrite redirects req to the runner when its path has a redirected
// extension. The original path becomes the first argument and the options
// are kept as they are.
func (r *Rewriter) Rewrite(req domain.SpawnRequest) (domain.SpawnRequest, error) {
	if !r.Matches(req.Path) {
		return req, nil
	}

	runner, err := r.RunnerPath()
	if err != nil {
		return req, zerr.With(err, "path", req.Path)
	}

	args := make([]string, 0, len(req.Args)+1)
	args = append(args, req.Path)
	args = append(args, req.Args...)

	return domain.SpawnRequest{
		Path:    runner,
		Args:    args,
		Options: req.Options,
	}, nil
}

// Intercept is Rewrite without an error: a request that cannot be rewritten
// is returned unchanged.
func (r *Rewriter) Intercept(req domain.SpawnRequest) domain.SpawnRequest {
	out, err := r.Rewrite(req)
	if err != nil {
		return req
	}
	return out
}

// Wrap decorates spawn so that every request goes through Rewrite first.
func (r *Rewriter) Wrap(spawn SpawnFunc) SpawnFunc {
	return func(ctx context.Context, req domain.SpawnRequest, stdout, stderr io.Writer) (int, error) {
		out, err := r.Rewrite(req)
		if err != nil {
			return -1, err
		}
		return spawn(ctx, out, stdout, stderr)
	}
}

// Runner returns a ProcessRunner that rewrites requests before handing them
// to next.
func (r *Rewriter) Runner(next ports.ProcessRunner) ports.ProcessRunner {
	return runnerFunc(r.Wrap(next.Run))
}

type runnerFunc SpawnFunc

func (f runnerFunc) Run(ctx context.Context, req domain.SpawnRequest, stdout, stderr io.Writer) (int, error) {
	return f(ctx, req, stdout, stderr)
}

func normalize(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}
