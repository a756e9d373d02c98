// Package shell runs external processes: spawned child scripts and
// command-line compilers.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/coil/internal/ui/output"
	"go.trai.ch/zerr"
)

var _ ports.ProcessRunner = (*Executor)(nil)

// PTYMode selects whether children run in a pseudo-terminal.
type PTYMode int

const (
	// PTYAuto uses a pseudo-terminal when stdout is a terminal.
	PTYAuto PTYMode = iota
	// PTYAlways always uses a pseudo-terminal. Stdout and stderr are merged.
	PTYAlways
	// PTYNever uses plain pipes.
	PTYNever
)

// Executor implements ports.ProcessRunner using os/exec and pty.
type Executor struct {
	logger ports.Logger
	mode   PTYMode
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger, mode PTYMode) *Executor {
	return &Executor{
		logger: logger,
		mode:   mode,
	}
}

// Run starts the request and waits for it. The exit status of a child that
// ran is returned as the code with a nil error.
func (e *Executor) Run(ctx context.Context, req domain.SpawnRequest, stdout, stderr io.Writer) (int, error) {
	if req.Path == "" {
		return -1, zerr.With(domain.ErrSpawnFailed, "reason", "empty command")
	}

	cmd := command(ctx, req)
	e.logger.Debug("spawn " + strings.Join(req.Argv(), " "))

	var err error
	if e.usePTY(stdout) {
		err = runPTY(cmd, stdout)
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		err = cmd.Run()
	}

	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, zerr.With(zerr.Wrap(err, domain.ErrSpawnFailed.Error()), "path", req.Path)
}

func (e *Executor) usePTY(stdout io.Writer) bool {
	switch e.mode {
	case PTYAlways:
		return true
	case PTYNever:
		return false
	default:
		return output.IsTerminal(stdout)
	}
}

func command(ctx context.Context, req domain.SpawnRequest) *exec.Cmd {
	env := mergeEnvironment(os.Environ(), req.Options.Env)

	executable := req.Path
	if !filepath.IsAbs(executable) && !strings.ContainsRune(executable, filepath.Separator) {
		if lp, err := lookPath(executable, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, req.Args...) //nolint:gosec // spawned by the running script
	cmd.Args[0] = req.Path
	cmd.Dir = req.Options.Dir
	cmd.Env = env
	return cmd
}

// runPTY runs cmd attached to a pseudo-terminal and copies its merged output
// to w until the child exits.
func runPTY(cmd *exec.Cmd, w io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return zerr.Wrap(err, "failed to start pty")
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		// Reading fails with EIO once the child side is closed.
		_, _ = io.Copy(w, ptmx)
	}()

	err = cmd.Wait()
	<-ioDone
	return err
}

// mergeEnvironment appends overrides to the parent's environment. Later
// entries replace earlier ones with the same key.
func mergeEnvironment(parent, overrides []string) []string {
	if len(overrides) == 0 {
		return parent
	}

	index := make(map[string]int, len(parent)+len(overrides))
	merged := make([]string, 0, len(parent)+len(overrides))
	for _, entry := range append(parent[:len(parent):len(parent)], overrides...) {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if i, seen := index[k]; seen {
			merged[i] = entry
			continue
		}
		index[k] = len(merged)
		merged = append(merged, entry)
	}
	return merged
}

// lookPath searches the PATH of env, not the parent's, for an executable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
