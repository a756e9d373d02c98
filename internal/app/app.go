// Package app implements the application layer for coil.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/coil/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/adapters/runtime" //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/coil/internal/engine/loader"
	"go.trai.ch/coil/internal/engine/spawn"
	"go.trai.ch/coil/internal/ui/output"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	projects ports.ProjectLoader
	primary  *loader.Loader
	registry *loader.Registry
	rewriter *spawn.Rewriter
	runner   ports.ProcessRunner
	store    ports.CacheStore
	settings ports.Settings
	tracer   ports.Tracer
	logger   ports.Logger
	watcher  ports.Watcher
	walker   *fs.Walker

	stdout io.Writer
	stderr io.Writer

	extraExtensions []string

	prepareOnce sync.Once
	prepareErr  error
	bindings    []binding
}

// binding pairs a loader with the hook that installed it.
type binding struct {
	loader *loader.Loader
	hook   *loader.Hook
}

// New creates a new App instance.
func New(
	projects ports.ProjectLoader,
	primary *loader.Loader,
	registry *loader.Registry,
	rewriter *spawn.Rewriter,
	runner ports.ProcessRunner,
	store ports.CacheStore,
	settings ports.Settings,
	tracer ports.Tracer,
	log ports.Logger,
	watcher ports.Watcher,
) *App {
	return &App{
		projects: projects,
		primary:  primary,
		registry: registry,
		rewriter: rewriter,
		runner:   runner,
		store:    store,
		settings: settings,
		tracer:   tracer,
		logger:   log,
		watcher:  watcher,
		walker:   fs.NewWalker(fs.DefaultSkips...),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithOutput sets the writers for compiled output and script I/O.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// Options are the global command line options.
type Options struct {
	// Extensions are registered with the primary loader in addition to the
	// project's extensions.
	Extensions []string
	NoCache    bool
	CacheDir   string
	JSON       bool
	Verbose    bool
}

// logConfigurer is implemented by loggers that can switch format and level.
type logConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// Configure applies the global options. It must be called before any
// command runs.
func (a *App) Configure(opts Options) {
	if opts.NoCache {
		a.settings.Set(config.KeyNoCache, true)
	}
	if opts.CacheDir != "" {
		a.settings.Set(config.KeyCacheDir, opts.CacheDir)
	}
	if opts.JSON {
		a.settings.Set(config.KeyLogFormat, "json")
	}
	a.extraExtensions = append(a.extraExtensions, opts.Extensions...)

	if lc, ok := a.logger.(logConfigurer); ok {
		lc.SetJSON(useJSON(a.settings.LogFormat(), a.stderr))
		lc.SetVerbose(opts.Verbose)
	}
}

// useJSON decides the log format. Without an explicit format, JSON is used
// when stderr is not a terminal.
func useJSON(format string, stderr io.Writer) bool {
	switch format {
	case "json":
		return true
	case "pretty":
		return false
	default:
		return !output.IsTerminal(stderr)
	}
}

// prepare loads the project file and installs every loader once.
func (a *App) prepare() error {
	a.prepareOnce.Do(func() {
		a.prepareErr = a.install()
	})
	return a.prepareErr
}

func (a *App) install() error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	project, err := a.projects.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load project configuration")
	}

	exts := project.Extensions
	if len(exts) == 0 {
		exts = domain.DefaultExtensions
	}
	exts = append(slices.Clone(exts), a.extraExtensions...)
	a.bindings = append(a.bindings, binding{loader: a.primary, hook: a.primary.Register(exts...)})

	for _, spec := range project.Compilers {
		compiler, err := shell.NewCompiler(spec)
		if err != nil {
			return err
		}
		l := loader.New(a.registry, compiler, a.store, a.settings, a.tracer, a.logger,
			loader.WithPrimaryExtension(spec.Extensions[0]))
		a.bindings = append(a.bindings, binding{loader: l, hook: l.Register(spec.Extensions[1:]...)})
		a.logger.Debug(fmt.Sprintf("registered %s for %s", spec.Name, strings.Join(spec.Extensions, ", ")))
	}

	if len(project.SpawnExtensions) > 0 {
		a.rewriter.SetExtensions(project.SpawnExtensions...)
	}

	return nil
}

// loaderFor returns the loader whose hook serves path, preferring the
// longest matching extension.
func (a *App) loaderFor(path string) (*loader.Loader, error) {
	var (
		best    *loader.Loader
		bestLen int
	)
	for _, b := range a.bindings {
		for _, ext := range b.hook.Extensions() {
			if len(ext) > bestLen && len(path) > len(ext) && strings.HasSuffix(path, ext) {
				best, bestLen = b.loader, len(ext)
			}
		}
	}
	if best == nil || !a.registry.Handles(path) {
		return nil, zerr.With(domain.ErrUnregisteredExtension, "path", path)
	}
	return best, nil
}

// Run evaluates entry in the host runtime with args as its arguments.
func (a *App) Run(ctx context.Context, entry string, args []string) error {
	if entry == "" {
		return domain.ErrNoEntrySpecified
	}
	if err := a.prepare(); err != nil {
		return err
	}

	var rt ports.ScriptRuntime = runtime.New(a.registry, a.rewriter, a.runner, a.settings, a.logger,
		runtime.WithOutput(a.stdout, a.stderr),
		runtime.WithPrimaryExtension(a.primary.PrimaryExtension()))
	return rt.Run(ctx, entry, args)
}
