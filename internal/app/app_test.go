package app_test

import (
	"bytes"
	"context"
	"iter"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/coil/internal/adapters/cas"
	"go.trai.ch/coil/internal/adapters/config"
	"go.trai.ch/coil/internal/adapters/esbuild"
	"go.trai.ch/coil/internal/adapters/telemetry"
	"go.trai.ch/coil/internal/app"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/coil/internal/core/ports/mocks"
	"go.trai.ch/coil/internal/engine/loader"
	"go.trai.ch/coil/internal/engine/spawn"
	"go.uber.org/mock/gomock"
)

// countingCompiler counts the compilations of an inner compiler.
type countingCompiler struct {
	ports.Compiler
	calls atomic.Int32
	last  atomic.Pointer[domain.CompileOptions]
}

func (c *countingCompiler) Compile(
	ctx context.Context,
	src domain.SourceUnit,
	opts domain.CompileOptions,
) (*domain.CompiledArtifact, error) {
	c.calls.Add(1)
	c.last.Store(&opts)
	return c.Compiler.Compile(ctx, src, opts)
}

type fixture struct {
	dir      string
	app      *app.App
	compiler *countingCompiler
	store    *cas.Store
	projects *mocks.MockProjectLoader
	settings *mocks.MockSettings
	runner   *mocks.MockProcessRunner
	watcher  *mocks.MockWatcher
	logger   *mocks.MockLogger
	stdout   bytes.Buffer
	stderr   bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	t.Chdir(dir)

	f := &fixture{
		dir:      dir,
		compiler: &countingCompiler{Compiler: esbuild.NewCompiler()},
		store:    cas.NewStoreWithPath(filepath.Join(dir, ".coil", "cache")),
		projects: mocks.NewMockProjectLoader(ctrl),
		settings: mocks.NewMockSettings(ctrl),
		runner:   mocks.NewMockProcessRunner(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.settings.EXPECT().NoCache().Return(false).AnyTimes()
	f.settings.EXPECT().CacheDir().Return(f.store.Root()).AnyTimes()
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	registry := loader.NewRegistry()
	tracer := telemetry.NewNoOpTracer()
	primary := loader.New(registry, f.compiler, f.store, f.settings, tracer, f.logger)
	rewriter := spawn.NewRewriter(f.settings, spawn.WithExecutable(func() (string, error) {
		return "/usr/local/bin/coil", nil
	}))

	f.app = app.New(f.projects, primary, registry, rewriter, f.runner, f.store, f.settings, tracer, f.logger, f.watcher).
		WithOutput(&f.stdout, &f.stderr)
	return f
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return name
}

func TestApp_Compile_UsesCache(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	main := f.write(t, "main.ts", "const n: number = 1;\nexport default n;\n")

	require.NoError(t, f.app.Compile(context.Background(), main, app.CompileOptions{}))
	first := f.stdout.String()
	f.stdout.Reset()
	require.NoError(t, f.app.Compile(context.Background(), main, app.CompileOptions{}))

	assert.Equal(t, int32(1), f.compiler.calls.Load())
	assert.Equal(t, first, f.stdout.String())
	assert.Contains(t, first, "sourceMappingURL=data:")
	assert.NotContains(t, first, ": number")
}

func TestApp_Compile_DirectOptions(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	main := f.write(t, "main.ts", "export const x: string = 'y';\n")

	err := f.app.Compile(context.Background(), main, app.CompileOptions{NoBare: true, MapFile: "main.js.map"})
	require.NoError(t, err)

	opts := f.compiler.last.Load()
	require.NotNil(t, opts)
	assert.False(t, opts.Bare)
	assert.False(t, opts.InlineSourceMap)

	m, err := os.ReadFile(filepath.Join(f.dir, "main.js.map"))
	require.NoError(t, err)
	assert.Contains(t, string(m), `"mappings"`)
	assert.NotContains(t, f.stdout.String(), "sourceMappingURL=data:")

	entries, err := f.store.Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApp_Compile_Unregistered(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	f.write(t, "script.py", "print(1)")

	err := f.app.Compile(context.Background(), "script.py", app.CompileOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrUnregisteredExtension.Error())
}

func TestApp_Compile_CompileError(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	bad := f.write(t, "bad.ts", "const = 1;\n")

	err := f.app.Compile(context.Background(), bad, app.CompileOptions{})
	var ce *domain.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Line)
	assert.Empty(t, f.stdout.String())
}

func TestApp_ProjectConfigurationFailure(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(nil, domain.ErrConfigParseFailed)

	err := f.app.Compile(context.Background(), "main.ts", app.CompileOptions{})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)

	_, err = f.app.Warm(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestApp_Warm(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	f.write(t, "a.ts", "export const a = 1;")
	f.write(t, "src/b.tsx", "export const b = <div/>;")
	f.write(t, "notes.txt", "not source")
	f.write(t, "node_modules/dep/index.ts", "export const skipped = true;")
	f.write(t, ".coil/cache/stale.ts", "export const skipped = true;")

	report, err := f.app.Warm(context.Background(), []string{"."})
	require.NoError(t, err)
	assert.Equal(t, app.WarmReport{Compiled: 2}, report)

	report, err = f.app.Warm(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, app.WarmReport{Hits: 2}, report)
	assert.Equal(t, int32(2), f.compiler.calls.Load())
}

func TestApp_Warm_ContinuesPastFailures(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	f.logger.EXPECT().Error(gomock.Any()).Times(1)
	f.write(t, "good.ts", "export const ok = true;")
	f.write(t, "bad.ts", "export const = ;")

	report, err := f.app.Warm(context.Background(), []string{"."})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrWarmFailed.Error())
	assert.Equal(t, app.WarmReport{Compiled: 1, Failed: 1}, report)
}

func TestApp_ProjectCompilers(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{
		Extensions: []string{".mts"},
		Compilers: []ports.CompilerSpec{{
			Name:       "upper",
			Extensions: []string{".up", ".up.txt"},
			Command:    []string{"tr", "a-z", "A-Z"},
		}},
	}, nil)
	f.write(t, "shout.up.txt", "hello\n")
	f.write(t, "plain.tsx", "export default 1;")

	require.NoError(t, f.app.Compile(context.Background(), "shout.up.txt", app.CompileOptions{}))
	assert.Equal(t, "HELLO\n", f.stdout.String())

	// .tsx is only a default extension; the project replaced the defaults.
	err := f.app.Compile(context.Background(), "plain.tsx", app.CompileOptions{})
	require.Error(t, err)
}

func TestApp_Compile_MapFromCompilerWithoutMaps(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{
		Compilers: []ports.CompilerSpec{{
			Name:       "upper",
			Extensions: []string{".up"},
			Command:    []string{"tr", "a-z", "A-Z"},
		}},
	}, nil)
	f.write(t, "shout.up", "hello\n")

	err := f.app.Compile(context.Background(), "shout.up", app.CompileOptions{MapFile: "shout.js.map"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrSourceMapUnsupported.Error())

	assert.NoFileExists(t, filepath.Join(f.dir, "shout.js.map"))
	assert.Empty(t, f.stdout.String())
}

func TestApp_ConfigureExtensions(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	f.app.Configure(app.Options{Extensions: []string{"es6"}})
	f.write(t, "legacy.es6", "export const v = 1;")

	require.NoError(t, f.app.Compile(context.Background(), "legacy.es6", app.CompileOptions{}))
	assert.Contains(t, f.stdout.String(), "v = 1")
}

func TestApp_Configure(t *testing.T) {
	f := newFixture(t)
	f.settings.EXPECT().Set(config.KeyNoCache, true)
	f.settings.EXPECT().Set(config.KeyCacheDir, "/tmp/cache")
	f.settings.EXPECT().Set(config.KeyLogFormat, "json")
	f.settings.EXPECT().LogFormat().Return("json").AnyTimes()

	f.app.Configure(app.Options{NoCache: true, CacheDir: "/tmp/cache", JSON: true})
}

func TestApp_StatsAndClean(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	f.write(t, "a.ts", "export const a = 1;")
	f.write(t, "b.ts", "export const b = 2;")

	_, err := f.app.Warm(context.Background(), nil)
	require.NoError(t, err)

	stats, err := f.app.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Positive(t, stats.TotalSize)

	require.NoError(t, f.app.Clean(context.Background()))

	stats, err = f.app.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.CacheStats{}, stats)
}

func TestApp_Run(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	f.write(t, "greet.ts", "export const greet = (name: string): string => `hi ${name}`;\n")
	main := f.write(t, "main.ts", `
import { greet } from "./greet";
console.log(greet(process.argv[2]));
`)

	require.NoError(t, f.app.Run(context.Background(), main, []string{"coil"}))
	assert.Equal(t, "hi coil\n", f.stdout.String())
}

func TestApp_Run_ForkRewritesSourceTargets(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	f.settings.EXPECT().Runner().Return("").AnyTimes()
	f.runner.EXPECT().Run(gomock.Any(), domain.SpawnRequest{
		Path: "/usr/local/bin/coil",
		Args: []string{"worker.ts", "--id", "1"},
	}, gomock.Any(), gomock.Any()).Return(0, nil)

	main := f.write(t, "main.ts", `
import { fork } from "child_process";
const code: number = fork("worker.ts", ["--id", "1"]);
console.log("exit", code);
`)

	require.NoError(t, f.app.Run(context.Background(), main, nil))
	assert.Equal(t, "exit 0\n", f.stdout.String())
}

func TestApp_Run_NoEntry(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.app.Run(context.Background(), "", nil), domain.ErrNoEntrySpecified)
}

func TestApp_Watch(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(f.dir).Return(&ports.Project{}, nil)
	main := f.write(t, "main.ts", "export const v = 1;")

	events := func(yield func(ports.WatchEvent) bool) {
		f.write(t, "main.ts", "export const v = 2;")
		for _, ev := range []ports.WatchEvent{
			{Path: main, Operation: ports.OpWrite},
			{Path: "notes.md", Operation: ports.OpWrite},
			{Path: main, Operation: ports.OpRemove},
		} {
			if !yield(ev) {
				return
			}
		}
	}

	f.watcher.EXPECT().Start(gomock.Any(), ".").Return(nil)
	f.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](events))
	f.watcher.EXPECT().Stop().Return(nil)

	require.NoError(t, f.app.Watch(context.Background(), "."))

	assert.Eventually(t, func() bool {
		return f.compiler.calls.Load() == 2
	}, 5*time.Second, 10*time.Millisecond)
}

// closingStore records Close calls on a cache store.
type closingStore struct {
	ports.CacheStore
	closed int
}

func (s *closingStore) Close() error {
	s.closed++
	return nil
}

func TestComponents_ShutdownClosesStore(t *testing.T) {
	f := newFixture(t)
	store := &closingStore{CacheStore: f.store}
	tracer := telemetry.NewNoOpTracer()
	a := app.New(f.projects, nil, loader.NewRegistry(), nil, f.runner, store, f.settings, tracer, f.logger, f.watcher)

	require.NoError(t, app.NewComponents(a, f.logger, tracer).Shutdown(context.Background()))
	assert.Equal(t, 1, store.closed)
}
