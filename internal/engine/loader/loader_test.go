package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/coil/internal/adapters/esbuild"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/coil/internal/core/ports/mocks"
	"go.trai.ch/coil/internal/engine/loader"
	"go.uber.org/mock/gomock"
)

// memStore is an in-memory CacheStore that counts reads and writes.
// Exists and Read both count as reads.
type memStore struct {
	mu      sync.Mutex
	entries map[domain.CacheKey][]byte
	reads   int
	writes  int
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[domain.CacheKey][]byte)}
}

func (s *memStore) Exists(_ context.Context, key domain.CacheKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	_, ok := s.entries[key]
	return ok, nil
}

func (s *memStore) Read(_ context.Context, key domain.CacheKey) (*domain.CompiledArtifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	code, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return &domain.CompiledArtifact{Code: code}, nil
}

func (s *memStore) Write(_ context.Context, key domain.CacheKey, artifact *domain.CompiledArtifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = artifact.Code
	s.writes++
	return nil
}

// countingCompiler prefixes the source with a marker and counts invocations.
type countingCompiler struct {
	calls atomic.Int32
	err   error
}

func (c *countingCompiler) Name() string { return "counting" }

func (c *countingCompiler) Variant(domain.CompileOptions) string { return "counting" }

func (c *countingCompiler) Compile(
	_ context.Context,
	src domain.SourceUnit,
	opts domain.CompileOptions,
) (*domain.CompiledArtifact, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	if !opts.Bare || !opts.InlineSourceMap || opts.SourceFileName != src.Path {
		return nil, errors.New("unexpected compile options")
	}
	return &domain.CompiledArtifact{Code: append([]byte("compiled:"), src.Content...)}, nil
}

type fixture struct {
	registry *loader.Registry
	loader   *loader.Loader
	store    *memStore
	compiler *countingCompiler
	settings *mocks.MockSettings
	noCache  atomic.Bool
}

func newFixture(t *testing.T, opts ...loader.Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		registry: loader.NewRegistry(),
		store:    newMemStore(),
		compiler: &countingCompiler{},
		settings: mocks.NewMockSettings(ctrl),
	}
	f.settings.EXPECT().NoCache().DoAndReturn(f.noCache.Load).AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	f.loader = loader.New(f.registry, f.compiler, f.store, f.settings, tracer, log, opts...)
	return f
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	path := writeSource(t, "main.ts", "const a: number = 1")

	first, err := f.loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, loader.CacheMiss, first.Cache)

	second, err := f.loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, loader.CacheHit, second.Cache)

	assert.Equal(t, first.Artifact.Code, second.Artifact.Code)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, int32(1), f.compiler.calls.Load(), "second load must not compile")
	assert.Equal(t, 1, f.store.writes)
}

func TestLoad_ContentSensitivity(t *testing.T) {
	f := newFixture(t)
	path := writeSource(t, "main.ts", "let x = 1")

	before, err := f.loader.Load(context.Background(), path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("let x = 2"), 0o600))

	after, err := f.loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.NotEqual(t, before.Key, after.Key)
	assert.Equal(t, loader.CacheMiss, after.Cache)
	assert.Equal(t, "compiled:let x = 2", string(after.Artifact.Code))
	assert.Equal(t, int32(2), f.compiler.calls.Load())
}

func TestLoad_SameContentDifferentPathSharesEntry(t *testing.T) {
	f := newFixture(t)
	a := writeSource(t, "a.ts", "export {}")
	b := writeSource(t, "b.ts", "export {}")

	_, err := f.loader.Load(context.Background(), a)
	require.NoError(t, err)
	res, err := f.loader.Load(context.Background(), b)
	require.NoError(t, err)

	assert.Equal(t, loader.CacheHit, res.Cache)
	assert.Len(t, f.store.entries, 1)
}

func TestLoad_BypassRecompilesAndRefreshes(t *testing.T) {
	f := newFixture(t)
	path := writeSource(t, "main.ts", "console.log(1)")

	_, err := f.loader.Load(context.Background(), path)
	require.NoError(t, err)
	reads := f.store.reads

	// Toggled between loads without rebuilding the loader.
	f.noCache.Store(true)

	res, err := f.loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, loader.CacheBypass, res.Cache)

	res, err = f.loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, loader.CacheBypass, res.Cache)

	assert.Equal(t, int32(3), f.compiler.calls.Load())
	assert.Equal(t, 3, f.store.writes, "bypass still persists fresh output")
	assert.Equal(t, reads, f.store.reads, "bypass never reads from the store")

	f.noCache.Store(false)
	res, err = f.loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, loader.CacheHit, res.Cache)
}

func TestLoad_CompileErrorPropagatesWithoutWrite(t *testing.T) {
	f := newFixture(t)
	f.compiler.err = &domain.CompileError{File: "bad.ts", Line: 3, Column: 7, Message: "Expected \";\""}
	path := writeSource(t, "bad.ts", "let = ")

	_, err := f.loader.Load(context.Background(), path)
	require.Error(t, err)

	var compileErr *domain.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, 3, compileErr.Line)
	assert.Equal(t, 7, compileErr.Column)
	assert.ErrorIs(t, err, domain.ErrCompileFailed)
	assert.Empty(t, f.store.entries)
}

func TestLoad_MissingSource(t *testing.T) {
	f := newFixture(t)

	_, err := f.loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.ts"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, int32(0), f.compiler.calls.Load())
}

func TestLoad_EntryRemovedBetweenExistsAndRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	settings := mocks.NewMockSettings(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	log := mocks.NewMockLogger(ctrl)
	compiler := &countingCompiler{}

	span.EXPECT().End().AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), span).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	settings.EXPECT().NoCache().Return(false)

	path := writeSource(t, "race.ts", "1")
	key := domain.NewCacheKey([]byte("1")).WithVariant("counting")

	gomock.InOrder(
		store.EXPECT().Exists(gomock.Any(), key).Return(true, nil),
		store.EXPECT().Read(gomock.Any(), key).Return(nil, domain.ErrCacheMiss),
		store.EXPECT().Write(gomock.Any(), key, gomock.Any()).Return(nil),
	)

	l := loader.New(loader.NewRegistry(), compiler, store, settings, tracer, log)
	res, err := l.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, loader.CacheMiss, res.Cache)
	assert.Equal(t, int32(1), compiler.calls.Load())
}

func TestLoad_StoreWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	settings := mocks.NewMockSettings(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	log := mocks.NewMockLogger(ctrl)

	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).Times(1)
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), span).AnyTimes()
	settings.EXPECT().NoCache().Return(true)

	diskFull := errors.New("no space left on device")
	store.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any()).Return(diskFull)

	l := loader.New(loader.NewRegistry(), &countingCompiler{}, store, settings, tracer, log)
	_, err := l.Load(context.Background(), writeSource(t, "x.ts", "x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, diskFull)
}

func TestLoadSource_ConcurrentLoadsShareOneEntry(t *testing.T) {
	f := newFixture(t)
	src := domain.SourceUnit{Path: "shared.ts", Content: []byte("export const n = 42")}

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			res, err := f.loader.LoadSource(context.Background(), src)
			assert.NoError(t, err)
			assert.Equal(t, "compiled:export const n = 42", string(res.Artifact.Code))
		})
	}
	wg.Wait()

	assert.LessOrEqual(t, f.compiler.calls.Load(), int32(16))
	assert.Equal(t, int(f.compiler.calls.Load()), f.store.writes)
	assert.Len(t, f.store.entries, 1)
}

func TestLoad_LoaderModesDoNotShareEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mocks.NewMockSettings(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	log := mocks.NewMockLogger(ctrl)

	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), span).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	settings.EXPECT().NoCache().Return(false).AnyTimes()

	store := newMemStore()
	registry := loader.NewRegistry()
	l := loader.New(registry, esbuild.NewCompiler(), store, settings, tracer, log)
	l.Register(".tsx", ".jsx")

	const jsx = "const el = <div/>;"
	dir := t.TempDir()
	tsx := filepath.Join(dir, "a.tsx")
	ts := filepath.Join(dir, "b.ts")
	require.NoError(t, os.WriteFile(tsx, []byte(jsx), 0o600))
	require.NoError(t, os.WriteFile(ts, []byte(jsx), 0o600))

	res, err := l.Load(context.Background(), tsx)
	require.NoError(t, err)
	assert.Contains(t, string(res.Artifact.Code), "createElement")

	_, err = l.Load(context.Background(), ts)
	require.Error(t, err, "TSX output must not be served for a .ts file")
	var compileErr *domain.CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, ts, compileErr.File)
	assert.Equal(t, 1, compileErr.Line)

	assert.Len(t, store.entries, 1)
	assert.Contains(t, store.entries, domain.NewCacheKey([]byte(jsx)).WithVariant("esbuild-tsx"))
}
