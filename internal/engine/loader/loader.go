package loader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Cache outcomes recorded on the load span.
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheBypass = "bypass"
)

// Span attribute keys.
const (
	AttrPath  = "coil.path"
	AttrKey   = "coil.key"
	AttrCache = "coil.cache"
)

// Result is the outcome of a single load.
type Result struct {
	Artifact *domain.CompiledArtifact
	Key      domain.CacheKey
	Cache    string
}

// Loader compiles registered source files through the cache store.
type Loader struct {
	registry *Registry
	compiler ports.Compiler
	store    ports.CacheStore
	settings ports.Settings
	tracer   ports.Tracer
	logger   ports.Logger

	primary string
	group   singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithPrimaryExtension sets the extension that Register always installs.
func WithPrimaryExtension(ext string) Option {
	return func(l *Loader) {
		l.primary = NormalizeExtension(ext)
	}
}

// New creates a Loader. The primary extension defaults to domain.PrimaryExtension.
func New(
	registry *Registry,
	compiler ports.Compiler,
	store ports.CacheStore,
	settings ports.Settings,
	tracer ports.Tracer,
	logger ports.Logger,
	opts ...Option,
) *Loader {
	l := &Loader{
		registry: registry,
		compiler: compiler,
		store:    store,
		settings: settings,
		tracer:   tracer,
		logger:   logger,
		primary:  domain.PrimaryExtension,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// PrimaryExtension returns the extension Register always installs.
func (l *Loader) PrimaryExtension() string {
	return l.primary
}

// Compiler returns the compiler behind the loader.
func (l *Loader) Compiler() ports.Compiler {
	return l.compiler
}

// Register installs the loader for its primary extension and every given
// extension. Blank extensions are ignored. Registering again replaces the
// previous handler for each extension.
func (l *Loader) Register(extensions ...string) *Hook {
	exts := []string{l.primary}
	for _, ext := range extensions {
		if ext = NormalizeExtension(ext); ext != "" && ext != l.primary {
			exts = append(exts, ext)
		}
	}

	for _, ext := range exts {
		l.registry.Install(ext, l.Handle)
	}

	return &Hook{loader: l, extensions: exts}
}

// Handle is the LoadHandler installed into the registry.
func (l *Loader) Handle(ctx context.Context, path string) (*domain.CompiledArtifact, error) {
	res, err := l.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return res.Artifact, nil
}

// Load reads path, hashes its content and returns the cached artifact for
// that hash and the compiler's variant, compiling and persisting it on a miss.
// The bypass setting is read on every call.
func (l *Loader) Load(ctx context.Context, path string) (*Result, error) {
	ctx, span := l.tracer.Start(ctx, "loader.load")
	defer span.End()
	span.SetAttribute(AttrPath, path)

	content, err := os.ReadFile(path) //nolint:gosec // path is the module being loaded
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
		span.RecordError(err)
		return nil, err
	}

	res, err := l.LoadSource(ctx, domain.SourceUnit{Path: path, Content: content})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute(AttrKey, res.Key.String())
	span.SetAttribute(AttrCache, res.Cache)
	return res, nil
}

// LoadSource runs the cache pipeline for an already read source unit.
func (l *Loader) LoadSource(ctx context.Context, src domain.SourceUnit) (*Result, error) {
	key := domain.NewCacheKey(src.Content).WithVariant(l.compiler.Variant(domain.LoadOptions(src.Path)))
	bypass := l.settings.NoCache()

	// Concurrent loads of identical content and variant share one pipeline
	// run. The bypass flag is part of the flight key so a forced recompile
	// never reuses a cache read in flight.
	flight := key.String()
	if bypass {
		flight += "!"
	}

	v, err, _ := l.group.Do(flight, func() (any, error) {
		return l.load(ctx, src, key, bypass)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (l *Loader) load(ctx context.Context, src domain.SourceUnit, key domain.CacheKey, bypass bool) (*Result, error) {
	if !bypass {
		artifact, err := l.lookup(ctx, key)
		if err != nil {
			return nil, zerr.With(err, "path", src.Path)
		}
		if artifact != nil {
			l.logger.Debug(fmt.Sprintf("cache hit %s (%s)", src.Path, key))
			return &Result{Artifact: artifact, Key: key, Cache: CacheHit}, nil
		}
	}

	artifact, err := l.compile(ctx, src)
	if err != nil {
		return nil, err
	}

	if err := l.store.Write(ctx, key, artifact); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", src.Path)
	}

	outcome := CacheMiss
	if bypass {
		outcome = CacheBypass
	}
	l.logger.Debug(fmt.Sprintf("compiled %s (%s, %s)", src.Path, key, outcome))

	return &Result{Artifact: artifact, Key: key, Cache: outcome}, nil
}

// lookup returns the stored artifact for key, or nil when there is none.
func (l *Loader) lookup(ctx context.Context, key domain.CacheKey) (*domain.CompiledArtifact, error) {
	ok, err := l.store.Exists(ctx, key)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	if !ok {
		return nil, nil
	}

	artifact, err := l.store.Read(ctx, key)
	if errors.Is(err, domain.ErrCacheMiss) {
		// Removed between Exists and Read.
		return nil, nil
	}
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return artifact, nil
}

func (l *Loader) compile(ctx context.Context, src domain.SourceUnit) (*domain.CompiledArtifact, error) {
	ctx, span := l.tracer.Start(ctx, "loader.compile")
	defer span.End()
	span.SetAttribute("coil.compiler", l.compiler.Name())

	artifact, err := l.compiler.Compile(ctx, src, domain.LoadOptions(src.Path))
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "path", src.Path)
	}
	return artifact, nil
}
