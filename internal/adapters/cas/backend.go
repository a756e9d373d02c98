package cas

import (
	"context"
	"io"
	"sync"

	"go.trai.ch/coil/internal/adapters/config"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.CacheStore  = (*Backend)(nil)
	_ ports.CacheLister = (*Backend)(nil)
	_ ports.CachePurger = (*Backend)(nil)
	_ io.Closer         = (*Backend)(nil)
)

// Backend opens the store named by the settings on first use and delegates
// to it afterwards.
type Backend struct {
	settings ports.Settings

	mu    sync.Mutex
	store ports.CacheStore
}

// NewBackend creates a Backend for the given settings.
func NewBackend(settings ports.Settings) *Backend {
	return &Backend{settings: settings}
}

// Open returns the underlying store, connecting to it if necessary.
// A failed open is retried on the next call.
func (b *Backend) Open(ctx context.Context) (ports.CacheStore, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.store != nil {
		return b.store, nil
	}

	store, err := open(ctx, b.settings)
	if err != nil {
		return nil, err
	}
	b.store = store
	return store, nil
}

// Close releases the connection held by the opened store, if any. The next
// use opens the store again.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	store := b.store
	b.store = nil
	if c, ok := store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func open(ctx context.Context, settings ports.Settings) (ports.CacheStore, error) {
	switch name := settings.Backend(); name {
	case config.BackendFS, "":
		return NewStore(settings.CacheDir), nil
	case config.BackendRedis:
		return NewRedisStore(ctx, settings.RedisURL())
	case config.BackendS3:
		bucket, prefix, region := settings.S3()
		return NewS3Store(ctx, bucket, prefix, region)
	default:
		return nil, zerr.With(domain.ErrUnsupportedBackend, "backend", name)
	}
}

// Exists reports whether an entry for key is present.
func (b *Backend) Exists(ctx context.Context, key domain.CacheKey) (bool, error) {
	store, err := b.Open(ctx)
	if err != nil {
		return false, err
	}
	return store.Exists(ctx, key)
}

// Read returns the entry for key.
func (b *Backend) Read(ctx context.Context, key domain.CacheKey) (*domain.CompiledArtifact, error) {
	store, err := b.Open(ctx)
	if err != nil {
		return nil, err
	}
	return store.Read(ctx, key)
}

// Write persists the artifact under key.
func (b *Backend) Write(ctx context.Context, key domain.CacheKey, artifact *domain.CompiledArtifact) error {
	store, err := b.Open(ctx)
	if err != nil {
		return err
	}
	return store.Write(ctx, key, artifact)
}

// Entries lists the entries if the underlying store supports it.
func (b *Backend) Entries(ctx context.Context) ([]domain.EntryInfo, error) {
	store, err := b.Open(ctx)
	if err != nil {
		return nil, err
	}
	lister, ok := store.(ports.CacheLister)
	if !ok {
		return nil, zerr.With(domain.ErrOperationUnsupported, "backend", b.settings.Backend())
	}
	return lister.Entries(ctx)
}

// Purge drops every entry if the underlying store supports it.
func (b *Backend) Purge(ctx context.Context) error {
	store, err := b.Open(ctx)
	if err != nil {
		return err
	}
	purger, ok := store.(ports.CachePurger)
	if !ok {
		return zerr.With(domain.ErrOperationUnsupported, "backend", b.settings.Backend())
	}
	return purger.Purge(ctx)
}

// Describe returns a human readable location of the store.
func (b *Backend) Describe() string {
	switch b.settings.Backend() {
	case config.BackendRedis:
		return "redis " + b.settings.RedisURL()
	case config.BackendS3:
		bucket, prefix, _ := b.settings.S3()
		return "s3://" + bucket + "/" + prefix
	default:
		return b.settings.CacheDir()
	}
}
