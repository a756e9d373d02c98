// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/coil/internal/core/domain"
)

// CacheStore maps content-hash keys to previously compiled output.
//
//go:generate mockgen -source=cache_store.go -destination=mocks/mock_cache_store.go -package=mocks
type CacheStore interface {
	// Exists reports whether an entry for key is present.
	Exists(ctx context.Context, key domain.CacheKey) (bool, error)

	// Read returns the artifact stored under key.
	// It returns domain.ErrCacheMiss if the entry is absent.
	Read(ctx context.Context, key domain.CacheKey) (*domain.CompiledArtifact, error)

	// Write persists the artifact under key. Writing the same key twice with
	// equal content has no further effect.
	Write(ctx context.Context, key domain.CacheKey, artifact *domain.CompiledArtifact) error
}

// CacheLister is implemented by stores that can enumerate their entries.
type CacheLister interface {
	Entries(ctx context.Context) ([]domain.EntryInfo, error)
}

// CachePurger is implemented by stores that can drop every entry.
type CachePurger interface {
	Purge(ctx context.Context) error
}
