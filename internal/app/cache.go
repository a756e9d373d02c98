package app

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
)

// describer is implemented by stores that can name their location.
type describer interface {
	Describe() string
}

// Stats summarises the cache entries.
func (a *App) Stats(ctx context.Context) (domain.CacheStats, error) {
	lister, ok := a.store.(ports.CacheLister)
	if !ok {
		return domain.CacheStats{}, domain.ErrOperationUnsupported
	}

	entries, err := lister.Entries(ctx)
	if err != nil {
		return domain.CacheStats{}, zerr.Wrap(err, domain.ErrStoreListFailed.Error())
	}

	stats := domain.Summarize(entries)
	a.logger.Info(fmt.Sprintf("%s entries, %s in %s",
		humanize.Comma(int64(stats.Entries)),
		humanize.Bytes(uint64(stats.TotalSize)), //nolint:gosec // sizes are never negative
		a.location(),
	))
	return stats, nil
}

// Clean removes every cache entry.
func (a *App) Clean(ctx context.Context) error {
	purger, ok := a.store.(ports.CachePurger)
	if !ok {
		return domain.ErrOperationUnsupported
	}

	a.logger.Info("removing cache entries in " + a.location() + "...")
	if err := purger.Purge(ctx); err != nil {
		return zerr.Wrap(err, domain.ErrStorePurgeFailed.Error())
	}
	a.logger.Info("removed cache entries")
	return nil
}

func (a *App) location() string {
	if d, ok := a.store.(describer); ok {
		return d.Describe()
	}
	return a.settings.CacheDir()
}
