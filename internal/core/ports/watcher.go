package ports

import (
	"context"
	"iter"
)

// WatchOp is the kind of change reported for a path.
type WatchOp uint8

// Watch operations. Only creates and writes trigger a recompile.
const (
	OpCreate WatchOp = iota
	OpWrite
	OpRemove
	OpRename
)

// WatchEvent is a single change below the watched root.
type WatchEvent struct {
	Path      string
	Operation WatchOp
}

// Watcher reports source changes so the cache can be kept warm.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root and every directory below it, except the ones
	// the cache never compiles from.
	Start(ctx context.Context, root string) error
	Stop() error
	// Events yields changes until the watcher stops.
	Events() iter.Seq[WatchEvent]
}
