// Package cas implements the content-addressed stores for compiled artifacts.
package cas

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.CacheStore  = (*Store)(nil)
	_ ports.CacheLister = (*Store)(nil)
	_ ports.CachePurger = (*Store)(nil)
)

// Store keeps one file per entry, named "<key>.js", under a root directory.
// The root is resolved on every call and created on the first write.
type Store struct {
	root func() string
}

// NewStore creates a Store whose root is returned by root.
func NewStore(root func() string) *Store {
	return &Store{root: root}
}

// NewStoreWithPath creates a Store rooted at dir.
func NewStoreWithPath(dir string) *Store {
	return NewStore(func() string { return dir })
}

// Root returns the current cache directory.
func (s *Store) Root() string {
	return s.root()
}

// Exists reports whether an entry for key is present.
func (s *Store) Exists(_ context.Context, key domain.CacheKey) (bool, error) {
	info, err := os.Stat(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return info.Mode().IsRegular(), nil
}

// Read returns the entry for key, or domain.ErrCacheMiss.
func (s *Store) Read(_ context.Context, key domain.CacheKey) (*domain.CompiledArtifact, error) {
	//nolint:gosec // Path is constructed from the cache root and a hex key
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCacheMiss
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return &domain.CompiledArtifact{Code: data}, nil
}

// Write stores the artifact's code under key. The entry appears atomically:
// it is written to a temporary file in the same directory and renamed.
func (s *Store) Write(_ context.Context, key domain.CacheKey, artifact *domain.CompiledArtifact) error {
	dir := s.root()
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "dir", dir)
	}

	tmpFile, err := os.CreateTemp(dir, domain.TempFilePrefix+"*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(artifact.Code); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	if err := os.Rename(tmpName, filepath.Join(dir, key.FileName())); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// Entries lists the persisted entries. A missing root has no entries.
func (s *Store) Entries(_ context.Context) ([]domain.EntryInfo, error) {
	dirEntries, err := os.ReadDir(s.root())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreListFailed.Error())
	}

	infos := make([]domain.EntryInfo, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		key, ok := domain.CacheKeyFromFileName(de.Name())
		if !ok {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// Removed while listing.
			continue
		}
		infos = append(infos, domain.EntryInfo{
			Key:     key,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return infos, nil
}

// Purge removes every entry and leftover temporary file. Unrelated files in
// the directory are kept.
func (s *Store) Purge(_ context.Context) error {
	dir := s.root()
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, domain.ErrStorePurgeFailed.Error())
	}

	var errs error
	for _, de := range dirEntries {
		name := de.Name()
		_, isEntry := domain.CacheKeyFromFileName(name)
		if !isEntry && !strings.HasPrefix(name, domain.TempFilePrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrStorePurgeFailed.Error()), "file", name))
		}
	}
	return errs
}

func (s *Store) path(key domain.CacheKey) string {
	return filepath.Join(s.root(), key.FileName())
}
