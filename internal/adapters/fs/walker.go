// Package fs walks source trees for the cache commands.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// DefaultSkips are directory names never descended into.
var DefaultSkips = []string{".git", ".jj", ".coil", "node_modules"}

// Walker yields files under a root, skipping ignored directories.
type Walker struct {
	skips []string
}

// NewWalker creates a Walker that skips directories matching any of the
// given glob patterns.
func NewWalker(skips ...string) *Walker {
	return &Walker{skips: skips}
}

// WalkFiles yields every file under root accepted by match. The root
// itself is never skipped. A walk error is yielded once and ends the walk.
func (w *Walker) WalkFiles(root string, match func(string) bool) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && w.skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if match != nil && !match(path) {
				return nil
			}
			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

func (w *Walker) skipDir(name string) bool {
	for _, pattern := range w.skips {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
