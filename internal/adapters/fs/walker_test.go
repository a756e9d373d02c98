package fs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/coil/internal/adapters/fs"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}
}

func collect(t *testing.T, w *fs.Walker, root string, match func(string) bool) []string {
	t.Helper()
	var out []string
	for path, err := range w.WalkFiles(root, match) {
		require.NoError(t, err)
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestWalker_WalkFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a.ts",
		"b.txt",
		"src/c.ts",
		".git/d.ts",
		"node_modules/pkg/e.ts",
		"src/.coil/f.ts",
	)

	w := fs.NewWalker(fs.DefaultSkips...)

	t.Run("all files", func(t *testing.T) {
		assert.Equal(t, []string{"a.ts", "b.txt", "src/c.ts"}, collect(t, w, root, nil))
	})

	t.Run("matching files", func(t *testing.T) {
		got := collect(t, w, root, func(p string) bool { return strings.HasSuffix(p, ".ts") })
		assert.Equal(t, []string{"a.ts", "src/c.ts"}, got)
	})

	t.Run("glob skips", func(t *testing.T) {
		got := collect(t, fs.NewWalker("sr*", ".git", "node_modules"), root, nil)
		assert.Equal(t, []string{"a.ts", "b.txt"}, got)
	})
}

func TestWalker_RootNotSkipped(t *testing.T) {
	root := filepath.Join(t.TempDir(), "node_modules")
	writeTree(t, root, "x.ts")

	got := collect(t, fs.NewWalker(fs.DefaultSkips...), root, nil)
	assert.Equal(t, []string{"x.ts"}, got)
}

func TestWalker_EarlyStop(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts", "b.ts", "c.ts")

	var n int
	for _, err := range fs.NewWalker().WalkFiles(root, nil) {
		require.NoError(t, err)
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestWalker_MissingRoot(t *testing.T) {
	var errs []error
	for _, err := range fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing"), nil) {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], os.ErrNotExist)
}
