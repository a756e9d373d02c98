// Package domain contains the core types of the compile cache.
package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SourceUnit is the raw content of one module file.
// It is created per load request and never mutated.
type SourceUnit struct {
	Path    string
	Content []byte
}

// Ext returns the extension of the unit's path, including the leading dot.
func (s SourceUnit) Ext() string {
	return filepath.Ext(s.Path)
}

// CacheKey identifies a compiled artifact by the content it was compiled
// from. Keys of loaders whose output differs for the same bytes carry a
// variant prefix, "<variant>-<hash>".
type CacheKey string

// cacheKeyLen is the length of a rendered xxHash64 digest.
const cacheKeyLen = 16

// NewCacheKey computes the cache key for the given source content.
// Identical content always yields the identical key.
func NewCacheKey(content []byte) CacheKey {
	return CacheKey(fmt.Sprintf("%016x", xxhash.Sum64(content)))
}

// WithVariant namespaces k by a compile variant such as "esbuild-tsx".
// Characters outside [a-z0-9_-] are replaced by '_'. A blank variant
// returns k unchanged.
func (k CacheKey) WithVariant(variant string) CacheKey {
	variant = strings.Trim(strings.Map(variantRune, strings.ToLower(variant)), "-")
	if variant == "" {
		return k
	}
	return CacheKey(variant + "-" + string(k))
}

func variantRune(r rune) rune {
	if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
		return r
	}
	return '_'
}

// String returns the rendered key.
func (k CacheKey) String() string {
	return string(k)
}

// FileName returns the name of the cache entry for the key, e.g. "<key>.js".
func (k CacheKey) FileName() string {
	return string(k) + ArtifactExt
}

// Valid reports whether k looks like a key produced by NewCacheKey,
// optionally namespaced by WithVariant.
func (k CacheKey) Valid() bool {
	s := string(k)
	if len(s) < cacheKeyLen {
		return false
	}
	hash := s[len(s)-cacheKeyLen:]
	for _, r := range hash {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	if len(s) == cacheKeyLen {
		return true
	}

	variant, ok := strings.CutSuffix(s[:len(s)-cacheKeyLen], "-")
	if !ok || variant == "" || strings.HasPrefix(variant, "-") {
		return false
	}
	for _, r := range variant {
		if variantRune(r) != r {
			return false
		}
	}
	return true
}

// CacheKeyFromFileName parses an entry file name back into its key.
// It returns false for anything that is not "<key>.js".
func CacheKeyFromFileName(name string) (CacheKey, bool) {
	base, ok := strings.CutSuffix(name, ArtifactExt)
	if !ok {
		return "", false
	}
	key := CacheKey(base)
	if !key.Valid() {
		return "", false
	}
	return key, true
}
