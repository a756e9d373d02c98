package domain

import "time"

// CompileOptions configures a single compilation.
type CompileOptions struct {
	// SourceFileName identifies the origin of the source for diagnostics.
	SourceFileName string
	// Bare suppresses the wrapping boilerplate around the output.
	Bare bool
	// InlineSourceMap embeds the source map in the output.
	InlineSourceMap bool
}

// LoadOptions are the options the loader hook compiles with.
func LoadOptions(path string) CompileOptions {
	return CompileOptions{
		SourceFileName:  path,
		Bare:            true,
		InlineSourceMap: true,
	}
}

// CompiledArtifact is the compiled representation of a SourceUnit.
type CompiledArtifact struct {
	// Code is the compiled output text.
	Code []byte
	// SourceMap holds an external source map. It is empty when the map is
	// inlined into Code or was not requested.
	SourceMap []byte
}

// EntryInfo describes one persisted cache entry.
type EntryInfo struct {
	Key     CacheKey
	Size    int64
	ModTime time.Time
}

// CacheStats summarises the entries of a cache store.
type CacheStats struct {
	Entries   int
	TotalSize int64
}

// Summarize folds entry infos into stats.
func Summarize(entries []EntryInfo) CacheStats {
	stats := CacheStats{Entries: len(entries)}
	for _, e := range entries {
		stats.TotalSize += e.Size
	}
	return stats
}
