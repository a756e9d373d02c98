package domain

import "path/filepath"

const (
	// CoilDirName is the name of the per-project working directory.
	CoilDirName = ".coil"

	// CacheDirName is the name of the compile cache directory.
	CacheDirName = "cache"

	// ProjectFileName is the name of the project configuration file.
	ProjectFileName = "coil.yaml"

	// ArtifactExt is the extension of compiled cache entries.
	ArtifactExt = ".js"

	// PrimaryExtension is the canonical source extension, always registered.
	PrimaryExtension = ".ts"

	// TempFilePrefix marks in-flight entry writes inside the cache directory.
	TempFilePrefix = ".tmp-"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultExtensions are registered with the primary loader in addition to
// PrimaryExtension when no project file overrides them.
var DefaultExtensions = []string{".tsx", ".jsx", ".mts", ".cts"}

// DefaultCachePath returns the default cache root relative to the working directory.
// It joins .coil and cache.
func DefaultCachePath() string {
	return filepath.Join(CoilDirName, CacheDirName)
}
