package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheMiss is returned when a requested entry is not in the cache store.
	ErrCacheMiss = zerr.New("cache miss")

	// ErrCompileFailed is matched by every *CompileError.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrSourceReadFailed is returned when a module source cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read module source")

	// ErrStoreCreateFailed is returned when the cache directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create cache directory")

	// ErrStoreReadFailed is returned when a cache entry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cache entry")

	// ErrStoreWriteFailed is returned when a cache entry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cache entry")

	// ErrStoreListFailed is returned when the cache entries cannot be listed.
	ErrStoreListFailed = zerr.New("failed to list cache entries")

	// ErrStorePurgeFailed is returned when the cache cannot be purged.
	ErrStorePurgeFailed = zerr.New("failed to purge cache")

	// ErrUnsupportedBackend is returned for an unknown cache backend name.
	ErrUnsupportedBackend = zerr.New("unsupported cache backend, expected 'fs', 'redis' or 's3'")

	// ErrOperationUnsupported is returned when a backend cannot list or purge.
	ErrOperationUnsupported = zerr.New("operation not supported by cache backend")

	// ErrMissingBackendConfig is returned when a backend lacks required settings.
	ErrMissingBackendConfig = zerr.New("missing cache backend configuration")

	// ErrUnregisteredExtension is returned when no handler serves a path.
	ErrUnregisteredExtension = zerr.New("no loader registered for extension")

	// ErrCompilerStartFailed is returned when an external compiler cannot be started.
	ErrCompilerStartFailed = zerr.New("failed to start compiler")

	// ErrInvalidCompilerConfig is returned for a compiler entry without a command or extensions.
	ErrInvalidCompilerConfig = zerr.New("invalid compiler configuration")

	// ErrConfigReadFailed is returned when the project file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the project file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoEntrySpecified is returned when run is invoked without a module.
	ErrNoEntrySpecified = zerr.New("no entry module specified")

	// ErrScriptFailed is returned when a module throws while being evaluated.
	ErrScriptFailed = zerr.New("script execution failed")

	// ErrSpawnFailed is returned when a child process cannot be started.
	ErrSpawnFailed = zerr.New("failed to spawn child process")

	// ErrRunnerNotFound is returned when the runner binary cannot be determined.
	ErrRunnerNotFound = zerr.New("failed to determine runner binary")

	// ErrWarmFailed is returned when one or more files failed to precompile.
	ErrWarmFailed = zerr.New("failed to warm cache")

	// ErrSourceMapUnsupported is returned when an external source map is
	// requested from a compiler that does not produce one.
	ErrSourceMapUnsupported = zerr.New("compiler does not produce an external source map")

	// ErrWatchFailed is returned when a directory cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch directory")
)
