package ports

// Settings exposes process-wide configuration.
// Implementations read the underlying source on every call, so a change to
// the environment is observed by the next load.
//
//go:generate mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type Settings interface {
	// CacheDir returns the absolute cache root.
	CacheDir() string
	// NoCache reports whether cache reads are bypassed.
	NoCache() bool
	// SourceMaps reports whether source-map aware error reporting is installed.
	SourceMaps() bool
	// Backend returns the cache backend name.
	Backend() string
	// RedisURL returns the connection URL of the redis backend.
	RedisURL() string
	// S3 returns the bucket, key prefix and region of the s3 backend.
	S3() (bucket, prefix, region string)
	// Runner returns the runner binary override, or "".
	Runner() string
	// LogFormat returns "pretty", "json" or "" when unset.
	LogFormat() string
	// Trace reports whether spans are exported to the log.
	Trace() bool
	// Set overrides a setting for the rest of the process.
	Set(key string, value any)
}
