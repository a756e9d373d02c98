// Package config provides the environment settings and the project file
// loader for coil.
package config

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
)

// Setting keys.
const (
	KeyCacheDir   = "cache_dir"
	KeyNoCache    = "no_cache"
	KeySourceMaps = "source_maps"
	KeyBackend    = "cache.backend"
	KeyRedisURL   = "redis.url"
	KeyS3Bucket   = "s3.bucket"
	KeyS3Prefix   = "s3.prefix"
	KeyS3Region   = "s3.region"
	KeyRunner     = "runner"
	KeyLogFormat  = "log.format"
	KeyTrace      = "trace"
)

// Cache backend names.
const (
	BackendFS    = "fs"
	BackendRedis = "redis"
	BackendS3    = "s3"
)

// envBindings lists the environment variables of every key, in priority order.
var envBindings = map[string][]string{
	KeyCacheDir:   {"COIL_CACHE_DIR"},
	KeyNoCache:    {"COIL_NO_CACHE"},
	KeySourceMaps: {"COIL_SOURCE_MAPS", "SOURCE_MAPS", "SOURCE_MAP"},
	KeyBackend:    {"COIL_CACHE_BACKEND"},
	KeyRedisURL:   {"COIL_REDIS_URL"},
	KeyS3Bucket:   {"COIL_S3_BUCKET"},
	KeyS3Prefix:   {"COIL_S3_PREFIX"},
	KeyS3Region:   {"COIL_S3_REGION"},
	KeyRunner:     {"COIL_RUNNER"},
	KeyLogFormat:  {"COIL_LOG_FORMAT"},
	KeyTrace:      {"COIL_TRACE"},
}

var _ ports.Settings = (*Settings)(nil)

// Settings implements ports.Settings on top of viper.
// Bound environment variables are looked up on every access.
type Settings struct {
	v *viper.Viper
}

// NewSettings creates Settings bound to the process environment.
func NewSettings() *Settings {
	v := viper.New()
	for key, names := range envBindings {
		args := append([]string{key}, names...)
		_ = v.BindEnv(args...)
	}

	v.SetDefault(KeyBackend, BackendFS)
	v.SetDefault(KeyS3Prefix, "coil")

	return &Settings{v: v}
}

// CacheDir returns the absolute cache root.
func (s *Settings) CacheDir() string {
	dir := s.v.GetString(KeyCacheDir)
	if dir == "" {
		dir = domain.DefaultCachePath()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// NoCache reports whether cache reads are bypassed.
func (s *Settings) NoCache() bool {
	return s.flag(KeyNoCache)
}

// SourceMaps reports whether source-map aware error reporting is enabled.
func (s *Settings) SourceMaps() bool {
	return s.flag(KeySourceMaps)
}

// Backend returns the lower-cased cache backend name.
func (s *Settings) Backend() string {
	return strings.ToLower(strings.TrimSpace(s.v.GetString(KeyBackend)))
}

// RedisURL returns the redis connection URL.
func (s *Settings) RedisURL() string {
	return s.v.GetString(KeyRedisURL)
}

// S3 returns the bucket, key prefix and region of the S3 backend.
func (s *Settings) S3() (bucket, prefix, region string) {
	return s.v.GetString(KeyS3Bucket),
		strings.Trim(s.v.GetString(KeyS3Prefix), "/"),
		s.v.GetString(KeyS3Region)
}

// Runner returns the runner binary override.
func (s *Settings) Runner() string {
	return s.v.GetString(KeyRunner)
}

// LogFormat returns the configured log format.
func (s *Settings) LogFormat() string {
	return strings.ToLower(s.v.GetString(KeyLogFormat))
}

// Trace reports whether spans are logged.
func (s *Settings) Trace() bool {
	return s.flag(KeyTrace)
}

// Set overrides key for the rest of the process.
func (s *Settings) Set(key string, value any) {
	s.v.Set(key, value)
}

// flag treats any non-empty value other than a recognised false as set.
func (s *Settings) flag(key string) bool {
	raw := s.v.Get(key)
	switch val := raw.(type) {
	case nil:
		return false
	case bool:
		return val
	}

	str := strings.TrimSpace(s.v.GetString(key))
	if str == "" {
		return false
	}
	if b, err := strconv.ParseBool(str); err == nil {
		return b
	}
	return true
}
