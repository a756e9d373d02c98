package cas

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.trai.ch/coil/internal/core/domain"
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/zerr"
)

// RedisKeyPrefix namespaces entries in a shared redis database.
const RedisKeyPrefix = "coil:"

var (
	_ ports.CacheStore  = (*RedisStore)(nil)
	_ ports.CacheLister = (*RedisStore)(nil)
	_ ports.CachePurger = (*RedisStore)(nil)
)

// RedisStore keeps entries as plain redis strings without expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the server at url, e.g. "redis://localhost:6379/0".
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	if url == "" {
		return nil, zerr.With(domain.ErrMissingBackendConfig, "setting", "COIL_REDIS_URL")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "addr", opts.Addr)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient creates a RedisStore on an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Exists reports whether an entry for key is present.
func (r *RedisStore) Exists(ctx context.Context, key domain.CacheKey) (bool, error) {
	count, err := r.client.Exists(ctx, redisKey(key)).Result()
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return count > 0, nil
}

// Read returns the entry for key, or domain.ErrCacheMiss.
func (r *RedisStore) Read(ctx context.Context, key domain.CacheKey) (*domain.CompiledArtifact, error) {
	code, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return &domain.CompiledArtifact{Code: code}, nil
}

// Write stores the artifact's code under key.
func (r *RedisStore) Write(ctx context.Context, key domain.CacheKey, artifact *domain.CompiledArtifact) error {
	if err := r.client.Set(ctx, redisKey(key), artifact.Code, 0).Err(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// Entries lists the entries under the coil prefix. Redis keeps no
// modification time, so ModTime is zero.
func (r *RedisStore) Entries(ctx context.Context) ([]domain.EntryInfo, error) {
	var infos []domain.EntryInfo

	iter := r.client.Scan(ctx, 0, RedisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		name := iter.Val()
		key, ok := domain.CacheKeyFromFileName(name[len(RedisKeyPrefix):])
		if !ok {
			continue
		}

		size, err := r.client.StrLen(ctx, name).Result()
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrStoreListFailed.Error())
		}
		infos = append(infos, domain.EntryInfo{Key: key, Size: size})
	}
	if err := iter.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreListFailed.Error())
	}
	return infos, nil
}

// Purge deletes every key under the coil prefix.
func (r *RedisStore) Purge(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, RedisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return zerr.Wrap(err, domain.ErrStorePurgeFailed.Error())
		}
	}
	if err := iter.Err(); err != nil {
		return zerr.Wrap(err, domain.ErrStorePurgeFailed.Error())
	}
	return nil
}

// Close closes the redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func redisKey(key domain.CacheKey) string {
	return RedisKeyPrefix + key.FileName()
}
