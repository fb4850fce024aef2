package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/griddeck/griddeck/pkg/observability"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	// Addr is the Redis server address (host:port).
	Addr string

	// Password is optional.
	Password string

	// DB selects the Redis database number.
	DB int

	// Key is the record key. Defaults to "griddeck:layout".
	Key string
}

// RedisBackend persists the layout as a single Redis key. Useful when the
// same dashboard is opened from several machines.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(ctx context.Context, cfg RedisConfig) (*RedisBackend, error) {
	if cfg.Key == "" {
		cfg.Key = "griddeck:layout"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}

	return &RedisBackend{client: client, key: cfg.Key}, nil
}

// Load reads the record key.
func (b *RedisBackend) Load(ctx context.Context) ([]byte, error) {
	start := time.Now()
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		err = ErrNoRecord
	}
	observability.Persistence().OnLoad(b.Name(), len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Store writes the record key without expiry. Redis OOM responses surface
// as ErrQuotaExceeded.
func (b *RedisBackend) Store(ctx context.Context, data []byte) error {
	start := time.Now()
	err := b.client.Set(ctx, b.key, data, 0).Err()
	if err != nil && isRedisOOM(err) {
		err = fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	observability.Persistence().OnWrite(b.Name(), len(data), time.Since(start), err)
	return err
}

// isRedisOOM matches the server error returned when maxmemory is reached.
func isRedisOOM(err error) bool {
	return err != nil && len(err.Error()) >= 3 && err.Error()[:3] == "OOM"
}

// Name identifies the backend in logs and hooks.
func (b *RedisBackend) Name() string { return "redis" }

// Close releases the Redis connection.
func (b *RedisBackend) Close() error { return b.client.Close() }

// Ensure RedisBackend implements Backend.
var _ Backend = (*RedisBackend)(nil)
