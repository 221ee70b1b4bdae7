package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces focus keys inside a shared Redis database.
const DefaultRedisPrefix = "focus:"

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string // host:port
	Password string
	DB       int
	Prefix   string // defaults to DefaultRedisPrefix
}

// RedisSettingsRepo implements SettingsRepo on top of plain Redis strings.
type RedisSettingsRepo struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisSettingsRepo connects to Redis and verifies the connection.
func NewRedisSettingsRepo(ctx context.Context, cfg RedisConfig) (*RedisSettingsRepo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return newRedisSettingsRepo(client, cfg.Prefix), nil
}

func newRedisSettingsRepo(client *redis.Client, prefix string) *RedisSettingsRepo {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisSettingsRepo{client: client, prefix: prefix, timeout: 2 * time.Second}
}

func (r *RedisSettingsRepo) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("setting %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %q: %w", key, err)
	}
	return val, nil
}

func (r *RedisSettingsRepo) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("writing setting %q: %w", key, err)
	}
	return nil
}

func (r *RedisSettingsRepo) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("deleting setting %q: %w", key, err)
	}
	return nil
}

func (r *RedisSettingsRepo) List(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out := make(map[string]string)
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		full := iter.Val()
		val, err := r.client.Get(ctx, full).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading setting %q: %w", full, err)
		}
		out[strings.TrimPrefix(full, r.prefix)] = val
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning settings: %w", err)
	}
	return out, nil
}

// Close releases the underlying client.
func (r *RedisSettingsRepo) Close() error {
	return r.client.Close()
}
