package redis

// Package redis provides Redis-based adapters for the console system.

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/accredly/console-api/internal/errors"
)

// KVStore is a Redis-backed key/value store used as the durable storage
// scope (token keys, UI preferences). Keys are namespaced by prefix so
// Clear cannot touch other tenants of the same Redis database.
type KVStore struct {
	client redis.UniversalClient
	prefix string
}

// NewKVStore creates a Redis-backed store with the default prefix.
func NewKVStore(client redis.UniversalClient) *KVStore {
	return &KVStore{
		client: client,
		prefix: "console:",
	}
}

// NewKVStoreWithPrefix creates a Redis-backed store with a custom key prefix.
func NewKVStoreWithPrefix(client redis.UniversalClient, prefix string) *KVStore {
	return &KVStore{
		client: client,
		prefix: prefix,
	}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, apperrors.Validation("key cannot be empty")
	}

	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "redis get")
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return apperrors.Validation("key cannot be empty")
	}

	// No TTL: durable values are cleared only by explicit action.
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "redis set")
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "redis del")
	}
	return nil
}

// Clear removes every key under the store's prefix using SCAN so large
// databases are not blocked by a KEYS call.
func (s *KVStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "redis del %q", iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "redis scan")
	}
	return nil
}
