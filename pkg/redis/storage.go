package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a thin key-value wrapper around go-redis used by caches that
// only need get/set/delete with expiration.
type Storage struct {
	db redis.UniversalClient
}

// NewStorage creates a key-value storage backed by the given Redis client.
func NewStorage(client redis.UniversalClient) *Storage {
	return &Storage{db: client}
}

// Get returns nil for empty keys and missing values (redis.Nil becomes nil).
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.db.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return val, err
}

// Set stores a key-value pair with expiration. Zero duration means no
// expiration. Empty keys and values are ignored.
func (s *Storage) Set(ctx context.Context, key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return s.db.Set(ctx, key, val, exp).Err()
}

// Delete removes a key. Empty keys are ignored.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.db.Del(ctx, key).Err()
}

// Conn returns the underlying Redis client for advanced operations.
func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}
