package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "storefront:session:"

// RedisStore keeps sealed tokens in Redis with a key TTL, so sessions are shared between
// instances and expire without a sweeper.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a store over an existing Redis client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client, prefix: defaultRedisPrefix}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Save(ctx context.Context, id, sealed string, ttl time.Duration) error {
	if id == "" {
		return fmt.Errorf("[RedisStore Save] session id is required")
	}
	if err := s.client.Set(ctx, s.key(id), sealed, ttl).Err(); err != nil {
		return fmt.Errorf("[RedisStore Save] %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (string, error) {
	sealed, err := s.client.Get(ctx, s.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperrors.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("[RedisStore Load] %w", err)
	}
	return sealed, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("[RedisStore Delete] %w", err)
	}
	return nil
}
