package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// Sessions tracks live login sessions by token ID. A token is only honored
// while its session entry exists, so logout (or TTL expiry) revokes it even
// though the JWT itself stays well-formed.
type Sessions struct {
	rdb *redis.Client
}

func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb}
}

func (s *Sessions) Put(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKeyPrefix+jti, userID, ttl).Err()
}

func (s *Sessions) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, sessionKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Sessions) Delete(ctx context.Context, jti string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+jti).Err()
}
