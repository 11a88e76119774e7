package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	UserTokenPrefix = "login:user:token"
	UserTokenTTL    = 30 * time.Minute
)

// TokenStore 每个用户只保留一个有效 access token，请求时续期
type TokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb, ttl: UserTokenTTL}
}

func (s *TokenStore) key(userID uint64) string {
	return fmt.Sprintf("%s:%d", UserTokenPrefix, userID)
}

func (s *TokenStore) Add(ctx context.Context, userID uint64, token string) error {
	if err := s.rdb.Set(ctx, s.key(userID), token, s.ttl).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (s *TokenStore) Get(ctx context.Context, userID uint64) (string, error) {
	token, err := s.rdb.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (s *TokenStore) Extend(ctx context.Context, userID uint64) error {
	if err := s.rdb.Expire(ctx, s.key(userID), s.ttl).Err(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (s *TokenStore) Delete(ctx context.Context, userID uint64) error {
	if err := s.rdb.Del(ctx, s.key(userID)).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
