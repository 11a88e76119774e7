package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ResetCodePrefix = "reset:code:"
	ResetCodeTTL    = 15 * time.Minute
)

var (
	ErrCodeNotFound   = errors.New("code not found")
	ErrCodeSaveFailed = errors.New("code save failed")
)

// 取值并删除，保证验证码只能使用一次
var consumeScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if not val then
  return false
end
redis.call("DEL", KEYS[1])
return val
`)

type ResetCodeStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResetCodeStore(rdb *redis.Client) *ResetCodeStore {
	return &ResetCodeStore{rdb: rdb, ttl: ResetCodeTTL}
}

// Save NX 写入，撞码时返回错误由调用方重新生成
func (s *ResetCodeStore) Save(ctx context.Context, code, email string) error {
	ok, err := s.rdb.SetNX(ctx, ResetCodePrefix+code, email, s.ttl).Result()
	if err != nil || !ok {
		return ErrCodeSaveFailed
	}
	return nil
}

func (s *ResetCodeStore) Peek(ctx context.Context, code string) (string, error) {
	email, err := s.rdb.Get(ctx, ResetCodePrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return email, nil
}

func (s *ResetCodeStore) Consume(ctx context.Context, code string) (string, error) {
	email, err := consumeScript.Run(ctx, s.rdb, []string{ResetCodePrefix + code}).Text()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return email, nil
}
