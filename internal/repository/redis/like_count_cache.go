package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeCntKeyPrefix = "like:cnt:post"
	LikeCntTTL       = 10 * time.Minute
)

// LikeCountCache 帖子点赞数缓存，写路径只删不改
type LikeCountCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLikeCountCache(rdb *redis.Client) *LikeCountCache {
	return &LikeCountCache{rdb: rdb, ttl: LikeCntTTL}
}

func (c *LikeCountCache) key(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, postID)
}

// GetMany 返回命中的计数和未命中的帖子 id
func (c *LikeCountCache) GetMany(ctx context.Context, postIDs []uint64) (map[uint64]int64, []uint64, error) {
	hit := make(map[uint64]int64, len(postIDs))
	if len(postIDs) == 0 {
		return hit, nil, nil
	}
	keys := make([]string, len(postIDs))
	for i, id := range postIDs {
		keys[i] = c.key(id)
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return hit, postIDs, err
	}
	var miss []uint64
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			miss = append(miss, postIDs[i])
			continue
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			miss = append(miss, postIDs[i])
			continue
		}
		hit[postIDs[i]] = n
	}
	return hit, miss, nil
}

// SetMany 回填计数
func (c *LikeCountCache) SetMany(ctx context.Context, counts map[uint64]int64) error {
	if len(counts) == 0 {
		return nil
	}
	_, err := c.rdb.Pipelined(ctx, func(p redis.Pipeliner) error {
		for id, n := range counts {
			p.Set(ctx, c.key(id), n, c.ttl)
		}
		return nil
	})
	return err
}

// Delete 切换点赞后删除，下次读取回源
func (c *LikeCountCache) Delete(ctx context.Context, postID uint64) error {
	return c.rdb.Del(ctx, c.key(postID)).Err()
}
