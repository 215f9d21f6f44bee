package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache mirrors leaderboard totals into Redis ZSETs, one
// global set plus one per genre, for cheap top-N and rank lookups.
// Mongo remains the source of truth; the mirror is rebuilt on writes.
type LeaderboardCache interface {
	IncrScore(ctx context.Context, genre, userID string, delta int) error
	SetScore(ctx context.Context, genre, userID string, score int) error
	Top(ctx context.Context, limit int) ([]CachedEntry, error)
	Rank(ctx context.Context, userID string) (int64, error)
	RemoveUser(ctx context.Context, userID string) error
	Clear(ctx context.Context) error
}

// CachedEntry is a single ZSET leaderboard row.
type CachedEntry struct {
	UserID string `json:"user_id"`
	Score  int    `json:"total_score"`
	Rank   int    `json:"rank"`
}

type leaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{client: client}
}

const globalKey = "lb:global"

func genreKey(genre string) string {
	return fmt.Sprintf("lb:genre:%s", genre)
}

func (c *leaderboardCache) IncrScore(ctx context.Context, genre, userID string, delta int) error {
	pipe := c.client.TxPipeline()
	pipe.ZIncrBy(ctx, globalKey, float64(delta), userID)
	if genre != "" {
		pipe.ZIncrBy(ctx, genreKey(genre), float64(delta), userID)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *leaderboardCache) SetScore(ctx context.Context, genre, userID string, score int) error {
	key := globalKey
	if genre != "" {
		key = genreKey(genre)
	}
	return c.client.ZAdd(ctx, key, redis.Z{
		Score:  float64(score),
		Member: userID,
	}).Err()
}

func (c *leaderboardCache) Top(ctx context.Context, limit int) ([]CachedEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, globalKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]CachedEntry, len(results))
	for i, z := range results {
		entries[i] = CachedEntry{
			UserID: z.Member.(string),
			Score:  int(z.Score),
			Rank:   i + 1,
		}
	}
	return entries, nil
}

func (c *leaderboardCache) Rank(ctx context.Context, userID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, globalKey, userID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

func (c *leaderboardCache) RemoveUser(ctx context.Context, userID string) error {
	keys, err := c.client.Keys(ctx, "lb:*").Result()
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	for _, key := range keys {
		pipe.ZRem(ctx, key, userID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (c *leaderboardCache) Clear(ctx context.Context) error {
	keys, err := c.client.Keys(ctx, "lb:*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
