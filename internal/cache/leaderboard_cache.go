package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard"

// leaderboardTTL bounds how long a rebuilt ranking is trusted, so a score
// update lost to a Redis outage heals on the next rebuild
const leaderboardTTL = 10 * time.Minute

// LeaderboardCache handles the Redis ZSET ranking users by overall score
type LeaderboardCache interface {
	UpdateScore(ctx context.Context, userID string, score float64) error
	GetTop(ctx context.Context, limit int) ([]ScoreEntry, error)
	Size(ctx context.Context) (int64, error)
	Replace(ctx context.Context, entries []ScoreEntry) error
}

// ScoreEntry is one ranked member
type ScoreEntry struct {
	UserID string  `json:"userId"`
	Score  float64 `json:"score"`
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) UpdateScore(ctx context.Context, userID string, score float64) error {
	return c.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  score,
		Member: userID,
	}).Err()
}

func (c *leaderboardCache) GetTop(ctx context.Context, limit int) ([]ScoreEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreEntry, len(results))
	for i, z := range results {
		entries[i] = ScoreEntry{
			UserID: z.Member.(string),
			Score:  z.Score,
		}
	}
	return entries, nil
}

func (c *leaderboardCache) Size(ctx context.Context) (int64, error) {
	return c.client.ZCard(ctx, leaderboardKey).Result()
}

// Replace swaps the whole ranking for entries in one transaction
func (c *leaderboardCache) Replace(ctx context.Context, entries []ScoreEntry) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, leaderboardKey)
		if len(entries) == 0 {
			return nil
		}
		members := make([]redis.Z, len(entries))
		for i, e := range entries {
			members[i] = redis.Z{Score: e.Score, Member: e.UserID}
		}
		pipe.ZAdd(ctx, leaderboardKey, members...)
		pipe.Expire(ctx, leaderboardKey, leaderboardTTL)
		return nil
	})
	return err
}
