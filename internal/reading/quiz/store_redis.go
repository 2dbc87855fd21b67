package quiz

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dothai/truyenthong/internal/platform/apperr"
	"github.com/dothai/truyenthong/internal/platform/constants"
)

// RedisLeaderboard keeps one sorted set per milestone under
// quiz:leaderboard:<milestoneid>, member = user id, score = best quiz score.
// GT semantics on write mean a worse retry never demotes an entry.
type RedisLeaderboard struct {
	client *redis.Client
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}

func (store *RedisLeaderboard) RecordScore(context context.Context, milestoneID, userID string, score int) error {
	key := leaderboardKey(milestoneID)

	err := store.client.ZAddGT(context, key, redis.Z{
		Score:  float64(score),
		Member: userID,
	}).Err()
	if err != nil {
		return apperr.Internal(fmt.Errorf("record leaderboard score: %w", err))
	}
	return nil
}

func (store *RedisLeaderboard) Top(context context.Context, milestoneID string, limit int) ([]RankedScore, error) {
	key := leaderboardKey(milestoneID)

	members, err := store.client.ZRevRangeWithScores(context, key, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("read leaderboard: %w", err))
	}

	ranked := make([]RankedScore, 0, len(members))
	for _, member := range members {
		userID, ok := member.Member.(string)
		if !ok {
			continue
		}
		ranked = append(ranked, RankedScore{
			UserID: userID,
			Score:  int(member.Score),
		})
	}
	return ranked, nil
}

func (store *RedisLeaderboard) Fill(context context.Context, milestoneID string, scores []RankedScore) error {
	if len(scores) == 0 {
		return nil
	}

	key := leaderboardKey(milestoneID)

	members := make([]redis.Z, 0, len(scores))
	for _, score := range scores {
		members = append(members, redis.Z{
			Score:  float64(score.Score),
			Member: score.UserID,
		})
	}

	if err := store.client.ZAddGT(context, key, members...).Err(); err != nil {
		return apperr.Internal(fmt.Errorf("fill leaderboard: %w", err))
	}
	return nil
}

func leaderboardKey(milestoneID string) string {
	return constants.RedisPrefixLeaderboard + milestoneID
}
