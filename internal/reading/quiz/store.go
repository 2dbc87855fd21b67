package quiz

import "context"

type Repository interface {
	CreateResult(ctx context.Context, result *Result) error
	ListAttempts(ctx context.Context, userID string, limit, offset int) ([]*Attempt, int, error)
	// BestScores returns each user's best score for a milestone, highest
	// first. Used to rebuild an evicted leaderboard.
	BestScores(ctx context.Context, milestoneID string) ([]RankedScore, error)
	// FindIdentities resolves account display data for leaderboard hydration.
	// Unknown or deleted accounts are simply absent from the map.
	FindIdentities(ctx context.Context, userIDs []string) (map[string]identity, error)
}

// RankedScore is a raw leaderboard row before identity hydration.
type RankedScore struct {
	UserID string
	Score  int
}

// LeaderboardStore keeps the per-milestone best-score ranking.
type LeaderboardStore interface {
	// RecordScore updates a user's entry only when the new score beats the
	// stored one.
	RecordScore(ctx context.Context, milestoneID, userID string, score int) error
	Top(ctx context.Context, milestoneID string, limit int) ([]RankedScore, error)
	// Fill seeds a milestone's ranking in bulk, keeping existing higher
	// scores.
	Fill(ctx context.Context, milestoneID string, scores []RankedScore) error
}
