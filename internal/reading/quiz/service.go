package quiz

import (
	"context"
	"log/slog"

	"github.com/dothai/truyenthong/internal/reading/book"
	"github.com/dothai/truyenthong/pkg/slice"
	"github.com/dothai/truyenthong/pkg/uuidv7"
)

// DefaultLeaderboardSize caps how many rows a leaderboard request returns.
const DefaultLeaderboardSize = 20

type Service struct {
	repo        Repository
	leaderboard LeaderboardStore
	logger      *slog.Logger
}

func NewService(repo Repository, leaderboard LeaderboardStore, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// ReportResult satisfies [book.ResultReporter]. The attempt row is the record
// of truth; the leaderboard update is best-effort on top of it.
func (service *Service) ReportResult(context context.Context, result book.QuizResult) error {
	row := &Result{
		ID:          uuidv7.New(),
		UserID:      result.UserID,
		MilestoneID: result.DocumentID,
		Score:       result.Score,
		Total:       result.TotalQuestions,
	}

	if err := service.repo.CreateResult(context, row); err != nil {
		return err
	}

	if err := service.leaderboard.RecordScore(context, result.DocumentID, result.UserID, result.Score); err != nil {
		service.logger.Warn("leaderboard_update_failed",
			slog.String("milestone_id", result.DocumentID),
			slog.String("user_id", result.UserID),
			slog.Any("error", err),
		)
	}

	service.logger.Info("quiz_result_recorded",
		slog.String("milestone_id", result.DocumentID),
		slog.String("user_id", result.UserID),
		slog.Int("score", result.Score),
		slog.Int("total", result.TotalQuestions),
	)
	return nil
}

// Leaderboard returns the ranked best scores for a milestone with account
// identities attached. Entries whose account has since been deleted keep
// their position but show no name.
func (service *Service) Leaderboard(context context.Context, milestoneID string, limit int) ([]*LeaderboardEntry, error) {
	if limit <= 0 || limit > DefaultLeaderboardSize {
		limit = DefaultLeaderboardSize
	}

	ranked, err := service.leaderboard.Top(context, milestoneID, limit)
	if err != nil {
		return nil, err
	}

	// An empty ranking usually means the cache was evicted; rebuild it from
	// the attempt log.
	if len(ranked) == 0 {
		ranked, err = service.rebuild(context, milestoneID, limit)
		if err != nil {
			return nil, err
		}
	}

	userIDs := slice.Map(ranked, func(score RankedScore) string { return score.UserID })

	identities, err := service.repo.FindIdentities(context, userIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]*LeaderboardEntry, 0, len(ranked))
	for i, score := range ranked {
		entry := &LeaderboardEntry{
			Position:  i + 1,
			UserID:    score.UserID,
			BestScore: score.Score,
		}
		if who, ok := identities[score.UserID]; ok {
			entry.FullName = who.FullName
			entry.Rank = who.Rank
			entry.Unit = who.Unit
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (service *Service) rebuild(context context.Context, milestoneID string, limit int) ([]RankedScore, error) {
	scores, err := service.repo.BestScores(context, milestoneID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, nil
	}

	if err := service.leaderboard.Fill(context, milestoneID, scores); err != nil {
		service.logger.Warn("leaderboard_rebuild_failed",
			slog.String("milestone_id", milestoneID),
			slog.Any("error", err),
		)
	} else {
		service.logger.Info("leaderboard_rebuilt",
			slog.String("milestone_id", milestoneID),
			slog.Int("entries", len(scores)),
		)
	}

	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores, nil
}

func (service *Service) ListAttempts(context context.Context, userID string, limit, offset int) ([]*Attempt, int, error) {
	return service.repo.ListAttempts(context, userID, limit, offset)
}
