package quiz

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dothai/truyenthong/internal/reading/book"
)

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	results    []*Result
	best       []RankedScore
	identities map[string]identity
}

func (f *fakeRepository) CreateResult(_ context.Context, result *Result) error {
	result.SubmittedAt = time.Now()
	f.results = append(f.results, result)
	return nil
}

func (f *fakeRepository) ListAttempts(_ context.Context, userID string, _, _ int) ([]*Attempt, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) BestScores(_ context.Context, _ string) ([]RankedScore, error) {
	return f.best, nil
}

func (f *fakeRepository) FindIdentities(_ context.Context, _ []string) (map[string]identity, error) {
	if f.identities == nil {
		return map[string]identity{}, nil
	}
	return f.identities, nil
}

// fakeLeaderboard keeps best scores in a map, mirroring the GT write rule.
type fakeLeaderboard struct {
	scores map[string]int
	filled int
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{scores: map[string]int{}}
}

func (f *fakeLeaderboard) RecordScore(_ context.Context, _, userID string, score int) error {
	if existing, ok := f.scores[userID]; !ok || score > existing {
		f.scores[userID] = score
	}
	return nil
}

func (f *fakeLeaderboard) Top(_ context.Context, _ string, limit int) ([]RankedScore, error) {
	var ranked []RankedScore
	for userID, score := range f.scores {
		ranked = append(ranked, RankedScore{UserID: userID, Score: score})
	}
	// Selection sort is fine for the tiny test fixtures.
	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].Score > ranked[i].Score {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (f *fakeLeaderboard) Fill(_ context.Context, _ string, scores []RankedScore) error {
	f.filled++
	for _, score := range scores {
		if existing, ok := f.scores[score.UserID]; !ok || score.Score > existing {
			f.scores[score.UserID] = score.Score
		}
	}
	return nil
}

func newTestService(repo *fakeRepository, board *fakeLeaderboard) *Service {
	return NewService(repo, board, slog.Default())
}

func TestService_ReportResult_PersistsAttemptAndRanks(t *testing.T) {
	repo := &fakeRepository{}
	board := newFakeLeaderboard()
	service := newTestService(repo, board)

	err := service.ReportResult(context.Background(), book.QuizResult{
		UserID:         "user-1",
		DocumentID:     "m-1954",
		Topic:          "Điện Biên Phủ",
		Score:          4,
		TotalQuestions: 5,
	})
	require.NoError(t, err)

	require.Len(t, repo.results, 1)
	saved := repo.results[0]
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "m-1954", saved.MilestoneID)
	assert.Equal(t, 4, saved.Score)
	assert.Equal(t, 5, saved.Total)

	assert.Equal(t, 4, board.scores["user-1"])
}

func TestService_ReportResult_WorseRetryKeepsBestRank(t *testing.T) {
	repo := &fakeRepository{}
	board := newFakeLeaderboard()
	service := newTestService(repo, board)

	first := book.QuizResult{UserID: "user-1", DocumentID: "m-1954", Score: 5, TotalQuestions: 5}
	second := book.QuizResult{UserID: "user-1", DocumentID: "m-1954", Score: 2, TotalQuestions: 5}

	require.NoError(t, service.ReportResult(context.Background(), first))
	require.NoError(t, service.ReportResult(context.Background(), second))

	// Every attempt is logged, but the ranking keeps the best score.
	assert.Len(t, repo.results, 2)
	assert.Equal(t, 5, board.scores["user-1"])
}

func TestService_Leaderboard_OrdersAndHydrates(t *testing.T) {
	repo := &fakeRepository{
		identities: map[string]identity{
			"user-1": {FullName: "Nguyễn Văn An", Rank: "Đại úy", Unit: "Đại đội 1"},
			"user-2": {FullName: "Trần Thị Bình"},
		},
	}
	board := newFakeLeaderboard()
	board.scores["user-1"] = 3
	board.scores["user-2"] = 5

	service := newTestService(repo, board)

	entries, err := service.Leaderboard(context.Background(), "m-1954", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "user-2", entries[0].UserID)
	assert.Equal(t, 5, entries[0].BestScore)
	assert.Equal(t, "Trần Thị Bình", entries[0].FullName)

	assert.Equal(t, 2, entries[1].Position)
	assert.Equal(t, "Nguyễn Văn An", entries[1].FullName)
	assert.Equal(t, "Đại úy", entries[1].Rank)
}

func TestService_Leaderboard_RebuildsOnMiss(t *testing.T) {
	repo := &fakeRepository{
		best: []RankedScore{
			{UserID: "user-1", Score: 5},
			{UserID: "user-2", Score: 3},
		},
		identities: map[string]identity{
			"user-1": {FullName: "Nguyễn Văn An"},
			"user-2": {FullName: "Trần Thị Bình"},
		},
	}
	board := newFakeLeaderboard()
	service := newTestService(repo, board)

	entries, err := service.Leaderboard(context.Background(), "m-1954", 10)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "user-1", entries[0].UserID)
	assert.Equal(t, 1, board.filled)
	assert.Equal(t, 5, board.scores["user-1"])
}
