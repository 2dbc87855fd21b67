package history

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dothai/truyenthong/internal/reading/book"
)

// fakeRepository stores read events keyed by (user, milestone).
type fakeRepository struct {
	events map[[2]string]time.Time
	calls  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{events: map[[2]string]time.Time{}}
}

func (f *fakeRepository) RecordRead(_ context.Context, event ReadEvent) error {
	f.calls++
	key := [2]string{event.UserID, event.MilestoneID}
	if _, ok := f.events[key]; !ok {
		f.events[key] = time.Now()
	}
	return nil
}

func (f *fakeRepository) HasRead(_ context.Context, userID, milestoneID string) (bool, error) {
	_, ok := f.events[[2]string{userID, milestoneID}]
	return ok, nil
}

func (f *fakeRepository) ListReaders(_ context.Context, _ string, _, _ int) ([]*Reader, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) ListHistory(_ context.Context, _ string, _, _ int) ([]*Entry, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) CountReads(_ context.Context, milestoneID string) (int, error) {
	count := 0
	for key := range f.events {
		if key[1] == milestoneID {
			count++
		}
	}
	return count, nil
}

func TestService_MarkRead_IsIdempotent(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo, slog.Default())

	event := book.ReadEvent{
		UserID:        "user-1",
		UserName:      "Nguyễn Văn An",
		DocumentID:    "m-1945",
		DocumentTitle: "Ngày thành lập",
	}

	require.NoError(t, service.MarkRead(context.Background(), event))
	require.NoError(t, service.MarkRead(context.Background(), event))

	// Re-opening the same story never produces a second row.
	hasRead, err := service.HasRead(context.Background(), "user-1", "m-1945")
	require.NoError(t, err)
	assert.True(t, hasRead)

	total, err := repo.CountReads(context.Background(), "m-1945")
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 2, repo.calls)
}

func TestService_MarkRead_DistinctReadersCounted(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo, slog.Default())

	for _, userID := range []string{"user-1", "user-2", "user-3"} {
		err := service.MarkRead(context.Background(), book.ReadEvent{
			UserID:     userID,
			DocumentID: "m-1945",
		})
		require.NoError(t, err)
	}

	total, err := repo.CountReads(context.Background(), "m-1945")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}
