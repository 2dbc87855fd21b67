package history

import (
	"context"
	"log/slog"

	"github.com/dothai/truyenthong/internal/reading/book"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// MarkRead satisfies [book.ReadMarker]. The underlying insert is idempotent,
// so the at-most-once guarantee of the reading session and the composite key
// here never conflict.
func (service *Service) MarkRead(context context.Context, event book.ReadEvent) error {
	if err := service.repo.RecordRead(context, ReadEvent{
		UserID:      event.UserID,
		MilestoneID: event.DocumentID,
	}); err != nil {
		return err
	}

	service.logger.Info("milestone_read_recorded",
		slog.String("user_id", event.UserID),
		slog.String("milestone_id", event.DocumentID),
	)
	return nil
}

func (service *Service) HasRead(context context.Context, userID, milestoneID string) (bool, error) {
	return service.repo.HasRead(context, userID, milestoneID)
}

func (service *Service) ListReaders(context context.Context, milestoneID string, limit, offset int) ([]*Reader, int, error) {
	return service.repo.ListReaders(context, milestoneID, limit, offset)
}

func (service *Service) ListHistory(context context.Context, userID string, limit, offset int) ([]*Entry, int, error) {
	return service.repo.ListHistory(context, userID, limit, offset)
}
