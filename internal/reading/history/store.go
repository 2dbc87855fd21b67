package history

import "context"

type Repository interface {
	// RecordRead inserts the (user, milestone) pair if absent. Re-recording
	// an existing pair is a silent no-op.
	RecordRead(ctx context.Context, event ReadEvent) error
	HasRead(ctx context.Context, userID, milestoneID string) (bool, error)
	ListReaders(ctx context.Context, milestoneID string, limit, offset int) ([]*Reader, int, error)
	ListHistory(ctx context.Context, userID string, limit, offset int) ([]*Entry, int, error)
	CountReads(ctx context.Context, milestoneID string) (int, error)
}
