package history

import "time"

// ReadEvent is one (user, milestone) read record. A user reads a milestone at
// most once from history's point of view; re-opening the story never creates
// a second row.
type ReadEvent struct {
	UserID      string    `json:"user_id"`
	MilestoneID string    `json:"milestone_id"`
	ReadAt      time.Time `json:"read_at"`
}

// Reader is a read event joined with the account that produced it, for the
// per-milestone reader roster.
type Reader struct {
	UserID   string    `json:"user_id"`
	FullName string    `json:"full_name"`
	Rank     string    `json:"rank,omitempty"`
	Unit     string    `json:"unit,omitempty"`
	ReadAt   time.Time `json:"read_at"`
}

// Entry is a read event joined with its milestone, for a user's own reading
// history.
type Entry struct {
	MilestoneID string    `json:"milestone_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	YearLabel   string    `json:"year_label,omitempty"`
	ReadAt      time.Time `json:"read_at"`
}
