package quiz

import "time"

// Result is one persisted quiz submission. Every attempt is kept; the
// leaderboard tracks only the best score per user.
type Result struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MilestoneID string    `json:"milestone_id"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Attempt is a result joined with its milestone, for a user's own attempt
// list.
type Attempt struct {
	MilestoneID string    `json:"milestone_id"`
	Title       string    `json:"title"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// LeaderboardEntry is one row of a milestone leaderboard: the user's best
// score hydrated with their account identity.
type LeaderboardEntry struct {
	Position  int    `json:"position"`
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	Rank      string `json:"rank,omitempty"`
	Unit      string `json:"unit,omitempty"`
	BestScore int    `json:"best_score"`
}

// identity is the account projection used to hydrate leaderboard rows.
type identity struct {
	FullName string
	Rank     string
	Unit     string
}
