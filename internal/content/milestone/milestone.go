package milestone

import "time"

// Publication states for a milestone.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Milestone represents one chapter of the unit's tradition story: a historical
// period with its narrative, cover art, optional audio narration, and quiz.
type Milestone struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle,omitempty"`
	Slug      string     `json:"slug"`
	YearLabel string     `json:"year_label"`
	SortOrder int        `json:"sort_order"`
	Summary   string     `json:"summary,omitempty"`
	StoryHTML string     `json:"story_html,omitempty"`
	CoverURL  string     `json:"cover_url,omitempty"`
	AudioURL  string     `json:"audio_url,omitempty"`
	Status    string     `json:"status"`
	Questions []Question `json:"questions,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"` // soft-delete tracker
}

// Question is a single multiple-choice quiz question attached to a milestone.
// CorrectIndex never leaves the backend; grading happens server-side.
type Question struct {
	ID           string   `json:"id"`
	MilestoneID  string   `json:"-"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
	SortOrder    int      `json:"sort_order"`
}

// UpdateInput carries a partial milestone update. Nil fields keep the stored
// value.
type UpdateInput struct {
	Title     *string `json:"title"`
	Subtitle  *string `json:"subtitle"`
	Slug      *string `json:"slug"`
	YearLabel *string `json:"year_label"`
	SortOrder *int    `json:"sort_order"`
	Summary   *string `json:"summary"`
	StoryHTML *string `json:"story_html"`
	CoverURL  *string `json:"cover_url"`
	AudioURL  *string `json:"audio_url"`
	Status    *string `json:"status"`
}

// Filter holds the parameters for a milestone listing.
type Filter struct {
	Status string // Empty means all statuses (editorial listing)
	Year   string // Substring match against the year label
}

// Global field names for validation
const (
	FieldTitle     = "title"
	FieldYearLabel = "year_label"
	FieldStory     = "story_html"
	FieldCoverURL  = "cover_url"
	FieldAudioURL  = "audio_url"
	FieldStatus    = "status"
	FieldPrompt    = "prompt"
	FieldOptions   = "options"
	FieldCorrect   = "correct_index"
)
