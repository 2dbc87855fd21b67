package article

import "time"

// Publication states for an article.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Article categories used by the portal navigation.
const (
	CategoryNews      = "news"
	CategoryActivity  = "activity"
	CategoryTradition = "tradition"
)

// Article represents a portal news or tradition piece.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Category    string     `json:"category"`
	Summary     string     `json:"summary,omitempty"`
	BodyHTML    string     `json:"body_html,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	Status      string     `json:"status"`
	ViewCount   int64      `json:"view_count"`
	AuthorID    string     `json:"author_id"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// UpdateInput carries a partial article update. Nil fields keep the stored
// value.
type UpdateInput struct {
	Title    *string `json:"title"`
	Slug     *string `json:"slug"`
	Category *string `json:"category"`
	Summary  *string `json:"summary"`
	BodyHTML *string `json:"body_html"`
	CoverURL *string `json:"cover_url"`
}

// Filter holds the parameters for a paginated article search.
type Filter struct {
	Category string
	Status   string
	Query    string // ILIKE search against title and summary
}

// Global field names for validation
const (
	FieldTitle    = "title"
	FieldCategory = "category"
	FieldBody     = "body_html"
	FieldCoverURL = "cover_url"
	FieldStatus   = "status"
)
