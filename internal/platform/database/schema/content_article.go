package schema

// ContentArticleTable represents the 'content.article' table
type ContentArticleTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Category    string
	Summary     string
	BodyHTML    string
	CoverURL    string
	Status      string
	ViewCount   string
	AuthorID    string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// ContentArticle is the schema definition for content.article
var ContentArticle = ContentArticleTable{
	Table:       "content.article",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Category:    "category",
	Summary:     "summary",
	BodyHTML:    "bodyhtml",
	CoverURL:    "coverurl",
	Status:      "status",
	ViewCount:   "viewcount",
	AuthorID:    "authorid",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

// Columns returns all standard column names
func (t ContentArticleTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Category, t.Summary, t.BodyHTML,
		t.CoverURL, t.Status, t.ViewCount, t.AuthorID, t.PublishedAt,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
