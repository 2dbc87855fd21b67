package schema

// ContentMilestoneTable represents the 'content.milestone' table
type ContentMilestoneTable struct {
	Table     string
	ID        string
	Title     string
	Subtitle  string
	Slug      string
	YearLabel string
	SortOrder string
	Summary   string
	StoryHTML string
	CoverURL  string
	AudioURL  string
	Status    string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// ContentMilestone is the schema definition for content.milestone
var ContentMilestone = ContentMilestoneTable{
	Table:     "content.milestone",
	ID:        "id",
	Title:     "title",
	Subtitle:  "subtitle",
	Slug:      "slug",
	YearLabel: "yearlabel",
	SortOrder: "sortorder",
	Summary:   "summary",
	StoryHTML: "storyhtml",
	CoverURL:  "coverurl",
	AudioURL:  "audiourl",
	Status:    "status",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

// Columns returns all standard column names
func (t ContentMilestoneTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Subtitle, t.Slug, t.YearLabel, t.SortOrder,
		t.Summary, t.StoryHTML, t.CoverURL, t.AudioURL, t.Status,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
