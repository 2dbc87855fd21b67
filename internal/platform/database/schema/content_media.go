package schema

// ContentMediaTable represents the 'content.media' table
type ContentMediaTable struct {
	Table      string
	ID         string
	Kind       string
	Title      string
	FileURL    string
	ThumbURL   string
	MimeType   string
	SizeBytes  string
	UploaderID string
	CreatedAt  string
	DeletedAt  string
}

// ContentMedia is the schema definition for content.media
var ContentMedia = ContentMediaTable{
	Table:      "content.media",
	ID:         "id",
	Kind:       "kind",
	Title:      "title",
	FileURL:    "fileurl",
	ThumbURL:   "thumburl",
	MimeType:   "mimetype",
	SizeBytes:  "sizebytes",
	UploaderID: "uploaderid",
	CreatedAt:  "createdat",
	DeletedAt:  "deletedat",
}

// Columns returns all standard column names
func (t ContentMediaTable) Columns() []string {
	return []string{
		t.ID, t.Kind, t.Title, t.FileURL, t.ThumbURL, t.MimeType,
		t.SizeBytes, t.UploaderID, t.CreatedAt, t.DeletedAt,
	}
}
