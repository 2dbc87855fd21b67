package media

import "time"

// Media kinds supported by the gallery.
const (
	KindImage    = "image"
	KindVideo    = "video"
	KindAudio    = "audio"
	KindDocument = "document"
)

// Media is a metadata record for a gallery asset. The binary itself lives on
// external object storage; the portal only tracks and serves its URL.
type Media struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Title      string     `json:"title"`
	FileURL    string     `json:"file_url"`
	ThumbURL   string     `json:"thumb_url,omitempty"`
	MimeType   string     `json:"mime_type,omitempty"`
	SizeBytes  int64      `json:"size_bytes,omitempty"`
	UploaderID string     `json:"uploader_id"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a media listing. An empty Kinds slice
// matches every kind.
type Filter struct {
	Kinds []string
}

// Global field names for validation
const (
	FieldKind     = "kind"
	FieldTitle    = "title"
	FieldFileURL  = "file_url"
	FieldThumbURL = "thumb_url"
)
