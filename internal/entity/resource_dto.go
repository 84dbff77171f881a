package entity

import "mime/multipart"

// IngestFileRequest carries one uploaded document to be ingested for a bot.
type IngestFileRequest struct {
	BotID       string
	UserID      string
	Name        string
	Description string
	File        *multipart.FileHeader
}

// IngestURLRequest asks for a web page to be scraped and ingested.
type IngestURLRequest struct {
	BotID  string
	UserID string
	URL    string
}

// IngestAudioRequest carries an uploaded audio file to be transcribed and ingested.
type IngestAudioRequest struct {
	BotID       string
	UserID      string
	Name        string
	Description string
	File        *multipart.FileHeader
}

// ListResourcesRequest filters and paginates the documents dashboard listing.
type ListResourcesRequest struct {
	UserID string
	Query  string
	Offset int
	Limit  int
}

const (
	defaultResourcePageSize = 50
	maxResourcePageSize     = 200
)

func (r *ListResourcesRequest) Normalize() {
	if r.Limit <= 0 || r.Limit > maxResourcePageSize {
		r.Limit = defaultResourcePageSize
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// ResourcePage is one page of the documents dashboard.
type ResourcePage struct {
	Resources  []*ResourceListItem `json:"resources"`
	Total      int                 `json:"total"`
	TotalPages int                 `json:"total_pages"`
}
