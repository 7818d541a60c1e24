package documents

import (
	"io"
	"time"
)

// Document is an uploaded legal document owned by a user. FileName is the
// stored object key; OriginalName is the name the client sent.
type Document struct {
	ID               string
	Title            string
	FileName         string
	OriginalName     string
	MimeType         string
	Size             int64
	UserID           string
	ExtractedText    string
	ExtractionFailed bool
	UploadedAt       time.Time
}

// UploadInput carries one multipart file into Service.Upload.
type UploadInput struct {
	UserID      string
	FileName    string
	ContentType string
	Title       string
	Reader      io.Reader
}

// DeleteResult reports the best-effort file removal that follows a delete.
type DeleteResult struct {
	FileErr error
}
