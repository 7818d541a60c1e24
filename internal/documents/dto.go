package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	FileName         string    `json:"filename"`
	OriginalName     string    `json:"originalName"`
	MimeType         string    `json:"mimetype"`
	Size             int64     `json:"size"`
	UserID           string    `json:"userId"`
	ExtractedText    string    `json:"extractedText"`
	ExtractionFailed bool      `json:"extractionFailed,omitempty"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:               doc.ID,
		Title:            doc.Title,
		FileName:         doc.FileName,
		OriginalName:     doc.OriginalName,
		MimeType:         doc.MimeType,
		Size:             doc.Size,
		UserID:           doc.UserID,
		ExtractedText:    doc.ExtractedText,
		ExtractionFailed: doc.ExtractionFailed,
		UploadedAt:       doc.UploadedAt,
	}
}

func toResponses(docs []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	return out
}
