package domain

import "time"

// Document is metadata for a file attached to a client. The bytes live in the
// external CDN; the document ID is issued by the upload widget, not by us.
type Document struct {
	DocumentID string    `json:"documentID"`
	ClientID   string    `json:"clientID"`
	UserID     string    `json:"userID"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	StorageURL string    `json:"storageURL"`
	UploadedAt time.Time `json:"uploadedAt"`
}
