package models

import "time"

// Document is the row shape of the client_documents table.
type Document struct {
	DocumentID string    `db:"document_id"`
	ClientID   string    `db:"client_id"`
	UserID     string    `db:"user_id"`
	FileName   string    `db:"file_name"`
	FileSize   int64     `db:"file_size"`
	MimeType   string    `db:"mime_type"`
	StorageURL string    `db:"storage_url"`
	UploadedAt time.Time `db:"uploaded_at"`
}
