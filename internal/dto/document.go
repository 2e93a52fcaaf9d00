package dto

import "github.com/emprestafacil/loan_ledger_app/internal/core/domain"

// AttachDocumentRequest registers upload metadata for a client. The document
// ID and storage URL are issued by the external upload widget.
type AttachDocumentRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
	FileName   string `json:"file_name" binding:"required"`
	FileSize   int64  `json:"file_size" binding:"required,gt=0"`
	MimeType   string `json:"mime_type" binding:"required"`
	StorageURL string `json:"storage_url" binding:"required,url"`
}

// DocumentResponse is the API view of a document reference.
type DocumentResponse struct {
	DocumentID string `json:"id"`
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	MimeType   string `json:"mime_type"`
	StorageURL string `json:"storage_url"`
	UploadedAt string `json:"uploaded_at"`
}

// ToDocumentResponse converts a domain document to its response form.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: d.DocumentID,
		FileName:   d.FileName,
		FileSize:   d.FileSize,
		MimeType:   d.MimeType,
		StorageURL: d.StorageURL,
		UploadedAt: d.UploadedAt.Format(dateTimeLayout),
	}
}

// ToDocumentResponses converts a slice of domain documents.
func ToDocumentResponses(docs []domain.Document) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i := range docs {
		out[i] = ToDocumentResponse(&docs[i])
	}
	return out
}
