package repositories

import (
	"context"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
)

// DocumentRepositoryFacade stores document metadata for clients. The file
// bytes live in the external CDN and are never handled here.
type DocumentRepositoryFacade interface {
	// FindDocumentsByClient lists the documents attached to a client.
	FindDocumentsByClient(ctx context.Context, userID, clientID string) ([]domain.Document, error)

	// CountDocumentsByClient returns the number of documents per client for
	// all clients of userID.
	CountDocumentsByClient(ctx context.Context, userID string) (map[string]int, error)

	// SaveDocument attaches document metadata to a client.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// DeleteDocument detaches a document from a client.
	DeleteDocument(ctx context.Context, userID, clientID, documentID string) error
}
