package services

import (
	"context"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
)

// ClientReaderSvc defines read operations for clients.
type ClientReaderSvc interface {
	// GetClientByID retrieves a client owned by userID.
	GetClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error)

	// ListClients retrieves all clients of userID, most recent first,
	// together with their document counts.
	ListClients(ctx context.Context, userID string) ([]domain.Client, map[string]int, error)
}

// ClientWriterSvc defines write operations for clients.
type ClientWriterSvc interface {
	// CreateClient validates and persists a new client.
	CreateClient(ctx context.Context, userID string, req dto.SaveClientRequest) (*domain.Client, error)

	// UpdateClient validates and updates an existing client.
	UpdateClient(ctx context.Context, userID, clientID string, req dto.SaveClientRequest) (*domain.Client, error)

	// DeleteClient removes a client. Rejected while the client has active
	// loans.
	DeleteClient(ctx context.Context, userID, clientID string) error
}

// ClientDocumentSvc manages the document metadata attached to a client.
type ClientDocumentSvc interface {
	// ListDocuments lists the documents of a client.
	ListDocuments(ctx context.Context, userID, clientID string) ([]domain.Document, error)

	// AttachDocument records upload metadata for a client.
	AttachDocument(ctx context.Context, userID, clientID string, req dto.AttachDocumentRequest) (*domain.Document, error)

	// DetachDocument removes a document reference from a client.
	DetachDocument(ctx context.Context, userID, clientID, documentID string) error
}

// ClientSvcFacade combines all client-related service interfaces.
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
	ClientDocumentSvc
}
