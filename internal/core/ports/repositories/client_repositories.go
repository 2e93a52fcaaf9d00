package repositories

import (
	"context"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
)

// ClientReader defines read operations for client data. Every method is
// scoped to the owning user.
type ClientReader interface {
	// FindClientByID retrieves a client owned by userID.
	FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error)

	// FindClients retrieves all clients of userID, most recent first.
	FindClients(ctx context.Context, userID string) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data.
type ClientWriter interface {
	// SaveClient persists a new client. Duplicate tax identifier or email
	// for the same user surfaces apperrors.ErrDuplicate.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client owned by userID.
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client owned by userID. Document metadata rows
	// go with it; the external file bytes are not touched.
	DeleteClient(ctx context.Context, userID, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
