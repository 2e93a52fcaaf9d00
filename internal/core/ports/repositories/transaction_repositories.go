package repositories

import (
	"context"
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
)

// TransactionFilter narrows transaction queries. Zero values mean "no
// constraint". Results are ordered by movement date descending, ties broken
// by creation time.
type TransactionFilter struct {
	Type      domain.TransactionType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// TransactionReader defines read operations for cash movements, scoped to
// the owning user.
type TransactionReader interface {
	// FindTransactionByID retrieves a movement owned by userID.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// FindTransactions retrieves movements of userID matching the filter,
	// together with the total match count for pagination.
	FindTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, int, error)

	// FindAllTransactions retrieves the full movement history of userID.
	// The running balance is re-derived from this, never kept incrementally.
	FindAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for cash movements.
type TransactionWriter interface {
	// SaveTransaction persists a new movement.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates an existing movement owned by userID.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a movement owned by userID.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error

	// DeleteTransactionsByLoan removes the movements linked to a loan.
	// Used only when the loan itself is deleted.
	DeleteTransactionsByLoan(ctx context.Context, userID, loanID string) error
}

// TransactionRepositoryFacade combines the movement repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
