package services

import (
	"context"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
)

// TransactionReaderSvc defines read operations for cash movements.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a movement owned by userID.
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves movements matching the filter plus the
	// total match count.
	ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, int, error)

	// Summarize computes the income/expense/category overview for an
	// optional date range.
	Summarize(ctx context.Context, userID string, filter portsrepo.TransactionFilter) (*domain.TransactionSummary, error)

	// ExportCSV renders the movements matching the filter as a CSV document.
	ExportCSV(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]byte, error)
}

// TransactionWriterSvc defines write operations for cash movements.
type TransactionWriterSvc interface {
	// CreateTransaction validates and persists a manual movement.
	CreateTransaction(ctx context.Context, userID string, req dto.SaveTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction validates and updates a movement.
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.SaveTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a movement. Rejected for loan-linked rows.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionSvcFacade combines the movement service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
