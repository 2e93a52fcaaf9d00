package services

import (
	"context"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
)

// LoanReaderSvc defines read operations for loans.
type LoanReaderSvc interface {
	// GetLoanByID retrieves an enriched loan owned by userID.
	GetLoanByID(ctx context.Context, userID, loanID string) (*domain.Loan, error)

	// ListLoans retrieves all enriched loans of userID, most recent first.
	ListLoans(ctx context.Context, userID string) ([]domain.Loan, error)

	// ListLoansByStatus retrieves enriched loans of userID in the given status.
	ListLoansByStatus(ctx context.Context, userID string, status domain.LoanStatus) ([]domain.Loan, error)
}

// LoanWriterSvc defines the loan lifecycle operations.
type LoanWriterSvc interface {
	// CreateLoan validates, checks funds against the replayed cash balance,
	// persists the loan and emits the linked disbursement movement.
	CreateLoan(ctx context.Context, userID string, req dto.SaveLoanRequest) (*domain.Loan, error)

	// UpdateLoan updates a loan, recomputing the final amount and patching
	// the linked disbursement movement when the principal changed.
	UpdateLoan(ctx context.Context, userID, loanID string, req dto.SaveLoanRequest) (*domain.Loan, error)

	// PayLoan settles an active loan and emits the linked payment movement.
	PayLoan(ctx context.Context, userID, loanID string, req dto.PayLoanRequest) (*domain.Loan, error)

	// CancelLoan moves an active loan to cancelled. No movement is emitted.
	CancelLoan(ctx context.Context, userID, loanID string) (*domain.Loan, error)

	// DeleteLoan removes a settled loan together with its linked movements.
	DeleteLoan(ctx context.Context, userID, loanID string) error
}

// LoanSvcFacade combines all loan-related service interfaces.
type LoanSvcFacade interface {
	LoanReaderSvc
	LoanWriterSvc
}
