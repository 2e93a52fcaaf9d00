package repositories

import (
	"context"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
)

// LoanReader defines read operations for loan data, scoped to the owning user.
type LoanReader interface {
	// FindLoanByID retrieves a loan owned by userID.
	FindLoanByID(ctx context.Context, userID, loanID string) (*domain.Loan, error)

	// FindLoans retrieves all loans of userID, most recent first.
	FindLoans(ctx context.Context, userID string) ([]domain.Loan, error)

	// FindLoansByClient retrieves all loans of userID referencing clientID.
	FindLoansByClient(ctx context.Context, userID, clientID string) ([]domain.Loan, error)

	// FindLoansByStatus retrieves loans of userID in the given status.
	FindLoansByStatus(ctx context.Context, userID string, status domain.LoanStatus) ([]domain.Loan, error)
}

// LoanWriter defines write operations for loan data.
type LoanWriter interface {
	// SaveLoan persists a new loan.
	SaveLoan(ctx context.Context, loan domain.Loan) error

	// UpdateLoan updates an existing loan owned by userID.
	UpdateLoan(ctx context.Context, loan domain.Loan) error

	// DeleteLoan removes a loan owned by userID.
	DeleteLoan(ctx context.Context, userID, loanID string) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces.
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
