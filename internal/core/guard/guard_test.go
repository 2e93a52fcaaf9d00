package guard_test

import (
	"testing"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/emprestafacil/loan_ledger_app/internal/core/guard"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	assert.NoError(t, guard.CanTransition(domain.LoanActive, domain.LoanPaid))
	assert.NoError(t, guard.CanTransition(domain.LoanActive, domain.LoanCancelled))

	// Paid and cancelled are terminal.
	assert.ErrorIs(t, guard.CanTransition(domain.LoanPaid, domain.LoanActive), guard.ErrInvalidStatusTransition)
	assert.ErrorIs(t, guard.CanTransition(domain.LoanPaid, domain.LoanCancelled), guard.ErrInvalidStatusTransition)
	assert.ErrorIs(t, guard.CanTransition(domain.LoanCancelled, domain.LoanPaid), guard.ErrInvalidStatusTransition)

	// Overdue is representable but has no outgoing transitions.
	assert.ErrorIs(t, guard.CanTransition(domain.LoanOverdue, domain.LoanPaid), guard.ErrInvalidStatusTransition)
	assert.ErrorIs(t, guard.CanTransition(domain.LoanActive, domain.LoanOverdue), guard.ErrInvalidStatusTransition)
}

func TestCanCreateLoan(t *testing.T) {
	balance := decimal.NewFromInt(10000)

	assert.NoError(t, guard.CanCreateLoan(decimal.NewFromInt(5000), balance))

	// The boundary is inclusive: lending the entire balance is allowed.
	assert.NoError(t, guard.CanCreateLoan(balance, balance))

	err := guard.CanCreateLoan(decimal.NewFromInt(10001), balance)
	assert.ErrorIs(t, err, guard.ErrInsufficientFunds)
}

func TestCanDeleteClient(t *testing.T) {
	assert.NoError(t, guard.CanDeleteClient(nil))
	assert.NoError(t, guard.CanDeleteClient([]domain.Loan{
		{Status: domain.LoanPaid},
		{Status: domain.LoanCancelled},
	}))

	err := guard.CanDeleteClient([]domain.Loan{
		{Status: domain.LoanPaid},
		{Status: domain.LoanActive},
	})
	assert.ErrorIs(t, err, guard.ErrHasActiveLoans)
}

func TestCanDeleteLoan(t *testing.T) {
	assert.ErrorIs(t, guard.CanDeleteLoan(domain.Loan{Status: domain.LoanActive}), guard.ErrLoanStillActive)
	assert.NoError(t, guard.CanDeleteLoan(domain.Loan{Status: domain.LoanPaid}))
	assert.NoError(t, guard.CanDeleteLoan(domain.Loan{Status: domain.LoanCancelled}))
}

func TestCanDeleteTransaction(t *testing.T) {
	loanID := "b7c9a5ce-02cd-4f9c-9e35-6f8b8f9f4e21"

	assert.NoError(t, guard.CanDeleteTransaction(domain.Transaction{}))
	assert.ErrorIs(t,
		guard.CanDeleteTransaction(domain.Transaction{LoanID: &loanID}),
		guard.ErrLinkedToLoan,
	)
}
