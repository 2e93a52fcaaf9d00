// Package guard enforces the domain policy rules that gate mutations: the
// loan status state machine, the sufficient-funds check and the deletion
// rules for clients, loans and linked movements.
package guard

import (
	"errors"
	"fmt"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds rejects a loan whose principal exceeds the cash balance.
	ErrInsufficientFunds = errors.New("insufficient cash balance for loan")
	// ErrHasActiveLoans rejects deleting a client that still has active loans.
	ErrHasActiveLoans = errors.New("client has active loans")
	// ErrLoanStillActive rejects deleting a loan that has not been settled.
	ErrLoanStillActive = errors.New("loan is still active")
	// ErrLinkedToLoan rejects deleting a movement emitted by a loan lifecycle event.
	ErrLinkedToLoan = errors.New("transaction is linked to a loan")
	// ErrInvalidStatusTransition rejects a loan status change the state machine forbids.
	ErrInvalidStatusTransition = errors.New("invalid loan status transition")
)

// CanTransition reports whether a loan may move from one status to another.
// Active loans may be paid or cancelled; paid and cancelled are terminal.
func CanTransition(from, to domain.LoanStatus) error {
	if from == domain.LoanActive && (to == domain.LoanPaid || to == domain.LoanCancelled) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, from, to)
}

// CanCreateLoan checks the candidate principal against the currently known
// cash balance. The balance is the caller's local snapshot: a concurrent
// writer may have changed it since it was derived, and this check does not
// re-fetch.
func CanCreateLoan(candidateAmount, currentCashBalance decimal.Decimal) error {
	if candidateAmount.GreaterThan(currentCashBalance) {
		return fmt.Errorf("%w: amount %s exceeds balance %s",
			ErrInsufficientFunds, candidateAmount.String(), currentCashBalance.String())
	}
	return nil
}

// CanDeleteClient rejects deletion while any of the client's loans is active.
func CanDeleteClient(loansOfClient []domain.Loan) error {
	for _, l := range loansOfClient {
		if l.Status == domain.LoanActive {
			return ErrHasActiveLoans
		}
	}
	return nil
}

// CanDeleteLoan rejects deletion of active loans.
func CanDeleteLoan(loan domain.Loan) error {
	if loan.Status == domain.LoanActive {
		return ErrLoanStillActive
	}
	return nil
}

// CanDeleteTransaction rejects deletion of loan-linked movements. They are
// immutable side effects of the loan lifecycle and only go away with the loan.
func CanDeleteTransaction(txn domain.Transaction) error {
	if txn.IsLinkedToLoan() {
		return ErrLinkedToLoan
	}
	return nil
}
