package memory

import (
	"context"
	"sort"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
)

type loanRepository struct {
	store *Store
}

var _ portsrepo.LoanRepositoryFacade = (*loanRepository)(nil)

func (r *loanRepository) FindLoanByID(_ context.Context, userID, loanID string) (*domain.Loan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	loan, ok := r.store.loans[loanID]
	if !ok || loan.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &loan, nil
}

func (r *loanRepository) findLoans(userID string, keep func(domain.Loan) bool) []domain.Loan {
	var loans []domain.Loan
	for _, loan := range r.store.loans {
		if loan.UserID == userID && keep(loan) {
			loans = append(loans, loan)
		}
	}
	sort.SliceStable(loans, func(i, j int) bool {
		return loans[i].CreatedAt.After(loans[j].CreatedAt)
	})
	return loans
}

func (r *loanRepository) FindLoans(_ context.Context, userID string) ([]domain.Loan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.findLoans(userID, func(domain.Loan) bool { return true }), nil
}

func (r *loanRepository) FindLoansByClient(_ context.Context, userID, clientID string) ([]domain.Loan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.findLoans(userID, func(l domain.Loan) bool { return l.ClientID == clientID }), nil
}

func (r *loanRepository) FindLoansByStatus(_ context.Context, userID string, status domain.LoanStatus) ([]domain.Loan, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.findLoans(userID, func(l domain.Loan) bool { return l.Status == status }), nil
}

func (r *loanRepository) SaveLoan(_ context.Context, loan domain.Loan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.loans[loan.LoanID]; exists {
		return apperrors.ErrDuplicate
	}
	loan.Client = nil // stored bare; enrichment happens in the service
	r.store.loans[loan.LoanID] = loan
	return nil
}

func (r *loanRepository) UpdateLoan(_ context.Context, loan domain.Loan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.loans[loan.LoanID]
	if !ok || existing.UserID != loan.UserID {
		return apperrors.ErrNotFound
	}
	loan.Client = nil
	r.store.loans[loan.LoanID] = loan
	return nil
}

func (r *loanRepository) DeleteLoan(_ context.Context, userID, loanID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	loan, ok := r.store.loans[loanID]
	if !ok || loan.UserID != userID {
		return apperrors.ErrNotFound
	}
	delete(r.store.loans, loanID)
	return nil
}
