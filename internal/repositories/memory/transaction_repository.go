package memory

import (
	"context"
	"sort"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
)

type transactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func (r *transactionRepository) FindTransactionByID(_ context.Context, userID, transactionID string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txn, ok := r.store.transactions[transactionID]
	if !ok || txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func matchesFilter(txn domain.Transaction, filter portsrepo.TransactionFilter) bool {
	if filter.Type != "" && txn.Type != filter.Type {
		return false
	}
	if filter.Category != "" && txn.Category != filter.Category {
		return false
	}
	if filter.StartDate != nil && txn.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && txn.Date.After(*filter.EndDate) {
		return false
	}
	return true
}

func (r *transactionRepository) FindTransactions(_ context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var txns []domain.Transaction
	for _, txn := range r.store.transactions {
		if txn.UserID == userID && matchesFilter(txn, filter) {
			txns = append(txns, txn)
		}
	}

	// Movement date descending, creation time as the tie-break.
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.After(txns[j].Date)
		}
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})

	total := len(txns)
	if filter.Offset > 0 {
		if filter.Offset >= len(txns) {
			return nil, total, nil
		}
		txns = txns[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(txns) {
		txns = txns[:filter.Limit]
	}
	return txns, total, nil
}

func (r *transactionRepository) FindAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txns, _, err := r.FindTransactions(ctx, userID, portsrepo.TransactionFilter{})
	return txns, err
}

func (r *transactionRepository) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.transactions[txn.TransactionID]; exists {
		return apperrors.ErrDuplicate
	}
	txn.Client = nil
	r.store.transactions[txn.TransactionID] = txn
	return nil
}

func (r *transactionRepository) UpdateTransaction(_ context.Context, txn domain.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.transactions[txn.TransactionID]
	if !ok || existing.UserID != txn.UserID {
		return apperrors.ErrNotFound
	}
	txn.Client = nil
	r.store.transactions[txn.TransactionID] = txn
	return nil
}

func (r *transactionRepository) DeleteTransaction(_ context.Context, userID, transactionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	txn, ok := r.store.transactions[transactionID]
	if !ok || txn.UserID != userID {
		return apperrors.ErrNotFound
	}
	delete(r.store.transactions, transactionID)
	return nil
}

func (r *transactionRepository) DeleteTransactionsByLoan(_ context.Context, userID, loanID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, txn := range r.store.transactions {
		if txn.UserID == userID && txn.LoanID != nil && *txn.LoanID == loanID {
			delete(r.store.transactions, id)
		}
	}
	return nil
}
