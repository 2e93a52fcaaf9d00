// Package memory is the embedded storage driver: plain maps guarded by a
// mutex, with the same ownership scoping and error contract as the postgres
// driver. It backs single-user local deployments and the service tests.
package memory

import (
	"sync"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
)

// Store holds every collection behind one lock. Operations are short and
// copy data in and out, so a single RWMutex is enough.
type Store struct {
	mu sync.RWMutex

	users        map[string]domain.User        // by user ID
	clients      map[string]domain.Client      // by client ID
	loans        map[string]domain.Loan        // by loan ID
	transactions map[string]domain.Transaction // by transaction ID
	documents    map[string]domain.Document    // by document ID
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]domain.User),
		clients:      make(map[string]domain.Client),
		loans:        make(map[string]domain.Loan),
		transactions: make(map[string]domain.Transaction),
		documents:    make(map[string]domain.Document),
	}
}

// NewRepositoryProvider wires the in-memory repositories over a shared store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        &userRepository{store: store},
		ClientRepo:      &clientRepository{store: store},
		LoanRepo:        &loanRepository{store: store},
		TransactionRepo: &transactionRepository{store: store},
		DocumentRepo:    &documentRepository{store: store},
	}
}
