package pgsql

import (
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the postgres-backed repositories.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(dbPool),
		ClientRepo:      newPgxClientRepository(dbPool),
		LoanRepo:        newPgxLoanRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		DocumentRepo:    newPgxDocumentRepository(dbPool),
	}
}
