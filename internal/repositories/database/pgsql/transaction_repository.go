package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	"github.com/emprestafacil/loan_ledger_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	db *pgxpool.Pool
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		Description:   d.Description,
		Category:      d.Category,
		Date:          d.Date,
		Responsible:   nullable(d.Responsible),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
	if d.ClientID != nil {
		m.ClientID = nullable(*d.ClientID)
	}
	if d.LoanID != nil {
		m.LoanID = nullable(*d.LoanID)
	}
	return m
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		Description:   m.Description,
		Category:      m.Category,
		Date:          m.Date,
		Responsible:   m.Responsible.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if m.ClientID.Valid {
		id := m.ClientID.String
		d.ClientID = &id
	}
	if m.LoanID.Valid {
		id := m.LoanID.String
		d.LoanID = &id
	}
	return d
}

const transactionColumns = `transaction_id, user_id, type, amount, description, category, date,
		client_id, loan_id, responsible, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Type,
		&m.Amount,
		&m.Description,
		&m.Category,
		&m.Date,
		&m.ClientID,
		&m.LoanID,
		&m.Responsible,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// buildFilterClause renders the filter as a WHERE tail plus its arguments.
// The first argument is always the user ID.
func buildFilterClause(userID string, filter portsrepo.TransactionFilter) (string, []any) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		clauses = append(clauses, "type = $"+strconv.Itoa(len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		clauses = append(clauses, "date >= $"+strconv.Itoa(len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		clauses = append(clauses, "date <= $"+strconv.Itoa(len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND transaction_id = $2;`
	m, err := scanTransaction(r.db.QueryRow(ctx, query, userID, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	d := toDomainTransaction(m)
	return &d, nil
}

func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, int, error) {
	where, args := buildFilterClause(userID, filter)

	var total int
	countQuery := `SELECT count(*) FROM transactions WHERE ` + where + `;`
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` + where +
		` ORDER BY date DESC, created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}
	query += `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

func (r *PgxTransactionRepository) FindAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	txns, _, err := r.FindTransactions(ctx, userID, portsrepo.TransactionFilter{})
	return txns, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, user_id, type, amount, description, category, date, client_id, loan_id, responsible, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Type,
		m.Amount,
		m.Description,
		m.Category,
		m.Date,
		m.ClientID,
		m.LoanID,
		m.Responsible,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
		UPDATE transactions
		SET type = $3, amount = $4, description = $5, category = $6, date = $7, client_id = $8, responsible = $9, last_updated_at = $10
		WHERE user_id = $1 AND transaction_id = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.UserID,
		m.TransactionID,
		m.Type,
		m.Amount,
		m.Description,
		m.Category,
		m.Date,
		m.ClientID,
		m.Responsible,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE user_id = $1 AND transaction_id = $2;`
	tag, err := r.db.Exec(ctx, query, userID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransactionsByLoan(ctx context.Context, userID, loanID string) error {
	query := `DELETE FROM transactions WHERE user_id = $1 AND loan_id = $2;`
	if _, err := r.db.Exec(ctx, query, userID, loanID); err != nil {
		return fmt.Errorf("failed to delete transactions of loan %s: %w", loanID, err)
	}
	return nil
}
