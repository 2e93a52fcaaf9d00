package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	"github.com/emprestafacil/loan_ledger_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLoanRepository struct {
	db *pgxpool.Pool
}

func newPgxLoanRepository(db *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{db: db}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func toModelLoan(d domain.Loan) models.Loan {
	m := models.Loan{
		LoanID:       d.LoanID,
		UserID:       d.UserID,
		ClientID:     d.ClientID,
		Amount:       d.Amount,
		InterestRate: d.InterestRate,
		FinalAmount:  d.FinalAmount,
		StartDate:    d.StartDate,
		DueDate:      d.DueDate,
		Notes:        nullable(d.Notes),
		Status:       string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
	if d.PaymentAmount != nil {
		m.PaymentAmount = decimal.NullDecimal{Decimal: *d.PaymentAmount, Valid: true}
	}
	if d.PaymentDate != nil {
		m.PaymentDate = sql.NullTime{Time: *d.PaymentDate, Valid: true}
	}
	return m
}

func toDomainLoan(m models.Loan) domain.Loan {
	d := domain.Loan{
		LoanID:       m.LoanID,
		UserID:       m.UserID,
		ClientID:     m.ClientID,
		Amount:       m.Amount,
		InterestRate: m.InterestRate,
		FinalAmount:  m.FinalAmount,
		StartDate:    m.StartDate,
		DueDate:      m.DueDate,
		Notes:        m.Notes.String,
		Status:       domain.LoanStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
	if m.PaymentAmount.Valid {
		amount := m.PaymentAmount.Decimal
		d.PaymentAmount = &amount
	}
	if m.PaymentDate.Valid {
		t := m.PaymentDate.Time
		d.PaymentDate = &t
	}
	return d
}

const loanColumns = `loan_id, user_id, client_id, amount, interest_rate, final_amount, start_date, due_date,
		notes, status, payment_amount, payment_date, created_at, last_updated_at`

func scanLoan(row pgx.Row) (models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.UserID,
		&m.ClientID,
		&m.Amount,
		&m.InterestRate,
		&m.FinalAmount,
		&m.StartDate,
		&m.DueDate,
		&m.Notes,
		&m.Status,
		&m.PaymentAmount,
		&m.PaymentDate,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxLoanRepository) queryLoans(ctx context.Context, query string, args ...any) ([]domain.Loan, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, toDomainLoan(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loan rows: %w", err)
	}
	return loans, nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 AND loan_id = $2;`
	m, err := scanLoan(r.db.QueryRow(ctx, query, userID, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	d := toDomainLoan(m)
	return &d, nil
}

func (r *PgxLoanRepository) FindLoans(ctx context.Context, userID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 ORDER BY created_at DESC;`
	return r.queryLoans(ctx, query, userID)
}

func (r *PgxLoanRepository) FindLoansByClient(ctx context.Context, userID, clientID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 AND client_id = $2 ORDER BY created_at DESC;`
	return r.queryLoans(ctx, query, userID, clientID)
}

func (r *PgxLoanRepository) FindLoansByStatus(ctx context.Context, userID string, status domain.LoanStatus) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC;`
	return r.queryLoans(ctx, query, userID, string(status))
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := toModelLoan(loan)
	query := `
		INSERT INTO loans (loan_id, user_id, client_id, amount, interest_rate, final_amount, start_date, due_date, notes, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.db.Exec(ctx, query,
		m.LoanID,
		m.UserID,
		m.ClientID,
		m.Amount,
		m.InterestRate,
		m.FinalAmount,
		m.StartDate,
		m.DueDate,
		m.Notes,
		m.Status,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save loan %s: %w", loan.LoanID, err)
	}
	return nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := toModelLoan(loan)
	query := `
		UPDATE loans
		SET client_id = $3, amount = $4, interest_rate = $5, final_amount = $6, start_date = $7, due_date = $8,
		    notes = $9, status = $10, payment_amount = $11, payment_date = $12, last_updated_at = $13
		WHERE user_id = $1 AND loan_id = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.UserID,
		m.LoanID,
		m.ClientID,
		m.Amount,
		m.InterestRate,
		m.FinalAmount,
		m.StartDate,
		m.DueDate,
		m.Notes,
		m.Status,
		m.PaymentAmount,
		m.PaymentDate,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", loan.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLoanRepository) DeleteLoan(ctx context.Context, userID, loanID string) error {
	query := `DELETE FROM loans WHERE user_id = $1 AND loan_id = $2;`
	tag, err := r.db.Exec(ctx, query, userID, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan %s: %w", loanID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
