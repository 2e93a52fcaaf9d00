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
)

type PgxClientRepository struct {
	db *pgxpool.Pool
}

func newPgxClientRepository(db *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{db: db}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID: d.ClientID,
		UserID:   d.UserID,
		Name:     d.Name,
		Document: nullable(d.Document),
		Email:    nullable(d.Email),
		Phone:    nullable(d.Phone),
		Address:  nullable(d.Address),
		Notes:    nullable(d.Notes),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID: m.ClientID,
		UserID:   m.UserID,
		Name:     m.Name,
		Document: m.Document.String,
		Email:    m.Email.String,
		Phone:    m.Phone.String,
		Address:  m.Address.String,
		Notes:    m.Notes.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const clientColumns = `client_id, user_id, name, document, email, phone, address, notes, created_at, last_updated_at`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.UserID,
		&m.Name,
		&m.Document,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.Notes,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1 AND client_id = $2;`
	m, err := scanClient(r.db.QueryRow(ctx, query, userID, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	d := toDomainClient(m)
	return &d, nil
}

func (r *PgxClientRepository) FindClients(ctx context.Context, userID string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		m, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, toDomainClient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate client rows: %w", err)
	}
	return clients, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	query := `
		INSERT INTO clients (client_id, user_id, name, document, email, phone, address, notes, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.ClientID,
		m.UserID,
		m.Name,
		m.Document,
		m.Email,
		m.Phone,
		m.Address,
		m.Notes,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save client %s: %w", client.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	query := `
		UPDATE clients
		SET name = $3, document = $4, email = $5, phone = $6, address = $7, notes = $8, last_updated_at = $9
		WHERE user_id = $1 AND client_id = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		m.UserID,
		m.ClientID,
		m.Name,
		m.Document,
		m.Email,
		m.Phone,
		m.Address,
		m.Notes,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update client %s: %w", client.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, userID, clientID string) error {
	// Document metadata rows cascade with the client; the external file
	// bytes are owned by the CDN and stay put.
	query := `DELETE FROM clients WHERE user_id = $1 AND client_id = $2;`
	tag, err := r.db.Exec(ctx, query, userID, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
