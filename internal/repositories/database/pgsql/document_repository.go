package pgsql

import (
	"context"
	"fmt"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	"github.com/emprestafacil/loan_ledger_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	db *pgxpool.Pool
}

func newPgxDocumentRepository(db *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{db: db}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func toDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID: m.DocumentID,
		ClientID:   m.ClientID,
		UserID:     m.UserID,
		FileName:   m.FileName,
		FileSize:   m.FileSize,
		MimeType:   m.MimeType,
		StorageURL: m.StorageURL,
		UploadedAt: m.UploadedAt,
	}
}

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.ClientID,
		&m.UserID,
		&m.FileName,
		&m.FileSize,
		&m.MimeType,
		&m.StorageURL,
		&m.UploadedAt,
	)
	return m, err
}

func (r *PgxDocumentRepository) FindDocumentsByClient(ctx context.Context, userID, clientID string) ([]domain.Document, error) {
	query := `
		SELECT document_id, client_id, user_id, file_name, file_size, mime_type, storage_url, uploaded_at
		FROM client_documents
		WHERE user_id = $1 AND client_id = $2
		ORDER BY uploaded_at DESC;
	`
	rows, err := r.db.Query(ctx, query, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, toDomainDocument(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document rows: %w", err)
	}
	return docs, nil
}

func (r *PgxDocumentRepository) CountDocumentsByClient(ctx context.Context, userID string) (map[string]int, error) {
	query := `
		SELECT client_id, count(*)
		FROM client_documents
		WHERE user_id = $1
		GROUP BY client_id;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var clientID string
		var count int
		if err := rows.Scan(&clientID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan document count row: %w", err)
		}
		counts[clientID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document count rows: %w", err)
	}
	return counts, nil
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	query := `
		INSERT INTO client_documents (document_id, client_id, user_id, file_name, file_size, mime_type, storage_url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		doc.DocumentID,
		doc.ClientID,
		doc.UserID,
		doc.FileName,
		doc.FileSize,
		doc.MimeType,
		doc.StorageURL,
		doc.UploadedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save document %s: %w", doc.DocumentID, err)
	}
	return nil
}

func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, userID, clientID, documentID string) error {
	query := `DELETE FROM client_documents WHERE user_id = $1 AND client_id = $2 AND document_id = $3;`
	tag, err := r.db.Exec(ctx, query, userID, clientID, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
