package memory

import (
	"context"
	"sort"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
)

type documentRepository struct {
	store *Store
}

var _ portsrepo.DocumentRepositoryFacade = (*documentRepository)(nil)

func (r *documentRepository) FindDocumentsByClient(_ context.Context, userID, clientID string) ([]domain.Document, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var docs []domain.Document
	for _, doc := range r.store.documents {
		if doc.UserID == userID && doc.ClientID == clientID {
			docs = append(docs, doc)
		}
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}

func (r *documentRepository) CountDocumentsByClient(_ context.Context, userID string) (map[string]int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	counts := make(map[string]int)
	for _, doc := range r.store.documents {
		if doc.UserID == userID {
			counts[doc.ClientID]++
		}
	}
	return counts, nil
}

func (r *documentRepository) SaveDocument(_ context.Context, doc domain.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.documents[doc.DocumentID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.documents[doc.DocumentID] = doc
	return nil
}

func (r *documentRepository) DeleteDocument(_ context.Context, userID, clientID, documentID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doc, ok := r.store.documents[documentID]
	if !ok || doc.UserID != userID || doc.ClientID != clientID {
		return apperrors.ErrNotFound
	}
	delete(r.store.documents, documentID)
	return nil
}
