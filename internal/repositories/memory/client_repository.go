package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
)

type clientRepository struct {
	store *Store
}

var _ portsrepo.ClientRepositoryFacade = (*clientRepository)(nil)

func (r *clientRepository) FindClientByID(_ context.Context, userID, clientID string) (*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	client, ok := r.store.clients[clientID]
	if !ok || client.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &client, nil
}

func (r *clientRepository) FindClients(_ context.Context, userID string) ([]domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var clients []domain.Client
	for _, client := range r.store.clients {
		if client.UserID == userID {
			clients = append(clients, client)
		}
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return clients[i].CreatedAt.After(clients[j].CreatedAt)
	})
	return clients, nil
}

// conflictsWith reports whether two clients of the same user collide on the
// unique columns (tax identifier or email).
func conflictsWith(a, b domain.Client) bool {
	if a.UserID != b.UserID || a.ClientID == b.ClientID {
		return false
	}
	if a.Document != "" && a.Document == b.Document {
		return true
	}
	if a.Email != "" && strings.EqualFold(a.Email, b.Email) {
		return true
	}
	return false
}

func (r *clientRepository) SaveClient(_ context.Context, client domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.clients[client.ClientID]; exists {
		return apperrors.ErrDuplicate
	}
	for _, existing := range r.store.clients {
		if conflictsWith(client, existing) {
			return apperrors.ErrDuplicate
		}
	}
	r.store.clients[client.ClientID] = client
	return nil
}

func (r *clientRepository) UpdateClient(_ context.Context, client domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.clients[client.ClientID]
	if !ok || existing.UserID != client.UserID {
		return apperrors.ErrNotFound
	}
	for _, other := range r.store.clients {
		if conflictsWith(client, other) {
			return apperrors.ErrDuplicate
		}
	}
	r.store.clients[client.ClientID] = client
	return nil
}

func (r *clientRepository) DeleteClient(_ context.Context, userID, clientID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	client, ok := r.store.clients[clientID]
	if !ok || client.UserID != userID {
		return apperrors.ErrNotFound
	}
	delete(r.store.clients, clientID)

	// Document metadata goes with the client; the external bytes stay put.
	for id, doc := range r.store.documents {
		if doc.ClientID == clientID {
			delete(r.store.documents, id)
		}
	}
	return nil
}
