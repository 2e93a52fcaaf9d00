package memory

import (
	"context"
	"strings"
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
)

type userRepository struct {
	store *Store
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

func (r *userRepository) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[userID]
	if !ok || user.DeletedAt != nil {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.DeletedAt == nil && strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *userRepository) FindUserByProviderDetails(_ context.Context, authProvider string, providerUserID string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.DeletedAt == nil && string(user.AuthProvider) == authProvider && user.ProviderUserID == providerUserID {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *userRepository) SaveUser(_ context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.users[user.UserID]; exists {
		return apperrors.ErrDuplicate
	}
	for _, existing := range r.store.users {
		if existing.DeletedAt == nil && strings.EqualFold(existing.Email, user.Email) {
			return apperrors.ErrDuplicate
		}
	}
	r.store.users[user.UserID] = user
	return nil
}

func (r *userRepository) UpdateUser(_ context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.users[user.UserID]
	if !ok || existing.DeletedAt != nil {
		return apperrors.ErrNotFound
	}
	// Token fields are managed by the dedicated methods, not by profile updates.
	user.RefreshTokenHash = existing.RefreshTokenHash
	user.RefreshTokenExpiryTime = existing.RefreshTokenExpiryTime
	r.store.users[user.UserID] = user
	return nil
}

func (r *userRepository) UpdateRefreshToken(_ context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userID]
	if !ok || user.DeletedAt != nil {
		return apperrors.ErrNotFound
	}
	user.RefreshTokenHash = &refreshTokenHash
	user.RefreshTokenExpiryTime = &expiry
	r.store.users[userID] = user
	return nil
}

func (r *userRepository) ClearRefreshToken(_ context.Context, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[userID]
	if !ok || user.DeletedAt != nil {
		return apperrors.ErrNotFound
	}
	user.RefreshTokenHash = nil
	user.RefreshTokenExpiryTime = nil
	r.store.users[userID] = user
	return nil
}
