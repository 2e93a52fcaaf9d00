package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/utils"
	"github.com/emprestafacil/loan_ledger_app/internal/validation"
	"github.com/google/uuid"
)

// userService implements the UserSvcFacade interface.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to find user by email")
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if err := validation.Registration(req); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("Este email já está cadastrado")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: &hashedPassword,
		AuthProvider: domain.ProviderLocal,
		IsVerified:   false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Este email já está cadastrado")
		}
		s.LogError(ctx, err, "Failed to save new user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) CreateOAuthUser(ctx context.Context, name, email, authProvider, providerUserID string, emailVerified bool) (*domain.User, error) {
	// Reuse by provider identity first; a returning OAuth user keeps their ID.
	existing, err := s.userRepo.FindUserByProviderDetails(ctx, authProvider, providerUserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up OAuth user by provider details")
		return nil, fmt.Errorf("failed to look up OAuth user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	// A local account with the same email becomes linked to the provider.
	byEmail, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up OAuth user by email")
		return nil, fmt.Errorf("failed to look up OAuth user: %w", err)
	}
	if byEmail != nil {
		byEmail.AuthProvider = domain.AuthProviderType(authProvider)
		byEmail.ProviderUserID = providerUserID
		if emailVerified {
			byEmail.IsVerified = true
		}
		byEmail.LastUpdatedAt = time.Now()
		if err := s.userRepo.UpdateUser(ctx, *byEmail); err != nil {
			s.LogError(ctx, err, "Failed to link provider to existing user", slog.String("user_id", byEmail.UserID))
			return nil, fmt.Errorf("failed to link OAuth provider: %w", err)
		}
		return byEmail, nil
	}

	now := time.Now()
	user := domain.User{
		UserID:         uuid.NewString(),
		Name:           name,
		Email:          email,
		AuthProvider:   domain.AuthProviderType(authProvider),
		ProviderUserID: providerUserID,
		IsVerified:     emailVerified,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save OAuth user")
		return nil, fmt.Errorf("failed to create OAuth user: %w", err)
	}

	s.LogInfo(ctx, "OAuth user created", slog.String("user_id", user.UserID), slog.String("provider", authProvider))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	user.LastUpdatedAt = time.Now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, expiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", userID))
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Email ou senha inválidos")
		}
		s.LogError(ctx, err, "Failed to find user for authentication")
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if user.PasswordHash == nil {
		// OAuth-only account, no password to check.
		return nil, apperrors.NewUnauthorizedError("Email ou senha inválidos")
	}
	if !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Email ou senha inválidos")
	}

	return user, nil
}
