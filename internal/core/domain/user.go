package domain

import "time"

// AuthProviderType identifies how a user authenticates.
type AuthProviderType string

const (
	ProviderLocal  AuthProviderType = "LOCAL"
	ProviderGoogle AuthProviderType = "GOOGLE"
)

// User is an account owner. Every client, loan and transaction is scoped to
// exactly one user; repositories never return rows owned by someone else.
type User struct {
	UserID         string           `json:"userID"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	Phone          string           `json:"phone"`
	PasswordHash   *string          `json:"-"` // nil for OAuth-only users
	AuthProvider   AuthProviderType `json:"authProvider"`
	ProviderUserID string           `json:"-"`
	IsVerified     bool             `json:"isVerified"`

	RefreshTokenHash       *string    `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	AuditFields
	DeletedAt *time.Time `json:"-"`
}
