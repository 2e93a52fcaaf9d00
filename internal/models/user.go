package models

import (
	"database/sql"
	"time"
)

// User is the row shape of the users table.
type User struct {
	UserID       string         `db:"user_id"`
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"` // NULL for OAuth-only users
	Name         string         `db:"name"`
	Phone        sql.NullString `db:"phone"`
	AuthProvider string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	IsVerified   bool           `db:"is_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
