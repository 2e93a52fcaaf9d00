package dto

import (
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
)

// RegisterRequest carries the registration payload. Field order matches the
// validation order: email, password, name, phone.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// LoginRequest carries the credential payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest updates the caller's own profile.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AuthProvider string `json:"authProvider"`
	IsVerified   bool   `json:"isVerified"`
}

// LoginResponse returns the signed access token together with the user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to its response representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:       u.UserID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		AuthProvider: string(u.AuthProvider),
		IsVerified:   u.IsVerified,
	}
}
