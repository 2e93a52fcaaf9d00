package dto

import "github.com/emprestafacil/loan_ledger_app/internal/core/domain"

// SaveClientRequest is the create/update payload for a client. Field order
// matches the validation order.
type SaveClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
	Address  string `json:"address,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// ClientResponse is the API view of a client.
type ClientResponse struct {
	ClientID string `json:"id"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	Notes    string `json:"notes,omitempty"`
	// DocumentCount mirrors the front end's "N documento(s)" badge.
	DocumentCount int    `json:"documentCount"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ToClientResponse converts a domain client to its response representation.
func ToClientResponse(c *domain.Client, documentCount int) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		Name:          c.Name,
		Document:      c.Document,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		Notes:         c.Notes,
		DocumentCount: documentCount,
		CreatedAt:     c.CreatedAt.Format(dateTimeLayout),
		UpdatedAt:     c.LastUpdatedAt.Format(dateTimeLayout),
	}
}
