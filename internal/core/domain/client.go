package domain

// Client is a borrower. Document is the Brazilian tax identifier (CPF or
// CNPJ) and is unique per owning user.
type Client struct {
	ClientID string `json:"clientID"`
	UserID   string `json:"userID"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	Notes    string `json:"notes,omitempty"`
	AuditFields
}

// ClientSummary is the slim projection attached to loans and transactions.
type ClientSummary struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Summary returns the slim projection of the client.
func (c Client) Summary() ClientSummary {
	return ClientSummary{
		ClientID: c.ClientID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
	}
}
