package dto

import (
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveTransactionRequest is the create/update payload for a cash movement.
type SaveTransactionRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	ClientID    *string         `json:"client_id,omitempty"`
	LoanID      *string         `json:"loan_id,omitempty"`
	Responsible string          `json:"responsible,omitempty"`
}

// ListTransactionsParams are the query filters of the transaction list.
type ListTransactionsParams struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=50"`
	Type      string `form:"type"`
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// DateRangeParams bound the summary and export endpoints.
type DateRangeParams struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// TransactionResponse is the API view of a cash movement.
type TransactionResponse struct {
	TransactionID string                `json:"id"`
	Type          string                `json:"type"`
	Amount        decimal.Decimal       `json:"amount"`
	Description   string                `json:"description"`
	Category      string                `json:"category"`
	Date          string                `json:"date"`
	ClientID      *string               `json:"client_id,omitempty"`
	LoanID        *string               `json:"loan_id,omitempty"`
	Responsible   string                `json:"responsible,omitempty"`
	Client        *domain.ClientSummary `json:"clients,omitempty"`
	CreatedAt     string                `json:"created_at"`
}

// ToTransactionResponse converts a domain movement to its response form.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		Description:   t.Description,
		Category:      t.Category,
		Date:          t.Date.Format(dateLayout),
		ClientID:      t.ClientID,
		LoanID:        t.LoanID,
		Responsible:   t.Responsible,
		Client:        t.Client,
		CreatedAt:     t.CreatedAt.Format(dateTimeLayout),
	}
}

// ToTransactionResponses converts a slice of domain movements.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}
