package dto

import (
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

// SaveLoanRequest is the create/update payload for a loan. Dates are ISO
// calendar dates; amounts accept JSON numbers or strings.
type SaveLoanRequest struct {
	ClientID     string          `json:"client_id"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	StartDate    string          `json:"start_date"`
	DueDate      string          `json:"due_date"`
	Notes        string          `json:"description,omitempty"`
}

// PayLoanRequest settles a loan. Both fields are optional: the payment amount
// defaults to the computed payoff, the date to now.
type PayLoanRequest struct {
	PaymentAmount *decimal.Decimal `json:"payment_amount,omitempty"`
	PaymentDate   *string          `json:"payment_date,omitempty"`
}

// LoanResponse is the enriched API view of a loan.
type LoanResponse struct {
	LoanID        string                `json:"id"`
	ClientID      string                `json:"client_id"`
	Amount        decimal.Decimal       `json:"amount"`
	InterestRate  decimal.Decimal       `json:"interest_rate"`
	FinalAmount   decimal.Decimal       `json:"final_amount"`
	StartDate     string                `json:"start_date"`
	DueDate       string                `json:"due_date"`
	Notes         string                `json:"description,omitempty"`
	Status        string                `json:"status"`
	PaymentAmount *decimal.Decimal      `json:"payment_amount,omitempty"`
	PaymentDate   *string               `json:"payment_date,omitempty"`
	Client        *domain.ClientSummary `json:"clients,omitempty"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
}

// ToLoanResponse converts a domain loan to its response representation.
func ToLoanResponse(l *domain.Loan) LoanResponse {
	resp := LoanResponse{
		LoanID:        l.LoanID,
		ClientID:      l.ClientID,
		Amount:        l.Amount,
		InterestRate:  l.InterestRate,
		FinalAmount:   l.FinalAmount,
		StartDate:     l.StartDate.Format(dateLayout),
		DueDate:       l.DueDate.Format(dateLayout),
		Notes:         l.Notes,
		Status:        string(l.Status),
		PaymentAmount: l.PaymentAmount,
		Client:        l.Client,
		CreatedAt:     l.CreatedAt.Format(dateTimeLayout),
		UpdatedAt:     l.LastUpdatedAt.Format(dateTimeLayout),
	}
	if l.PaymentDate != nil {
		s := l.PaymentDate.Format(dateLayout)
		resp.PaymentDate = &s
	}
	return resp
}

// ToLoanResponses converts a slice of domain loans.
func ToLoanResponses(loans []domain.Loan) []LoanResponse {
	out := make([]LoanResponse, len(loans))
	for i := range loans {
		out[i] = ToLoanResponse(&loans[i])
	}
	return out
}
