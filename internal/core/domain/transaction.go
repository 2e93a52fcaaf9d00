package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a cash movement.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Categories assigned to the movements emitted by the loan lifecycle.
const (
	CategoryLoans    = "Empréstimos"
	CategoryPayments = "Pagamentos"
)

// Transaction is a single signed cash movement. When LoanID is set the
// movement was emitted by a loan lifecycle event and cannot be deleted on
// its own.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Date          time.Time       `json:"date"`
	ClientID      *string         `json:"clientID,omitempty"`
	LoanID        *string         `json:"loanID,omitempty"`
	Responsible   string          `json:"responsible,omitempty"`

	// Client is populated on reads when the movement references a client.
	Client *ClientSummary `json:"client,omitempty"`

	AuditFields
}

// IsLinkedToLoan reports whether the movement is a loan lifecycle side effect.
func (t Transaction) IsLinkedToLoan() bool {
	return t.LoanID != nil && *t.LoanID != ""
}
