package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus indicates the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanPaid      LoanStatus = "paid"
	LoanOverdue   LoanStatus = "overdue"
	LoanCancelled LoanStatus = "cancelled"
)

// ValidLoanStatus reports whether s is one of the known statuses.
func ValidLoanStatus(s string) bool {
	switch LoanStatus(s) {
	case LoanActive, LoanPaid, LoanOverdue, LoanCancelled:
		return true
	}
	return false
}

// Loan is a disbursement to a client at a simple interest rate.
// FinalAmount is always Amount * (1 + InterestRate/100); a payoff may
// override the collected value via PaymentAmount.
type Loan struct {
	LoanID       string          `json:"loanID"`
	UserID       string          `json:"userID"`
	ClientID     string          `json:"clientID"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"`
	FinalAmount  decimal.Decimal `json:"finalAmount"`
	StartDate    time.Time       `json:"startDate"`
	DueDate      time.Time       `json:"dueDate"`
	Notes        string          `json:"notes,omitempty"`
	Status       LoanStatus      `json:"status"`

	PaymentAmount *decimal.Decimal `json:"paymentAmount,omitempty"`
	PaymentDate   *time.Time       `json:"paymentDate,omitempty"`

	// Client is populated on reads for the enriched representation.
	Client *ClientSummary `json:"client,omitempty"`

	AuditFields
}
