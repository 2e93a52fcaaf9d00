package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the row shape of the loans table.
type Loan struct {
	LoanID        string          `db:"loan_id"`
	UserID        string          `db:"user_id"`
	ClientID      string          `db:"client_id"`
	Amount        decimal.Decimal `db:"amount"`
	InterestRate  decimal.Decimal `db:"interest_rate"`
	FinalAmount   decimal.Decimal `db:"final_amount"`
	StartDate     time.Time       `db:"start_date"`
	DueDate       time.Time       `db:"due_date"`
	Notes         sql.NullString  `db:"notes"`
	Status        string          `db:"status"`
	PaymentAmount decimal.NullDecimal `db:"payment_amount"`
	PaymentDate   sql.NullTime        `db:"payment_date"`
	AuditFields
}
