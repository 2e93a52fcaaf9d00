package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"` // always positive; type carries the sign
	Description   string          `db:"description"`
	Category      string          `db:"category"`
	Date          time.Time       `db:"date"`
	ClientID      sql.NullString  `db:"client_id"`
	LoanID        sql.NullString  `db:"loan_id"`
	Responsible   sql.NullString  `db:"responsible"`
	AuditFields
}
