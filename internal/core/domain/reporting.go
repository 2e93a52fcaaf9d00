package domain

import "github.com/shopspring/decimal"

// DashboardSummary is the single-snapshot aggregate view of an account: all
// figures are derived from one in-memory read of the collections, never from
// separate round trips.
type DashboardSummary struct {
	CashBalance     decimal.Decimal `json:"cashBalance"`
	TotalReceivable decimal.Decimal `json:"totalReceivable"`
	ClientCount     int             `json:"clientCount"`
	LoanCount       int             `json:"loanCount"`
	TotalInterest   decimal.Decimal `json:"totalInterest"`
	AverageRate     decimal.Decimal `json:"averageRate"`
}

// CategoryTotals accumulates income and expense per category.
type CategoryTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// TransactionSummary is the overview report over an optional date range.
type TransactionSummary struct {
	TotalIncome      decimal.Decimal           `json:"total_income"`
	TotalExpenses    decimal.Decimal           `json:"total_expenses"`
	NetAmount        decimal.Decimal           `json:"net_amount"`
	TransactionCount int                       `json:"transaction_count"`
	CategorySummary  map[string]CategoryTotals `json:"category_summary"`
}
