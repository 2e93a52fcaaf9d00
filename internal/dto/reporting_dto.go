package dto

import (
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse is the dashboard aggregate payload.
type DashboardResponse struct {
	CashBalance     decimal.Decimal `json:"cash_balance"`
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	ClientCount     int             `json:"client_count"`
	LoanCount       int             `json:"loan_count"`
	TotalInterest   decimal.Decimal `json:"total_interest"`
	AverageRate     decimal.Decimal `json:"average_rate"`
}

// ToDashboardResponse converts a domain dashboard summary.
func ToDashboardResponse(s *domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		CashBalance:     s.CashBalance,
		TotalReceivable: s.TotalReceivable,
		ClientCount:     s.ClientCount,
		LoanCount:       s.LoanCount,
		TotalInterest:   s.TotalInterest,
		AverageRate:     s.AverageRate,
	}
}
