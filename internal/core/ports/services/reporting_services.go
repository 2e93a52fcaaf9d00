package services

import (
	"context"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
)

// ReportingSvcFacade derives the dashboard aggregates. All figures come from
// a single read of the in-memory collections so the snapshot is consistent.
type ReportingSvcFacade interface {
	// Dashboard computes the account-wide aggregate view for userID.
	Dashboard(ctx context.Context, userID string) (*domain.DashboardSummary, error)
}
