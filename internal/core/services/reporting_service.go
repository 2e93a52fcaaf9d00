package services

import (
	"context"
	"fmt"

	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/utils/accounting"
)

// reportingServiceImpl implements the ReportingSvcFacade. Every dashboard
// figure is derived from one read of the collections, so the numbers always
// describe the same snapshot.
type reportingServiceImpl struct {
	BaseService
	clientRepo portsrepo.ClientReader
	loanRepo   portsrepo.LoanReader
	txnRepo    portsrepo.TransactionReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(clientRepo portsrepo.ClientReader, loanRepo portsrepo.LoanReader, txnRepo portsrepo.TransactionReader) portssvc.ReportingSvcFacade {
	return &reportingServiceImpl{
		clientRepo: clientRepo,
		loanRepo:   loanRepo,
		txnRepo:    txnRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingServiceImpl)(nil)

func (s *reportingServiceImpl) Dashboard(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	clients, err := s.clientRepo.FindClients(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load clients for dashboard")
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	loans, err := s.loanRepo.FindLoans(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load loans for dashboard")
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	movements, err := s.txnRepo.FindAllTransactions(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load movements for dashboard")
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	return &domain.DashboardSummary{
		CashBalance:     accounting.RunningBalance(movements),
		TotalReceivable: accounting.TotalReceivable(loans),
		ClientCount:     len(clients),
		LoanCount:       len(loans),
		TotalInterest:   accounting.TotalInterest(loans),
		AverageRate:     accounting.AverageRate(loans),
	}, nil
}
