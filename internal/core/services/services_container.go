package services

import (
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Client = NewClientService(repos.ClientRepo, repos.LoanRepo, repos.DocumentRepo)
	container.Loan = NewLoanService(repos.LoanRepo, repos.ClientRepo, repos.TransactionRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.ClientRepo, repos.LoanRepo)
	container.Reporting = NewReportingService(repos.ClientRepo, repos.LoanRepo, repos.TransactionRepo)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
