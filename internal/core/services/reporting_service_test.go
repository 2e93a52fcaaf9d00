package services_test

import (
	"context"
	"testing"

	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/core/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/repositories/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	repos        portsrepo.RepositoryProvider
	reportingSvc portssvc.ReportingSvcFacade
	clientSvc    portssvc.ClientSvcFacade
	loanSvc      portssvc.LoanSvcFacade
	txnSvc       portssvc.TransactionSvcFacade
	userID       string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repos = memory.NewRepositoryProvider(memory.NewStore())
	suite.reportingSvc = services.NewReportingService(suite.repos.ClientRepo, suite.repos.LoanRepo, suite.repos.TransactionRepo)
	suite.clientSvc = services.NewClientService(suite.repos.ClientRepo, suite.repos.LoanRepo, suite.repos.DocumentRepo)
	suite.loanSvc = services.NewLoanService(suite.repos.LoanRepo, suite.repos.ClientRepo, suite.repos.TransactionRepo)
	suite.txnSvc = services.NewTransactionService(suite.repos.TransactionRepo, suite.repos.ClientRepo, suite.repos.LoanRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestDashboard_EmptyAccount() {
	summary, err := suite.reportingSvc.Dashboard(suite.ctx, suite.userID)
	suite.Require().NoError(err)

	suite.True(decimal.Zero.Equal(summary.CashBalance))
	suite.True(decimal.Zero.Equal(summary.TotalReceivable))
	suite.Zero(summary.ClientCount)
	suite.Zero(summary.LoanCount)
	suite.True(decimal.Zero.Equal(summary.TotalInterest))
	suite.True(decimal.Zero.Equal(summary.AverageRate))
}

func (suite *ReportingServiceTestSuite) TestDashboard_Aggregates() {
	client, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, dto.SaveClientRequest{
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Phone:    "(11) 3456-7890",
		Document: "123.456.789-09",
	})
	suite.Require().NoError(err)

	_, err = suite.txnSvc.CreateTransaction(suite.ctx, suite.userID, dto.SaveTransactionRequest{
		Type:        "income",
		Amount:      decimal.NewFromInt(10000),
		Description: "Aporte inicial",
		Category:    "Aportes",
		Date:        "2024-01-01",
	})
	suite.Require().NoError(err)

	// One active loan and one paid loan.
	active, err := suite.loanSvc.CreateLoan(suite.ctx, suite.userID, dto.SaveLoanRequest{
		ClientID:     client.ClientID,
		Amount:       decimal.NewFromInt(2000),
		InterestRate: decimal.NewFromInt(10),
		StartDate:    "2024-01-15",
		DueDate:      "2024-07-15",
	})
	suite.Require().NoError(err)

	settled, err := suite.loanSvc.CreateLoan(suite.ctx, suite.userID, dto.SaveLoanRequest{
		ClientID:     client.ClientID,
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromInt(20),
		StartDate:    "2024-01-15",
		DueDate:      "2024-07-15",
	})
	suite.Require().NoError(err)
	override := decimal.NewFromInt(1200)
	_, err = suite.loanSvc.PayLoan(suite.ctx, suite.userID, settled.LoanID, dto.PayLoanRequest{PaymentAmount: &override})
	suite.Require().NoError(err)

	summary, err := suite.reportingSvc.Dashboard(suite.ctx, suite.userID)
	suite.Require().NoError(err)

	// 10000 opening - 2000 - 1000 disbursed + 1200 collected.
	suite.True(decimal.NewFromInt(8200).Equal(summary.CashBalance))

	// Receivable covers only the active loan's final amount.
	suite.True(active.FinalAmount.Equal(summary.TotalReceivable))

	suite.Equal(1, summary.ClientCount)
	suite.Equal(2, summary.LoanCount)

	// 200 from the active loan plus 200 from the settled one.
	suite.True(decimal.NewFromInt(400).Equal(summary.TotalInterest))
	suite.True(decimal.NewFromInt(15).Equal(summary.AverageRate))
}

func (suite *ReportingServiceTestSuite) TestDashboard_ScopedToOwner() {
	_, err := suite.txnSvc.CreateTransaction(suite.ctx, suite.userID, dto.SaveTransactionRequest{
		Type:        "income",
		Amount:      decimal.NewFromInt(500),
		Description: "Aporte inicial",
		Category:    "Aportes",
		Date:        "2024-01-01",
	})
	suite.Require().NoError(err)

	summary, err := suite.reportingSvc.Dashboard(suite.ctx, uuid.NewString())
	suite.Require().NoError(err)
	suite.True(decimal.Zero.Equal(summary.CashBalance))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
