package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/emprestafacil/loan_ledger_app/internal/core/guard"
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

type TransactionServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	repos  portsrepo.RepositoryProvider
	txnSvc portssvc.TransactionSvcFacade
	userID string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repos = memory.NewRepositoryProvider(memory.NewStore())
	suite.txnSvc = services.NewTransactionService(suite.repos.TransactionRepo, suite.repos.ClientRepo, suite.repos.LoanRepo)
	suite.userID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) create(txnType, amount, description, category, date string) *domain.Transaction {
	value, err := decimal.NewFromString(amount)
	suite.Require().NoError(err)
	txn, err := suite.txnSvc.CreateTransaction(suite.ctx, suite.userID, dto.SaveTransactionRequest{
		Type:        txnType,
		Amount:      value,
		Description: description,
		Category:    category,
		Date:        date,
	})
	suite.Require().NoError(err)
	return txn
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction() {
	txn := suite.create("income", "1500.50", "Aporte inicial", "Aportes", "2024-01-02")

	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.Income, txn.Type)
	suite.Equal("2024-01-02", txn.Date.Format("2006-01-02"))

	found, err := suite.txnSvc.GetTransactionByID(suite.ctx, suite.userID, txn.TransactionID)
	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(found.Amount))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownClientReference() {
	clientID := uuid.NewString()
	_, err := suite.txnSvc.CreateTransaction(suite.ctx, suite.userID, dto.SaveTransactionRequest{
		Type:        "expense",
		Amount:      decimal.NewFromInt(100),
		Description: "Compra de material",
		Category:    "Despesas",
		Date:        "2024-01-10",
		ClientID:    &clientID,
	})

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(404, appErr.Code)
	suite.Equal("Cliente não encontrado", appErr.Message)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_Pagination() {
	suite.create("income", "100", "Primeiro lançamento", "Aportes", "2024-01-01")
	suite.create("income", "200", "Segundo lançamento", "Aportes", "2024-01-02")
	suite.create("expense", "50", "Terceiro lançamento", "Despesas", "2024-01-03")

	txns, total, err := suite.txnSvc.ListTransactions(suite.ctx, suite.userID, portsrepo.TransactionFilter{Limit: 2})
	suite.Require().NoError(err)
	suite.Equal(3, total)
	suite.Require().Len(txns, 2)

	// Newest first.
	suite.Equal("Terceiro lançamento", txns[0].Description)
	suite.Equal("Segundo lançamento", txns[1].Description)

	rest, total, err := suite.txnSvc.ListTransactions(suite.ctx, suite.userID, portsrepo.TransactionFilter{Limit: 2, Offset: 2})
	suite.Require().NoError(err)
	suite.Equal(3, total)
	suite.Require().Len(rest, 1)
	suite.Equal("Primeiro lançamento", rest[0].Description)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_TypeAndDateFilter() {
	suite.create("income", "100", "Lançamento de janeiro", "Aportes", "2024-01-15")
	suite.create("expense", "40", "Despesa de janeiro", "Despesas", "2024-01-20")
	suite.create("income", "200", "Lançamento de março", "Aportes", "2024-03-05")

	start, _ := time.Parse("2006-01-02", "2024-01-01")
	end, _ := time.Parse("2006-01-02", "2024-01-31")
	txns, total, err := suite.txnSvc.ListTransactions(suite.ctx, suite.userID, portsrepo.TransactionFilter{
		Type:      domain.Income,
		StartDate: &start,
		EndDate:   &end,
	})
	suite.Require().NoError(err)
	suite.Equal(1, total)
	suite.Require().Len(txns, 1)
	suite.Equal("Lançamento de janeiro", txns[0].Description)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction() {
	txn := suite.create("income", "100", "Lançamento original", "Aportes", "2024-01-01")

	updated, err := suite.txnSvc.UpdateTransaction(suite.ctx, suite.userID, txn.TransactionID, dto.SaveTransactionRequest{
		Type:        "expense",
		Amount:      decimal.NewFromInt(75),
		Description: "Lançamento corrigido",
		Category:    "Despesas",
		Date:        "2024-01-05",
	})
	suite.Require().NoError(err)

	suite.Equal(domain.Expense, updated.Type)
	suite.True(decimal.NewFromInt(75).Equal(updated.Amount))
	suite.Equal("Lançamento corrigido", updated.Description)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_LinkedToLoanRejected() {
	txn := suite.seedLoanLinkedMovement()

	_, err := suite.txnSvc.UpdateTransaction(suite.ctx, suite.userID, txn.TransactionID, dto.SaveTransactionRequest{
		Type:        "expense",
		Amount:      decimal.NewFromInt(10),
		Description: "Tentativa de edição",
		Category:    "Despesas",
		Date:        "2024-01-05",
	})

	suite.ErrorIs(err, guard.ErrLinkedToLoan)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.Equal("Não é possível editar uma transação vinculada a um empréstimo", appErr.Message)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction() {
	txn := suite.create("income", "100", "Lançamento temporário", "Aportes", "2024-01-01")

	suite.Require().NoError(suite.txnSvc.DeleteTransaction(suite.ctx, suite.userID, txn.TransactionID))

	_, err := suite.txnSvc.GetTransactionByID(suite.ctx, suite.userID, txn.TransactionID)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(404, appErr.Code)
	suite.Equal("Transação não encontrada", appErr.Message)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_LinkedToLoanRejected() {
	txn := suite.seedLoanLinkedMovement()

	err := suite.txnSvc.DeleteTransaction(suite.ctx, suite.userID, txn.TransactionID)

	suite.ErrorIs(err, guard.ErrLinkedToLoan)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.Equal("Não é possível excluir uma transação vinculada a um empréstimo", appErr.Message)
}

func (suite *TransactionServiceTestSuite) TestSummarize() {
	suite.create("income", "1000", "Aporte inicial", "Aportes", "2024-01-01")
	suite.create("income", "250", "Aporte extra", "Aportes", "2024-01-10")
	suite.create("expense", "400", "Compra de material", "Despesas", "2024-01-15")

	summary, err := suite.txnSvc.Summarize(suite.ctx, suite.userID, portsrepo.TransactionFilter{})
	suite.Require().NoError(err)

	suite.Equal(3, summary.TransactionCount)
	suite.True(decimal.NewFromInt(1250).Equal(summary.TotalIncome))
	suite.True(decimal.NewFromInt(400).Equal(summary.TotalExpenses))
	suite.True(decimal.NewFromInt(850).Equal(summary.NetAmount))

	suite.True(decimal.NewFromInt(1250).Equal(summary.CategorySummary["Aportes"].Income))
	suite.True(decimal.NewFromInt(400).Equal(summary.CategorySummary["Despesas"].Expense))
}

func (suite *TransactionServiceTestSuite) TestExportCSV() {
	suite.create("income", "1000", "Aporte inicial", "Aportes", "2024-01-01")
	suite.create("expense", "99.90", "Compra de material", "Despesas", "2024-01-15")

	data, err := suite.txnSvc.ExportCSV(suite.ctx, suite.userID, portsrepo.TransactionFilter{})
	suite.Require().NoError(err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	suite.Require().Len(lines, 3)
	suite.Equal("Data,Tipo,Valor,Descrição,Categoria,Cliente,Empréstimo", lines[0])

	// Newest first: the expense row comes before the income row.
	suite.Contains(lines[1], "2024-01-15,Saída,99.90,Compra de material,Despesas")
	suite.Contains(lines[2], "2024-01-01,Entrada,1000.00,Aporte inicial,Aportes")
}

func (suite *TransactionServiceTestSuite) TestTransactionsAreScopedToOwner() {
	suite.create("income", "100", "Lançamento privado", "Aportes", "2024-01-01")

	txns, total, err := suite.txnSvc.ListTransactions(suite.ctx, uuid.NewString(), portsrepo.TransactionFilter{})
	suite.Require().NoError(err)
	suite.Zero(total)
	suite.Empty(txns)
}

// seedLoanLinkedMovement disburses a loan and returns its linked movement.
func (suite *TransactionServiceTestSuite) seedLoanLinkedMovement() domain.Transaction {
	clientSvc := services.NewClientService(suite.repos.ClientRepo, suite.repos.LoanRepo, suite.repos.DocumentRepo)
	loanSvc := services.NewLoanService(suite.repos.LoanRepo, suite.repos.ClientRepo, suite.repos.TransactionRepo)

	client, err := clientSvc.CreateClient(suite.ctx, suite.userID, dto.SaveClientRequest{
		Name:     "Ana Souza",
		Email:    "ana@example.com",
		Phone:    "(11) 3456-7890",
		Document: "123.456.789-09",
	})
	suite.Require().NoError(err)

	suite.create("income", "5000", "Aporte inicial", "Aportes", "2024-01-01")

	loan, err := loanSvc.CreateLoan(suite.ctx, suite.userID, dto.SaveLoanRequest{
		ClientID:     client.ClientID,
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromInt(10),
		StartDate:    "2024-01-15",
		DueDate:      "2024-07-15",
	})
	suite.Require().NoError(err)

	history, err := suite.repos.TransactionRepo.FindAllTransactions(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	for _, txn := range history {
		if txn.LoanID != nil && *txn.LoanID == loan.LoanID {
			return txn
		}
	}
	suite.FailNow("loan disbursement movement not found")
	return domain.Transaction{}
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
