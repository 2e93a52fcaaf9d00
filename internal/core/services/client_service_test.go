package services_test

import (
	"context"
	"testing"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
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

type ClientServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	repos     portsrepo.RepositoryProvider
	clientSvc portssvc.ClientSvcFacade
	loanSvc   portssvc.LoanSvcFacade
	txnSvc    portssvc.TransactionSvcFacade
	userID    string
}

func (suite *ClientServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repos = memory.NewRepositoryProvider(memory.NewStore())
	suite.clientSvc = services.NewClientService(suite.repos.ClientRepo, suite.repos.LoanRepo, suite.repos.DocumentRepo)
	suite.loanSvc = services.NewLoanService(suite.repos.LoanRepo, suite.repos.ClientRepo, suite.repos.TransactionRepo)
	suite.txnSvc = services.NewTransactionService(suite.repos.TransactionRepo, suite.repos.ClientRepo, suite.repos.LoanRepo)
	suite.userID = uuid.NewString()
}

func clientRequest(name, email, document string) dto.SaveClientRequest {
	return dto.SaveClientRequest{
		Name:     name,
		Email:    email,
		Phone:    "(11) 3456-7890",
		Document: document,
	}
}

func attachRequest(documentID string) dto.AttachDocumentRequest {
	return dto.AttachDocumentRequest{
		DocumentID: documentID,
		FileName:   "contrato.pdf",
		FileSize:   4096,
		MimeType:   "application/pdf",
		StorageURL: "https://storage.example.com/contrato.pdf",
	}
}

// --- Test Cases ---

func (suite *ClientServiceTestSuite) TestCreateClient() {
	client, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	suite.NotEmpty(client.ClientID)
	suite.Equal(suite.userID, client.UserID)
	suite.Equal("Ana Souza", client.Name)

	found, err := suite.clientSvc.GetClientByID(suite.ctx, suite.userID, client.ClientID)
	suite.Require().NoError(err)
	suite.Equal(client.ClientID, found.ClientID)
}

func (suite *ClientServiceTestSuite) TestCreateClient_DuplicateDocument() {
	_, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	_, err = suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Outra Ana", "outra@example.com", "123.456.789-09"))

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(409, appErr.Code)
	suite.Equal("Já existe um cliente com este email ou CPF/CNPJ", appErr.Message)
}

func (suite *ClientServiceTestSuite) TestCreateClient_DuplicateEmailCaseInsensitive() {
	_, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	_, err = suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Outra Ana", "ANA@example.com", "987.654.321-00"))
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ClientServiceTestSuite) TestCreateClient_SameDocumentDifferentOwners() {
	_, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	// Uniqueness is per owner, not global.
	otherUser := uuid.NewString()
	_, err = suite.clientSvc.CreateClient(suite.ctx, otherUser, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.NoError(err)
}

func (suite *ClientServiceTestSuite) TestUpdateClient() {
	client, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	updated, err := suite.clientSvc.UpdateClient(suite.ctx, suite.userID, client.ClientID, clientRequest("Ana Souza Lima", "ana.lima@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	suite.Equal("Ana Souza Lima", updated.Name)
	suite.Equal("ana.lima@example.com", updated.Email)
}

func (suite *ClientServiceTestSuite) TestUpdateClient_ConflictWithOtherClient() {
	_, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)
	second, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("João Pereira", "joao@example.com", "987.654.321-00"))
	suite.Require().NoError(err)

	_, err = suite.clientSvc.UpdateClient(suite.ctx, suite.userID, second.ClientID, clientRequest("João Pereira", "ana@example.com", "987.654.321-00"))
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ClientServiceTestSuite) TestDeleteClient_RejectedWithActiveLoans() {
	client, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	// Fund the till and disburse a loan to the client.
	_, err = suite.txnSvc.CreateTransaction(suite.ctx, suite.userID, dto.SaveTransactionRequest{
		Type:        "income",
		Amount:      decimal.NewFromInt(5000),
		Description: "Aporte inicial",
		Category:    "Aportes",
		Date:        "2024-01-01",
	})
	suite.Require().NoError(err)
	loan, err := suite.loanSvc.CreateLoan(suite.ctx, suite.userID, dto.SaveLoanRequest{
		ClientID:     client.ClientID,
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromInt(10),
		StartDate:    "2024-01-15",
		DueDate:      "2024-07-15",
	})
	suite.Require().NoError(err)

	err = suite.clientSvc.DeleteClient(suite.ctx, suite.userID, client.ClientID)
	suite.ErrorIs(err, guard.ErrHasActiveLoans)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.Equal("Não é possível excluir cliente com empréstimos ativos", appErr.Message)

	// Settling the loan unblocks the deletion.
	_, err = suite.loanSvc.PayLoan(suite.ctx, suite.userID, loan.LoanID, dto.PayLoanRequest{})
	suite.Require().NoError(err)
	suite.NoError(suite.clientSvc.DeleteClient(suite.ctx, suite.userID, client.ClientID))
}

func (suite *ClientServiceTestSuite) TestDeleteClient_CascadesDocuments() {
	client, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	_, err = suite.clientSvc.AttachDocument(suite.ctx, suite.userID, client.ClientID, attachRequest(uuid.NewString()))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.clientSvc.DeleteClient(suite.ctx, suite.userID, client.ClientID))

	counts, err := suite.repos.DocumentRepo.CountDocumentsByClient(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Zero(counts[client.ClientID])
}

func (suite *ClientServiceTestSuite) TestDocumentLifecycle() {
	client, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	docID := uuid.NewString()
	doc, err := suite.clientSvc.AttachDocument(suite.ctx, suite.userID, client.ClientID, attachRequest(docID))
	suite.Require().NoError(err)
	suite.Equal(docID, doc.DocumentID)
	suite.Equal(client.ClientID, doc.ClientID)

	docs, err := suite.clientSvc.ListDocuments(suite.ctx, suite.userID, client.ClientID)
	suite.Require().NoError(err)
	suite.Len(docs, 1)

	_, counts, err := suite.clientSvc.ListClients(suite.ctx, suite.userID)
	suite.Require().NoError(err)
	suite.Equal(1, counts[client.ClientID])

	suite.Require().NoError(suite.clientSvc.DetachDocument(suite.ctx, suite.userID, client.ClientID, docID))

	docs, err = suite.clientSvc.ListDocuments(suite.ctx, suite.userID, client.ClientID)
	suite.Require().NoError(err)
	suite.Empty(docs)
}

func (suite *ClientServiceTestSuite) TestDetachDocument_NotFound() {
	client, err := suite.clientSvc.CreateClient(suite.ctx, suite.userID, clientRequest("Ana Souza", "ana@example.com", "123.456.789-09"))
	suite.Require().NoError(err)

	err = suite.clientSvc.DetachDocument(suite.ctx, suite.userID, client.ClientID, uuid.NewString())
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(404, appErr.Code)
	suite.Equal("Documento não encontrado", appErr.Message)
}

func (suite *ClientServiceTestSuite) TestGetClientByID_NotFound() {
	_, err := suite.clientSvc.GetClientByID(suite.ctx, suite.userID, uuid.NewString())

	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(404, appErr.Code)
	suite.Equal("Cliente não encontrado", appErr.Message)
}

func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
