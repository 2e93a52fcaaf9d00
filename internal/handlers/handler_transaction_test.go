package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/handlers"
	"github.com/emprestafacil/loan_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionService) Summarize(ctx context.Context, userID string, filter portsrepo.TransactionFilter) (*domain.TransactionSummary, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionSummary), args.Error(1)
}

func (m *MockTransactionService) ExportCSV(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]byte, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Test Suite ---
type TransactionHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockTransactionService
	jwtSecret string
}

// generateTestToken creates a signed JWT for the given user.
func (suite *TransactionHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "lla-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *TransactionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSvc = new(MockTransactionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(v1, suite.mockSvc)
}

func (suite *TransactionHandlerTestSuite) doRequest(method, url string, body []byte, userID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewReader(body))
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TransactionHandlerTestSuite) TestListTransactions_Success() {
	userID := uuid.NewString()
	expected := []domain.Transaction{
		{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Type:          domain.Income,
			Amount:        decimal.NewFromInt(1000),
			Description:   "Aporte inicial",
			Category:      "Aportes",
			Date:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	suite.mockSvc.On("ListTransactions",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
			return f.Type == domain.Income && f.Limit == 10 && f.Offset == 10
		}),
	).Return(expected, 11, nil).Once()

	url := "/api/v1/transactions?type=income&page=2&limit=10"
	w := suite.doRequest(http.MethodGet, url, nil, userID)

	suite.Equal(http.StatusOK, w.Code)

	var envelope struct {
		Success    bool                      `json:"success"`
		Data       []dto.TransactionResponse `json:"data"`
		Pagination *dto.Pagination           `json:"pagination"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.True(envelope.Success)
	suite.Len(envelope.Data, 1)
	suite.Equal(expected[0].TransactionID, envelope.Data[0].TransactionID)
	suite.Equal("2024-01-15", envelope.Data[0].Date)
	if suite.NotNil(envelope.Pagination) {
		suite.Equal(2, envelope.Pagination.Page)
		suite.Equal(11, envelope.Pagination.Total)
		suite.Equal(2, envelope.Pagination.Pages)
	}

	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_InvalidType() {
	userID := uuid.NewString()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?type=transfer", nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)

	var body dto.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("Tipo deve ser 'income' ou 'expense'", body.Message)

	suite.mockSvc.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionHandlerTestSuite) TestListTransactions_InclusiveEndDate() {
	userID := uuid.NewString()

	suite.mockSvc.On("ListTransactions",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.MatchedBy(func(f portsrepo.TransactionFilter) bool {
			if f.EndDate == nil {
				return false
			}
			// The whole end day must match, so the bound sits just before midnight.
			return f.EndDate.After(time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC))
		}),
	).Return([]domain.Transaction{}, 0, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions?end_date=2024-03-31", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_Success() {
	userID := uuid.NewString()
	req := dto.SaveTransactionRequest{
		Type:        "expense",
		Amount:      decimal.RequireFromString("99.90"),
		Description: "Material de escritório",
		Category:    "Despesas",
		Date:        "2024-02-10",
	}
	created := &domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.Expense,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockSvc.On("CreateTransaction",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.MatchedBy(func(r dto.SaveTransactionRequest) bool {
			return r.Type == "expense" && r.Amount.Equal(req.Amount)
		}),
	).Return(created, nil).Once()

	body, _ := json.Marshal(req)
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", body, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var envelope struct {
		Success bool                    `json:"success"`
		Data    dto.TransactionResponse `json:"data"`
		Message string                  `json:"message"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &envelope))
	suite.True(envelope.Success)
	suite.Equal("Transação registrada com sucesso", envelope.Message)
	suite.Equal(created.TransactionID, envelope.Data.TransactionID)

	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestCreateTransaction_ValidationErrorPassesThrough() {
	userID := uuid.NewString()

	suite.mockSvc.On("CreateTransaction",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.AnythingOfType("dto.SaveTransactionRequest"),
	).Return(nil, apperrors.NewBadRequestError("Valor deve ser positivo")).Once()

	body, _ := json.Marshal(dto.SaveTransactionRequest{Type: "income", Date: "2024-01-01"})
	w := suite.doRequest(http.MethodPost, "/api/v1/transactions", body, userID)

	suite.Equal(http.StatusBadRequest, w.Code)

	var respBody dto.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &respBody))
	suite.Equal("Valor deve ser positivo", respBody.Message)

	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestDeleteTransaction_LoanLinkedRejected() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockSvc.On("DeleteTransaction",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		transactionID,
	).Return(apperrors.NewBadRequestError("Não é possível excluir uma transação vinculada a um empréstimo")).Once()

	url := fmt.Sprintf("/api/v1/transactions/%s", transactionID)
	w := suite.doRequest(http.MethodDelete, url, nil, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestGetTransaction_NotFound() {
	userID := uuid.NewString()
	transactionID := uuid.NewString()

	suite.mockSvc.On("GetTransactionByID",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		transactionID,
	).Return(nil, apperrors.NewNotFoundError("Transação não encontrada")).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/"+transactionID, nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *TransactionHandlerTestSuite) TestMissingToken_Unauthorized() {
	w := suite.doRequest(http.MethodGet, "/api/v1/transactions", nil, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "ListTransactions")
}

func (suite *TransactionHandlerTestSuite) TestExportCSV_SetsAttachmentHeaders() {
	userID := uuid.NewString()
	csv := []byte("Data,Tipo,Valor,Descrição,Categoria,Cliente,Empréstimo\n")

	suite.mockSvc.On("ExportCSV",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.AnythingOfType("repositories.TransactionFilter"),
	).Return(csv, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transactions/export/csv", nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), `attachment; filename="transacoes_`)
	suite.Equal(string(csv), w.Body.String())

	suite.mockSvc.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestTransactionHandler(t *testing.T) {
	suite.Run(t, new(TransactionHandlerTestSuite))
}
