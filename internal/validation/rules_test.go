package validation_test

import (
	"strings"
	"testing"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clientUUID = "2f3b8d1c-6a7e-4f0b-9d2c-1e5a7b9c3d4f"

func assertMessage(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

func validRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "secret1",
		Name:     "Ana Souza",
		Phone:    "11 98765-4321",
	}
}

func TestRegistration(t *testing.T) {
	assert.NoError(t, validation.Registration(validRegistration()))
}

func TestRegistration_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.RegisterRequest)
		message string
	}{
		{"invalid email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }, "Email deve ser válido"},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "12345" }, "Senha deve ter pelo menos 6 caracteres"},
		{"short name", func(r *dto.RegisterRequest) { r.Name = "A" }, "Nome deve ter pelo menos 2 caracteres"},
		{"long name", func(r *dto.RegisterRequest) { r.Name = strings.Repeat("a", 101) }, "Nome deve ter no máximo 100 caracteres"},
		{"phone alphabet", func(r *dto.RegisterRequest) { r.Phone = "11 9876x-4321" }, "Telefone deve conter apenas números, espaços, hífens e parênteses"},
		{"short phone", func(r *dto.RegisterRequest) { r.Phone = "123456789" }, "Telefone deve ter pelo menos 10 caracteres"},
		{"long phone", func(r *dto.RegisterRequest) { r.Phone = strings.Repeat("1", 21) }, "Telefone deve ter no máximo 20 caracteres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.mutate(&req)
			assertMessage(t, validation.Registration(req), tt.message)
		})
	}
}

func TestLogin(t *testing.T) {
	assert.NoError(t, validation.Login(dto.LoginRequest{Email: "ana@example.com", Password: "x"}))
	assertMessage(t, validation.Login(dto.LoginRequest{Email: "nope", Password: "x"}), "Email deve ser válido")
	assertMessage(t, validation.Login(dto.LoginRequest{Email: "ana@example.com"}), "Senha é obrigatória")
}

func validClient() dto.SaveClientRequest {
	return dto.SaveClientRequest{
		Name:     "João Pereira",
		Email:    "joao@example.com",
		Phone:    "(11) 3456-7890",
		Document: "123.456.789-09",
	}
}

func TestClient(t *testing.T) {
	assert.NoError(t, validation.Client(validClient()))
}

func TestClient_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.SaveClientRequest)
		message string
	}{
		{"short document", func(r *dto.SaveClientRequest) { r.Document = "1234567890" }, "CPF/CNPJ deve ter pelo menos 11 caracteres"},
		{"long document", func(r *dto.SaveClientRequest) { r.Document = strings.Repeat("1", 19) }, "CPF/CNPJ deve ter no máximo 18 caracteres"},
		{"long address", func(r *dto.SaveClientRequest) { r.Address = strings.Repeat("r", 201) }, "Endereço deve ter no máximo 200 caracteres"},
		{"long notes", func(r *dto.SaveClientRequest) { r.Notes = strings.Repeat("n", 501) }, "Observações devem ter no máximo 500 caracteres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validClient()
			tt.mutate(&req)
			assertMessage(t, validation.Client(req), tt.message)
		})
	}
}

func validLoan() dto.SaveLoanRequest {
	return dto.SaveLoanRequest{
		ClientID:     clientUUID,
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromInt(10),
		StartDate:    "2024-01-15",
		DueDate:      "2024-04-15",
	}
}

func TestLoan(t *testing.T) {
	start, due, err := validation.Loan(validLoan())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", start.Format("2006-01-02"))
	assert.Equal(t, "2024-04-15", due.Format("2006-01-02"))
}

func TestLoan_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.SaveLoanRequest)
		message string
	}{
		{"bad client id", func(r *dto.SaveLoanRequest) { r.ClientID = "42" }, "ID do cliente deve ser um UUID válido"},
		{"zero amount", func(r *dto.SaveLoanRequest) { r.Amount = decimal.Zero }, "Valor deve ser positivo"},
		{"negative rate", func(r *dto.SaveLoanRequest) { r.InterestRate = decimal.NewFromInt(-1) }, "Taxa de juros deve estar entre 0 e 100"},
		{"rate above cap", func(r *dto.SaveLoanRequest) { r.InterestRate = decimal.NewFromInt(101) }, "Taxa de juros deve estar entre 0 e 100"},
		{"bad start date", func(r *dto.SaveLoanRequest) { r.StartDate = "15/01/2024" }, "Data de início deve ser uma data válida"},
		{"bad due date", func(r *dto.SaveLoanRequest) { r.DueDate = "soon" }, "Data de vencimento deve ser uma data válida"},
		{"due before start", func(r *dto.SaveLoanRequest) { r.DueDate = "2024-01-15" }, "Data de vencimento deve ser posterior à data de início"},
		{"long notes", func(r *dto.SaveLoanRequest) { r.Notes = strings.Repeat("x", 201) }, "Descrição deve ter no máximo 200 caracteres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLoan()
			tt.mutate(&req)
			_, _, err := validation.Loan(req)
			assertMessage(t, err, tt.message)
		})
	}
}

func validTransaction() dto.SaveTransactionRequest {
	return dto.SaveTransactionRequest{
		Type:        "income",
		Amount:      decimal.NewFromInt(100),
		Description: "Aporte inicial",
		Category:    "Aportes",
		Date:        "2024-01-02",
	}
}

func TestTransaction(t *testing.T) {
	date, err := validation.Transaction(validTransaction())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", date.Format("2006-01-02"))
}

func TestTransaction_AcceptsTimestampDate(t *testing.T) {
	req := validTransaction()
	req.Date = "2024-01-02T15:04:05Z"
	_, err := validation.Transaction(req)
	assert.NoError(t, err)
}

func TestTransaction_FieldErrors(t *testing.T) {
	badID := "not-a-uuid"
	tests := []struct {
		name    string
		mutate  func(*dto.SaveTransactionRequest)
		message string
	}{
		{"bad type", func(r *dto.SaveTransactionRequest) { r.Type = "transfer" }, `Tipo deve ser "income" ou "expense"`},
		{"negative amount", func(r *dto.SaveTransactionRequest) { r.Amount = decimal.NewFromInt(-5) }, "Valor deve ser positivo"},
		{"short description", func(r *dto.SaveTransactionRequest) { r.Description = "ab" }, "Descrição deve ter pelo menos 3 caracteres"},
		{"long description", func(r *dto.SaveTransactionRequest) { r.Description = strings.Repeat("d", 201) }, "Descrição deve ter no máximo 200 caracteres"},
		{"missing category", func(r *dto.SaveTransactionRequest) { r.Category = "" }, "Categoria é obrigatória"},
		{"long category", func(r *dto.SaveTransactionRequest) { r.Category = strings.Repeat("c", 51) }, "Categoria deve ter no máximo 50 caracteres"},
		{"bad date", func(r *dto.SaveTransactionRequest) { r.Date = "02-01-2024" }, "Data deve ser uma data válida"},
		{"bad client id", func(r *dto.SaveTransactionRequest) { r.ClientID = &badID }, "ID do cliente deve ser um UUID válido"},
		{"bad loan id", func(r *dto.SaveTransactionRequest) { r.LoanID = &badID }, "ID do empréstimo deve ser um UUID válido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTransaction()
			tt.mutate(&req)
			_, err := validation.Transaction(req)
			assertMessage(t, err, tt.message)
		})
	}
}
