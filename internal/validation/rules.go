// Package validation holds the declarative field rules for the four entity
// payloads. Checks are fail-fast: the first violated rule produces the error
// and later fields are not inspected. The functions are pure and are shared
// by the HTTP boundary and any local form boundary.
package validation

import (
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Digits, spaces, hyphens, plus and parentheses only.
	must(v.RegisterValidation("phone_chars", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			switch {
			case r >= '0' && r <= '9':
			case r == ' ' || r == '-' || r == '+' || r == '(' || r == ')':
			default:
				return false
			}
		}
		return true
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// fails reports whether value violates the given validator tag.
func fails(value, tag string) bool {
	return validate.Var(value, tag) != nil
}

func invalid(message string) error {
	return apperrors.NewBadRequestError(message)
}

// ParseDate parses an ISO calendar date, accepting a full timestamp as well.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func checkName(name string) error {
	if fails(name, "required,min=2,max=100") {
		if len(name) > 100 {
			return invalid("Nome deve ter no máximo 100 caracteres")
		}
		return invalid("Nome deve ter pelo menos 2 caracteres")
	}
	return nil
}

func checkEmail(email string) error {
	if fails(email, "required,email") {
		return invalid("Email deve ser válido")
	}
	return nil
}

func checkPhone(phone string) error {
	switch {
	case fails(phone, "required,phone_chars"):
		return invalid("Telefone deve conter apenas números, espaços, hífens e parênteses")
	case fails(phone, "min=10"):
		return invalid("Telefone deve ter pelo menos 10 caracteres")
	case fails(phone, "max=20"):
		return invalid("Telefone deve ter no máximo 20 caracteres")
	}
	return nil
}

// Registration checks the sign-up payload: well-formed email, password of at
// least 6 characters, name 2-100, phone 10-20 in the allowed alphabet.
func Registration(req dto.RegisterRequest) error {
	if err := checkEmail(req.Email); err != nil {
		return err
	}
	if fails(req.Password, "required,min=6") {
		return invalid("Senha deve ter pelo menos 6 caracteres")
	}
	if err := checkName(req.Name); err != nil {
		return err
	}
	return checkPhone(req.Phone)
}

// Login checks the credential payload.
func Login(req dto.LoginRequest) error {
	if err := checkEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return invalid("Senha é obrigatória")
	}
	return nil
}

// Client checks a client payload: name 2-100, well-formed email, phone,
// tax identifier 11-18 characters, optional address up to 200 and notes up
// to 500.
func Client(req dto.SaveClientRequest) error {
	if err := checkName(req.Name); err != nil {
		return err
	}
	if err := checkEmail(req.Email); err != nil {
		return err
	}
	if err := checkPhone(req.Phone); err != nil {
		return err
	}
	switch {
	case fails(req.Document, "required,min=11"):
		return invalid("CPF/CNPJ deve ter pelo menos 11 caracteres")
	case fails(req.Document, "max=18"):
		return invalid("CPF/CNPJ deve ter no máximo 18 caracteres")
	}
	if req.Address != "" && fails(req.Address, "max=200") {
		return invalid("Endereço deve ter no máximo 200 caracteres")
	}
	if req.Notes != "" && fails(req.Notes, "max=500") {
		return invalid("Observações devem ter no máximo 500 caracteres")
	}
	return nil
}

// Loan checks a loan payload and returns the parsed start and due dates.
// The due date must be strictly after the start date.
func Loan(req dto.SaveLoanRequest) (start, due time.Time, err error) {
	if fails(req.ClientID, "required,uuid4") {
		return start, due, invalid("ID do cliente deve ser um UUID válido")
	}
	if !req.Amount.IsPositive() {
		return start, due, invalid("Valor deve ser positivo")
	}
	if req.InterestRate.IsNegative() || req.InterestRate.GreaterThan(decimal.NewFromInt(100)) {
		return start, due, invalid("Taxa de juros deve estar entre 0 e 100")
	}
	start, err = ParseDate(req.StartDate)
	if err != nil {
		return start, due, invalid("Data de início deve ser uma data válida")
	}
	due, err = ParseDate(req.DueDate)
	if err != nil {
		return start, due, invalid("Data de vencimento deve ser uma data válida")
	}
	if !due.After(start) {
		return start, due, invalid("Data de vencimento deve ser posterior à data de início")
	}
	if req.Notes != "" && fails(req.Notes, "max=200") {
		return start, due, invalid("Descrição deve ter no máximo 200 caracteres")
	}
	return start, due, nil
}

// Transaction checks a cash movement payload and returns the parsed date.
func Transaction(req dto.SaveTransactionRequest) (time.Time, error) {
	var date time.Time
	if req.Type != string(domain.Income) && req.Type != string(domain.Expense) {
		return date, invalid(`Tipo deve ser "income" ou "expense"`)
	}
	if !req.Amount.IsPositive() {
		return date, invalid("Valor deve ser positivo")
	}
	switch {
	case fails(req.Description, "required,min=3"):
		return date, invalid("Descrição deve ter pelo menos 3 caracteres")
	case fails(req.Description, "max=200"):
		return date, invalid("Descrição deve ter no máximo 200 caracteres")
	}
	switch {
	case req.Category == "":
		return date, invalid("Categoria é obrigatória")
	case fails(req.Category, "max=50"):
		return date, invalid("Categoria deve ter no máximo 50 caracteres")
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return date, invalid("Data deve ser uma data válida")
	}
	if req.ClientID != nil && fails(*req.ClientID, "uuid4") {
		return date, invalid("ID do cliente deve ser um UUID válido")
	}
	if req.LoanID != nil && fails(*req.LoanID, "uuid4") {
		return date, invalid("ID do empréstimo deve ser um UUID válido")
	}
	return date, nil
}
