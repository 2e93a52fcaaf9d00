package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/emprestafacil/loan_ledger_app/internal/core/guard"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/utils/accounting"
	"github.com/emprestafacil/loan_ledger_app/internal/validation"
	"github.com/google/uuid"
)

// loanServiceImpl implements the LoanSvcFacade interface. Loan lifecycle
// events emit linked cash movements: disbursement books an expense (cash
// leaves the till) and payoff books an income.
type loanServiceImpl struct {
	BaseService
	loanRepo   portsrepo.LoanRepositoryFacade
	clientRepo portsrepo.ClientReader
	txnRepo    portsrepo.TransactionRepositoryFacade
}

// NewLoanService creates a new loan service.
func NewLoanService(loanRepo portsrepo.LoanRepositoryFacade, clientRepo portsrepo.ClientReader, txnRepo portsrepo.TransactionRepositoryFacade) portssvc.LoanSvcFacade {
	return &loanServiceImpl{
		loanRepo:   loanRepo,
		clientRepo: clientRepo,
		txnRepo:    txnRepo,
	}
}

var _ portssvc.LoanSvcFacade = (*loanServiceImpl)(nil)

func (s *loanServiceImpl) GetLoanByID(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, userID, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Empréstimo não encontrado")
		}
		s.LogError(ctx, err, "Failed to find loan", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	s.attachClientSummary(ctx, userID, loan)
	return loan, nil
}

func (s *loanServiceImpl) ListLoans(ctx context.Context, userID string) ([]domain.Loan, error) {
	loans, err := s.loanRepo.FindLoans(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}

	s.attachClientSummaries(ctx, userID, loans)
	return loans, nil
}

func (s *loanServiceImpl) ListLoansByStatus(ctx context.Context, userID string, status domain.LoanStatus) ([]domain.Loan, error) {
	loans, err := s.loanRepo.FindLoansByStatus(ctx, userID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans by status", slog.String("status", string(status)))
		return nil, fmt.Errorf("failed to list loans by status: %w", err)
	}

	s.attachClientSummaries(ctx, userID, loans)
	return loans, nil
}

func (s *loanServiceImpl) CreateLoan(ctx context.Context, userID string, req dto.SaveLoanRequest) (*domain.Loan, error) {
	startDate, dueDate, err := validation.Loan(req)
	if err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, userID, req.ClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Cliente não encontrado")
		}
		s.LogError(ctx, err, "Failed to resolve loan client", slog.String("client_id", req.ClientID))
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	// The balance is replayed from the full movement history. It is a local
	// snapshot: a concurrent writer may change it between this read and the
	// insert below.
	history, err := s.txnRepo.FindAllTransactions(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load movement history for balance check")
		return nil, fmt.Errorf("failed to derive cash balance: %w", err)
	}
	balance := accounting.RunningBalance(history)

	if err := guard.CanCreateLoan(req.Amount, balance); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "Saldo insuficiente para realizar o empréstimo", err)
	}

	now := time.Now()
	loan := domain.Loan{
		LoanID:       uuid.NewString(),
		UserID:       userID,
		ClientID:     client.ClientID,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		FinalAmount:  accounting.FinalAmount(req.Amount, req.InterestRate),
		StartDate:    startDate,
		DueDate:      dueDate,
		Notes:        req.Notes,
		Status:       domain.LoanActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "Failed to save loan")
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	// Disbursement movement: cash leaves the till on the start date.
	disbursement := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.Expense,
		Amount:        loan.Amount,
		Description:   fmt.Sprintf("Empréstimo para %s", client.Name),
		Category:      domain.CategoryLoans,
		Date:          loan.StartDate,
		ClientID:      &loan.ClientID,
		LoanID:        &loan.LoanID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, disbursement); err != nil {
		// The loan row is persisted but unlinked. There is no rollback; the
		// orphan must be surfaced, never silently swallowed.
		s.LogError(ctx, err, "Loan persisted but disbursement movement failed",
			slog.String("loan_id", loan.LoanID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError,
			"Empréstimo criado, mas o lançamento vinculado falhou",
			fmt.Errorf("%w: %w", apperrors.ErrPartialWrite, err))
	}

	s.LogInfo(ctx, "Loan created",
		slog.String("loan_id", loan.LoanID),
		slog.String("client_id", loan.ClientID),
		slog.String("amount", loan.Amount.String()))

	summary := client.Summary()
	loan.Client = &summary
	return &loan, nil
}

func (s *loanServiceImpl) UpdateLoan(ctx context.Context, userID, loanID string, req dto.SaveLoanRequest) (*domain.Loan, error) {
	startDate, dueDate, err := validation.Loan(req)
	if err != nil {
		return nil, err
	}

	loan, err := s.GetLoanByID(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanActive {
		return nil, apperrors.NewBadRequestError("Apenas empréstimos ativos podem ser editados")
	}

	client, err := s.clientRepo.FindClientByID(ctx, userID, req.ClientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Cliente não encontrado")
		}
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}

	amountChanged := !loan.Amount.Equal(req.Amount) || loan.ClientID != client.ClientID || !loan.StartDate.Equal(startDate)

	loan.ClientID = client.ClientID
	loan.Amount = req.Amount
	loan.InterestRate = req.InterestRate
	loan.FinalAmount = accounting.FinalAmount(req.Amount, req.InterestRate)
	loan.StartDate = startDate
	loan.DueDate = dueDate
	loan.Notes = req.Notes
	loan.LastUpdatedAt = time.Now()

	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		s.LogError(ctx, err, "Failed to update loan", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to update loan: %w", err)
	}

	if amountChanged {
		if err := s.patchDisbursement(ctx, userID, loan, client.Name); err != nil {
			s.LogError(ctx, err, "Loan updated but disbursement movement patch failed",
				slog.String("loan_id", loanID))
			return nil, apperrors.NewAppError(http.StatusInternalServerError,
				"Empréstimo atualizado, mas o lançamento vinculado falhou",
				fmt.Errorf("%w: %w", apperrors.ErrPartialWrite, err))
		}
	}

	summary := client.Summary()
	loan.Client = &summary
	return loan, nil
}

func (s *loanServiceImpl) PayLoan(ctx context.Context, userID, loanID string, req dto.PayLoanRequest) (*domain.Loan, error) {
	loan, err := s.GetLoanByID(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}

	if err := guard.CanTransition(loan.Status, domain.LoanPaid); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "Apenas empréstimos ativos podem ser pagos", err)
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		parsed, err := validation.ParseDate(*req.PaymentDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Data de pagamento inválida")
		}
		paymentDate = parsed
	}

	paymentAmount := accounting.PayoffAmount(*loan, paymentDate)
	if req.PaymentAmount != nil {
		if !req.PaymentAmount.IsPositive() {
			return nil, apperrors.NewBadRequestError("Valor do pagamento deve ser maior que zero")
		}
		paymentAmount = *req.PaymentAmount
	}

	loan.Status = domain.LoanPaid
	loan.PaymentAmount = &paymentAmount
	loan.PaymentDate = &paymentDate
	loan.LastUpdatedAt = time.Now()

	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		s.LogError(ctx, err, "Failed to persist loan payoff", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to pay loan: %w", err)
	}

	clientName := ""
	if loan.Client != nil {
		clientName = loan.Client.Name
	}

	now := time.Now()
	payment := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.Income,
		Amount:        paymentAmount,
		Description:   fmt.Sprintf("Pagamento de empréstimo - %s", clientName),
		Category:      domain.CategoryPayments,
		Date:          paymentDate,
		ClientID:      &loan.ClientID,
		LoanID:        &loan.LoanID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, payment); err != nil {
		s.LogError(ctx, err, "Loan paid but payment movement failed",
			slog.String("loan_id", loanID))
		return nil, apperrors.NewAppError(http.StatusInternalServerError,
			"Empréstimo quitado, mas o lançamento vinculado falhou",
			fmt.Errorf("%w: %w", apperrors.ErrPartialWrite, err))
	}

	s.LogInfo(ctx, "Loan paid",
		slog.String("loan_id", loanID),
		slog.String("payment_amount", paymentAmount.String()))
	return loan, nil
}

func (s *loanServiceImpl) CancelLoan(ctx context.Context, userID, loanID string) (*domain.Loan, error) {
	loan, err := s.GetLoanByID(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}

	if err := guard.CanTransition(loan.Status, domain.LoanCancelled); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "Apenas empréstimos ativos podem ser cancelados", err)
	}

	loan.Status = domain.LoanCancelled
	loan.LastUpdatedAt = time.Now()

	if err := s.loanRepo.UpdateLoan(ctx, *loan); err != nil {
		s.LogError(ctx, err, "Failed to cancel loan", slog.String("loan_id", loanID))
		return nil, fmt.Errorf("failed to cancel loan: %w", err)
	}

	s.LogInfo(ctx, "Loan cancelled", slog.String("loan_id", loanID))
	return loan, nil
}

func (s *loanServiceImpl) DeleteLoan(ctx context.Context, userID, loanID string) error {
	loan, err := s.GetLoanByID(ctx, userID, loanID)
	if err != nil {
		return err
	}

	if err := guard.CanDeleteLoan(*loan); err != nil {
		return apperrors.NewAppError(http.StatusBadRequest, "Não é possível excluir um empréstimo ativo", err)
	}

	if err := s.txnRepo.DeleteTransactionsByLoan(ctx, userID, loanID); err != nil {
		s.LogError(ctx, err, "Failed to delete loan-linked movements", slog.String("loan_id", loanID))
		return fmt.Errorf("failed to delete linked movements: %w", err)
	}

	if err := s.loanRepo.DeleteLoan(ctx, userID, loanID); err != nil {
		s.LogError(ctx, err, "Failed to delete loan", slog.String("loan_id", loanID))
		return fmt.Errorf("failed to delete loan: %w", err)
	}

	s.LogInfo(ctx, "Loan deleted", slog.String("loan_id", loanID))
	return nil
}

// patchDisbursement rewrites the linked disbursement movement after a loan
// edit changed the principal, client or start date.
func (s *loanServiceImpl) patchDisbursement(ctx context.Context, userID string, loan *domain.Loan, clientName string) error {
	history, err := s.txnRepo.FindAllTransactions(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load movements: %w", err)
	}

	for _, txn := range history {
		if txn.LoanID == nil || *txn.LoanID != loan.LoanID || txn.Type != domain.Expense {
			continue
		}
		txn.Amount = loan.Amount
		txn.Description = fmt.Sprintf("Empréstimo para %s", clientName)
		txn.Date = loan.StartDate
		txn.ClientID = &loan.ClientID
		txn.LastUpdatedAt = time.Now()
		return s.txnRepo.UpdateTransaction(ctx, txn)
	}

	return fmt.Errorf("disbursement movement for loan %s: %w", loan.LoanID, apperrors.ErrNotFound)
}

// attachClientSummary enriches a single loan with its client projection.
// Enrichment is best effort: a missing client leaves the loan bare.
func (s *loanServiceImpl) attachClientSummary(ctx context.Context, userID string, loan *domain.Loan) {
	client, err := s.clientRepo.FindClientByID(ctx, userID, loan.ClientID)
	if err != nil {
		return
	}
	summary := client.Summary()
	loan.Client = &summary
}

// attachClientSummaries enriches a batch of loans from a single client read.
func (s *loanServiceImpl) attachClientSummaries(ctx context.Context, userID string, loans []domain.Loan) {
	if len(loans) == 0 {
		return
	}
	clients, err := s.clientRepo.FindClients(ctx, userID)
	if err != nil {
		return
	}
	byID := make(map[string]domain.ClientSummary, len(clients))
	for _, c := range clients {
		byID[c.ClientID] = c.Summary()
	}
	for i := range loans {
		if summary, ok := byID[loans[i].ClientID]; ok {
			s := summary
			loans[i].Client = &s
		}
	}
}
