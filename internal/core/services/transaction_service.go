package services

import (
	"bytes"
	"context"
	"encoding/csv"
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
	"github.com/emprestafacil/loan_ledger_app/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transactionServiceImpl implements the TransactionSvcFacade interface.
type transactionServiceImpl struct {
	BaseService
	txnRepo    portsrepo.TransactionRepositoryFacade
	clientRepo portsrepo.ClientReader
	loanRepo   portsrepo.LoanReader
}

// NewTransactionService creates a new cash movement service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, clientRepo portsrepo.ClientReader, loanRepo portsrepo.LoanReader) portssvc.TransactionSvcFacade {
	return &transactionServiceImpl{
		txnRepo:    txnRepo,
		clientRepo: clientRepo,
		loanRepo:   loanRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Transação não encontrada")
		}
		s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	batch := []domain.Transaction{*txn}
	s.attachClientSummaries(ctx, userID, batch)
	return &batch[0], nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, int, error) {
	txns, total, err := s.txnRepo.FindTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	s.attachClientSummaries(ctx, userID, txns)
	return txns, total, nil
}

func (s *transactionServiceImpl) Summarize(ctx context.Context, userID string, filter portsrepo.TransactionFilter) (*domain.TransactionSummary, error) {
	filter.Limit = 0
	filter.Offset = 0
	txns, _, err := s.txnRepo.FindTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for summary")
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	summary := domain.TransactionSummary{
		TotalIncome:     decimal.Zero,
		TotalExpenses:   decimal.Zero,
		CategorySummary: make(map[string]domain.CategoryTotals),
	}

	for _, txn := range txns {
		totals := summary.CategorySummary[txn.Category]
		if txn.Type == domain.Income {
			summary.TotalIncome = summary.TotalIncome.Add(txn.Amount)
			totals.Income = totals.Income.Add(txn.Amount)
		} else {
			summary.TotalExpenses = summary.TotalExpenses.Add(txn.Amount)
			totals.Expense = totals.Expense.Add(txn.Amount)
		}
		summary.CategorySummary[txn.Category] = totals
		summary.TransactionCount++
	}
	summary.NetAmount = summary.TotalIncome.Sub(summary.TotalExpenses)

	return &summary, nil
}

// csvTypeLabels maps movement types to their pt-BR export labels.
var csvTypeLabels = map[domain.TransactionType]string{
	domain.Income:  "Entrada",
	domain.Expense: "Saída",
}

func (s *transactionServiceImpl) ExportCSV(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]byte, error) {
	filter.Limit = 0
	filter.Offset = 0
	txns, _, err := s.txnRepo.FindTransactions(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for export")
		return nil, fmt.Errorf("failed to export transactions: %w", err)
	}
	s.attachClientSummaries(ctx, userID, txns)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Data", "Tipo", "Valor", "Descrição", "Categoria", "Cliente", "Empréstimo"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, txn := range txns {
		clientName := ""
		if txn.Client != nil {
			clientName = txn.Client.Name
		}
		loanRef := ""
		if txn.LoanID != nil {
			loanRef = *txn.LoanID
		}
		record := []string{
			txn.Date.Format("2006-01-02"),
			csvTypeLabels[txn.Type],
			txn.Amount.StringFixed(2),
			txn.Description,
			txn.Category,
			clientName,
			loanRef,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *transactionServiceImpl) CreateTransaction(ctx context.Context, userID string, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	date, err := validation.Transaction(req)
	if err != nil {
		return nil, err
	}

	if err := s.resolveReferences(ctx, userID, req); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          domain.TransactionType(req.Type),
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Date:          date,
		ClientID:      req.ClientID,
		LoanID:        req.LoanID,
		Responsible:   req.Responsible,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction")
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *transactionServiceImpl) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	date, err := validation.Transaction(req)
	if err != nil {
		return nil, err
	}

	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsLinkedToLoan() {
		return nil, apperrors.NewAppError(http.StatusBadRequest,
			"Não é possível editar uma transação vinculada a um empréstimo", guard.ErrLinkedToLoan)
	}

	if err := s.resolveReferences(ctx, userID, req); err != nil {
		return nil, err
	}

	txn.Type = domain.TransactionType(req.Type)
	txn.Amount = req.Amount
	txn.Description = req.Description
	txn.Category = req.Category
	txn.Date = date
	txn.ClientID = req.ClientID
	txn.Responsible = req.Responsible
	txn.LastUpdatedAt = time.Now()

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return txn, nil
}

func (s *transactionServiceImpl) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	if err := guard.CanDeleteTransaction(*txn); err != nil {
		return apperrors.NewAppError(http.StatusBadRequest,
			"Não é possível excluir uma transação vinculada a um empréstimo", err)
	}

	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// resolveReferences checks the optional client and loan references of a
// manual movement against the caller's own records.
func (s *transactionServiceImpl) resolveReferences(ctx context.Context, userID string, req dto.SaveTransactionRequest) error {
	if req.ClientID != nil && *req.ClientID != "" {
		if _, err := s.clientRepo.FindClientByID(ctx, userID, *req.ClientID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Cliente não encontrado")
			}
			return fmt.Errorf("failed to resolve client: %w", err)
		}
	}
	if req.LoanID != nil && *req.LoanID != "" {
		if _, err := s.loanRepo.FindLoanByID(ctx, userID, *req.LoanID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("Empréstimo não encontrado")
			}
			return fmt.Errorf("failed to resolve loan: %w", err)
		}
	}
	return nil
}

// attachClientSummaries enriches movements referencing a client with the
// client projection. Best effort: lookup failures leave movements bare.
func (s *transactionServiceImpl) attachClientSummaries(ctx context.Context, userID string, txns []domain.Transaction) {
	needsClients := false
	for i := range txns {
		if txns[i].ClientID != nil && *txns[i].ClientID != "" {
			needsClients = true
			break
		}
	}
	if !needsClients {
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
	for i := range txns {
		if txns[i].ClientID == nil {
			continue
		}
		if summary, ok := byID[*txns[i].ClientID]; ok {
			s := summary
			txns[i].Client = &s
		}
	}
}
