package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emprestafacil/loan_ledger_app/internal/apperrors"
	"github.com/emprestafacil/loan_ledger_app/internal/core/domain"
	"github.com/emprestafacil/loan_ledger_app/internal/core/guard"
	portsrepo "github.com/emprestafacil/loan_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/emprestafacil/loan_ledger_app/internal/core/ports/services"
	"github.com/emprestafacil/loan_ledger_app/internal/dto"
	"github.com/emprestafacil/loan_ledger_app/internal/validation"
	"github.com/google/uuid"
)

// clientServiceImpl implements the ClientSvcFacade interface.
type clientServiceImpl struct {
	BaseService
	clientRepo   portsrepo.ClientRepositoryFacade
	loanRepo     portsrepo.LoanReader
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewClientService creates a new client service. The loan reader is needed
// for the deletion policy: a client with active loans cannot be removed.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, loanRepo portsrepo.LoanReader, documentRepo portsrepo.DocumentRepositoryFacade) portssvc.ClientSvcFacade {
	return &clientServiceImpl{
		clientRepo:   clientRepo,
		loanRepo:     loanRepo,
		documentRepo: documentRepo,
	}
}

var _ portssvc.ClientSvcFacade = (*clientServiceImpl)(nil)

func (s *clientServiceImpl) GetClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Cliente não encontrado")
		}
		s.LogError(ctx, err, "Failed to find client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *clientServiceImpl) ListClients(ctx context.Context, userID string) ([]domain.Client, map[string]int, error) {
	clients, err := s.clientRepo.FindClients(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients")
		return nil, nil, fmt.Errorf("failed to list clients: %w", err)
	}

	counts, err := s.documentRepo.CountDocumentsByClient(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count client documents")
		return nil, nil, fmt.Errorf("failed to count client documents: %w", err)
	}

	return clients, counts, nil
}

func (s *clientServiceImpl) CreateClient(ctx context.Context, userID string, req dto.SaveClientRequest) (*domain.Client, error) {
	if err := validation.Client(req); err != nil {
		return nil, err
	}

	now := time.Now()
	client := domain.Client{
		ClientID: uuid.NewString(),
		UserID:   userID,
		Name:     req.Name,
		Document: req.Document,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Notes:    req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Já existe um cliente com este email ou CPF/CNPJ")
		}
		s.LogError(ctx, err, "Failed to save client")
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *clientServiceImpl) UpdateClient(ctx context.Context, userID, clientID string, req dto.SaveClientRequest) (*domain.Client, error) {
	if err := validation.Client(req); err != nil {
		return nil, err
	}

	client, err := s.GetClientByID(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}

	client.Name = req.Name
	client.Document = req.Document
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address
	client.Notes = req.Notes
	client.LastUpdatedAt = time.Now()

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Já existe um cliente com este email ou CPF/CNPJ")
		}
		s.LogError(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

func (s *clientServiceImpl) DeleteClient(ctx context.Context, userID, clientID string) error {
	if _, err := s.GetClientByID(ctx, userID, clientID); err != nil {
		return err
	}

	loans, err := s.loanRepo.FindLoansByClient(ctx, userID, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load loans for client deletion check", slog.String("client_id", clientID))
		return fmt.Errorf("failed to check client loans: %w", err)
	}
	if err := guard.CanDeleteClient(loans); err != nil {
		return apperrors.NewAppError(400, "Não é possível excluir cliente com empréstimos ativos", err)
	}

	if err := s.clientRepo.DeleteClient(ctx, userID, clientID); err != nil {
		s.LogError(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		return fmt.Errorf("failed to delete client: %w", err)
	}

	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	return nil
}

func (s *clientServiceImpl) ListDocuments(ctx context.Context, userID, clientID string) ([]domain.Document, error) {
	if _, err := s.GetClientByID(ctx, userID, clientID); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.FindDocumentsByClient(ctx, userID, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list client documents", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (s *clientServiceImpl) AttachDocument(ctx context.Context, userID, clientID string, req dto.AttachDocumentRequest) (*domain.Document, error) {
	if _, err := s.GetClientByID(ctx, userID, clientID); err != nil {
		return nil, err
	}

	doc := domain.Document{
		DocumentID: req.DocumentID,
		ClientID:   clientID,
		UserID:     userID,
		FileName:   req.FileName,
		FileSize:   req.FileSize,
		MimeType:   req.MimeType,
		StorageURL: req.StorageURL,
		UploadedAt: time.Now(),
	}

	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewConflictError("Este documento já está anexado ao cliente")
		}
		s.LogError(ctx, err, "Failed to attach document", slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to attach document: %w", err)
	}

	return &doc, nil
}

func (s *clientServiceImpl) DetachDocument(ctx context.Context, userID, clientID, documentID string) error {
	if _, err := s.GetClientByID(ctx, userID, clientID); err != nil {
		return err
	}

	if err := s.documentRepo.DeleteDocument(ctx, userID, clientID, documentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Documento não encontrado")
		}
		s.LogError(ctx, err, "Failed to detach document", slog.String("document_id", documentID))
		return fmt.Errorf("failed to detach document: %w", err)
	}
	return nil
}
