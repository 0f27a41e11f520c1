package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
	"gym_backend/pkg/utils"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found")
	ErrClientValidation = errors.New("client data validation error")
)

// --- Client DTOs ---

// ClientRequest is the body of both register and update.
type ClientRequest struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Tipo     string `json:"tipo"`
}

func (r ClientRequest) normalized() ClientRequest {
	return ClientRequest{
		Nombre:   strings.TrimSpace(r.Nombre),
		Telefono: strings.TrimSpace(r.Telefono),
		Tipo:     strings.TrimSpace(r.Tipo),
	}
}

func (r ClientRequest) validate() error {
	if r.Nombre == "" || r.Telefono == "" || r.Tipo == "" {
		return fmt.Errorf("%w: nombre, telefono and tipo are required", ErrClientValidation)
	}
	return nil
}

// ClientListCache holds the full client list between writes.
type ClientListCache interface {
	Get(ctx context.Context) ([]models.Client, bool, error)
	Set(ctx context.Context, clients []models.Client) error
	Invalidate(ctx context.Context) error
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(ctx context.Context, req ClientRequest) (*models.Client, error)
	GetClientByID(ctx context.Context, clientID int64) (*models.Client, error)
	GetClients(ctx context.Context) ([]models.Client, error)
	UpdateClient(ctx context.Context, clientID int64, req ClientRequest) error
	DeleteClient(ctx context.Context, clientID int64) error
	GetClientPayments(ctx context.Context, clientID int64) ([]models.Payment, error)
	GetOverdueClients(ctx context.Context) ([]models.OverdueClient, error)
	GetReminders(ctx context.Context) ([]models.Reminder, error)
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo  repositories.ClientRepository
	paymentRepo repositories.PaymentRepository
	db          *sql.DB
	clock       Clock
	rules       MembershipRules
	cache       ClientListCache
}

// NewClientService creates a new instance of ClientService. cache may be nil.
func NewClientService(
	clientRepo repositories.ClientRepository,
	paymentRepo repositories.PaymentRepository,
	db *sql.DB,
	clock Clock,
	rules MembershipRules,
	cache ClientListCache,
) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		paymentRepo: paymentRepo,
		db:          db,
		clock:       clock,
		rules:       rules,
		cache:       cache,
	}
}

func (s *clientService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		utils.LogWarn("client list cache invalidation failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *clientService) CreateClient(ctx context.Context, req ClientRequest) (*models.Client, error) {
	req = req.normalized()
	if err := req.validate(); err != nil {
		return nil, err
	}

	inscripcion := today(s.clock)
	client := &models.Client{
		Nombre:           req.Nombre,
		Telefono:         req.Telefono,
		Tipo:             req.Tipo,
		FechaInscripcion: &inscripcion,
	}

	if _, err := s.clientRepo.CreateClient(ctx, s.db, client); err != nil {
		return nil, fmt.Errorf("failed to create client in repository: %w", err)
	}
	s.invalidateList(ctx)
	return client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, clientID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) GetClients(ctx context.Context) ([]models.Client, error) {
	if s.cache != nil {
		clients, ok, err := s.cache.Get(ctx)
		if err != nil {
			utils.LogWarn("client list cache read failed", map[string]interface{}{"error": err.Error()})
		} else if ok {
			utils.LogDebug("client list served from cache", map[string]interface{}{"count": len(clients)})
			return clients, nil
		}
	}

	clients, err := s.clientRepo.GetClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, clients); err != nil {
			utils.LogWarn("client list cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return clients, nil
}

func (s *clientService) UpdateClient(ctx context.Context, clientID int64, req ClientRequest) error {
	req = req.normalized()
	if err := req.validate(); err != nil {
		return err
	}

	client := &models.Client{ID: clientID, Nombre: req.Nombre, Telefono: req.Telefono, Tipo: req.Tipo}
	if err := s.clientRepo.UpdateClient(ctx, s.db, client); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to update client in repository: %w", err)
	}
	s.invalidateList(ctx)
	return nil
}

// DeleteClient removes the client's payments and then the client in one transaction.
func (s *clientService) DeleteClient(ctx context.Context, clientID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deleted, err := s.paymentRepo.DeletePaymentsByClient(ctx, tx, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client payments: %w", err)
	}

	if err := s.clientRepo.DeleteClient(ctx, tx, clientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client in repository: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit client deletion: %w", err)
	}

	utils.LogInfo("client deleted", map[string]interface{}{"client_id": clientID, "payments_deleted": deleted})
	s.invalidateList(ctx)
	return nil
}

func (s *clientService) GetClientPayments(ctx context.Context, clientID int64) ([]models.Payment, error) {
	payments, err := s.paymentRepo.GetPaymentsByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client payments: %w", err)
	}
	return payments, nil
}

func (s *clientService) GetOverdueClients(ctx context.Context) ([]models.OverdueClient, error) {
	overdue, err := s.clientRepo.GetOverdueClients(ctx, today(s.clock), s.rules.DiasLista)
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue clients: %w", err)
	}
	return overdue, nil
}

func (s *clientService) GetReminders(ctx context.Context) ([]models.Reminder, error) {
	reminders, err := s.clientRepo.GetReminders(ctx, today(s.clock), s.rules.DiasAnticipacion)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminders: %w", err)
	}
	return reminders, nil
}
