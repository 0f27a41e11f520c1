package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
)

var ErrPaymentValidation = errors.New("payment data validation error")

// RegisterPaymentRequest is the body of POST /pagos.
type RegisterPaymentRequest struct {
	ClienteID int64         `json:"cliente_id"`
	Monto     models.Amount `json:"monto"`
	MedioPago string        `json:"medio_pago"`
}

type PaymentService interface {
	RegisterPayment(ctx context.Context, req RegisterPaymentRequest) (*models.Payment, error)
}

type paymentService struct {
	paymentRepo repositories.PaymentRepository
	db          *sql.DB
	clock       Clock
}

// NewPaymentService creates a new instance of PaymentService.
func NewPaymentService(paymentRepo repositories.PaymentRepository, db *sql.DB, clock Clock) PaymentService {
	return &paymentService{paymentRepo: paymentRepo, db: db, clock: clock}
}

// RegisterPayment records a payment dated today with status pagado.
func (s *paymentService) RegisterPayment(ctx context.Context, req RegisterPaymentRequest) (*models.Payment, error) {
	medio := strings.TrimSpace(req.MedioPago)
	if req.ClienteID <= 0 || !req.Monto.IsValid() || medio == "" {
		return nil, fmt.Errorf("%w: cliente_id, monto and medio_pago are required", ErrPaymentValidation)
	}

	payment := &models.Payment{
		ClienteID: req.ClienteID,
		FechaPago: today(s.clock),
		Monto:     float64(req.Monto),
		MedioPago: medio,
		Estado:    models.EstadoPagado,
	}

	if _, err := s.paymentRepo.CreatePayment(ctx, s.db, payment); err != nil {
		if errors.Is(err, repositories.ErrForeignKeyViolation) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to create payment in repository: %w", err)
	}
	return payment, nil
}
