package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"gym_backend/internal/models"
)

// PaymentRepository defines the payment-related database operations.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, executor SQLExecutor, payment *models.Payment) (int64, error)
	GetPaymentsByClient(ctx context.Context, clientID int64) ([]models.Payment, error)
	DeletePaymentsByClient(ctx context.Context, executor SQLExecutor, clientID int64) (int64, error)
}

type paymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// CreatePayment inserts a payment and returns its ID. A missing client surfaces
// as ErrForeignKeyViolation.
func (r *paymentRepository) CreatePayment(ctx context.Context, executor SQLExecutor, payment *models.Payment) (int64, error) {
	query := `INSERT INTO pagos (cliente_id, fecha_pago, monto, medio_pago, estado)
	          VALUES ($1, $2::date, $3, $4, $5)
	          RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		payment.ClienteID, payment.FechaPago, payment.Monto, payment.MedioPago, payment.Estado,
	).Scan(&payment.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: client ID %d does not exist", ErrForeignKeyViolation, payment.ClienteID)
		}
		return 0, fmt.Errorf("%w: creating payment: %v", ErrDatabaseError, err)
	}
	return payment.ID, nil
}

// GetPaymentsByClient lists a client's payments, newest first.
func (r *paymentRepository) GetPaymentsByClient(ctx context.Context, clientID int64) ([]models.Payment, error) {
	query := `SELECT id, cliente_id, fecha_pago, monto, medio_pago, estado
	          FROM pagos
	          WHERE cliente_id = $1
	          ORDER BY fecha_pago DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payments for client ID %d: %v", ErrDatabaseError, clientID, err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.ClienteID, &p.FechaPago, &p.Monto, &p.MedioPago, &p.Estado); err != nil {
			return nil, fmt.Errorf("%w: scanning payment: %v", ErrDatabaseError, err)
		}
		payments = append(payments, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment rows: %v", ErrDatabaseError, err)
	}
	return payments, nil
}

// DeletePaymentsByClient removes every payment of a client and returns how many were deleted.
func (r *paymentRepository) DeletePaymentsByClient(ctx context.Context, executor SQLExecutor, clientID int64) (int64, error) {
	result, err := executor.ExecContext(ctx, `DELETE FROM pagos WHERE cliente_id = $1`, clientID)
	if err != nil {
		return 0, fmt.Errorf("%w: deleting payments for client ID %d: %v", ErrDatabaseError, clientID, err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for payments of client ID %d: %v", ErrDatabaseError, clientID, err)
	}
	return deleted, nil
}
