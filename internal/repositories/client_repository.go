package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gym_backend/internal/models"
)

// ClientRepository defines the client-related database operations, including the
// overdue and reminder classifications derived from each client's last payment.
type ClientRepository interface {
	CreateClient(ctx context.Context, executor SQLExecutor, client *models.Client) (int64, error)
	GetClientByID(ctx context.Context, id int64) (*models.Client, error)
	GetClients(ctx context.Context) ([]models.Client, error)
	UpdateClient(ctx context.Context, executor SQLExecutor, client *models.Client) error
	DeleteClient(ctx context.Context, executor SQLExecutor, id int64) error
	CountClients(ctx context.Context) (int, error)
	GetOverdueClients(ctx context.Context, today models.Date, thresholdDays int) ([]models.OverdueClient, error)
	CountOverdueClients(ctx context.Context, today models.Date, thresholdDays int) (int, error)
	GetReminders(ctx context.Context, today models.Date, leadDays int) ([]models.Reminder, error)
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, nombre, telefono, tipo, fecha_inscripcion`

// overdueClientsBase selects monthly clients whose last payment is missing or
// older than $2 days relative to $1.
const overdueClientsBase = `
	SELECT c.id, c.nombre, c.telefono, c.tipo, MAX(p.fecha_pago) AS ultimo_pago
	FROM clientes c
	LEFT JOIN pagos p ON p.cliente_id = c.id
	WHERE c.tipo = 'mensual'
	GROUP BY c.id, c.nombre, c.telefono, c.tipo
	HAVING MAX(p.fecha_pago) IS NULL
	    OR ($1::date - MAX(p.fecha_pago)) > $2`

const overdueClientsQuery = overdueClientsBase + `
	ORDER BY c.nombre ASC`

const countOverdueClientsQuery = `SELECT COUNT(*) FROM (` + overdueClientsBase + `
	) AS morosos`

// remindersQuery: due date is last payment + 1 month, reminder date is $2 days earlier.
const remindersQuery = `
	SELECT c.id, c.nombre, c.telefono,
	       (MAX(p.fecha_pago) + INTERVAL '1 month')::date AS fecha_vencimiento,
	       (MAX(p.fecha_pago) + INTERVAL '1 month' - make_interval(days => $2::int))::date AS fecha_recordatorio
	FROM clientes c
	JOIN pagos p ON p.cliente_id = c.id
	WHERE c.tipo = 'mensual'
	GROUP BY c.id, c.nombre, c.telefono
	HAVING (MAX(p.fecha_pago) + INTERVAL '1 month' - make_interval(days => $2::int))::date = $1::date
	ORDER BY c.nombre ASC`

func scanClient(s scanner) (*models.Client, error) {
	var client models.Client
	var inscripcion sql.NullTime
	if err := s.Scan(&client.ID, &client.Nombre, &client.Telefono, &client.Tipo, &inscripcion); err != nil {
		return nil, err
	}
	if inscripcion.Valid {
		d := models.NewDate(inscripcion.Time)
		client.FechaInscripcion = &d
	}
	return &client, nil
}

// CreateClient inserts a new client and returns its ID.
func (r *clientRepository) CreateClient(ctx context.Context, executor SQLExecutor, client *models.Client) (int64, error) {
	query := `INSERT INTO clientes (nombre, telefono, tipo, fecha_inscripcion)
	          VALUES ($1, $2, $3, $4::date)
	          RETURNING id`

	if client.FechaInscripcion == nil {
		return 0, fmt.Errorf("%w: creating client: fecha_inscripcion not set", ErrDatabaseError)
	}

	err := executor.QueryRowContext(ctx, query,
		client.Nombre, client.Telefono, client.Tipo, *client.FechaInscripcion,
	).Scan(&client.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}
	return client.ID, nil
}

// GetClientByID retrieves a client by its ID.
func (r *clientRepository) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE id = $1`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// GetClients lists every client ordered by name.
func (r *clientRepository) GetClients(ctx context.Context) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes ORDER BY nombre ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// UpdateClient overwrites name, phone and membership kind.
func (r *clientRepository) UpdateClient(ctx context.Context, executor SQLExecutor, client *models.Client) error {
	query := `UPDATE clientes SET nombre = $1, telefono = $2, tipo = $3 WHERE id = $4`

	result, err := executor.ExecContext(ctx, query, client.Nombre, client.Telefono, client.Tipo, client.ID)
	if err != nil {
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %d: %v", ErrDatabaseError, client.ID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes a client. Its payments must be deleted first.
func (r *clientRepository) DeleteClient(ctx context.Context, executor SQLExecutor, id int64) error {
	query := `DELETE FROM clientes WHERE id = $1`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: client ID %d still has payments", ErrForeignKeyViolation, id)
		}
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountClients returns the number of registered clients.
func (r *clientRepository) CountClients(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clientes`).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: counting clients: %v", ErrDatabaseError, err)
	}
	return total, nil
}

// GetOverdueClients lists monthly clients overdue by more than thresholdDays as of today.
func (r *clientRepository) GetOverdueClients(ctx context.Context, today models.Date, thresholdDays int) ([]models.OverdueClient, error) {
	rows, err := r.db.QueryContext(ctx, overdueClientsQuery, today, thresholdDays)
	if err != nil {
		return nil, fmt.Errorf("%w: querying overdue clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	overdue := []models.OverdueClient{}
	for rows.Next() {
		var oc models.OverdueClient
		var lastPayment sql.NullTime
		if err := rows.Scan(&oc.ID, &oc.Nombre, &oc.Telefono, &oc.Tipo, &lastPayment); err != nil {
			return nil, fmt.Errorf("%w: scanning overdue client: %v", ErrDatabaseError, err)
		}
		if lastPayment.Valid {
			d := models.NewDate(lastPayment.Time)
			oc.UltimoPago = &d
		}
		overdue = append(overdue, oc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating overdue client rows: %v", ErrDatabaseError, err)
	}
	return overdue, nil
}

// CountOverdueClients counts the same population as GetOverdueClients.
func (r *clientRepository) CountOverdueClients(ctx context.Context, today models.Date, thresholdDays int) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, countOverdueClientsQuery, today, thresholdDays).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: counting overdue clients: %v", ErrDatabaseError, err)
	}
	return total, nil
}

// GetReminders lists monthly clients whose reminder date is today.
func (r *clientRepository) GetReminders(ctx context.Context, today models.Date, leadDays int) ([]models.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, remindersQuery, today, leadDays)
	if err != nil {
		return nil, fmt.Errorf("%w: querying reminders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	reminders := []models.Reminder{}
	for rows.Next() {
		var rem models.Reminder
		if err := rows.Scan(&rem.ID, &rem.Nombre, &rem.Telefono, &rem.FechaVencimiento, &rem.FechaRecordatorio); err != nil {
			return nil, fmt.Errorf("%w: scanning reminder: %v", ErrDatabaseError, err)
		}
		reminders = append(reminders, rem)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reminder rows: %v", ErrDatabaseError, err)
	}
	return reminders, nil
}
