package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"gym_backend/internal/models"
)

// ReportRepository aggregates payments for the revenue report and dashboard.
type ReportRepository interface {
	GetIncomeDetail(ctx context.Context, filter models.IncomeFilter) ([]models.IncomeRow, error)
	GetIncomeTotal(ctx context.Context, filter models.IncomeFilter) (float64, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

// incomeFilterClause keeps the statement static; a NULL parameter disables its predicate.
const incomeFilterClause = `
	($1::int IS NULL OR EXTRACT(YEAR FROM p.fecha_pago) = $1::int)
	AND ($2::int IS NULL OR EXTRACT(MONTH FROM p.fecha_pago) = $2::int)
	AND ($3::date IS NULL OR p.fecha_pago = $3::date)`

const incomeDetailQuery = `
	SELECT p.fecha_pago, c.nombre, c.tipo, p.monto, p.medio_pago
	FROM pagos p
	JOIN clientes c ON c.id = p.cliente_id
	WHERE` + incomeFilterClause + `
	ORDER BY p.fecha_pago DESC, p.id DESC`

const incomeTotalQuery = `
	SELECT COALESCE(SUM(p.monto), 0)
	FROM pagos p
	WHERE` + incomeFilterClause

func incomeFilterArgs(filter models.IncomeFilter) []interface{} {
	args := []interface{}{nil, nil, nil}
	if filter.Anio != nil {
		args[0] = *filter.Anio
	}
	if filter.Mes != nil {
		args[1] = *filter.Mes
	}
	if filter.Dia != nil {
		args[2] = *filter.Dia
	}
	return args
}

// GetIncomeDetail lists the payments matching the filter, newest first.
func (r *reportRepository) GetIncomeDetail(ctx context.Context, filter models.IncomeFilter) ([]models.IncomeRow, error) {
	rows, err := r.db.QueryContext(ctx, incomeDetailQuery, incomeFilterArgs(filter)...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying income detail: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	detail := []models.IncomeRow{}
	for rows.Next() {
		var row models.IncomeRow
		if err := rows.Scan(&row.Fecha, &row.Cliente, &row.Tipo, &row.Monto, &row.MedioPago); err != nil {
			return nil, fmt.Errorf("%w: scanning income row: %v", ErrDatabaseError, err)
		}
		detail = append(detail, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating income rows: %v", ErrDatabaseError, err)
	}
	return detail, nil
}

// GetIncomeTotal sums the amounts matching the filter; zero when nothing matches.
func (r *reportRepository) GetIncomeTotal(ctx context.Context, filter models.IncomeFilter) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(ctx, incomeTotalQuery, incomeFilterArgs(filter)...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: summing income: %v", ErrDatabaseError, err)
	}
	return total, nil
}
