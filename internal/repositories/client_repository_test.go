package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym_backend/internal/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestClientRepository_CreateClient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	inscripcion := models.DateOf(2026, time.March, 10)
	client := &models.Client{Nombre: "Ana", Telefono: "3001234567", Tipo: "mensual", FechaInscripcion: &inscripcion}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clientes")).
		WithArgs("Ana", "3001234567", "mensual", "2026-03-10").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	id, err := repo.CreateClient(context.Background(), db, client)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.Equal(t, int64(5), client.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_GetClientByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clientes WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetClientByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientRepository_GetClients(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "telefono", "tipo", "fecha_inscripcion"}).
		AddRow(2, "Ana", "300", "mensual", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)).
		AddRow(1, "Luis", "301", "diario", nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM clientes ORDER BY nombre ASC")).WillReturnRows(rows)

	clients, err := repo.GetClients(context.Background())
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "Ana", clients[0].Nombre)
	require.NotNil(t, clients[0].FechaInscripcion)
	assert.Equal(t, "2026-01-05", clients[0].FechaInscripcion.String())
	assert.Nil(t, clients[1].FechaInscripcion)
}

func TestClientRepository_GetClients_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clientes")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre", "telefono", "tipo", "fecha_inscripcion"}))

	clients, err := repo.GetClients(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, clients)
	assert.Empty(t, clients)
}

func TestClientRepository_UpdateClient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)
	client := &models.Client{ID: 3, Nombre: "Ana María", Telefono: "300", Tipo: "diario"}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE clientes SET nombre = $1, telefono = $2, tipo = $3 WHERE id = $4")).
		WithArgs("Ana María", "300", "diario", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateClient(context.Background(), db, client))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE clientes")).
		WithArgs("Ana María", "300", "diario", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateClient(context.Background(), db, client), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_DeleteClient(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clientes WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteClient(context.Background(), db, 4), ErrNotFound)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clientes WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnError(&pq.Error{Code: "23503"})
	assert.ErrorIs(t, repo.DeleteClient(context.Background(), db, 4), ErrForeignKeyViolation)
}

func TestClientRepository_GetOverdueClients(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)
	today := models.DateOf(2026, time.March, 20)

	rows := sqlmock.NewRows([]string{"id", "nombre", "telefono", "tipo", "ultimo_pago"}).
		AddRow(1, "Ana", "300", "mensual", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)).
		AddRow(2, "Beto", "301", "mensual", nil)
	mock.ExpectQuery(regexp.QuoteMeta("HAVING MAX(p.fecha_pago) IS NULL")).
		WithArgs("2026-03-20", 7).
		WillReturnRows(rows)

	overdue, err := repo.GetOverdueClients(context.Background(), today, 7)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	require.NotNil(t, overdue[0].UltimoPago)
	assert.Equal(t, "2026-03-01", overdue[0].UltimoPago.String())
	assert.Nil(t, overdue[1].UltimoPago)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_CountOverdueClients(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM (")).
		WithArgs("2026-03-20", 27).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.CountOverdueClients(context.Background(), models.DateOf(2026, time.March, 20), 27)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestClientRepository_GetReminders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	rows := sqlmock.NewRows([]string{"id", "nombre", "telefono", "fecha_vencimiento", "fecha_recordatorio"}).
		AddRow(7, "Carla", "3001112233",
			time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(regexp.QuoteMeta("make_interval(days => $2::int)")).
		WithArgs("2026-04-07", 3).
		WillReturnRows(rows)

	reminders, err := repo.GetReminders(context.Background(), models.DateOf(2026, time.April, 7), 3)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "2026-04-10", reminders[0].FechaVencimiento.String())
	assert.Equal(t, "2026-04-07", reminders[0].FechaRecordatorio.String())
}

func TestClientRepository_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM clientes")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CountClients(context.Background())
	assert.ErrorIs(t, err, ErrDatabaseError)
	assert.Contains(t, err.Error(), "connection reset")
}
