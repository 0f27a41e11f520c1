package clientapp

import (
	"context"
	"errors"
	"fmt"

	"gym_backend/internal/models"
	"gym_backend/pkg/gymclient"
)

var errBackend = errors.New("backend down")

// fakeAPI records the calls the workspace makes.
type fakeAPI struct {
	clients   []models.Client
	listCalls int

	created  []gymclient.ClientInput
	updated  map[int64]gymclient.ClientInput
	deleted  []int64
	payments []gymclient.PaymentInput

	overdue   []models.OverdueClient
	report    *models.IncomeReport
	queries   []gymclient.ReportQuery
	summary   *models.DashboardSummary
	reminders []models.Reminder

	failWrites bool
}

func newFakeAPI(clients ...models.Client) *fakeAPI {
	return &fakeAPI{clients: clients, updated: map[int64]gymclient.ClientInput{}}
}

func (f *fakeAPI) ListClients(ctx context.Context) ([]models.Client, error) {
	f.listCalls++
	out := make([]models.Client, len(f.clients))
	copy(out, f.clients)
	return out, nil
}

func (f *fakeAPI) CreateClient(ctx context.Context, in gymclient.ClientInput) (*gymclient.Message, error) {
	if f.failWrites {
		return nil, errBackend
	}
	f.created = append(f.created, in)
	id := int64(len(f.clients) + 1)
	f.clients = append(f.clients, models.Client{ID: id, Nombre: in.Nombre, Telefono: in.Telefono, Tipo: in.Tipo})
	return &gymclient.Message{Mensaje: "Cliente registrado correctamente", ID: id}, nil
}

func (f *fakeAPI) UpdateClient(ctx context.Context, id int64, in gymclient.ClientInput) (*gymclient.Message, error) {
	if f.failWrites {
		return nil, errBackend
	}
	f.updated[id] = in
	return &gymclient.Message{Mensaje: "Cliente actualizado correctamente"}, nil
}

func (f *fakeAPI) DeleteClient(ctx context.Context, id int64) (*gymclient.Message, error) {
	if f.failWrites {
		return nil, errBackend
	}
	f.deleted = append(f.deleted, id)
	return &gymclient.Message{Mensaje: "Cliente eliminado correctamente"}, nil
}

func (f *fakeAPI) RegisterPayment(ctx context.Context, in gymclient.PaymentInput) (*gymclient.Message, error) {
	if f.failWrites {
		return nil, errBackend
	}
	f.payments = append(f.payments, in)
	return &gymclient.Message{Mensaje: "Pago registrado correctamente", ID: int64(len(f.payments))}, nil
}

func (f *fakeAPI) OverdueClients(ctx context.Context) ([]models.OverdueClient, error) {
	return f.overdue, nil
}

func (f *fakeAPI) IncomeReport(ctx context.Context, q gymclient.ReportQuery) (*models.IncomeReport, error) {
	f.queries = append(f.queries, q)
	if f.report == nil {
		return &models.IncomeReport{Detalle: []models.IncomeRow{}}, nil
	}
	return f.report, nil
}

func (f *fakeAPI) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	if f.summary == nil {
		return nil, fmt.Errorf("dashboard: %w", errBackend)
	}
	return f.summary, nil
}

func (f *fakeAPI) Reminders(ctx context.Context) ([]models.Reminder, error) {
	return f.reminders, nil
}

func sampleClients() []models.Client {
	return []models.Client{
		{ID: 1, Nombre: "Ana Gómez", Telefono: "3001112233", Tipo: models.TipoMensual},
		{ID: 2, Nombre: "Ana", Telefono: "3004445566", Tipo: models.TipoMensual},
		{ID: 3, Nombre: "Carlos Ruiz", Telefono: "3107778899", Tipo: "diario"},
	}
}
