// Package clientapp holds the operator-side workflow: the client lookup cache,
// single selection for editing and payments, the report toggle, formatting,
// spreadsheet export, reminder links and the login session.
package clientapp

import (
	"context"

	"gym_backend/internal/models"
	"gym_backend/pkg/gymclient"
)

// API is the subset of the backend the workspace talks to. *gymclient.Client satisfies it.
type API interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	CreateClient(ctx context.Context, in gymclient.ClientInput) (*gymclient.Message, error)
	UpdateClient(ctx context.Context, id int64, in gymclient.ClientInput) (*gymclient.Message, error)
	DeleteClient(ctx context.Context, id int64) (*gymclient.Message, error)
	RegisterPayment(ctx context.Context, in gymclient.PaymentInput) (*gymclient.Message, error)
	OverdueClients(ctx context.Context) ([]models.OverdueClient, error)
	IncomeReport(ctx context.Context, q gymclient.ReportQuery) (*models.IncomeReport, error)
	Dashboard(ctx context.Context) (*models.DashboardSummary, error)
	Reminders(ctx context.Context) ([]models.Reminder, error)
}

var _ API = (*gymclient.Client)(nil)
