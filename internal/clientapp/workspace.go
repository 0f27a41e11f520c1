package clientapp

import (
	"context"
	"errors"
	"strings"

	"gym_backend/internal/models"
	"gym_backend/pkg/gymclient"
)

// Guard errors carry the operator-facing text.
var (
	ErrEditInProgress   = errors.New("Estás editando un cliente. Usa ACTUALIZAR.")
	ErrNoEditTarget     = errors.New("Seleccione un cliente para editar")
	ErrNoPaymentTarget  = errors.New("Seleccione un cliente")
	ErrIncompleteFields = errors.New("Complete todos los campos")
)

// ReportToggle shows the report on odd triggers and hides it on even ones.
type ReportToggle struct {
	count int
}

// Trigger counts one press and reports whether the report is now visible.
func (t *ReportToggle) Trigger() bool {
	t.count++
	return t.count%2 == 1
}

// Workspace is one operator session: the lookup cache plus the edit and payment targets.
type Workspace struct {
	api    API
	cache  *ClientCache
	toggle ReportToggle

	editTarget *models.Client
	payTarget  *models.Client
}

func NewWorkspace(api API) *Workspace {
	return &Workspace{api: api, cache: NewClientCache(api)}
}

func (w *Workspace) Cache() *ClientCache {
	return w.cache
}

func (w *Workspace) EditTarget() *models.Client {
	return w.editTarget
}

func (w *Workspace) PaymentTarget() *models.Client {
	return w.payTarget
}

func (w *Workspace) selectOne(ctx context.Context, text string) (models.Client, error) {
	matches, err := w.cache.Search(ctx, text)
	if err != nil {
		return models.Client{}, err
	}
	return SelectOne(text, matches)
}

// SelectForEdit makes the single client matching text the edit target.
func (w *Workspace) SelectForEdit(ctx context.Context, text string) (models.Client, error) {
	c, err := w.selectOne(ctx, text)
	if err != nil {
		return models.Client{}, err
	}
	w.editTarget = &c
	return c, nil
}

// SelectForPayment makes the single client matching text the payment target.
func (w *Workspace) SelectForPayment(ctx context.Context, text string) (models.Client, error) {
	c, err := w.selectOne(ctx, text)
	if err != nil {
		return models.Client{}, err
	}
	w.payTarget = &c
	return c, nil
}

// ClearEdit drops the edit target, like clearing the form.
func (w *Workspace) ClearEdit() {
	w.editTarget = nil
}

func clientInput(nombre, telefono, tipo string) (gymclient.ClientInput, error) {
	in := gymclient.ClientInput{
		Nombre:   strings.TrimSpace(nombre),
		Telefono: strings.TrimSpace(telefono),
		Tipo:     strings.TrimSpace(tipo),
	}
	if in.Tipo == "" {
		in.Tipo = models.TipoMensual
	}
	if in.Nombre == "" || in.Telefono == "" {
		return in, ErrIncompleteFields
	}
	return in, nil
}

// RegisterClient creates a client. It is refused while an edit target is active.
func (w *Workspace) RegisterClient(ctx context.Context, nombre, telefono, tipo string) (*gymclient.Message, error) {
	if w.editTarget != nil {
		return nil, ErrEditInProgress
	}
	in, err := clientInput(nombre, telefono, tipo)
	if err != nil {
		return nil, err
	}
	msg, err := w.api.CreateClient(ctx, in)
	if err != nil {
		return nil, err
	}
	w.cache.Invalidate()
	return msg, nil
}

// UpdateClient overwrites the edit target and clears it.
func (w *Workspace) UpdateClient(ctx context.Context, nombre, telefono, tipo string) (*gymclient.Message, error) {
	if w.editTarget == nil {
		return nil, ErrNoEditTarget
	}
	in, err := clientInput(nombre, telefono, tipo)
	if err != nil {
		return nil, err
	}
	msg, err := w.api.UpdateClient(ctx, w.editTarget.ID, in)
	if err != nil {
		return nil, err
	}
	w.editTarget = nil
	w.cache.Invalidate()
	return msg, nil
}

// DeleteClient removes a client (and its payments) and clears the edit target.
func (w *Workspace) DeleteClient(ctx context.Context, id int64) (*gymclient.Message, error) {
	msg, err := w.api.DeleteClient(ctx, id)
	if err != nil {
		return nil, err
	}
	w.editTarget = nil
	if w.payTarget != nil && w.payTarget.ID == id {
		w.payTarget = nil
	}
	w.cache.Invalidate()
	return msg, nil
}

// RegisterPayment pays for the payment target and clears it.
func (w *Workspace) RegisterPayment(ctx context.Context, monto, medioPago string) (*gymclient.Message, error) {
	if w.payTarget == nil {
		return nil, ErrNoPaymentTarget
	}
	msg, err := w.api.RegisterPayment(ctx, gymclient.PaymentInput{
		ClienteID: w.payTarget.ID,
		Monto:     strings.TrimSpace(monto),
		MedioPago: strings.TrimSpace(medioPago),
	})
	if err != nil {
		return nil, err
	}
	w.payTarget = nil
	return msg, nil
}

// ToggleReport flips report visibility; the report is fetched only when it becomes visible.
func (w *Workspace) ToggleReport(ctx context.Context, q gymclient.ReportQuery) (*models.IncomeReport, bool, error) {
	if !w.toggle.Trigger() {
		return nil, false, nil
	}
	report, err := w.api.IncomeReport(ctx, q)
	if err != nil {
		return nil, true, err
	}
	return report, true, nil
}

func (w *Workspace) OverdueClients(ctx context.Context) ([]models.OverdueClient, error) {
	return w.api.OverdueClients(ctx)
}

func (w *Workspace) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	return w.api.Dashboard(ctx)
}

func (w *Workspace) ReminderLinks(ctx context.Context, opts LinkOptions) ([]ReminderLink, error) {
	reminders, err := w.api.Reminders(ctx)
	if err != nil {
		return nil, err
	}
	return BuildReminderLinks(reminders, opts), nil
}
