package services

import (
	"context"
	"sort"
	"time"

	"gym_backend/internal/models"
	"gym_backend/internal/repositories"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func clockAt(y int, m time.Month, d int) Clock {
	return fixedClock(time.Date(y, m, d, 10, 0, 0, 0, time.UTC))
}

// memoryStore backs the fake repositories with the same rules the SQL applies.
type memoryStore struct {
	clients  map[int64]models.Client
	payments []models.Payment
	nextID   int64
	failWith error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{clients: map[int64]models.Client{}}
}

func (m *memoryStore) lastPayment(clientID int64) *models.Date {
	var last *models.Date
	for i := range m.payments {
		p := m.payments[i]
		if p.ClienteID == clientID && (last == nil || p.FechaPago.After(last.Time)) {
			d := p.FechaPago
			last = &d
		}
	}
	return last
}

type fakeClientRepo struct{ *memoryStore }

func (r fakeClientRepo) CreateClient(_ context.Context, _ repositories.SQLExecutor, c *models.Client) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	r.nextID++
	c.ID = r.nextID
	r.clients[c.ID] = *c
	return c.ID, nil
}

func (r fakeClientRepo) GetClientByID(_ context.Context, id int64) (*models.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r fakeClientRepo) GetClients(_ context.Context) ([]models.Client, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := []models.Client{}
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r fakeClientRepo) UpdateClient(_ context.Context, _ repositories.SQLExecutor, c *models.Client) error {
	existing, ok := r.clients[c.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Nombre, existing.Telefono, existing.Tipo = c.Nombre, c.Telefono, c.Tipo
	r.clients[c.ID] = existing
	return nil
}

func (r fakeClientRepo) DeleteClient(_ context.Context, _ repositories.SQLExecutor, id int64) error {
	if _, ok := r.clients[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r fakeClientRepo) CountClients(_ context.Context) (int, error) {
	return len(r.clients), nil
}

func (r fakeClientRepo) GetOverdueClients(_ context.Context, today models.Date, threshold int) ([]models.OverdueClient, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := []models.OverdueClient{}
	for _, c := range r.clients {
		if c.Tipo != models.TipoMensual {
			continue
		}
		last := r.lastPayment(c.ID)
		if last == nil || int(today.Sub(last.Time).Hours()/24) > threshold {
			out = append(out, models.OverdueClient{ID: c.ID, Nombre: c.Nombre, Telefono: c.Telefono, Tipo: c.Tipo, UltimoPago: last})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r fakeClientRepo) CountOverdueClients(ctx context.Context, today models.Date, threshold int) (int, error) {
	out, err := r.GetOverdueClients(ctx, today, threshold)
	return len(out), err
}

func (r fakeClientRepo) GetReminders(_ context.Context, today models.Date, lead int) ([]models.Reminder, error) {
	out := []models.Reminder{}
	for _, c := range r.clients {
		last := r.lastPayment(c.ID)
		if c.Tipo != models.TipoMensual || last == nil {
			continue
		}
		due := addMonth(*last)
		remind := models.NewDate(due.AddDate(0, 0, -lead))
		if remind.Equal(today.Time) {
			out = append(out, models.Reminder{ID: c.ID, Nombre: c.Nombre, Telefono: c.Telefono, FechaVencimiento: due, FechaRecordatorio: remind})
		}
	}
	return out, nil
}

// addMonth follows PostgreSQL's date + interval '1 month': the day is clamped
// to the last day of the next month.
func addMonth(d models.Date) models.Date {
	y, m, day := d.Date()
	firstOfNext := time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return models.DateOf(firstOfNext.Year(), firstOfNext.Month(), day)
}

type fakePaymentRepo struct{ *memoryStore }

func (r fakePaymentRepo) CreatePayment(_ context.Context, _ repositories.SQLExecutor, p *models.Payment) (int64, error) {
	if _, ok := r.clients[p.ClienteID]; !ok {
		return 0, repositories.ErrForeignKeyViolation
	}
	r.nextID++
	p.ID = r.nextID
	r.payments = append(r.payments, *p)
	return p.ID, nil
}

func (r fakePaymentRepo) GetPaymentsByClient(_ context.Context, clientID int64) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range r.payments {
		if p.ClienteID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r fakePaymentRepo) DeletePaymentsByClient(_ context.Context, _ repositories.SQLExecutor, clientID int64) (int64, error) {
	kept := r.payments[:0]
	var deleted int64
	for _, p := range r.payments {
		if p.ClienteID == clientID {
			deleted++
			continue
		}
		kept = append(kept, p)
	}
	r.payments = kept
	return deleted, nil
}

type fakeReportRepo struct{ *memoryStore }

func (r fakeReportRepo) matching(f models.IncomeFilter) []models.Payment {
	out := []models.Payment{}
	for _, p := range r.payments {
		if f.Anio != nil && p.FechaPago.Year() != *f.Anio {
			continue
		}
		if f.Mes != nil && int(p.FechaPago.Month()) != *f.Mes {
			continue
		}
		if f.Dia != nil && !p.FechaPago.Equal(f.Dia.Time) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FechaPago.After(out[j].FechaPago.Time) })
	return out
}

func (r fakeReportRepo) GetIncomeDetail(_ context.Context, f models.IncomeFilter) ([]models.IncomeRow, error) {
	rows := []models.IncomeRow{}
	for _, p := range r.matching(f) {
		c := r.clients[p.ClienteID]
		rows = append(rows, models.IncomeRow{Fecha: p.FechaPago, Cliente: c.Nombre, Tipo: c.Tipo, Monto: p.Monto, MedioPago: p.MedioPago})
	}
	return rows, nil
}

func (r fakeReportRepo) GetIncomeTotal(_ context.Context, f models.IncomeFilter) (float64, error) {
	var total float64
	for _, p := range r.matching(f) {
		total += p.Monto
	}
	return total, nil
}

type fakeUserRepo struct {
	users map[string]models.User
}

func (r *fakeUserRepo) FindUserByUsuario(_ context.Context, usuario string) (*models.User, error) {
	u, ok := r.users[usuario]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) CreateUserIfMissing(_ context.Context, _ repositories.SQLExecutor, usuario, hash string) (bool, error) {
	if _, ok := r.users[usuario]; ok {
		return false, nil
	}
	r.users[usuario] = models.User{ID: int64(len(r.users) + 1), Usuario: usuario, PasswordHash: hash, Activo: true}
	return true, nil
}

type memoryListCache struct {
	clients     []models.Client
	ok          bool
	invalidated int
}

func (c *memoryListCache) Get(_ context.Context) ([]models.Client, bool, error) {
	return c.clients, c.ok, nil
}

func (c *memoryListCache) Set(_ context.Context, clients []models.Client) error {
	c.clients, c.ok = clients, true
	return nil
}

func (c *memoryListCache) Invalidate(_ context.Context) error {
	c.clients, c.ok = nil, false
	c.invalidated++
	return nil
}
