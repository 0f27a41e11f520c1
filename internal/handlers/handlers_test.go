package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gym_backend/internal/export"
	"gym_backend/internal/models"
	"gym_backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClientService struct {
	clients   []models.Client
	overdue   []models.OverdueClient
	reminders []models.Reminder
	created   []services.ClientRequest
	deleted   []int64
	err       error
}

func (f *fakeClientService) CreateClient(_ context.Context, req services.ClientRequest) (*models.Client, error) {
	if req.Nombre == "" || req.Telefono == "" || req.Tipo == "" {
		return nil, services.ErrClientValidation
	}
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &models.Client{ID: int64(len(f.created)), Nombre: req.Nombre}, nil
}

func (f *fakeClientService) GetClientByID(_ context.Context, id int64) (*models.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, services.ErrClientNotFound
}

func (f *fakeClientService) GetClients(_ context.Context) ([]models.Client, error) {
	return f.clients, f.err
}

func (f *fakeClientService) UpdateClient(_ context.Context, id int64, req services.ClientRequest) error {
	if req.Nombre == "" {
		return services.ErrClientValidation
	}
	if f.err != nil {
		return f.err
	}
	if _, err := f.GetClientByID(context.Background(), id); err != nil {
		return err
	}
	return nil
}

func (f *fakeClientService) DeleteClient(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	if _, err := f.GetClientByID(context.Background(), id); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClientService) GetClientPayments(_ context.Context, _ int64) ([]models.Payment, error) {
	return []models.Payment{}, f.err
}

func (f *fakeClientService) GetOverdueClients(_ context.Context) ([]models.OverdueClient, error) {
	return f.overdue, f.err
}

func (f *fakeClientService) GetReminders(_ context.Context) ([]models.Reminder, error) {
	return f.reminders, f.err
}

type fakePaymentService struct {
	last *services.RegisterPaymentRequest
}

func (f *fakePaymentService) RegisterPayment(_ context.Context, req services.RegisterPaymentRequest) (*models.Payment, error) {
	if req.ClienteID <= 0 || req.Monto <= 0 || req.MedioPago == "" {
		return nil, services.ErrPaymentValidation
	}
	if req.ClienteID == 404 {
		return nil, services.ErrClientNotFound
	}
	f.last = &req
	return &models.Payment{ID: 9}, nil
}

type fakeReportService struct {
	report  *models.IncomeReport
	filter  models.IncomeFilter
	summary *models.DashboardSummary
	err     error
}

func (f *fakeReportService) GetIncomeReport(_ context.Context, filter models.IncomeFilter) (*models.IncomeReport, error) {
	f.filter = filter
	return f.report, f.err
}

func (f *fakeReportService) GetDashboardSummary(_ context.Context) (*models.DashboardSummary, error) {
	return f.summary, f.err
}

type fakeAuthService struct{}

func (fakeAuthService) Login(_ context.Context, req services.LoginRequest) (*services.LoginResult, error) {
	if req.Usuario == "admin" && req.Password == "1234" {
		return &services.LoginResult{Usuario: "admin", Token: "jwt"}, nil
	}
	return nil, services.ErrInvalidCredentials
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func newClientEngine(svc services.ClientService) *gin.Engine {
	h := NewClientHandler(svc)
	r := gin.New()
	r.POST("/clientes", h.CreateClient)
	r.GET("/clientes", h.GetClients)
	r.GET("/clientes/:id", h.GetClientByID)
	r.PUT("/clientes/:id", h.UpdateClient)
	r.DELETE("/clientes/:id", h.DeleteClient)
	r.GET("/clientes/:id/pagos", h.GetClientPayments)
	r.GET("/clientes-morosos", h.GetOverdueClients)
	r.GET("/recordatorios", h.GetReminders)
	return r
}

func TestCreateClient(t *testing.T) {
	svc := &fakeClientService{}
	r := newClientEngine(svc)

	w := doJSON(r, http.MethodPost, "/clientes", map[string]string{"nombre": "Ana", "telefono": "300", "tipo": "mensual"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cliente registrado correctamente", decode(t, w)["mensaje"])

	w = doJSON(r, http.MethodPost, "/clientes", map[string]string{"nombre": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nombre, teléfono y tipo son obligatorios", decode(t, w)["mensaje"])

	w = doJSON(r, http.MethodPost, "/clientes", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, svc.created, 1)
}

func TestCreateClient_StoreError(t *testing.T) {
	r := newClientEngine(&fakeClientService{err: errors.New("insert failed")})

	w := doJSON(r, http.MethodPost, "/clientes", map[string]string{"nombre": "Ana", "telefono": "300", "tipo": "mensual"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Error al registrar cliente", body["mensaje"])
	assert.Equal(t, "insert failed", body["error"])
}

func TestGetClients(t *testing.T) {
	r := newClientEngine(&fakeClientService{clients: []models.Client{{ID: 1, Nombre: "Ana", Telefono: "300", Tipo: "mensual"}}})

	w := doJSON(r, http.MethodGet, "/clientes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, "Ana", list[0].Nombre)

	r = newClientEngine(&fakeClientService{err: errors.New("down")})
	w = doJSON(r, http.MethodGet, "/clientes", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Error al obtener clientes", body["mensaje"])
	assert.NotContains(t, body, "error")
}

func TestUpdateAndDeleteClient(t *testing.T) {
	svc := &fakeClientService{clients: []models.Client{{ID: 3, Nombre: "Ana"}}}
	r := newClientEngine(svc)

	w := doJSON(r, http.MethodPut, "/clientes/3", map[string]string{"nombre": "Ana M", "telefono": "300", "tipo": "mensual"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cliente actualizado correctamente", decode(t, w)["mensaje"])

	w = doJSON(r, http.MethodPut, "/clientes/8", map[string]string{"nombre": "X", "telefono": "1", "tipo": "diario"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPut, "/clientes/abc", map[string]string{"nombre": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodDelete, "/clientes/3", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cliente eliminado correctamente", decode(t, w)["mensaje"])
	assert.Equal(t, []int64{3}, svc.deleted)

	w = doJSON(r, http.MethodDelete, "/clientes/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Cliente no encontrado", decode(t, w)["mensaje"])
}

func TestOverdueAndReminders(t *testing.T) {
	last := models.DateOf(2026, time.March, 1)
	svc := &fakeClientService{
		overdue: []models.OverdueClient{
			{ID: 1, Nombre: "Ana", Tipo: "mensual", UltimoPago: &last},
			{ID: 2, Nombre: "Beto", Tipo: "mensual"},
		},
		reminders: []models.Reminder{{ID: 3, Nombre: "Carla", FechaVencimiento: models.DateOf(2026, time.April, 10), FechaRecordatorio: models.DateOf(2026, time.April, 7)}},
	}
	r := newClientEngine(svc)

	w := doJSON(r, http.MethodGet, "/clientes-morosos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":1,"nombre":"Ana","telefono":"","tipo":"mensual","ultimo_pago":"2026-03-01"},
		{"id":2,"nombre":"Beto","telefono":"","tipo":"mensual","ultimo_pago":null}
	]`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/recordatorios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":3,"nombre":"Carla","telefono":"","fecha_vencimiento":"2026-04-10","fecha_recordatorio":"2026-04-07"}]`, w.Body.String())

	r = newClientEngine(&fakeClientService{err: errors.New("boom")})
	w = doJSON(r, http.MethodGet, "/recordatorios", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error al obtener recordatorios", decode(t, w)["mensaje"])
}

func TestRegisterPayment(t *testing.T) {
	svc := &fakePaymentService{}
	h := NewPaymentHandler(svc)
	r := gin.New()
	r.POST("/pagos", h.RegisterPayment)

	w := doJSON(r, http.MethodPost, "/pagos", `{"cliente_id":3,"monto":"80000","medio_pago":"efectivo"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Pago registrado correctamente 💰", decode(t, w)["mensaje"])
	require.NotNil(t, svc.last)
	assert.Equal(t, models.Amount(80000), svc.last.Monto)

	for _, body := range []string{
		`{"cliente_id":3,"monto":"","medio_pago":"efectivo"}`,
		`{"cliente_id":3,"monto":"abc","medio_pago":"efectivo"}`,
		`{"cliente_id":3,"monto":"NaN","medio_pago":"efectivo"}`,
		`{"cliente_id":3,"monto":"Infinity","medio_pago":"efectivo"}`,
		`{"monto":100,"medio_pago":"efectivo"}`,
		`{"cliente_id":3,"monto":100}`,
	} {
		w = doJSON(r, http.MethodPost, "/pagos", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Datos incompletos", decode(t, w)["mensaje"])
	}

	w = doJSON(r, http.MethodPost, "/pagos", `{"cliente_id":404,"monto":100,"medio_pago":"efectivo"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func newReportEngine(svc services.ReportService) *gin.Engine {
	h := NewReportHandler(svc, fixedClock(time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)))
	r := gin.New()
	r.GET("/reporte-ingresos", h.GetIncomeReport)
	r.GET("/reporte-ingresos/excel", h.ExportIncomeReport)
	r.GET("/dashboard", h.GetDashboard)
	return r
}

func TestGetIncomeReport(t *testing.T) {
	svc := &fakeReportService{report: &models.IncomeReport{
		Detalle: []models.IncomeRow{{Fecha: models.DateOf(2026, time.March, 10), Cliente: "Ana", Tipo: "mensual", Monto: 80000, MedioPago: "efectivo"}},
		Total:   80000,
	}}
	r := newReportEngine(svc)

	w := doJSON(r, http.MethodGet, "/reporte-ingresos?mes=3&anio=2026", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detalle":[{"fecha":"2026-03-10","cliente":"Ana","tipo":"mensual","monto":80000,"medio_pago":"efectivo"}],"total":80000}`, w.Body.String())
	require.NotNil(t, svc.filter.Mes)
	assert.Equal(t, 3, *svc.filter.Mes)
	assert.Nil(t, svc.filter.Dia)

	w = doJSON(r, http.MethodGet, "/reporte-ingresos?mes=13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r = newReportEngine(&fakeReportService{err: errors.New("sum failed")})
	w = doJSON(r, http.MethodGet, "/reporte-ingresos", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Error al generar reporte", body["mensaje"])
	assert.Equal(t, "sum failed", body["error"])
}

func TestExportIncomeReport(t *testing.T) {
	svc := &fakeReportService{report: &models.IncomeReport{
		Detalle: []models.IncomeRow{{Fecha: models.DateOf(2026, time.March, 10), Cliente: "Ana", Tipo: "mensual", Monto: 80000, MedioPago: "efectivo"}},
		Total:   80000,
	}}
	r := newReportEngine(svc)

	w := doJSON(r, http.MethodGet, "/reporte-ingresos/excel", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="reporte_ingresos_2026-03-20.xlsx"`, w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(export.SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ana", v)

	r = newReportEngine(&fakeReportService{report: &models.IncomeReport{Detalle: []models.IncomeRow{}}})
	w = doJSON(r, http.MethodGet, "/reporte-ingresos/excel", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No hay datos para exportar", decode(t, w)["mensaje"])
}

func TestGetDashboard(t *testing.T) {
	r := newReportEngine(&fakeReportService{summary: &models.DashboardSummary{TotalClientes: 5, ClientesMorosos: 2, IngresosMes: 90000, IngresosAnio: 170000}})

	w := doJSON(r, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalClientes":5,"clientesMorosos":2,"ingresosMes":90000,"ingresosAnio":170000}`, w.Body.String())

	r = newReportEngine(&fakeReportService{err: errors.New("x")})
	w = doJSON(r, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error al cargar dashboard", decode(t, w)["mensaje"])
}

func TestLogin(t *testing.T) {
	h := NewAuthHandler(fakeAuthService{})
	r := gin.New()
	r.POST("/login", h.Login)

	w := doJSON(r, http.MethodPost, "/login", map[string]string{"usuario": "admin", "password": "1234"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"token":"jwt"}`, w.Body.String())

	for _, body := range []interface{}{
		map[string]string{"usuario": "admin", "password": "x"},
		map[string]string{},
		"garbage",
	} {
		w = doJSON(r, http.MethodPost, "/login", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"ok":false,"mensaje":"Usuario o contraseña incorrectos"}`, w.Body.String())
	}
}

func TestTestDB(t *testing.T) {
	r := gin.New()
	r.GET("/ok", NewHealthHandler(func(context.Context) error { return nil }).TestDB)
	r.GET("/fail", NewHealthHandler(func(context.Context) error { return errors.New("dial tcp: refused") }).TestDB)

	w := doJSON(r, http.MethodGet, "/ok", nil)
	assert.JSONEq(t, `{"ok":true,"mensaje":"Conectado a la base de datos ✅"}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/fail", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"dial tcp: refused"}`, w.Body.String())
}
