// Package gymclient is a typed HTTP client for the gym backend API.
package gymclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gym_backend/internal/models"
)

const maxErrorBodySize = 4096

// ErrConnection wraps transport failures, as opposed to requests the server rejected.
var ErrConnection = errors.New("error de conexión con el servidor")

// APIError is a non-2xx response. Mensaje is the server's user-facing text.
type APIError struct {
	StatusCode int
	Mensaje    string
	Detalle    string
}

func (e *APIError) Error() string {
	msg := e.Mensaje
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Detalle != "" {
		return fmt.Sprintf("%s (%d): %s", msg, e.StatusCode, e.Detalle)
	}
	return fmt.Sprintf("%s (%d)", msg, e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

// WithToken sends the bearer token returned by Login on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the server at baseURL, e.g. http://localhost:3000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Message is the {mensaje} body of write endpoints.
type Message struct {
	Mensaje string `json:"mensaje"`
	ID      int64  `json:"id,omitempty"`
}

// ClientInput is the body of client register and update.
type ClientInput struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	Tipo     string `json:"tipo"`
}

// PaymentInput is the body of POST /pagos. Monto is sent as typed, like a form field.
type PaymentInput struct {
	ClienteID int64  `json:"cliente_id"`
	Monto     string `json:"monto"`
	MedioPago string `json:"medio_pago"`
}

// ReportQuery holds the optional report filters as typed by the operator.
type ReportQuery struct {
	Dia  string
	Mes  string
	Anio string
}

func (q ReportQuery) values() url.Values {
	v := url.Values{}
	if q.Anio != "" {
		v.Set("anio", q.Anio)
	}
	if q.Mes != "" {
		v.Set("mes", q.Mes)
	}
	if q.Dia != "" {
		v.Set("dia", q.Dia)
	}
	return v
}

type loginResponse struct {
	OK      bool   `json:"ok"`
	Token   string `json:"token"`
	Mensaje string `json:"mensaje"`
}

type dbCheckResponse struct {
	OK      bool   `json:"ok"`
	Mensaje string `json:"mensaje"`
	Error   string `json:"error"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do sends the request and returns the raw body of a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, http.Header, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Mensaje string `json:"mensaje"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(raw, &body) == nil {
			apiErr.Mensaje, apiErr.Detalle = body.Mensaje, body.Error
		} else {
			apiErr.Detalle = strings.TrimSpace(string(raw))
		}
		return nil, nil, apiErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read response: %v", ErrConnection, err)
	}
	return raw, resp.Header, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	raw, _, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func clientPath(id int64) string {
	return "/clientes/" + strconv.FormatInt(id, 10)
}

// Login returns the bearer token; it is empty when the server does not issue tokens.
func (c *Client) Login(ctx context.Context, usuario, password string) (string, error) {
	var resp loginResponse
	err := c.doJSON(ctx, http.MethodPost, "/login", nil, map[string]string{"usuario": usuario, "password": password}, &resp)
	if err != nil {
		return "", err
	}
	if !resp.OK {
		return "", &APIError{StatusCode: http.StatusUnauthorized, Mensaje: resp.Mensaje}
	}
	return resp.Token, nil
}

func (c *Client) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := c.doJSON(ctx, http.MethodGet, "/clientes", nil, nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (c *Client) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	if err := c.doJSON(ctx, http.MethodGet, clientPath(id), nil, nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) CreateClient(ctx context.Context, in ClientInput) (*Message, error) {
	var msg Message
	if err := c.doJSON(ctx, http.MethodPost, "/clientes", nil, in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) UpdateClient(ctx context.Context, id int64, in ClientInput) (*Message, error) {
	var msg Message
	if err := c.doJSON(ctx, http.MethodPut, clientPath(id), nil, in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) DeleteClient(ctx context.Context, id int64) (*Message, error) {
	var msg Message
	if err := c.doJSON(ctx, http.MethodDelete, clientPath(id), nil, nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) ClientPayments(ctx context.Context, id int64) ([]models.Payment, error) {
	var payments []models.Payment
	if err := c.doJSON(ctx, http.MethodGet, clientPath(id)+"/pagos", nil, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *Client) RegisterPayment(ctx context.Context, in PaymentInput) (*Message, error) {
	var msg Message
	if err := c.doJSON(ctx, http.MethodPost, "/pagos", nil, in, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) OverdueClients(ctx context.Context) ([]models.OverdueClient, error) {
	var overdue []models.OverdueClient
	if err := c.doJSON(ctx, http.MethodGet, "/clientes-morosos", nil, nil, &overdue); err != nil {
		return nil, err
	}
	return overdue, nil
}

func (c *Client) IncomeReport(ctx context.Context, q ReportQuery) (*models.IncomeReport, error) {
	var report models.IncomeReport
	if err := c.doJSON(ctx, http.MethodGet, "/reporte-ingresos", q.values(), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// IncomeReportExcel downloads the xlsx export and the file name suggested by the server.
func (c *Client) IncomeReportExcel(ctx context.Context, q ReportQuery) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/reporte-ingresos/excel", q.values(), nil)
	if err != nil {
		return nil, "", err
	}
	raw, header, err := c.do(req)
	if err != nil {
		return nil, "", err
	}

	name := "reporte_ingresos.xlsx"
	if cd := header.Get("Content-Disposition"); cd != "" {
		if i := strings.Index(cd, "filename="); i >= 0 {
			name = strings.Trim(cd[i+len("filename="):], `"`)
		}
	}
	return raw, name, nil
}

func (c *Client) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) Reminders(ctx context.Context) ([]models.Reminder, error) {
	var reminders []models.Reminder
	if err := c.doJSON(ctx, http.MethodGet, "/recordatorios", nil, nil, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

// TestDB calls GET /test-db and returns the server's message.
func (c *Client) TestDB(ctx context.Context) (string, error) {
	var resp dbCheckResponse
	if err := c.doJSON(ctx, http.MethodGet, "/test-db", nil, nil, &resp); err != nil {
		return "", err
	}
	if !resp.OK {
		return "", errors.New(resp.Error)
	}
	return resp.Mensaje, nil
}
