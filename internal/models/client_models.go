package models

// TipoMensual is the only membership kind subject to overdue and reminder rules.
const TipoMensual = "mensual"

// Client is a gym member (table clientes).
type Client struct {
	ID               int64  `json:"id"`
	Nombre           string `json:"nombre"`
	Telefono         string `json:"telefono"`
	Tipo             string `json:"tipo"`
	FechaInscripcion *Date  `json:"fecha_inscripcion,omitempty"`
}

// OverdueClient is a monthly member whose last payment is missing or too old.
// UltimoPago is null when the client never paid.
type OverdueClient struct {
	ID         int64  `json:"id"`
	Nombre     string `json:"nombre"`
	Telefono   string `json:"telefono"`
	Tipo       string `json:"tipo"`
	UltimoPago *Date  `json:"ultimo_pago"`
}

// Reminder is a monthly member whose reminder date falls on the queried day.
type Reminder struct {
	ID                int64  `json:"id"`
	Nombre            string `json:"nombre"`
	Telefono          string `json:"telefono"`
	FechaVencimiento  Date   `json:"fecha_vencimiento"`
	FechaRecordatorio Date   `json:"fecha_recordatorio"`
}
