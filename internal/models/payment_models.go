package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EstadoPagado is the only status a payment is ever given.
const EstadoPagado = "pagado"

// Payment is a single membership payment (table pagos).
type Payment struct {
	ID        int64   `json:"id"`
	ClienteID int64   `json:"cliente_id"`
	FechaPago Date    `json:"fecha_pago"`
	Monto     float64 `json:"monto"`
	MedioPago string  `json:"medio_pago"`
	Estado    string  `json:"estado"`
}

// Amount decodes a JSON number or a numeric string, since form inputs post strings.
type Amount float64

// IsValid reports whether a is a finite, positive amount.
func (a Amount) IsValid() bool {
	f := float64(a)
	return f > 0 && !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*a = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*a = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid amount %q", s)
	}
	*a = Amount(f)
	return nil
}
