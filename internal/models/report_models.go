package models

// IncomeFilter narrows the revenue report. Nil fields do not filter.
// Dia matches an exact payment date.
type IncomeFilter struct {
	Anio *int
	Mes  *int
	Dia  *Date
}

// IsEmpty reports whether no predicate is set.
func (f IncomeFilter) IsEmpty() bool {
	return f.Anio == nil && f.Mes == nil && f.Dia == nil
}

// IncomeRow is one payment line of the revenue report.
type IncomeRow struct {
	Fecha     Date    `json:"fecha"`
	Cliente   string  `json:"cliente"`
	Tipo      string  `json:"tipo"`
	Monto     float64 `json:"monto"`
	MedioPago string  `json:"medio_pago"`
}

// IncomeReport is the filtered detail plus the sum of its amounts.
type IncomeReport struct {
	Detalle []IncomeRow `json:"detalle"`
	Total   float64     `json:"total"`
}

// DashboardSummary holds the counters shown on the dashboard.
type DashboardSummary struct {
	TotalClientes   int     `json:"totalClientes"`
	ClientesMorosos int     `json:"clientesMorosos"`
	IngresosMes     float64 `json:"ingresosMes"`
	IngresosAnio    float64 `json:"ingresosAnio"`
}
