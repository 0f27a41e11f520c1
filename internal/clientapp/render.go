package clientapp

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gym_backend/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func RenderClients(w io.Writer, clients []models.Client) {
	if len(clients) == 0 {
		fmt.Fprintln(w, "No hay clientes registrados")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNOMBRE\tTELÉFONO\tTIPO\tINSCRIPCIÓN")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Nombre, c.Telefono, c.Tipo, FormatDate(c.FechaInscripcion))
	}
	tw.Flush()
}

func RenderPayments(w io.Writer, payments []models.Payment) {
	if len(payments) == 0 {
		fmt.Fprintln(w, "El cliente no tiene pagos")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "FECHA\tMONTO\tMEDIO\tESTADO")
	for _, p := range payments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.FechaPago.String(), FormatCurrency(p.Monto), p.MedioPago, p.Estado)
	}
	tw.Flush()
}

func RenderOverdue(w io.Writer, overdue []models.OverdueClient) {
	if len(overdue) == 0 {
		fmt.Fprintln(w, "No hay clientes morosos 🎉")
		return
	}
	for _, c := range overdue {
		fmt.Fprintf(w, "%s - %s (último pago: %s)\n", c.Nombre, c.Telefono, FormatDate(c.UltimoPago))
	}
}

func RenderReport(w io.Writer, report *models.IncomeReport) {
	if report == nil || len(report.Detalle) == 0 {
		fmt.Fprintln(w, "No hay ingresos")
	} else {
		tw := newTable(w)
		fmt.Fprintln(tw, "FECHA\tCLIENTE\tTIPO\tMONTO\tMEDIO")
		for _, r := range report.Detalle {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Fecha.String(), r.Cliente, r.Tipo, FormatCurrency(r.Monto), r.MedioPago)
		}
		tw.Flush()
	}
	var total float64
	if report != nil {
		total = report.Total
	}
	fmt.Fprintf(w, "Total ingresos: %s\n", FormatCurrency(total))
}

func RenderDashboard(w io.Writer, s *models.DashboardSummary) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Clientes\t%d\n", s.TotalClientes)
	fmt.Fprintf(tw, "Morosos\t%d\n", s.ClientesMorosos)
	fmt.Fprintf(tw, "Ingresos del mes\t%s\n", FormatCurrency(s.IngresosMes))
	fmt.Fprintf(tw, "Ingresos del año\t%s\n", FormatCurrency(s.IngresosAnio))
	tw.Flush()
}

func RenderReminderLinks(w io.Writer, links []ReminderLink) {
	if len(links) == 0 {
		fmt.Fprintln(w, "Hoy no hay recordatorios 😊")
		return
	}
	for _, l := range links {
		fmt.Fprintf(w, "%s (vence %s)\n  %s\n", l.Reminder.Nombre, l.Reminder.FechaVencimiento.String(), l.URL)
	}
}
