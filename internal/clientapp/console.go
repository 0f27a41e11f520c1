package clientapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gym_backend/pkg/gymclient"
	"gym_backend/pkg/utils"
)

const consoleHelp = `Comandos:
  clientes                         lista todos los clientes
  buscar <texto>                   busca clientes por nombre
  registrar <nombre>|<tel>|<tipo>  registra un cliente
  editar <texto>                   selecciona el cliente a editar
  actualizar <nombre>|<tel>|<tipo> guarda el cliente seleccionado
  limpiar                          descarta el cliente seleccionado
  eliminar <id>                    elimina un cliente y sus pagos
  pagar <texto>                    selecciona el cliente que paga
  pago <monto>|<medio>             registra el pago del cliente seleccionado
  morosos                          clientes con la mensualidad vencida
  reporte [dia=AAAA-MM-DD] [mes=M] [anio=AAAA]
                                   muestra u oculta el reporte de ingresos
  dashboard                        resumen del gimnasio
  recordatorios                    enlaces de WhatsApp de hoy
  ayuda                            muestra esta ayuda
  salir                            termina la consola`

// Console is a line-oriented front end over a Workspace.
type Console struct {
	ws    *Workspace
	in    *bufio.Scanner
	out   io.Writer
	links LinkOptions
}

func NewConsole(ws *Workspace, in io.Reader, out io.Writer, links LinkOptions) *Console {
	return &Console{ws: ws, in: bufio.NewScanner(in), out: out, links: links}
}

// Run reads commands until "salir", end of input or ctx cancellation.
// Command failures are printed and do not stop the loop.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Consola del gimnasio. Escriba 'ayuda' para ver los comandos.")
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(c.out, "> ")
		line, ok := c.readLine()
		if !ok {
			return c.in.Err()
		}
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		cmd = strings.ToLower(cmd)
		if cmd == "salir" {
			return nil
		}
		if err := c.exec(ctx, cmd, strings.TrimSpace(arg)); err != nil {
			c.printError(err)
		}
	}
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) printError(err error) {
	var apiErr *gymclient.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(c.out, "Error: %s\n", apiErr.Mensaje)
	case errors.Is(err, gymclient.ErrConnection):
		fmt.Fprintln(c.out, "Error: no se pudo conectar con el servidor")
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

// splitFields splits a "|" separated argument into exactly n trimmed fields.
func splitFields(arg string, n int) []string {
	parts := strings.SplitN(arg, "|", n)
	for len(parts) < n {
		parts = append(parts, "")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// parseReportQuery reads key=value filters; unknown keys are rejected.
func parseReportQuery(arg string) (gymclient.ReportQuery, error) {
	var q gymclient.ReportQuery
	for _, tok := range strings.Fields(arg) {
		key, val, ok := strings.Cut(tok, "=")
		if !ok {
			return q, fmt.Errorf("filtro inválido %q, use clave=valor", tok)
		}
		switch strings.ToLower(key) {
		case "dia":
			q.Dia = val
		case "mes":
			q.Mes = val
		case "anio":
			q.Anio = val
		default:
			return q, fmt.Errorf("filtro desconocido %q", key)
		}
	}
	return q, nil
}

func (c *Console) exec(ctx context.Context, cmd, arg string) error {
	switch cmd {
	case "ayuda":
		fmt.Fprintln(c.out, consoleHelp)

	case "clientes":
		if err := c.ws.Cache().Load(ctx); err != nil {
			return err
		}
		clients, err := c.ws.Cache().Clients(ctx)
		if err != nil {
			return err
		}
		RenderClients(c.out, clients)

	case "buscar":
		matches, err := c.ws.Cache().Search(ctx, arg)
		if err != nil {
			return err
		}
		RenderClients(c.out, matches)

	case "registrar":
		f := splitFields(arg, 3)
		msg, err := c.ws.RegisterClient(ctx, f[0], f[1], f[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, msg.Mensaje)

	case "editar":
		cl, err := c.ws.SelectForEdit(ctx, arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Editando: %s | %s | %s\n", cl.Nombre, cl.Telefono, cl.Tipo)

	case "actualizar":
		f := splitFields(arg, 3)
		msg, err := c.ws.UpdateClient(ctx, f[0], f[1], f[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, msg.Mensaje)

	case "limpiar":
		c.ws.ClearEdit()
		fmt.Fprintln(c.out, "Formulario limpio")

	case "eliminar":
		id, err := utils.StrToInt64(arg)
		if err != nil || id <= 0 {
			return errors.New("ID de cliente inválido")
		}
		fmt.Fprint(c.out, "¿Eliminar cliente? Se borrarán también sus pagos (s/n): ")
		answer, ok := c.readLine()
		if !ok || !strings.EqualFold(answer, "s") {
			fmt.Fprintln(c.out, "Cancelado")
			return nil
		}
		msg, err := c.ws.DeleteClient(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, msg.Mensaje)

	case "pagar":
		cl, err := c.ws.SelectForPayment(ctx, arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "Cliente seleccionado: %s\n", cl.Nombre)

	case "pago":
		f := splitFields(arg, 2)
		msg, err := c.ws.RegisterPayment(ctx, f[0], f[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, msg.Mensaje)

	case "morosos":
		overdue, err := c.ws.OverdueClients(ctx)
		if err != nil {
			return err
		}
		RenderOverdue(c.out, overdue)

	case "reporte":
		q, err := parseReportQuery(arg)
		if err != nil {
			return err
		}
		report, visible, err := c.ws.ToggleReport(ctx, q)
		if err != nil {
			return err
		}
		if !visible {
			fmt.Fprintln(c.out, "Reporte oculto")
			return nil
		}
		RenderReport(c.out, report)

	case "dashboard":
		summary, err := c.ws.Dashboard(ctx)
		if err != nil {
			return err
		}
		RenderDashboard(c.out, summary)

	case "recordatorios":
		links, err := c.ws.ReminderLinks(ctx, c.links)
		if err != nil {
			return err
		}
		RenderReminderLinks(c.out, links)

	default:
		return fmt.Errorf("comando desconocido %q, escriba 'ayuda'", cmd)
	}
	return nil
}
