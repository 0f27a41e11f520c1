package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gym_backend/internal/clientapp"
	"gym_backend/internal/export"
	"gym_backend/internal/models"
	"gym_backend/pkg/gymclient"
)

func (a *app) morososCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "morosos",
		Short: "List monthly clients with an overdue payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			overdue, err := api.OverdueClients(cmd.Context())
			if err != nil {
				return err
			}
			clientapp.RenderOverdue(cmd.OutOrStdout(), overdue)
			return nil
		},
	}
}

func (a *app) reporteCmd() *cobra.Command {
	var (
		q          gymclient.ReportQuery
		excel      bool
		dir        string
		fromServer bool
	)

	cmd := &cobra.Command{
		Use:   "reporte",
		Short: "Income report, optionally filtered by day, month and year",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if excel && fromServer {
				data, name, err := api.IncomeReportExcel(cmd.Context(), q)
				if err != nil {
					return err
				}
				path := filepath.Join(dir, name)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintf(out, "Reporte guardado en %s\n", path)
				return nil
			}

			report, err := api.IncomeReport(cmd.Context(), q)
			if err != nil {
				return err
			}
			if !excel {
				clientapp.RenderReport(out, report)
				return nil
			}

			path, err := clientapp.ExportReport(report, dir, models.NewDate(time.Now()))
			if errors.Is(err, export.ErrNoRows) {
				return errors.New("No hay datos para exportar")
			}
			if err != nil {
				return err
			}
			log.Debug().Str("path", path).Int("rows", len(report.Detalle)).Msg("report exported")
			fmt.Fprintf(out, "Reporte guardado en %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&q.Dia, "dia", "", "Exact payment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.Mes, "mes", "", "Month (1-12)")
	cmd.Flags().StringVar(&q.Anio, "anio", "", "Year")
	cmd.Flags().BoolVar(&excel, "excel", false, "Save the report as an .xlsx workbook")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory for the workbook")
	cmd.Flags().BoolVar(&fromServer, "desde-servidor", false, "Download the workbook generated by the server")
	return cmd
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the gym summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			summary, err := api.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			clientapp.RenderDashboard(cmd.OutOrStdout(), summary)
			return nil
		},
	}
}

func (a *app) recordatoriosCmd() *cobra.Command {
	var (
		opts clientapp.LinkOptions
		open bool
	)

	cmd := &cobra.Command{
		Use:   "recordatorios",
		Short: "Print today's WhatsApp payment reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			links, err := clientapp.NewWorkspace(api).ReminderLinks(cmd.Context(), opts)
			if err != nil {
				return err
			}
			clientapp.RenderReminderLinks(cmd.OutOrStdout(), links)

			if !open {
				return nil
			}
			for _, l := range links {
				if err := browser.OpenURL(l.URL); err != nil {
					log.Warn().Err(err).Str("cliente", l.Reminder.Nombre).Msg("could not open reminder link")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.CountryCode, "pais", clientapp.DefaultCountryCode, "Country code added to local numbers")
	cmd.Flags().StringVar(&opts.FixedNumber, "numero-fijo", "", "Send every reminder to this number instead of the client's")
	cmd.Flags().BoolVar(&open, "abrir", false, "Open each link in the browser")
	return cmd
}

func (a *app) consolaCmd() *cobra.Command {
	var opts clientapp.LinkOptions

	cmd := &cobra.Command{
		Use:   "consola",
		Short: "Interactive session that keeps selection and report state",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			console := clientapp.NewConsole(clientapp.NewWorkspace(api), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			if err := console.Run(cmd.Context()); err != nil && cmd.Context().Err() == nil {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.CountryCode, "pais", clientapp.DefaultCountryCode, "Country code added to local numbers")
	cmd.Flags().StringVar(&opts.FixedNumber, "numero-fijo", "", "Send every reminder to this number instead of the client's")
	return cmd
}
