// Command gymctl is the operator client of the gym backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"gym_backend/internal/clientapp"
	"gym_backend/pkg/gymclient"
	"gym_backend/pkg/utils"
)

const defaultServer = "http://localhost:3000"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describe(err))
		os.Exit(1)
	}
}

// app carries the global flags shared by every subcommand.
type app struct {
	server      string
	sessionPath string
	logLevel    string
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "gymctl",
		Short:         "Operator client for the gym backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			utils.InitLoggerTo(os.Stderr, a.logLevel, true)
			if a.sessionPath == "" {
				path, err := clientapp.DefaultSessionPath()
				if err != nil {
					return err
				}
				a.sessionPath = path
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.server, "servidor", defaultServer, "Base URL of the gym backend")
	cmd.PersistentFlags().StringVar(&a.sessionPath, "sesion", "", "Session file (defaults to the user config dir)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.testDBCmd(),
		a.clientesCmd(),
		a.pagosCmd(),
		a.morososCmd(),
		a.reporteCmd(),
		a.dashboardCmd(),
		a.recordatoriosCmd(),
		a.consolaCmd(),
	)
	return cmd
}

func (a *app) sessions() *clientapp.SessionStore {
	return clientapp.NewSessionStore(a.sessionPath)
}

// serverFor prefers an explicit --servidor over the one stored at login.
func (a *app) serverFor(cmd *cobra.Command, sess *clientapp.Session) string {
	if cmd.Flags().Changed("servidor") || sess == nil || sess.Servidor == "" {
		return a.server
	}
	return sess.Servidor
}

// client returns an API client for a logged-in session.
func (a *app) client(cmd *cobra.Command) (*gymclient.Client, error) {
	sess, err := a.sessions().Load()
	if err != nil {
		return nil, err
	}
	return gymclient.New(a.serverFor(cmd, sess), gymclient.WithToken(sess.Token)), nil
}

// describe turns client errors into the operator-facing text.
func describe(err error) string {
	var apiErr *gymclient.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Mensaje != "":
		return apiErr.Mensaje
	case errors.Is(err, gymclient.ErrConnection):
		return "no se pudo conectar con el servidor"
	default:
		return strings.TrimSpace(err.Error())
	}
}
