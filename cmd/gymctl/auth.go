package main

import (
	"bufio"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"gym_backend/internal/clientapp"
	"gym_backend/pkg/gymclient"
)

func (a *app) loginCmd() *cobra.Command {
	var usuario, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Contraseña: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("se requiere la contraseña")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			server := a.serverFor(cmd, nil)
			token, err := gymclient.New(server).Login(cmd.Context(), usuario, password)
			if err != nil {
				if gymclient.IsStatus(err, http.StatusUnauthorized) {
					return errors.New("Usuario o contraseña incorrectos")
				}
				return err
			}

			if err := a.sessions().Save(clientapp.Session{Logeado: true, Token: token, Servidor: server}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión iniciada")
			return nil
		},
	}

	cmd.Flags().StringVarP(&usuario, "usuario", "u", "admin", "Operator account")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessions().Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sesión cerrada")
			return nil
		},
	}
}

func (a *app) testDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-db",
		Short: "Check the backend database connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := gymclient.New(a.server).TestDB(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}
