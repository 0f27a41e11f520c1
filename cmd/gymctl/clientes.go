package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"gym_backend/internal/clientapp"
	"gym_backend/internal/models"
	"gym_backend/pkg/gymclient"
	"gym_backend/pkg/utils"
)

func parseID(arg string) (int64, error) {
	id, err := utils.StrToInt64(arg)
	if err != nil || id <= 0 {
		return 0, errors.New("ID de cliente inválido")
	}
	return id, nil
}

func (a *app) clientesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clientes",
		Short: "Manage gym clients",
	}
	cmd.AddCommand(
		a.clientesListarCmd(),
		a.clientesVerCmd(),
		a.clientesRegistrarCmd(),
		a.clientesActualizarCmd(),
		a.clientesEliminarCmd(),
		a.clientesPagosCmd(),
	)
	return cmd
}

func (a *app) clientesListarCmd() *cobra.Command {
	var buscar string

	cmd := &cobra.Command{
		Use:   "listar",
		Short: "List clients, optionally filtered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			cache := clientapp.NewClientCache(api)
			var clients []models.Client
			if buscar != "" {
				clients, err = cache.Search(cmd.Context(), buscar)
			} else {
				clients, err = cache.Clients(cmd.Context())
			}
			if err != nil {
				return err
			}
			clientapp.RenderClients(cmd.OutOrStdout(), clients)
			return nil
		},
	}
	cmd.Flags().StringVarP(&buscar, "buscar", "b", "", "Case-insensitive name filter")
	return cmd
}

func (a *app) clientesVerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ver <id>",
		Short: "Show one client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			c, err := api.GetClient(cmd.Context(), id)
			if err != nil {
				return err
			}
			clientapp.RenderClients(cmd.OutOrStdout(), []models.Client{*c})
			return nil
		},
	}
}

func clientFlags(cmd *cobra.Command, in *gymclient.ClientInput) {
	cmd.Flags().StringVar(&in.Nombre, "nombre", "", "Client name")
	cmd.Flags().StringVar(&in.Telefono, "telefono", "", "Phone number")
	cmd.Flags().StringVar(&in.Tipo, "tipo", models.TipoMensual, "Membership type")
}

func (a *app) clientesRegistrarCmd() *cobra.Command {
	var in gymclient.ClientInput

	cmd := &cobra.Command{
		Use:   "registrar",
		Short: "Register a new client",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			msg, err := clientapp.NewWorkspace(api).RegisterClient(cmd.Context(), in.Nombre, in.Telefono, in.Tipo)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (ID %s)\n", msg.Mensaje, utils.Int64ToStr(msg.ID))
			return nil
		},
	}
	clientFlags(cmd, &in)
	return cmd
}

func (a *app) clientesActualizarCmd() *cobra.Command {
	var in gymclient.ClientInput

	cmd := &cobra.Command{
		Use:   "actualizar <busqueda>",
		Short: "Update the single client matching the search text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			ws := clientapp.NewWorkspace(api)
			target, err := ws.SelectForEdit(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Flags left out keep the current values.
			if !cmd.Flags().Changed("nombre") {
				in.Nombre = target.Nombre
			}
			if !cmd.Flags().Changed("telefono") {
				in.Telefono = target.Telefono
			}
			if !cmd.Flags().Changed("tipo") {
				in.Tipo = target.Tipo
			}

			msg, err := ws.UpdateClient(cmd.Context(), in.Nombre, in.Telefono, in.Tipo)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg.Mensaje)
			return nil
		},
	}
	clientFlags(cmd, &in)
	return cmd
}

func (a *app) clientesEliminarCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "eliminar <id>",
		Short: "Delete a client together with its payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !confirmed {
				return errors.New("esta acción borra el cliente y sus pagos, confirme con --si")
			}
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			msg, err := clientapp.NewWorkspace(api).DeleteClient(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg.Mensaje)
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "si", false, "Confirm the deletion")
	return cmd
}

func (a *app) clientesPagosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pagos <id>",
		Short: "Show a client's payment history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			payments, err := api.ClientPayments(cmd.Context(), id)
			if err != nil {
				return err
			}
			clientapp.RenderPayments(cmd.OutOrStdout(), payments)
			return nil
		},
	}
}

func (a *app) pagosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pagos",
		Short: "Membership payments",
	}

	var monto, medio string
	registrar := &cobra.Command{
		Use:   "registrar <busqueda>",
		Short: "Register a payment for the single client matching the search text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := a.client(cmd)
			if err != nil {
				return err
			}
			ws := clientapp.NewWorkspace(api)
			target, err := ws.SelectForPayment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			msg, err := ws.RegisterPayment(cmd.Context(), monto, medio)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", target.Nombre, msg.Mensaje)
			return nil
		},
	}
	registrar.Flags().StringVar(&monto, "monto", "", "Amount paid")
	registrar.Flags().StringVar(&medio, "medio", "efectivo", "Payment method")

	cmd.AddCommand(registrar)
	return cmd
}
