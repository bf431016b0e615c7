package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newColumnCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column",
		Short: "Manage board columns",
	}

	cmd.AddCommand(
		newColumnAddCmd(a),
		newColumnRemoveCmd(a),
	)

	return cmd
}

func newColumnAddCmd(a *App) *cobra.Command {
	var name string
	var order int

	cmd := &cobra.Command{
		Use:   "add ID",
		Short: "Add a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}
			if name == "" {
				name = args[0]
			}
			if err := a.Session.Boards.AddColumn(cmd.Context(), args[0], name, order); err != nil {
				return friendlyError(err)
			}
			a.Logger.Info("column added", "id", args[0], "order", order)
			fmt.Fprintf(cmd.OutOrStdout(), "Added column %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the ID)")
	cmd.Flags().IntVar(&order, "order", 0, "sort position among columns")

	return cmd
}

func newColumnRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a column, relocating its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}
			if err := a.Session.Boards.RemoveColumn(cmd.Context(), args[0]); err != nil {
				return friendlyError(err)
			}
			a.Logger.Info("column removed", "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed column %s\n", args[0])
			return nil
		},
	}
}
