package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newInitCmd(a *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new board in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(false); err != nil {
				return err
			}

			if name == "" {
				name = a.Config.Board.Name
			}
			if name == "" {
				name = filepath.Base(a.Base)
			}
			if a.interactive {
				if err := wizardBoardName(&name); err != nil {
					return err
				}
			}
			name = strings.TrimSpace(name)

			board, err := a.Session.Boards.InitializeWithColumns(cmd.Context(), name, columnTemplates(a.Config))
			if err != nil {
				return friendlyError(err)
			}
			a.Logger.Info("board initialized", "id", board.ID, "base", a.Base)
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized board %s [%s]\n", board.Name, board.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "board display name (defaults to config, then the directory name)")

	return cmd
}
