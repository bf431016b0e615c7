package cli

import (
	"fmt"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/evanmorris/clicky/internal/tui"
)

// programFactory is swapped out by tests so `board` never owns a real
// terminal there.
var programFactory = func(m tea.Model) interface{ Run() (tea.Model, error) } {
	return tea.NewProgram(m)
}

func newBoardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}
			exists, err := a.Session.Boards.Exists(cmd.Context())
			if err != nil {
				return friendlyError(err)
			}
			if !exists {
				return fmt.Errorf("no board found; run `clicky init` first")
			}

			// The TUI owns the terminal from here; logs would tear the
			// screen apart.
			a.Logger.SetOutput(io.Discard)

			m := tui.NewModel(
				tui.NewSessionService(a.Session),
				tui.WithKeys(a.Config.Keys),
				tui.WithBoardConfig(a.Config.Board),
			)
			if _, err := programFactory(m).Run(); err != nil {
				return fmt.Errorf("run board: %w", err)
			}
			return nil
		},
	}
}

func newInfoCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print board location and summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}
			board, err := a.Session.Boards.Load(cmd.Context())
			if err != nil {
				return friendlyError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatBoardInfo(board, a.Base, string(a.Config.Storage.Backend)))
			return nil
		},
	}
}
