package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evanmorris/clicky/internal/app"
)

func newCreateCmd(a *App) *cobra.Command {
	var description, assignee, column string

	cmd := &cobra.Command{
		Use:   "create [TITLE]",
		Short: "Create a card",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}

			in := app.CreateCardInput{
				Title:       strings.Join(args, " "),
				Description: description,
				Assignee:    assignee,
				ColumnID:    column,
			}
			if in.ColumnID == "" {
				in.ColumnID = a.Config.Board.DefaultColumn
			}
			if a.interactive {
				if err := wizardCreateCard(cmd.Context(), a, &in); err != nil {
					return err
				}
			} else if in.Title == "" {
				return fmt.Errorf("a title is required: clicky create <title>")
			}

			card, err := a.Session.Cards.Create(cmd.Context(), in)
			if err != nil {
				return friendlyError(err)
			}
			a.Logger.Info("card created", "id", card.ID, "column", card.ColumnID)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s\n", card.ID, card.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "card description (markdown)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "card assignee")
	cmd.Flags().StringVar(&column, "column", "", "target column ID (defaults to the configured default column)")

	return cmd
}

func newShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [CARD_ID]",
		Short: "Show one card in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}

			cardID, err := a.pickCardID(cmd.Context(), args, "Which card?")
			if err != nil {
				return err
			}
			card, err := a.Session.Cards.Get(cmd.Context(), cardID)
			if err != nil {
				return friendlyError(err)
			}
			board, err := a.Session.Boards.Load(cmd.Context())
			if err != nil {
				return friendlyError(err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatCardDetail(board, card))
			return nil
		},
	}
}

func newListCmd(a *App) *cobra.Command {
	var column, assignee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cards in column order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}

			board, err := a.Session.Boards.Load(cmd.Context())
			if err != nil {
				return friendlyError(err)
			}
			if a.interactive {
				if err := wizardListFilter(board, &column, &assignee); err != nil {
					return err
				}
			}

			cards, err := a.Session.Cards.List(cmd.Context(), app.ListFilter{ColumnID: column, Assignee: assignee})
			if err != nil {
				return friendlyError(err)
			}
			if len(cards) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No cards found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatCardList(board, cards))
			return nil
		},
	}

	cmd.Flags().StringVar(&column, "column", "", "only cards in this column")
	cmd.Flags().StringVar(&assignee, "assignee", "", "only cards with this assignee")

	return cmd
}

func newUpdateCmd(a *App) *cobra.Command {
	var title, description, assignee string
	var clearDescription, clearAssignee bool

	cmd := &cobra.Command{
		Use:   "update [CARD_ID]",
		Short: "Update card fields",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}
			if clearDescription && cmd.Flags().Changed("description") {
				return fmt.Errorf("--description and --clear-description are mutually exclusive")
			}
			if clearAssignee && cmd.Flags().Changed("assignee") {
				return fmt.Errorf("--assignee and --clear-assignee are mutually exclusive")
			}

			cardID, err := a.pickCardID(cmd.Context(), args, "Which card?")
			if err != nil {
				return err
			}

			var in app.UpdateCardInput
			if cmd.Flags().Changed("title") {
				in.Title = app.SetField(title)
			}
			switch {
			case clearDescription:
				in.Description = app.ClearField()
			case cmd.Flags().Changed("description"):
				in.Description = app.SetField(description)
			}
			switch {
			case clearAssignee:
				in.Assignee = app.ClearField()
			case cmd.Flags().Changed("assignee"):
				in.Assignee = app.SetField(assignee)
			}

			if a.interactive {
				card, err := a.Session.Cards.Get(cmd.Context(), cardID)
				if err != nil {
					return friendlyError(err)
				}
				if err := wizardUpdateCard(card, &in); err != nil {
					return err
				}
			}

			card, err := a.Session.Cards.Update(cmd.Context(), cardID, in)
			if err != nil {
				return friendlyError(err)
			}
			a.Logger.Info("card updated", "id", card.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", card.ID, card.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().BoolVar(&clearDescription, "clear-description", false, "remove the description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "new assignee")
	cmd.Flags().BoolVar(&clearAssignee, "clear-assignee", false, "remove the assignee")

	return cmd
}

func newMoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move [CARD_ID] [COLUMN]",
		Short: "Move a card to another column",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}

			cardID, err := a.pickCardID(cmd.Context(), args, "Move which card?")
			if err != nil {
				return err
			}
			var column string
			if len(args) > 1 {
				column = args[1]
			}
			if column == "" {
				if !a.interactive {
					return fmt.Errorf("a target column is required: clicky move <card_id> <column>")
				}
				board, err := a.Session.Boards.Load(cmd.Context())
				if err != nil {
					return friendlyError(err)
				}
				if err := wizardSelectColumn(board, "Move to which column?", false, &column); err != nil {
					return err
				}
			}

			if err := a.Session.Cards.Move(cmd.Context(), cardID, column); err != nil {
				return friendlyError(err)
			}
			a.Logger.Info("card moved", "id", cardID, "column", column)
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", cardID, column)
			return nil
		},
	}
}

func newDeleteCmd(a *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete [CARD_ID]",
		Short: "Delete a card",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(true); err != nil {
				return err
			}

			cardID, err := a.pickCardID(cmd.Context(), args, "Delete which card?")
			if err != nil {
				return err
			}
			if !force {
				if !a.interactive {
					return fmt.Errorf("refusing to delete without --force (or -i to confirm interactively)")
				}
				card, err := a.Session.Cards.Get(cmd.Context(), cardID)
				if err != nil {
					return friendlyError(err)
				}
				ok, err := wizardConfirm(fmt.Sprintf("Delete %s (%s)?", card.ID, card.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept.")
					return nil
				}
			}

			if err := a.Session.Cards.Delete(cmd.Context(), cardID); err != nil {
				return friendlyError(err)
			}
			a.Logger.Info("card deleted", "id", cardID)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", cardID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "delete without confirmation")

	return cmd
}
