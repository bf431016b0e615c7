package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/evanmorris/clicky/internal/app"
	"github.com/evanmorris/clicky/internal/domain"
)

// pickCardID resolves the card argument, falling back to an interactive
// picker when -i is set and no ID was given.
func (a *App) pickCardID(ctx context.Context, args []string, title string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}
	if !a.interactive {
		return "", errors.New("a card ID is required (or pass -i to pick one)")
	}

	cards, err := a.Session.Cards.List(ctx, app.ListFilter{})
	if err != nil {
		return "", friendlyError(err)
	}
	if len(cards) == 0 {
		return "", errors.New("the board has no cards")
	}

	options := make([]huh.Option[string], 0, len(cards))
	for _, c := range cards {
		options = append(options, huh.NewOption(fmt.Sprintf("%s — %s", c.ID, c.Title), c.ID))
	}

	var picked string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&picked),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return picked, nil
}

// wizardBoardName prompts for the board display name, prefilled with
// the current default.
func wizardBoardName(name *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Board name").
				Value(name).
				Validate(requireValue("board name")),
		),
	).WithShowHelp(false)
	return form.Run()
}

// wizardCreateCard collects every card field, seeding the form with
// whatever flags already provided.
func wizardCreateCard(ctx context.Context, a *App, in *app.CreateCardInput) error {
	board, err := a.Session.Boards.Load(ctx)
	if err != nil {
		return friendlyError(err)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&in.Title).
				Validate(requireValue("title")),
			huh.NewText().
				Title("Description").
				Value(&in.Description),
			huh.NewInput().
				Title("Assignee").
				Value(&in.Assignee),
			huh.NewSelect[string]().
				Title("Column").
				Options(columnOptions(board, false)...).
				Value(&in.ColumnID),
		),
	).WithShowHelp(false)
	return form.Run()
}

// wizardUpdateCard edits title/description/assignee prefilled from the
// current card. Emptying a prefilled field clears it.
func wizardUpdateCard(card domain.Card, in *app.UpdateCardInput) error {
	title := card.Title
	description := card.Description
	assignee := card.Assignee

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&title).
				Validate(requireValue("title")),
			huh.NewText().
				Title("Description").
				Value(&description),
			huh.NewInput().
				Title("Assignee").
				Value(&assignee),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return err
	}

	in.Title = app.SetField(title)
	if strings.TrimSpace(description) == "" {
		in.Description = app.ClearField()
	} else {
		in.Description = app.SetField(description)
	}
	if strings.TrimSpace(assignee) == "" {
		in.Assignee = app.ClearField()
	} else {
		in.Assignee = app.SetField(assignee)
	}
	return nil
}

// wizardSelectColumn picks a column ID. allowAll adds an "all columns"
// option that leaves result empty.
func wizardSelectColumn(board domain.Board, title string, allowAll bool, result *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(columnOptions(board, allowAll)...).
				Value(result),
		),
	).WithShowHelp(false)
	return form.Run()
}

// wizardListFilter picks the list filters: a column, and an assignee
// when any card on the board has one.
func wizardListFilter(board domain.Board, column, assignee *string) error {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which column?").
				Options(columnOptions(board, true)...).
				Value(column),
		),
	}
	if opts := assigneeOptions(board); len(opts) > 1 {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which assignee?").
				Options(opts...).
				Value(assignee),
		))
	}
	return huh.NewForm(groups...).WithShowHelp(false).Run()
}

// wizardConfirm asks a yes/no question.
func wizardConfirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Keep").
				Value(&ok),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}

func columnOptions(board domain.Board, allowAll bool) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(board.Columns)+1)
	if allowAll {
		options = append(options, huh.NewOption("All columns", ""))
	}
	for _, col := range board.Columns {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", col.Name, col.ID), col.ID))
	}
	return options
}

// assigneeOptions lists the distinct assignees on the board, sorted,
// prefixed with an "Anyone" option that leaves the filter empty.
func assigneeOptions(board domain.Board) []huh.Option[string] {
	seen := make(map[string]bool)
	names := make([]string, 0, len(board.Cards))
	for _, card := range board.Cards {
		if card.Assignee == "" || seen[card.Assignee] {
			continue
		}
		seen[card.Assignee] = true
		names = append(names, card.Assignee)
	}
	slices.Sort(names)

	options := make([]huh.Option[string], 0, len(names)+1)
	options = append(options, huh.NewOption("Anyone", ""))
	for _, name := range names {
		options = append(options, huh.NewOption(name, name))
	}
	return options
}

func requireValue(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
