package cli

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/evanmorris/clicky/internal/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// formatCardList renders cards grouped under column headings, in the
// order List returned them (column display order).
func formatCardList(board domain.Board, cards []domain.Card) string {
	var b strings.Builder
	currentColumn := ""
	for _, card := range cards {
		if card.ColumnID != currentColumn {
			currentColumn = card.ColumnID
			name := currentColumn
			if col, ok := board.Column(currentColumn); ok {
				name = col.Name
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(headingStyle.Render(name) + "\n")
		}
		line := fmt.Sprintf("  %s  %s", idStyle.Render(card.ID), card.Title)
		if card.Assignee != "" {
			line += labelStyle.Render("  @" + card.Assignee)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// formatCardDetail renders one card in full.
func formatCardDetail(board domain.Board, card domain.Card) string {
	colName := card.ColumnID
	if col, ok := board.Column(card.ColumnID); ok {
		colName = col.Name
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(card.ID+"  "+card.Title) + "\n")
	b.WriteString(labelStyle.Render("column:   ") + colName + "\n")
	if card.Assignee != "" {
		b.WriteString(labelStyle.Render("assignee: ") + card.Assignee + "\n")
	}
	b.WriteString(labelStyle.Render("created:  ") + card.CreatedAt.Local().Format("2006-01-02 15:04") + "\n")
	b.WriteString(labelStyle.Render("updated:  ") + card.UpdatedAt.Local().Format("2006-01-02 15:04") + "\n")
	if card.Description != "" {
		b.WriteString("\n" + card.Description + "\n")
	}
	return b.String()
}

// formatBoardInfo renders the board summary for `clicky info`.
func formatBoardInfo(board domain.Board, base string, backend string) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(board.Name) + "\n")
	b.WriteString(labelStyle.Render("id:       ") + board.ID + "\n")
	b.WriteString(labelStyle.Render("prefix:   ") + board.CardIDPrefix + "\n")
	b.WriteString(labelStyle.Render("base:     ") + base + "\n")
	b.WriteString(labelStyle.Render("backend:  ") + backend + "\n")
	b.WriteString(labelStyle.Render("cards:    ") + fmt.Sprintf("%d", len(board.Cards)) + "\n")
	b.WriteString(labelStyle.Render("columns:") + "\n")
	for _, col := range board.Columns {
		b.WriteString(fmt.Sprintf("  %-14s %s (%d cards)\n", col.ID, col.Name, len(col.Cards)))
	}
	return b.String()
}
