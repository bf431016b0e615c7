package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// View handles view.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView("error: " + m.err.Error() + "\n\npress r to retry • q quit\n")
		v.AltScreen = true
		return v
	}
	if !m.ready || !m.loaded {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	var body string
	switch vv := m.view.(type) {
	case boardView:
		body = m.renderBoard(vv)
	case cardDetailView:
		body = m.renderDetail(vv)
	case cardFormView:
		body = m.renderForm(vv)
	case moveCardView:
		body = m.renderMove(vv)
	case confirmDeleteView:
		body = m.renderConfirm(vv)
	case helpView:
		body = m.renderHelp()
	}

	content := m.renderHeader() + "\n\n" + body + "\n" + m.renderStatusBar()
	if m.height > 0 {
		content = fitLines(content, m.height)
	}
	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	header := titleStyle.Render("clicky") + "  " + m.board.Name
	header += dimStyle.Render("  [" + m.viewLabel() + "]")
	return header
}

func (m Model) viewLabel() string {
	switch m.view.(type) {
	case cardDetailView:
		return "detail"
	case cardFormView:
		return "form"
	case moveCardView:
		return "move"
	case confirmDeleteView:
		return "delete"
	case helpView:
		return "help"
	default:
		return "board"
	}
}

func (m Model) renderStatusBar() string {
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	line := lipgloss.NewStyle().Foreground(dim).Render(m.status)
	if m.errMsg != "" {
		errStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
		line = errStyle.Render("error: " + m.errMsg)
	}

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))
	return line + "\n" + helpLine
}

func (m Model) renderBoard(v boardView) string {
	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	colWidth := 28
	if m.width > 0 && len(m.board.Columns) > 0 {
		if w := m.width/len(m.board.Columns) - 4; w > 20 {
			colWidth = w
		}
	}

	baseColStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1).
		MarginRight(1).
		Width(colWidth)
	selColStyle := baseColStyle.BorderForeground(accent)
	colTitle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	cardStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	highlightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Underline(true)
	subStyle := lipgloss.NewStyle().Foreground(muted)

	columns := make([]string, 0, len(m.board.Columns))
	for colIdx, col := range m.board.Columns {
		cards := m.columnCards(colIdx)
		lines := []string{colTitle.Render(fmt.Sprintf("%s (%d)", col.Name, len(cards)))}
		for cardIdx, card := range cards {
			label := card.Title
			if m.showCardIDs {
				label = card.ID + " " + label
			}
			label = truncate(label, colWidth-2)

			style := cardStyle
			if colIdx == v.column {
				switch sel := v.selection.(type) {
				case selectHighlighted:
					if sel.index == cardIdx {
						style = highlightStyle
						label = "> " + truncate(label, colWidth-4)
					}
				case selectConfirmed:
					if sel.cardID == card.ID {
						style = selectedStyle
						label = "* " + truncate(label, colWidth-4)
					}
				}
			}
			lines = append(lines, style.Render(label))
			if m.showAssignees && card.Assignee != "" {
				lines = append(lines, subStyle.Render("  @"+truncate(card.Assignee, colWidth-4)))
			}
		}
		if len(cards) == 0 {
			lines = append(lines, subStyle.Render("(empty)"))
		}

		style := baseColStyle
		if colIdx == v.column {
			style = selColStyle
		}
		columns = append(columns, style.Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) renderDetail(v cardDetailView) string {
	card, ok := m.board.Card(v.cardID)
	if !ok {
		return "card not found"
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle := lipgloss.NewStyle().Foreground(muted)

	colName := card.ColumnID
	if col, ok := m.board.Column(card.ColumnID); ok {
		colName = col.Name
	}

	lines := []string{
		titleStyle.Render(card.ID + "  " + card.Title),
		"",
		labelStyle.Render("column:   ") + colName,
	}
	if card.Assignee != "" {
		lines = append(lines, labelStyle.Render("assignee: ")+card.Assignee)
	}
	lines = append(lines,
		labelStyle.Render("created:  ")+card.CreatedAt.Local().Format("2006-01-02 15:04"),
		labelStyle.Render("updated:  ")+card.UpdatedAt.Local().Format("2006-01-02 15:04"),
	)
	if card.Description != "" {
		width := m.width - 4
		if width <= 0 {
			width = 76
		}
		lines = append(lines, "", m.md.render(card.Description, width))
	}
	lines = append(lines, "", labelStyle.Render("e edit • m move • d delete • y copy id • esc back"))
	return strings.Join(lines, "\n")
}

func (m Model) renderForm(v cardFormView) string {
	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle := lipgloss.NewStyle().Foreground(muted)
	focusStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	heading := "new card"
	if mode, ok := v.mode.(formEdit); ok {
		heading = "edit " + mode.cardID
	} else if mode, ok := v.mode.(formCreate); ok {
		if col, found := m.board.Column(mode.columnID); found {
			heading = "new card in " + col.Name
		}
	}

	fields := []struct {
		field formField
		name  string
		value string
	}{
		{fieldTitle, "title", v.data.title},
		{fieldDescription, "description", v.data.description},
		{fieldAssignee, "assignee", v.data.assignee},
	}
	lines := []string{titleStyle.Render(heading), ""}
	for _, f := range fields {
		label := labelStyle.Render(fmt.Sprintf("%-12s", f.name))
		value := f.value
		if f.field == v.data.field {
			if v.data.mode == inputEditing {
				value += "█"
			}
			lines = append(lines, focusStyle.Render("> ")+label+focusStyle.Render(value))
		} else {
			lines = append(lines, "  "+label+value)
		}
	}
	hint := "tab next field • i edit • enter submit • esc cancel"
	if v.data.mode == inputEditing {
		hint = "type to edit • enter/esc done"
	}
	lines = append(lines, "", labelStyle.Render(hint))
	return strings.Join(lines, "\n")
}

func (m Model) renderMove(v moveCardView) string {
	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle := lipgloss.NewStyle().Foreground(muted)
	targetStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	names := make([]string, 0, len(m.board.Columns))
	for i, col := range m.board.Columns {
		if i == v.target {
			names = append(names, targetStyle.Render("["+col.Name+"]"))
		} else {
			names = append(names, labelStyle.Render(" "+col.Name+" "))
		}
	}
	return strings.Join([]string{
		titleStyle.Render("move " + v.cardID),
		"",
		strings.Join(names, "  "),
		"",
		labelStyle.Render("h/l pick column • enter confirm • esc cancel"),
	}, "\n")
}

func (m Model) renderConfirm(v confirmDeleteView) string {
	warnStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	title := v.cardID
	if card, ok := m.board.Card(v.cardID); ok {
		title = card.ID + "  " + truncate(card.Title, 48)
	}
	return strings.Join([]string{
		warnStyle.Render("delete " + title + "?"),
		"",
		labelStyle.Render("y delete • n/esc keep"),
	}, "\n")
}

func (m Model) renderHelp() string {
	helpBubble := m.help
	helpBubble.ShowAll = true
	helpBubble.SetWidth(max(0, m.width-2))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	return titleStyle.Render("help") + "\n\n" + helpBubble.View(m.keys)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func fitLines(s string, height int) string {
	if height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= height {
		return s
	}
	return strings.Join(lines[:height], "\n")
}
