package tui

import "github.com/evanmorris/clicky/internal/domain"

// view is the active screen. The sealed interface makes the screens
// mutually exclusive: the model holds exactly one view at a time, and
// impossible combinations (say, a form and a delete dialog at once)
// cannot be represented.
type view interface{ isView() }

// boardView is the kanban overview with one column focused and an
// optional card selection.
type boardView struct {
	column    int
	selection selection
}

// cardDetailView shows one card in full.
type cardDetailView struct{ cardID string }

// cardFormView is the create/edit form with its in-progress data.
type cardFormView struct {
	mode formMode
	data formData
}

// moveCardView tracks a pending move target, separate from the card's
// actual column until confirmed.
type moveCardView struct {
	cardID string
	target int
}

// confirmDeleteView asks before deleting one card.
type confirmDeleteView struct{ cardID string }

// helpView wraps whatever view was active so closing help restores it
// verbatim.
type helpView struct{ previous view }

func (boardView) isView()         {}
func (cardDetailView) isView()    {}
func (cardFormView) isView()      {}
func (moveCardView) isView()      {}
func (confirmDeleteView) isView() {}
func (helpView) isView()          {}

// selection is the card cursor inside the board view: nothing, a
// tentative index-based highlight, or a confirmed ID-anchored pick that
// survives list shifts.
type selection interface{ isSelection() }

type selectNone struct{}

type selectHighlighted struct{ index int }

type selectConfirmed struct{ cardID string }

func (selectNone) isSelection()        {}
func (selectHighlighted) isSelection() {}
func (selectConfirmed) isSelection()   {}

// formMode distinguishes creating a card in a column from editing an
// existing one.
type formMode interface{ isFormMode() }

type formCreate struct{ columnID string }

type formEdit struct{ cardID string }

func (formCreate) isFormMode() {}
func (formEdit) isFormMode()   {}

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldAssignee
)

type inputMode int

const (
	inputNormal inputMode = iota
	inputEditing
)

// formData is the form in progress. Plain strings rather than input
// widgets keep the state machine pure and directly testable.
type formData struct {
	title       string
	description string
	assignee    string
	field       formField
	mode        inputMode
}

func formDataFromCard(card domain.Card) formData {
	return formData{
		title:       card.Title,
		description: card.Description,
		assignee:    card.Assignee,
	}
}

// value returns the focused field's current text.
func (d formData) value() string {
	switch d.field {
	case fieldDescription:
		return d.description
	case fieldAssignee:
		return d.assignee
	default:
		return d.title
	}
}

func (d formData) withValue(v string) formData {
	switch d.field {
	case fieldDescription:
		d.description = v
	case fieldAssignee:
		d.assignee = v
	default:
		d.title = v
	}
	return d
}

// nextField cycles Title -> Description -> Assignee -> Title.
func (d formData) nextField() formData {
	d.field = (d.field + 1) % 3
	return d
}

func (d formData) prevField() formData {
	d.field = (d.field + 2) % 3
	return d
}

// defaultBoard is the board view with nothing selected.
func defaultBoard() boardView {
	return boardView{selection: selectNone{}}
}

// moveColumn shifts the focused column, clamped to the column count.
// Any highlight or confirmed selection is dropped: selections do not
// survive a column change (quick move is the one exception, handled by
// its action).
func (v boardView) moveColumn(delta, columns int) boardView {
	v.column = clamp(v.column+delta, 0, columns-1)
	v.selection = selectNone{}
	return v
}

// moveVertical adjusts the highlight inside the focused column. With no
// highlight yet, moving down starts at the top card and moving up at
// the bottom card. A confirmed selection is left untouched.
func (v boardView) moveVertical(delta, cards int) boardView {
	if cards <= 0 {
		return v
	}
	switch sel := v.selection.(type) {
	case selectNone:
		if delta > 0 {
			v.selection = selectHighlighted{index: 0}
		} else {
			v.selection = selectHighlighted{index: cards - 1}
		}
	case selectHighlighted:
		v.selection = selectHighlighted{index: clamp(sel.index+delta, 0, cards-1)}
	}
	return v
}

// clampToBoard repairs the view after a reload: the column index is
// clamped, a highlight is clamped to the new card count, and a
// confirmed selection whose card vanished is dropped.
func (v boardView) clampToBoard(board domain.Board) boardView {
	if len(board.Columns) == 0 {
		return defaultBoard()
	}
	v.column = clamp(v.column, 0, len(board.Columns)-1)
	switch sel := v.selection.(type) {
	case selectHighlighted:
		cards := len(board.Columns[v.column].Cards)
		if cards == 0 {
			v.selection = selectNone{}
		} else {
			v.selection = selectHighlighted{index: clamp(sel.index, 0, cards-1)}
		}
	case selectConfirmed:
		if _, ok := board.Card(sel.cardID); !ok {
			v.selection = selectNone{}
		}
	}
	return v
}

// toggleHelp wraps the view in help, or unwraps it when already there.
// One level only: help over help closes instead of nesting.
func toggleHelp(v view) view {
	if h, ok := v.(helpView); ok {
		return h.previous
	}
	return helpView{previous: v}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
