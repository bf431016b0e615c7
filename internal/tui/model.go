package tui

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/evanmorris/clicky/internal/app"
	"github.com/evanmorris/clicky/internal/config"
	"github.com/evanmorris/clicky/internal/domain"
)

// Model is the bubbletea model. All screen state lives in the view
// union; the board itself is a read-through cache reloaded after every
// mutation.
type Model struct {
	svc Service

	ready  bool
	width  int
	height int

	// err is a fatal load failure rendered as its own screen. errMsg
	// is an action failure shown in place; the active view stays put
	// so no user input is lost.
	err    error
	errMsg string

	status string

	help help.Model
	keys keyMap

	showCardIDs   bool
	showAssignees bool

	board  domain.Board
	loaded bool

	view view

	md markdownRenderer
}

// loadedMsg carries a fresh board snapshot.
type loadedMsg struct {
	board domain.Board
	err   error
}

// actionMsg reports the outcome of a service call. A nil err applies
// the transition in next (when set) and optionally reloads; a non-nil
// err attaches a message and leaves the view untouched.
type actionMsg struct {
	err    error
	status string
	next   view
	reload bool
}

// NewModel constructs a new model.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:           svc,
		status:        "loading...",
		help:          h,
		keys:          newKeyMap(config.KeyConfig{}),
		showCardIDs:   true,
		showAssignees: true,
		view:          defaultBoard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.loadData
}

func (m Model) loadData() tea.Msg {
	board, err := m.svc.Load(context.Background())
	return loadedMsg{board: board, err: err}
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.board = msg.board
		m.loaded = true
		m.view = clampView(m.view, m.board)
		if m.status == "" || m.status == "loading..." {
			m.status = "ready"
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		if msg.status != "" {
			m.status = msg.status
		}
		if msg.next != nil {
			m.view = msg.next
		}
		if msg.reload {
			return m, m.loadData
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	default:
		return m, nil
	}
}

// clampView repairs a view against a freshly loaded board. Views
// pointing at a card that no longer exists fall back to the default
// board view; index-based state is clamped.
func clampView(v view, board domain.Board) view {
	switch vv := v.(type) {
	case boardView:
		return vv.clampToBoard(board)
	case cardDetailView:
		if _, ok := board.Card(vv.cardID); !ok {
			return defaultBoard()
		}
	case moveCardView:
		if _, ok := board.Card(vv.cardID); !ok {
			return defaultBoard()
		}
		vv.target = clamp(vv.target, 0, len(board.Columns)-1)
		return vv
	case confirmDeleteView:
		if _, ok := board.Card(vv.cardID); !ok {
			return defaultBoard()
		}
	case helpView:
		vv.previous = clampView(vv.previous, board)
		return vv
	}
	return v
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch v := m.view.(type) {
	case helpView:
		return m.handleHelpKey(v, msg)
	case boardView:
		return m.handleBoardKey(v, msg)
	case cardDetailView:
		return m.handleDetailKey(v, msg)
	case cardFormView:
		return m.handleFormKey(v, msg)
	case moveCardView:
		return m.handleMoveKey(v, msg)
	case confirmDeleteView:
		return m.handleConfirmKey(v, msg)
	}
	return m, nil
}

// columnCards resolves a column's ordered card ID list to cards. This
// is the display order; the board's flat card list is never used for
// rendering.
func (m Model) columnCards(colIdx int) []domain.Card {
	if colIdx < 0 || colIdx >= len(m.board.Columns) {
		return nil
	}
	col := m.board.Columns[colIdx]
	cards := make([]domain.Card, 0, len(col.Cards))
	for _, id := range col.Cards {
		if card, ok := m.board.Card(id); ok {
			cards = append(cards, *card)
		}
	}
	return cards
}

func (m Model) columnIndexOf(columnID string) int {
	for i, col := range m.board.Columns {
		if col.ID == columnID {
			return i
		}
	}
	return 0
}

// currentCard resolves the board selection: a confirmed selection by
// ID, a highlight by position.
func (m Model) currentCard(v boardView) (domain.Card, bool) {
	switch sel := v.selection.(type) {
	case selectConfirmed:
		if card, ok := m.board.Card(sel.cardID); ok {
			return *card, true
		}
	case selectHighlighted:
		cards := m.columnCards(v.column)
		if sel.index >= 0 && sel.index < len(cards) {
			return cards[sel.index], true
		}
	}
	return domain.Card{}, false
}

// boardViewForCard returns the board focused on the card's column with
// the selection cleared.
func (m Model) boardViewForCard(cardID string) view {
	card, ok := m.board.Card(cardID)
	if !ok {
		return defaultBoard()
	}
	return boardView{column: m.columnIndexOf(card.ColumnID), selection: selectNone{}}
}

func (m Model) handleBoardKey(v boardView, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggleHelp):
		m.view = toggleHelp(v)
		return m, nil

	case key.Matches(msg, m.keys.reload):
		m.status = "reloading..."
		return m, m.loadData

	case key.Matches(msg, m.keys.left):
		if sel, ok := v.selection.(selectConfirmed); ok {
			return m.quickMove(sel.cardID, -1)
		}
		m.view = v.moveColumn(-1, len(m.board.Columns))
		return m, nil

	case key.Matches(msg, m.keys.right):
		if sel, ok := v.selection.(selectConfirmed); ok {
			return m.quickMove(sel.cardID, +1)
		}
		m.view = v.moveColumn(+1, len(m.board.Columns))
		return m, nil

	case key.Matches(msg, m.keys.up):
		if _, ok := v.selection.(selectConfirmed); ok {
			return m, nil
		}
		m.view = v.moveVertical(-1, len(m.columnCards(v.column)))
		return m, nil

	case key.Matches(msg, m.keys.down):
		if _, ok := v.selection.(selectConfirmed); ok {
			return m, nil
		}
		m.view = v.moveVertical(+1, len(m.columnCards(v.column)))
		return m, nil

	case key.Matches(msg, m.keys.reorderUp):
		if sel, ok := v.selection.(selectConfirmed); ok {
			return m, m.reorderCmd(sel.cardID, app.MoveUp)
		}
		return m, nil

	case key.Matches(msg, m.keys.reorderDown):
		if sel, ok := v.selection.(selectConfirmed); ok {
			return m, m.reorderCmd(sel.cardID, app.MoveDown)
		}
		return m, nil

	case key.Matches(msg, m.keys.confirm):
		switch sel := v.selection.(type) {
		case selectHighlighted:
			cards := m.columnCards(v.column)
			if sel.index >= 0 && sel.index < len(cards) {
				v.selection = selectConfirmed{cardID: cards[sel.index].ID}
				m.view = v
			}
			return m, nil
		case selectConfirmed:
			m.view = cardDetailView{cardID: sel.cardID}
			return m, nil
		default:
			m.status = "no card highlighted"
			return m, nil
		}

	case key.Matches(msg, m.keys.back):
		v.selection = selectNone{}
		m.view = v
		return m, nil

	case key.Matches(msg, m.keys.newCard):
		if len(m.board.Columns) == 0 {
			return m, nil
		}
		col := m.board.Columns[clamp(v.column, 0, len(m.board.Columns)-1)]
		m.view = cardFormView{mode: formCreate{columnID: col.ID}}
		return m, nil

	case key.Matches(msg, m.keys.editCard):
		if card, ok := m.currentCard(v); ok {
			m.view = cardFormView{mode: formEdit{cardID: card.ID}, data: formDataFromCard(card)}
		} else {
			m.status = "no card selected"
		}
		return m, nil

	case key.Matches(msg, m.keys.moveCard):
		if card, ok := m.currentCard(v); ok {
			m.view = moveCardView{cardID: card.ID, target: m.columnIndexOf(card.ColumnID)}
		} else {
			m.status = "no card selected"
		}
		return m, nil

	case key.Matches(msg, m.keys.deleteCard):
		if card, ok := m.currentCard(v); ok {
			m.view = confirmDeleteView{cardID: card.ID}
		} else {
			m.status = "no card selected"
		}
		return m, nil
	}
	return m, nil
}

// quickMove moves the confirmed card one column over and keeps it
// selected in the destination column after the reload.
func (m Model) quickMove(cardID string, delta int) (tea.Model, tea.Cmd) {
	card, ok := m.board.Card(cardID)
	if !ok {
		return m, nil
	}
	src := m.columnIndexOf(card.ColumnID)
	dest := src + delta
	if dest < 0 || dest >= len(m.board.Columns) {
		return m, nil
	}
	destCol := m.board.Columns[dest]
	svc := m.svc
	next := boardView{column: dest, selection: selectConfirmed{cardID: cardID}}
	return m, func() tea.Msg {
		if err := svc.MoveCard(context.Background(), cardID, destCol.ID); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "moved to " + destCol.Name, next: next, reload: true}
	}
}

func (m Model) reorderCmd(cardID string, dir app.MoveDirection) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if err := svc.ReorderCard(context.Background(), cardID, dir); err != nil {
			if errors.Is(err, app.ErrAtEdge) {
				// Not a failure; the card simply has nowhere to go.
				return actionMsg{status: "card already at edge"}
			}
			return actionMsg{err: err}
		}
		return actionMsg{status: "card reordered", reload: true}
	}
}

func (m Model) handleDetailKey(v cardDetailView, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggleHelp):
		m.view = toggleHelp(v)
		return m, nil

	case key.Matches(msg, m.keys.back):
		m.view = m.boardViewForCard(v.cardID)
		return m, nil

	case key.Matches(msg, m.keys.editCard):
		if card, ok := m.board.Card(v.cardID); ok {
			m.view = cardFormView{mode: formEdit{cardID: v.cardID}, data: formDataFromCard(*card)}
		}
		return m, nil

	case key.Matches(msg, m.keys.moveCard):
		if card, ok := m.board.Card(v.cardID); ok {
			m.view = moveCardView{cardID: v.cardID, target: m.columnIndexOf(card.ColumnID)}
		}
		return m, nil

	case key.Matches(msg, m.keys.deleteCard):
		m.view = confirmDeleteView{cardID: v.cardID}
		return m, nil

	case key.Matches(msg, m.keys.copyID):
		if err := clipboard.WriteAll(v.cardID); err != nil {
			m.errMsg = "copy failed: " + err.Error()
		} else {
			m.status = "copied " + v.cardID
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleFormKey(v cardFormView, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if v.data.mode == inputEditing {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", "enter":
			v.data.mode = inputNormal
			m.view = v
			return m, nil
		case "backspace":
			val := v.data.value()
			if val != "" {
				_, size := utf8.DecodeLastRuneInString(val)
				v.data = v.data.withValue(val[:len(val)-size])
			}
			m.view = v
			return m, nil
		default:
			if msg.Text != "" {
				v.data = v.data.withValue(v.data.value() + msg.Text)
				m.view = v
			}
			return m, nil
		}
	}

	if key.Matches(msg, m.keys.toggleHelp) {
		m.view = toggleHelp(v)
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.cancelForm(v)
	case "tab", "down":
		v.data = v.data.nextField()
		m.view = v
		return m, nil
	case "shift+tab", "up":
		v.data = v.data.prevField()
		m.view = v
		return m, nil
	case "enter":
		return m.submitForm(v)
	case "i":
		v.data.mode = inputEditing
		m.view = v
		return m, nil
	default:
		// First printable key both enters edit mode and is consumed as
		// input, so no character is dropped.
		if msg.Text != "" {
			v.data.mode = inputEditing
			v.data = v.data.withValue(v.data.value() + msg.Text)
			m.view = v
		}
		return m, nil
	}
}

func (m Model) cancelForm(v cardFormView) (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch mode := v.mode.(type) {
	case formEdit:
		m.view = cardDetailView{cardID: mode.cardID}
	default:
		m.view = defaultBoard()
	}
	m.status = "canceled"
	return m, nil
}

func (m Model) submitForm(v cardFormView) (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(v.data.title)
	if title == "" {
		// Stay in the form with the data intact; no card ID has been
		// consumed at this point.
		m.errMsg = "title must not be empty"
		m.view = v
		return m, nil
	}

	svc := m.svc
	description := strings.TrimSpace(v.data.description)
	assignee := strings.TrimSpace(v.data.assignee)

	switch mode := v.mode.(type) {
	case formCreate:
		in := app.CreateCardInput{
			Title:       title,
			Description: description,
			Assignee:    assignee,
			ColumnID:    mode.columnID,
		}
		return m, func() tea.Msg {
			card, err := svc.CreateCard(context.Background(), in)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "created " + card.ID, next: defaultBoard(), reload: true}
		}
	case formEdit:
		in := app.UpdateCardInput{Title: app.SetField(title)}
		if description == "" {
			in.Description = app.ClearField()
		} else {
			in.Description = app.SetField(description)
		}
		if assignee == "" {
			in.Assignee = app.ClearField()
		} else {
			in.Assignee = app.SetField(assignee)
		}
		return m, func() tea.Msg {
			card, err := svc.UpdateCard(context.Background(), mode.cardID, in)
			if err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "updated " + card.ID, next: defaultBoard(), reload: true}
		}
	}
	return m, nil
}

func (m Model) handleMoveKey(v moveCardView, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggleHelp):
		m.view = toggleHelp(v)
		return m, nil

	case key.Matches(msg, m.keys.left):
		v.target = clamp(v.target-1, 0, len(m.board.Columns)-1)
		m.view = v
		return m, nil

	case key.Matches(msg, m.keys.right):
		v.target = clamp(v.target+1, 0, len(m.board.Columns)-1)
		m.view = v
		return m, nil

	case key.Matches(msg, m.keys.confirm):
		if v.target < 0 || v.target >= len(m.board.Columns) {
			return m, nil
		}
		destCol := m.board.Columns[v.target]
		svc := m.svc
		cardID := v.cardID
		return m, func() tea.Msg {
			if err := svc.MoveCard(context.Background(), cardID, destCol.ID); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "moved to " + destCol.Name, next: cardDetailView{cardID: cardID}, reload: true}
		}

	case key.Matches(msg, m.keys.back):
		// The pending target is discarded; the card never moved.
		m.view = cardDetailView{cardID: v.cardID}
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmKey(v confirmDeleteView, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggleHelp):
		m.view = toggleHelp(v)
		return m, nil

	case strings.EqualFold(msg.Text, "y"):
		svc := m.svc
		cardID := v.cardID
		return m, func() tea.Msg {
			if err := svc.DeleteCard(context.Background(), cardID); err != nil {
				return actionMsg{err: err}
			}
			return actionMsg{status: "deleted " + cardID, next: defaultBoard(), reload: true}
		}

	case strings.EqualFold(msg.Text, "n"), key.Matches(msg, m.keys.back):
		m.view = cardDetailView{cardID: v.cardID}
		return m, nil
	}
	return m, nil
}

func (m Model) handleHelpKey(v helpView, msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp), key.Matches(msg, m.keys.back):
		m.view = v.previous
		return m, nil
	}
	return m, nil
}
