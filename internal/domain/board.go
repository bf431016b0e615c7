package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
)

// DefaultColumnID is where new cards land when no column is given.
const DefaultColumnID = "todo"

// Board is the aggregate owning all columns and cards for one project.
// Every mutation of card membership goes through Board methods so the
// denormalized Card.ColumnID / Column.Cards pair never diverges.
type Board struct {
	ID             string
	Name           string
	CardIDPrefix   string
	NextCardNumber int
	Columns        []Column
	Cards          []Card
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewBoard constructs a board seeded with the three default columns.
func NewBoard(id, name string, now time.Time) (Board, error) {
	return NewBoardWithColumns(id, name, nil, now)
}

// NewBoardWithColumns constructs a board seeded with the given columns,
// sorted by Order. A nil or empty slice falls back to the default
// todo/in_progress/done set.
func NewBoardWithColumns(id, name string, columns []Column, now time.Time) (Board, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" {
		return Board{}, ErrInvalidID
	}
	if name == "" {
		return Board{}, ErrInvalidName
	}

	if len(columns) == 0 {
		columns = []Column{
			NewColumn(DefaultColumnID, "To Do", 0),
			NewColumn("in_progress", "In Progress", 1),
			NewColumn("done", "Done", 2),
		}
	} else {
		columns = slices.Clone(columns)
		slices.SortStableFunc(columns, func(a, c Column) int { return a.Order - c.Order })
	}

	ts := now.UTC()
	return Board{
		ID:             id,
		Name:           name,
		CardIDPrefix:   cardIDPrefix(id),
		NextCardNumber: 1,
		Columns:        columns,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}, nil
}

// cardIDPrefix takes the first three alphabetic characters of the board
// ID, uppercased. Fewer than three means the prefix is shorter.
func cardIDPrefix(id string) string {
	var b strings.Builder
	for _, r := range id {
		if !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if b.Len() >= 3 {
			break
		}
	}
	return b.String()
}

// GenerateCardID consumes the next card number. Numbers are never
// reused, even across deletes, so callers must only generate inside a
// committed creation path.
func (b *Board) GenerateCardID(now time.Time) string {
	id := fmt.Sprintf("%s-%03d", b.CardIDPrefix, b.NextCardNumber)
	b.NextCardNumber++
	b.UpdatedAt = now.UTC()
	return id
}

// CreateCard adds a card and returns its generated ID. An empty
// columnID defaults to DefaultColumnID. The column is not checked for
// existence here; callers validate first (see the card service). An
// unknown columnID leaves the card outside every column list.
func (b *Board) CreateCard(title, description, assignee, columnID string, now time.Time) string {
	if columnID == "" {
		columnID = DefaultColumnID
	}
	id := b.GenerateCardID(now)
	card := NewCard(id, title, columnID, now)
	card.Description = description
	card.Assignee = assignee
	b.Cards = append(b.Cards, card)
	if col, ok := b.Column(columnID); ok {
		col.AddCard(id)
	}
	b.UpdatedAt = now.UTC()
	return id
}

// Card returns a pointer to the card with the given ID, or false.
func (b *Board) Card(id string) (*Card, bool) {
	for i := range b.Cards {
		if b.Cards[i].ID == id {
			return &b.Cards[i], true
		}
	}
	return nil, false
}

// Column returns a pointer to the column with the given ID, or false.
func (b *Board) Column(id string) (*Column, bool) {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i], true
		}
	}
	return nil, false
}

// MoveCard moves a card to the end of the target column. Returns false
// without mutating when the card or the target column is unknown.
func (b *Board) MoveCard(cardID, targetColumnID string, now time.Time) bool {
	card, ok := b.Card(cardID)
	if !ok {
		return false
	}
	target, ok := b.Column(targetColumnID)
	if !ok {
		return false
	}
	if src, ok := b.Column(card.ColumnID); ok {
		src.RemoveCard(cardID)
	}
	target.AddCard(cardID)
	card.MoveTo(targetColumnID, now)
	b.UpdatedAt = now.UTC()
	return true
}

// DeleteCard removes a card from its column list and from the board.
// Returns false when the card is unknown.
func (b *Board) DeleteCard(cardID string, now time.Time) bool {
	i := slices.IndexFunc(b.Cards, func(c Card) bool { return c.ID == cardID })
	if i < 0 {
		return false
	}
	if col, ok := b.Column(b.Cards[i].ColumnID); ok {
		col.RemoveCard(cardID)
	}
	b.Cards = slices.Delete(b.Cards, i, i+1)
	b.UpdatedAt = now.UTC()
	return true
}

// AddColumn appends a column and re-sorts the sequence by Order. The
// sort is stable, so ties keep insertion order.
func (b *Board) AddColumn(id, name string, order int, now time.Time) {
	b.Columns = append(b.Columns, NewColumn(id, name, order))
	slices.SortStableFunc(b.Columns, func(a, c Column) int { return a.Order - c.Order })
	b.UpdatedAt = now.UTC()
}

// RemoveColumn removes a column after relocating its cards to the first
// other column in sequence order. Removing the last remaining column or
// an unknown column returns false.
func (b *Board) RemoveColumn(id string, now time.Time) bool {
	if len(b.Columns) <= 1 {
		return false
	}
	i := slices.IndexFunc(b.Columns, func(c Column) bool { return c.ID == id })
	if i < 0 {
		return false
	}

	var destID string
	for _, c := range b.Columns {
		if c.ID != id {
			destID = c.ID
			break
		}
	}
	for _, cardID := range slices.Clone(b.Columns[i].Cards) {
		b.MoveCard(cardID, destID, now)
	}
	b.Columns = slices.Delete(b.Columns, i, i+1)
	b.UpdatedAt = now.UTC()
	return true
}

// CardsInColumn returns the cards whose ColumnID matches, in board
// iteration order. Display layers wanting the manual order must walk
// Column.Cards and resolve each ID instead.
func (b *Board) CardsInColumn(columnID string) []Card {
	var out []Card
	for _, c := range b.Cards {
		if c.ColumnID == columnID {
			out = append(out, c)
		}
	}
	return out
}
