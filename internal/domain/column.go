package domain

import "slices"

// Column is a workflow stage. Cards holds card IDs in display order and
// is the authoritative ordering of cards within the column; the board's
// flat card list carries no order of its own.
type Column struct {
	ID    string
	Name  string
	Order int
	Cards []string
}

// NewColumn constructs a column with no cards.
func NewColumn(id, name string, order int) Column {
	return Column{ID: id, Name: name, Order: order}
}

// AddCard appends a card ID. Adding an ID that is already present is a
// no-op, so double invocation cannot produce duplicate entries.
func (c *Column) AddCard(cardID string) {
	if slices.Contains(c.Cards, cardID) {
		return
	}
	c.Cards = append(c.Cards, cardID)
}

// RemoveCard removes a card ID and reports whether it was present.
func (c *Column) RemoveCard(cardID string) bool {
	i := slices.Index(c.Cards, cardID)
	if i < 0 {
		return false
	}
	c.Cards = slices.Delete(c.Cards, i, i+1)
	return true
}

// Contains reports whether the column lists the card ID.
func (c *Column) Contains(cardID string) bool {
	return slices.Contains(c.Cards, cardID)
}

// MoveCardUp swaps the card ID with its predecessor. Returns false
// without mutating when the card is absent or already first.
func (c *Column) MoveCardUp(cardID string) bool {
	i := slices.Index(c.Cards, cardID)
	if i <= 0 {
		return false
	}
	c.Cards[i-1], c.Cards[i] = c.Cards[i], c.Cards[i-1]
	return true
}

// MoveCardDown swaps the card ID with its successor. Returns false
// without mutating when the card is absent or already last.
func (c *Column) MoveCardDown(cardID string) bool {
	i := slices.Index(c.Cards, cardID)
	if i < 0 || i >= len(c.Cards)-1 {
		return false
	}
	c.Cards[i], c.Cards[i+1] = c.Cards[i+1], c.Cards[i]
	return true
}
