package domain

import "time"

// Card is a unit of work on a board. Cards are created through the
// Board aggregate, never directly, so that IDs and column membership
// stay consistent.
type Card struct {
	ID          string
	Title       string
	Description string
	Assignee    string
	ColumnID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCard constructs a card with both timestamps set to now. Title
// validation is the service boundary's job, not the entity's.
func NewCard(id, title, columnID string, now time.Time) Card {
	ts := now.UTC()
	return Card{
		ID:        id,
		Title:     title,
		ColumnID:  columnID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func (c *Card) SetTitle(title string, now time.Time) {
	c.Title = title
	c.UpdatedAt = now.UTC()
}

func (c *Card) SetDescription(description string, now time.Time) {
	c.Description = description
	c.UpdatedAt = now.UTC()
}

func (c *Card) SetAssignee(assignee string, now time.Time) {
	c.Assignee = assignee
	c.UpdatedAt = now.UTC()
}

// MoveTo changes the card's column reference. Membership in the column
// card lists is maintained by the Board, not here.
func (c *Card) MoveTo(columnID string, now time.Time) {
	c.ColumnID = columnID
	c.UpdatedAt = now.UTC()
}
