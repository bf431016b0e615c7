package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evanmorris/clicky/internal/domain"
)

// CardService wraps card-level operations. It validates inputs before
// touching the board aggregate, in particular that the target column
// exists before a card is created, since the aggregate itself treats
// that as a caller precondition.
type CardService struct {
	store BoardStore
	clock Clock
}

// NewCardService constructs a card service.
func NewCardService(store BoardStore, clock Clock) *CardService {
	if clock == nil {
		clock = time.Now
	}
	return &CardService{store: store, clock: clock}
}

// CreateCardInput holds input values for card creation. An empty
// ColumnID targets the board's default column.
type CreateCardInput struct {
	Title       string
	Description string
	Assignee    string
	ColumnID    string
}

// Create validates input, creates the card, and persists the board.
func (s *CardService) Create(ctx context.Context, in CreateCardInput) (domain.Card, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Card{}, ErrEmptyTitle
	}

	board, err := s.store.Load(ctx)
	if err != nil {
		return domain.Card{}, err
	}
	columnID := in.ColumnID
	if columnID == "" {
		columnID = domain.DefaultColumnID
	}
	if _, ok := board.Column(columnID); !ok {
		return domain.Card{}, fmt.Errorf("column %s: %w", columnID, ErrColumnNotFound)
	}

	id := board.CreateCard(title, in.Description, in.Assignee, columnID, s.clock())
	if err := s.store.Save(ctx, board); err != nil {
		return domain.Card{}, err
	}
	card, _ := board.Card(id)
	return *card, nil
}

// Move relocates a card to the end of the target column. Card and
// column absence are reported as distinct errors.
func (s *CardService) Move(ctx context.Context, cardID, columnID string) error {
	board, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := board.Card(cardID); !ok {
		return fmt.Errorf("card %s: %w", cardID, ErrCardNotFound)
	}
	if _, ok := board.Column(columnID); !ok {
		return fmt.Errorf("column %s: %w", columnID, ErrColumnNotFound)
	}
	board.MoveCard(cardID, columnID, s.clock())
	return s.store.Save(ctx, board)
}

// UpdateCardInput patches any subset of a card's fields. Title may be
// set but never cleared; description and assignee support all three
// directives.
type UpdateCardInput struct {
	Title       FieldPatch
	Description FieldPatch
	Assignee    FieldPatch
}

// Update applies the patch and persists. A title directive resolving to
// an empty string is rejected with ErrEmptyTitle.
func (s *CardService) Update(ctx context.Context, cardID string, in UpdateCardInput) (domain.Card, error) {
	board, err := s.store.Load(ctx)
	if err != nil {
		return domain.Card{}, err
	}
	card, ok := board.Card(cardID)
	if !ok {
		return domain.Card{}, fmt.Errorf("card %s: %w", cardID, ErrCardNotFound)
	}

	now := s.clock()
	if !in.Title.IsLeave() {
		title := strings.TrimSpace(in.Title.Apply(card.Title))
		if title == "" {
			return domain.Card{}, ErrEmptyTitle
		}
		card.SetTitle(title, now)
	}
	if !in.Description.IsLeave() {
		card.SetDescription(in.Description.Apply(card.Description), now)
	}
	if !in.Assignee.IsLeave() {
		card.SetAssignee(in.Assignee.Apply(card.Assignee), now)
	}

	if err := s.store.Save(ctx, board); err != nil {
		return domain.Card{}, err
	}
	return *card, nil
}

// Delete removes a card and persists.
func (s *CardService) Delete(ctx context.Context, cardID string) error {
	board, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if !board.DeleteCard(cardID, s.clock()) {
		return fmt.Errorf("card %s: %w", cardID, ErrCardNotFound)
	}
	return s.store.Save(ctx, board)
}

// Get fetches one card by ID.
func (s *CardService) Get(ctx context.Context, cardID string) (domain.Card, error) {
	board, err := s.store.Load(ctx)
	if err != nil {
		return domain.Card{}, err
	}
	card, ok := board.Card(cardID)
	if !ok {
		return domain.Card{}, fmt.Errorf("card %s: %w", cardID, ErrCardNotFound)
	}
	return *card, nil
}

// ListFilter narrows List output. Empty fields match everything.
type ListFilter struct {
	ColumnID string
	Assignee string
}

// List returns cards in column display order, walking each column's
// ordered ID list so manual ordering is respected.
func (s *CardService) List(ctx context.Context, filter ListFilter) ([]domain.Card, error) {
	board, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if filter.ColumnID != "" {
		if _, ok := board.Column(filter.ColumnID); !ok {
			return nil, fmt.Errorf("column %s: %w", filter.ColumnID, ErrColumnNotFound)
		}
	}

	var out []domain.Card
	for _, col := range board.Columns {
		if filter.ColumnID != "" && col.ID != filter.ColumnID {
			continue
		}
		for _, id := range col.Cards {
			card, ok := board.Card(id)
			if !ok {
				continue
			}
			if filter.Assignee != "" && card.Assignee != filter.Assignee {
				continue
			}
			out = append(out, *card)
		}
	}
	return out, nil
}
