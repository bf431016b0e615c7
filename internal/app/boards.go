package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evanmorris/clicky/internal/domain"
)

// MoveDirection selects which neighbor a reorder swaps with.
type MoveDirection int

const (
	MoveUp MoveDirection = iota
	MoveDown
)

// BoardService wraps board-level operations in load-mutate-save round
// trips against the store. There is no partial update: every mutation
// persists the whole board.
type BoardService struct {
	store BoardStore
	clock Clock
}

// NewBoardService constructs a board service.
func NewBoardService(store BoardStore, clock Clock) *BoardService {
	if clock == nil {
		clock = time.Now
	}
	return &BoardService{store: store, clock: clock}
}

// Initialize creates and persists a fresh board with the default
// columns. Fails with ErrBoardExists when the store already holds one.
func (s *BoardService) Initialize(ctx context.Context, name string) (domain.Board, error) {
	return s.InitializeWithColumns(ctx, name, nil)
}

// InitializeWithColumns is Initialize with an explicit column set,
// typically sourced from config templates. A nil set means the
// defaults.
func (s *BoardService) InitializeWithColumns(ctx context.Context, name string, columns []domain.Column) (domain.Board, error) {
	exists, err := s.store.Exists(ctx)
	if err != nil {
		return domain.Board{}, err
	}
	if exists {
		return domain.Board{}, ErrBoardExists
	}

	board, err := domain.NewBoardWithColumns(SanitizeBoardID(name), name, columns, s.clock())
	if err != nil {
		return domain.Board{}, err
	}
	if err := s.store.Save(ctx, board); err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

// Load fetches the persisted board.
func (s *BoardService) Load(ctx context.Context) (domain.Board, error) {
	return s.store.Load(ctx)
}

// Save persists the board as-is.
func (s *BoardService) Save(ctx context.Context, board domain.Board) error {
	return s.store.Save(ctx, board)
}

// Exists reports whether a board has been initialized.
func (s *BoardService) Exists(ctx context.Context) (bool, error) {
	return s.store.Exists(ctx)
}

// Delete removes the persisted board.
func (s *BoardService) Delete(ctx context.Context) error {
	return s.store.Delete(ctx)
}

// AddColumn appends a column and persists.
func (s *BoardService) AddColumn(ctx context.Context, id, name string, order int) error {
	board, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := board.Column(id); ok {
		return fmt.Errorf("column %s: %w", id, ErrColumnExists)
	}
	board.AddColumn(id, name, order, s.clock())
	return s.store.Save(ctx, board)
}

// RemoveColumn drops a column, relocating its cards, and persists.
func (s *BoardService) RemoveColumn(ctx context.Context, id string) error {
	board, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if _, ok := board.Column(id); !ok {
		return fmt.Errorf("column %s: %w", id, ErrColumnNotFound)
	}
	if !board.RemoveColumn(id, s.clock()) {
		return ErrLastColumn
	}
	return s.store.Save(ctx, board)
}

// ReorderCard swaps a card with its neighbor inside its own column.
// Returns ErrAtEdge when the card is already first or last.
func (s *BoardService) ReorderCard(ctx context.Context, cardID string, dir MoveDirection) error {
	board, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	card, ok := board.Card(cardID)
	if !ok {
		return fmt.Errorf("card %s: %w", cardID, ErrCardNotFound)
	}
	col, ok := board.Column(card.ColumnID)
	if !ok {
		return fmt.Errorf("column %s: %w", card.ColumnID, ErrColumnNotFound)
	}

	moved := false
	switch dir {
	case MoveUp:
		moved = col.MoveCardUp(cardID)
	case MoveDown:
		moved = col.MoveCardDown(cardID)
	}
	if !moved {
		return ErrAtEdge
	}
	return s.store.Save(ctx, board)
}

// SanitizeBoardID derives a board ID from a display name: lowercased,
// runs of non-alphanumerics collapsed to single hyphens.
func SanitizeBoardID(name string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			hyphen = false
		default:
			if !hyphen && b.Len() > 0 {
				b.WriteByte('-')
				hyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
