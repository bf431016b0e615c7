// Package jsonfile persists one board as a human-readable JSON document
// under <base>/.clicky/board.json. The same document format is shared
// by the sqlite backend.
package jsonfile

import (
	"encoding/json"
	"time"

	"github.com/evanmorris/clicky/internal/domain"
)

type boardDoc struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	CardIDPrefix   string      `json:"card_id_prefix"`
	NextCardNumber int         `json:"next_card_number"`
	Columns        []columnDoc `json:"columns"`
	Cards          []cardDoc   `json:"cards"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type columnDoc struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Order int      `json:"order"`
	Cards []string `json:"cards"`
}

type cardDoc struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	ColumnID    string    `json:"column_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EncodeBoard renders the board as an indented JSON document.
func EncodeBoard(board domain.Board) ([]byte, error) {
	doc := boardDoc{
		ID:             board.ID,
		Name:           board.Name,
		CardIDPrefix:   board.CardIDPrefix,
		NextCardNumber: board.NextCardNumber,
		Columns:        make([]columnDoc, 0, len(board.Columns)),
		Cards:          make([]cardDoc, 0, len(board.Cards)),
		CreatedAt:      board.CreatedAt,
		UpdatedAt:      board.UpdatedAt,
	}
	for _, col := range board.Columns {
		doc.Columns = append(doc.Columns, columnDoc{
			ID:    col.ID,
			Name:  col.Name,
			Order: col.Order,
			Cards: col.Cards,
		})
	}
	for _, card := range board.Cards {
		doc.Cards = append(doc.Cards, cardDoc{
			ID:          card.ID,
			Title:       card.Title,
			Description: card.Description,
			Assignee:    card.Assignee,
			ColumnID:    card.ColumnID,
			CreatedAt:   card.CreatedAt,
			UpdatedAt:   card.UpdatedAt,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeBoard parses a JSON document back into a board.
func DecodeBoard(data []byte) (domain.Board, error) {
	var doc boardDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Board{}, err
	}
	board := domain.Board{
		ID:             doc.ID,
		Name:           doc.Name,
		CardIDPrefix:   doc.CardIDPrefix,
		NextCardNumber: doc.NextCardNumber,
		Columns:        make([]domain.Column, 0, len(doc.Columns)),
		Cards:          make([]domain.Card, 0, len(doc.Cards)),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
	for _, col := range doc.Columns {
		board.Columns = append(board.Columns, domain.Column{
			ID:    col.ID,
			Name:  col.Name,
			Order: col.Order,
			Cards: col.Cards,
		})
	}
	for _, card := range doc.Cards {
		board.Cards = append(board.Cards, domain.Card{
			ID:          card.ID,
			Title:       card.Title,
			Description: card.Description,
			Assignee:    card.Assignee,
			ColumnID:    card.ColumnID,
			CreatedAt:   card.CreatedAt,
			UpdatedAt:   card.UpdatedAt,
		})
	}
	return board, nil
}
