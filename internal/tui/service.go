package tui

import (
	"context"

	"github.com/evanmorris/clicky/internal/app"
	"github.com/evanmorris/clicky/internal/domain"
)

// Service is what the model needs from the application layer. Every
// mutation is a save-then-reload round trip; the model never writes
// back its cached board.
type Service interface {
	Load(context.Context) (domain.Board, error)
	CreateCard(context.Context, app.CreateCardInput) (domain.Card, error)
	UpdateCard(context.Context, string, app.UpdateCardInput) (domain.Card, error)
	MoveCard(ctx context.Context, cardID, columnID string) error
	DeleteCard(context.Context, string) error
	ReorderCard(context.Context, string, app.MoveDirection) error
}

// sessionService adapts an app.Session to the Service interface.
type sessionService struct {
	sess *app.Session
}

// NewSessionService wraps a session for use by the model.
func NewSessionService(sess *app.Session) Service {
	return sessionService{sess: sess}
}

func (s sessionService) Load(ctx context.Context) (domain.Board, error) {
	return s.sess.Boards.Load(ctx)
}

func (s sessionService) CreateCard(ctx context.Context, in app.CreateCardInput) (domain.Card, error) {
	return s.sess.Cards.Create(ctx, in)
}

func (s sessionService) UpdateCard(ctx context.Context, cardID string, in app.UpdateCardInput) (domain.Card, error) {
	return s.sess.Cards.Update(ctx, cardID, in)
}

func (s sessionService) MoveCard(ctx context.Context, cardID, columnID string) error {
	return s.sess.Cards.Move(ctx, cardID, columnID)
}

func (s sessionService) DeleteCard(ctx context.Context, cardID string) error {
	return s.sess.Cards.Delete(ctx, cardID)
}

func (s sessionService) ReorderCard(ctx context.Context, cardID string, dir app.MoveDirection) error {
	return s.sess.Boards.ReorderCard(ctx, cardID, dir)
}
