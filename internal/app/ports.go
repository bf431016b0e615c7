package app

import (
	"context"

	"github.com/evanmorris/clicky/internal/domain"
)

// BoardStore persists one board at a location fixed when the store is
// constructed. Load returns ErrBoardNotFound when nothing has been
// saved yet. The store is assumed to be owned exclusively by this
// process; concurrent external modification is undefined behavior.
type BoardStore interface {
	Load(context.Context) (domain.Board, error)
	Save(context.Context, domain.Board) error
	Exists(context.Context) (bool, error)
	Delete(context.Context) error
}
