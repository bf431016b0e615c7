package app

import "time"

// Clock returns the current time.
type Clock func() time.Time

// Session bundles the services sharing one board store. The CLI and the
// TUI both operate through a session, so every mutation takes the same
// load-mutate-save path regardless of surface.
type Session struct {
	Boards *BoardService
	Cards  *CardService
}

// NewSession constructs a session over one store.
func NewSession(store BoardStore, clock Clock) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{
		Boards: NewBoardService(store, clock),
		Cards:  NewCardService(store, clock),
	}
}
