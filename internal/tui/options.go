package tui

import "github.com/evanmorris/clicky/internal/config"

// Option configures the model at construction.
type Option func(*Model)

// WithKeys applies configured key bindings.
func WithKeys(keys config.KeyConfig) Option {
	return func(m *Model) {
		m.keys = newKeyMap(keys)
	}
}

// WithBoardConfig applies board display settings.
func WithBoardConfig(cfg config.BoardConfig) Option {
	return func(m *Model) {
		m.showCardIDs = cfg.ShowCardIDs
		m.showAssignees = cfg.ShowAssignees
	}
}
