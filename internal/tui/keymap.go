package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/evanmorris/clicky/internal/config"
)

// keyMap represents key map data used by this package.
type keyMap struct {
	quit        key.Binding
	reload      key.Binding
	toggleHelp  key.Binding
	left        key.Binding
	right       key.Binding
	up          key.Binding
	down        key.Binding
	reorderUp   key.Binding
	reorderDown key.Binding
	confirm     key.Binding
	back        key.Binding
	newCard     key.Binding
	editCard    key.Binding
	moveCard    key.Binding
	deleteCard  key.Binding
	copyID      key.Binding
}

// newKeyMap constructs key map, honoring the configurable bindings.
func newKeyMap(keys config.KeyConfig) keyMap {
	if keys.QuickMoveLeft == "" {
		keys.QuickMoveLeft = config.DefaultQuickMoveLeft
	}
	if keys.QuickMoveRight == "" {
		keys.QuickMoveRight = config.DefaultQuickMoveRight
	}
	if keys.Help == "" {
		keys.Help = config.DefaultHelpKey
	}
	if keys.Quit == "" {
		keys.Quit = config.DefaultQuitKey
	}
	return keyMap{
		quit:        key.NewBinding(key.WithKeys(keys.Quit, "ctrl+c"), key.WithHelp(keys.Quit, "quit")),
		reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		toggleHelp:  key.NewBinding(key.WithKeys(keys.Help), key.WithHelp(keys.Help, "toggle help")),
		left:        key.NewBinding(key.WithKeys(keys.QuickMoveLeft, "left"), key.WithHelp(keys.QuickMoveLeft+"/←", "column left / quick move")),
		right:       key.NewBinding(key.WithKeys(keys.QuickMoveRight, "right"), key.WithHelp(keys.QuickMoveRight+"/→", "column right / quick move")),
		up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "card up")),
		down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "card down")),
		reorderUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "reorder up")),
		reorderDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "reorder down")),
		confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select / open")),
		back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back / cancel")),
		newCard:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		editCard:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit card")),
		moveCard:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move card")),
		deleteCard:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete card")),
		copyID:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy card id")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.confirm, k.newCard, k.editCard, k.moveCard, k.toggleHelp, k.quit}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.left, k.right, k.up, k.down, k.reorderUp, k.reorderDown},
		{k.confirm, k.back, k.newCard, k.editCard, k.moveCard, k.deleteCard},
		{k.copyID, k.reload, k.toggleHelp, k.quit},
	}
}
