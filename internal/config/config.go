package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Backend selects which board store implementation to use.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Config is the per-project configuration, read from
// <base>/.clicky/config.toml when present.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Board   BoardConfig   `toml:"board"`
	Keys    KeyConfig     `toml:"keys"`
}

type StorageConfig struct {
	Backend Backend `toml:"backend"`
	// Path is the sqlite database file, ignored by the json backend.
	Path string `toml:"path"`
}

type BoardConfig struct {
	// Name seeds `clicky init` when no --name flag is given.
	Name          string           `toml:"name"`
	DefaultColumn string           `toml:"default_column"`
	ShowCardIDs   bool             `toml:"show_card_ids"`
	ShowAssignees bool             `toml:"show_assignees"`
	// Columns overrides the built-in todo/in_progress/done set for
	// newly initialized boards.
	Columns []ColumnTemplate `toml:"columns"`
}

// ColumnTemplate describes one column of a freshly initialized board.
type ColumnTemplate struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Order int    `toml:"order"`
}

type KeyConfig struct {
	QuickMoveLeft  string `toml:"quick_move_left"`
	QuickMoveRight string `toml:"quick_move_right"`
	Help           string `toml:"help"`
	Quit           string `toml:"quit"`
}

// Default key bindings, shared with the TUI key map so a partial
// [keys] table falls back to the same values Default seeds.
const (
	DefaultQuickMoveLeft  = "h"
	DefaultQuickMoveRight = "l"
	DefaultHelpKey        = "?"
	DefaultQuitKey        = "q"
)

// ConfigPath returns the config file location under a project base.
func ConfigPath(base string) string {
	return filepath.Join(base, ".clicky", "config.toml")
}

// Default returns the configuration used when no file exists.
func Default(base string) Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
			Path:    filepath.Join(base, ".clicky", "board.db"),
		},
		Board: BoardConfig{
			DefaultColumn: "todo",
			ShowCardIDs:   true,
			ShowAssignees: true,
		},
		Keys: KeyConfig{
			QuickMoveLeft:  DefaultQuickMoveLeft,
			QuickMoveRight: DefaultQuickMoveRight,
			Help:           DefaultHelpKey,
			Quit:           DefaultQuitKey,
		},
	}
}

// Load reads path over defaults. A missing or empty file yields the
// defaults unchanged.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values after decoding.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQLite && strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage.path is required for the sqlite backend")
	}

	if strings.TrimSpace(c.Board.DefaultColumn) == "" {
		return errors.New("board.default_column is required")
	}
	seen := make(map[string]struct{}, len(c.Board.Columns))
	for i, col := range c.Board.Columns {
		if strings.TrimSpace(col.ID) == "" || strings.TrimSpace(col.Name) == "" {
			return fmt.Errorf("board.columns[%d]: id and name are required", i)
		}
		if _, dup := seen[col.ID]; dup {
			return fmt.Errorf("board.columns: duplicate id %q", col.ID)
		}
		seen[col.ID] = struct{}{}
	}

	keys := map[string]string{
		"keys.quick_move_left":  c.Keys.QuickMoveLeft,
		"keys.quick_move_right": c.Keys.QuickMoveRight,
		"keys.help":             c.Keys.Help,
		"keys.quit":             c.Keys.Quit,
	}
	for name, v := range keys {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}
