// Package sqlite is an alternative board store keeping the JSON board
// document in a single-row table. Useful when the board should live in
// one database file instead of a dot-directory.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evanmorris/clicky/internal/app"
	"github.com/evanmorris/clicky/internal/domain"
	_ "modernc.org/sqlite"

	"github.com/evanmorris/clicky/internal/adapters/storage/jsonfile"
)

const driverName = "sqlite"

// boardKey is the fixed row key; each store holds exactly one board.
const boardKey = "board"

// Store is an app.BoardStore backed by a sqlite database file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and runs migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenInMemory opens a throwaway in-memory store, used in tests.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS boards (
		key TEXT PRIMARY KEY,
		doc TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
	}
	return nil
}

// Load reads and decodes the stored board document.
func (s *Store) Load(ctx context.Context) (domain.Board, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM boards WHERE key = ?`, boardKey).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Board{}, app.ErrBoardNotFound
	}
	if err != nil {
		return domain.Board{}, fmt.Errorf("load board: %w", err)
	}
	board, err := jsonfile.DecodeBoard([]byte(doc))
	if err != nil {
		return domain.Board{}, fmt.Errorf("decode board: %w", err)
	}
	return board, nil
}

// Save upserts the board document.
func (s *Store) Save(ctx context.Context, board domain.Board) error {
	data, err := jsonfile.EncodeBoard(board)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO boards (key, doc, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		boardKey, string(data), board.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	return nil
}

// Exists reports whether a board row is present.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards WHERE key = ?`, boardKey).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check board: %w", err)
	}
	return n > 0, nil
}

// Delete removes the board row.
func (s *Store) Delete(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE key = ?`, boardKey)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	if n == 0 {
		return app.ErrBoardNotFound
	}
	return nil
}
