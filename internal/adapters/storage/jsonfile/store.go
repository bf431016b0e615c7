package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/evanmorris/clicky/internal/app"
	"github.com/evanmorris/clicky/internal/domain"
)

const (
	// DirName is the per-project data directory.
	DirName = ".clicky"
	// FileName is the board document inside DirName.
	FileName = "board.json"
)

// BoardPath returns the board file path under a project base directory.
func BoardPath(base string) string {
	return filepath.Join(base, DirName, FileName)
}

// Store is an app.BoardStore backed by one JSON file. The base
// directory is fixed at construction; there are no process-wide path
// globals.
type Store struct {
	path string
}

// New constructs a store rooted at the given project base directory.
func New(base string) *Store {
	return &Store{path: BoardPath(base)}
}

// Load reads and decodes the board document.
func (s *Store) Load(context.Context) (domain.Board, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Board{}, app.ErrBoardNotFound
	}
	if err != nil {
		return domain.Board{}, fmt.Errorf("read board: %w", err)
	}
	board, err := DecodeBoard(data)
	if err != nil {
		return domain.Board{}, fmt.Errorf("decode board: %w", err)
	}
	return board, nil
}

// Save encodes the board and writes it via a temp-file rename, so a
// crash mid-write never leaves a truncated document behind.
func (s *Store) Save(_ context.Context, board domain.Board) error {
	data, err := EncodeBoard(board)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create board dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write board: %w", err)
	}
	return nil
}

// Exists reports whether a board document is present.
func (s *Store) Exists(context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat board: %w", err)
	}
	return true, nil
}

// Delete removes the board document.
func (s *Store) Delete(context.Context) error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return app.ErrBoardNotFound
	}
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}
