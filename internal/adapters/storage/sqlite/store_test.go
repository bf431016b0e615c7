package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/evanmorris/clicky/internal/app"
	"github.com/evanmorris/clicky/internal/domain"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadMissingBoard(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Load(context.Background()); !errors.Is(err, app.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	board, err := domain.NewBoard("myproject", "My Project", testNow)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	id := board.CreateCard("persist me", "", "evan", "", testNow)

	if err := store.Save(ctx, board); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != "myproject" || got.NextCardNumber != 2 {
		t.Fatalf("board not preserved: %+v", got)
	}
	card, ok := got.Card(id)
	if !ok || card.Assignee != "evan" {
		t.Fatalf("card not preserved: %+v", card)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	board, _ := domain.NewBoard("b", "B", testNow)
	if err := store.Save(ctx, board); err != nil {
		t.Fatalf("Save: %v", err)
	}
	board.CreateCard("second save", "", "", "", testNow)
	if err := store.Save(ctx, board); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Cards) != 1 {
		t.Fatalf("expected 1 card after overwrite, got %d", len(got.Cards))
	}
}

func TestExistsAndDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if ok, err := store.Exists(ctx); err != nil || ok {
		t.Fatalf("expected no board, got ok=%v err=%v", ok, err)
	}
	board, _ := domain.NewBoard("b", "B", testNow)
	if err := store.Save(ctx, board); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ok, _ := store.Exists(ctx); !ok {
		t.Fatal("expected board to exist")
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx); !errors.Is(err, app.ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound, got %v", err)
	}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "board.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	board, _ := domain.NewBoard("b", "B", testNow)
	if err := store.Save(context.Background(), board); err != nil {
		t.Fatalf("Save: %v", err)
	}
}
