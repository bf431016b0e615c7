package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evanmorris/clicky/internal/domain"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

// memStore keeps the board in memory and counts saves. failNext makes
// the next call return a synthetic storage error.
type memStore struct {
	board    *domain.Board
	saves    int
	failNext error
}

func (m *memStore) check() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *memStore) Load(context.Context) (domain.Board, error) {
	if err := m.check(); err != nil {
		return domain.Board{}, err
	}
	if m.board == nil {
		return domain.Board{}, ErrBoardNotFound
	}
	return *m.board, nil
}

func (m *memStore) Save(_ context.Context, b domain.Board) error {
	if err := m.check(); err != nil {
		return err
	}
	m.board = &b
	m.saves++
	return nil
}

func (m *memStore) Exists(context.Context) (bool, error) {
	if err := m.check(); err != nil {
		return false, err
	}
	return m.board != nil, nil
}

func (m *memStore) Delete(context.Context) error {
	if err := m.check(); err != nil {
		return err
	}
	if m.board == nil {
		return ErrBoardNotFound
	}
	m.board = nil
	return nil
}

func newTestSession(t *testing.T) (*Session, *memStore) {
	t.Helper()
	store := &memStore{}
	sess := NewSession(store, testClock)
	if _, err := sess.Boards.Initialize(context.Background(), "Test Board"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return sess, store
}

func TestInitialize(t *testing.T) {
	store := &memStore{}
	svc := NewBoardService(store, testClock)

	board, err := svc.Initialize(context.Background(), "My Project")
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if board.ID != "my-project" {
		t.Fatalf("expected sanitized id my-project, got %s", board.ID)
	}
	if board.CardIDPrefix != "MYP" {
		t.Fatalf("expected prefix MYP, got %s", board.CardIDPrefix)
	}

	if _, err := svc.Initialize(context.Background(), "My Project"); !errors.Is(err, ErrBoardExists) {
		t.Fatalf("expected ErrBoardExists, got %v", err)
	}
}

func TestSanitizeBoardID(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"My Project", "my-project"},
		{"  spaced  out  ", "spaced-out"},
		{"already-clean", "already-clean"},
		{"Weird!!Chars##42", "weird-chars-42"},
		{"trailing-", "trailing"},
	}
	for _, tc := range cases {
		if got := SanitizeBoardID(tc.name); got != tc.want {
			t.Errorf("SanitizeBoardID(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCreateCardValidatesColumn(t *testing.T) {
	sess, store := newTestSession(t)
	ctx := context.Background()

	if _, err := sess.Cards.Create(ctx, CreateCardInput{Title: "x", ColumnID: "nowhere"}); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
	if store.board.NextCardNumber != 1 {
		t.Fatalf("rejected create must not consume an id: counter %d", store.board.NextCardNumber)
	}

	card, err := sess.Cards.Create(ctx, CreateCardInput{Title: "  real  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if card.Title != "real" {
		t.Fatalf("title not trimmed: %q", card.Title)
	}
	if card.ColumnID != domain.DefaultColumnID {
		t.Fatalf("expected default column, got %s", card.ColumnID)
	}
}

func TestCreateCardEmptyTitle(t *testing.T) {
	sess, store := newTestSession(t)
	if _, err := sess.Cards.Create(context.Background(), CreateCardInput{Title: "   "}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if store.board.NextCardNumber != 1 {
		t.Fatal("empty title must not consume an id")
	}
}

func TestMoveCardDistinctErrors(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()
	card, _ := sess.Cards.Create(ctx, CreateCardInput{Title: "x"})

	if err := sess.Cards.Move(ctx, "TES-999", "done"); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
	if err := sess.Cards.Move(ctx, card.ID, "nowhere"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
	if err := sess.Cards.Move(ctx, card.ID, "done"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	got, err := sess.Cards.Get(ctx, card.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ColumnID != "done" {
		t.Fatalf("expected done, got %s", got.ColumnID)
	}
}

func TestUpdateCardPatches(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()
	card, _ := sess.Cards.Create(ctx, CreateCardInput{
		Title:       "orig",
		Description: "desc",
		Assignee:    "evan",
	})

	got, err := sess.Cards.Update(ctx, card.ID, UpdateCardInput{
		Title:       SetField("renamed"),
		Description: ClearField(),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "renamed" {
		t.Fatalf("title not updated: %q", got.Title)
	}
	if got.Description != "" {
		t.Fatalf("description not cleared: %q", got.Description)
	}
	if got.Assignee != "evan" {
		t.Fatalf("assignee must be left unchanged: %q", got.Assignee)
	}

	if _, err := sess.Cards.Update(ctx, card.ID, UpdateCardInput{Title: SetField("  ")}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := sess.Cards.Update(ctx, "TES-999", UpdateCardInput{}); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestDeleteCard(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()
	card, _ := sess.Cards.Create(ctx, CreateCardInput{Title: "x"})

	if err := sess.Cards.Delete(ctx, card.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := sess.Cards.Delete(ctx, card.ID); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestReorderCard(t *testing.T) {
	sess, store := newTestSession(t)
	ctx := context.Background()
	a, _ := sess.Cards.Create(ctx, CreateCardInput{Title: "a"})
	b, _ := sess.Cards.Create(ctx, CreateCardInput{Title: "b"})

	if err := sess.Boards.ReorderCard(ctx, a.ID, MoveUp); !errors.Is(err, ErrAtEdge) {
		t.Fatalf("expected ErrAtEdge for first card, got %v", err)
	}
	if err := sess.Boards.ReorderCard(ctx, b.ID, MoveDown); !errors.Is(err, ErrAtEdge) {
		t.Fatalf("expected ErrAtEdge for last card, got %v", err)
	}
	if err := sess.Boards.ReorderCard(ctx, b.ID, MoveUp); err != nil {
		t.Fatalf("ReorderCard: %v", err)
	}

	todo, _ := store.board.Column("todo")
	if todo.Cards[0] != b.ID || todo.Cards[1] != a.ID {
		t.Fatalf("unexpected order %v", todo.Cards)
	}

	if err := sess.Boards.ReorderCard(ctx, "TES-999", MoveUp); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestListRespectsManualOrderAndFilters(t *testing.T) {
	sess, _ := newTestSession(t)
	ctx := context.Background()
	a, _ := sess.Cards.Create(ctx, CreateCardInput{Title: "a", Assignee: "evan"})
	b, _ := sess.Cards.Create(ctx, CreateCardInput{Title: "b"})
	c, _ := sess.Cards.Create(ctx, CreateCardInput{Title: "c", ColumnID: "done", Assignee: "evan"})

	if err := sess.Boards.ReorderCard(ctx, b.ID, MoveUp); err != nil {
		t.Fatalf("ReorderCard: %v", err)
	}

	all, err := sess.Cards.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	ids := make([]string, len(all))
	for i, card := range all {
		ids[i] = card.ID
	}
	if len(ids) != 3 || ids[0] != b.ID || ids[1] != a.ID || ids[2] != c.ID {
		t.Fatalf("unexpected listing order %v", ids)
	}

	byAssignee, err := sess.Cards.List(ctx, ListFilter{Assignee: "evan"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byAssignee) != 2 {
		t.Fatalf("expected 2 cards for evan, got %d", len(byAssignee))
	}

	byColumn, err := sess.Cards.List(ctx, ListFilter{ColumnID: "done"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byColumn) != 1 || byColumn[0].ID != c.ID {
		t.Fatalf("unexpected column listing %v", byColumn)
	}

	if _, err := sess.Cards.List(ctx, ListFilter{ColumnID: "nowhere"}); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestColumnManagement(t *testing.T) {
	sess, store := newTestSession(t)
	ctx := context.Background()

	if err := sess.Boards.AddColumn(ctx, "review", "Review", 2); err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	if err := sess.Boards.AddColumn(ctx, "review", "Review", 2); !errors.Is(err, ErrColumnExists) {
		t.Fatalf("expected ErrColumnExists, got %v", err)
	}

	card, _ := sess.Cards.Create(ctx, CreateCardInput{Title: "x", ColumnID: "review"})
	if err := sess.Boards.RemoveColumn(ctx, "review"); err != nil {
		t.Fatalf("RemoveColumn: %v", err)
	}
	got, _ := store.board.Card(card.ID)
	if got.ColumnID != "todo" {
		t.Fatalf("card not relocated, in %s", got.ColumnID)
	}

	if err := sess.Boards.RemoveColumn(ctx, "nowhere"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestStorageFailurePropagates(t *testing.T) {
	sess, store := newTestSession(t)
	boom := errors.New("disk on fire")

	store.failNext = boom
	if _, err := sess.Cards.Create(context.Background(), CreateCardInput{Title: "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("failed load must not save: %d saves", store.saves)
	}
}

func TestFieldPatch(t *testing.T) {
	if got := LeaveField().Apply("keep"); got != "keep" {
		t.Fatalf("Leave: %q", got)
	}
	if got := ClearField().Apply("gone"); got != "" {
		t.Fatalf("Clear: %q", got)
	}
	if got := SetField("new").Apply("old"); got != "new" {
		t.Fatalf("Set: %q", got)
	}
	if !LeaveField().IsLeave() || ClearField().IsLeave() || SetField("").IsLeave() {
		t.Fatal("IsLeave misclassifies directives")
	}
}

func TestInitializeWithColumns(t *testing.T) {
	store := &memStore{}
	svc := NewBoardService(store, testClock)

	cols := []domain.Column{
		domain.NewColumn("doing", "Doing", 1),
		domain.NewColumn("backlog", "Backlog", 0),
	}
	board, err := svc.InitializeWithColumns(context.Background(), "My Project", cols)
	if err != nil {
		t.Fatalf("InitializeWithColumns: %v", err)
	}
	if len(board.Columns) != 2 || board.Columns[0].ID != "backlog" {
		t.Fatalf("unexpected columns %+v", board.Columns)
	}
}
