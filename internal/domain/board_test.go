package domain

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func newTestBoard(t *testing.T) Board {
	t.Helper()
	b, err := NewBoard("testboard", "Test Board", testNow)
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}
	return b
}

// checkConsistency verifies the cross-collection invariants: every card
// belongs to exactly one existing column, every column lists exactly its
// members once, and card IDs are unique.
func checkConsistency(t *testing.T, b *Board) {
	t.Helper()
	if len(b.Columns) == 0 {
		t.Fatal("board has no columns")
	}
	seen := map[string]bool{}
	for _, card := range b.Cards {
		if seen[card.ID] {
			t.Fatalf("duplicate card id %s", card.ID)
		}
		seen[card.ID] = true
		col, ok := b.Column(card.ColumnID)
		if !ok {
			t.Fatalf("card %s references unknown column %s", card.ID, card.ColumnID)
		}
		if n := count(col.Cards, card.ID); n != 1 {
			t.Fatalf("column %s lists card %s %d times", col.ID, card.ID, n)
		}
	}
	for _, col := range b.Columns {
		for _, id := range col.Cards {
			card, ok := b.Card(id)
			if !ok {
				t.Fatalf("column %s lists unknown card %s", col.ID, id)
			}
			if card.ColumnID != col.ID {
				t.Fatalf("card %s in column %s list but ColumnID is %s", id, col.ID, card.ColumnID)
			}
		}
	}
}

func count(ids []string, id string) int {
	n := 0
	for _, v := range ids {
		if v == id {
			n++
		}
	}
	return n
}

func TestNewBoardDefaults(t *testing.T) {
	b := newTestBoard(t)
	if len(b.Columns) != 3 {
		t.Fatalf("expected 3 default columns, got %d", len(b.Columns))
	}
	for i, want := range []string{"todo", "in_progress", "done"} {
		if b.Columns[i].ID != want {
			t.Fatalf("column %d: expected %s, got %s", i, want, b.Columns[i].ID)
		}
		if b.Columns[i].Order != i {
			t.Fatalf("column %s: expected order %d, got %d", want, i, b.Columns[i].Order)
		}
	}
	if b.NextCardNumber != 1 {
		t.Fatalf("expected NextCardNumber 1, got %d", b.NextCardNumber)
	}
	if b.CardIDPrefix != "TES" {
		t.Fatalf("expected prefix TES, got %s", b.CardIDPrefix)
	}
}

func TestNewBoardRejectsEmptyIdentity(t *testing.T) {
	if _, err := NewBoard("  ", "Name", testNow); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := NewBoard("id", "", testNow); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestCardIDPrefix(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{"myproject", "MYP"},
		{"my-project", "MYP"},
		{"my_project_123", "MYP"},
		{"ab", "AB"},
		{"x1y2z3w4", "XYZ"},
		{"123", ""},
	}
	for _, tc := range cases {
		if got := cardIDPrefix(tc.id); got != tc.want {
			t.Errorf("cardIDPrefix(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestGenerateCardIDMonotonic(t *testing.T) {
	b := newTestBoard(t)
	first := b.CreateCard("one", "", "", "", testNow)
	second := b.CreateCard("two", "", "", "", testNow)
	if first != "TES-001" || second != "TES-002" {
		t.Fatalf("unexpected ids %s, %s", first, second)
	}

	if !b.DeleteCard(first, testNow) {
		t.Fatal("delete failed")
	}
	third := b.CreateCard("three", "", "", "", testNow)
	if third != "TES-003" {
		t.Fatalf("numbers must not be reused after delete, got %s", third)
	}
	if b.NextCardNumber != 4 {
		t.Fatalf("expected NextCardNumber 4, got %d", b.NextCardNumber)
	}
}

func TestCreateCardDefaultsToTodo(t *testing.T) {
	b := newTestBoard(t)
	id := b.CreateCard("task", "details", "evan", "", testNow)
	card, ok := b.Card(id)
	if !ok {
		t.Fatalf("card %s not found", id)
	}
	if card.ColumnID != DefaultColumnID {
		t.Fatalf("expected column %s, got %s", DefaultColumnID, card.ColumnID)
	}
	if card.Description != "details" || card.Assignee != "evan" {
		t.Fatalf("unexpected card fields: %+v", card)
	}
	col, _ := b.Column(DefaultColumnID)
	if !col.Contains(id) {
		t.Fatal("todo column does not list the new card")
	}
	checkConsistency(t, &b)
}

func TestCreateCardUnknownColumn(t *testing.T) {
	// Column existence is a caller precondition. The card still lands
	// on the board but no column lists it.
	b := newTestBoard(t)
	id := b.CreateCard("orphan", "", "", "nowhere", testNow)
	if _, ok := b.Card(id); !ok {
		t.Fatal("card missing from board")
	}
	for _, col := range b.Columns {
		if col.Contains(id) {
			t.Fatalf("column %s unexpectedly lists the card", col.ID)
		}
	}
}

func TestMoveCardRoundTrip(t *testing.T) {
	b := newTestBoard(t)
	id := b.CreateCard("task", "", "", "todo", testNow)

	if !b.MoveCard(id, "in_progress", testNow) {
		t.Fatal("move to in_progress failed")
	}
	if !b.MoveCard(id, "done", testNow) {
		t.Fatal("move to done failed")
	}

	card, _ := b.Card(id)
	if card.ColumnID != "done" {
		t.Fatalf("expected column done, got %s", card.ColumnID)
	}
	for _, colID := range []string{"todo", "in_progress"} {
		col, _ := b.Column(colID)
		if col.Contains(id) {
			t.Fatalf("column %s still lists the card", colID)
		}
	}
	done, _ := b.Column("done")
	if count(done.Cards, id) != 1 {
		t.Fatalf("done should list the card exactly once: %v", done.Cards)
	}
	checkConsistency(t, &b)
}

func TestMoveCardAppendsToEnd(t *testing.T) {
	b := newTestBoard(t)
	first := b.CreateCard("one", "", "", "done", testNow)
	second := b.CreateCard("two", "", "", "todo", testNow)

	if !b.MoveCard(second, "done", testNow) {
		t.Fatal("move failed")
	}
	done, _ := b.Column("done")
	if want := []string{first, second}; !slices.Equal(done.Cards, want) {
		t.Fatalf("moved card should land last: expected %v, got %v", want, done.Cards)
	}
}

func TestMoveCardFailures(t *testing.T) {
	b := newTestBoard(t)
	id := b.CreateCard("task", "", "", "", testNow)

	if b.MoveCard("TES-999", "done", testNow) {
		t.Fatal("moving unknown card should fail")
	}
	if b.MoveCard(id, "nowhere", testNow) {
		t.Fatal("moving to unknown column should fail")
	}
	card, _ := b.Card(id)
	if card.ColumnID != "todo" {
		t.Fatalf("failed moves must not mutate: card in %s", card.ColumnID)
	}
}

func TestDeleteCard(t *testing.T) {
	b := newTestBoard(t)
	id := b.CreateCard("task", "", "", "", testNow)

	if !b.DeleteCard(id, testNow) {
		t.Fatal("delete of existing card failed")
	}
	if b.DeleteCard(id, testNow) {
		t.Fatal("delete of missing card should fail")
	}
	if len(b.Cards) != 0 {
		t.Fatalf("board still has %d cards", len(b.Cards))
	}
	checkConsistency(t, &b)
}

func TestAddColumnSortsByOrder(t *testing.T) {
	b := newTestBoard(t)
	b.AddColumn("review", "Review", 1, testNow)
	b.AddColumn("triage", "Triage", 0, testNow)

	got := make([]string, len(b.Columns))
	for i, c := range b.Columns {
		got[i] = c.ID
	}
	// Stable sort: ties keep insertion order, so triage lands after
	// todo (both order 0) and review after in_progress (both order 1).
	want := []string{"todo", "triage", "in_progress", "review", "done"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRemoveColumnRelocatesCards(t *testing.T) {
	b := newTestBoard(t)
	first := b.CreateCard("one", "", "", "in_progress", testNow)
	second := b.CreateCard("two", "", "", "in_progress", testNow)

	if !b.RemoveColumn("in_progress", testNow) {
		t.Fatal("remove column failed")
	}
	got := make([]string, len(b.Columns))
	for i, c := range b.Columns {
		got[i] = c.ID
	}
	if want := []string{"todo", "done"}; !slices.Equal(got, want) {
		t.Fatalf("expected columns %v, got %v", want, got)
	}
	todo, _ := b.Column("todo")
	if !todo.Contains(first) || !todo.Contains(second) {
		t.Fatalf("cards not relocated to todo: %v", todo.Cards)
	}
	checkConsistency(t, &b)
}

func TestRemoveColumnRefusals(t *testing.T) {
	b := newTestBoard(t)
	if b.RemoveColumn("nowhere", testNow) {
		t.Fatal("removing unknown column should fail")
	}

	b.RemoveColumn("in_progress", testNow)
	b.RemoveColumn("done", testNow)
	if b.RemoveColumn("todo", testNow) {
		t.Fatal("removing the last column should fail")
	}
	if len(b.Columns) != 1 {
		t.Fatalf("expected 1 column left, got %d", len(b.Columns))
	}
}

func TestCardsInColumn(t *testing.T) {
	b := newTestBoard(t)
	b.CreateCard("one", "", "", "todo", testNow)
	b.CreateCard("two", "", "", "done", testNow)
	b.CreateCard("three", "", "", "todo", testNow)

	if got := len(b.CardsInColumn("todo")); got != 2 {
		t.Fatalf("expected 2 cards in todo, got %d", got)
	}
	if got := len(b.CardsInColumn("in_progress")); got != 0 {
		t.Fatalf("expected empty in_progress, got %d", got)
	}
}

func TestRandomOperationsKeepConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := newTestBoard(t)
	columns := []string{"todo", "in_progress", "done"}

	for i := 0; i < 500; i++ {
		switch rng.Intn(4) {
		case 0:
			b.CreateCard(fmt.Sprintf("card %d", i), "", "", columns[rng.Intn(len(columns))], testNow)
		case 1:
			if len(b.Cards) > 0 {
				card := b.Cards[rng.Intn(len(b.Cards))]
				b.MoveCard(card.ID, columns[rng.Intn(len(columns))], testNow)
			}
		case 2:
			if len(b.Cards) > 0 {
				b.DeleteCard(b.Cards[rng.Intn(len(b.Cards))].ID, testNow)
			}
		case 3:
			if len(b.Cards) > 0 {
				card := b.Cards[rng.Intn(len(b.Cards))]
				if col, ok := b.Column(card.ColumnID); ok {
					if rng.Intn(2) == 0 {
						col.MoveCardUp(card.ID)
					} else {
						col.MoveCardDown(card.ID)
					}
				}
			}
		}
		checkConsistency(t, &b)
	}
}

func TestTimestampsRefreshOnMutation(t *testing.T) {
	b := newTestBoard(t)
	id := b.CreateCard("task", "", "", "", testNow)
	later := testNow.Add(time.Hour)

	b.MoveCard(id, "done", later)
	card, _ := b.Card(id)
	if !card.UpdatedAt.Equal(later) {
		t.Fatalf("card UpdatedAt not refreshed: %v", card.UpdatedAt)
	}
	if !b.UpdatedAt.Equal(later) {
		t.Fatalf("board UpdatedAt not refreshed: %v", b.UpdatedAt)
	}
	if !card.CreatedAt.Equal(testNow) {
		t.Fatalf("CreatedAt must not change: %v", card.CreatedAt)
	}
}

func TestNewBoardWithColumnsSortsByOrder(t *testing.T) {
	cols := []Column{
		NewColumn("done", "Done", 2),
		NewColumn("backlog", "Backlog", 0),
		NewColumn("doing", "Doing", 1),
	}
	b, err := NewBoardWithColumns("myproject", "My Project", cols, testNow)
	if err != nil {
		t.Fatalf("NewBoardWithColumns() error = %v", err)
	}

	got := make([]string, 0, len(b.Columns))
	for _, c := range b.Columns {
		got = append(got, c.ID)
	}
	want := []string{"backlog", "doing", "done"}
	if !slices.Equal(got, want) {
		t.Fatalf("column order = %v, want %v", got, want)
	}
	if len(cols) != 3 || cols[0].ID != "done" {
		t.Fatal("input slice must not be reordered")
	}
}

func TestNewBoardWithColumnsEmptyFallsBack(t *testing.T) {
	b, err := NewBoardWithColumns("myproject", "My Project", nil, testNow)
	if err != nil {
		t.Fatalf("NewBoardWithColumns() error = %v", err)
	}
	if len(b.Columns) != 3 || b.Columns[0].ID != DefaultColumnID {
		t.Fatalf("expected default columns, got %+v", b.Columns)
	}
}
