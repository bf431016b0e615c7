package cli

import (
	"testing"

	"github.com/evanmorris/clicky/internal/domain"
)

func TestAssigneeOptions(t *testing.T) {
	board := domain.Board{Cards: []domain.Card{
		{ID: "MYP-001", Assignee: "mara"},
		{ID: "MYP-002", Assignee: ""},
		{ID: "MYP-003", Assignee: "alex"},
		{ID: "MYP-004", Assignee: "mara"},
	}}

	opts := assigneeOptions(board)
	if len(opts) != 3 {
		t.Fatalf("expected Anyone plus 2 assignees, got %d options", len(opts))
	}
	if opts[0].Value != "" {
		t.Errorf("first option must leave the filter empty, got %q", opts[0].Value)
	}
	if opts[1].Value != "alex" || opts[2].Value != "mara" {
		t.Errorf("assignees must be distinct and sorted, got %q, %q", opts[1].Value, opts[2].Value)
	}
}

func TestAssigneeOptionsUnassignedBoard(t *testing.T) {
	board := domain.Board{Cards: []domain.Card{{ID: "MYP-001"}}}

	if opts := assigneeOptions(board); len(opts) != 1 {
		t.Fatalf("board without assignees should only offer Anyone, got %d options", len(opts))
	}
}
