package state

import "testing"

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
	if got := ClampCursor(4, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestMoveCursor(t *testing.T) {
	if got := MoveCursor(0, -1, 5); got != 0 {
		t.Fatalf("expected cursor to stay at top, got %d", got)
	}
	if got := MoveCursor(3, 10, 5); got != 4 {
		t.Fatalf("expected cursor at bottom, got %d", got)
	}
	if got := MoveCursor(2, 1, 5); got != 3 {
		t.Fatalf("expected cursor 3, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, 4); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(12, 6); got != 6 {
		t.Fatalf("expected step 6, got %d", got)
	}
	if got := PageStep(5, 4); got != 3 {
		t.Fatalf("expected minimum step 3, got %d", got)
	}
}

func TestListHeight(t *testing.T) {
	if got := ListHeight(0, 4, 9); got != 9 {
		t.Fatalf("expected all rows without a known height, got %d", got)
	}
	if got := ListHeight(10, 4, 9); got != 6 {
		t.Fatalf("expected 6 rows, got %d", got)
	}
	if got := ListHeight(3, 4, 9); got != 1 {
		t.Fatalf("expected at least one row, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(5, 3, 3)
	if start != 2 || end != 5 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(5, 0, 10)
	if start != 0 || end != 5 {
		t.Fatalf("expected full window, got start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(0, 0, 3)
	if start != 0 || end != 0 {
		t.Fatalf("expected empty window, got start=%d end=%d", start, end)
	}
}
