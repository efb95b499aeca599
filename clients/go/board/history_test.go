package board

import "testing"

func TestHistoryUndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(0)

	h.Push("v1")
	h.Push("v2")

	snap, ok := h.Undo("v3")
	if !ok || snap != "v2" {
		t.Fatalf("Undo = %q, %v; want v2, true", snap, ok)
	}
	snap, ok = h.Redo("v2")
	if !ok || snap != "v3" {
		t.Fatalf("Redo = %q, %v; want v3, true", snap, ok)
	}
}

func TestHistoryEmptyStacks(t *testing.T) {
	h := NewHistory(4)

	if _, ok := h.Undo("current"); ok {
		t.Fatal("Undo on empty history should report false")
	}
	if _, ok := h.Redo("current"); ok {
		t.Fatal("Redo on empty history should report false")
	}
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory(4)

	h.Push("v1")
	if _, ok := h.Undo("v2"); !ok {
		t.Fatal("Undo failed")
	}
	if h.RedoLen() != 1 {
		t.Fatalf("RedoLen = %d, want 1", h.RedoLen())
	}

	h.Push("v1-edited")
	if h.RedoLen() != 0 {
		t.Fatalf("RedoLen after Push = %d, want 0", h.RedoLen())
	}
	if _, ok := h.Redo("anything"); ok {
		t.Fatal("Redo should be invalid after an intervening Push")
	}
}

func TestHistoryDropsOldestAtLimit(t *testing.T) {
	h := NewHistory(2)

	h.Push("v1")
	h.Push("v2")
	h.Push("v3")

	if h.UndoLen() != 2 {
		t.Fatalf("UndoLen = %d, want 2", h.UndoLen())
	}
	snap, _ := h.Undo("v4")
	if snap != "v3" {
		t.Fatalf("first Undo = %q, want v3", snap)
	}
	snap, _ = h.Undo("v3")
	if snap != "v2" {
		t.Fatalf("second Undo = %q, want v2", snap)
	}
	if _, ok := h.Undo("v2"); ok {
		t.Fatal("v1 should have been evicted by the limit")
	}
}
