package ui

import (
	"testing"

	"github.com/piwi3910/TablePlan/internal/model"
)

var defaults = model.DefaultSettings()

func rooms(n int) []model.Room {
	out := make([]model.Room, n)
	for i := range out {
		out[i] = model.Room{ID: string(rune('a' + i)), Label: "Room", Width: 3 + i, Height: 3, Target: 1}
	}
	return out
}

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.maxDepth != defaultMaxDepth {
		t.Errorf("expected maxDepth %d, got %d", defaultMaxDepth, h.maxDepth)
	}
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
}

func TestPushAndUndo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, defaults, "initial"))

	if !h.CanUndo() {
		t.Fatal("should be able to undo after push")
	}

	restored, ok := h.Undo(MakeSnapshot(rooms(1), defaults, "current"))
	if !ok {
		t.Fatal("undo should succeed")
	}
	if len(restored.Rooms) != 0 {
		t.Errorf("expected 0 rooms after undo, got %d", len(restored.Rooms))
	}
	if restored.Label != "initial" {
		t.Errorf("expected label 'initial', got %q", restored.Label)
	}
}

func TestUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, defaults, "empty"))
	h.Push(MakeSnapshot(rooms(1), defaults, "one room"))

	restored, ok := h.Undo(MakeSnapshot(rooms(2), defaults, "two rooms"))
	if !ok {
		t.Fatal("first undo should succeed")
	}
	if len(restored.Rooms) != 1 {
		t.Errorf("expected 1 room, got %d", len(restored.Rooms))
	}

	if !h.CanRedo() {
		t.Fatal("should be able to redo")
	}
	redone, ok := h.Redo(restored)
	if !ok {
		t.Fatal("redo should succeed")
	}
	if len(redone.Rooms) != 2 {
		t.Errorf("expected 2 rooms after redo, got %d", len(redone.Rooms))
	}
}

func TestUndoRestoresSettings(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(rooms(1), defaults, "before strategy change"))

	dense := defaults
	dense.Strategy = model.StrategyDense
	restored, ok := h.Undo(MakeSnapshot(rooms(1), dense, "current"))
	if !ok {
		t.Fatal("undo should succeed")
	}
	if restored.Settings.Strategy != model.StrategySpaced {
		t.Errorf("expected spaced strategy after undo, got %s", restored.Settings.Strategy)
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, defaults, "empty"))

	if _, ok := h.Undo(MakeSnapshot(rooms(1), defaults, "one room")); !ok {
		t.Fatal("undo should succeed")
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	h.Push(MakeSnapshot(nil, defaults, "new action"))
	if h.CanRedo() {
		t.Error("redo stack should be cleared after push")
	}
}

func TestMaxDepth(t *testing.T) {
	h := &History{maxDepth: 3}
	for i := 0; i < 5; i++ {
		h.Push(MakeSnapshot(rooms(i), defaults, ""))
	}

	if len(h.undoStack) != 3 {
		t.Fatalf("expected undo stack length 3, got %d", len(h.undoStack))
	}
	if len(h.undoStack[0].Rooms) != 2 {
		t.Errorf("oldest kept snapshot should have 2 rooms, got %d", len(h.undoStack[0].Rooms))
	}
}

func TestUndoRedoEmpty(t *testing.T) {
	h := NewHistory()
	current := MakeSnapshot(nil, defaults, "current")
	if _, ok := h.Undo(current); ok {
		t.Error("undo on empty history should return false")
	}
	if _, ok := h.Redo(current); ok {
		t.Error("redo on empty history should return false")
	}
}

func TestClear(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, defaults, "a"))
	h.Push(MakeSnapshot(nil, defaults, "b"))
	h.Undo(MakeSnapshot(nil, defaults, "current"))

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("after clear, should not be able to undo or redo")
	}
}

func TestSnapshotCopiesRooms(t *testing.T) {
	original := rooms(1)
	snap := MakeSnapshot(original, defaults, "test")

	original[0].Label = "Modified"
	original[0].Width = 99

	if snap.Rooms[0].Label != "Room" || snap.Rooms[0].Width != 3 {
		t.Error("snapshot should be independent of original slice")
	}
}

func TestCopyNilRooms(t *testing.T) {
	if snap := MakeSnapshot(nil, defaults, "nil test"); snap.Rooms != nil {
		t.Error("nil rooms should stay nil")
	}
}

func TestMultipleUndoRedo(t *testing.T) {
	h := NewHistory()
	h.Push(MakeSnapshot(nil, defaults, "empty"))
	h.Push(MakeSnapshot(rooms(1), defaults, "1 room"))
	h.Push(MakeSnapshot(rooms(2), defaults, "2 rooms"))

	s := MakeSnapshot(rooms(3), defaults, "3 rooms")
	for want := 2; want >= 0; want-- {
		var ok bool
		s, ok = h.Undo(s)
		if !ok || len(s.Rooms) != want {
			t.Fatalf("undo: expected %d rooms, got %d", want, len(s.Rooms))
		}
	}
	if h.CanUndo() {
		t.Error("should not be able to undo further")
	}

	for want := 1; want <= 3; want++ {
		var ok bool
		s, ok = h.Redo(s)
		if !ok || len(s.Rooms) != want {
			t.Fatalf("redo: expected %d rooms, got %d", want, len(s.Rooms))
		}
	}
	if h.CanRedo() {
		t.Error("should not be able to redo further")
	}
}
