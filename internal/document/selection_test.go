package document

import "testing"

func TestSelectionBounds(t *testing.T) {
	forward := NewSelection(2, 8)
	if forward.Start() != 2 || forward.End() != 8 {
		t.Errorf("forward selection bounds wrong: %d..%d", forward.Start(), forward.End())
	}

	backward := NewSelection(8, 2)
	if backward.Start() != 2 || backward.End() != 8 {
		t.Errorf("backward selection bounds wrong: %d..%d", backward.Start(), backward.End())
	}
	if backward.Anchor != 8 {
		t.Errorf("anchor should be preserved, got %d", backward.Anchor)
	}
}

func TestCursorSelection(t *testing.T) {
	sel := NewCursorSelection(42)
	if !sel.IsEmpty() {
		t.Error("cursor selection should be empty")
	}
	if sel.Anchor != 42 || sel.Head != 42 {
		t.Errorf("expected anchor and head at 42, got %v", sel)
	}
}

func TestSelectionSetOrder(t *testing.T) {
	ss := NewSelectionSetAt(10)
	ss.Add(NewCursorSelection(30))
	ss.Add(NewSelection(50, 55))

	all := ss.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 selections, got %d", len(all))
	}
	want := []Offset{10, 30, 50}
	for i, sel := range all {
		if sel.Anchor != want[i] {
			t.Errorf("selection %d: expected anchor %d, got %d", i, want[i], sel.Anchor)
		}
	}
	if !ss.IsMulti() {
		t.Error("expected multi-selection set")
	}
	if ss.Primary().Anchor != 10 {
		t.Errorf("primary should be first added, got %d", ss.Primary().Anchor)
	}
}

func TestSelectionSetFromSlice(t *testing.T) {
	if NewSelectionSetFromSlice(nil) != nil {
		t.Error("empty slice should produce nil set")
	}

	src := []Selection{NewCursorSelection(1), NewCursorSelection(2)}
	ss := NewSelectionSetFromSlice(src)
	src[0] = NewCursorSelection(99)

	if ss.Primary().Anchor != 1 {
		t.Error("set should not alias the source slice")
	}
}

func TestSelectionSetClamp(t *testing.T) {
	ss := NewSelectionSet(NewSelection(-4, 100))
	ss.Add(NewCursorSelection(5))
	ss.Clamp(10)

	all := ss.All()
	if all[0].Anchor != 0 || all[0].Head != 10 {
		t.Errorf("expected clamped selection [0->10], got %v", all[0])
	}
	if all[1].Anchor != 5 {
		t.Errorf("in-range selection should be unchanged, got %v", all[1])
	}
}
