package document

import "fmt"

// Selection represents a selected span of text.
// Anchor is where the selection started; Head is the current cursor
// position. When Anchor == Head, this represents a bare cursor.
// Selection is an immutable value type.
type Selection struct {
	Anchor Offset // Where selection started
	Head   Offset // Current cursor position
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Offset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(offset Offset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Offset {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Selection) End() Offset {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("[%d->%d]", s.Anchor, s.Head)
}

// SelectionSet is an ordered collection of selections.
// A set is never empty once constructed; order is preserved as given,
// matching the order the host reports selected ranges.
type SelectionSet struct {
	selections []Selection
}

// NewSelectionSet creates a set containing a single selection.
func NewSelectionSet(initial Selection) *SelectionSet {
	return &SelectionSet{selections: []Selection{initial}}
}

// NewSelectionSetAt creates a set with a single cursor at the offset.
func NewSelectionSetAt(offset Offset) *SelectionSet {
	return NewSelectionSet(NewCursorSelection(offset))
}

// NewSelectionSetFromSlice creates a set from a slice of selections.
// Returns nil if the slice is empty.
func NewSelectionSetFromSlice(selections []Selection) *SelectionSet {
	if len(selections) == 0 {
		return nil
	}
	out := make([]Selection, len(selections))
	copy(out, selections)
	return &SelectionSet{selections: out}
}

// Primary returns the first selection in the set.
func (ss *SelectionSet) Primary() Selection {
	return ss.selections[0]
}

// All returns a copy of all selections in order.
func (ss *SelectionSet) All() []Selection {
	out := make([]Selection, len(ss.selections))
	copy(out, ss.selections)
	return out
}

// Count returns the number of selections.
func (ss *SelectionSet) Count() int {
	return len(ss.selections)
}

// IsMulti returns true if the set holds more than one selection.
func (ss *SelectionSet) IsMulti() bool {
	return len(ss.selections) > 1
}

// Add appends a selection to the set.
func (ss *SelectionSet) Add(sel Selection) {
	ss.selections = append(ss.selections, sel)
}

// ForEach calls f for each selection in order.
func (ss *SelectionSet) ForEach(f func(index int, sel Selection)) {
	for i, sel := range ss.selections {
		f(i, sel)
	}
}

// Clamp restricts all selections to the range [0, maxOffset].
func (ss *SelectionSet) Clamp(maxOffset Offset) {
	for i, sel := range ss.selections {
		if sel.Anchor < 0 {
			sel.Anchor = 0
		}
		if sel.Anchor > maxOffset {
			sel.Anchor = maxOffset
		}
		if sel.Head < 0 {
			sel.Head = 0
		}
		if sel.Head > maxOffset {
			sel.Head = maxOffset
		}
		ss.selections[i] = sel
	}
}
