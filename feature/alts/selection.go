package alts

import "fmt"

// Selection is one entry of a selection group: a record and the alternate
// index chosen for it. Index 0 is the original form, index N the N-th
// alternate of the record's catalog list.
type Selection struct {
	Key   RecordKey `json:"key"`
	Index int       `json:"index"`
}

// SelectionSet is a group of one to three selections played in rotation.
type SelectionSet struct {
	entries []Selection
	cursor  int
}

// NewSelectionSet validates the group size and starts the rotation at the
// first entry.
func NewSelectionSet(first Selection, rest ...Selection) (*SelectionSet, error) {
	if len(rest) > 2 {
		return nil, fmt.Errorf("%d selections: %w", len(rest)+1, ErrUnsupported)
	}
	entries := make([]Selection, 0, len(rest)+1)
	entries = append(entries, first)
	entries = append(entries, rest...)
	return &SelectionSet{entries: entries}, nil
}

// Next returns the entry under the cursor and moves the cursor on.
func (s *SelectionSet) Next() Selection {
	sel := s.entries[s.cursor%len(s.entries)]
	s.cursor++
	return sel
}

// Len returns the number of entries in the group.
func (s *SelectionSet) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the group.
func (s *SelectionSet) Entries() []Selection {
	out := make([]Selection, len(s.entries))
	copy(out, s.entries)
	return out
}

// Cursor returns the number of entries consumed so far.
func (s *SelectionSet) Cursor() int {
	return s.cursor
}

// set replaces entry position.
func (s *SelectionSet) set(position int, sel Selection) error {
	if position < 0 || position >= len(s.entries) {
		return fmt.Errorf("selection position %d of %d: %w", position, len(s.entries), ErrOutOfRange)
	}
	s.entries[position] = sel
	return nil
}
