package archive

import (
	"cmp"
	"fmt"
	"slices"

	"stage-alts/core/hash40"
)

// HashToIndex maps a path hash to a position in another table.
type HashToIndex struct {
	Hash  hash40.Hash40
	Index uint32
}

// hashTable is kept sorted by hash so lookups are binary searches.
type hashTable []HashToIndex

func newHashTable(entries []HashToIndex) (hashTable, error) {
	t := slices.Clone(entries)
	slices.SortFunc(t, func(a, b HashToIndex) int {
		return cmp.Compare(a.Hash, b.Hash)
	})
	for i := 1; i < len(t); i++ {
		if t[i].Hash == t[i-1].Hash {
			return nil, fmt.Errorf("duplicate hash %s: %w", t[i].Hash, ErrInconsistent)
		}
	}
	return t, nil
}

func (t hashTable) find(h hash40.Hash40) (int, bool) {
	return slices.BinarySearchFunc(t, h, func(e HashToIndex, target hash40.Hash40) int {
		return cmp.Compare(e.Hash, target)
	})
}

func (t hashTable) get(h hash40.Hash40) (uint32, bool) {
	i, ok := t.find(h)
	if !ok {
		return 0, false
	}
	return t[i].Index, true
}
