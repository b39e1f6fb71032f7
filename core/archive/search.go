package archive

import (
	"fmt"

	"stage-alts/core/hash40"
)

// FolderEntry is a folder of the Search Index.
type FolderEntry struct {
	Path       hash40.Hash40 `json:"path"`
	Parent     hash40.Hash40 `json:"parent"`
	Name       hash40.Hash40 `json:"name"`
	FirstChild Link          `json:"-"`
}

// PathEntry is a file or directory of the Search Index.
type PathEntry struct {
	Path      hash40.Hash40 `json:"path"`
	Parent    hash40.Hash40 `json:"parent"`
	FileName  hash40.Hash40 `json:"file_name"`
	Ext       hash40.Hash40 `json:"ext"`
	Directory bool          `json:"directory"`
	Next      Link          `json:"-"`
}

// Search is the Search Index.
//
// A path hash resolves in two steps: pathIndex gives a slot, and listIndices
// maps the slot to a position in entries. Redirecting a path rewrites its slot.
type Search struct {
	folders     []FolderEntry
	folderIndex hashTable
	entries     []PathEntry
	pathIndex   hashTable
	listIndices []uint32
}

// NewSearch builds the hash lookups. Entry i starts out in slot i.
func NewSearch(folders []FolderEntry, entries []PathEntry) (*Search, error) {
	folderEntries := make([]HashToIndex, len(folders))
	for i, f := range folders {
		folderEntries[i] = HashToIndex{Hash: f.Path, Index: uint32(i)}
	}
	folderIndex, err := newHashTable(folderEntries)
	if err != nil {
		return nil, fmt.Errorf("folder index: %w", err)
	}

	pathEntries := make([]HashToIndex, len(entries))
	listIndices := make([]uint32, len(entries))
	for i, e := range entries {
		pathEntries[i] = HashToIndex{Hash: e.Path, Index: uint32(i)}
		listIndices[i] = uint32(i)
	}
	pathIndex, err := newHashTable(pathEntries)
	if err != nil {
		return nil, fmt.Errorf("path index: %w", err)
	}

	return &Search{
		folders:     folders,
		folderIndex: folderIndex,
		entries:     entries,
		pathIndex:   pathIndex,
		listIndices: listIndices,
	}, nil
}

// LookupFolder returns the folder entry for path.
func (s *Search) LookupFolder(path hash40.Hash40) (FolderEntry, error) {
	i, ok := s.folderIndex.get(path)
	if !ok {
		return FolderEntry{}, fmt.Errorf("folder %s: %w", path, ErrMissing)
	}
	return s.folders[i], nil
}

// PathSlot returns the slot path currently resolves through.
func (s *Search) PathSlot(path hash40.Hash40) (uint32, error) {
	slot, ok := s.pathIndex.get(path)
	if !ok {
		return 0, fmt.Errorf("path %s: %w", path, ErrMissing)
	}
	return slot, nil
}

// LookupPath resolves path to its entry, following any redirect.
func (s *Search) LookupPath(path hash40.Hash40) (PathEntry, error) {
	slot, err := s.PathSlot(path)
	if err != nil {
		return PathEntry{}, err
	}
	i, err := s.slotEntry(slot)
	if err != nil {
		return PathEntry{}, fmt.Errorf("path %s: %w", path, err)
	}
	return s.entries[i], nil
}

// SetPathSlot makes path resolve through slot. It is the only write into the
// hash to slot table.
func (s *Search) SetPathSlot(path hash40.Hash40, slot uint32) error {
	i, ok := s.pathIndex.find(path)
	if !ok {
		return fmt.Errorf("path %s: %w", path, ErrMissing)
	}
	if _, err := s.slotEntry(slot); err != nil {
		return fmt.Errorf("path %s: %w", path, err)
	}
	s.pathIndex[i].Index = slot
	return nil
}

func (s *Search) slotEntry(slot uint32) (int, error) {
	if int(slot) >= len(s.listIndices) {
		return 0, fmt.Errorf("slot %d out of range: %w", slot, ErrInconsistent)
	}
	i := s.listIndices[slot]
	if int(i) >= len(s.entries) {
		return 0, fmt.Errorf("slot %d points outside the path list: %w", slot, ErrInconsistent)
	}
	return int(i), nil
}

// EntryAtSlot returns the entry slot points at.
func (s *Search) EntryAtSlot(slot uint32) (PathEntry, error) {
	i, err := s.slotEntry(slot)
	if err != nil {
		return PathEntry{}, err
	}
	return s.entries[i], nil
}

// EntryAt returns the path entry at position i of the path list.
func (s *Search) EntryAt(i int) (PathEntry, error) {
	if i < 0 || i >= len(s.entries) {
		return PathEntry{}, fmt.Errorf("path entry %d: %w", i, ErrMissing)
	}
	return s.entries[i], nil
}

// Children returns the path list positions of folder's children in chain order.
func (s *Search) Children(folder hash40.Hash40) ([]int, error) {
	f, err := s.LookupFolder(folder)
	if err != nil {
		return nil, err
	}

	var out []int
	seen := make(map[int]struct{})
	link := f.FirstChild
	for {
		i, ok := link.Index()
		if !ok {
			return out, nil
		}
		if i >= len(s.entries) {
			return out, fmt.Errorf("folder %s links outside the path list: %w", folder, ErrInconsistent)
		}
		if _, dup := seen[i]; dup {
			return out, fmt.Errorf("folder %s child chain loops: %w", folder, ErrInconsistent)
		}
		seen[i] = struct{}{}
		out = append(out, i)
		link = s.entries[i].Next
	}
}

// Relink rewrites folder's child chain to visit order, ending with NoLink.
func (s *Search) Relink(folder hash40.Hash40, order []int) error {
	fi, ok := s.folderIndex.get(folder)
	if !ok {
		return fmt.Errorf("folder %s: %w", folder, ErrMissing)
	}
	seen := make(map[int]struct{}, len(order))
	for _, i := range order {
		if i < 0 || i >= len(s.entries) {
			return fmt.Errorf("folder %s relink to entry %d: %w", folder, i, ErrInconsistent)
		}
		if _, dup := seen[i]; dup {
			return fmt.Errorf("folder %s relinks entry %d twice: %w", folder, i, ErrInconsistent)
		}
		seen[i] = struct{}{}
	}

	if len(order) == 0 {
		s.folders[fi].FirstChild = NoLink
		return nil
	}
	s.folders[fi].FirstChild = LinkTo(order[0])
	for n, i := range order {
		next := NoLink
		if n+1 < len(order) {
			next = LinkTo(order[n+1])
		}
		s.entries[i].Next = next
	}
	return nil
}

// Snapshot returns the live slot of every path hash.
func (s *Search) Snapshot() map[hash40.Hash40]uint32 {
	out := make(map[hash40.Hash40]uint32, len(s.pathIndex))
	for _, e := range s.pathIndex {
		out[e.Hash] = e.Index
	}
	return out
}

// Folders returns the path of every folder in table order.
func (s *Search) Folders() []hash40.Hash40 {
	out := make([]hash40.Hash40, len(s.folders))
	for i, f := range s.folders {
		out[i] = f.Path
	}
	return out
}

// IsDescendantOf reports whether ancestor appears on path's parent chain.
func (s *Search) IsDescendantOf(path, ancestor hash40.Hash40) bool {
	entry, err := s.LookupPath(path)
	if err != nil {
		return false
	}
	// A chain can be no longer than the table.
	for range len(s.entries) + 1 {
		if entry.Parent == ancestor {
			return true
		}
		entry, err = s.LookupPath(entry.Parent)
		if err != nil {
			return false
		}
	}
	return false
}

// Len returns the number of path entries.
func (s *Search) Len() int {
	return len(s.entries)
}
