package alts

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
	"stage-alts/core/paths"
)

type orderKey struct {
	pos      int
	dir      bool
	resolved bool
	name     string
	hash     hash40.Hash40
}

// compareOrder puts directories before files. Within a group, names known to
// the resolver come first in string order, then unknown ones by hash.
func compareOrder(a, b orderKey) int {
	if a.dir != b.dir {
		if a.dir {
			return -1
		}
		return 1
	}
	if a.resolved != b.resolved {
		if a.resolved {
			return -1
		}
		return 1
	}
	if a.resolved {
		if c := strings.Compare(a.name, b.name); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.hash, b.hash); c != 0 {
		return c
	}
	return cmp.Compare(a.pos, b.pos)
}

// SortFolderContents relinks the children of folder, and of every folder below
// it, into canonical order. Child folders are sorted before their parent is
// relinked. It returns the number of folders relinked.
func SortFolderContents(search *archive.Search, names paths.Resolver, folder hash40.Hash40) (int, error) {
	var errs []error
	n := sortFolder(search, names, folder, &errs, 0)
	return n, errors.Join(errs...)
}

func sortFolder(search *archive.Search, names paths.Resolver, folder hash40.Hash40, errs *[]error, depth int) int {
	if depth > 256 {
		*errs = append(*errs, fmt.Errorf("folder %s nested too deep: %w", folder, archive.ErrInconsistent))
		return 0
	}

	children, err := search.Children(folder)
	if err != nil {
		*errs = append(*errs, err)
		return 0
	}

	relinked := 0
	keys := make([]orderKey, 0, len(children))
	for _, ci := range children {
		entry, err := search.EntryAt(ci)
		if err != nil {
			*errs = append(*errs, err)
			continue
		}
		key := orderKey{pos: ci, dir: entry.Directory, hash: entry.FileName}
		if names != nil {
			key.name, key.resolved = names.Resolve(entry.FileName)
		}
		keys = append(keys, key)

		if entry.Directory {
			relinked += sortFolder(search, names, entry.Path, errs, depth+1)
		}
	}

	slices.SortFunc(keys, compareOrder)
	order := make([]int, len(keys))
	for i, k := range keys {
		order[i] = k.pos
	}
	if err := search.Relink(folder, order); err != nil {
		*errs = append(*errs, err)
		return relinked
	}
	return relinked + 1
}

// IsSorted reports whether folder's direct children are already in canonical order.
func IsSorted(search *archive.Search, names paths.Resolver, folder hash40.Hash40) (bool, error) {
	children, err := search.Children(folder)
	if err != nil {
		return false, err
	}
	keys := make([]orderKey, 0, len(children))
	for _, ci := range children {
		entry, err := search.EntryAt(ci)
		if err != nil {
			return false, err
		}
		key := orderKey{pos: ci, dir: entry.Directory, hash: entry.FileName}
		if names != nil {
			key.name, key.resolved = names.Resolve(entry.FileName)
		}
		keys = append(keys, key)
	}
	return slices.IsSortedFunc(keys, func(a, b orderKey) int {
		// Position only breaks exact ties, so it must not decide sortedness.
		a.pos, b.pos = 0, 0
		return compareOrder(a, b)
	}), nil
}
