package alts

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
)

type slotName struct {
	slot uint32
	form Form
}

// slotNames maps the hash of every "<form>_sNN" and "<form>_sNNN" folder name
// back to its slot. Two digits cover 1 to 99, three digits 100 to 999.
var slotNames = sync.OnceValue(func() map[hash40.Hash40]slotName {
	m := make(map[hash40.Hash40]slotName, 2*999)
	for slot := uint32(1); slot < 1000; slot++ {
		for _, form := range []Form{FormNormal, FormBattle} {
			m[AltFolder(form, slot)] = slotName{slot: slot, form: form}
		}
	}
	return m
})

// GuessSlot recognizes an alternate folder name by its hash.
func GuessSlot(name hash40.Hash40) (uint32, Form, bool) {
	// "normal_s01" and "battle_s01" are 10 bytes, three digit slots 11.
	if l := name.Len(); l != 10 && l != 11 {
		return 0, 0, false
	}
	s, ok := slotNames()[name]
	return s.slot, s.form, ok
}

var (
	uiReplace      = hash40.New("ui/replace/stage/")
	uiReplacePatch = hash40.New("ui/replace_patch/stage/")
	bntx           = hash40.New(".bntx")
)

func uiPath(kind int, name hash40.Hash40, slot uint32) hash40.Hash40 {
	dir := fmt.Sprintf("stage_%d/stage_%d_", kind, kind)
	if slot == 0 {
		return uiReplace.Concat(hash40.New(dir)).Concat(name).Concat(bntx)
	}
	return uiReplacePatch.Concat(hash40.New(dir)).Concat(name).Concat(hash40.New(fmt.Sprintf("_s%02d", slot))).Concat(bntx)
}

// DerivePaths computes the UI texture paths of record name at slot.
// Slot 0 is the original form.
func DerivePaths(name hash40.Hash40, slot uint32) DerivedPaths {
	return DerivedPaths{
		Normal: uiPath(2, name, slot),
		Battle: uiPath(3, name, slot),
		End:    uiPath(4, name, slot),
	}
}

// BuildCatalog scans the children of every record folder under root and
// collects the ones named like an alternate. Lists are sorted by slot.
func BuildCatalog(search *archive.Search, root hash40.Hash40) (Catalog, error) {
	catalog := make(Catalog)

	records, err := search.Children(root)
	if err != nil {
		return catalog, fmt.Errorf("failed to read stage root: %w", err)
	}

	var errs []error
	for _, ri := range records {
		record, err := search.EntryAt(ri)
		if err != nil || !record.Directory {
			continue
		}
		folder, err := search.LookupFolder(record.Path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		children, err := search.Children(record.Path)
		if err != nil {
			errs = append(errs, err)
		}
		for _, ci := range children {
			child, err := search.EntryAt(ci)
			if err != nil {
				continue
			}
			slot, form, ok := GuessSlot(child.FileName)
			if !ok {
				continue
			}
			key := RecordKey{Name: folder.Name, Form: form}
			catalog[key] = append(catalog[key], AlternateEntry{
				Slot:     slot,
				WifiSafe: true,
				Paths:    DerivePaths(folder.Name, slot),
			})
		}
	}

	for _, list := range catalog {
		slices.SortFunc(list, func(a, b AlternateEntry) int {
			return cmp.Compare(a.Slot, b.Slot)
		})
	}

	if len(errs) > 0 {
		return catalog, fmt.Errorf("catalog built with %d unreadable records: %w", len(errs), errs[0])
	}
	return catalog, nil
}
