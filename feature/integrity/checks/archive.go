package checks

import (
	"cmp"
	"slices"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
	"stage-alts/core/paths"
	"stage-alts/feature/alts"
)

// BackupReport lists the entries below the stage root that have no backup.
type BackupReport struct {
	Files         int      `json:"files"`
	SearchEntries int      `json:"search_entries"`
	MissingDir    []string `json:"missing_directory"`
	MissingSearch []string `json:"missing_search"`
	Complete      bool     `json:"complete"`
}

// CheckBackups verifies that every file below root has a Directory Table
// backup and every search entry below root a Search Index backup.
func CheckBackups(arc *archive.Archive, backups alts.Backups, root hash40.Hash40, names paths.Resolver) (*BackupReport, error) {
	report := &BackupReport{MissingDir: []string{}, MissingSearch: []string{}}

	infos, err := arc.Dir.FileInfoRange(root)
	if err != nil {
		return nil, err
	}
	for _, i := range infos {
		info, err := arc.Dir.FileInfoAt(i)
		if err != nil {
			return nil, err
		}
		fp, err := arc.Dir.FilePathAt(int(info.PathIndex))
		if err != nil {
			return nil, err
		}
		report.Files++
		if _, ok := backups.Dir[fp.Path]; !ok {
			report.MissingDir = append(report.MissingDir, paths.Pretty(arc.Search, fp.Path).Format(names))
		}
	}

	err = walkSearch(arc.Search, root, func(e archive.PathEntry) {
		report.SearchEntries++
		if _, ok := backups.Search[e.Path]; !ok {
			report.MissingSearch = append(report.MissingSearch, paths.Pretty(arc.Search, e.Path).Format(names))
		}
	})
	if err != nil {
		return nil, err
	}

	report.Complete = len(report.MissingDir) == 0 && len(report.MissingSearch) == 0
	return report, nil
}

// Redirect is one index entry that no longer holds its backed up value.
type Redirect struct {
	Table    alts.Table `json:"table"`
	Path     string     `json:"path"`
	Original uint32     `json:"original"`
	Current  uint32     `json:"current"`
}

// originalLookup resolves paths through their backed up slots, so redirected
// entries are named by where they live rather than where they point.
type originalLookup struct {
	search *archive.Search
	slots  alts.BackupTable
}

func (l originalLookup) LookupPath(path hash40.Hash40) (archive.PathEntry, error) {
	if slot, ok := l.slots[path]; ok {
		return l.search.EntryAtSlot(slot)
	}
	return l.search.LookupPath(path)
}

// CheckRedirects lists every entry whose live value differs from its backup.
// The result is sorted by table, then path.
func CheckRedirects(arc *archive.Archive, backups alts.Backups, names paths.Resolver) []Redirect {
	lookup := originalLookup{search: arc.Search, slots: backups.Search}
	out := []Redirect{}
	collect := func(table alts.Table, live map[hash40.Hash40]uint32, orig alts.BackupTable) {
		for h, cur := range live {
			if o, ok := orig[h]; ok && o != cur {
				out = append(out, Redirect{
					Table:    table,
					Path:     paths.Pretty(lookup, h).Format(names),
					Original: o,
					Current:  cur,
				})
			}
		}
	}
	collect(alts.TableDirectory, arc.Dir.Snapshot(), backups.Dir)
	collect(alts.TableSearch, arc.Search.Snapshot(), backups.Search)

	slices.SortFunc(out, func(a, b Redirect) int {
		if c := cmp.Compare(a.Table, b.Table); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return out
}

// CheckOrdering returns every folder below root, root included, whose child
// chain is not in canonical order.
func CheckOrdering(search *archive.Search, root hash40.Hash40, names paths.Resolver) ([]string, error) {
	unsorted := []string{}
	check := func(folder hash40.Hash40) error {
		ok, err := alts.IsSorted(search, names, folder)
		if err != nil {
			return err
		}
		if !ok {
			unsorted = append(unsorted, paths.Pretty(search, folder).Format(names))
		}
		return nil
	}

	if err := check(root); err != nil {
		return nil, err
	}
	var walkErr error
	err := walkSearch(search, root, func(e archive.PathEntry) {
		if e.Directory && walkErr == nil {
			walkErr = check(e.Path)
		}
	})
	if err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}
	return unsorted, nil
}

// walkSearch visits every entry below folder, parents before children.
func walkSearch(search *archive.Search, folder hash40.Hash40, visit func(archive.PathEntry)) error {
	children, err := search.Children(folder)
	if err != nil {
		return err
	}
	for _, ci := range children {
		e, err := search.EntryAt(ci)
		if err != nil {
			return err
		}
		visit(e)
		if e.Directory {
			if err := walkSearch(search, e.Path, visit); err != nil {
				return err
			}
		}
	}
	return nil
}
