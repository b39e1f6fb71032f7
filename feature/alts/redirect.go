package alts

import (
	"fmt"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
	"stage-alts/core/metrics"
	"stage-alts/core/paths"

	"go.uber.org/zap"
)

// Engine patches and restores the index entries of a directory.
//
// The engine never holds on to the archive; every call borrows the tables it
// rewrites. Callers must not run two calls over overlapping subtrees at once.
type Engine struct {
	backups Backups
	logger  *zap.Logger
	names   paths.Resolver
	metrics *metrics.Metrics
}

// NewEngine creates an engine restoring to backups.
func NewEngine(backups Backups, logger *zap.Logger, names paths.Resolver, m *metrics.Metrics) *Engine {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Engine{backups: backups, logger: logger, names: names, metrics: m}
}

func (e *Engine) pretty(lookup paths.Lookup, h hash40.Hash40) string {
	return paths.Pretty(lookup, h).Format(e.names)
}

func (e *Engine) record(r Report) {
	e.metrics.Writes.WithLabelValues(string(r.Table), string(r.Op)).Add(float64(r.Applied))
	e.metrics.Failures.WithLabelValues(string(r.Table), string(r.Op)).Add(float64(len(r.Failures)))
}

// RestoreDirectory resets every file governed by the directory at path to its
// backed up data index.
func (e *Engine) RestoreDirectory(arc *archive.Archive, path hash40.Hash40) Report {
	r := Report{Table: TableDirectory, Op: OpRestore, Path: path}
	defer func() { e.record(r) }()

	infos, err := arc.Dir.FileInfoRange(path)
	if err != nil {
		e.logger.Error("Failed to find directory", zap.String("path", e.pretty(arc.Search, path)), zap.Error(err))
		r.fail(path, err)
		return r
	}

	for _, i := range infos {
		info, err := arc.Dir.FileInfoAt(i)
		if err != nil {
			r.fail(path, err)
			continue
		}
		fp, err := arc.Dir.FilePathAt(int(info.PathIndex))
		if err != nil {
			r.fail(path, err)
			continue
		}

		orig, ok := e.backups.Dir[fp.Path]
		if !ok {
			e.logger.Error("No backup for file path", zap.String("path", e.pretty(arc.Search, fp.Path)))
			r.fail(fp.Path, fmt.Errorf("no directory backup: %w", archive.ErrInconsistent))
			continue
		}
		if err := arc.Dir.SetRedirect(i, orig); err != nil {
			r.fail(fp.Path, err)
			continue
		}
		r.Applied++
	}
	return r
}

// PatchDirectory points every file governed by the directory at path at the
// data of the matching file in alternate alt.
func (e *Engine) PatchDirectory(arc *archive.Archive, path hash40.Hash40, alt uint32) Report {
	r := Report{Table: TableDirectory, Op: OpPatch, Path: path, Alt: alt}
	defer func() { e.record(r) }()

	infos, err := arc.Dir.FileInfoRange(path)
	if err != nil {
		e.logger.Error("Failed to find directory", zap.String("path", e.pretty(arc.Search, path)), zap.Error(err))
		r.fail(path, err)
		return r
	}

	for _, i := range infos {
		info, err := arc.Dir.FileInfoAt(i)
		if err != nil {
			r.fail(path, err)
			continue
		}
		fp, err := arc.Dir.FilePathAt(int(info.PathIndex))
		if err != nil {
			r.fail(path, err)
			continue
		}

		pretty := paths.Pretty(arc.Search, fp.Path)
		sub, ok := SubstitutionFor(pretty, alt)
		if !ok {
			e.logger.Warn("Path has no form marker", zap.String("path", pretty.Format(e.names)))
			r.fail(fp.Path, ErrNoMarker)
			continue
		}
		altPretty, _ := sub.Apply(pretty)

		data, err := arc.Dir.DataIndexOf(altPretty.Whole())
		if err != nil {
			e.logger.Warn("Alternate file missing", zap.String("path", altPretty.Format(e.names)))
			r.fail(fp.Path, err)
			continue
		}
		if err := arc.Dir.SetRedirect(i, data); err != nil {
			r.fail(fp.Path, err)
			continue
		}
		e.logger.Debug("Redirected file", zap.String("path", pretty.Format(e.names)), zap.Uint32("data", data))
		r.Applied++
	}
	return r
}

// RestoreSearch resets the slot of every entry below the folder at path,
// recursing into child directories.
func (e *Engine) RestoreSearch(search *archive.Search, path hash40.Hash40) Report {
	r := Report{Table: TableSearch, Op: OpRestore, Path: path}
	defer func() { e.record(r) }()

	e.restoreSearch(search, path, &r)
	return r
}

func (e *Engine) restoreSearch(search *archive.Search, folder hash40.Hash40, r *Report) {
	children, err := search.Children(folder)
	if err != nil {
		e.logger.Error("Failed to walk search folder", zap.String("path", e.pretty(search, folder)), zap.Error(err))
		r.fail(folder, err)
		if len(children) == 0 {
			return
		}
	}

	for _, ci := range children {
		entry, err := search.EntryAt(ci)
		if err != nil {
			r.fail(folder, err)
			continue
		}

		if orig, ok := e.backups.Search[entry.Path]; !ok {
			e.logger.Error("No backup for search path", zap.String("path", e.pretty(search, entry.Path)))
			r.fail(entry.Path, fmt.Errorf("no search backup: %w", archive.ErrInconsistent))
		} else if err := search.SetPathSlot(entry.Path, orig); err != nil {
			r.fail(entry.Path, err)
		} else {
			r.Applied++
		}

		if entry.Directory {
			e.restoreSearch(search, entry.Path, r)
		}
	}
}

// PatchSearch points the slot of every entry below the folder at path at the
// matching entry of alternate alt, recursing into child directories.
//
// Component lists are carried down the walk instead of being rebuilt from the
// index, so entries redirected earlier in the walk never change how later
// entries are substituted.
func (e *Engine) PatchSearch(search *archive.Search, path hash40.Hash40, alt uint32) Report {
	r := Report{Table: TableSearch, Op: OpPatch, Path: path, Alt: alt}
	defer func() { e.record(r) }()

	e.patchSearch(search, path, paths.Pretty(search, path), alt, &r)
	return r
}

func (e *Engine) patchSearch(search *archive.Search, folder hash40.Hash40, base paths.PrettyPath, alt uint32, r *Report) {
	children, err := search.Children(folder)
	if err != nil {
		e.logger.Error("Failed to walk search folder", zap.String("path", base.Format(e.names)), zap.Error(err))
		r.fail(folder, err)
		if len(children) == 0 {
			return
		}
	}

	for _, ci := range children {
		entry, err := search.EntryAt(ci)
		if err != nil {
			r.fail(folder, err)
			continue
		}
		components := base.Append(entry.FileName)

		if sub, ok := SubstitutionFor(components, alt); !ok {
			e.logger.Warn("Path has no form marker", zap.String("path", components.Format(e.names)))
			r.fail(entry.Path, ErrNoMarker)
		} else {
			altPretty, _ := sub.Apply(components)
			if slot, err := search.PathSlot(altPretty.Whole()); err != nil {
				e.logger.Warn("Alternate search path missing", zap.String("path", altPretty.Format(e.names)))
				r.fail(entry.Path, err)
			} else if err := search.SetPathSlot(entry.Path, slot); err != nil {
				r.fail(entry.Path, err)
			} else {
				r.Applied++
			}
		}

		if entry.Directory {
			e.patchSearch(search, entry.Path, components, alt, r)
		}
	}
}

// CollectFiles returns the file path indices of every file below the folder
// that path resolves to under alternate alt. Alt 0 collects path itself.
func (e *Engine) CollectFiles(arc *archive.Archive, path hash40.Hash40, alt uint32) ([]int, error) {
	folder := path
	if alt != 0 {
		pretty := paths.Pretty(arc.Search, path)
		sub, ok := SubstitutionFor(pretty, alt)
		if !ok {
			return nil, fmt.Errorf("collect %s: %w", pretty.Format(e.names), ErrNoMarker)
		}
		altPretty, _ := sub.Apply(pretty)
		folder = altPretty.Whole()
	}

	var files []int
	if err := e.collect(arc, folder, &files); err != nil {
		return files, err
	}
	return files, nil
}

func (e *Engine) collect(arc *archive.Archive, folder hash40.Hash40, files *[]int) error {
	children, err := arc.Search.Children(folder)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	for _, ci := range children {
		entry, err := arc.Search.EntryAt(ci)
		if err != nil {
			continue
		}
		if entry.Directory {
			if err := e.collect(arc, entry.Path, files); err != nil {
				return err
			}
			continue
		}
		i, err := arc.Dir.FilePathIndex(entry.Path)
		if err != nil {
			e.logger.Error("Failed to find file path while collecting", zap.String("path", e.pretty(arc.Search, entry.Path)))
			continue
		}
		*files = append(*files, i)
	}
	return nil
}
