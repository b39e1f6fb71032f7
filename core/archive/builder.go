package archive

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"stage-alts/core/hash40"
)

// ReadListing reads one archive path per line. Blank lines and lines starting
// with '#' are skipped.
func ReadListing(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read listing: %w", err)
	}
	return out, nil
}

// Build creates both index structures from a list of file paths.
//
// Every directory on the way to a file gets a directory record whose range
// covers all files below it, and a folder in the Search Index. File data
// indices start out equal to their file info position.
func Build(files []string) (*Archive, error) {
	files = normalizeListing(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("empty listing: %w", ErrMissing)
	}

	dirSet := make(map[string]struct{})
	for _, f := range files {
		for d := path.Dir(f); d != "."; d = path.Dir(d) {
			if _, ok := dirSet[d]; ok {
				break
			}
			dirSet[d] = struct{}{}
		}
	}
	for _, f := range files {
		if _, ok := dirSet[f]; ok {
			return nil, fmt.Errorf("%s is both a file and a directory: %w", f, ErrInconsistent)
		}
	}
	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}
	slices.Sort(dirs)

	dir, err := buildDirectory(files, dirs)
	if err != nil {
		return nil, err
	}
	search, err := buildSearch(files, dirs)
	if err != nil {
		return nil, err
	}
	return &Archive{Dir: dir, Search: search}, nil
}

func normalizeListing(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		f = strings.ToLower(strings.Trim(strings.TrimSpace(f), "/"))
		if f == "" {
			continue
		}
		out = append(out, path.Clean(f))
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func parentHash(p string) hash40.Hash40 {
	d := path.Dir(p)
	if d == "." {
		return hash40.Root
	}
	return hash40.New(d)
}

func extHash(p string) hash40.Hash40 {
	return hash40.New(strings.TrimPrefix(path.Ext(p), "."))
}

func buildDirectory(files, dirs []string) (*Directory, error) {
	paths := make([]FilePath, len(files))
	infos := make([]FileInfo, len(files))
	for i, f := range files {
		paths[i] = FilePath{
			Path:      hash40.New(f),
			Parent:    parentHash(f),
			FileName:  hash40.New(path.Base(f)),
			Ext:       extHash(f),
			DataIndex: uint32(i),
		}
		infos[i] = FileInfo{PathIndex: uint32(i), DataIndex: uint32(i)}
	}

	// files is sorted, so everything under a prefix is contiguous.
	records := make([]DirRecord, len(dirs))
	for i, d := range dirs {
		prefix := d + "/"
		start, _ := slices.BinarySearch(files, prefix)
		end := start
		for end < len(files) && strings.HasPrefix(files[end], prefix) {
			end++
		}
		records[i] = DirRecord{
			Path:      hash40.New(d),
			Name:      hash40.New(path.Base(d)),
			Parent:    parentHash(d),
			FileStart: uint32(start),
			FileCount: uint32(end - start),
		}
	}

	return NewDirectory(records, paths, infos, uint32(len(files)))
}

func buildSearch(files, dirs []string) (*Search, error) {
	type node struct {
		name string
		dir  bool
	}
	nodes := make([]node, 0, len(files)+len(dirs))
	for _, d := range dirs {
		nodes = append(nodes, node{name: d, dir: true})
	}
	for _, f := range files {
		nodes = append(nodes, node{name: f})
	}
	slices.SortFunc(nodes, func(a, b node) int {
		return cmp.Compare(a.name, b.name)
	})

	entries := make([]PathEntry, len(nodes))
	children := make(map[hash40.Hash40][]int)
	for i, n := range nodes {
		e := PathEntry{
			Path:      hash40.New(n.name),
			Parent:    parentHash(n.name),
			FileName:  hash40.New(path.Base(n.name)),
			Directory: n.dir,
		}
		if !n.dir {
			e.Ext = extHash(n.name)
		}
		entries[i] = e
		children[e.Parent] = append(children[e.Parent], i)
	}

	folders := make([]FolderEntry, 0, len(dirs)+1)
	folders = append(folders, FolderEntry{Path: hash40.Root, Parent: hash40.Root, Name: hash40.Root})
	for _, d := range dirs {
		folders = append(folders, FolderEntry{
			Path:   hash40.New(d),
			Parent: parentHash(d),
			Name:   hash40.New(path.Base(d)),
		})
	}

	search, err := NewSearch(folders, entries)
	if err != nil {
		return nil, err
	}

	for _, f := range folders {
		kids := children[f.Path]
		slices.SortFunc(kids, func(a, b int) int {
			return cmp.Compare(entries[a].Path, entries[b].Path)
		})
		if err := search.Relink(f.Path, kids); err != nil {
			return nil, err
		}
	}
	return search, nil
}
