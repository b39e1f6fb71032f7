package archive

import (
	"fmt"

	"stage-alts/core/hash40"
)

// DirRecord is one directory of the Directory Table. It governs the file
// infos in [FileStart, FileStart+FileCount).
type DirRecord struct {
	Path      hash40.Hash40 `json:"path"`
	Name      hash40.Hash40 `json:"name"`
	Parent    hash40.Hash40 `json:"parent"`
	FileStart uint32        `json:"file_start"`
	FileCount uint32        `json:"file_count"`
}

// FilePath is one file path record. DataIndex mirrors the owning FileInfo.
type FilePath struct {
	Path      hash40.Hash40 `json:"path"`
	Parent    hash40.Hash40 `json:"parent"`
	FileName  hash40.Hash40 `json:"file_name"`
	Ext       hash40.Hash40 `json:"ext"`
	DataIndex uint32        `json:"data_index"`
}

// FileInfo links a file path to the data the game loads for it.
type FileInfo struct {
	PathIndex uint32 `json:"path_index"`
	DataIndex uint32 `json:"data_index"`
}

// Directory is the Directory Table plus its hash lookups.
type Directory struct {
	dirs      []DirRecord
	dirIndex  hashTable
	paths     []FilePath
	pathIndex hashTable
	infos     []FileInfo
	dataCount uint32
}

// NewDirectory validates the records and builds the hash lookups.
// dataCount is the number of data records valid data indices may address.
func NewDirectory(dirs []DirRecord, paths []FilePath, infos []FileInfo, dataCount uint32) (*Directory, error) {
	for _, d := range dirs {
		if uint64(d.FileStart)+uint64(d.FileCount) > uint64(len(infos)) {
			return nil, fmt.Errorf("directory %s range exceeds file infos: %w", d.Path, ErrInconsistent)
		}
	}
	for i, info := range infos {
		if int(info.PathIndex) >= len(paths) {
			return nil, fmt.Errorf("file info %d path index out of range: %w", i, ErrInconsistent)
		}
		if info.DataIndex >= dataCount {
			return nil, fmt.Errorf("file info %d data index out of range: %w", i, ErrInconsistent)
		}
	}

	dirEntries := make([]HashToIndex, len(dirs))
	for i, d := range dirs {
		dirEntries[i] = HashToIndex{Hash: d.Path, Index: uint32(i)}
	}
	dirIndex, err := newHashTable(dirEntries)
	if err != nil {
		return nil, fmt.Errorf("directory index: %w", err)
	}

	pathEntries := make([]HashToIndex, len(paths))
	for i, p := range paths {
		pathEntries[i] = HashToIndex{Hash: p.Path, Index: uint32(i)}
	}
	pathIndex, err := newHashTable(pathEntries)
	if err != nil {
		return nil, fmt.Errorf("file path index: %w", err)
	}

	return &Directory{
		dirs:      dirs,
		dirIndex:  dirIndex,
		paths:     paths,
		pathIndex: pathIndex,
		infos:     infos,
		dataCount: dataCount,
	}, nil
}

// LookupDir returns the directory record for path.
func (d *Directory) LookupDir(path hash40.Hash40) (DirRecord, error) {
	i, ok := d.dirIndex.get(path)
	if !ok {
		return DirRecord{}, fmt.Errorf("directory %s: %w", path, ErrMissing)
	}
	return d.dirs[i], nil
}

// FileInfoRange returns the file info indices governed by the directory at path.
func (d *Directory) FileInfoRange(path hash40.Hash40) ([]int, error) {
	rec, err := d.LookupDir(path)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, rec.FileCount)
	for i := rec.FileStart; i < rec.FileStart+rec.FileCount; i++ {
		out = append(out, int(i))
	}
	return out, nil
}

// FileInfoAt returns the file info at i.
func (d *Directory) FileInfoAt(i int) (FileInfo, error) {
	if i < 0 || i >= len(d.infos) {
		return FileInfo{}, fmt.Errorf("file info %d: %w", i, ErrMissing)
	}
	return d.infos[i], nil
}

// FilePathAt returns the file path record at i.
func (d *Directory) FilePathAt(i int) (FilePath, error) {
	if i < 0 || i >= len(d.paths) {
		return FilePath{}, fmt.Errorf("file path %d: %w", i, ErrMissing)
	}
	return d.paths[i], nil
}

// FilePathIndex returns the position of the file path record for path.
func (d *Directory) FilePathIndex(path hash40.Hash40) (int, error) {
	i, ok := d.pathIndex.get(path)
	if !ok {
		return 0, fmt.Errorf("file path %s: %w", path, ErrMissing)
	}
	return int(i), nil
}

// DataIndexOf returns the live data index of the file at path.
func (d *Directory) DataIndexOf(path hash40.Hash40) (uint32, error) {
	i, err := d.FilePathIndex(path)
	if err != nil {
		return 0, err
	}
	return d.paths[i].DataIndex, nil
}

// SetRedirect points file info infoIdx, and the file path it owns, at data.
// It is the only write into the Directory Table.
func (d *Directory) SetRedirect(infoIdx int, data uint32) error {
	if infoIdx < 0 || infoIdx >= len(d.infos) {
		return fmt.Errorf("file info %d out of range: %w", infoIdx, ErrInconsistent)
	}
	if data >= d.dataCount {
		return fmt.Errorf("data index %d out of range: %w", data, ErrInconsistent)
	}
	info := &d.infos[infoIdx]
	if int(info.PathIndex) >= len(d.paths) {
		return fmt.Errorf("file info %d path index out of range: %w", infoIdx, ErrInconsistent)
	}
	info.DataIndex = data
	d.paths[info.PathIndex].DataIndex = data
	return nil
}

// Snapshot returns the live data index of every file path.
func (d *Directory) Snapshot() map[hash40.Hash40]uint32 {
	out := make(map[hash40.Hash40]uint32, len(d.paths))
	for _, p := range d.paths {
		out[p.Path] = p.DataIndex
	}
	return out
}

// Len returns the number of file paths.
func (d *Directory) Len() int {
	return len(d.paths)
}
