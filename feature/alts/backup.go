package alts

import (
	"stage-alts/core/archive"
	"stage-alts/core/hash40"
)

// BackupTable maps a path hash to its original index value.
type BackupTable map[hash40.Hash40]uint32

// Backups holds the original indices of both tables.
type Backups struct {
	Dir    BackupTable
	Search BackupTable
}

// Snapshot copies the live indices of arc. It must run before the first patch.
func Snapshot(arc *archive.Archive) Backups {
	return Backups{
		Dir:    arc.Dir.Snapshot(),
		Search: arc.Search.Snapshot(),
	}
}
