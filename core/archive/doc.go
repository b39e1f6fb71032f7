// Package archive holds the two index structures of a loaded content archive
// and the bounds-checked accessors used to read and rewrite them.
//
// # Directory Table
//
// A flat array of directory records. Each record owns a contiguous range of
// file infos, and every file info points at a file path and at the data index
// the game actually loads. Redirecting a file means overwriting that data
// index through SetRedirect, which validates both sides of the write.
//
// # Search Index
//
// A hash keyed tree used by the generic path resolver. Folders point at their
// first child, children point at their next sibling, and a separate hash to
// slot table decides which entry a path hash resolves to. Redirecting a path
// means pointing its slot at the alternate's slot through SetPathSlot.
//
// # Building
//
// Build creates both structures from a plain file listing so the engine can be
// exercised without the host process. Children are linked in hash order, the
// same effectively random order the host loader produces.
//
// # Usage
//
//	arc, err := archive.Build([]string{"stage/battlefield/normal/model.nutexb"})
//	rec, err := arc.Dir.LookupDir(hash40.New("stage/battlefield"))
package archive
