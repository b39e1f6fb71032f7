package archive

import "errors"

var (
	// ErrMissing is returned when a hash or index has no entry in a table.
	ErrMissing = errors.New("archive: entry missing")
	// ErrInconsistent is returned when two tables disagree, such as an index
	// pointing outside its target table or a cyclic child chain.
	ErrInconsistent = errors.New("archive: tables inconsistent")
)
