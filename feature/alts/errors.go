package alts

import "errors"

var (
	// ErrOutOfRange is returned when a selection points past a record's alternates.
	ErrOutOfRange = errors.New("alts: alternate index out of range")
	// ErrUnsupported is returned for selection groups that are not 1 to 3 entries long.
	ErrUnsupported = errors.New("alts: unsupported selection size")
	// ErrNoMarker is returned when a path has neither a "normal" nor a "battle" component.
	ErrNoMarker = errors.New("alts: path has no form marker")
	// ErrNotInitialized is returned when the manager is used before Initialize.
	ErrNotInitialized = errors.New("alts: manager not initialized")
)
