package alts

import (
	"encoding/json"
	"errors"
	"fmt"

	"stage-alts/core/hash40"
)

// Table names the structure a report covers.
type Table string

const (
	TableDirectory Table = "directory"
	TableSearch    Table = "search"
)

// Op names the operation a report covers.
type Op string

const (
	OpPatch   Op = "patch"
	OpRestore Op = "restore"
)

// FileError is a failure confined to one file.
type FileError struct {
	Path hash40.Hash40
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the failure as its path and message.
func (e FileError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path  hash40.Hash40 `json:"path"`
		Error string        `json:"error"`
	}{e.Path, e.Err.Error()})
}

// Report describes one patch or restore call. Failures never stop the walk.
type Report struct {
	Table    Table         `json:"table"`
	Op       Op            `json:"op"`
	Path     hash40.Hash40 `json:"path"`
	Alt      uint32        `json:"alt,omitempty"`
	Applied  int           `json:"applied"`
	Failures []FileError   `json:"failures,omitempty"`
}

func (r *Report) fail(path hash40.Hash40, err error) {
	r.Failures = append(r.Failures, FileError{Path: path, Err: err})
}

// Err joins every failure, or returns nil.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// FailedPaths returns the path of every failure.
func (r Report) FailedPaths() []hash40.Hash40 {
	out := make([]hash40.Hash40, len(r.Failures))
	for i, f := range r.Failures {
		out[i] = f.Path
	}
	return out
}
