// Package paths reconstructs readable component lists from path hashes.
package paths

import (
	"slices"
	"strings"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
)

// maxDepth bounds the parent walk on corrupted tables.
const maxDepth = 256

// Lookup resolves a path hash to its Search Index entry.
type Lookup interface {
	LookupPath(path hash40.Hash40) (archive.PathEntry, error)
}

// Resolver maps hashes back to the strings they were built from.
type Resolver interface {
	Resolve(h hash40.Hash40) (string, bool)
}

// PrettyPath is a path split into per-component hashes, root first.
type PrettyPath struct {
	components []hash40.Hash40
}

// New returns a PrettyPath made of components.
func New(components ...hash40.Hash40) PrettyPath {
	return PrettyPath{components: slices.Clone(components)}
}

// Pretty walks parent links from h up to the root folder, recording each
// entry's file name. When lookup is nil or h is unknown the result is [h].
func Pretty(lookup Lookup, h hash40.Hash40) PrettyPath {
	if lookup == nil {
		return New(h)
	}

	var components []hash40.Hash40
	current := h
	for range maxDepth {
		entry, err := lookup.LookupPath(current)
		if err != nil {
			break
		}
		components = append(components, entry.FileName)
		current = entry.Parent
		if current == hash40.Root {
			break
		}
	}
	if len(components) == 0 {
		return New(h)
	}
	slices.Reverse(components)
	return PrettyPath{components: components}
}

// Components returns a copy of the component list.
func (p PrettyPath) Components() []hash40.Hash40 {
	return slices.Clone(p.components)
}

// Len returns the number of components.
func (p PrettyPath) Len() int {
	return len(p.components)
}

// Last returns the final component, or 0 for an empty path.
func (p PrettyPath) Last() hash40.Hash40 {
	if len(p.components) == 0 {
		return 0
	}
	return p.components[len(p.components)-1]
}

// Contains reports whether any component equals c.
func (p PrettyPath) Contains(c hash40.Hash40) bool {
	return slices.Contains(p.components, c)
}

// Append returns a new path with c added at the end.
func (p PrettyPath) Append(c hash40.Hash40) PrettyPath {
	out := make([]hash40.Hash40, len(p.components), len(p.components)+1)
	copy(out, p.components)
	return PrettyPath{components: append(out, c)}
}

// SubRange joins the first n components with "/".
func (p PrettyPath) SubRange(n int) hash40.Hash40 {
	n = min(max(n, 0), len(p.components))
	var h hash40.Hash40
	for _, c := range p.components[:n] {
		h = h.Join(c)
	}
	return h
}

// Whole joins every component with "/".
func (p PrettyPath) Whole() hash40.Hash40 {
	return p.SubRange(len(p.components))
}

// Replace returns a copy with every component equal to search swapped for
// replace, and whether anything changed.
func (p PrettyPath) Replace(search, replace hash40.Hash40) (PrettyPath, bool) {
	out := slices.Clone(p.components)
	replaced := false
	for i, c := range out {
		if c == search {
			out[i] = replace
			replaced = true
		}
	}
	return PrettyPath{components: out}, replaced
}

// Format renders the path as "/a/b/c". Components the resolver does not know
// are printed as hex.
func (p PrettyPath) Format(names Resolver) string {
	var b strings.Builder
	for _, c := range p.components {
		b.WriteByte('/')
		if names != nil {
			if s, ok := names.Resolve(c); ok {
				b.WriteString(s)
				continue
			}
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// String renders the path without a resolver.
func (p PrettyPath) String() string {
	return p.Format(nil)
}
