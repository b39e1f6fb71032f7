package names

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"stage-alts/core/hash40"
)

// Table is a read only hash to string map. A nil *Table resolves nothing.
type Table struct {
	m map[hash40.Hash40]string
}

// New returns a table holding the given strings.
func New(values ...string) *Table {
	t := &Table{m: make(map[hash40.Hash40]string, len(values))}
	for _, v := range values {
		t.add(v)
	}
	return t
}

// Parse reads one string per line. Surrounding whitespace is trimmed and empty
// lines are skipped.
func Parse(r io.Reader) (*Table, error) {
	t := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		t.add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hash names: %w", err)
	}
	return t, nil
}

func (t *Table) add(s string) {
	t.m[hash40.New(s)] = s
}

// Resolve returns the string behind h.
func (t *Table) Resolve(h hash40.Hash40) (string, bool) {
	if t == nil {
		return "", false
	}
	s, ok := t.m[h]
	return s, ok
}

// Len returns the number of known strings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.m)
}
