package names

import (
	"context"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/singleflight"
)

// OpenFunc opens the named table source.
type OpenFunc func(ctx context.Context, name string) (io.ReadCloser, error)

// Loader builds the table on first use and shares it afterwards.
type Loader struct {
	cfg  Config
	open OpenFunc

	mu    sync.RWMutex
	table *Table
	sf    singleflight.Group
}

// NewLoader creates a loader for cfg. open is not called when the source is "none".
func NewLoader(cfg Config, open OpenFunc) *Loader {
	return &Loader{cfg: cfg, open: open}
}

// Get returns the table, loading it if needed. Concurrent first calls share
// one load.
func (l *Loader) Get(ctx context.Context) (*Table, error) {
	l.mu.RLock()
	table := l.table
	l.mu.RUnlock()
	if table != nil {
		return table, nil
	}

	result, err, _ := l.sf.Do("names", func() (any, error) {
		l.mu.RLock()
		table := l.table
		l.mu.RUnlock()
		if table != nil {
			return table, nil
		}

		table, err := l.load(ctx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.table = table
		l.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Table), nil
}

// Invalidate drops the cached table so the next Get reloads it.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.table = nil
	l.mu.Unlock()
}

func (l *Loader) load(ctx context.Context) (*Table, error) {
	if l.cfg.Source == "" || l.cfg.Source == SourceNone {
		return New(), nil
	}
	rc, err := l.open(ctx, l.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open hash names: %w", err)
	}
	defer rc.Close()
	return Parse(rc)
}
