package params

import (
	"context"
	"fmt"

	"stage-alts/core/storage"

	"gorm.io/gorm"
)

// Source loads the stage and music tables.
type Source interface {
	Load(ctx context.Context) (*Tables, error)
}

// NewSource picks the source named by cfg. It returns nil for "none".
func NewSource(cfg Config, client storage.Client, bucket string, db *gorm.DB) (Source, error) {
	switch cfg.Source {
	case "", SourceNone:
		return nil, nil
	case SourceFile:
		return FileSource{Path: cfg.Path}, nil
	case SourceStorage:
		if client == nil {
			return nil, fmt.Errorf("params source %q needs a storage client", cfg.Source)
		}
		return StorageSource{Client: client, Bucket: bucket, Prefix: cfg.Path}, nil
	case SourceDatabase:
		if db == nil {
			return nil, fmt.Errorf("params source %q needs a database connection", cfg.Source)
		}
		return DBSource{DB: db}, nil
	default:
		return nil, fmt.Errorf("unknown params source %q", cfg.Source)
	}
}
