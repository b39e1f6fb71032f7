package integrity

import (
	"context"
	"fmt"

	"stage-alts/core/archive"
	"stage-alts/core/storage"
	"stage-alts/feature/alts"
	"stage-alts/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	alts     *alts.Service
	client   storage.Client
	bucket   string
	required []string
	db       *gorm.DB
	logger   *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil, in
// which case the checks that need them report an error.
func NewService(altsSvc *alts.Service, client storage.Client, bucket string, required []string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		alts:     altsSvc,
		client:   client,
		bucket:   bucket,
		required: required,
		db:       db,
		logger:   logger,
	}
}

// CheckBackups verifies that the backups cover the whole stage root.
func (s *Service) CheckBackups() (*checks.BackupReport, error) {
	var report *checks.BackupReport
	err := s.alts.Inspect(func(arc *archive.Archive, backups alts.Backups) error {
		var err error
		m := s.alts.Manager()
		report, err = checks.CheckBackups(arc, backups, m.Root(), m.Names())
		return err
	})
	return report, err
}

// CheckRedirects lists the index entries currently redirected.
func (s *Service) CheckRedirects() ([]checks.Redirect, error) {
	var out []checks.Redirect
	err := s.alts.Inspect(func(arc *archive.Archive, backups alts.Backups) error {
		out = checks.CheckRedirects(arc, backups, s.alts.Manager().Names())
		return nil
	})
	return out, err
}

// CheckOrdering lists the folders whose children are out of canonical order.
func (s *Service) CheckOrdering() ([]string, error) {
	var out []string
	err := s.alts.Inspect(func(arc *archive.Archive, _ alts.Backups) error {
		var err error
		m := s.alts.Manager()
		out, err = checks.CheckOrdering(arc.Search, m.Root(), m.Names())
		return err
	})
	return out, err
}

// CheckStorage returns the required objects missing from the bucket.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("no storage client configured")
	}
	return checks.CheckStorage(ctx, s.client, s.bucket, s.required)
}

// CheckSchema verifies the params tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckParamsSchema(s.db)
}

func failed(err error) map[string]any {
	return map[string]any{"status": "error", "error": err.Error()}
}

// RunAll runs every check and collects the results by name. A failing check
// records its error and never stops the others.
func (s *Service) RunAll(ctx context.Context) map[string]any {
	report := make(map[string]any)

	if backups, err := s.CheckBackups(); err != nil {
		report["backups"] = failed(err)
	} else {
		report["backups"] = backups
	}

	if redirects, err := s.CheckRedirects(); err != nil {
		report["redirects"] = failed(err)
	} else {
		report["redirects"] = map[string]any{"status": "ok", "redirected": redirects}
	}

	if unsorted, err := s.CheckOrdering(); err != nil {
		report["ordering"] = failed(err)
	} else {
		report["ordering"] = map[string]any{"status": "ok", "unsorted": unsorted}
	}

	if missing, err := s.CheckStorage(ctx); err != nil {
		report["storage"] = failed(err)
	} else {
		report["storage"] = map[string]any{"status": "ok", "missing": missing}
	}

	if schema, err := s.CheckSchema(); err != nil {
		report["schema"] = failed(err)
	} else {
		report["schema"] = schema
	}

	return report
}
