package alts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OpenFunc opens the named source, usually storage.Opener.
type OpenFunc func(ctx context.Context, name string) (io.ReadCloser, error)

// Service ties the manager to one loaded archive for the HTTP API and CLI.
type Service struct {
	cfg     Config
	manager *Manager
	open    OpenFunc
	logger  *zap.Logger

	// loadMu serializes everything that rewrites the archive tables.
	loadMu      sync.Mutex
	arc         *archive.Archive
	selectionID string
}

// NewService creates a service around manager. open reads the archive listing.
func NewService(cfg Config, manager *Manager, open OpenFunc, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		manager: manager,
		open:    open,
		logger:  logger,
	}
}

// Start reads the archive listing, builds the archive and initializes the
// manager with it.
func (s *Service) Start(ctx context.Context) error {
	rc, err := s.open(ctx, s.cfg.Listing)
	if err != nil {
		return fmt.Errorf("failed to open archive listing: %w", err)
	}
	defer rc.Close()

	listing, err := archive.ReadListing(rc)
	if err != nil {
		return err
	}
	arc, err := archive.Build(listing)
	if err != nil {
		return fmt.Errorf("failed to build archive: %w", err)
	}
	s.logger.Info("Archive built",
		zap.String("listing", s.cfg.Listing),
		zap.Int("files", arc.Dir.Len()),
		zap.Int("search_entries", arc.Search.Len()),
	)
	return s.Attach(arc)
}

// Attach initializes the manager with an archive that is already built.
func (s *Service) Attach(arc *archive.Archive) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if err := s.manager.Initialize(arc); err != nil {
		return err
	}
	s.arc = arc
	return nil
}

// Manager returns the underlying manager.
func (s *Service) Manager() *Manager {
	return s.manager
}

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// Archive returns the attached archive, or nil before Start.
func (s *Service) Archive() *archive.Archive {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.arc
}

// Inspect runs fn with the archive while no load can rewrite it.
func (s *Service) Inspect(fn func(arc *archive.Archive, backups Backups) error) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	backups, ok := s.manager.Backups()
	if s.arc == nil || !ok {
		return ErrNotInitialized
	}
	return fn(s.arc, backups)
}

// CatalogRecord is the list form of one catalog key.
type CatalogRecord struct {
	Name       hash40.Hash40    `json:"name"`
	Label      string           `json:"label,omitempty"`
	Form       Form             `json:"form"`
	Alternates []AlternateEntry `json:"alternates"`
}

// CatalogView lists every record in key order, with names resolved when the
// name table knows them.
func (s *Service) CatalogView() []CatalogRecord {
	catalog := s.manager.Catalog()
	names := s.manager.Names()

	out := make([]CatalogRecord, 0, len(catalog))
	for _, key := range catalog.Keys() {
		rec := CatalogRecord{Name: key.Name, Form: key.Form, Alternates: catalog[key]}
		if names != nil {
			rec.Label, _ = names.Resolve(key.Name)
		}
		out = append(out, rec)
	}
	return out
}

// Identifier resolves the UI texture identifier of an alternate.
func (s *Service) Identifier(key RecordKey, altIndex int, ui UIForm) (int, error) {
	arc := s.Archive()
	if arc == nil {
		return 0, ErrNotInitialized
	}
	return s.manager.AltIdentifier(arc.Dir, key, altIndex, ui)
}

// SelectionRequest is one requested selection entry. Exactly one of Stage and
// Panel picks the record.
type SelectionRequest struct {
	Stage string `json:"stage,omitempty"`
	Panel *int   `json:"panel,omitempty"`
	Form  Form   `json:"form"`
	Alt   int    `json:"alt"`
	// Random replaces Alt with a random alternate of the record.
	Random bool `json:"random,omitempty"`
}

var errBadRequest = errors.New("bad selection request")

func (s *Service) resolveRequest(req SelectionRequest) (RecordKey, error) {
	switch {
	case req.Panel != nil && req.Stage != "":
		return RecordKey{}, fmt.Errorf("both stage and panel given: %w", errBadRequest)
	case req.Panel != nil:
		name, ok := s.manager.PanelStage(*req.Panel)
		if !ok {
			return RecordKey{}, fmt.Errorf("panel %d: %w", *req.Panel, ErrOutOfRange)
		}
		return RecordKey{Name: name, Form: req.Form}, nil
	case req.Stage != "":
		name, err := hash40.Parse(req.Stage)
		if err != nil {
			return RecordKey{}, fmt.Errorf("%v: %w", err, errBadRequest)
		}
		return RecordKey{Name: name, Form: req.Form}, nil
	default:
		return RecordKey{}, fmt.Errorf("neither stage nor panel given: %w", errBadRequest)
	}
}

// Select replaces the selection group and returns its id.
func (s *Service) Select(reqs []SelectionRequest) (string, error) {
	if len(reqs) == 0 || len(reqs) > 3 {
		return "", fmt.Errorf("%d selections: %w", len(reqs), ErrUnsupported)
	}

	entries := make([]Selection, len(reqs))
	for i, req := range reqs {
		key, err := s.resolveRequest(req)
		if err != nil {
			return "", err
		}
		entries[i] = Selection{Key: key, Index: req.Alt}
	}
	if err := s.manager.SetSelection(entries[0], entries[1:]...); err != nil {
		return "", err
	}
	for i, req := range reqs {
		if req.Random {
			if err := s.manager.PickRandomAlt(i, entries[i].Key); err != nil {
				return "", err
			}
		}
	}

	id := uuid.NewString()
	s.loadMu.Lock()
	s.selectionID = id
	s.loadMu.Unlock()

	s.logger.Info("Selection set", zap.String("selection_id", id), zap.Int("entries", len(entries)))
	return id, nil
}

// SelectionID returns the id of the current selection group, if any.
func (s *Service) SelectionID() string {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.selectionID
}

// Load simulates one stage load: the selection advances, then the form
// directory at path is loaded.
func (s *Service) Load(path string) (LoadResult, error) {
	h, err := hash40.Parse(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("%v: %w", err, errBadRequest)
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.arc == nil {
		return LoadResult{}, ErrNotInitialized
	}

	s.manager.OnAssetPrepare()
	return s.manager.OnDirectoryLoad(s.arc, h)
}
