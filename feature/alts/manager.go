package alts

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
	"stage-alts/core/metrics"
	"stage-alts/core/paths"
	"stage-alts/feature/music"

	"go.uber.org/zap"
)

// Manager owns the catalog, the backups, the active selection and the music
// cache. One RWMutex guards all of them: lookups share it, anything that
// changes state (including Advance, which moves the rotation cursor) takes it
// exclusively.
type Manager struct {
	logger   *zap.Logger
	names    paths.Resolver
	metrics  *metrics.Metrics
	root     hash40.Hash40
	excluded []hash40.Hash40

	mu        sync.RWMutex
	catalog   Catalog
	engine    *Engine
	selection *SelectionSet
	pending   uint32
	online    bool
	panels    []hash40.Hash40
	music     *music.Cache
	rng       *rand.Rand
}

// Option configures a Manager.
type Option func(*Manager)

// WithNames sets the hash name table used for ordering and log output.
func WithNames(names paths.Resolver) Option {
	return func(m *Manager) {
		m.names = names
	}
}

// WithMetrics sets the instruments the manager updates.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// WithRand replaces the random source used by PickRandomAlt.
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) {
		m.rng = r
	}
}

// NewManager creates an uninitialized manager.
func NewManager(cfg Config, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		logger:  logger,
		root:    hash40.New(cfg.StageRoot),
		catalog: make(Catalog),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, ex := range cfg.Excluded {
		m.excluded = append(m.excluded, hash40.New(ex))
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.metrics == nil {
		m.metrics = metrics.NewNop()
	}
	return m
}

// Initialize sorts the Search Index, builds the catalog and snapshots the
// backups. It must run once, after the archive is fully loaded and before any
// other call. A missing stage root leaves the catalog empty.
func (m *Manager) Initialize(arc *archive.Archive) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.engine != nil {
		return fmt.Errorf("manager already initialized")
	}

	sorted, err := SortFolderContents(arc.Search, m.names, hash40.Root)
	if err != nil {
		m.logger.Warn("Search index sorted with errors", zap.Int("folders", sorted), zap.Error(err))
	} else {
		m.logger.Debug("Search index sorted", zap.Int("folders", sorted))
	}

	catalog, err := BuildCatalog(arc.Search, m.root)
	if err != nil {
		m.logger.Error("Failed to build alternate catalog", zap.Error(err))
	}
	m.catalog = catalog
	m.engine = NewEngine(Snapshot(arc), m.logger, m.names, m.metrics)

	m.metrics.CatalogRecords.Set(float64(len(catalog)))
	m.metrics.CatalogAlternates.Set(float64(catalog.Total()))
	m.logger.Info("Alternate catalog built",
		zap.Int("records", len(catalog)),
		zap.Int("alternates", catalog.Total()),
	)
	return nil
}

// Initialized reports whether Initialize has run.
func (m *Manager) Initialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engine != nil
}

// Engine returns the redirection engine, or nil before Initialize.
func (m *Manager) Engine() *Engine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.engine
}

// Backups returns the snapshot taken by Initialize.
func (m *Manager) Backups() (Backups, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.engine == nil {
		return Backups{}, false
	}
	return m.engine.backups, true
}

// Names returns the configured name resolver, which may be nil.
func (m *Manager) Names() paths.Resolver {
	return m.names
}

// Root returns the stage root folder hash.
func (m *Manager) Root() hash40.Hash40 {
	return m.root
}

// Catalog returns a copy of the catalog.
func (m *Manager) Catalog() Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog.Clone()
}

// AltCount returns the number of alternates of key.
func (m *Manager) AltCount(key RecordKey) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog.Count(key)
}

// AltIdentifier resolves the UI texture of alternate altIndex of key to the
// file path index the UI loads. Index 0 is the original texture.
func (m *Manager) AltIdentifier(dir *archive.Directory, key RecordKey, altIndex int, ui UIForm) (int, error) {
	m.mu.RLock()
	var derived DerivedPaths
	if altIndex == 0 {
		derived = DerivePaths(key.Name, 0)
	} else {
		entry, ok := m.catalog.Nth(key, altIndex-1)
		if !ok {
			m.mu.RUnlock()
			return 0, fmt.Errorf("%s alternate %d: %w", key, altIndex, ErrOutOfRange)
		}
		derived = entry.Paths
	}
	m.mu.RUnlock()

	return dir.FilePathIndex(derived.Pick(ui))
}

// SetSelection replaces the selection group with one to three entries and
// resets the rotation.
func (m *Manager) SetSelection(first Selection, rest ...Selection) error {
	set, err := NewSelectionSet(first, rest...)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.selection = set
	m.mu.Unlock()
	return nil
}

// Selection returns the current group and cursor, or nil when none is set.
func (m *Manager) Selection() ([]Selection, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.selection == nil {
		return nil, 0
	}
	return m.selection.Entries(), m.selection.Cursor()
}

// PickRandomAlt sets entry position of the selection to a random alternate
// of key, the original form included.
func (m *Manager) PickRandomAlt(position int, key RecordKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selection == nil {
		return fmt.Errorf("no selection to update: %w", ErrOutOfRange)
	}
	index := 0
	if n := m.catalog.Count(key); n > 0 {
		index = m.rng.IntN(n + 1)
	}
	return m.selection.set(position, Selection{Key: key, Index: index})
}

// Advance returns the slot of the next selection in the rotation. It reports
// false when no selection exists or the selected index is out of range.
func (m *Manager) Advance() (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.advanceLocked()
}

func (m *Manager) advanceLocked() (uint32, bool) {
	if m.selection == nil {
		m.metrics.Advances.WithLabelValues("none").Inc()
		return 0, false
	}
	sel := m.selection.Next()
	slot, err := m.resolveLocked(sel.Key, sel.Index)
	if err != nil {
		m.logger.Warn("Selected alternate unavailable", zap.Stringer("key", sel.Key), zap.Int("index", sel.Index))
		m.metrics.Advances.WithLabelValues("none").Inc()
		return 0, false
	}
	if slot == 0 {
		m.metrics.Advances.WithLabelValues("original").Inc()
	} else {
		m.metrics.Advances.WithLabelValues("alternate").Inc()
	}
	return slot, true
}

func (m *Manager) resolveLocked(key RecordKey, index int) (uint32, error) {
	if index == 0 {
		return 0, nil
	}
	entry, ok := m.catalog.Nth(key, index-1)
	if !ok {
		return 0, fmt.Errorf("%s alternate %d: %w", key, index, ErrOutOfRange)
	}
	return entry.Slot, nil
}

// SetOnline switches online mode. While online, OnAssetPrepare never advances.
func (m *Manager) SetOnline(online bool) {
	m.mu.Lock()
	m.online = online
	m.mu.Unlock()
}

// Online reports whether online mode is on.
func (m *Manager) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// Pending returns the slot the next directory load will patch to.
func (m *Manager) Pending() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pending
}

// RegisterPanels records which stage each stage select panel shows.
func (m *Manager) RegisterPanels(stages []hash40.Hash40) {
	m.mu.Lock()
	m.panels = slices.Clone(stages)
	m.mu.Unlock()
}

// PanelStage returns the stage shown on panel.
func (m *Manager) PanelStage(panel int) (hash40.Hash40, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if panel < 0 || panel >= len(m.panels) {
		return 0, false
	}
	return m.panels[panel], true
}

// SetMusic installs the music cache.
func (m *Manager) SetMusic(c *music.Cache) {
	m.mu.Lock()
	m.music = c
	m.mu.Unlock()
}

// Music returns the installed music cache, or nil.
func (m *Manager) Music() *music.Cache {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.music
}

// OnAssetPrepare advances the selection ahead of a stage load and remembers
// the slot for the following directory loads. It does nothing while online.
func (m *Manager) OnAssetPrepare() (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.online {
		return m.pending, false
	}
	slot, ok := m.advanceLocked()
	m.pending = slot
	return slot, ok
}

// OnStageSelected handles the stage select music hook. A song the cache does
// not allow is swapped for a random one of place's category, and the
// alternate index carried in the bgm id becomes the pending slot.
// It returns the possibly rewritten bgm id.
func (m *Manager) OnStageSelected(place hash40.Hash40, form Form, bgmID uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.music != nil && !m.music.IsAllowed(music.Song(bgmID)) {
		song := m.music.PickRandom(place)
		m.logger.Debug("Replacing disallowed song",
			zap.Stringer("song", music.Song(bgmID)),
			zap.Stringer("replacement", song),
		)
		bgmID = music.WithSong(bgmID, song)
	}

	key := RecordKey{Name: place, Form: form}
	slot, err := m.resolveLocked(key, int(music.AltField(bgmID)))
	if err != nil {
		m.logger.Warn("Alternate from bgm id unavailable", zap.Stringer("key", key), zap.Error(err))
		slot = 0
	}
	m.pending = slot
	return bgmID
}

// LoadResult describes what OnDirectoryLoad did.
type LoadResult struct {
	Path     hash40.Hash40 `json:"path"`
	Eligible bool          `json:"eligible"`
	Alt      uint32        `json:"alt"`
	Reports  []Report      `json:"reports"`
	Files    []int         `json:"files,omitempty"`
}

// Failures counts per file failures across all reports.
func (r LoadResult) Failures() int {
	n := 0
	for _, rep := range r.Reports {
		n += len(rep.Failures)
	}
	return n
}

func (m *Manager) eligible(search *archive.Search, path hash40.Hash40, pretty paths.PrettyPath) bool {
	if pretty.Len() != 3 || !search.IsDescendantOf(path, m.root) {
		return false
	}
	for _, ex := range m.excluded {
		if path == ex || search.IsDescendantOf(path, ex) {
			return false
		}
	}
	return true
}

// OnDirectoryLoad handles the load of a stage form directory
// ("stage/<name>/<form>"). The record directory is always restored first in
// both tables; when an alternate is pending and path is a form folder, path is
// then patched, the Directory Table before the Search Index.
func (m *Manager) OnDirectoryLoad(arc *archive.Archive, path hash40.Hash40) (LoadResult, error) {
	start := time.Now()
	defer func() { m.metrics.LoadDuration.Observe(time.Since(start).Seconds()) }()

	m.mu.RLock()
	engine := m.engine
	alt := m.pending
	m.mu.RUnlock()

	result := LoadResult{Path: path}
	if engine == nil {
		return result, ErrNotInitialized
	}

	pretty := paths.Pretty(arc.Search, path)
	if !m.eligible(arc.Search, path, pretty) {
		return result, nil
	}
	result.Eligible = true

	record := pretty.SubRange(2)
	result.Reports = append(result.Reports,
		engine.RestoreDirectory(arc, record),
		engine.RestoreSearch(arc.Search, record),
	)

	last := pretty.Last()
	if alt == 0 || (last != markerNormal && last != markerBattle) {
		return result, nil
	}

	result.Alt = alt
	result.Reports = append(result.Reports,
		engine.PatchDirectory(arc, path, alt),
		engine.PatchSearch(arc.Search, path, alt),
	)

	files, err := engine.CollectFiles(arc, path, alt)
	if err != nil {
		m.logger.Warn("Failed to collect alternate files", zap.String("path", pretty.Format(m.names)), zap.Error(err))
	}
	result.Files = files

	m.logger.Info("Loaded alternate",
		zap.String("path", pretty.Format(m.names)),
		zap.Uint32("alt", alt),
		zap.Int("files", len(files)),
		zap.Int("failures", result.Failures()),
	)
	return result, nil
}
