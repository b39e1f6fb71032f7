package cmd

import (
	"context"
	"fmt"

	"stage-alts/core/config"
	"stage-alts/core/database"
	"stage-alts/core/logger"
	"stage-alts/core/metrics"
	"stage-alts/core/names"
	"stage-alts/core/storage"
	"stage-alts/feature/alts"
	"stage-alts/feature/music"
	"stage-alts/feature/params"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// runtime is everything a command needs once the archive is loaded.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   storage.Client
	db      *gorm.DB
	metrics *metrics.Metrics
	alts    *alts.Service
}

// bootstrap loads the configuration, connects the optional backends and
// starts the alternates service. wantDB connects the database even when the
// params tables do not come from it.
func bootstrap(ctx context.Context, wantDB bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logg}

	// The minio client connects lazily, so creating it costs nothing when no
	// source reads from the bucket.
	if store, err := storage.NewClient(cfg.Storage); err != nil {
		logg.Warn("Storage client unavailable", zap.Error(err))
	} else {
		rt.store = store
	}

	if wantDB || cfg.Params.Source == params.SourceDatabase {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			rt.db = conn
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}
	}

	// Names and params come from independent sources, so they load together.
	bucket := cfg.Storage.Bucket
	var (
		table  *names.Table
		tables *params.Tables
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nameLoader := names.NewLoader(cfg.Names, storage.Opener(cfg.Names.Source, rt.store, bucket))
		t, err := nameLoader.Get(gctx)
		if err != nil {
			logg.Warn("Hash names unavailable, paths will be printed as hashes", zap.Error(err))
			t = names.New()
		}
		table = t
		return nil
	})
	g.Go(func() error {
		src, err := params.NewSource(cfg.Params, rt.store, bucket, rt.db)
		if err != nil || src == nil {
			return err
		}
		t, err := src.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load params: %w", err)
		}
		tables = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logg.Info("Hash names loaded", zap.Int("names", table.Len()))

	rt.metrics = metrics.New(prometheus.NewRegistry())
	manager := alts.NewManager(cfg.Alts, logg, alts.WithNames(table), alts.WithMetrics(rt.metrics))
	rt.alts = alts.NewService(cfg.Alts, manager, storage.Opener(cfg.Alts.ListingSource, rt.store, bucket), logg)
	if err := rt.alts.Start(ctx); err != nil {
		return nil, err
	}

	if tables != nil {
		cache := music.Build(tables.Categories(), tables.Records())
		manager.SetMusic(cache)
		manager.RegisterPanels(tables.Panels())

		stats := cache.Stats()
		logg.Info("Music tables loaded",
			zap.Int("songs", stats.Allowed),
			zap.Int("categories", stats.Categories),
			zap.Int("panels", len(tables.Stages)),
		)
	}

	return rt, nil
}
