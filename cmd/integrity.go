package cmd

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"stage-alts/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the archive and its sources",
	Long:  `Checks backup coverage, redirected entries, search ordering, required bucket objects and the params schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrity(cmd.Context(), func(ctx context.Context, s *integrity.Service) (any, error) {
			return s.RunAll(ctx), nil
		})
	},
}

// backupsCmd represents the integrity backups command
var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "Check that every stage entry has a backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(_ context.Context, s *integrity.Service) (any, error) {
			return s.CheckBackups()
		})
	},
}

// redirectsCmd represents the integrity redirects command
var redirectsCmd = &cobra.Command{
	Use:   "redirects",
	Short: "List index entries that currently point at an alternate",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(_ context.Context, s *integrity.Service) (any, error) {
			return s.CheckRedirects()
		})
	},
}

// orderingCmd represents the integrity ordering command
var orderingCmd = &cobra.Command{
	Use:   "ordering",
	Short: "List stage folders whose children are out of order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(_ context.Context, s *integrity.Service) (any, error) {
			return s.CheckOrdering()
		})
	},
}

// storageCmd represents the integrity storage command
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check that the configured bucket holds every source object",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(ctx context.Context, s *integrity.Service) (any, error) {
			return s.CheckStorage(ctx)
		})
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the params database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrity(cmd.Context(), func(_ context.Context, s *integrity.Service) (any, error) {
			return s.CheckSchema()
		})
	},
}

func runIntegrity(ctx context.Context, check func(context.Context, *integrity.Service) (any, error)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	rt, err := bootstrap(ctx, true)
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	svc := integrity.NewService(rt.alts, rt.store, rt.cfg.Storage.Bucket, rt.cfg.RequiredObjects(), rt.db, rt.logger)
	result, err := check(ctx, svc)
	if err != nil {
		rt.logger.Error("Integrity check failed", zap.Error(err))
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	rt.logger.Info("Integrity check finished", zap.Duration("duration", time.Since(startTime)))
	return nil
}

func init() {
	integrityCmd.AddCommand(backupsCmd)
	integrityCmd.AddCommand(redirectsCmd)
	integrityCmd.AddCommand(orderingCmd)
	integrityCmd.AddCommand(storageCmd)
	integrityCmd.AddCommand(schemaCmd)
	RootCmd.AddCommand(integrityCmd)
}
