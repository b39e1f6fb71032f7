package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"stage-alts/core/loader"
	"stage-alts/core/logger"
	"stage-alts/core/middleware/auth"
	"stage-alts/core/middleware/rayid"
	"stage-alts/feature/alts"
	"stage-alts/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "stage-alts/docs/swagger"
)

// @title Stage Alts API
// @version 1.0
// @description API for selecting and loading stage alternates.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stage alternates server",
	Long:  `Loads the archive listing, discovers alternates and serves the selection, load and integrity API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Bootstrap config, logger, backends and the archive
		rt, err := bootstrap(cmd.Context(), true)
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := rt.cfg.Server.Validate(); err != nil {
			return err
		}

		// 2. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 3. Register Features
		mgr := loader.NewManager(logg)
		mgr.Register(alts.NewFeature(rt.alts))
		mgr.Register(integrity.NewFeature(integrity.NewService(
			rt.alts, rt.store, rt.cfg.Storage.Bucket, rt.cfg.RequiredObjects(), rt.db, logg,
		)))

		// 4. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 5. Request logging with the ray id attached
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 6. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", rt.metrics.Handler())

		// 7. Auth protects everything registered after it
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		// 8. Start Server
		addr := rt.cfg.Server.Address()
		go func() {
			logg.Info("Starting server", zap.String("address", addr))
			if err := app.Listen(addr); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
