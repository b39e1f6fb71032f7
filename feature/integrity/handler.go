package integrity

import (
	"stage-alts/core/logger"
	"stage-alts/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/backups", h.HandleBackupCheck)
	group.Get("/redirects", h.HandleRedirectCheck)
	group.Get("/ordering", h.HandleOrderingCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Backups, Redirects, Ordering, Storage, Schema).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := h.service.RunAll(c.Context())
	return c.JSON(report)
}

// HandleBackupCheck checks backup coverage.
// @Summary Check Backups
// @Description Verifies that every file and search entry below the stage root has a backed up original value.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.BackupReport
// @Failure 503 {object} map[string]string "Not Initialized"
// @Router /integrity/backups [get]
func (h *Handler) HandleBackupCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckBackups()
	if err != nil {
		l.Error("Backup check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Complete {
		l.Warn("Backups incomplete",
			zap.Int("missing_directory", len(report.MissingDir)),
			zap.Int("missing_search", len(report.MissingSearch)),
		)
	}
	return c.JSON(report)
}

// HandleRedirectCheck lists redirected entries.
// @Summary Check Redirects
// @Description Lists every index entry whose live value differs from its backup.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "Not Initialized"
// @Router /integrity/redirects [get]
func (h *Handler) HandleRedirectCheck(c *fiber.Ctx) error {
	redirects, err := h.service.CheckRedirects()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":     "checked",
		"redirected": redirects,
	})
}

// HandleOrderingCheck lists folders out of canonical order.
// @Summary Check Ordering
// @Description Lists the folders below the stage root whose child chain is not in canonical order.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "Not Initialized"
// @Router /integrity/ordering [get]
func (h *Handler) HandleOrderingCheck(c *fiber.Ctx) error {
	unsorted, err := h.service.CheckOrdering()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":   "checked",
		"unsorted": unsorted,
	})
}

// HandleStorageCheck checks the bucket for the configured sources.
// @Summary Check Storage
// @Description Checks that the bucket holds the archive listing, hash names and params objects the service is configured to read.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	missing, err := h.service.CheckStorage(c.Context())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if len(missing) > 0 {
		l.Warn("Missing objects detected", zap.Strings("missing", missing))
	}
	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleSchemaCheck checks the params tables.
// @Summary Check Params Schema
// @Description Validates that the stage_params and bgm_params tables carry every column the loader reads.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	report, err := h.service.CheckSchema()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
