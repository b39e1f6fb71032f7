package alts

import (
	"errors"
	"strconv"

	"stage-alts/core/archive"
	"stage-alts/core/hash40"
	"stage-alts/core/logger"
	"stage-alts/feature/music"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for alternates and music.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the alternate and music routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/alts")
	group.Get("/catalog", h.HandleCatalog)
	group.Get("/:stage/:form/count", h.HandleCount)
	group.Get("/:stage/:form/:alt/identifier", h.HandleIdentifier)
	group.Post("/selection", h.HandleSelection)
	group.Get("/selection", h.HandleGetSelection)
	group.Post("/load", h.HandleLoad)
	group.Put("/online", h.HandleOnline)

	musicGroup := app.Group("/music")
	musicGroup.Get("/allowed/:song", h.HandleSongAllowed)
	musicGroup.Get("/:place/random", h.HandleRandomSong)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotInitialized):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, ErrUnsupported), errors.Is(err, errBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrOutOfRange), errors.Is(err, archive.ErrMissing):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func recordKey(c *fiber.Ctx) (RecordKey, error) {
	name, err := hash40.Parse(c.Params("stage"))
	if err != nil {
		return RecordKey{}, err
	}
	form, err := ParseForm(c.Params("form"))
	if err != nil {
		return RecordKey{}, err
	}
	return RecordKey{Name: name, Form: form}, nil
}

// HandleCatalog lists every discovered alternate.
// @Summary List Alternates
// @Description Returns every stage record that has alternates, with the slot and UI paths of each alternate.
// @Tags alts
// @Produce json
// @Success 200 {array} CatalogRecord
// @Router /alts/catalog [get]
func (h *Handler) HandleCatalog(c *fiber.Ctx) error {
	return c.JSON(h.service.CatalogView())
}

// HandleCount returns the number of alternates of a record.
// @Summary Count Alternates
// @Tags alts
// @Produce json
// @Param stage path string true "Stage name or hex hash"
// @Param form path string true "normal or battle"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /alts/{stage}/{form}/count [get]
func (h *Handler) HandleCount(c *fiber.Ctx) error {
	key, err := recordKey(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"stage": key.Name,
		"form":  key.Form,
		"count": h.service.Manager().AltCount(key),
	})
}

// HandleIdentifier resolves the UI texture identifier of an alternate.
// @Summary Alternate UI Identifier
// @Description Resolves the texture path of alternate {alt} (0 is the original) to its file path index.
// @Tags alts
// @Produce json
// @Param stage path string true "Stage name or hex hash"
// @Param form path string true "normal or battle"
// @Param alt path int true "Alternate index"
// @Param ui query string false "normal, battle or end"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Not Found"
// @Router /alts/{stage}/{form}/{alt}/identifier [get]
func (h *Handler) HandleIdentifier(c *fiber.Ctx) error {
	key, err := recordKey(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	alt, err := strconv.Atoi(c.Params("alt"))
	if err != nil || alt < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "alt must be a non-negative integer"})
	}
	ui, err := ParseUIForm(c.Query("ui"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := h.service.Identifier(key, alt, ui)
	if err != nil {
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"identifier": id})
}

type selectionBody struct {
	Entries []SelectionRequest `json:"entries"`
}

// HandleSelection replaces the selection group.
// @Summary Set Selection
// @Description Sets one to three stage selections played in rotation. Each entry names a stage or a panel.
// @Tags alts
// @Accept json
// @Produce json
// @Param body body selectionBody true "Selection"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /alts/selection [post]
func (h *Handler) HandleSelection(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.Logger(), c)

	var body selectionBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, err := h.service.Select(body.Entries)
	if err != nil {
		l.Warn("Selection rejected", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	entries, _ := h.service.Manager().Selection()
	return c.JSON(fiber.Map{"id": id, "entries": entries})
}

// HandleGetSelection returns the current selection group.
// @Summary Get Selection
// @Tags alts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /alts/selection [get]
func (h *Handler) HandleGetSelection(c *fiber.Ctx) error {
	entries, cursor := h.service.Manager().Selection()
	return c.JSON(fiber.Map{
		"id":      h.service.SelectionID(),
		"entries": entries,
		"cursor":  cursor,
		"pending": h.service.Manager().Pending(),
		"online":  h.service.Manager().Online(),
	})
}

type loadBody struct {
	Path string `json:"path"`
}

// HandleLoad simulates a stage load.
// @Summary Load Stage Directory
// @Description Advances the selection and loads the given form directory, patching it to the pending alternate.
// @Tags alts
// @Accept json
// @Produce json
// @Param body body loadBody true "Directory"
// @Success 200 {object} LoadResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Not Initialized"
// @Router /alts/load [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.Logger(), c)

	var body loadBody
	if err := c.BodyParser(&body); err != nil || body.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path is required"})
	}

	result, err := h.service.Load(body.Path)
	if err != nil {
		l.Error("Directory load failed", zap.String("path", body.Path), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	if n := result.Failures(); n > 0 {
		l.Warn("Directory loaded with failures", zap.String("path", body.Path), zap.Int("failures", n))
	}
	return c.JSON(result)
}

type onlineBody struct {
	Online bool `json:"online"`
}

// HandleOnline switches online mode.
// @Summary Set Online Mode
// @Description While online, stage loads never advance the selection.
// @Tags alts
// @Accept json
// @Produce json
// @Param body body onlineBody true "Mode"
// @Success 200 {object} map[string]bool
// @Router /alts/online [put]
func (h *Handler) HandleOnline(c *fiber.Ctx) error {
	var body onlineBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	h.service.Manager().SetOnline(body.Online)
	return c.JSON(fiber.Map{"online": body.Online})
}

// HandleSongAllowed reports whether a song may be played.
// @Summary Song Allowed
// @Tags music
// @Produce json
// @Param song path string true "Song name or hex hash"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "No music tables"
// @Router /music/allowed/{song} [get]
func (h *Handler) HandleSongAllowed(c *fiber.Ctx) error {
	cache := h.service.Manager().Music()
	if cache == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "music tables not loaded"})
	}
	song, err := hash40.Parse(c.Params("song"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"song": song, "allowed": cache.IsAllowed(song)})
}

// HandleRandomSong picks a random song for a stage.
// @Summary Random Song
// @Tags music
// @Produce json
// @Param place path string true "Stage place name or hex hash"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "No music tables"
// @Router /music/{place}/random [get]
func (h *Handler) HandleRandomSong(c *fiber.Ctx) error {
	cache := h.service.Manager().Music()
	if cache == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "music tables not loaded"})
	}
	place, err := hash40.Parse(c.Params("place"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	song := cache.PickRandom(place)
	return c.JSON(fiber.Map{
		"place":    place,
		"song":     song,
		"fallback": song == music.FallbackSong,
	})
}
