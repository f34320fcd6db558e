package catalog

import (
	"net/url"

	"stock-matcher/core/httperr"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the master list.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleList)
	group.Post("/sync", h.HandleSync)
	group.Get("/:barcode", h.HandleLookup)
}

// HandleSync triggers a master list sync.
// @Summary Sync Master List
// @Description Fetch and ingest the master list. On failure the previously loaded list is kept.
// @Tags catalog
// @Produce json
// @Success 200 {object} catalog.SyncResult
// @Failure 412 {object} map[string]string "No source configured"
// @Failure 502 {object} map[string]string "Fetch or ingestion failed"
// @Router /catalog/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	result, err := h.service.Sync(c.UserContext())
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.JSON(result)
}

// HandleList lists the loaded master items.
// @Summary List Master Items
// @Tags catalog
// @Produce json
// @Param rack query string false "Only items labelled with this rack"
// @Success 200 {object} catalog.Listing
// @Failure 412 {object} map[string]string "Master list not loaded"
// @Router /catalog [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	listing, err := h.service.List(c.Query("rack"))
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.JSON(listing)
}

// HandleLookup returns one master item.
// @Summary Lookup Barcode
// @Tags catalog
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} catalog.MasterItem
// @Failure 404 {object} map[string]string "Unknown barcode"
// @Router /catalog/{barcode} [get]
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	code, err := url.PathUnescape(c.Params("barcode"))
	if err != nil {
		code = c.Params("barcode")
	}

	item, err := h.service.Lookup(code)
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.JSON(item)
}
