package items

import (
	"stock-matcher/core/httperr"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for items.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the item routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/items")
	group.Get("/:barcode", h.HandleGetItemDetail)
}

// HandleGetItemDetail returns a detailed report for a single barcode.
// @Summary Get Item Detail
// @Description Trace a barcode through the master list and every rack.
// @Tags items
// @Produce json
// @Param barcode path string true "Barcode (e.g. 'T00001')"
// @Success 200 {object} items.DetailReport "Item Detail"
// @Failure 400 {object} map[string]string "Invalid barcode"
// @Failure 404 {object} map[string]string "Neither listed nor scanned"
// @Router /items/{barcode} [get]
func (h *Handler) HandleGetItemDetail(c *fiber.Ctx) error {
	report, err := h.service.Detail(c.Params("barcode"))
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.JSON(report)
}
