package racks

import (
	"fmt"
	"net/url"

	"stock-matcher/core/httperr"

	"github.com/gofiber/fiber/v2"
)

// ScanRequest carries one scanned barcode.
type ScanRequest struct {
	Barcode string `json:"barcode"`
}

// RenameRequest carries the new rack name.
type RenameRequest struct {
	Name string `json:"name"`
}

// Handler handles HTTP requests for racks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the rack routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/racks")
	group.Get("/", h.HandleList)
	group.Get("/:rack", h.HandleDetail)
	group.Delete("/:rack", h.HandleDeleteRack)
	group.Post("/:rack/scans", h.HandleScan)
	group.Post("/:rack/rename", h.HandleRename)
	group.Patch("/:rack/items/:barcode", h.HandleUpdateItem)
	group.Delete("/:rack/items/:barcode", h.HandleRemoveItem)
}

// param returns a path parameter with percent-escapes decoded.
func param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// HandleList lists every rack.
// @Summary List Racks
// @Description List racks with their distinct item count and total units.
// @Tags racks
// @Produce json
// @Success 200 {array} ledger.RackSummary
// @Router /racks [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

// HandleDetail returns one rack's records.
// @Summary Get Rack
// @Description Get a rack's scan records, most recently scanned first.
// @Tags racks
// @Produce json
// @Param rack path string true "Rack name"
// @Success 200 {object} racks.RackDetail
// @Failure 404 {object} map[string]string "Rack not found"
// @Router /racks/{rack} [get]
func (h *Handler) HandleDetail(c *fiber.Ctx) error {
	detail, err := h.service.Detail(param(c, "rack"))
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.JSON(detail)
}

// HandleScan records a scan.
// @Summary Scan Barcode
// @Description Count one scan of a barcode in a rack. Repeat scans within the cooldown are rejected.
// @Tags racks
// @Accept json
// @Produce json
// @Param rack path string true "Rack name"
// @Param request body racks.ScanRequest true "Scanned barcode"
// @Success 201 {object} ledger.ScanRecord
// @Failure 400 {object} map[string]string "Invalid barcode"
// @Failure 412 {object} map[string]string "Master list not loaded"
// @Failure 429 {object} map[string]string "Rack cooling down"
// @Router /racks/{rack}/scans [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	var req ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Respond(c, h.service.logger, fmt.Errorf("%w: %v", httperr.ErrBadRequest, err))
	}

	rec, err := h.service.Scan(c.UserContext(), param(c, "rack"), req.Barcode)
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// HandleUpdateItem adjusts or sets a record's quantity.
// @Summary Update Item Quantity
// @Description Apply a delta (removing the item at zero) or set an absolute quantity of at least one.
// @Tags racks
// @Accept json
// @Param rack path string true "Rack name"
// @Param barcode path string true "Barcode"
// @Param request body racks.UpdateItemRequest true "Exactly one of delta or quantity"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /racks/{rack}/items/{barcode} [patch]
func (h *Handler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Respond(c, h.service.logger, fmt.Errorf("%w: %v", httperr.ErrBadRequest, err))
	}

	if err := h.service.UpdateItem(c.UserContext(), param(c, "rack"), param(c, "barcode"), req); err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRemoveItem deletes a record.
// @Summary Remove Item
// @Tags racks
// @Param rack path string true "Rack name"
// @Param barcode path string true "Barcode"
// @Success 204
// @Router /racks/{rack}/items/{barcode} [delete]
func (h *Handler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.UserContext(), param(c, "rack"), param(c, "barcode")); err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteRack deletes a rack.
// @Summary Delete Rack
// @Tags racks
// @Param rack path string true "Rack name"
// @Success 204
// @Router /racks/{rack} [delete]
func (h *Handler) HandleDeleteRack(c *fiber.Ctx) error {
	if err := h.service.DeleteRack(c.UserContext(), param(c, "rack")); err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRename renames a rack.
// @Summary Rename Rack
// @Tags racks
// @Accept json
// @Param rack path string true "Rack name"
// @Param request body racks.RenameRequest true "New name"
// @Success 204
// @Failure 404 {object} map[string]string "Rack not found"
// @Failure 409 {object} map[string]string "Name taken or unchanged"
// @Router /racks/{rack}/rename [post]
func (h *Handler) HandleRename(c *fiber.Ctx) error {
	var req RenameRequest
	if err := c.BodyParser(&req); err != nil {
		return httperr.Respond(c, h.service.logger, fmt.Errorf("%w: %v", httperr.ErrBadRequest, err))
	}

	if err := h.service.Rename(c.UserContext(), param(c, "rack"), req.Name); err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
