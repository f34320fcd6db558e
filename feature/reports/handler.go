package reports

import (
	"net/url"

	"stock-matcher/core/httperr"
	"stock-matcher/core/reconcile"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for reports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reports")
	group.Get("/selected", h.HandleSelected)
	group.Get("/comparison", h.HandleComparison)
	group.Get("/workbook", h.HandleWorkbook)
	group.Post("/workbook/publish", h.HandlePublishWorkbook)
	group.Get("/store", h.HandleStoreReport)
	group.Get("/store/export.csv", h.HandleStoreCSV)
	group.Get("/racks/:rack", h.HandleRackReport)
	group.Get("/racks/:rack/export.csv", h.HandleRackCSV)
}

func rackScope(c *fiber.Ctx) reconcile.Scope {
	raw := c.Params("rack")
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return reconcile.SingleRack(raw)
}

func (h *Handler) report(c *fiber.Ctx, scope reconcile.Scope) error {
	resp, err := h.service.Report(c.UserContext(), scope)
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.JSON(resp)
}

func (h *Handler) send(c *fiber.Ctx, file *File, err error) error {
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Data)
}

// HandleStoreReport reconciles every rack.
// @Summary Store-Wide Report
// @Description Reconcile all racks against the whole master list.
// @Tags reports
// @Produce json
// @Success 200 {object} reports.ReportResponse
// @Failure 412 {object} map[string]string "Master list not loaded or no racks scanned"
// @Router /reports/store [get]
func (h *Handler) HandleStoreReport(c *fiber.Ctx) error {
	return h.report(c, reconcile.StoreWide())
}

// HandleRackReport reconciles one rack.
// @Summary Rack Report
// @Description Reconcile one rack against the items labelled with it.
// @Tags reports
// @Produce json
// @Param rack path string true "Rack name"
// @Success 200 {object} reports.ReportResponse
// @Failure 412 {object} map[string]string "Master list not loaded"
// @Router /reports/racks/{rack} [get]
func (h *Handler) HandleRackReport(c *fiber.Ctx) error {
	return h.report(c, rackScope(c))
}

// HandleSelected reconciles the last reported scope.
// @Summary Selected Report
// @Tags reports
// @Produce json
// @Success 200 {object} reports.ReportResponse
// @Router /reports/selected [get]
func (h *Handler) HandleSelected(c *fiber.Ctx) error {
	resp, err := h.service.Selected(c.UserContext())
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.JSON(resp)
}

// HandleComparison returns the full-catalog comparison.
// @Summary Comparison
// @Tags reports
// @Produce json
// @Success 200 {object} reconcile.Comparison
// @Router /reports/comparison [get]
func (h *Handler) HandleComparison(c *fiber.Ctx) error {
	cmp, err := h.service.Comparison()
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.JSON(cmp)
}

// HandleStoreCSV downloads the store-wide discrepancies.
// @Summary Store-Wide Discrepancy CSV
// @Tags reports
// @Produce text/csv
// @Success 200 {file} file
// @Failure 422 {object} map[string]string "Nothing to export"
// @Router /reports/store/export.csv [get]
func (h *Handler) HandleStoreCSV(c *fiber.Ctx) error {
	file, err := h.service.DiscrepancyCSV(reconcile.StoreWide())
	return h.send(c, file, err)
}

// HandleRackCSV downloads one rack's discrepancies.
// @Summary Rack Discrepancy CSV
// @Tags reports
// @Produce text/csv
// @Param rack path string true "Rack name"
// @Success 200 {file} file
// @Failure 422 {object} map[string]string "Nothing to export"
// @Router /reports/racks/{rack}/export.csv [get]
func (h *Handler) HandleRackCSV(c *fiber.Ctx) error {
	file, err := h.service.DiscrepancyCSV(rackScope(c))
	return h.send(c, file, err)
}

// HandleWorkbook downloads the session workbook.
// @Summary Session Workbook
// @Description Master stock, scanned data and the comparison as an XLSX workbook.
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /reports/workbook [get]
func (h *Handler) HandleWorkbook(c *fiber.Ctx) error {
	file, err := h.service.Workbook()
	return h.send(c, file, err)
}

// HandlePublishWorkbook uploads the session workbook.
// @Summary Publish Workbook
// @Tags reports
// @Produce json
// @Success 201 {object} reports.Published
// @Router /reports/workbook/publish [post]
func (h *Handler) HandlePublishWorkbook(c *fiber.Ctx) error {
	published, err := h.service.PublishWorkbook(c.UserContext())
	if err != nil {
		return httperr.Respond(c, h.service.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(published)
}
