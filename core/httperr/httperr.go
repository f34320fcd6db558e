// Package httperr maps domain errors to HTTP responses.
package httperr

import (
	"errors"

	"stock-matcher/core/barcode"
	"stock-matcher/core/catalog"
	"stock-matcher/core/export"
	"stock-matcher/core/ledger"
	"stock-matcher/core/logger"
	"stock-matcher/core/reconcile"
	"stock-matcher/core/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var (
	// ErrBadRequest marks malformed request bodies and parameters.
	ErrBadRequest = errors.New("bad request")
	// ErrNotFound marks lookups of resources outside the rack ledgers.
	ErrNotFound = errors.New("not found")
	// ErrTooManyRequests marks requests rejected by a cooldown.
	ErrTooManyRequests = errors.New("too many requests")
	// ErrUpstream marks failures of an external dependency.
	ErrUpstream = errors.New("upstream failure")
)

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, barcode.ErrInvalidFormat),
		errors.Is(err, ledger.ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ledger.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ledger.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, reconcile.ErrCatalogNotLoaded),
		errors.Is(err, session.ErrNoRacks),
		errors.Is(err, catalog.ErrNoSource),
		errors.Is(err, export.ErrPublishingDisabled):
		return fiber.StatusPreconditionFailed
	case errors.Is(err, export.ErrNothingToExport):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrTooManyRequests):
		return fiber.StatusTooManyRequests
	case errors.Is(err, ErrUpstream),
		errors.Is(err, catalog.ErrEmptyDataset),
		errors.Is(err, catalog.ErrNoBarcodeColumn):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// Respond writes err as a JSON error body and logs it with the request's ray id.
func Respond(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := Status(err)
	l = logger.WithRayID(l, c)
	if status >= fiber.StatusInternalServerError {
		l.Error("Request failed", zap.Int("status", status), zap.Error(err))
	} else {
		l.Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
