package racks

import (
	"context"
	"fmt"
	"time"

	"stock-matcher/core/barcode"
	"stock-matcher/core/httperr"
	"stock-matcher/core/ledger"
	"stock-matcher/core/metrics"
	"stock-matcher/core/reconcile"
	"stock-matcher/core/session"

	"go.uber.org/zap"
)

// ErrCooldown is returned when a scan arrives while its rack is cooling down.
var ErrCooldown = fmt.Errorf("%w: scan ignored while the rack cools down", httperr.ErrTooManyRequests)

// RackDetail is a rack with its records, most recently scanned first.
type RackDetail struct {
	RackID        string              `json:"rackId"`
	ItemCount     int                 `json:"itemCount"`
	TotalQuantity int                 `json:"totalQuantity"`
	Items         []ledger.ScanRecord `json:"items"`
}

// UpdateItemRequest changes a record by a delta or to an absolute quantity.
type UpdateItemRequest struct {
	Delta    *int `json:"delta,omitempty"`
	Quantity *int `json:"quantity,omitempty"`
}

// Service implements scanning and rack management.
type Service struct {
	session  *session.Session
	cooldown *Cooldown
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewService creates a new racks service.
func NewService(sess *session.Session, cooldown time.Duration, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		session:  sess,
		cooldown: NewCooldown(cooldown),
		logger:   logger,
		metrics:  m,
	}
}

// List summarizes every rack.
func (s *Service) List() []ledger.RackSummary {
	return s.session.Racks().List()
}

// Detail returns one rack's records.
func (s *Service) Detail(rackID string) (*RackDetail, error) {
	id := ledger.NormalizeRackID(rackID)
	l, ok := s.session.Racks().Ledger(id)
	if !ok {
		return nil, fmt.Errorf("rack %s: %w", id, ledger.ErrNotFound)
	}
	return &RackDetail{
		RackID:        id,
		ItemCount:     l.ItemCount(),
		TotalQuantity: l.TotalQuantity(),
		Items:         l.Records(),
	}, nil
}

// Scan records one barcode in a rack, subject to the rack's cooldown. Malformed
// barcodes and a missing catalog are rejected before the cooldown is consumed.
func (s *Service) Scan(ctx context.Context, rackID, code string) (ledger.ScanRecord, error) {
	id := ledger.NormalizeRackID(rackID)
	if _, err := barcode.Validate(code); err != nil {
		s.metrics.ObserveScan(metrics.ResultRejected)
		return ledger.ScanRecord{}, err
	}
	if s.session.Catalog() == nil {
		s.metrics.ObserveScan(metrics.ResultRejected)
		return ledger.ScanRecord{}, reconcile.ErrCatalogNotLoaded
	}
	if id != "" && !s.cooldown.Allow(id) {
		s.metrics.ObserveScan(metrics.ResultThrottled)
		return ledger.ScanRecord{}, ErrCooldown
	}

	rec, err := s.session.Scan(ctx, id, code)
	if err != nil {
		return rec, err
	}
	s.logger.Debug("Scan recorded",
		zap.String("rack", id),
		zap.String("barcode", rec.Barcode),
		zap.Int("quantity", rec.Quantity),
	)
	return rec, nil
}

// UpdateItem applies exactly one of delta or quantity.
func (s *Service) UpdateItem(ctx context.Context, rackID, code string, req UpdateItemRequest) error {
	switch {
	case req.Delta != nil && req.Quantity == nil:
		return s.session.Adjust(ctx, rackID, code, *req.Delta)
	case req.Quantity != nil && req.Delta == nil:
		return s.session.SetQuantity(ctx, rackID, code, *req.Quantity)
	default:
		return fmt.Errorf("%w: provide exactly one of delta or quantity", httperr.ErrBadRequest)
	}
}

// RemoveItem deletes a record.
func (s *Service) RemoveItem(ctx context.Context, rackID, code string) error {
	return s.session.Remove(ctx, rackID, code)
}

// DeleteRack drops a rack and its cooldown.
func (s *Service) DeleteRack(ctx context.Context, rackID string) error {
	s.cooldown.Forget(ledger.NormalizeRackID(rackID))
	return s.session.DeleteRack(ctx, rackID)
}

// Rename moves a rack to a new name.
func (s *Service) Rename(ctx context.Context, rackID, newName string) error {
	if err := s.session.Rename(ctx, rackID, newName); err != nil {
		return err
	}
	s.cooldown.Forget(ledger.NormalizeRackID(rackID))
	s.logger.Info("Rack renamed",
		zap.String("from", ledger.NormalizeRackID(rackID)),
		zap.String("to", ledger.NormalizeRackID(newName)),
	)
	return nil
}
