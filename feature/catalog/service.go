package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-matcher/core/barcode"
	"stock-matcher/core/catalog"
	"stock-matcher/core/httperr"
	"stock-matcher/core/ledger"
	"stock-matcher/core/reconcile"

	"go.uber.org/zap"
)

// Listing is the loaded master list, optionally filtered to one rack.
type Listing struct {
	SyncedAt  time.Time            `json:"syncedAt"`
	ItemCount int                  `json:"itemCount"`
	Items     []catalog.MasterItem `json:"items"`
}

// SyncResult summarizes a completed sync.
type SyncResult struct {
	SyncedAt  time.Time `json:"syncedAt"`
	ItemCount int       `json:"itemCount"`
}

// Service serves master list operations.
type Service struct {
	syncer *catalog.Syncer
	store  *catalog.Store
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(syncer *catalog.Syncer, store *catalog.Store, logger *zap.Logger) *Service {
	return &Service{syncer: syncer, store: store, logger: logger}
}

// Sync refreshes the master list. Upstream failures leave the previous list in place.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	cat, err := s.syncer.Sync(ctx)
	if err != nil {
		if errors.Is(err, catalog.ErrNoSource) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", httperr.ErrUpstream, err)
	}
	return &SyncResult{SyncedAt: cat.SyncedAt(), ItemCount: cat.Len()}, nil
}

// List returns the loaded items, restricted to rackID when it is not blank.
func (s *Service) List(rackID string) (*Listing, error) {
	cat := s.store.Snapshot()
	if cat == nil {
		return nil, reconcile.ErrCatalogNotLoaded
	}

	items := cat.Items()
	if id := ledger.NormalizeRackID(rackID); id != "" {
		items = cat.InRack(id)
	}
	return &Listing{SyncedAt: cat.SyncedAt(), ItemCount: len(items), Items: items}, nil
}

// Lookup returns the master item for a barcode.
func (s *Service) Lookup(code string) (catalog.MasterItem, error) {
	cat := s.store.Snapshot()
	if cat == nil {
		return catalog.MasterItem{}, reconcile.ErrCatalogNotLoaded
	}

	item, ok := cat.Get(barcode.Normalize(code))
	if !ok {
		return catalog.MasterItem{}, fmt.Errorf("barcode %s: %w", barcode.Normalize(code), httperr.ErrNotFound)
	}
	return item, nil
}
