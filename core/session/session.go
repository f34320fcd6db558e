package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"stock-matcher/core/barcode"
	"stock-matcher/core/catalog"
	"stock-matcher/core/export"
	"stock-matcher/core/ledger"
	"stock-matcher/core/metrics"
	"stock-matcher/core/reconcile"
	"stock-matcher/core/statestore"

	"go.uber.org/zap"
)

// ErrNoRacks is returned for store-wide work when nothing has been scanned.
var ErrNoRacks = errors.New("no racks have been scanned yet")

// Session wires the catalog, the rack ledgers and their persistence together.
type Session struct {
	catalogs *catalog.Store
	racks    *ledger.RackStore
	store    statestore.Store
	logger   *zap.Logger
	metrics  *metrics.Metrics

	// persistMu serializes snapshot+save so saves land in mutation order.
	persistMu     sync.Mutex
	scopeMu       sync.RWMutex
	selectedScope string
}

// New creates a session. store defaults to an in-memory store when nil.
func New(catalogs *catalog.Store, racks *ledger.RackStore, store statestore.Store, logger *zap.Logger, m *metrics.Metrics) *Session {
	if store == nil {
		store = statestore.NewMemoryStore()
	}
	return &Session{
		catalogs: catalogs,
		racks:    racks,
		store:    store,
		logger:   logger,
		metrics:  m,
	}
}

// Catalog returns the current catalog snapshot, nil before the first sync.
func (s *Session) Catalog() *catalog.Catalog {
	return s.catalogs.Snapshot()
}

// Racks exposes the rack store for read-only queries.
func (s *Session) Racks() *ledger.RackStore {
	return s.racks
}

// SelectedScope returns the id of the last reported scope.
func (s *Session) SelectedScope() string {
	s.scopeMu.RLock()
	defer s.scopeMu.RUnlock()
	return s.selectedScope
}

// Load restores the ledgers and selected scope from the store.
func (s *Session) Load(ctx context.Context) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	s.racks.Restore(state.Racks)

	s.scopeMu.Lock()
	s.selectedScope = state.SelectedScope
	s.scopeMu.Unlock()

	s.logger.Info("Session state restored", zap.Int("racks", len(state.Racks)))
	return nil
}

// Persist saves the current state.
func (s *Session) Persist(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	state := statestore.State{
		Racks:         s.racks.Snapshot(),
		SelectedScope: s.SelectedScope(),
	}
	if err := s.store.Save(ctx, state); err != nil {
		s.logger.Error("Failed to persist session state", zap.Error(err))
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// save persists after a mutation that already took effect in memory. A failed
// save is logged by Persist and retried implicitly by the next one, which
// writes the full state.
func (s *Session) save(ctx context.Context) {
	_ = s.Persist(ctx)
}

// Scan validates code and counts it in rackID. It requires a loaded catalog,
// which supplies the item name.
func (s *Session) Scan(ctx context.Context, rackID, code string) (ledger.ScanRecord, error) {
	code, err := barcode.Validate(code)
	if err != nil {
		s.metrics.ObserveScan(metrics.ResultRejected)
		return ledger.ScanRecord{}, err
	}
	if ledger.NormalizeRackID(rackID) == "" {
		s.metrics.ObserveScan(metrics.ResultRejected)
		return ledger.ScanRecord{}, fmt.Errorf("%w: rack name is required", ledger.ErrInvalidArgument)
	}

	cat := s.catalogs.Snapshot()
	if cat == nil {
		s.metrics.ObserveScan(metrics.ResultRejected)
		return ledger.ScanRecord{}, reconcile.ErrCatalogNotLoaded
	}

	rec, _ := s.racks.RecordScan(rackID, code, resolveName(cat, code))
	s.metrics.ObserveScan(metrics.ResultAccepted)
	s.save(ctx)
	return rec, nil
}

func resolveName(cat *catalog.Catalog, code string) string {
	if item, ok := cat.Get(code); ok {
		return item.Name
	}
	return "Unknown: " + code
}

// Adjust applies delta to a record, removing it at zero.
func (s *Session) Adjust(ctx context.Context, rackID, code string, delta int) error {
	if err := s.racks.Adjust(rackID, code, delta); err != nil {
		return err
	}
	s.save(ctx)
	return nil
}

// SetQuantity replaces a record's quantity.
func (s *Session) SetQuantity(ctx context.Context, rackID, code string, qty int) error {
	if err := s.racks.SetQuantity(rackID, code, qty); err != nil {
		return err
	}
	s.save(ctx)
	return nil
}

// Remove deletes a record if present.
func (s *Session) Remove(ctx context.Context, rackID, code string) error {
	s.racks.Remove(rackID, code)
	s.save(ctx)
	return nil
}

// DeleteRack drops a rack.
func (s *Session) DeleteRack(ctx context.Context, rackID string) error {
	s.racks.DeleteRack(rackID)
	s.save(ctx)
	return nil
}

// Rename moves a rack's ledger to a new id.
func (s *Session) Rename(ctx context.Context, oldID, newID string) error {
	if err := s.racks.Rename(oldID, newID); err != nil {
		return err
	}
	s.save(ctx)
	return nil
}

// Observations aggregates the ledgers in scope.
func (s *Session) Observations(scope reconcile.Scope) reconcile.Observations {
	if !scope.IsStoreWide() {
		l, _ := s.racks.Ledger(scope.RackID())
		return reconcile.Aggregate([]reconcile.RackLedger{{RackID: scope.RackID(), Ledger: l}})
	}

	snapshot := s.racks.Snapshot()
	ledgers := make([]reconcile.RackLedger, 0, len(snapshot))
	for id, l := range snapshot {
		ledgers = append(ledgers, reconcile.RackLedger{RackID: id, Ledger: l})
	}
	return reconcile.Aggregate(ledgers)
}

// BuildReport reconciles scope without touching the selected scope. A rack that
// was never scanned reports everything missing.
func (s *Session) BuildReport(scope reconcile.Scope) (*reconcile.Report, error) {
	cat := s.catalogs.Snapshot()
	if cat == nil {
		return nil, reconcile.ErrCatalogNotLoaded
	}
	if scope.IsStoreWide() && len(s.racks.List()) == 0 {
		return nil, ErrNoRacks
	}
	return reconcile.Reconcile(scope, cat, s.Observations(scope))
}

// Report builds the discrepancy report for scope and remembers it as the
// selected scope.
func (s *Session) Report(ctx context.Context, scope reconcile.Scope) (*reconcile.Report, error) {
	report, err := s.BuildReport(scope)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveReport(scopeLabel(scope), "report")

	s.scopeMu.Lock()
	changed := s.selectedScope != scope.ID()
	s.selectedScope = scope.ID()
	s.scopeMu.Unlock()
	if changed {
		s.save(ctx)
	}
	return report, nil
}

// Comparison builds the full-catalog comparison over every rack.
func (s *Session) Comparison() (*reconcile.Comparison, error) {
	cmp, err := reconcile.Compare(s.catalogs.Snapshot(), s.Observations(reconcile.StoreWide()))
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveReport("store", "comparison")
	return cmp, nil
}

// WorkbookSheets builds the three sheets of the full workbook export.
func (s *Session) WorkbookSheets() ([]export.Sheet, error) {
	sheets, err := export.BuildSheets(s.catalogs.Snapshot(), s.Observations(reconcile.StoreWide()))
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveReport("store", "workbook")
	return sheets, nil
}

func scopeLabel(scope reconcile.Scope) string {
	if scope.IsStoreWide() {
		return "store"
	}
	return "rack"
}
