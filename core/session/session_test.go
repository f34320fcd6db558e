package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-matcher/core/barcode"
	"stock-matcher/core/catalog"
	"stock-matcher/core/ledger"
	"stock-matcher/core/metrics"
	"stock-matcher/core/reconcile"
	"stock-matcher/core/session"
	"stock-matcher/core/statestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStore struct {
	statestore.MemoryStore
	saveErr error
	saves   int
}

func (f *failingStore) Save(ctx context.Context, state statestore.State) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryStore.Save(ctx, state)
}

func newSession(t *testing.T, store statestore.Store, loaded bool) *session.Session {
	t.Helper()
	catalogs := catalog.NewStore()
	if loaded {
		catalogs.Replace(catalog.New([]catalog.MasterItem{
			{Barcode: "T00001", Name: "Widget", RackLabel: "A1", ExpectedQty: 5},
			{Barcode: "T00002", Name: "Gadget", RackLabel: "B1", ExpectedQty: 1},
		}, time.Now()))
	}
	return session.New(catalogs, ledger.NewRackStore(), store, zap.NewNop(), metrics.New())
}

func TestScan(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	s := newSession(t, store, true)

	rec, err := s.Scan(ctx, "a1", " T00001 ")
	require.NoError(t, err)
	assert.Equal(t, "Widget", rec.Name)
	assert.Equal(t, 1, rec.Quantity)

	rec, err = s.Scan(ctx, "A1", "T99999")
	require.NoError(t, err)
	assert.Equal(t, "Unknown: T99999", rec.Name)
	assert.Equal(t, 2, store.saves)

	_, err = s.Scan(ctx, "A1", "X12345")
	assert.ErrorIs(t, err, barcode.ErrInvalidFormat)
	_, err = s.Scan(ctx, " ", "T00001")
	assert.ErrorIs(t, err, ledger.ErrInvalidArgument)
	assert.Equal(t, 2, store.saves, "rejected scans are not persisted")

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Racks["A1"]["T00001"].Quantity)
}

func TestScan_RequiresCatalog(t *testing.T) {
	s := newSession(t, nil, false)
	_, err := s.Scan(context.Background(), "A1", "T00001")
	assert.ErrorIs(t, err, reconcile.ErrCatalogNotLoaded)
	assert.Empty(t, s.Racks().List())
}

func TestMutationsPersist(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	s := newSession(t, store, true)

	_, err := s.Scan(ctx, "A1", "T00001")
	require.NoError(t, err)
	require.NoError(t, s.Adjust(ctx, "A1", "T00001", 2))
	require.NoError(t, s.SetQuantity(ctx, "A1", "T00001", 4))
	require.NoError(t, s.Rename(ctx, "A1", "C1"))

	saved, _ := store.Load(ctx)
	assert.Equal(t, 4, saved.Racks["C1"]["T00001"].Quantity)
	assert.NotContains(t, saved.Racks, "A1")

	assert.ErrorIs(t, s.Adjust(ctx, "C1", "T00009", 1), ledger.ErrNotFound)
	assert.ErrorIs(t, s.Rename(ctx, "C1", "C1"), ledger.ErrConflict)

	require.NoError(t, s.Remove(ctx, "C1", "T00001"))
	require.NoError(t, s.DeleteRack(ctx, "C1"))
	saved, _ = store.Load(ctx)
	assert.Empty(t, saved.Racks)
}

func TestPersistFailureKeepsMutations(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{saveErr: errors.New("disk full")}
	s := newSession(t, store, true)

	for i := 1; i <= 2; i++ {
		rec, err := s.Scan(ctx, "A1", "T00001")
		require.NoError(t, err)
		assert.Equal(t, i, rec.Quantity)
	}
	require.NoError(t, s.Adjust(ctx, "A1", "T00001", 3))
	l, ok := s.Racks().Ledger("A1")
	require.True(t, ok)
	assert.Equal(t, 5, l["T00001"].Quantity)

	report, err := s.Report(ctx, reconcile.StoreWide())
	require.NoError(t, err)
	assert.Len(t, report.Matched, 1)
	assert.Equal(t, reconcile.StoreWideID, s.SelectedScope())
	assert.Equal(t, 4, store.saves)

	assert.ErrorContains(t, s.Persist(ctx), "disk full")

	store.saveErr = nil
	_, err = s.Scan(ctx, "B1", "T00002")
	require.NoError(t, err)
	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Racks["A1"]["T00001"].Quantity, "the next save carries earlier mutations")
	assert.Equal(t, reconcile.StoreWideID, saved.SelectedScope)
}

func TestBuildReportLeavesSelection(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{}
	s := newSession(t, store, true)
	_, err := s.Scan(ctx, "A1", "T00001")
	require.NoError(t, err)
	saves := store.saves

	report, err := s.BuildReport(reconcile.SingleRack("A1"))
	require.NoError(t, err)
	assert.Len(t, report.Mismatched, 1)
	assert.Empty(t, s.SelectedScope())
	assert.Equal(t, saves, store.saves)

	_, err = s.BuildReport(reconcile.StoreWide())
	require.NoError(t, err)
	_, err = newSession(t, nil, false).BuildReport(reconcile.SingleRack("A1"))
	assert.ErrorIs(t, err, reconcile.ErrCatalogNotLoaded)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store := statestore.NewMemoryStore()
	require.NoError(t, store.Save(ctx, statestore.State{
		Racks: map[string]ledger.Ledger{
			"A1": {"T00001": {Barcode: "T00001", Name: "Widget", Quantity: 4}},
		},
		SelectedScope: "A1",
	}))

	s := newSession(t, store, true)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, "A1", s.SelectedScope())
	assert.Equal(t, []ledger.RackSummary{{RackID: "A1", ItemCount: 1, TotalQuantity: 4}}, s.Racks().List())
}

func TestReport(t *testing.T) {
	ctx := context.Background()

	t.Run("NoCatalog", func(t *testing.T) {
		_, err := newSession(t, nil, false).Report(ctx, reconcile.SingleRack("A1"))
		assert.ErrorIs(t, err, reconcile.ErrCatalogNotLoaded)
	})

	t.Run("StoreWideNeedsRacks", func(t *testing.T) {
		_, err := newSession(t, nil, true).Report(ctx, reconcile.StoreWide())
		assert.ErrorIs(t, err, session.ErrNoRacks)
	})

	t.Run("UnscannedRackIsMissing", func(t *testing.T) {
		s := newSession(t, nil, true)
		report, err := s.Report(ctx, reconcile.SingleRack("A1"))
		require.NoError(t, err)
		require.Len(t, report.Missing, 1)
		assert.Equal(t, "A1", s.SelectedScope())
	})

	t.Run("StoreWide", func(t *testing.T) {
		store := statestore.NewMemoryStore()
		s := newSession(t, store, true)
		for i := 0; i < 5; i++ {
			_, err := s.Scan(ctx, "A1", "T00001")
			require.NoError(t, err)
		}
		_, err := s.Scan(ctx, "A1", "T00002")
		require.NoError(t, err)

		report, err := s.Report(ctx, reconcile.StoreWide())
		require.NoError(t, err)
		assert.Equal(t, reconcile.Summary{Matched: 2}, report.Summary())

		saved, _ := store.Load(ctx)
		assert.Equal(t, reconcile.StoreWideID, saved.SelectedScope)

		rackOnly, err := s.Report(ctx, reconcile.SingleRack("A1"))
		require.NoError(t, err)
		assert.Equal(t, []reconcile.Line{{
			Barcode: "T00002", Name: "Gadget", Rack: "A1", FoundQty: 1,
			Status: reconcile.StatusExtra, Details: "Found 1 of this unlisted item.",
		}}, rackOnly.Extra)
	})
}

func TestWorkbookSheets(t *testing.T) {
	s := newSession(t, nil, true)
	_, err := s.Scan(context.Background(), "B1", "T00002")
	require.NoError(t, err)

	sheets, err := s.WorkbookSheets()
	require.NoError(t, err)
	require.Len(t, sheets, 3)
	assert.Len(t, sheets[0].Rows, 2)
	assert.Len(t, sheets[1].Rows, 1)

	cmp, err := s.Comparison()
	require.NoError(t, err)
	assert.Len(t, cmp.Rows, 2)

	_, err = newSession(t, nil, false).WorkbookSheets()
	assert.ErrorIs(t, err, reconcile.ErrCatalogNotLoaded)
}
