package items_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"stock-matcher/core/barcode"
	"stock-matcher/core/catalog"
	"stock-matcher/core/httperr"
	"stock-matcher/core/ledger"
	"stock-matcher/core/reconcile"
	"stock-matcher/core/session"
	"stock-matcher/feature/items"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSession(t *testing.T, loaded bool) *session.Session {
	t.Helper()
	catalogs := catalog.NewStore()
	if loaded {
		catalogs.Replace(catalog.New([]catalog.MasterItem{
			{Barcode: "T00001", Name: "Widget", RackLabel: "a1", ExpectedQty: 3},
			{Barcode: "T00002", Name: "Gadget", RackLabel: "B1", ExpectedQty: 1},
		}, time.Now()))
	}
	return session.New(catalogs, ledger.NewRackStore(), nil, zap.NewNop(), nil)
}

func scan(t *testing.T, s *session.Session, rack string, codes ...string) {
	t.Helper()
	for _, code := range codes {
		_, err := s.Scan(context.Background(), rack, code)
		require.NoError(t, err)
	}
}

func TestGetItemDetail(t *testing.T) {
	sess := newSession(t, true)
	scan(t, sess, "A1", "T00001", "T00001")
	scan(t, sess, "C3", "T00001", "T00001", "T77777")
	svc := items.NewService(sess, zap.NewNop())

	t.Run("Listed", func(t *testing.T) {
		report, err := svc.Detail(" T00001 ")
		require.NoError(t, err)
		assert.True(t, report.InCatalog)
		assert.Equal(t, "Widget", report.Name)
		assert.Equal(t, 4, report.ScannedQty)
		assert.Equal(t, []items.RackCount{{RackID: "A1", Quantity: 2}, {RackID: "C3", Quantity: 2}}, report.Racks)
		assert.Equal(t, reconcile.StatusExtra, report.Status)
		assert.Equal(t, []string{"Found 2 in C3, expected in A1."}, report.Notes)
	})

	t.Run("Missing", func(t *testing.T) {
		report, err := svc.Detail("T00002")
		require.NoError(t, err)
		assert.Equal(t, reconcile.StatusMissing, report.Status)
		assert.Empty(t, report.Racks)
	})

	t.Run("Unlisted", func(t *testing.T) {
		report, err := svc.Detail("T77777")
		require.NoError(t, err)
		assert.False(t, report.InCatalog)
		assert.Equal(t, reconcile.StatusUnlisted, report.Status)
		assert.Equal(t, "Unknown: T77777", report.Name)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := svc.Detail("T99999")
		assert.ErrorIs(t, err, httperr.ErrNotFound)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := svc.Detail("X1")
		assert.ErrorIs(t, err, barcode.ErrInvalidFormat)
	})
}

func TestGetItemDetail_NoCatalog(t *testing.T) {
	_, err := items.NewService(newSession(t, false), zap.NewNop()).Detail("T00001")
	assert.ErrorIs(t, err, reconcile.ErrCatalogNotLoaded)
}

func TestHandleGetItemDetail(t *testing.T) {
	sess := newSession(t, true)
	scan(t, sess, "B1", "T00002")

	app := fiber.New()
	f := items.NewFeature(sess, zap.NewNop())
	assert.Equal(t, "items", f.Name())
	require.NoError(t, f.Load(app))

	resp, err := app.Test(httptest.NewRequest("GET", "/items/T00002", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MATCHED", body["status"])
	assert.EqualValues(t, 1, body["scannedQty"])

	resp, err = app.Test(httptest.NewRequest("GET", "/items/T99999", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
