package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"stock-matcher/core/catalog"
	"stock-matcher/core/export"
	"stock-matcher/core/ledger"
	"stock-matcher/core/metrics"
	"stock-matcher/core/reconcile"
	"stock-matcher/core/session"
	"stock-matcher/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newTestSession(t *testing.T, loaded bool) *session.Session {
	t.Helper()
	catalogs := catalog.NewStore()
	if loaded {
		catalogs.Replace(catalog.New([]catalog.MasterItem{
			{Barcode: "T00001", Name: "Widget", RackLabel: "A1", ExpectedQty: 2},
			{Barcode: "T00002", Name: "Gadget", RackLabel: "A1", ExpectedQty: 1},
			{Barcode: "T00003", Name: "Sprocket", RackLabel: "B1", ExpectedQty: 1},
		}, time.Now()))
	}
	return session.New(catalogs, ledger.NewRackStore(), nil, zap.NewNop(), metrics.New())
}

func setupTestApp(t *testing.T, sess *session.Session, publisher *export.Publisher) *fiber.App {
	t.Helper()
	app := fiber.New()
	f := NewFeature(sess, publisher, "inventory", zap.NewNop(), nil)
	require.NoError(t, f.Load(app))
	return app
}

func scan(t *testing.T, sess *session.Session, rack string, codes ...string) {
	t.Helper()
	for _, code := range codes {
		_, err := sess.Scan(context.Background(), rack, code)
		require.NoError(t, err)
	}
}

func fetch(t *testing.T, app *fiber.App, method, target string) (int, []byte, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body, resp.Header.Get(fiber.HeaderContentDisposition)
}

func TestHandleRackReport(t *testing.T) {
	sess := newTestSession(t, true)
	scan(t, sess, "A1", "T00001", "T00003")
	app := setupTestApp(t, sess, nil)

	status, body, _ := fetch(t, app, "GET", "/reports/racks/a1")
	require.Equal(t, fiber.StatusOK, status)

	var resp struct {
		Scope   string            `json:"scope"`
		Summary reconcile.Summary `json:"summary"`
		Extra   []reconcile.Line  `json:"extra"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "A1", resp.Scope)
	assert.Equal(t, reconcile.Summary{Mismatched: 1, Missing: 1, Extra: 1}, resp.Summary)
	require.Len(t, resp.Extra, 1)
	assert.Equal(t, "T00003", resp.Extra[0].Barcode)
	assert.Equal(t, "A1", sess.SelectedScope())
}

func TestHandleStoreReport(t *testing.T) {
	t.Run("NoRacks", func(t *testing.T) {
		app := setupTestApp(t, newTestSession(t, true), nil)
		status, _, _ := fetch(t, app, "GET", "/reports/store")
		assert.Equal(t, fiber.StatusPreconditionFailed, status)
	})

	t.Run("NoCatalog", func(t *testing.T) {
		app := setupTestApp(t, newTestSession(t, false), nil)
		status, _, _ := fetch(t, app, "GET", "/reports/racks/A1")
		assert.Equal(t, fiber.StatusPreconditionFailed, status)
	})

	t.Run("CrossRack", func(t *testing.T) {
		sess := newTestSession(t, true)
		scan(t, sess, "A1", "T00001", "T00002", "T00003")
		scan(t, sess, "B1", "T00001")
		app := setupTestApp(t, sess, nil)

		status, body, _ := fetch(t, app, "GET", "/reports/store")
		require.Equal(t, fiber.StatusOK, status)

		var resp ReportResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, reconcile.StoreWideID, resp.Scope)
		assert.Equal(t, reconcile.Summary{Matched: 3}, resp.Summary)
		assert.Equal(t, reconcile.StoreWideID, sess.SelectedScope())

		status, body, _ = fetch(t, app, "GET", "/reports/selected")
		require.Equal(t, fiber.StatusOK, status)
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, reconcile.StoreWideID, resp.Scope)
	})
}

func TestHandleCSV(t *testing.T) {
	sess := newTestSession(t, true)
	scan(t, sess, "A1", "T00001")
	scan(t, sess, "B1", "T00003")
	app := setupTestApp(t, sess, nil)

	status, body, disposition := fetch(t, app, "GET", "/reports/racks/A1/export.csv")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, disposition, "report-discrepancy-A1-")

	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, export.DiscrepancyHeader, records[0])
	assert.Equal(t, []string{"MISMATCHED", "T00001", "Widget", "2", "1", "A1"}, records[1])
	assert.Equal(t, []string{"MISSING", "T00002", "Gadget", "1", "0", "A1"}, records[2])

	status, body, _ = fetch(t, app, "GET", "/reports/racks/B1/export.csv")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, string(body), "Everything is a perfect match!")

	status, _, disposition = fetch(t, app, "GET", "/reports/store/export.csv")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, disposition, "report-discrepancy-STORE-WIDE-")
	assert.Empty(t, sess.SelectedScope())

	status, _, _ = fetch(t, app, "GET", "/reports/racks/B1")
	require.Equal(t, fiber.StatusOK, status)
	status, _, _ = fetch(t, app, "GET", "/reports/racks/A1/export.csv")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "B1", sess.SelectedScope())
}

func TestHandleWorkbook(t *testing.T) {
	sess := newTestSession(t, true)
	scan(t, sess, "A1", "T00001", "T09999")
	app := setupTestApp(t, sess, nil)

	status, body, disposition := fetch(t, app, "GET", "/reports/workbook")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, disposition, "Store-Report-")

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.SheetMaster, export.SheetScanned, export.SheetComparison}, f.GetSheetList())

	rows, err := f.GetRows(export.SheetComparison)
	require.NoError(t, err)
	assert.Len(t, rows, 5, "header, two observed rows and two missing rows")
}

func TestHandleComparison(t *testing.T) {
	sess := newTestSession(t, true)
	scan(t, sess, "A1", "T00001")
	app := setupTestApp(t, sess, nil)

	status, body, _ := fetch(t, app, "GET", "/reports/comparison")
	require.Equal(t, fiber.StatusOK, status)

	var cmp reconcile.Comparison
	require.NoError(t, json.Unmarshal(body, &cmp))
	require.Len(t, cmp.Rows, 3)
	assert.Equal(t, reconcile.StatusMismatched, cmp.Rows[0].Status)
	assert.Equal(t, -1, cmp.Rows[0].Difference)
}

func TestHandlePublishWorkbook(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		sess := newTestSession(t, true)
		scan(t, sess, "A1", "T00001")

		mockClient := new(mocks.Client)
		mockClient.On("PutObject", mock.Anything, "inventory",
			mock.MatchedBy(func(name string) bool { return strings.HasPrefix(name, "exports/") }),
			mock.Anything, mock.Anything, mock.Anything,
		).Return(minio.UploadInfo{}, nil)
		app := setupTestApp(t, sess, export.NewPublisher(mockClient, "inventory", "exports"))

		status, body, _ := fetch(t, app, "POST", "/reports/workbook/publish")
		require.Equal(t, fiber.StatusCreated, status)

		var published Published
		require.NoError(t, json.Unmarshal(body, &published))
		assert.Equal(t, "inventory", published.Bucket)
		assert.True(t, strings.HasSuffix(published.Object, ".xlsx"))
		mockClient.AssertExpectations(t)
	})

	t.Run("Disabled", func(t *testing.T) {
		app := setupTestApp(t, newTestSession(t, true), nil)
		status, _, _ := fetch(t, app, "POST", "/reports/workbook/publish")
		assert.Equal(t, fiber.StatusPreconditionFailed, status)
	})
}
