package export

import (
	"fmt"
	"io"
	"time"

	"stock-matcher/core/catalog"
	"stock-matcher/core/reconcile"

	"github.com/xuri/excelize/v2"
)

const (
	SheetMaster     = "Master Stock"
	SheetScanned    = "Scanned Data"
	SheetComparison = "Comparison Report"
)

// WorkbookContentType is the MIME type of the workbook.
const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is a named table: a header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// WorkbookFileName names the full workbook, e.g. Store-Report-2026-03-01.xlsx.
func WorkbookFileName(now time.Time) string {
	return fmt.Sprintf("Store-Report-%s.xlsx", now.UTC().Format(time.DateOnly))
}

// BuildSheets assembles the three workbook sheets from a catalog snapshot and
// store-wide observations.
func BuildSheets(cat *catalog.Catalog, observed reconcile.Observations) ([]Sheet, error) {
	cmp, err := reconcile.Compare(cat, observed)
	if err != nil {
		return nil, err
	}

	master := Sheet{Name: SheetMaster, Header: []string{"Barcode", "Name", "Size", "Rack", "ExpectedQty"}}
	for _, item := range cat.Items() {
		master.Rows = append(master.Rows, []any{item.Barcode, item.Name, item.Size, item.RackLabel, item.ExpectedQty})
	}

	scanned := Sheet{Name: SheetScanned, Header: []string{"Barcode", "Name", "ScannedQty"}}
	for _, total := range reconcile.ScannedTotals(cat, observed) {
		scanned.Rows = append(scanned.Rows, []any{total.Barcode, total.Name, total.ScannedQty})
	}

	comparison := Sheet{
		Name:   SheetComparison,
		Header: []string{"Status", "Barcode", "Name", "Rack", "ExpectedQty", "ScannedQty", "Difference"},
	}
	for _, row := range cmp.Rows {
		comparison.Rows = append(comparison.Rows, []any{
			string(row.Status), row.Barcode, row.Name, row.Rack, row.ExpectedQty, row.ScannedQty, row.Difference,
		})
	}

	return []Sheet{master, scanned, comparison}, nil
}

// WriteWorkbook renders sheets as an XLSX document, in order.
func WriteWorkbook(w io.Writer, sheets []Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		header := make([]any, len(sheet.Header))
		for j, h := range sheet.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %q: %w", sheet.Name, err)
		}

		for j, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return fmt.Errorf("failed to write row %d of %q: %w", j+1, sheet.Name, err)
			}
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
