package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"stock-matcher/core/reconcile"
)

// ErrNothingToExport is returned when a report has no discrepancies.
var ErrNothingToExport = errors.New("There are no items to export. Everything is a perfect match!")

// DiscrepancyHeader is the header row of the discrepancy CSV.
var DiscrepancyHeader = []string{"Status", "Barcode", "Name", "ExpectedQty", "FoundQty", "Rack(s)"}

// DiscrepancyFileName names the CSV for a scope, e.g.
// report-discrepancy-STORE-WIDE-2026-03-01.csv.
func DiscrepancyFileName(scopeID string, now time.Time) string {
	return fmt.Sprintf("report-discrepancy-%s-%s.csv", strings.ReplaceAll(scopeID, " ", "_"), now.UTC().Format(time.DateOnly))
}

// WriteDiscrepancyCSV writes every non-matched line of report.
func WriteDiscrepancyCSV(w io.Writer, report *reconcile.Report) error {
	lines := report.Discrepancies()
	if len(lines) == 0 {
		return ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(DiscrepancyHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, line := range lines {
		record := []string{
			string(line.Status),
			line.Barcode,
			line.Name,
			strconv.Itoa(line.ExpectedQty),
			strconv.Itoa(line.FoundQty),
			line.Rack,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
