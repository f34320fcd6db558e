package reconcile

import (
	"errors"
	"sort"
	"strings"

	"stock-matcher/core/ledger"
)

// StoreWideID is the scope id used for store-wide reports.
const StoreWideID = "STORE-WIDE"

// ErrCatalogNotLoaded is returned when no master catalog has been synced yet.
var ErrCatalogNotLoaded = errors.New("master stock list not loaded, sync it before building a report")

// Status classifies a line item.
type Status string

const (
	// StatusMatched means the found quantity equals the expected quantity.
	StatusMatched Status = "MATCHED"
	// StatusMismatched means the quantities differ (in-app report) or fall short (comparison).
	StatusMismatched Status = "MISMATCHED"
	// StatusMissing means the item was expected but never observed.
	StatusMissing Status = "MISSING"
	// StatusExtra means the item was not expected here (in-app report) or was over-counted (comparison).
	StatusExtra Status = "EXTRA"
	// StatusUnlisted means the barcode is absent from the catalog. Comparison only.
	StatusUnlisted Status = "UNLISTED"
)

// Scope selects which ledgers and which catalog subset a report covers.
type Scope struct {
	rackID string
}

// SingleRack scopes a report to one rack.
func SingleRack(rackID string) Scope {
	return Scope{rackID: ledger.NormalizeRackID(rackID)}
}

// StoreWide scopes a report to every rack and the entire catalog.
func StoreWide() Scope {
	return Scope{}
}

// ParseScope maps an id back to a scope. Blank and STORE-WIDE are store-wide.
func ParseScope(id string) Scope {
	id = ledger.NormalizeRackID(id)
	if id == StoreWideID {
		return StoreWide()
	}
	return Scope{rackID: id}
}

// IsStoreWide reports whether the scope spans every rack.
func (s Scope) IsStoreWide() bool {
	return s.rackID == ""
}

// RackID returns the rack id, empty for store-wide scope.
func (s Scope) RackID() string {
	return s.rackID
}

// ID returns the rack id or STORE-WIDE.
func (s Scope) ID() string {
	if s.IsStoreWide() {
		return StoreWideID
	}
	return s.rackID
}

// RackLedger pairs a ledger with the rack it belongs to.
type RackLedger struct {
	RackID string
	Ledger ledger.Ledger
}

// Observation is the aggregated state of one barcode across the scope.
type Observation struct {
	// Barcode is the scanned code.
	Barcode string `json:"barcode"`

	// Name is the display name recorded at scan time.
	Name string `json:"name"`

	// TotalQuantity sums the quantity from every contributing rack.
	TotalQuantity int `json:"totalQuantity"`

	racks    map[string]struct{}
	nameRack string
}

// Racks returns the contributing rack ids, sorted.
func (o *Observation) Racks() []string {
	out := make([]string, 0, len(o.racks))
	for id := range o.racks {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Observations maps barcode to its aggregated observation.
type Observations map[string]*Observation

// Line is one classified item of a Report.
type Line struct {
	// Barcode identifies the item.
	Barcode string `json:"barcode"`

	// Name is the catalog name, or the scanned name for extra items.
	Name string `json:"name"`

	// Rack is the rack id in single-rack scope. In store-wide scope it lists the
	// contributing racks, or the expected rack label when nothing was found.
	Rack string `json:"rack"`

	// ExpectedQty is zero for extra items.
	ExpectedQty int `json:"expectedQty"`

	// FoundQty is zero for missing items.
	FoundQty int `json:"foundQty"`

	// Status is the bucket the line belongs to.
	Status Status `json:"status"`

	// Details is a human-readable explanation, empty for matched items.
	Details string `json:"details,omitempty"`
}

// Report is the in-app discrepancy report. Each bucket is sorted by barcode.
type Report struct {
	// Scope is the rack id or STORE-WIDE.
	Scope string `json:"scope"`

	Matched    []Line `json:"matched"`
	Mismatched []Line `json:"mismatched"`
	Missing    []Line `json:"missing"`
	Extra      []Line `json:"extra"`
}

// Summary counts the lines in each bucket.
type Summary struct {
	Matched    int `json:"matched"`
	Mismatched int `json:"mismatched"`
	Missing    int `json:"missing"`
	Extra      int `json:"extra"`
}

// Summary returns per-bucket counts.
func (r *Report) Summary() Summary {
	return Summary{
		Matched:    len(r.Matched),
		Mismatched: len(r.Mismatched),
		Missing:    len(r.Missing),
		Extra:      len(r.Extra),
	}
}

// Discrepancies returns the non-matched lines in export order: mismatched,
// missing, then extra.
func (r *Report) Discrepancies() []Line {
	out := make([]Line, 0, len(r.Mismatched)+len(r.Missing)+len(r.Extra))
	out = append(out, r.Mismatched...)
	out = append(out, r.Missing...)
	return append(out, r.Extra...)
}

// ComparisonRow is one row of the full-catalog comparison.
type ComparisonRow struct {
	Status      Status `json:"status"`
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	Rack        string `json:"rack"`
	ExpectedQty int    `json:"expectedQty"`
	ScannedQty  int    `json:"scannedQty"`
	Difference  int    `json:"difference"`
}

// Comparison is the full-catalog comparison. Observed rows come first, sorted by
// barcode, followed by the missing rows sorted by barcode.
type Comparison struct {
	Rows []ComparisonRow `json:"rows"`
}

// ScannedTotal is the store-wide scanned quantity of one barcode.
type ScannedTotal struct {
	Barcode    string `json:"barcode"`
	Name       string `json:"name"`
	ScannedQty int    `json:"scannedQty"`
}

func joinRacks(racks []string) string {
	return strings.Join(racks, ", ")
}
