package ledger

import (
	"sort"
	"time"
)

// ScanRecord is the observed state of one barcode in one rack.
type ScanRecord struct {
	Barcode       string    `json:"barcode"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	LastScannedAt time.Time `json:"lastScannedAt"`
}

// Ledger maps barcode to its record for a single rack.
type Ledger map[string]ScanRecord

// ItemCount is the number of distinct barcodes.
func (l Ledger) ItemCount() int {
	return len(l)
}

// TotalQuantity sums the quantities of every record.
func (l Ledger) TotalQuantity() int {
	total := 0
	for _, rec := range l {
		total += rec.Quantity
	}
	return total
}

// Records returns the records most recently scanned first, barcode breaking ties.
func (l Ledger) Records() []ScanRecord {
	out := make([]ScanRecord, 0, len(l))
	for _, rec := range l {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastScannedAt.Equal(out[j].LastScannedAt) {
			return out[i].LastScannedAt.After(out[j].LastScannedAt)
		}
		return out[i].Barcode < out[j].Barcode
	})
	return out
}

func (l Ledger) clone() Ledger {
	out := make(Ledger, len(l))
	for code, rec := range l {
		out[code] = rec
	}
	return out
}

// RackSummary describes one rack for listings.
type RackSummary struct {
	RackID        string `json:"rackId"`
	ItemCount     int    `json:"itemCount"`
	TotalQuantity int    `json:"totalQuantity"`
}
