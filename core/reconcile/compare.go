package reconcile

import (
	"sort"

	"stock-matcher/core/catalog"
)

// UnknownItemName labels barcodes the catalog does not know in the comparison
// and scanned-data sheets.
const UnknownItemName = "Unknown Item"

// Compare classifies every catalog barcode against store-wide observations.
// Over-counts are EXTRA and under-counts MISMATCHED; observed barcodes unknown to
// the catalog are UNLISTED and catalog barcodes never observed are MISSING.
func Compare(cat *catalog.Catalog, observed Observations) (*Comparison, error) {
	if cat == nil {
		return nil, ErrCatalogNotLoaded
	}

	rows := make([]ComparisonRow, 0, cat.Len()+len(observed))
	for _, code := range observed.Barcodes() {
		scanned := observed[code].TotalQuantity
		item, ok := cat.Get(code)
		if !ok {
			rows = append(rows, ComparisonRow{
				Status:     StatusUnlisted,
				Barcode:    code,
				Name:       UnknownItemName,
				Rack:       catalog.Placeholder,
				ScannedQty: scanned,
				Difference: scanned,
			})
			continue
		}

		status := StatusMatched
		switch {
		case scanned > item.ExpectedQty:
			status = StatusExtra
		case scanned < item.ExpectedQty:
			status = StatusMismatched
		}
		rows = append(rows, ComparisonRow{
			Status:      status,
			Barcode:     code,
			Name:        item.Name,
			Rack:        item.RackLabel,
			ExpectedQty: item.ExpectedQty,
			ScannedQty:  scanned,
			Difference:  scanned - item.ExpectedQty,
		})
	}

	for _, item := range cat.Items() {
		if _, seen := observed[item.Barcode]; seen {
			continue
		}
		rows = append(rows, ComparisonRow{
			Status:      StatusMissing,
			Barcode:     item.Barcode,
			Name:        item.Name,
			Rack:        item.RackLabel,
			ExpectedQty: item.ExpectedQty,
			Difference:  -item.ExpectedQty,
		})
	}

	return &Comparison{Rows: rows}, nil
}

// ScannedTotals lists store-wide scanned quantities sorted by barcode, named from
// the catalog when it knows the barcode. cat may be nil.
func ScannedTotals(cat *catalog.Catalog, observed Observations) []ScannedTotal {
	out := make([]ScannedTotal, 0, len(observed))
	for code, obs := range observed {
		name := UnknownItemName
		if cat != nil {
			if item, ok := cat.Get(code); ok {
				name = item.Name
			}
		}
		out = append(out, ScannedTotal{Barcode: code, Name: name, ScannedQty: obs.TotalQuantity})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Barcode < out[j].Barcode
	})
	return out
}
