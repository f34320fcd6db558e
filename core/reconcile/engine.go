package reconcile

import (
	"fmt"
	"sort"

	"stock-matcher/core/catalog"
)

// Reconcile builds the in-app discrepancy report for scope.
//
// The relevant catalog subset is the items expected in the rack, or the whole
// catalog for store-wide scope. Every observed barcode in the subset is Matched or
// Mismatched; every observed barcode outside it is Extra; whatever is left in the
// subset is Missing. Each catalog barcode in the subset lands in exactly one bucket.
func Reconcile(scope Scope, cat *catalog.Catalog, observed Observations) (*Report, error) {
	if cat == nil {
		return nil, ErrCatalogNotLoaded
	}

	relevant := cat.Subset(func(m catalog.MasterItem) bool {
		return scope.IsStoreWide() || m.InRack(scope.RackID())
	})

	report := &Report{
		Scope:      scope.ID(),
		Matched:    []Line{},
		Mismatched: []Line{},
		Missing:    []Line{},
		Extra:      []Line{},
	}

	for code, obs := range observed {
		item, ok := relevant[code]
		if !ok {
			report.Extra = append(report.Extra, Line{
				Barcode:  code,
				Name:     obs.Name,
				Rack:     foundRack(scope, obs),
				FoundQty: obs.TotalQuantity,
				Status:   StatusExtra,
				Details:  fmt.Sprintf("Found %d of this unlisted item.", obs.TotalQuantity),
			})
			continue
		}
		delete(relevant, code)

		line := Line{
			Barcode:     code,
			Name:        item.Name,
			Rack:        foundRack(scope, obs),
			ExpectedQty: item.ExpectedQty,
			FoundQty:    obs.TotalQuantity,
			Status:      StatusMatched,
		}
		if obs.TotalQuantity == item.ExpectedQty {
			report.Matched = append(report.Matched, line)
			continue
		}
		line.Status = StatusMismatched
		line.Details = fmt.Sprintf("Expected %d, but found %d.", item.ExpectedQty, obs.TotalQuantity)
		report.Mismatched = append(report.Mismatched, line)
	}

	for code, item := range relevant {
		rack := scope.RackID()
		if scope.IsStoreWide() {
			rack = item.RackLabel
		}
		report.Missing = append(report.Missing, Line{
			Barcode:     code,
			Name:        item.Name,
			Rack:        rack,
			ExpectedQty: item.ExpectedQty,
			Status:      StatusMissing,
			Details:     fmt.Sprintf("Expected %d, but none were found.", item.ExpectedQty),
		})
	}

	for _, bucket := range [][]Line{report.Matched, report.Mismatched, report.Missing, report.Extra} {
		sortLines(bucket)
	}
	return report, nil
}

func foundRack(scope Scope, obs *Observation) string {
	if !scope.IsStoreWide() {
		return scope.RackID()
	}
	return joinRacks(obs.Racks())
}

func sortLines(lines []Line) {
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Barcode < lines[j].Barcode
	})
}
