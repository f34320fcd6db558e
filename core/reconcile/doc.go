// Package reconcile cross-references scanned quantities against the master catalog.
//
// # Architecture
//
// Reconciliation runs in two steps:
//
// 1. Aggregate folds one or more rack ledgers into a single barcode-keyed map of
// Observations, summing quantities and remembering which racks reported each barcode.
// The fold is order independent.
//
// 2. A strategy classifies every barcode against a catalog snapshot. There are two,
// and they are deliberately kept apart because their buckets differ:
//
//   - Reconcile builds the in-app discrepancy Report for one rack or the whole store.
//     Over- and under-counts both land in Mismatched; observed barcodes outside the
//     relevant catalog subset are Extra.
//   - Compare builds the full-catalog comparison used by the workbook export. It
//     splits over-counts (EXTRA) from under-counts (MISMATCHED) and marks barcodes
//     the catalog does not know as UNLISTED.
//
// A barcode expected in rack A1 but scanned under B1 is MISSING for A1 and EXTRA for
// B1 in single-rack scope; only the store-wide scope nets it out.
//
// # Usage Example
//
//	obs := reconcile.Aggregate(ledgers)
//	report, err := reconcile.Reconcile(reconcile.SingleRack("A1"), cat, obs)
//	if errors.Is(err, reconcile.ErrCatalogNotLoaded) {
//	    // ask the user to sync first
//	}
package reconcile
