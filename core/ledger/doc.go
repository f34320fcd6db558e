// Package ledger records scan observations per rack.
//
// A Ledger maps barcode to ScanRecord for one rack. Every record present has a
// quantity of at least one: an adjustment that would take it to zero removes it.
//
// # RackStore
//
// RackStore owns every ledger, keyed by the uppercased rack id. Mutations on one rack
// are serialized by that rack's mutex so no increment is lost; structural changes
// (creating, deleting, renaming racks, or restoring a snapshot) hold the store lock.
//
// The store never deduplicates scans. Cooldowns for repeated scans belong to the
// caller.
//
// # Usage
//
//	racks := ledger.NewRackStore()
//	rec, ok := racks.RecordScan("a1", "T00001", "Widget")
//	err := racks.Adjust("A1", "T00001", -1)
package ledger
