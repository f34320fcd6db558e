// Package racks exposes scanning and rack management over HTTP.
//
// Scans are validated, checked against the loaded master list, and throttled per
// rack: after an accepted scan the rack ignores further scans for the configured
// cooldown. The ledger itself never deduplicates.
package racks
