// Package catalog holds the master stock list: the expected inventory that scans
// are reconciled against.
//
// # Lifecycle
//
// A Catalog is immutable. The Store starts empty, and every successful sync builds a
// brand new Catalog and swaps it in atomically, so readers always see either the old
// or the new list, never a mix. A failed sync leaves the current catalog untouched.
//
// # Ingestion
//
// Sources (a published spreadsheet URL or a CSV object in the bucket) return raw
// rows. Normalize maps the loosely-named columns ("Rack"/"rack",
// "ExpectedQty"/"Expected Qty"/"expectedqty", ...) into MasterItem values; nothing
// past this package ever sees a raw row.
//
// # Usage
//
//	syncer := catalog.NewSyncer(catalog.NewHTTPSource(url, 30*time.Second), store, logger, m)
//	cat, err := syncer.Sync(ctx)
package catalog
