// Package session is the application state shared by the HTTP features and the CLI:
// the master catalog snapshot, the rack ledgers, and the store they persist to.
//
// Every ledger mutation goes through Session so the state is saved right after it.
// A save failure is returned to the caller; the in-memory mutation stays applied.
//
// # Lifecycle
//
//	s := session.New(catalogs, racks, store, logger, m)
//	if err := s.Load(ctx); err != nil { ... }   // restore racks from the store
//	rec, err := s.Scan(ctx, "A1", "T00001")
//	report, err := s.Report(ctx, reconcile.SingleRack("A1"))
package session
