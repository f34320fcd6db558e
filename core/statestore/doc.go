// Package statestore persists the session state: every rack ledger plus the last
// selected report scope.
//
// # Backends
//
//   - memory: process-local, lost on restart. The default.
//   - sql: gorm tables rack_ids, rack_scans and session_meta, replaced in one transaction.
//   - object: one JSON document in the storage bucket.
//   - redis: one JSON value under a configurable key.
//
// Every backend round-trips quantities, names, and timestamps exactly. Load on an
// empty backend returns an empty State, not an error.
//
// # Usage
//
//	store, err := statestore.New(ctx, cfg.State, statestore.Deps{DB: db})
//	state, err := store.Load(ctx)
//	racks.Restore(state.Racks)
package statestore
