package catalog

import "sync/atomic"

// Store holds the current catalog snapshot.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current catalog, or nil if none has been loaded.
// The returned catalog is never mutated.
func (s *Store) Snapshot() *Catalog {
	return s.current.Load()
}

// Replace swaps in c wholesale.
func (s *Store) Replace(c *Catalog) {
	s.current.Store(c)
}

// Loaded reports whether a catalog is available.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}
