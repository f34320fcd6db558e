package ledger

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"stock-matcher/core/barcode"
)

var (
	// ErrNotFound is returned when a rack or barcode does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a rename would collide or is a no-op.
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument is returned for out-of-range quantities and blank rack names.
	ErrInvalidArgument = errors.New("invalid argument")
)

// NormalizeRackID trims and uppercases a rack id.
func NormalizeRackID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

type rack struct {
	mu     sync.Mutex
	ledger Ledger
}

// RackStore holds every rack's ledger.
type RackStore struct {
	mu    sync.RWMutex
	racks map[string]*rack
	now   func() time.Time
}

// Option configures a RackStore.
type Option func(*RackStore)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *RackStore) {
		s.now = now
	}
}

// NewRackStore creates an empty store.
func NewRackStore(opts ...Option) *RackStore {
	s := &RackStore{
		racks: make(map[string]*rack),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp is UTC without a monotonic reading so stored times round-trip exactly.
func (s *RackStore) timestamp() time.Time {
	return s.now().UTC().Round(0)
}

// withRack runs fn under the rack's lock. If create is set a missing rack is
// created while holding the store lock.
func (s *RackStore) withRack(id string, create bool, fn func(*rack) error) error {
	s.mu.RLock()
	if r, ok := s.racks[id]; ok {
		defer s.mu.RUnlock()
		r.mu.Lock()
		defer r.mu.Unlock()
		return fn(r)
	}
	s.mu.RUnlock()

	if !create {
		return ErrNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.racks[id]
	if !ok {
		r = &rack{ledger: make(Ledger)}
		s.racks[id] = r
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r)
}

// RecordScan counts one scan of code in rackID. It returns false without touching
// anything when the barcode is malformed or the rack id is blank.
func (s *RackStore) RecordScan(rackID, code, name string) (ScanRecord, bool) {
	id := NormalizeRackID(rackID)
	code = barcode.Normalize(code)
	if id == "" || !barcode.IsValid(code) {
		return ScanRecord{}, false
	}

	var out ScanRecord
	_ = s.withRack(id, true, func(r *rack) error {
		rec, ok := r.ledger[code]
		if ok {
			rec.Quantity++
		} else {
			rec = ScanRecord{Barcode: code, Name: name, Quantity: 1}
		}
		rec.LastScannedAt = s.timestamp()
		r.ledger[code] = rec
		out = rec
		return nil
	})
	return out, true
}

// Adjust applies delta to a record. A result of zero or less removes the record.
func (s *RackStore) Adjust(rackID, code string, delta int) error {
	code = barcode.Normalize(code)
	return s.withRack(NormalizeRackID(rackID), false, func(r *rack) error {
		rec, ok := r.ledger[code]
		if !ok {
			return ErrNotFound
		}
		rec.Quantity += delta
		if rec.Quantity <= 0 {
			delete(r.ledger, code)
			return nil
		}
		r.ledger[code] = rec
		return nil
	})
}

// SetQuantity replaces a record's quantity, which must be at least one.
func (s *RackStore) SetQuantity(rackID, code string, qty int) error {
	if qty < 1 {
		return ErrInvalidArgument
	}
	code = barcode.Normalize(code)
	return s.withRack(NormalizeRackID(rackID), false, func(r *rack) error {
		rec, ok := r.ledger[code]
		if !ok {
			return ErrNotFound
		}
		rec.Quantity = qty
		rec.LastScannedAt = s.timestamp()
		r.ledger[code] = rec
		return nil
	})
}

// Remove deletes a record. Missing racks or barcodes are ignored.
func (s *RackStore) Remove(rackID, code string) {
	code = barcode.Normalize(code)
	_ = s.withRack(NormalizeRackID(rackID), false, func(r *rack) error {
		delete(r.ledger, code)
		return nil
	})
}

// DeleteRack drops a rack and its ledger.
func (s *RackStore) DeleteRack(rackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.racks, NormalizeRackID(rackID))
}

// Rename moves a ledger to a new rack id. It fails with ErrConflict when the ids
// are equal or the target exists, and with ErrNotFound when the source is absent.
func (s *RackStore) Rename(oldID, newID string) error {
	from, to := NormalizeRackID(oldID), NormalizeRackID(newID)
	if to == "" {
		return ErrInvalidArgument
	}
	if from == to {
		return ErrConflict
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.racks[from]
	if !ok {
		return ErrNotFound
	}
	if _, exists := s.racks[to]; exists {
		return ErrConflict
	}
	s.racks[to] = r
	delete(s.racks, from)
	return nil
}

// Has reports whether rackID has a ledger.
func (s *RackStore) Has(rackID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.racks[NormalizeRackID(rackID)]
	return ok
}

// List summarizes every rack, sorted by id.
func (s *RackStore) List() []RackSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RackSummary, 0, len(s.racks))
	for id, r := range s.racks {
		r.mu.Lock()
		out = append(out, RackSummary{
			RackID:        id,
			ItemCount:     r.ledger.ItemCount(),
			TotalQuantity: r.ledger.TotalQuantity(),
		})
		r.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RackID < out[j].RackID
	})
	return out
}

// Ledger returns a copy of one rack's ledger.
func (s *RackStore) Ledger(rackID string) (Ledger, bool) {
	var out Ledger
	err := s.withRack(NormalizeRackID(rackID), false, func(r *rack) error {
		out = r.ledger.clone()
		return nil
	})
	return out, err == nil
}

// Snapshot copies every ledger.
func (s *RackStore) Snapshot() map[string]Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Ledger, len(s.racks))
	for id, r := range s.racks {
		r.mu.Lock()
		out[id] = r.ledger.clone()
		r.mu.Unlock()
	}
	return out
}

// Restore replaces the whole store with state. Blank rack ids and records with a
// quantity below one are dropped.
func (s *RackStore) Restore(state map[string]Ledger) {
	racks := make(map[string]*rack, len(state))
	for rawID, l := range state {
		id := NormalizeRackID(rawID)
		if id == "" {
			continue
		}
		r, ok := racks[id]
		if !ok {
			r = &rack{ledger: make(Ledger, len(l))}
			racks[id] = r
		}
		for code, rec := range l {
			if rec.Quantity < 1 {
				continue
			}
			if rec.Barcode == "" {
				rec.Barcode = code
			}
			rec.LastScannedAt = rec.LastScannedAt.UTC().Round(0)
			r.ledger[code] = rec
		}
	}

	s.mu.Lock()
	s.racks = racks
	s.mu.Unlock()
}
