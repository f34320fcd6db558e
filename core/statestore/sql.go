package statestore

import (
	"context"
	"fmt"
	"time"

	"stock-matcher/core/database"
	"stock-matcher/core/ledger"

	"gorm.io/gorm"
)

const metaSelectedScope = "selected_scope"

// RackRow records that a rack exists, so emptied racks survive a reload.
type RackRow struct {
	RackID string `gorm:"column:rack_id;primaryKey;size:64"`
}

// TableName overrides the table name.
func (RackRow) TableName() string { return "rack_ids" }

// ScanRow is one ScanRecord of one rack.
type ScanRow struct {
	RackID        string `gorm:"column:rack_id;primaryKey;size:64"`
	Barcode       string `gorm:"column:barcode;primaryKey;size:32"`
	Name          string `gorm:"column:name;size:255"`
	Quantity      int    `gorm:"column:quantity"`
	LastScannedAt int64  `gorm:"column:last_scanned_at"`
}

// TableName overrides the table name.
func (ScanRow) TableName() string { return "rack_scans" }

// MetaRow is a key/value session setting.
type MetaRow struct {
	Key   string `gorm:"column:meta_key;primaryKey;size:64"`
	Value string `gorm:"column:meta_value;size:255"`
}

// TableName overrides the table name.
func (MetaRow) TableName() string { return "session_meta" }

// Models returns the row types backing SQLStore.
func Models() []any {
	return []any{&RackRow{}, &ScanRow{}, &MetaRow{}}
}

// expectedColumns lists the columns Migrate verifies after migrating.
var expectedColumns = map[string][]string{
	"rack_ids":     {"rack_id"},
	"rack_scans":   {"rack_id", "barcode", "name", "quantity", "last_scanned_at"},
	"session_meta": {"meta_key", "meta_value"},
}

// SQLStore keeps the state in relational tables. Timestamps are stored as Unix
// nanoseconds so they round-trip exactly on every dialect.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore wraps db. Call Migrate before first use.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate creates the tables and checks their columns.
func (s *SQLStore) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate state tables: %w", err)
	}
	for table, columns := range expectedColumns {
		if err := database.RequireColumns(db, table, columns...); err != nil {
			return err
		}
	}
	return nil
}

// Load reads every table into a State.
func (s *SQLStore) Load(ctx context.Context) (State, error) {
	db := s.db.WithContext(ctx)
	state := emptyState()

	var racks []RackRow
	if err := db.Find(&racks).Error; err != nil {
		return State{}, fmt.Errorf("failed to load racks: %w", err)
	}
	for _, r := range racks {
		state.Racks[r.RackID] = make(ledger.Ledger)
	}

	var scans []ScanRow
	if err := db.Find(&scans).Error; err != nil {
		return State{}, fmt.Errorf("failed to load scans: %w", err)
	}
	for _, row := range scans {
		l, ok := state.Racks[row.RackID]
		if !ok {
			l = make(ledger.Ledger)
			state.Racks[row.RackID] = l
		}
		l[row.Barcode] = ledger.ScanRecord{
			Barcode:       row.Barcode,
			Name:          row.Name,
			Quantity:      row.Quantity,
			LastScannedAt: time.Unix(0, row.LastScannedAt).UTC(),
		}
	}

	var meta []MetaRow
	if err := db.Find(&meta).Error; err != nil {
		return State{}, fmt.Errorf("failed to load session meta: %w", err)
	}
	for _, m := range meta {
		if m.Key == metaSelectedScope {
			state.SelectedScope = m.Value
		}
	}
	return state, nil
}

// Save replaces every table's content in a single transaction.
func (s *SQLStore) Save(ctx context.Context, state State) error {
	var racks []RackRow
	var scans []ScanRow
	for rackID, l := range state.Racks {
		racks = append(racks, RackRow{RackID: rackID})
		for code, rec := range l {
			scans = append(scans, ScanRow{
				RackID:        rackID,
				Barcode:       code,
				Name:          rec.Name,
				Quantity:      rec.Quantity,
				LastScannedAt: rec.LastScannedAt.UnixNano(),
			})
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&ScanRow{}, &RackRow{}, &MetaRow{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(racks) > 0 {
			if err := tx.CreateInBatches(racks, 500).Error; err != nil {
				return err
			}
		}
		if len(scans) > 0 {
			if err := tx.CreateInBatches(scans, 500).Error; err != nil {
				return err
			}
		}
		if state.SelectedScope != "" {
			return tx.Create(&MetaRow{Key: metaSelectedScope, Value: state.SelectedScope}).Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}
