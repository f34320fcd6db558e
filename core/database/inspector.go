package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrSchemaMismatch is returned when a table lacks expected columns.
var ErrSchemaMismatch = errors.New("schema mismatch")

// ColumnInfo describes one table column.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // NULL default is possible
	Extra   string
}

// GetTableColumns retrieves the column definitions for a given table.
// Names and types are lowercased. A missing table yields no columns.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	switch db.Dialector.Name() {
	case DriverSQLite:
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{Field: col.Name, Type: col.Type})
		}

	case DriverMySQL:
		if !db.Migrator().HasTable(tableName) {
			return nil, nil
		}
		if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}

	default:
		if !db.Migrator().HasTable(tableName) {
			return nil, nil
		}
		types, err := db.Migrator().ColumnTypes(tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range types {
			columns = append(columns, ColumnInfo{Field: col.Name(), Type: col.DatabaseTypeName()})
		}
	}

	for i := range columns {
		columns[i].Field = strings.ToLower(columns[i].Field)
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

// RequireColumns fails with ErrSchemaMismatch unless tableName has every column.
func RequireColumns(db *gorm.DB, tableName string, columns ...string) error {
	existing, err := GetTableColumns(db, tableName)
	if err != nil {
		return err
	}

	have := make(map[string]struct{}, len(existing))
	for _, col := range existing {
		have[col.Field] = struct{}{}
	}

	var missing []string
	for _, col := range columns {
		if _, ok := have[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: table %s is missing %s", ErrSchemaMismatch, tableName, strings.Join(missing, ", "))
	}
	return nil
}
