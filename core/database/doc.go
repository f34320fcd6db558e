// Package database opens GORM connections and inspects table schemas.
//
// # Connect
//
// Connect supports MySQL, PostgreSQL and SQLite (":memory:" works for tests). The
// connection is pinged before it is returned, bounded by TimeoutSeconds.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns (PRAGMA on SQLite, SHOW COLUMNS on MySQL,
// the GORM migrator elsewhere). RequireColumns verifies that a table carries the
// columns a store relies on.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logger.Warn("Optional database connection failed", zap.Error(err))
//	}
//
//	err = database.RequireColumns(db, "rack_scans", "rack_id", "barcode")
package database
