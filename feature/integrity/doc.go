// Package integrity provides infrastructure health checks.
//
// # Checks Provided
//
//   - Structure: the catalog, state and export folders exist in the storage bucket.
//   - Catalog: the master list object is present and a snapshot is loaded.
//   - Schema: the state database tables carry the columns the SQL backend writes.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/catalog : Runs catalog check.
//   - GET /integrity/schema : Runs schema check.
package integrity
