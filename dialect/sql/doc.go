// Package sql reads relational schema catalogs through database/sql.
//
// A Source queries the catalog of one of the supported dialects directly:
//
//   - MySQL: INFORMATION_SCHEMA.TABLES, KEY_COLUMN_USAGE and COLUMNS
//   - PostgreSQL: information_schema.tables, table_constraints, key_column_usage and columns
//   - SQLite: sqlite_master and pragma_table_info
//
// An AtlasSource reads the same metadata through atlas schema inspection.
// Both implement load.Source:
//
//	src, err := sql.Open("pgx", dsn, sql.WithSchemas("public"))
//	if err != nil {
//	    return err
//	}
//	tables, err := load.Load(ctx, src, logger)
//
// Vendor type names are mapped to the standard type codes of package field
// by TypeCode.
package sql
