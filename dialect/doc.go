// Package dialect names the database dialects pogen reads schema catalogs
// from, and maps database/sql driver names onto them.
//
//	dialect.MySQL    = "mysql"    // drivers: mysql
//	dialect.Postgres = "postgres" // drivers: postgres, pgx
//	dialect.SQLite   = "sqlite"   // drivers: sqlite, sqlite3
//
// A catalog source is opened by driver name; the dialect is derived from it:
//
//	src, err := sql.Open("pgx", "postgres://localhost/shop")
//	if err != nil {
//	    return err
//	}
//	err = pogen.New(src).Run(ctx, "com.example.model", "gen")
//
// The generator closes the source once the catalog has been read.
//
// Sub-packages:
//
//   - dialect/sql: catalog readers over database/sql, and over atlas inspection
//   - dialect/snapshot: catalog snapshots for generating without a database
package dialect
