package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/syssam/pogen/compiler/load"
	"github.com/syssam/pogen/dialect"
)

// sqliteCatalog keeps the CREATE statements read by tables, since
// AUTOINCREMENT is only visible in the table DDL.
type sqliteCatalog struct {
	ddl map[load.TableRef]string
}

const (
	sqliteTables  = `SELECT name, sql FROM %s WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%%' ORDER BY name`
	sqliteColumns = `SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?, ?) ORDER BY cid`
)

// sqliteAutoIncrement matches the AUTOINCREMENT keyword of a column
// constraint, where it can only follow PRIMARY KEY, an optional sort order
// and an optional conflict clause.
var sqliteAutoIncrement = regexp.MustCompile(`(?i)\bPRIMARY\s+KEY(\s+(ASC|DESC))?(\s+ON\s+CONFLICT\s+\w+)?\s+AUTOINCREMENT\b`)

func (c *sqliteCatalog) tables(ctx context.Context, s *Source) ([]load.TableRef, error) {
	c.ddl = make(map[load.TableRef]string)
	schemas := s.schemas
	if len(schemas) == 0 {
		schemas = []string{""}
	}
	var refs []load.TableRef
	for _, schema := range schemas {
		master := "sqlite_master"
		if schema != "" {
			master = quoteIdent(schema) + ".sqlite_master"
		}
		err := s.query(ctx, fmt.Sprintf(sqliteTables, master), nil, func(rows *sql.Rows) error {
			var (
				ref = load.TableRef{Schema: schema}
				ddl sql.NullString
			)
			if err := rows.Scan(&ref.Name, &ddl); err != nil {
				return err
			}
			c.ddl[ref] = ddl.String
			refs = append(refs, ref)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return refs, nil
}

func (c *sqliteCatalog) primaryKeys(ctx context.Context, s *Source, ref load.TableRef) ([]string, error) {
	cols, err := c.tableInfo(ctx, s, ref)
	if err != nil {
		return nil, err
	}
	var keys []string
	for pos := 1; ; pos++ {
		n := len(keys)
		for _, col := range cols {
			if col.pk == pos {
				keys = append(keys, col.Name)
			}
		}
		if len(keys) == n {
			return keys, nil
		}
	}
}

func (c *sqliteCatalog) columns(ctx context.Context, s *Source, ref load.TableRef) ([]load.ColumnInfo, error) {
	cols, err := c.tableInfo(ctx, s, ref)
	if err != nil {
		return nil, err
	}
	var pks int
	for _, col := range cols {
		if col.pk > 0 {
			pks++
		}
	}
	// Only a single INTEGER PRIMARY KEY column can be declared AUTOINCREMENT.
	autoinc := pks == 1 && sqliteAutoIncrement.MatchString(c.ddl[ref])
	columns := make([]load.ColumnInfo, 0, len(cols))
	for _, col := range cols {
		info := col.ColumnInfo
		info.AutoIncrement = autoIncrement(autoinc && col.pk > 0)
		columns = append(columns, info)
	}
	return columns, nil
}

type sqliteColumn struct {
	load.ColumnInfo
	pk int
}

func (c *sqliteCatalog) tableInfo(ctx context.Context, s *Source, ref load.TableRef) ([]sqliteColumn, error) {
	schema := ref.Schema
	if schema == "" {
		schema = "main"
	}
	var cols []sqliteColumn
	err := s.query(ctx, sqliteColumns, []any{ref.Name, schema}, func(rows *sql.Rows) error {
		var (
			col     sqliteColumn
			notNull bool
			def     sql.NullString
		)
		if err := rows.Scan(&col.Name, &col.TypeName, &notNull, &def, &col.pk); err != nil {
			return err
		}
		col.TypeCode = TypeCode(dialect.SQLite, col.TypeName)
		col.Nullable = load.Nullable
		if notNull {
			col.Nullable = load.NoNulls
		}
		col.Default = nullString(def)
		cols = append(cols, col)
		return nil
	})
	return cols, err
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
