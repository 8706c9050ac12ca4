package sql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/syssam/pogen/compiler/load"
	"github.com/syssam/pogen/dialect"
	"github.com/syssam/pogen/schema/field"
)

type postgresCatalog struct{}

const postgresSystemSchemas = ` AND table_schema NOT IN ('pg_catalog', 'information_schema')`

const (
	postgresTables = `SELECT table_schema, table_name FROM information_schema.tables ` +
		`WHERE table_type IN ('BASE TABLE', 'VIEW')`
	postgresTablesOrder = ` ORDER BY table_schema, table_name`
	postgresPrimaryKeys = `SELECT kcu.column_name FROM information_schema.table_constraints tc ` +
		`JOIN information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name ` +
		`AND tc.table_schema = kcu.table_schema AND tc.table_name = kcu.table_name ` +
		`WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = $1 AND tc.table_name = $2 ` +
		`ORDER BY kcu.ordinal_position`
	postgresColumns = `SELECT column_name, data_type, udt_name, is_nullable, column_default, is_identity ` +
		`FROM information_schema.columns WHERE table_schema = $1 AND table_name = $2 ` +
		`ORDER BY ordinal_position`
)

func (postgresCatalog) tables(ctx context.Context, s *Source) ([]load.TableRef, error) {
	filter, args := s.schemaFilter("table_schema", 1)
	if s.skipSystem {
		filter = postgresSystemSchemas + filter
	}
	var refs []load.TableRef
	err := s.query(ctx, postgresTables+filter+postgresTablesOrder, args, func(rows *sql.Rows) error {
		var ref load.TableRef
		if err := rows.Scan(&ref.Schema, &ref.Name); err != nil {
			return err
		}
		refs = append(refs, ref)
		return nil
	})
	return refs, err
}

func (postgresCatalog) primaryKeys(ctx context.Context, s *Source, ref load.TableRef) ([]string, error) {
	var keys []string
	err := s.query(ctx, postgresPrimaryKeys, []any{ref.Schema, ref.Name}, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		keys = append(keys, name)
		return nil
	})
	return keys, err
}

func (postgresCatalog) columns(ctx context.Context, s *Source, ref load.TableRef) ([]load.ColumnInfo, error) {
	var columns []load.ColumnInfo
	err := s.query(ctx, postgresColumns, []any{ref.Schema, ref.Name}, func(rows *sql.Rows) error {
		var (
			c                              load.ColumnInfo
			dataType, nullable, isIdentity string
			def                            sql.NullString
		)
		if err := rows.Scan(&c.Name, &dataType, &c.TypeName, &nullable, &def, &isIdentity); err != nil {
			return err
		}
		// USER-DEFINED and ARRAY are reported in data_type; udt_name names the actual type.
		if c.TypeCode = TypeCode(dialect.Postgres, dataType); c.TypeCode == field.Other {
			c.TypeCode = TypeCode(dialect.Postgres, c.TypeName)
		}
		if dataType == "ARRAY" {
			c.TypeCode = field.Other
		}
		c.Nullable = nullability(nullable)
		c.Default = nullString(def)
		c.AutoIncrement = autoIncrement(strings.EqualFold(isIdentity, "YES") ||
			(def.Valid && strings.HasPrefix(def.String, "nextval(")))
		columns = append(columns, c)
		return nil
	})
	return columns, err
}
