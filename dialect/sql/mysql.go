package sql

import (
	"context"
	"database/sql"
	"strings"

	"github.com/syssam/pogen/compiler/load"
	"github.com/syssam/pogen/dialect"
	"github.com/syssam/pogen/schema/field"
)

type mysqlCatalog struct{}

// mysqlSystemSchemas is added to the table query by WithoutSystemSchemas.
const mysqlSystemSchemas = " AND `TABLE_SCHEMA` NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')"

const (
	mysqlTables = "SELECT `TABLE_SCHEMA`, `TABLE_NAME` FROM `INFORMATION_SCHEMA`.`TABLES` " +
		"WHERE `TABLE_TYPE` IN ('BASE TABLE', 'VIEW')"
	mysqlTablesOrder = " ORDER BY `TABLE_SCHEMA`, `TABLE_NAME`"
	mysqlPrimaryKeys = "SELECT `COLUMN_NAME` FROM `INFORMATION_SCHEMA`.`KEY_COLUMN_USAGE` " +
		"WHERE `TABLE_SCHEMA` = ? AND `TABLE_NAME` = ? AND `CONSTRAINT_NAME` = 'PRIMARY' " +
		"ORDER BY `ORDINAL_POSITION`"
	mysqlColumns = "SELECT `COLUMN_NAME`, `DATA_TYPE`, `COLUMN_TYPE`, `IS_NULLABLE`, `COLUMN_DEFAULT`, `EXTRA` " +
		"FROM `INFORMATION_SCHEMA`.`COLUMNS` WHERE `TABLE_SCHEMA` = ? AND `TABLE_NAME` = ? " +
		"ORDER BY `ORDINAL_POSITION`"
)

func (mysqlCatalog) tables(ctx context.Context, s *Source) ([]load.TableRef, error) {
	filter, args := s.schemaFilter("`TABLE_SCHEMA`", 1)
	if s.skipSystem {
		filter = mysqlSystemSchemas + filter
	}
	var refs []load.TableRef
	err := s.query(ctx, mysqlTables+filter+mysqlTablesOrder, args, func(rows *sql.Rows) error {
		var ref load.TableRef
		if err := rows.Scan(&ref.Schema, &ref.Name); err != nil {
			return err
		}
		refs = append(refs, ref)
		return nil
	})
	return refs, err
}

func (mysqlCatalog) primaryKeys(ctx context.Context, s *Source, ref load.TableRef) ([]string, error) {
	var keys []string
	err := s.query(ctx, mysqlPrimaryKeys, []any{ref.Schema, ref.Name}, func(rows *sql.Rows) error {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		keys = append(keys, name)
		return nil
	})
	return keys, err
}

func (mysqlCatalog) columns(ctx context.Context, s *Source, ref load.TableRef) ([]load.ColumnInfo, error) {
	var columns []load.ColumnInfo
	err := s.query(ctx, mysqlColumns, []any{ref.Schema, ref.Name}, func(rows *sql.Rows) error {
		var (
			c                         load.ColumnInfo
			dataType, nullable, extra string
			def                       sql.NullString
		)
		if err := rows.Scan(&c.Name, &dataType, &c.TypeName, &nullable, &def, &extra); err != nil {
			return err
		}
		// COLUMN_TYPE carries the display width that tells tinyint(1) apart.
		if c.TypeCode = TypeCode(dialect.MySQL, c.TypeName); c.TypeCode == field.Other {
			c.TypeCode = TypeCode(dialect.MySQL, dataType)
		}
		c.Nullable = nullability(nullable)
		c.Default = nullString(def)
		c.AutoIncrement = autoIncrement(strings.Contains(strings.ToLower(extra), "auto_increment"))
		columns = append(columns, c)
		return nil
	})
	return columns, err
}
