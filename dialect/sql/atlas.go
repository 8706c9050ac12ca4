package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/pogen/compiler/load"
	"github.com/syssam/pogen/dialect"
	"github.com/syssam/pogen/schema/field"
)

// AtlasSource is a load.Source built on atlas schema inspection. The realm
// is inspected once, on the first call to Tables. It owns the underlying
// *sql.DB and closes it on Close.
type AtlasSource struct {
	db      *sql.DB
	dialect string
	schemas []string
	logger  *slog.Logger
	tables  map[load.TableRef]*schema.Table
}

// OpenAtlas returns an AtlasSource reading the catalog of db. Only the
// WithSchemas and WithLogger options apply.
func OpenAtlas(d string, db *sql.DB, opts ...Option) (*AtlasSource, error) {
	switch d {
	case dialect.MySQL, dialect.Postgres, dialect.SQLite:
	default:
		return nil, fmt.Errorf("dialect/sql: unsupported dialect %q", d)
	}
	cfg := &Source{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}
	return &AtlasSource{
		db:      db,
		dialect: d,
		schemas: cfg.schemas,
		logger:  cfg.logger,
	}, nil
}

func (s *AtlasSource) inspector() (schema.Inspector, error) {
	switch s.dialect {
	case dialect.MySQL:
		return mysql.Open(s.db)
	case dialect.Postgres:
		return postgres.Open(s.db)
	default:
		return sqlite.Open(s.db)
	}
}

// Tables implements the load.Source interface.
func (s *AtlasSource) Tables(ctx context.Context) ([]load.TableRef, error) {
	insp, err := s.inspector()
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open atlas driver: %w", err)
	}
	realm, err := insp.InspectRealm(ctx, &schema.InspectRealmOption{
		Mode:    schema.InspectSchemas | schema.InspectTables,
		Schemas: s.schemas,
	})
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: inspect realm: %w", err)
	}
	s.tables = make(map[load.TableRef]*schema.Table)
	var refs []load.TableRef
	for _, sch := range realm.Schemas {
		name := sch.Name
		if s.dialect == dialect.SQLite && name == "main" {
			name = ""
		}
		for _, t := range sch.Tables {
			ref := load.TableRef{Schema: name, Name: t.Name}
			s.tables[ref] = t
			refs = append(refs, ref)
		}
	}
	s.logger.DebugContext(ctx, "realm inspected", "dialect", s.dialect, "tables", len(refs))
	return refs, nil
}

func (s *AtlasSource) table(ref load.TableRef) (*schema.Table, error) {
	t, ok := s.tables[ref]
	if !ok {
		return nil, fmt.Errorf("dialect/sql: table %s was not inspected", ref)
	}
	return t, nil
}

// PrimaryKeys implements the load.Source interface.
func (s *AtlasSource) PrimaryKeys(_ context.Context, ref load.TableRef) ([]string, error) {
	t, err := s.table(ref)
	if err != nil {
		return nil, err
	}
	if t.PrimaryKey == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(t.PrimaryKey.Parts))
	for _, p := range t.PrimaryKey.Parts {
		if p.C != nil {
			keys = append(keys, p.C.Name)
		}
	}
	return keys, nil
}

// Columns implements the load.Source interface.
func (s *AtlasSource) Columns(_ context.Context, ref load.TableRef) ([]load.ColumnInfo, error) {
	t, err := s.table(ref)
	if err != nil {
		return nil, err
	}
	columns := make([]load.ColumnInfo, 0, len(t.Columns))
	for _, c := range t.Columns {
		info := load.ColumnInfo{
			Name:          c.Name,
			AutoIncrement: autoIncrement(atlasAutoIncrement(c)),
			Nullable:      load.NullableUnknown,
		}
		if c.Type != nil {
			info.TypeName = c.Type.Raw
			info.TypeCode = atlasTypeCode(s.dialect, c.Type)
			info.Nullable = load.NoNulls
			if c.Type.Null {
				info.Nullable = load.Nullable
			}
		}
		switch x := c.Default.(type) {
		case *schema.Literal:
			info.Default = &x.V
		case *schema.RawExpr:
			info.Default = &x.X
		}
		columns = append(columns, info)
	}
	return columns, nil
}

// Close closes the underlying database.
func (s *AtlasSource) Close() error { return s.db.Close() }

func atlasAutoIncrement(c *schema.Column) bool {
	if c.Type != nil {
		if _, ok := c.Type.Type.(*postgres.SerialType); ok {
			return true
		}
	}
	for _, a := range c.Attrs {
		switch a.(type) {
		case *mysql.AutoIncrement, *sqlite.AutoIncrement, *postgres.Identity:
			return true
		}
	}
	return false
}

// atlasTypeCode maps an inspected column type to its standard code. The
// type name is tried first, and the atlas type class decides when the name
// is unknown to the dialect.
func atlasTypeCode(d string, ct *schema.ColumnType) field.TypeCode {
	var (
		name     string
		fallback = field.Other
	)
	switch t := ct.Type.(type) {
	case *schema.BoolType:
		return field.Boolean
	case *schema.IntegerType:
		name, fallback = t.T, field.Integer
	case *postgres.SerialType:
		name, fallback = t.T, field.Integer
	case *schema.DecimalType:
		name, fallback = t.T, field.Decimal
	case *schema.FloatType:
		name, fallback = t.T, field.Double
	case *schema.TimeType:
		name, fallback = t.T, field.Timestamp
	case *schema.StringType:
		name, fallback = t.T, field.VarChar
	case *schema.EnumType:
		name, fallback = t.T, field.Char
	case *schema.BinaryType:
		name, fallback = t.T, field.VarBinary
	default:
		name = ct.Raw
	}
	if d == dialect.MySQL && strings.HasPrefix(strings.ToLower(ct.Raw), "tinyint(1)") {
		return field.Boolean
	}
	if code := TypeCode(d, name); code != field.Other {
		return code
	}
	return fallback
}

var _ load.Source = (*AtlasSource)(nil)
