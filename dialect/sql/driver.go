package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/syssam/pogen/compiler/load"
	"github.com/syssam/pogen/dialect"
)

// Source is a load.Source reading the catalog of a database/sql database.
// It owns the underlying *sql.DB and closes it on Close.
type Source struct {
	db      *sql.DB
	dialect string
	catalog catalog
	schemas []string
	logger  *slog.Logger

	// skipSystem excludes the system schemas of the dialect.
	skipSystem bool

	stats         *CatalogStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
}

// catalog reads the metadata of one dialect. Every method runs its queries
// to completion, so only one result set is open on the connection at a time.
type catalog interface {
	tables(context.Context, *Source) ([]load.TableRef, error)
	primaryKeys(context.Context, *Source, load.TableRef) ([]string, error)
	columns(context.Context, *Source, load.TableRef) ([]load.ColumnInfo, error)
}

// Option configures a Source.
type Option func(*Source)

// WithSchemas restricts the enumerated tables to the given schemas (or
// databases, in MySQL terms). By default every table and view the connection
// can see is read.
func WithSchemas(names ...string) Option {
	return func(s *Source) {
		s.schemas = append(s.schemas, names...)
	}
}

// WithoutSystemSchemas excludes the catalog schemas of the server (mysql,
// information_schema, performance_schema and sys for MySQL; pg_catalog and
// information_schema for Postgres). SQLite has none.
func WithoutSystemSchemas() Option {
	return func(s *Source) {
		s.skipSystem = true
	}
}

// WithLogger sets the logger of the source.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSlowThreshold sets the threshold for slow query detection.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) Option {
	return func(s *Source) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets a callback function for slow catalog queries.
func WithSlowQueryHook(hook SlowQueryHook) Option {
	return func(s *Source) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow catalog queries to the source logger.
func WithSlowQueryLog() Option {
	return func(s *Source) {
		s.slowHook = func(ctx context.Context, query string, args []any, duration time.Duration) {
			s.logger.WarnContext(ctx, "slow query detected", "duration", duration, "query", query, "args", args)
		}
	}
}

// Open opens a database with the given driver and returns a Source reading
// its catalog. The driver must be registered with database/sql, e.g. by
// importing github.com/go-sql-driver/mysql, github.com/lib/pq,
// github.com/jackc/pgx/v5/stdlib or modernc.org/sqlite.
func Open(driver, dsn string, opts ...Option) (*Source, error) {
	d, err := dialect.FromDriver(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", driver, err)
	}
	s, err := OpenDB(d, db, opts...)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return s, nil
}

// OpenDB returns a Source reading the catalog of db. The source takes
// ownership of db.
func OpenDB(d string, db *sql.DB, opts ...Option) (*Source, error) {
	s := &Source{
		db:            db,
		dialect:       d,
		logger:        slog.Default(),
		stats:         &CatalogStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	switch d {
	case dialect.MySQL:
		s.catalog = &mysqlCatalog{}
	case dialect.Postgres:
		s.catalog = &postgresCatalog{}
	case dialect.SQLite:
		s.catalog = &sqliteCatalog{}
	default:
		return nil, fmt.Errorf("dialect/sql: unsupported dialect %q", d)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dialect returns the dialect of the source.
func (s *Source) Dialect() string { return s.dialect }

// DB returns the underlying *sql.DB instance.
func (s *Source) DB() *sql.DB { return s.db }

// Stats returns the statistics of the catalog queries run so far.
func (s *Source) Stats() *CatalogStats { return s.stats }

// Tables implements the load.Source interface.
func (s *Source) Tables(ctx context.Context) ([]load.TableRef, error) {
	return s.catalog.tables(ctx, s)
}

// PrimaryKeys implements the load.Source interface.
func (s *Source) PrimaryKeys(ctx context.Context, ref load.TableRef) ([]string, error) {
	return s.catalog.primaryKeys(ctx, s, ref)
}

// Columns implements the load.Source interface.
func (s *Source) Columns(ctx context.Context, ref load.TableRef) ([]load.ColumnInfo, error) {
	return s.catalog.columns(ctx, s, ref)
}

// Close closes the underlying database.
func (s *Source) Close() error {
	s.logger.Debug("catalog queries done", "dialect", s.dialect, "stats", s.stats.Snapshot())
	return s.db.Close()
}

// query runs a catalog query and calls scan for every row. The rows are
// closed before query returns.
func (s *Source) query(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) (err error) {
	var n int64
	start := time.Now()
	defer func() { s.record(ctx, query, args, start, n, err) }()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		n++
		if err := scan(rows); err != nil {
			return fmt.Errorf("dialect/sql: scan: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("dialect/sql: rows: %w", err)
	}
	return nil
}

func (s *Source) record(ctx context.Context, query string, args []any, start time.Time, rows int64, err error) {
	duration := time.Since(start)
	slow := duration > s.slowThreshold
	s.stats.record(rows, duration, slow, err)
	if slow && s.slowHook != nil {
		s.slowHook(ctx, query, args, duration)
	}
}

// schemaFilter returns the "AND <column> IN (...)" clause restricting the
// query to the configured schemas, with placeholders numbered from start
// for Postgres.
func (s *Source) schemaFilter(column string, start int) (string, []any) {
	if len(s.schemas) == 0 {
		return "", nil
	}
	marks := make([]string, len(s.schemas))
	args := make([]any, len(s.schemas))
	for i, name := range s.schemas {
		if s.dialect == dialect.Postgres {
			marks[i] = "$" + strconv.Itoa(start+i)
		} else {
			marks[i] = "?"
		}
		args[i] = name
	}
	return " AND " + column + " IN (" + strings.Join(marks, ", ") + ")", args
}

// nullability converts an information_schema IS_NULLABLE value.
func nullability(s string) load.Nullability {
	switch strings.ToUpper(s) {
	case "YES":
		return load.Nullable
	case "NO":
		return load.NoNulls
	default:
		return load.NullableUnknown
	}
}

func autoIncrement(b bool) string {
	if b {
		return load.AutoIncrementYes
	}
	return "NO"
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

var _ load.Source = (*Source)(nil)
