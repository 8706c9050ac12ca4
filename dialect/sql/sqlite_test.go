package sql

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/pogen/compiler/load"
	"github.com/syssam/pogen/dialect"
	"github.com/syssam/pogen/schema"
	"github.com/syssam/pogen/schema/field"
)

const shopDDL = `
CREATE TABLE order_item (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id INTEGER NOT NULL DEFAULT 0,
	note VARCHAR(255),
	amount DECIMAL(10,2) NOT NULL,
	created_at DATETIME NOT NULL,
	paid BOOLEAN NOT NULL DEFAULT 0
);
CREATE TABLE tag (
	name TEXT NOT NULL,
	item_id INTEGER NOT NULL,
	PRIMARY KEY (item_id, name)
);
`

// shopDB creates a file backed SQLite database holding the shop tables.
func shopDB(t *testing.T) string {
	t.Helper()
	return sqliteDB(t, shopDDL)
}

func sqliteDB(t *testing.T, ddl string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(ddl)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	return path
}

func checkShop(t *testing.T, tables []*schema.Table) {
	t.Helper()
	require.Len(t, tables, 2)
	item, tag := tables[0], tables[1]
	assert.Equal(t, "order_item", item.QualifiedName())
	assert.Equal(t, "tag", tag.QualifiedName())

	tests := []struct {
		column   string
		typ      field.Type
		pk       bool
		autoinc  bool
		nullable bool
	}{
		{"id", field.TypeInteger, true, true, true},
		{"order_id", field.TypeInteger, false, false, false},
		{"note", field.TypeText, false, false, true},
		{"amount", field.TypeDecimal, false, false, false},
		{"created_at", field.TypeDate, false, false, false},
		{"paid", field.TypeBool, false, false, false},
	}
	require.Len(t, item.Columns, len(tests))
	for i, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			c := item.Columns[i]
			assert.Equal(t, tt.column, c.Name)
			assert.Equal(t, tt.typ, c.Type)
			assert.Equal(t, tt.pk, c.PrimaryKey)
			assert.Equal(t, tt.autoinc, c.AutoIncrement)
			assert.Equal(t, tt.nullable, c.Nullable)
		})
	}
	require.NotNil(t, item.Column("order_id").Default)
	assert.Equal(t, "0", *item.Column("order_id").Default)

	var keys []string
	for _, c := range tag.PrimaryKey() {
		keys = append(keys, c.Name)
		assert.False(t, c.AutoIncrement)
	}
	assert.ElementsMatch(t, []string{"item_id", "name"}, keys)
}

func TestSQLite(t *testing.T) {
	src, err := Open("sqlite", shopDB(t), WithLogger(discard))
	require.NoError(t, err)
	assert.Equal(t, dialect.SQLite, src.Dialect())

	tables, err := load.Load(context.Background(), src, discard)
	require.NoError(t, err)
	checkShop(t, tables)
	assert.Error(t, src.DB().Ping(), "source is closed after load")
}

func TestSQLite_PrimaryKeyOrder(t *testing.T) {
	src, err := Open("sqlite", shopDB(t), WithLogger(discard))
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()
	refs, err := src.Tables(ctx)
	require.NoError(t, err)
	require.Equal(t, []load.TableRef{{Name: "order_item"}, {Name: "tag"}}, refs)

	keys, err := src.PrimaryKeys(ctx, refs[1])
	require.NoError(t, err)
	assert.Equal(t, []string{"item_id", "name"}, keys)
}

func TestSQLite_AutoIncrement(t *testing.T) {
	tests := []struct {
		name    string
		ddl     string
		autoinc bool
	}{
		{"plain", `CREATE TABLE counter (id INTEGER PRIMARY KEY AUTOINCREMENT, n INTEGER)`, true},
		{"order", `CREATE TABLE counter (id INTEGER PRIMARY KEY ASC autoincrement, n INTEGER)`, true},
		{"conflict", `CREATE TABLE counter (id INTEGER PRIMARY KEY ON CONFLICT REPLACE AUTOINCREMENT, n INTEGER)`, true},
		{"rowid", `CREATE TABLE counter (id INTEGER PRIMARY KEY, n INTEGER)`, false},
		{"column name", `CREATE TABLE counter (id INTEGER PRIMARY KEY, autoincrement_step INTEGER NOT NULL)`, false},
		{"quoted column", `CREATE TABLE counter (id INTEGER PRIMARY KEY, "autoincrement" INTEGER)`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Open("sqlite", sqliteDB(t, tt.ddl), WithLogger(discard))
			require.NoError(t, err)
			tables, err := load.Load(context.Background(), src, discard)
			require.NoError(t, err)
			require.Len(t, tables, 1)
			id := tables[0].Column("id")
			require.NotNil(t, id)
			assert.True(t, id.PrimaryKey)
			assert.Equal(t, tt.autoinc, id.AutoIncrement)
			for _, c := range tables[0].Columns[1:] {
				assert.False(t, c.AutoIncrement, c.Name)
			}
		})
	}
}

func TestSQLite_Views(t *testing.T) {
	path := sqliteDB(t, shopDDL+`CREATE VIEW unpaid AS SELECT id, note, amount FROM order_item WHERE paid = 0;`)
	src, err := Open("sqlite", path, WithLogger(discard))
	require.NoError(t, err)

	tables, err := load.Load(context.Background(), src, discard)
	require.NoError(t, err)
	require.Len(t, tables, 3)
	view := tables[2]
	assert.Equal(t, "unpaid", view.QualifiedName())
	assert.Empty(t, view.PrimaryKey())
	require.Len(t, view.Columns, 3)
	assert.Equal(t, field.TypeInteger, view.Column("id").Type)
	assert.False(t, view.Column("id").AutoIncrement)
	assert.Equal(t, field.TypeDecimal, view.Column("amount").Type)
}

func TestAtlasSQLite(t *testing.T) {
	db, err := sql.Open("sqlite", shopDB(t))
	require.NoError(t, err)
	src, err := OpenAtlas(dialect.SQLite, db, WithLogger(discard))
	require.NoError(t, err)

	tables, err := load.Load(context.Background(), src, discard)
	require.NoError(t, err)
	checkShop(t, tables)
}

func TestAtlas_Errors(t *testing.T) {
	db, err := sql.Open("sqlite", shopDB(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = OpenAtlas("oracle", db)
	require.Error(t, err)

	src, err := OpenAtlas(dialect.SQLite, db)
	require.NoError(t, err)
	_, err = src.Columns(context.Background(), load.TableRef{Name: "order_item"})
	require.Error(t, err, "columns before tables")
}
