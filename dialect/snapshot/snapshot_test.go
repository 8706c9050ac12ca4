package snapshot

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/syssam/pogen/compiler/load"
	"github.com/syssam/pogen/dialect"
	dsql "github.com/syssam/pogen/dialect/sql"
	"github.com/syssam/pogen/schema/field"
)

var discard = slog.New(slog.DiscardHandler)

func strptr(s string) *string { return &s }

func shop() *Snapshot {
	return &Snapshot{
		Version: Version,
		Dialect: dialect.MySQL,
		Tables: []Table{
			{
				Ref:         load.TableRef{Schema: "shop", Name: "order_item"},
				PrimaryKeys: []string{"id"},
				Columns: []load.ColumnInfo{
					{Name: "id", TypeCode: field.Integer, TypeName: "int", Nullable: load.NoNulls, AutoIncrement: load.AutoIncrementYes},
					{Name: "order_id", TypeCode: field.Integer, TypeName: "int", Nullable: load.NoNulls, Default: strptr("0"), AutoIncrement: "NO"},
					{Name: "note", TypeCode: field.VarChar, TypeName: "varchar(255)", Nullable: load.Nullable, AutoIncrement: "NO"},
				},
			},
		},
	}
}

func sqliteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE order_item (id INTEGER PRIMARY KEY AUTOINCREMENT, order_id INTEGER NOT NULL, note TEXT)`)
	require.NoError(t, err)
	return db
}

func TestCapture(t *testing.T) {
	src, err := dsql.OpenDB(dialect.SQLite, sqliteDB(t), dsql.WithLogger(discard))
	require.NoError(t, err)

	snap, err := Capture(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, Version, snap.Version)
	assert.Equal(t, dialect.SQLite, snap.Dialect)
	require.Len(t, snap.Tables, 1)
	assert.Equal(t, []string{"id"}, snap.Tables[0].PrimaryKeys)
	require.Len(t, snap.Tables[0].Columns, 3)
	assert.Equal(t, load.AutoIncrementYes, snap.Tables[0].Columns[0].AutoIncrement)
	assert.Error(t, src.DB().Ping(), "source is closed after capture")
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.pogen")
	want := shop()
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.Dialect, got.Dialect)
	assert.Equal(t, want.Tables, got.Tables)

	_, err = Load(filepath.Join(t.TempDir(), "missing.pogen"))
	require.Error(t, err)
}

func TestRead_Version(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, msgpack.NewEncoder(&buf).Encode(&Snapshot{Version: Version + 1}))
	_, err := Read(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version")

	_, err = Read(bytes.NewReader([]byte{0xc1}))
	require.Error(t, err)
}

func TestSource(t *testing.T) {
	src := shop().Source()
	tables, err := load.Load(context.Background(), src, discard)
	require.NoError(t, err)
	assert.Equal(t, 1, src.CloseCount())
	assert.Equal(t, dialect.MySQL, src.Dialect())

	require.Len(t, tables, 1)
	tbl := tables[0]
	assert.Equal(t, "shop.order_item", tbl.QualifiedName())
	assert.True(t, tbl.Column("id").PrimaryKey)
	assert.True(t, tbl.Column("id").AutoIncrement)
	assert.True(t, tbl.Column("note").Nullable)
	assert.Equal(t, field.TypeText, tbl.Column("note").Type)

	t.Run("closed", func(t *testing.T) {
		_, err := src.Tables(context.Background())
		require.ErrorIs(t, err, ErrClosed)
		_, err = src.Columns(context.Background(), load.TableRef{Schema: "shop", Name: "order_item"})
		require.ErrorIs(t, err, ErrClosed)
		require.ErrorIs(t, src.Close(), ErrClosed)
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := shop().Source().PrimaryKeys(context.Background(), load.TableRef{Name: "missing"})
		require.Error(t, err)
	})
}

func TestCapture_Error(t *testing.T) {
	src := shop().Source()
	require.NoError(t, src.Close())

	_, err := Capture(context.Background(), src)
	require.ErrorIs(t, err, load.ErrMetadata)
	require.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, 2, src.CloseCount())
}
