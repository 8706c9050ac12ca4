package load

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pogen/schema/field"
)

type fakeSource struct {
	tables  []TableRef
	pks     map[string][]string
	columns map[string][]ColumnInfo

	tablesErr  error
	pkErr      error
	columnsErr error
	closeErr   error
	closed     int
}

func (s *fakeSource) Tables(context.Context) ([]TableRef, error) {
	return s.tables, s.tablesErr
}

func (s *fakeSource) PrimaryKeys(_ context.Context, ref TableRef) ([]string, error) {
	if s.pkErr != nil {
		return nil, s.pkErr
	}
	return s.pks[ref.Name], nil
}

func (s *fakeSource) Columns(_ context.Context, ref TableRef) ([]ColumnInfo, error) {
	if s.columnsErr != nil {
		return nil, s.columnsErr
	}
	return s.columns[ref.Name], nil
}

func (s *fakeSource) Close() error {
	s.closed++
	return s.closeErr
}

func strptr(s string) *string { return &s }

func orderItemSource() *fakeSource {
	return &fakeSource{
		tables: []TableRef{{Schema: "shop", Name: "order_item"}, {Schema: "shop", Name: "audit_log"}},
		pks: map[string][]string{
			"order_item": {"id"},
		},
		columns: map[string][]ColumnInfo{
			"order_item": {
				{Name: "id", TypeCode: field.Integer, TypeName: "int", Nullable: NoNulls, AutoIncrement: "YES"},
				{Name: "order_id", TypeCode: field.Integer, TypeName: "int", Nullable: NoNulls, AutoIncrement: "NO"},
				{Name: "note", TypeCode: field.VarChar, TypeName: "varchar(255)", Nullable: Nullable},
			},
			"audit_log": {
				{Name: "at", TypeCode: field.Timestamp, Nullable: NullableUnknown, Default: strptr("CURRENT_TIMESTAMP")},
				{Name: "seq", TypeCode: field.BigInt, Nullable: NoNulls, AutoIncrement: "yes"},
			},
		},
	}
}

func TestLoad(t *testing.T) {
	src := orderItemSource()
	tables, err := Load(context.Background(), src, nil)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, 1, src.closed)

	oi := tables[0]
	assert.Equal(t, "order_item", oi.Name)
	assert.Equal(t, "shop", oi.Schema)
	require.Len(t, oi.Columns, 3)
	assert.Equal(t, []string{"id", "order_id", "note"}, []string{oi.Columns[0].Name, oi.Columns[1].Name, oi.Columns[2].Name})

	id := oi.Columns[0]
	assert.True(t, id.PrimaryKey)
	assert.True(t, id.AutoIncrement)
	assert.False(t, id.Nullable)
	assert.Equal(t, field.TypeInteger, id.Type)
	assert.Equal(t, "int", id.DBType)

	orderID := oi.Columns[1]
	assert.False(t, orderID.PrimaryKey)
	assert.False(t, orderID.AutoIncrement)

	note := oi.Columns[2]
	assert.True(t, note.Nullable)
	assert.Equal(t, field.TypeText, note.Type)

	t.Run("unknown nullability is not nullable", func(t *testing.T) {
		at := tables[1].Columns[0]
		assert.False(t, at.Nullable)
		assert.Equal(t, field.TypeDate, at.Type)
		require.NotNil(t, at.Default)
		assert.Equal(t, "CURRENT_TIMESTAMP", *at.Default)
	})

	t.Run("only YES is auto-increment", func(t *testing.T) {
		assert.False(t, tables[1].Columns[1].AutoIncrement)
	})
}

func TestLoad_Empty(t *testing.T) {
	src := &fakeSource{}
	tables, err := Load(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Empty(t, tables)
	assert.Equal(t, 1, src.closed)
}

func TestLoad_Errors(t *testing.T) {
	boom := errors.New("permission denied")
	tests := []struct {
		name  string
		setup func(*fakeSource)
		op    string
	}{
		{"tables", func(s *fakeSource) { s.tablesErr = boom }, "tables"},
		{"primary keys", func(s *fakeSource) { s.pkErr = boom }, "primary keys"},
		{"columns", func(s *fakeSource) { s.columnsErr = boom }, "columns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := orderItemSource()
			tt.setup(src)
			tables, err := Load(context.Background(), src, nil)
			require.Error(t, err)
			assert.Nil(t, tables)
			assert.ErrorIs(t, err, ErrMetadata)
			assert.ErrorIs(t, err, boom)
			var serr *SourceError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.op, serr.Op)
			assert.Equal(t, 1, src.closed, "source must be closed exactly once")
		})
	}
}

func TestLoad_CloseError(t *testing.T) {
	src := orderItemSource()
	src.closeErr = errors.New("already closed")
	tables, err := Load(context.Background(), src, nil)
	require.NoError(t, err)
	assert.Len(t, tables, 2)
	assert.Equal(t, 1, src.closed)
}

func TestSourceError(t *testing.T) {
	err := &SourceError{Op: "columns", Table: "shop.users", Cause: errors.New("broken pipe")}
	assert.Equal(t, "pogen: read columns of shop.users: broken pipe", err.Error())
	err = &SourceError{Op: "tables", Cause: errors.New("broken pipe")}
	assert.Equal(t, "pogen: read tables: broken pipe", err.Error())
}

func TestTableRef_String(t *testing.T) {
	assert.Equal(t, "shop.users", TableRef{Schema: "shop", Name: "users"}.String())
	assert.Equal(t, "users", TableRef{Name: "users"}.String())
}
