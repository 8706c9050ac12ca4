package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pogen/orm"
	"github.com/syssam/pogen/schema"
	"github.com/syssam/pogen/schema/field"
)

func TestNewType(t *testing.T) {
	c := &Config{Package: "com.example.model", Header: DefaultHeader}
	typ, err := NewType(c, orderItem())
	require.NoError(t, err)

	assert.Equal(t, "OrderItemPO", typ.Name)
	assert.Equal(t, "OrderItemPO.go", typ.FileName())
	assert.Equal(t, "NewOrderItemPO", typ.Constructor())
	assert.Equal(t, "model", typ.Package)
	assert.Equal(t, "com.example.model", typ.Path)
	assert.Equal(t, "orm:table order_item", typ.TableDirective())
	assert.Empty(t, typ.Imports())
	assert.Equal(t, []string{DefaultHeader}, typ.HeaderLines())

	require.Len(t, typ.Fields, 3)
	tests := []struct {
		name, getter, setter, goType, tag string
	}{
		{"id", "GetId", "SetId", "int32", "id,pk,autoincrement"},
		{"orderId", "GetOrderId", "SetOrderId", "int32", "order_id,default=0"},
		{"note", "GetNote", "SetNote", "string", "note"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := typ.Fields[i]
			assert.Equal(t, tt.name, f.Name)
			assert.Equal(t, tt.getter, f.Getter())
			assert.Equal(t, tt.setter, f.Setter())
			assert.Equal(t, tt.goType, f.Type.String())
			assert.Equal(t, tt.tag, f.Tag)
		})
	}
}

func TestNewType_Imports(t *testing.T) {
	typ, err := NewType(&Config{Package: "model"}, auditLog())
	require.NoError(t, err)
	assert.Equal(t, []string{"encoding/json", "github.com/shopspring/decimal", "time"}, typ.Imports())
	assert.Nil(t, typ.HeaderLines())

	tags := make(map[string]string)
	for _, f := range typ.Fields {
		tags[f.Name] = f.Tag
	}
	assert.Equal(t, map[string]string{
		"id":        "id,pk",
		"amount":    "amount,default=",
		"ratio":     "ratio",
		"createdAt": "created_at,default=$DEFAULT_DATE",
		"enabled":   "enabled,default=",
		"score":     "score,default=0",
	}, tags)
}

func TestNewType_Singular(t *testing.T) {
	tbl := &schema.Table{Name: "order_items", Columns: []*schema.Column{{Name: "id"}}}

	typ, err := NewType(&Config{Package: "model"}, tbl)
	require.NoError(t, err)
	assert.Equal(t, "OrderItemsPO", typ.Name)

	typ, err = NewType(&Config{Package: "model", Singular: true}, tbl)
	require.NoError(t, err)
	assert.Equal(t, "OrderItemPO", typ.Name)
}

func TestNewType_Identifiers(t *testing.T) {
	tbl := &schema.Table{
		Name: "2fa_codes",
		Columns: []*schema.Column{
			{Name: "type"},
			{Name: "1st_try"},
			{Name: "e-mail", Type: field.TypeText},
			{Name: "_id_"},
		},
	}
	typ, err := NewType(&Config{Package: "model"}, tbl)
	require.NoError(t, err)
	assert.Equal(t, "_2faCodesPO", typ.Name)

	names := []string{"_type", "_1stTry", "e_mail", "id"}
	getters := []string{"GetType", "Get1stTry", "GetE_mail", "GetId"}
	for i, f := range typ.Fields {
		assert.Equal(t, names[i], f.Name)
		assert.Equal(t, getters[i], f.Getter())
	}
}

func TestNewType_TagNames(t *testing.T) {
	typ, err := NewType(&Config{Package: "model"}, &schema.Table{
		Name: "t",
		Columns: []*schema.Column{
			{Name: "id", PrimaryKey: true},
			{Name: "x,pk", Type: field.TypeInteger, Nullable: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, typ.Fields, 2)
	f := typ.Fields[1]
	assert.Equal(t, "'x,pk'", f.Tag)

	col, err := orm.ParseTag(f.Tag)
	require.NoError(t, err)
	assert.Equal(t, "x,pk", col.Name)
	assert.False(t, col.PrimaryKey)
	assert.Nil(t, col.Default)
}

func TestNewType_Errors(t *testing.T) {
	t.Run("empty identifier", func(t *testing.T) {
		_, err := NewType(&Config{Package: "model"}, &schema.Table{
			Name:    "t",
			Columns: []*schema.Column{{Name: "__"}},
		})
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		assert.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("backquote", func(t *testing.T) {
		_, err := NewType(&Config{Package: "model"}, &schema.Table{
			Name:    "t",
			Columns: []*schema.Column{{Name: "a`b"}},
		})
		require.ErrorIs(t, err, ErrInvalidSchema)
	})

	t.Run("duplicate field", func(t *testing.T) {
		_, err := NewType(&Config{Package: "model"}, &schema.Table{
			Name:    "t",
			Columns: []*schema.Column{{Name: "user_id"}, {Name: "USER_ID"}},
		})
		require.Error(t, err)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "t", schemaErr.Table)
		assert.Equal(t, "USER_ID", schemaErr.Column)
	})
}
