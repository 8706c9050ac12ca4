package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/pogen/orm"
	"github.com/syssam/pogen/schema"
	"github.com/syssam/pogen/schema/field"
)

func strptr(s string) *string { return &s }

func orderItem() *schema.Table {
	return &schema.Table{
		Schema: "shop",
		Name:   "order_item",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeInteger, TypeCode: field.Integer, PrimaryKey: true, AutoIncrement: true},
			{Name: "order_id", Type: field.TypeInteger, TypeCode: field.Integer},
			{Name: "note", Type: field.TypeText, TypeCode: field.VarChar, Nullable: true},
		},
	}
}

func auditLog() *schema.Table {
	return &schema.Table{
		Name: "audit_log",
		Columns: []*schema.Column{
			{Name: "id", Type: field.TypeLong, TypeCode: field.BigInt, PrimaryKey: true},
			{Name: "amount", Type: field.TypeDecimal, TypeCode: field.Decimal},
			{Name: "ratio", Type: field.TypeNumber, TypeCode: field.Numeric, Nullable: true},
			{Name: "created_at", Type: field.TypeDate, TypeCode: field.Timestamp},
			{Name: "enabled", Type: field.TypeBool, TypeCode: field.Boolean},
			{Name: "score", Type: field.TypeDouble, TypeCode: field.Double, Default: strptr("1.5")},
		},
	}
}

type poField struct {
	Name string
	Type string
	Tag  orm.Column
}

// poFile is the part of an emitted file checked by tests.
type poFile struct {
	Package   string
	Canonical string
	Header    string
	Imports   []string
	TypeName  string
	Table     string
	Fields    []poField
	Funcs     []string
	Methods   []string
}

func inspect(t *testing.T, src []byte) *poFile {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", src, parser.ParseComments)
	require.NoError(t, err, string(src))

	po := &poFile{Package: f.Name.Name}
	line := strings.SplitN(string(src), "\n", 2)[0]
	if strings.HasPrefix(line, "// ") {
		po.Header = strings.TrimPrefix(line, "// ")
	}
	for _, l := range strings.Split(string(src), "\n") {
		if after, ok := strings.CutPrefix(l, "package "+f.Name.Name+" // import "); ok {
			po.Canonical, err = strconv.Unquote(after)
			require.NoError(t, err)
		}
	}
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		require.NoError(t, err)
		po.Imports = append(po.Imports, path)
	}
	for _, decl := range f.Decls {
		switch decl := decl.(type) {
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				continue
			}
			spec := decl.Specs[0].(*ast.TypeSpec)
			po.TypeName = spec.Name.Name
			require.NotNil(t, decl.Doc)
			var doc []string
			for _, c := range decl.Doc.List {
				doc = append(doc, c.Text)
			}
			po.Table, _ = orm.TableName(strings.Join(doc, "\n"))
			for _, fd := range spec.Type.(*ast.StructType).Fields.List {
				require.NotNil(t, fd.Tag)
				tag, err := strconv.Unquote(fd.Tag.Value)
				require.NoError(t, err)
				col, ok, err := orm.Lookup(reflect.StructTag(tag))
				require.NoError(t, err)
				require.True(t, ok)
				po.Fields = append(po.Fields, poField{Name: fd.Names[0].Name, Type: types.ExprString(fd.Type), Tag: col})
			}
		case *ast.FuncDecl:
			if decl.Recv == nil {
				po.Funcs = append(po.Funcs, decl.Name.Name)
			} else {
				po.Methods = append(po.Methods, decl.Name.Name)
			}
		}
	}
	return po
}
