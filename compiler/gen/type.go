package gen

import (
	"slices"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/pogen/compiler/naming"
	"github.com/syssam/pogen/orm"
	"github.com/syssam/pogen/schema"
	"github.com/syssam/pogen/schema/field"
)

type (
	// Type is the render model of one persistent object file.
	Type struct {
		// Table is the table the type is generated from.
		Table *schema.Table
		// Name is the Go type name, e.g. OrderItemPO.
		Name string
		// Package is the Go package name.
		Package string
		// Path is the dotted namespace, written verbatim as the import comment.
		Path string
		// Header is the file header comment, without comment markers.
		Header string
		// Fields holds one field per column, in column order.
		Fields []*Field
	}

	// Field is the render model of one column.
	Field struct {
		// Column is the column the field is generated from.
		Column *schema.Column
		// Name is the unexported struct field name, e.g. orderId.
		Name string
		// Accessor is the accessor suffix, e.g. OrderId for GetOrderId.
		Accessor string
		// Type is the Go type of the field.
		Type field.GoType
		// Tag is the orm tag value.
		Tag string
	}
)

// NewType creates the render model for the given table.
func NewType(c *Config, t *schema.Table) (*Type, error) {
	base := t.Name
	if c.Singular {
		base = inflect.Singularize(base)
	}
	typ := &Type{
		Table:   t,
		Name:    naming.GoIdent(naming.Name(base, true) + Suffix),
		Package: c.PackageName(),
		Path:    c.Package,
		Header:  c.Header,
		Fields:  make([]*Field, 0, len(t.Columns)),
	}
	seen := make(map[string]string, len(t.Columns))
	for _, col := range t.Columns {
		name := naming.GoIdent(naming.Name(col.Name, false))
		if name == "" {
			return nil, NewSchemaError(t.Name, col.Name, "column name yields an empty identifier", nil)
		}
		if strings.ContainsRune(col.Name, '`') {
			return nil, NewSchemaError(t.Name, col.Name, "column name cannot be written into a struct tag", nil)
		}
		accessor := naming.GoIdent(naming.Name(col.Name, true))
		if prev, ok := seen[accessor]; ok {
			return nil, NewSchemaError(t.Name, col.Name, "field "+name+" already generated for column "+prev, nil)
		}
		seen[accessor] = col.Name
		typ.Fields = append(typ.Fields, &Field{
			Column:   col,
			Name:     name,
			Accessor: strings.TrimPrefix(accessor, "_"),
			Type:     col.Type.GoType(),
			Tag:      col.Tag().String(),
		})
	}
	return typ, nil
}

// FileName returns the file name of the type, e.g. OrderItemPO.go.
func (t *Type) FileName() string { return t.Name + ".go" }

// Constructor returns the name of the zero-argument constructor.
func (t *Type) Constructor() string { return "New" + t.Name }

// Receiver returns the receiver name of the generated methods.
func (t *Type) Receiver() string { return "po" }

// TableDirective returns the table directive of the type doc comment.
func (t *Type) TableDirective() string { return orm.TableDirective + " " + t.Table.Name }

// Imports returns the sorted import paths used by the fields.
func (t *Type) Imports() []string {
	var paths []string
	for _, f := range t.Fields {
		if f.Type.Pkg != "" && !slices.Contains(paths, f.Type.Pkg) {
			paths = append(paths, f.Type.Pkg)
		}
	}
	slices.Sort(paths)
	return paths
}

// HeaderLines returns the header split into lines.
func (t *Type) HeaderLines() []string {
	if t.Header == "" {
		return nil
	}
	return strings.Split(t.Header, "\n")
}

// Getter returns the getter name of the field.
func (f *Field) Getter() string { return "Get" + f.Accessor }

// Setter returns the setter name of the field.
func (f *Field) Setter() string { return "Set" + f.Accessor }
