package schema

import (
	"github.com/syssam/pogen/orm"
	"github.com/syssam/pogen/schema/field"
)

// Table is a snapshot of one catalog table. It is built once per generation
// run and not modified after loading.
type Table struct {
	// Schema is the catalog schema (or database) holding the table, if the
	// catalog reports one.
	Schema  string    `yaml:"schema,omitempty"`
	Name    string    `yaml:"name"`
	Columns []*Column `yaml:"columns"`
}

// Column is a snapshot of one table column.
type Column struct {
	Name string     `yaml:"name"`
	Type field.Type `yaml:"type"`
	// TypeCode and DBType are the catalog type as reported by the metadata source.
	TypeCode      field.TypeCode `yaml:"type_code"`
	DBType        string         `yaml:"db_type,omitempty"`
	PrimaryKey    bool           `yaml:"primary_key,omitempty"`
	AutoIncrement bool           `yaml:"auto_increment,omitempty"`
	Nullable      bool           `yaml:"nullable,omitempty"`
	// Default is the raw catalog default expression, nil if none.
	Default *string `yaml:"default,omitempty"`
}

// DefaultLiteral returns the default value declared on the generated field.
// Only non-nullable columns outside the primary key get one; numeric types
// default to "0", dates to orm.DefaultDate and all other types to "".
func (c *Column) DefaultLiteral() (string, bool) {
	if c.Nullable || c.PrimaryKey {
		return "", false
	}
	switch {
	case c.Type.Numeric():
		return "0", true
	case c.Type == field.TypeDate:
		return orm.DefaultDate, true
	default:
		return "", true
	}
}

// Tag returns the persistence annotation of the column.
func (c *Column) Tag() orm.Column {
	tag := orm.Column{
		Name:          c.Name,
		PrimaryKey:    c.PrimaryKey,
		AutoIncrement: c.AutoIncrement,
	}
	if v, ok := c.DefaultLiteral(); ok {
		tag.Default = &v
	}
	return tag
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PrimaryKey returns the primary key columns in column order.
func (t *Table) PrimaryKey() []*Column {
	var pk []*Column
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pk = append(pk, c)
		}
	}
	return pk
}

// QualifiedName returns "schema.name", or the bare name if no schema is set.
func (t *Table) QualifiedName() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}
