// Package orm defines the persistence annotations carried by generated
// persistent objects.
//
// A generated type is marked with a table directive in its doc comment and
// every field carries an orm struct tag:
//
//	//orm:table order_item
//	type OrderItemPO struct {
//		id      int32  `orm:"id,pk,autoincrement"`
//		orderId int32  `orm:"order_id,default=0"`
//		note    string `orm:"note"`
//	}
//
// The default option is always the last one, so its value may contain commas.
// A column name holding a comma, or starting with a single quote, is written
// in single quotes with inner quotes doubled:
//
//	rate float64 `orm:"'rate,pct'"`
package orm

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

const (
	// TagKey is the struct tag key holding column metadata.
	TagKey = "orm"
	// TableDirective prefixes the physical table name in the doc comment of a generated type.
	TableDirective = "orm:table"
	// DefaultDate is the reserved default value of non-nullable date columns.
	DefaultDate = "$DEFAULT_DATE"
)

const (
	optPK      = "pk"
	optAutoInc = "autoincrement"
	optDefault = "default="
)

// ErrInvalidTag is returned for tags that do not follow the orm grammar.
var ErrInvalidTag = errors.New("orm: invalid tag")

// Column is the metadata of one persisted field.
type Column struct {
	Name          string
	PrimaryKey    bool
	AutoIncrement bool
	// Default is nil when no default value is declared.
	Default *string
}

// String returns the tag value of the column.
func (c Column) String() string {
	var b strings.Builder
	b.WriteString(quoteName(c.Name))
	if c.PrimaryKey {
		b.WriteString("," + optPK)
	}
	if c.AutoIncrement {
		b.WriteString("," + optAutoInc)
	}
	if c.Default != nil {
		b.WriteString("," + optDefault)
		b.WriteString(*c.Default)
	}
	return b.String()
}

// ParseTag parses an orm tag value.
func ParseTag(s string) (Column, error) {
	name, opts, more, err := cutName(s)
	if err != nil {
		return Column{}, fmt.Errorf("%w: %v in %q", ErrInvalidTag, err, s)
	}
	if name == "" {
		return Column{}, fmt.Errorf("%w: missing column name in %q", ErrInvalidTag, s)
	}
	c := Column{Name: name}
	if !more {
		return c, nil
	}
	parts := strings.Split(opts, ",")
	for i := 0; i < len(parts); i++ {
		switch p := parts[i]; {
		case p == optPK:
			c.PrimaryKey = true
		case p == optAutoInc:
			c.AutoIncrement = true
		case strings.HasPrefix(p, optDefault):
			v := strings.TrimPrefix(strings.Join(parts[i:], ","), optDefault)
			c.Default = &v
			return c, nil
		default:
			return Column{}, fmt.Errorf("%w: unknown option %q in %q", ErrInvalidTag, p, s)
		}
	}
	return c, nil
}

func quoteName(name string) string {
	if !strings.Contains(name, ",") && !strings.HasPrefix(name, "'") {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// cutName splits the column name off a tag value. more reports whether
// options follow the name.
func cutName(s string) (name, opts string, more bool, err error) {
	if !strings.HasPrefix(s, "'") {
		name, opts, more = strings.Cut(s, ",")
		return name, opts, more, nil
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		if s[i] != '\'' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			b.WriteByte('\'')
			i++
			continue
		}
		rest := s[i+1:]
		if rest == "" {
			return b.String(), "", false, nil
		}
		if rest[0] != ',' {
			return "", "", false, errors.New("unexpected text after quoted column name")
		}
		return b.String(), rest[1:], true, nil
	}
	return "", "", false, errors.New("unterminated column name")
}

// Lookup extracts the column metadata from a struct tag. The boolean result
// reports whether the tag holds an orm key at all.
func Lookup(tag reflect.StructTag) (Column, bool, error) {
	v, ok := tag.Lookup(TagKey)
	if !ok {
		return Column{}, false, nil
	}
	c, err := ParseTag(v)
	return c, true, err
}

// TableName extracts the physical table name from a doc comment holding a
// table directive. It returns false if no directive is present.
func TableName(doc string) (string, bool) {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "//"))
		if name, ok := strings.CutPrefix(line, TableDirective+" "); ok {
			return strings.TrimSpace(name), true
		}
	}
	return "", false
}
