package sql

import (
	"strings"

	"github.com/syssam/pogen/dialect"
	"github.com/syssam/pogen/schema/field"
)

// Type names are matched lowercased, without size and modifiers.
var (
	mysqlTypes = map[string]field.TypeCode{
		"bit":        field.Bit,
		"bool":       field.Boolean,
		"boolean":    field.Boolean,
		"tinyint":    field.TinyInt,
		"smallint":   field.SmallInt,
		"mediumint":  field.Integer,
		"int":        field.Integer,
		"integer":    field.Integer,
		"bigint":     field.BigInt,
		"float":      field.Float,
		"double":     field.Double,
		"real":       field.Double,
		"decimal":    field.Decimal,
		"numeric":    field.Decimal,
		"date":       field.Date,
		"year":       field.Date,
		"time":       field.Time,
		"datetime":   field.Timestamp,
		"timestamp":  field.Timestamp,
		"char":       field.Char,
		"varchar":    field.VarChar,
		"tinytext":   field.VarChar,
		"text":       field.LongVarChar,
		"mediumtext": field.LongVarChar,
		"longtext":   field.LongVarChar,
		"enum":       field.Char,
		"set":        field.Char,
		"json":       field.LongVarChar,
		"binary":     field.Binary,
		"varbinary":  field.VarBinary,
		"tinyblob":   field.VarBinary,
		"blob":       field.LongVarBinary,
		"mediumblob": field.LongVarBinary,
		"longblob":   field.LongVarBinary,
	}
	postgresTypes = map[string]field.TypeCode{
		"boolean":                     field.Boolean,
		"bool":                        field.Boolean,
		"smallint":                    field.SmallInt,
		"int2":                        field.SmallInt,
		"smallserial":                 field.SmallInt,
		"integer":                     field.Integer,
		"int":                         field.Integer,
		"int4":                        field.Integer,
		"serial":                      field.Integer,
		"bigint":                      field.BigInt,
		"int8":                        field.BigInt,
		"bigserial":                   field.BigInt,
		"real":                        field.Float,
		"float4":                      field.Float,
		"double precision":            field.Double,
		"float8":                      field.Double,
		"numeric":                     field.Numeric,
		"decimal":                     field.Decimal,
		"money":                       field.Double,
		"date":                        field.Date,
		"time":                        field.Time,
		"time without time zone":      field.Time,
		"time with time zone":         field.Time,
		"timetz":                      field.Time,
		"timestamp":                   field.Timestamp,
		"timestamp without time zone": field.Timestamp,
		"timestamp with time zone":    field.Timestamp,
		"timestamptz":                 field.Timestamp,
		"character":                   field.Char,
		"char":                        field.Char,
		"bpchar":                      field.Char,
		"character varying":           field.VarChar,
		"varchar":                     field.VarChar,
		"text":                        field.VarChar,
		"bytea":                       field.Binary,
	}
	sqliteTypes = map[string]field.TypeCode{
		"boolean":   field.Boolean,
		"bool":      field.Boolean,
		"tinyint":   field.TinyInt,
		"smallint":  field.SmallInt,
		"int":       field.Integer,
		"integer":   field.Integer,
		"mediumint": field.Integer,
		"bigint":    field.BigInt,
		"int8":      field.BigInt,
		"float":     field.Float,
		"real":      field.Double,
		"double":    field.Double,
		"decimal":   field.Decimal,
		"numeric":   field.Numeric,
		"date":      field.Date,
		"time":      field.Time,
		"datetime":  field.Timestamp,
		"timestamp": field.Timestamp,
		"char":      field.Char,
		"varchar":   field.VarChar,
		"text":      field.VarChar,
		"clob":      field.Clob,
		"blob":      field.Blob,
	}
)

// TypeCode returns the standard type code of a vendor type name, e.g.
// "varchar(255)" or "int unsigned". Unknown names yield field.Other.
func TypeCode(d, name string) field.TypeCode {
	var types map[string]field.TypeCode
	switch d {
	case dialect.MySQL:
		types = mysqlTypes
		// MySQL has no boolean type; BOOLEAN columns are created as tinyint(1).
		if strings.HasPrefix(strings.ToLower(name), "tinyint(1)") {
			return field.Boolean
		}
	case dialect.Postgres:
		types = postgresTypes
	case dialect.SQLite:
		types = sqliteTypes
	default:
		return field.Other
	}
	if strings.HasSuffix(strings.TrimSpace(name), "[]") {
		return field.Other
	}
	if code, ok := types[baseType(name)]; ok {
		return code
	}
	return field.Other
}

// baseType strips the size and modifier parts of a type name.
func baseType(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	for _, mod := range []string{" unsigned", " zerofill", " signed"} {
		name = strings.TrimSuffix(name, mod)
	}
	return name
}
