package field

import "strconv"

// TypeCode is a vendor type code as reported by a schema catalog. The values
// follow the SQL/ODBC standard type codes, so catalogs that already speak them
// can be passed through unchanged.
type TypeCode int32

// Standard type codes.
const (
	Bit           TypeCode = -7
	TinyInt       TypeCode = -6
	SmallInt      TypeCode = 5
	Integer       TypeCode = 4
	BigInt        TypeCode = -5
	Float         TypeCode = 6
	Real          TypeCode = 7
	Double        TypeCode = 8
	Numeric       TypeCode = 2
	Decimal       TypeCode = 3
	Char          TypeCode = 1
	VarChar       TypeCode = 12
	LongVarChar   TypeCode = -1
	Date          TypeCode = 91
	Time          TypeCode = 92
	Timestamp     TypeCode = 93
	Binary        TypeCode = -2
	VarBinary     TypeCode = -3
	LongVarBinary TypeCode = -4
	Null          TypeCode = 0
	Other         TypeCode = 1111
	Blob          TypeCode = 2004
	Clob          TypeCode = 2005
	Boolean       TypeCode = 16
)

var codeNames = map[TypeCode]string{
	Bit:           "BIT",
	TinyInt:       "TINYINT",
	SmallInt:      "SMALLINT",
	Integer:       "INTEGER",
	BigInt:        "BIGINT",
	Float:         "FLOAT",
	Real:          "REAL",
	Double:        "DOUBLE",
	Numeric:       "NUMERIC",
	Decimal:       "DECIMAL",
	Char:          "CHAR",
	VarChar:       "VARCHAR",
	LongVarChar:   "LONGVARCHAR",
	Date:          "DATE",
	Time:          "TIME",
	Timestamp:     "TIMESTAMP",
	Binary:        "BINARY",
	VarBinary:     "VARBINARY",
	LongVarBinary: "LONGVARBINARY",
	Null:          "NULL",
	Other:         "OTHER",
	Blob:          "BLOB",
	Clob:          "CLOB",
	Boolean:       "BOOLEAN",
}

// String returns the standard name of the code, or its number if unknown.
func (c TypeCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// MarshalYAML implements the yaml.Marshaler interface.
func (c TypeCode) MarshalYAML() (any, error) { return c.String(), nil }

// valueTypes holds every code that is not represented as text.
// It is never mutated after package initialization.
var valueTypes = map[TypeCode]Type{
	BigInt:    TypeLong,
	Boolean:   TypeBool,
	Date:      TypeDate,
	Decimal:   TypeDecimal,
	Double:    TypeDouble,
	Float:     TypeFloat,
	Integer:   TypeInteger,
	TinyInt:   TypeInteger,
	Numeric:   TypeNumber,
	Time:      TypeDate,
	Timestamp: TypeDate,
}

// TypeOf maps a vendor type code to its value type. Codes without an entry
// are represented as text.
func TypeOf(code TypeCode) Type {
	if t, ok := valueTypes[code]; ok {
		return t
	}
	return TypeText
}
