// Package field maps catalog type codes onto the value types of generated
// persistent objects.
//
// Catalogs report a column type as a TypeCode. TypeOf turns it into a Type,
// which in turn knows its Go representation:
//
//	field.TypeOf(field.BigInt)            // field.TypeLong, generated as int64
//	field.TypeOf(field.Timestamp)         // field.TypeDate, generated as time.Time
//	field.TypeOf(field.Decimal)           // field.TypeDecimal, generated as decimal.Decimal
//	field.TypeOf(field.VarChar)           // field.TypeText, generated as string
//
// # Fallback
//
// The mapping is total. Any code without an explicit entry, including
// SMALLINT, REAL and vendor specific codes, is represented as text. The
// fallback is silent and is not an error.
package field
