package load

import (
	"context"
	"errors"
	"fmt"

	"github.com/syssam/pogen/schema/field"
)

// Source is a handle on a schema catalog. It is exclusively owned by one
// load and closed exactly once when the load ends.
type Source interface {
	// Tables enumerates every table visible through the handle, in catalog order.
	Tables(context.Context) ([]TableRef, error)
	// PrimaryKeys returns the primary key column names of a table.
	PrimaryKeys(context.Context, TableRef) ([]string, error)
	// Columns returns the column descriptors of a table, in catalog order.
	Columns(context.Context, TableRef) ([]ColumnInfo, error)
	// Close releases the handle.
	Close() error
}

// TableRef identifies a table in the catalog.
type TableRef struct {
	Schema string `msgpack:"schema"`
	Name   string `msgpack:"name"`
}

// String returns "schema.name", or the bare name if no schema is set.
func (r TableRef) String() string {
	if r.Schema == "" {
		return r.Name
	}
	return r.Schema + "." + r.Name
}

// Nullability is the nullability state reported by a catalog.
type Nullability int8

// Nullability states, numbered like the standard catalog constants.
const (
	NoNulls Nullability = iota
	Nullable
	NullableUnknown
)

// AutoIncrementYes is the only auto-increment indicator treated as true.
const AutoIncrementYes = "YES"

// ColumnInfo is a column descriptor as reported by a catalog.
type ColumnInfo struct {
	Name     string         `msgpack:"name"`
	TypeCode field.TypeCode `msgpack:"type_code"`
	// TypeName is the vendor type name, e.g. "varchar(255)".
	TypeName string      `msgpack:"type_name"`
	Nullable Nullability `msgpack:"nullable"`
	Default  *string     `msgpack:"default"`
	// AutoIncrement is "YES", "NO" or "" if the catalog does not know.
	AutoIncrement string `msgpack:"auto_increment"`
}

// ErrMetadata is matched by every metadata retrieval error.
var ErrMetadata = errors.New("pogen: metadata retrieval failed")

// SourceError wraps a failure of the metadata source.
type SourceError struct {
	Op    string // tables, primary keys, columns
	Table string
	Cause error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("pogen: read %s of %s: %v", e.Op, e.Table, e.Cause)
	}
	return fmt.Sprintf("pogen: read %s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SourceError.
func (e *SourceError) Is(target error) bool {
	return target == ErrMetadata
}
