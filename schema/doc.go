// Package schema holds the in-memory model of an introspected database schema.
//
// A generation run loads a []*Table from a metadata source (see package
// compiler/load) and hands it to the emitter (see package compiler/gen).
// Tables and columns are read-only snapshots: they are populated once and
// discarded after emission.
//
// Column order within a Table is the catalog enumeration order and is kept
// as the field order of the generated persistent object.
package schema
