// Package snapshot captures schema catalogs into msgpack files and replays
// them as metadata sources, so generation can run without a database.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/pogen/compiler/load"
)

// Version is the format version written by this package.
const Version = 1

// ErrClosed is returned by a replaying source after Close.
var ErrClosed = errors.New("snapshot: source closed")

// Snapshot holds the raw catalog rows of every table, as reported by the
// metadata source it was captured from.
type Snapshot struct {
	Version    int       `msgpack:"version"`
	Dialect    string    `msgpack:"dialect,omitempty"`
	CapturedAt time.Time `msgpack:"captured_at"`
	Tables     []Table   `msgpack:"tables"`
}

// Table is the catalog rows of one table.
type Table struct {
	Ref         load.TableRef     `msgpack:"ref"`
	PrimaryKeys []string          `msgpack:"primary_keys"`
	Columns     []load.ColumnInfo `msgpack:"columns"`
}

// Capture reads the whole catalog of src. src is closed before Capture
// returns.
func Capture(ctx context.Context, src load.Source) (snap *Snapshot, err error) {
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("snapshot: close source: %w", cerr)
		}
	}()
	snap = &Snapshot{Version: Version, CapturedAt: time.Now().UTC()}
	if d, ok := src.(interface{ Dialect() string }); ok {
		snap.Dialect = d.Dialect()
	}
	refs, err := src.Tables(ctx)
	if err != nil {
		return nil, &load.SourceError{Op: "tables", Cause: err}
	}
	for _, ref := range refs {
		keys, err := src.PrimaryKeys(ctx, ref)
		if err != nil {
			return nil, &load.SourceError{Op: "primary keys", Table: ref.String(), Cause: err}
		}
		columns, err := src.Columns(ctx, ref)
		if err != nil {
			return nil, &load.SourceError{Op: "columns", Table: ref.String(), Cause: err}
		}
		snap.Tables = append(snap.Tables, Table{Ref: ref, PrimaryKeys: keys, Columns: columns})
	}
	return snap, nil
}

// Write encodes the snapshot to w.
func Write(w io.Writer, snap *Snapshot) error {
	if err := msgpack.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Read decodes a snapshot from r.
func Read(r io.Reader) (*Snapshot, error) {
	snap := &Snapshot{}
	if err := msgpack.NewDecoder(r).Decode(snap); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	if snap.Version != Version {
		return nil, fmt.Errorf("snapshot: unsupported version %d", snap.Version)
	}
	return snap, nil
}

// Save writes the snapshot to the file at path.
func (s *Snapshot) Save(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer func() { err = errors.Join(err, f.Close()) }()
	return Write(f, s)
}

// Load reads the snapshot file at path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Source returns a load.Source replaying the snapshot.
func (s *Snapshot) Source() *Source {
	tables := make(map[load.TableRef]*Table, len(s.Tables))
	for i := range s.Tables {
		tables[s.Tables[i].Ref] = &s.Tables[i]
	}
	return &Source{snap: s, tables: tables}
}

// Source replays a snapshot. It is not safe for concurrent use.
type Source struct {
	snap   *Snapshot
	tables map[load.TableRef]*Table
	closed bool
	closes int
}

// Dialect returns the dialect the snapshot was captured from.
func (s *Source) Dialect() string { return s.snap.Dialect }

// Tables implements the load.Source interface.
func (s *Source) Tables(context.Context) ([]load.TableRef, error) {
	if s.closed {
		return nil, ErrClosed
	}
	refs := make([]load.TableRef, len(s.snap.Tables))
	for i, t := range s.snap.Tables {
		refs[i] = t.Ref
	}
	return refs, nil
}

// PrimaryKeys implements the load.Source interface.
func (s *Source) PrimaryKeys(_ context.Context, ref load.TableRef) ([]string, error) {
	t, err := s.table(ref)
	if err != nil {
		return nil, err
	}
	return t.PrimaryKeys, nil
}

// Columns implements the load.Source interface.
func (s *Source) Columns(_ context.Context, ref load.TableRef) ([]load.ColumnInfo, error) {
	t, err := s.table(ref)
	if err != nil {
		return nil, err
	}
	return t.Columns, nil
}

func (s *Source) table(ref load.TableRef) (*Table, error) {
	if s.closed {
		return nil, ErrClosed
	}
	t, ok := s.tables[ref]
	if !ok {
		return nil, fmt.Errorf("snapshot: unknown table %s", ref)
	}
	return t, nil
}

// Close implements the load.Source interface. Closing twice returns ErrClosed.
func (s *Source) Close() error {
	s.closes++
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return nil
}

// CloseCount returns the number of calls to Close.
func (s *Source) CloseCount() int { return s.closes }

var _ load.Source = (*Source)(nil)
