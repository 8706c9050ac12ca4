// Package load reads a schema catalog into the schema model.
package load

import (
	"context"
	"log/slog"

	"github.com/syssam/pogen/schema"
	"github.com/syssam/pogen/schema/field"
)

// Load reads every table visible through src. Tables keep the catalog
// order, and so do the columns of each table.
//
// src is closed before Load returns, whether the read succeeded or not. A
// failing Close after a successful read is logged and otherwise ignored.
func Load(ctx context.Context, src Source, logger *slog.Logger) (tables []*schema.Table, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logger.WarnContext(ctx, "close metadata source", "error", cerr)
		}
	}()

	refs, err := src.Tables(ctx)
	if err != nil {
		return nil, &SourceError{Op: "tables", Cause: err}
	}
	tables = make([]*schema.Table, 0, len(refs))
	for _, ref := range refs {
		logger.DebugContext(ctx, "table found", "table", ref.String())
		t, err := loadTable(ctx, src, ref, logger)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func loadTable(ctx context.Context, src Source, ref TableRef, logger *slog.Logger) (*schema.Table, error) {
	keys, err := src.PrimaryKeys(ctx, ref)
	if err != nil {
		return nil, &SourceError{Op: "primary keys", Table: ref.String(), Cause: err}
	}
	pk := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		pk[k] = struct{}{}
	}
	infos, err := src.Columns(ctx, ref)
	if err != nil {
		return nil, &SourceError{Op: "columns", Table: ref.String(), Cause: err}
	}
	t := &schema.Table{
		Schema:  ref.Schema,
		Name:    ref.Name,
		Columns: make([]*schema.Column, 0, len(infos)),
	}
	for _, info := range infos {
		_, isPK := pk[info.Name]
		t.Columns = append(t.Columns, &schema.Column{
			Name:          info.Name,
			Type:          field.TypeOf(info.TypeCode),
			TypeCode:      info.TypeCode,
			DBType:        info.TypeName,
			PrimaryKey:    isPK,
			AutoIncrement: info.AutoIncrement == AutoIncrementYes,
			Nullable:      info.Nullable == Nullable,
			Default:       info.Default,
		})
		logger.DebugContext(ctx, "column found", "table", ref.String(), "column", info.Name)
	}
	return t, nil
}
