package gen

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/pogen/schema"
)

// Metrics tracks generation performance.
type Metrics struct {
	FilesGenerated int
	TotalBytes     int64
	RenderTime     time.Duration
	WriteTime      time.Duration
}

// writer emits the files of one generation run.
type writer struct {
	dir      string
	renderer Renderer
	logger   *slog.Logger

	mu      sync.Mutex
	metrics Metrics
}

// Generate writes one source file per table into the package directory of
// the config. The directory is created even if tables is empty. Existing
// files are deleted before the new content is written, so re-running on the
// same tables produces byte-identical output.
func Generate(ctx context.Context, c *Config, tables []*schema.Table) (*Metrics, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	types, err := buildTypes(c, tables)
	if err != nil {
		return nil, err
	}
	w := &writer{
		dir:      c.Dir(),
		renderer: c.renderer(),
		logger:   c.logger(),
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, NewGenerationError("mkdir", w.dir, "create output directory", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers())
	for _, t := range types {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeType(t)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	w.logger.Debug("generated persistent objects",
		slog.String("dir", w.dir),
		slog.Int("files", w.metrics.FilesGenerated),
		slog.Int64("bytes", w.metrics.TotalBytes),
	)
	m := w.metrics
	return &m, nil
}

// buildTypes creates the render models of all tables. Tables that map to
// the same file name are resolved in favor of the last one, which is what
// writing them in order would leave on disk.
func buildTypes(c *Config, tables []*schema.Table) ([]*Type, error) {
	types := make([]*Type, 0, len(tables))
	index := make(map[string]int, len(tables))
	for _, tbl := range tables {
		t, err := NewType(c, tbl)
		if err != nil {
			return nil, err
		}
		if i, ok := index[t.FileName()]; ok {
			c.logger().Warn("tables map to the same file, keeping the last one",
				slog.String("file", t.FileName()),
				slog.String("dropped", types[i].Table.QualifiedName()),
				slog.String("kept", tbl.QualifiedName()),
			)
			types[i] = t
			continue
		}
		index[t.FileName()] = len(types)
		types = append(types, t)
	}
	return types, nil
}

func (w *writer) writeType(t *Type) error {
	path := filepath.Join(w.dir, t.FileName())

	start := time.Now()
	var buf bytes.Buffer
	if err := w.renderer.Render(&buf, t); err != nil {
		return NewGenerationError("render", path, "render "+t.Name, err)
	}
	rendered := time.Since(start)

	start = time.Now()
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewGenerationError("remove", path, "delete previous file", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return NewGenerationError("write", path, "write file", err)
	}
	written := time.Since(start)

	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(buf.Len())
	w.metrics.RenderTime += rendered
	w.metrics.WriteTime += written
	w.mu.Unlock()
	w.logger.Debug("wrote file", slog.String("table", t.Table.QualifiedName()), slog.String("path", path))
	return nil
}
