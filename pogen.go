package pogen

import (
	"context"
	"log/slog"

	"github.com/syssam/pogen/compiler/gen"
	"github.com/syssam/pogen/compiler/load"
)

// Generator drives one generation run: read the catalog, then emit the
// persistent objects.
type Generator struct {
	src     load.Source
	logger  *slog.Logger
	genOpts []gen.Option
	used    bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used by the run. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithGenOptions adds emitter options, e.g. gen.WithHeader or gen.WithWorkers.
func WithGenOptions(opts ...gen.Option) Option {
	return func(g *Generator) {
		g.genOpts = append(g.genOpts, opts...)
	}
}

// New returns a Generator reading from src. The generator takes ownership
// of src.
func New(src load.Source, opts ...Option) *Generator {
	g := &Generator{src: src, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run reads every table of the source and writes one file per table into
// outputFolder joined with the segments of pack. The source is closed
// before Run returns. Files written before a failure are left in place.
func (g *Generator) Run(ctx context.Context, pack, outputFolder string) error {
	if g.used {
		return NewBuildError(pack, outputFolder, "config", ErrUsed)
	}
	g.used = true
	opts := append([]gen.Option{
		gen.WithPackage(pack),
		gen.WithTarget(outputFolder),
		gen.WithLogger(g.logger),
	}, g.genOpts...)
	cfg, err := gen.NewConfig(opts...)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		if cerr := g.src.Close(); cerr != nil {
			g.logger.WarnContext(ctx, "close metadata source", "error", cerr)
		}
		return NewBuildError(pack, outputFolder, "config", err)
	}

	tables, err := load.Load(ctx, g.src, g.logger)
	if err != nil {
		return NewBuildError(pack, outputFolder, "load", err)
	}
	m, err := gen.Generate(ctx, cfg, tables)
	if err != nil {
		return NewBuildError(pack, outputFolder, "generate", err)
	}
	g.logger.InfoContext(ctx, "persistent objects generated",
		"package", pack,
		"dir", cfg.Dir(),
		"tables", len(tables),
		"files", m.FilesGenerated,
		"bytes", m.TotalBytes,
	)
	return nil
}

// Generate is Run for callers that do not handle errors: a failure is
// logged with the message "build source error" and otherwise dropped.
func (g *Generator) Generate(ctx context.Context, pack, outputFolder string) {
	if err := g.Run(ctx, pack, outputFolder); err != nil {
		g.logger.ErrorContext(ctx, "build source error", "error", err)
	}
}
