// Package cli implements the pogen command line.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/pogen/compiler/load"
	"github.com/syssam/pogen/dialect"
	dsql "github.com/syssam/pogen/dialect/sql"
	"github.com/syssam/pogen/dialect/snapshot"
	"github.com/syssam/pogen/internal/config"
)

// options holds the flags shared by all commands.
type options struct {
	configPath string
	logLevel   string

	driver   string
	dsn      string
	snapshot string
	atlas    bool
	schemas  []string
	noSystem bool

	pkg      string
	target   string
	header   string
	renderer string
	workers  int
	singular bool
}

// RootCmd returns the pogen command with all subcommands.
func RootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "pogen",
		Short: "Generate Go persistent objects from a relational schema",
		Long: `pogen reads the tables of a database catalog and writes one Go source
file per table, holding a persistent object with accessors for every column.

Settings are read from pogen.yaml (or --config), then POGEN_DRIVER and
POGEN_DSN, then the flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "configuration file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&opts.driver, "driver", "", "database/sql driver: mysql, postgres, pgx or sqlite")
	pf.StringVar(&opts.dsn, "dsn", "", "data source name")
	pf.StringVar(&opts.snapshot, "snapshot", "", "read the catalog from a snapshot file")
	pf.BoolVar(&opts.atlas, "atlas", false, "inspect the database with atlas")
	pf.StringSliceVar(&opts.schemas, "schema", nil, "restrict the tables to these schemas")
	pf.BoolVar(&opts.noSystem, "skip-system-schemas", false, "leave out the system schemas of the server")
	pf.StringVarP(&opts.pkg, "package", "p", "", "dotted package namespace, e.g. com.example.model")
	pf.StringVarP(&opts.target, "target", "o", "", "output folder")
	pf.StringVar(&opts.header, "header", "", "header comment of generated files")
	pf.StringVar(&opts.renderer, "renderer", "", "renderer: jennifer or template")
	pf.IntVar(&opts.workers, "workers", 0, "number of files written concurrently")
	pf.BoolVar(&opts.singular, "singular", false, "derive type names from singular table names")

	cmd.AddCommand(generateCmd(opts))
	cmd.AddCommand(inspectCmd(opts))
	cmd.AddCommand(snapshotCmd(opts))
	cmd.AddCommand(watchCmd(opts))
	return cmd
}

// config loads the configuration file and applies the flags that were set.
func (o *options) config(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	cfg, err := config.Load(o.configPath, flags.Changed("config"))
	if err != nil {
		return nil, err
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("driver") {
		cfg.Driver = o.driver
	}
	if flags.Changed("dsn") {
		cfg.DSN = o.dsn
	}
	if flags.Changed("snapshot") {
		cfg.Snapshot = o.snapshot
	}
	if flags.Changed("atlas") {
		cfg.Atlas = o.atlas
	}
	if flags.Changed("schema") {
		cfg.Schemas = o.schemas
	}
	if flags.Changed("skip-system-schemas") {
		cfg.SkipSystemSchemas = o.noSystem
	}
	if flags.Changed("package") {
		cfg.Package = o.pkg
	}
	if flags.Changed("target") {
		cfg.Target = o.target
	}
	if flags.Changed("header") {
		cfg.Header = &o.header
	}
	if flags.Changed("renderer") {
		cfg.Renderer = o.renderer
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("singular") {
		cfg.Singular = o.singular
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// logger returns a text logger writing to the error stream of cmd.
func logger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level, _ := cfg.Level()
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// openSource opens the metadata source described by cfg. The caller owns
// the returned source.
func openSource(cfg *config.Config, l *slog.Logger) (load.Source, error) {
	if cfg.Snapshot != "" {
		snap, err := snapshot.Load(cfg.Snapshot)
		if err != nil {
			return nil, err
		}
		return snap.Source(), nil
	}
	opts := []dsql.Option{
		dsql.WithSchemas(cfg.Schemas...),
		dsql.WithLogger(l),
		dsql.WithSlowQueryLog(),
	}
	if cfg.SkipSystemSchemas {
		opts = append(opts, dsql.WithoutSystemSchemas())
	}
	if !cfg.Atlas {
		return dsql.Open(cfg.Driver, cfg.DSN, opts...)
	}
	d, err := dialect.FromDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	src, err := dsql.OpenAtlas(d, db, opts...)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return src, nil
}

var (
	success = color.New(color.FgGreen, color.Bold)
	failure = color.New(color.FgRed, color.Bold)
)

// Execute runs the root command and prints a failure to the error stream.
func Execute(ctx context.Context) error {
	cmd := RootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		failure.Fprint(cmd.ErrOrStderr(), "✗ ")
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	return err
}
