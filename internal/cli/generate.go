package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/pogen"
	"github.com/syssam/pogen/internal/config"
)

func generateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate persistent objects for every table of the catalog",
		Example: `  pogen generate --driver mysql --dsn 'root:pass@tcp(localhost:3306)/shop' -p com.example.model -o gen
  pogen generate --snapshot shop.snap -p com.example.model -o gen`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			return generate(cmd.Context(), cmd, cfg)
		},
	}
}

// generate runs one generation with cfg and reports it on the output stream.
func generate(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	l := logger(cmd, cfg)
	src, err := openSource(cfg, l)
	if err != nil {
		return err
	}
	g := pogen.New(src, pogen.WithLogger(l), pogen.WithGenOptions(cfg.GenOptions()...))
	if err := g.Run(ctx, cfg.Package, cfg.Target); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "generated %s into %s", cfg.Package, cfg.Target)
	return nil
}

func printSuccess(w io.Writer, format string, args ...any) {
	success.Fprint(w, "✓ ")
	fmt.Fprintf(w, format+"\n", args...)
}
