package cli

import (
	"github.com/spf13/cobra"

	"github.com/syssam/pogen/dialect/snapshot"
)

func snapshotCmd(opts *options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Capture the catalog into a snapshot file",
		Long: `Capture reads the catalog once and saves it to a file. Passing the file
to --snapshot later generates without a database connection.`,
		Example: `  pogen snapshot --driver pgx --dsn postgres://localhost/shop --out shop.snap`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			src, err := openSource(cfg, logger(cmd, cfg))
			if err != nil {
				return err
			}
			snap, err := snapshot.Capture(cmd.Context(), src)
			if err != nil {
				return err
			}
			if err := snap.Save(out); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "captured %d tables into %s", len(snap.Tables), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "snapshot file to write")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
