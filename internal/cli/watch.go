package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/syssam/pogen/internal/watch"
)

func watchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever the configuration file changes",
		Long: `Watch generates once, then again each time the configuration file is
written. Failures are logged and the watch goes on until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			l := logger(cmd, cfg)
			w, err := watch.New(opts.configPath, func(ctx context.Context) error {
				cfg, err := opts.config(cmd)
				if err != nil {
					return err
				}
				return generate(ctx, cmd, cfg)
			}, watch.WithLogger(l))
			if err != nil {
				return err
			}
			defer w.Close()
			if err := generate(cmd.Context(), cmd, cfg); err != nil {
				l.ErrorContext(cmd.Context(), "generate", "error", err)
			}
			l.InfoContext(cmd.Context(), "watching", "path", w.Path())
			return w.Run(cmd.Context())
		},
	}
}
