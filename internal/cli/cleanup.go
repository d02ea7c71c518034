package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"prover-node-mgr/config"
	"prover-node-mgr/internal/cleanup"
)

// CleanupOptions holds flags for the cleanup command.
type CleanupOptions struct {
	SkipCrontab bool // only purge, do not touch the crontab
}

// NewCleanupCmd creates the one-shot cleanup command: purge aged log files
// now and make sure the crontab entry is installed.
func NewCleanupCmd(app *App) *cobra.Command {
	opts := CleanupOptions{}

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Purge aged node log files and upsert the crontab entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.configPath)
			if err != nil {
				return err
			}
			return runCleanup(cfg, opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipCrontab, "skip-crontab", false,
		"Purge only; do not install the crontab entry")

	return cmd
}

func runCleanup(cfg *config.Config, opts CleanupOptions, cmd *cobra.Command) error {
	maxAge, err := cfg.Cleanup.MaxAgeDuration()
	if err != nil {
		return err
	}

	deleted, err := cleanup.PurgeOnce(cfg.Node.LogDir, cfg.Cleanup.Pattern, maxAge, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Purged %d log file(s).\n", len(deleted))

	if opts.SkipCrontab || !cfg.Cleanup.Crontab {
		return nil
	}
	return cleanup.EnsureCrontabEntry(&cfg.Cleanup, cfg.Node.LogDir)
}
