package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"prover-node-mgr/internal/node"
	"prover-node-mgr/internal/server"
)

// NewServeCmd creates the headless mode command: the HTTP control API plus
// the background tasks, no interactive menu.
func NewServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP control API without the interactive menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			deps, err := app.buildDeps(ctx)
			if err != nil {
				return err
			}

			mgr := node.NewManager(deps)

			// The API runs in the foreground here; keep the background
			// copy off so the listen address is bound exactly once.
			deps.Config.Server.Enabled = false
			startBackgroundTasks(ctx, deps, mgr)

			return server.StartHTTPServer(ctx, deps.Config.Server.Listen, mgr)
		},
	}
}
