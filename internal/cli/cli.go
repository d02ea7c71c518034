package cli

import (
	"github.com/spf13/cobra"
)

// App represents the CLI application with all wired dependencies.
type App struct {
	rootCmd *cobra.Command

	// configPath is where the YAML config is loaded from; a missing file
	// yields defaults.
	configPath string
}

// New creates a new CLI application.
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "prover-node-mgr",
		Short: "Operator console for containerized prover nodes",
		Long: `prover-node-mgr runs multiple isolated instances of the vendor prover
node binary in Docker containers on a single host: it builds the node
image once, maps each operator-chosen node id to a uniquely named
container and a host log file, and purges aged logs on a schedule.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Bare invocation drops into the interactive console.
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConsole(cmd.Context())
		},
	}

	a.rootCmd.PersistentFlags().StringVar(&a.configPath, "config",
		"/etc/prover-node-mgr/config.yaml", "Path to the YAML config file")

	a.rootCmd.AddCommand(NewConsoleCmd(a))
	a.rootCmd.AddCommand(NewServeCmd(a))
	a.rootCmd.AddCommand(NewCleanupCmd(a))
}
