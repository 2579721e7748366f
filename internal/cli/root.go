package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/biograph-io/biograph/pkg/buildinfo"
)

// Execute runs the biograph CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "biograph",
		Short:        "biograph caches and queries biological knowledge networks",
		Long:         `biograph is a CLI for a caching and query layer over stored biological knowledge graphs: it caches networks with stable identifiers, computes overlap and degree rankings, and runs seed-and-expand subgraph queries.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default biograph.toml if present)")

	root.AddCommand(newNetworksCmd(&configPath))
	root.AddCommand(newQueryCmd(&configPath))
	root.AddCommand(newOverlapCmd(&configPath))
	root.AddCommand(newTopCmd(&configPath))
	root.AddCommand(newSearchCmd(&configPath))
	root.AddCommand(newRenderCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))

	return root.ExecuteContext(ctx)
}

// setup loads the config and builds the collaborator stack for a command.
// The caller owns the returned app and must close it.
func setup(cmd *cobra.Command, configPath string) (*app, error) {
	logger := loggerFromContext(cmd.Context())
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg, logger)
}
