package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piview/piview/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "piview"

// Execute runs the piview CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (view, resolve,
// render, templates, config, completion), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "piview renders planetary-colony layouts from game exports",
		Long: `piview is a CLI tool for inspecting planetary-colony layouts exported
from the game client. It parses the exported JSON template, resolves the
opaque integer identifiers it references through a local configuration
store (asking you about any it does not know yet), and renders the pins,
links, and material routes as a diagram.`,
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

	root.AddCommand(newViewCmd())
	root.AddCommand(newResolveCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newTemplatesCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
