package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// newResolveCmd creates the resolve command: run the resolution dialog for a
// template without rendering anything.
func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <template.json>",
		Short: "Resolve unknown identifiers in a colony template",
		Long: `Scan a colony template for identifiers missing from the local
configuration and collect names for them interactively.

Accepted names are saved and reused by every later session. Skipped
identifiers stay unknown and are offered again next time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), args[0])
		},
	}
}

func runResolve(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)

	store, err := loadStore(logger)
	if err != nil {
		return err
	}
	tmpl, err := parseTemplate(logger, input)
	if err != nil {
		return err
	}

	return resolveSession(ctx, store, tmpl)
}
