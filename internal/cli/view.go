package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piview/piview/pkg/config"
	"github.com/piview/piview/pkg/errors"
	"github.com/piview/piview/pkg/layout"
	"github.com/piview/piview/pkg/resolver"
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	output   string  // output file path (default: <input>.<format>)
	format   string  // output format: svg, png, dot
	noInput  bool    // skip the interactive resolution dialog
	noRoutes bool    // hide route edges
	noLinks  bool    // hide link edges
	scale    float64 // surface-coordinate scale factor
}

// newViewCmd creates the view command: parse a template, resolve any unknown
// identifiers interactively, then render the layout.
func newViewCmd() *cobra.Command {
	opts := viewOpts{format: formatSVG, scale: defaultScale}

	cmd := &cobra.Command{
		Use:   "view <template.json>",
		Short: "Resolve and render a colony template",
		Long: `Parse a colony template, resolve unknown identifiers, and render it.

Identifiers the local configuration cannot resolve are collected in an
interactive dialog (one batch per namespace) and persisted for future
sessions. Skipped identifiers stay unknown and are offered again next time.

Examples:
  piview view colony.json
  piview view colony.json -o barren-p2.svg
  piview view colony.json --no-input --format png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runView(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "skip the interactive resolution dialog")
	cmd.Flags().BoolVar(&opts.noRoutes, "no-routes", false, "hide material routes")
	cmd.Flags().BoolVar(&opts.noLinks, "no-links", false, "hide structure links")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "surface-coordinate scale factor")

	return cmd
}

// runView is the full pipeline: load config, parse, resolve, render.
func runView(ctx context.Context, input string, opts viewOpts) error {
	logger := loggerFromContext(ctx)

	store, err := loadStore(logger)
	if err != nil {
		return err
	}

	tmpl, err := parseTemplate(logger, input)
	if err != nil {
		return err
	}

	if !opts.noInput {
		if err := resolveSession(ctx, store, tmpl); err != nil {
			return err
		}
	}

	return renderTemplate(ctx, tmpl, store, renderParams{
		input:    input,
		output:   opts.output,
		format:   opts.format,
		noRoutes: opts.noRoutes,
		noLinks:  opts.noLinks,
		scale:    opts.scale,
	})
}

// loadStore opens the identifier-configuration store at the standard path.
func loadStore(logger *log.Logger) (*config.Store, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("locate config: %w", err)
	}
	store, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "path", path)
	return store, nil
}

// parseTemplate parses the template file and logs what it found.
func parseTemplate(logger *log.Logger, input string) (*layout.Template, error) {
	tmpl, err := layout.ParseFile(input)
	if err != nil {
		return nil, err
	}
	logger.Debug("template parsed",
		"pins", len(tmpl.Pins), "links", len(tmpl.Links), "routes", len(tmpl.Routes))
	if tmpl.DroppedLinks > 0 || tmpl.DroppedRoutes > 0 {
		printWarning("dropped %d link(s) and %d route(s) referencing missing pins",
			tmpl.DroppedLinks, tmpl.DroppedRoutes)
	}
	return tmpl, nil
}

// resolveSession runs one interactive resolution session and reports the
// outcome. A persistence failure is surfaced but does not abort the caller:
// the accepted entries stay usable in memory for the rest of this run.
func resolveSession(ctx context.Context, store *config.Store, tmpl *layout.Template) error {
	logger := loggerFromContext(ctx)
	r := resolver.New(store, TUIPrompter{}, logger)

	res, err := r.Run(ctx, tmpl)
	switch {
	case err == nil:
	case errors.Is(err, errors.ErrCodePersistence):
		printError("failed to save configuration: %s", errors.UserMessage(err))
		printDetail("%d resolved name(s) are kept in memory for this run", res.Resolved)
		return nil
	default:
		return err
	}

	switch res.State {
	case resolver.StateNoUnknowns:
		logger.Debug("no unknown identifiers")
	case resolver.StateDone:
		if res.Resolved > 0 {
			printSuccess("resolved %d identifier(s), configuration saved", res.Resolved)
		}
		if res.Skipped > 0 {
			printDetail("%d identifier(s) skipped, will be asked again next session", res.Skipped)
		}
	}
	return nil
}
