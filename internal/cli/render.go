package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piview/piview/pkg/config"
	"github.com/piview/piview/pkg/errors"
	"github.com/piview/piview/pkg/layout"
	"github.com/piview/piview/pkg/render"
	"github.com/piview/piview/pkg/resolver"
)

// Output formats.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatDOT = "dot"
)

// defaultScale is the surface-coordinate to point multiplier. Colony
// coordinates span a few hundredths of a unit; this puts neighboring pins
// a readable distance apart.
const defaultScale = 2400

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string
	format   string
	noRoutes bool
	noLinks  bool
	scale    float64
}

// newRenderCmd creates the render command: generate a diagram without
// running a resolution session. Unresolved identifiers appear as
// "Unknown (<id>)" labels.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: formatSVG, scale: defaultScale}

	cmd := &cobra.Command{
		Use:   "render <template.json>",
		Short: "Render a colony template without resolving identifiers",
		Long: `Render a colony template to SVG, PNG, or DOT.

No resolution dialog is shown; identifiers missing from the configuration
are labeled with their raw ids. Use 'view' (or 'resolve') to fill them in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.noRoutes, "no-routes", false, "hide material routes")
	cmd.Flags().BoolVar(&opts.noLinks, "no-links", false, "hide structure links")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "surface-coordinate scale factor")

	return cmd
}

func runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	store, err := loadStore(logger)
	if err != nil {
		return err
	}
	tmpl, err := parseTemplate(logger, input)
	if err != nil {
		return err
	}

	if n := resolver.New(store, nil, logger).Unknowns(tmpl); n > 0 {
		printWarning("%d identifier(s) are unknown and will be labeled by raw id", n)
		printDetail("run 'piview resolve %s' to name them", input)
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

// renderParams carries everything renderTemplate needs to produce one file.
type renderParams struct {
	input    string
	output   string
	format   string
	noRoutes bool
	noLinks  bool
	scale    float64
}

// renderTemplate generates the diagram and writes it to the output path.
func renderTemplate(ctx context.Context, tmpl *layout.Template, store *config.Store, p renderParams) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	dotOpts := render.Options{ShowLinks: !p.noLinks, ShowRoutes: !p.noRoutes, Scale: p.scale}
	dot := render.ToDOT(tmpl, store, dotOpts)

	output := p.output
	if output == "" {
		output = defaultOutput(p.input, p.format)
	}

	var data []byte
	switch p.format {
	case formatDOT:
		data = []byte(dot)
	default:
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", p.format))
		spinner.Start()
		var err error
		if p.format == formatPNG {
			data, err = render.RenderPNG(ctx, dot)
		} else {
			data, err = render.RenderSVG(ctx, dot)
		}
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return fmt.Errorf("render %s: %w", p.format, err)
		}
		spinner.Stop()
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	prog.done(fmt.Sprintf("Rendered %d pins, %d links, %d routes",
		len(tmpl.Pins), len(tmpl.Links), len(tmpl.Routes)))
	printFile(output)
	return nil
}

// defaultOutput derives the output path from the input file name.
func defaultOutput(input, format string) string {
	base := strings.TrimSuffix(input, ".json")
	return base + "." + format
}

// validateFormat rejects output formats renderTemplate cannot produce.
func validateFormat(format string) error {
	switch format {
	case formatSVG, formatPNG, formatDOT:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (svg, png, dot)", format)
}
