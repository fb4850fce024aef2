package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/render"
)

// renderCommand creates the render command for layout snapshots.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)
	opts := render.Options{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the dashboard layout to SVG or PNG",
		Long: `Render the dashboard layout to SVG or PNG.

Each widget is drawn as a box pinned at its grid position, giving a
shareable picture of the current layout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Detailed = detailed
			return c.runRender(cmd.Context(), opts, output, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: layout.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include widget ids and flags in labels")
	cmd.Flags().Float64Var(&opts.CellSize, "cell-size", 0, "rendered cell size in points")

	return cmd
}

// runRender snapshots the layout, converts it to DOT, and writes output.
func (c *CLI) runRender(ctx context.Context, opts render.Options, output, format string) error {
	p := newProgress(c.Logger)

	st, _, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	state := st.Snapshot()
	dot := render.ToDOT(state, opts)

	if output == "" {
		output = "layout." + format
	}

	var data []byte
	switch strings.ToLower(format) {
	case "dot":
		data = []byte(dot)
	case "svg", "png":
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
		spinner.Start()
		if format == "png" {
			data, err = render.RenderPNG(ctx, dot)
		} else {
			data, err = render.RenderSVG(ctx, dot)
		}
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render %s: %w", format, err)
		}
		spinner.Stop()
	default:
		return fmt.Errorf("unknown format %q (available: svg, png, dot)", format)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	p.done("render complete")
	printSuccess("Rendered %d widgets", len(state.Widgets))
	printFile(output)
	return nil
}
