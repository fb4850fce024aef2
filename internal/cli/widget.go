package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/grid"
	"github.com/griddeck/griddeck/pkg/store"
)

// widgetCommand creates the widget management command.
func (c *CLI) widgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Manage dashboard widgets",
	}

	cmd.AddCommand(c.widgetAddCommand())
	cmd.AddCommand(c.widgetListCommand())
	cmd.AddCommand(c.widgetRemoveCommand())

	return cmd
}

// widgetAddCommand creates the "widget add" subcommand.
func (c *CLI) widgetAddCommand() *cobra.Command {
	var (
		x, y, w, h int
		configJSON string
	)

	cmd := &cobra.Command{
		Use:   "add <type>",
		Short: "Add a widget to the dashboard",
		Long: `Add a widget of the given type at a grid position.

The placement is validated against the grid before anything changes; an
occupied or out-of-bounds position is rejected. Widget configuration is
passed as a JSON object via --widget-config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind := args[0]
			if !c.Widgets.Has(kind) {
				return fmt.Errorf("unknown widget type %q (available: %s)", kind, strings.Join(c.Widgets.Kinds(), ", "))
			}

			var config map[string]any
			if configJSON != "" {
				if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
					return fmt.Errorf("parse --widget-config: %w", err)
				}
			}

			st, _, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			added, err := st.AddWidget(store.Widget{
				Type:      kind,
				Placement: grid.Placement{X: x, Y: y, W: w, H: h},
				Config:    config,
			})
			if err != nil {
				return err
			}
			if err := st.Flush(ctx); err != nil {
				return err
			}

			printSuccess("Added %s widget", kind)
			printKeyValue("id", added.ID)
			printKeyValue("position", fmt.Sprintf("(%d,%d) %dx%d", added.X, added.Y, added.W, added.H))
			printNewline()
			printNextStep("Open the dashboard", "griddeck open")
			return nil
		},
	}

	cmd.Flags().IntVarP(&x, "x", "x", 1, "column (1-based)")
	cmd.Flags().IntVarP(&y, "y", "y", 1, "row (1-based)")
	cmd.Flags().IntVarP(&w, "width", "W", 3, "width in columns")
	cmd.Flags().IntVarP(&h, "height", "H", 2, "height in rows")
	cmd.Flags().StringVar(&configJSON, "widget-config", "", "widget configuration as a JSON object")

	return cmd
}

// widgetListCommand creates the "widget list" subcommand.
func (c *CLI) widgetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List widgets on the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			widgets := st.Widgets()
			if len(widgets) == 0 {
				printInfo("Dashboard is empty")
				printNewline()
				printNextStep("Add a widget", "griddeck widget add clock")
				return nil
			}

			gc := st.GridConfig()
			fmt.Println(StyleTitle.Render("Dashboard"))
			printDetail("%d widgets on a %d-column grid", len(widgets), gc.Cols)
			for _, w := range widgets {
				status := ""
				if w.Minimized {
					status = StyleDim.Render("  minimized")
				}
				fmt.Printf("  %s %s %s%s\n",
					StyleHighlight.Render(w.Type),
					StyleValue.Render(fmt.Sprintf("(%d,%d) %dx%d", w.X, w.Y, w.W, w.H)),
					StyleDim.Render(w.ID),
					status)
			}
			return nil
		},
	}
}

// widgetRemoveCommand creates the "widget remove" subcommand.
func (c *CLI) widgetRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a widget by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, _, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.RemoveWidget(args[0]); err != nil {
				return err
			}
			if err := st.Flush(ctx); err != nil {
				return err
			}
			printSuccess("Removed widget %s", args[0])
			return nil
		},
	}
}
