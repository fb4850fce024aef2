package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	gdio "github.com/griddeck/griddeck/pkg/io"
)

// exportCommand creates the export command for writing layout snapshots.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dashboard layout to a JSON file",
		Long: `Export the dashboard layout to a JSON file.

The export is a deep snapshot of the full state (grid, widgets, theme,
schema version) stamped with the export time. Re-import it with
'griddeck import'; widget ids are reassigned on import so an export can be
applied on top of an existing dashboard without collisions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			doc := st.ExportLayout()
			if err := gdio.ExportJSON(doc, output); err != nil {
				return fmt.Errorf("write export: %w", err)
			}

			printSuccess("Exported %d widgets", len(doc.Widgets))
			printFile(output)
			printNewline()
			printNextStep("Re-import", "griddeck import "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "layout.json", "output file")

	return cmd
}

// importCommand creates the import command for applying layout snapshots.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <layout.json>",
		Short: "Import a dashboard layout from a JSON file",
		Long: `Import a dashboard layout from a JSON file.

The document is migrated and validated in full before anything changes;
on any failure the current dashboard is untouched. On success the layout
replaces the current one and persists immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := gdio.ImportJSON(args[0])
			if err != nil {
				return err
			}

			st, _, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.ImportLayout(ctx, doc); err != nil {
				return err
			}

			printSuccess("Imported %d widgets", len(doc.Widgets))
			printNewline()
			printNextStep("Open the dashboard", "griddeck open")
			return nil
		},
	}
}
