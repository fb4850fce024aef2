package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// gridCommand creates the grid command. With no flags it prints the current
// grid geometry; with flags it updates it.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		cols      int
		rowHeight float64
		gap       float64
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Show or change the grid geometry",
		Long: `Show or change the grid geometry.

Shrinking the column count clamps existing widgets into the new bounds:
widgets wider than the grid are narrowed, widgets past the right edge are
pulled back in.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, _, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			gc := st.GridConfig()
			if !cmd.Flags().Changed("cols") && !cmd.Flags().Changed("row-height") && !cmd.Flags().Changed("gap") {
				printKeyValue("cols", fmt.Sprintf("%d", gc.Cols))
				printKeyValue("row height", fmt.Sprintf("%g", gc.RowHeight))
				printKeyValue("gap", fmt.Sprintf("%g", gc.Gap))
				return nil
			}

			if cmd.Flags().Changed("cols") {
				gc.Cols = cols
			}
			if cmd.Flags().Changed("row-height") {
				gc.RowHeight = rowHeight
			}
			if cmd.Flags().Changed("gap") {
				gc.Gap = gap
			}

			if err := st.UpdateGrid(gc); err != nil {
				return err
			}
			if err := st.Flush(ctx); err != nil {
				return err
			}
			printSuccess("Grid updated")
			printDetail("%d cols, row height %g, gap %g", gc.Cols, gc.RowHeight, gc.Gap)
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "number of columns (1-24)")
	cmd.Flags().Float64Var(&rowHeight, "row-height", 0, "row height in display units")
	cmd.Flags().Float64Var(&gap, "gap", 0, "gap between cells in display units")

	return cmd
}
