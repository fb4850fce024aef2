package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// openCommand creates the open command, the interactive dashboard.
func (c *CLI) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive dashboard.

Drag widgets with the mouse; grab an edge or corner to resize. Keyboard:

  tab / shift+tab   cycle focus
  arrows            move the focused widget (shift: 5 cells)
  r + arrows        resize the focused widget (shift: 2 cells)
  m                 minimize / restore
  a                 add a widget
  x                 remove the focused widget
  t                 cycle theme
  esc               cancel the current drag or resize
  q                 quit (layout is saved)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, cfg, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			model := newDashboardModel(c, st, cfg)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("run dashboard: %w", err)
			}
			if m, ok := final.(dashboardModel); ok {
				m.destroyInstances()
			}
			return st.Flush(ctx)
		},
	}
}
