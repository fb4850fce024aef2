package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// resetCommand creates the reset command.
func (c *CLI) resetCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the dashboard to the default layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !force {
				printWarning("This discards all widgets and settings")
				printDetail("Re-run with --force to confirm")
				return nil
			}

			st, _, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			st.Reset(ctx)
			if err := st.Flush(ctx); err != nil {
				return err
			}
			printSuccess("Dashboard reset to defaults")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation")

	return cmd
}

// pathCommand creates the path command, printing where griddeck keeps its
// files.
func (c *CLI) pathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config and data directory paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			confDir, err := configDir()
			if err != nil {
				return fmt.Errorf("resolve config dir: %w", err)
			}
			dtDir, err := dataDir()
			if err != nil {
				return fmt.Errorf("resolve data dir: %w", err)
			}
			printKeyValue("config", confDir)
			printKeyValue("data", dtDir)
			return nil
		},
	}
}
