package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/store"
)

// themeCommand creates the theme command. With no argument it prints the
// current theme; with one it switches.
func (c *CLI) themeCommand() *cobra.Command {
	themeNames := make([]string, 0, len(store.Themes()))
	for _, t := range store.Themes() {
		themeNames = append(themeNames, string(t))
	}

	return &cobra.Command{
		Use:       "theme [" + strings.Join(themeNames, "|") + "]",
		Short:     "Show or change the dashboard theme",
		ValidArgs: themeNames,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, _, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if len(args) == 0 {
				current := st.ThemeValue()
				for _, t := range store.Themes() {
					if t == current {
						fmt.Println(StyleSuccess.Render("* " + string(t)))
					} else {
						fmt.Println("  " + StyleDim.Render(string(t)))
					}
				}
				return nil
			}

			if err := st.SetTheme(store.Theme(args[0])); err != nil {
				return err
			}
			if err := st.Flush(ctx); err != nil {
				return err
			}
			printSuccess("Theme set to %s", args[0])
			return nil
		},
	}
}
