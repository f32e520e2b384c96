package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <name>...",
	Short: "Load plugins and report the types they register",
	Long: `Load each named plugin, with its requirements, and report the
component types it registered. Every plugin is attempted; failures are
reported together.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		before := len(c.Plugins().Loaded())
		loadErr := c.LoadPlugins(cmd.Context(), args...)

		out := cmd.OutOrStdout()
		for _, l := range c.Plugins().Loaded()[before:] {
			printer.Fprintf(out, "Loaded %s %s from %s (%d types)\n", l.Name, l.Version, l.Source, len(l.Types))
		}
		if loadErr != nil {
			return fmt.Errorf("loading plugins: %w", loadErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
