package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var librariesCmd = &cobra.Command{
	Use:   "libraries",
	Short: "Start and list the libraries of loaded plugins",
	Long: `Create the façade of every library declared by a loaded plugin and list
them with their namespaces.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		for _, d := range c.Plugins().Discover() {
			if d.Manifest == nil || !c.Plugins().IsLoaded(d.Name) {
				continue
			}
			for _, typeName := range d.Manifest.Libraries {
				if _, err := c.Libraries().Open(typeName); err != nil {
					return fmt.Errorf("plugin %s: %w", d.Name, err)
				}
			}
		}

		libs := c.Libraries().Libraries()
		out := cmd.OutOrStdout()
		if len(libs) == 0 {
			fmt.Fprintln(out, "No libraries. Load a plugin that declares one.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tNAME\tNAMESPACE\tDESCRIPTION")
		for _, l := range libs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Base().Path().Text(false), l.LibraryName(), l.Namespace(), l.Description())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(librariesCmd)
}
