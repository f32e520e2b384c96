package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/compkit/compkit/internal/plugin"
	"github.com/spf13/cobra"
)

var (
	watchLoad     bool
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the plugin search paths",
	Long: `Report plugins as they appear or change in the search paths until
interrupted. With --load, new valid plugins are loaded as they arrive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		out := cmd.OutOrStdout()
		err = c.Plugins().Watch(cmd.Context(), watchDebounce, func(ds []*plugin.Discovered) {
			for _, d := range ds {
				e := entryFor(c.Plugins(), d)
				if e.Error != "" {
					fmt.Fprintf(out, "%s\tinvalid\t%s\n", d.Name, e.Error)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", d.Name, e.Version, d.Source)
				if watchLoad && !c.Plugins().IsLoaded(d.Name) {
					if err := c.LoadPlugins(cmd.Context(), d.Name); err != nil {
						fmt.Fprintf(out, "%s\tload failed\t%v\n", d.Name, err)
					} else {
						fmt.Fprintf(out, "%s\tloaded\n", d.Name)
					}
				}
			}
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchLoad, "load", false, "Load plugins as they appear")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", plugin.DefaultDebounce, "Quiet period before rescanning")
	rootCmd.AddCommand(watchCmd)
}
