package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/compkit/compkit/internal/plugin"
	"github.com/spf13/cobra"
)

var pluginsJSON bool

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List available plugins",
	Long: `List plugins found in the search paths and compiled into the binary,
with their status: loaded, available or invalid.`,
	RunE: runPlugins,
}

func init() {
	pluginsCmd.Flags().BoolVar(&pluginsJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(pluginsCmd)
}

// pluginEntry is one row of the plugin listing.
type pluginEntry struct {
	Name     string   `json:"name"`
	Version  string   `json:"version,omitempty"`
	API      string   `json:"api,omitempty"`
	Source   string   `json:"source"`
	Status   string   `json:"status"`
	Provides []string `json:"provides,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func runPlugins(cmd *cobra.Command, args []string) error {
	c, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	var entries []pluginEntry
	for _, d := range c.Plugins().Discover() {
		entries = append(entries, entryFor(c.Plugins(), d))
	}

	out := cmd.OutOrStdout()
	if pluginsJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling plugins: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No plugins found in %s\n", strings.Join(c.Plugins().SearchPaths(), ", "))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tAPI\tSTATUS\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Version, e.API, e.Status, e.Source)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	for _, e := range entries {
		if e.Error != "" {
			fmt.Fprintf(out, "\n%s: %s\n", e.Name, e.Error)
		}
	}
	return nil
}

func entryFor(m *plugin.Manager, d *plugin.Discovered) pluginEntry {
	e := pluginEntry{Name: d.Name, Source: d.Source, Status: "available"}
	switch {
	case d.Err != nil:
		e.Status = "invalid"
		e.Error = d.Err.Error()
	default:
		e.Version = d.Manifest.Version
		e.API = d.Manifest.API
		e.Provides = d.Manifest.Provides
		if m.IsLoaded(d.Name) {
			e.Status = "loaded"
		}
	}
	return e
}
