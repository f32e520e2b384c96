package cli

import (
	"encoding/json"
	"fmt"

	"github.com/compkit/compkit/internal/factory"
	"github.com/spf13/cobra"
)

var typesJSON bool

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List registered component types",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		names := c.Types().TypeNames()
		out := cmd.OutOrStdout()
		if typesJSON {
			data, err := json.MarshalIndent(names, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling types: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		for _, name := range names {
			marker := ""
			if _, err := c.Factories().For(name); err == nil {
				marker = "  [" + factory.TypeName(name) + "]"
			}
			fmt.Fprintf(out, "%s%s\n", name, marker)
		}
		printer.Fprintf(out, "\n%d types registered\n", len(names))
		return nil
	},
}

func init() {
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(typesCmd)
}
