package cli

import (
	"fmt"

	"github.com/compkit/compkit/internal/component"
	"github.com/compkit/compkit/internal/cpath"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path>",
	Short: "Resolve a path to a component",
	Long: `Resolve a component path against the root and print the component's
absolute path and type. "." and ".." segments are honored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		comp, err := access(c.Root(), args[0])
		if err != nil {
			return err
		}
		n := comp.Base()
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.Path().Text(false), n.TypeName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

// access parses text and resolves it from root, reporting a missing
// component as an error.
func access(root *component.Node, text string) (component.Component, error) {
	p, err := cpath.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing path: %w", err)
	}
	return root.Access(p)
}
