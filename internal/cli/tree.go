package cli

import (
	"fmt"
	"strings"

	"github.com/compkit/compkit/internal/component"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	treeYAML  bool
	treeDepth int
)

var treeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Print the component tree",
	Long: `Print the component tree below path (the root by default). Paths are
absolute (//Root/a/b or /a/b) or relative to the root.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	treeCmd.Flags().BoolVar(&treeYAML, "yaml", false, "Output in YAML format")
	treeCmd.Flags().IntVar(&treeDepth, "depth", -1, "Limit the depth printed (-1 for no limit)")
	rootCmd.AddCommand(treeCmd)
}

// treeNode is the YAML shape of a component subtree.
type treeNode struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	Children []*treeNode `yaml:"children,omitempty"`
}

func runTree(cmd *cobra.Command, args []string) error {
	c, err := openCore(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	start := component.Component(c.Root())
	if len(args) == 1 {
		start, err = access(c.Root(), args[0])
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if treeYAML {
		data, err := yaml.Marshal(buildTree(start, treeDepth))
		if err != nil {
			return fmt.Errorf("marshaling tree: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	start.Base().Walk(func(comp component.Component, depth int) bool {
		if treeDepth >= 0 && depth > treeDepth {
			return false
		}
		n := comp.Base()
		fmt.Fprintf(out, "%s%s (%s)\n", strings.Repeat("  ", depth), n.Name(), n.TypeName())
		return true
	})
	return nil
}

// buildTree snapshots comp and its descendants down to depth levels.
func buildTree(comp component.Component, depth int) *treeNode {
	n := comp.Base()
	t := &treeNode{Name: n.Name(), Type: n.TypeName()}
	if depth == 0 {
		return t
	}
	for _, child := range n.Children() {
		t.Children = append(t.Children, buildTree(child, depth-1))
	}
	return t
}
