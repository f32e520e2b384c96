package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/compkit/compkit/internal/component"
	"github.com/compkit/compkit/internal/config"
	"github.com/compkit/compkit/internal/core"
	"github.com/compkit/compkit/internal/plugin"
	"github.com/compkit/compkit/internal/plugins/mesh"
	"github.com/spf13/cobra"
)

// openCore builds the component tree described by the settings: it
// provides the bundled plugins, loads plugins.preload and creates the
// configured components.
func openCore(cmd *cobra.Command) (*core.Core, error) {
	s, err := config.Current()
	if err != nil {
		return nil, err
	}

	meshBundle, err := mesh.Bundle()
	if err != nil {
		return nil, err
	}

	c, err := core.New(core.Options{
		RootName:    s.Root.Name,
		Types:       component.Default(),
		Logger:      slog.Default(),
		SearchPaths: slices.Concat(pluginPaths, s.Plugins.SearchPaths),
		Bundles:     []plugin.Bundle{meshBundle},
		LoadTimeout: s.Plugins.LoadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("creating component tree: %w", err)
	}

	if !noPreload {
		if err := c.LoadPlugins(cmd.Context(), s.Plugins.Preload...); err != nil {
			return nil, fmt.Errorf("preloading plugins: %w", err)
		}
	}

	placements := make([]core.Placement, 0, len(s.Components))
	for _, p := range s.Components {
		pl, err := core.ParsePlacement(p.Path, p.Type)
		if err != nil {
			return nil, err
		}
		placements = append(placements, pl)
	}
	if err := c.Populate(placements); err != nil {
		return nil, fmt.Errorf("creating configured components: %w", err)
	}
	return c, nil
}
