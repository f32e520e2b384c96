package core

import (
	"fmt"

	"github.com/compkit/compkit/internal/cpath"
)

// Placement is a component to create at startup.
type Placement struct {
	Path cpath.Path
	Type string
}

// ParsePlacement parses the textual form used in configuration.
func ParsePlacement(path, typeName string) (Placement, error) {
	p, err := cpath.Parse(path)
	if err != nil {
		return Placement{}, fmt.Errorf("placement %q: %w", path, err)
	}
	return Placement{Path: p, Type: typeName}, nil
}

// Populate creates the placements in order. Parents must come before their
// children. It stops at the first failure.
func (c *Core) Populate(placements []Placement) error {
	for _, pl := range placements {
		if _, err := c.Create(pl.Path, pl.Type); err != nil {
			return err
		}
	}
	return nil
}
