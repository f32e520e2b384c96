// Package mesh is a plugin compiled into compkit. It provides the Mesh
// library façade and the CRegion and CNodes components.
package mesh

import (
	_ "embed"
	"fmt"
	"sync/atomic"

	"github.com/compkit/compkit/internal/component"
	"github.com/compkit/compkit/internal/library"
	"github.com/compkit/compkit/internal/manifest"
	"github.com/compkit/compkit/internal/plugin"
)

//go:embed plugin.yaml
var manifestBytes []byte

// Type names registered by the plugin.
const (
	RegionType  = "CRegion"
	NodesType   = "CNodes"
	LibraryType = "Mesh"
)

// LibMesh is the façade of the mesh library.
type LibMesh struct {
	*library.Facade
	initiated atomic.Int32
}

// NewLibMesh creates a detached façade.
func NewLibMesh(name string) *LibMesh {
	l := &LibMesh{}
	l.Facade = library.NewFacade(name, LibraryType, library.Info{
		Name:        "Mesh",
		Namespace:   "CF.Mesh",
		Description: "Mesh data structures",
	}, l)
	return l
}

// Initiate records that the library was started.
func (l *LibMesh) Initiate() error {
	l.initiated.Add(1)
	return nil
}

// Initiations reports how many times Initiate ran.
func (l *LibMesh) Initiations() int { return int(l.initiated.Load()) }

// Library is the mesh library type for library.Get.
var Library = library.Define(LibraryType, NewLibMesh)

// CRegion groups mesh components.
type CRegion struct {
	*component.Node
}

// NewRegion creates a detached region.
func NewRegion(name string) *CRegion {
	r := &CRegion{}
	r.Node = component.NewNode(name, RegionType, r)
	return r
}

// CNodes is a set of mesh nodes in a fixed number of dimensions.
type CNodes struct {
	*component.Node
	dim   atomic.Int32
	count atomic.Int64
}

// NewNodes creates an empty, two-dimensional node set.
func NewNodes(name string) *CNodes {
	n := &CNodes{}
	n.Node = component.NewNode(name, NodesType, n)
	n.dim.Store(2)
	return n
}

// Dimension returns the coordinate dimension.
func (n *CNodes) Dimension() int { return int(n.dim.Load()) }

// Resize sets the dimension and node count.
func (n *CNodes) Resize(dim, count int) error {
	if dim < 1 || dim > 3 {
		return fmt.Errorf("resizing %s: dimension %d out of range 1..3", n.Name(), dim)
	}
	if count < 0 {
		return fmt.Errorf("resizing %s: negative count %d", n.Name(), count)
	}
	n.dim.Store(int32(dim))
	n.count.Store(int64(count))
	return nil
}

// Size returns the number of nodes.
func (n *CNodes) Size() int { return int(n.count.Load()) }

// Register stages the plugin's types.
func Register(b *component.Batch) error {
	if err := component.RegisterType(b, RegionType, NewRegion); err != nil {
		return err
	}
	if err := component.RegisterType(b, NodesType, NewNodes); err != nil {
		return err
	}
	return component.RegisterType(b, LibraryType, NewLibMesh)
}

// Bundle returns the plugin for plugin.Manager.Provide.
func Bundle() (plugin.Bundle, error) {
	result, err := manifest.Validate(manifestBytes)
	if err != nil {
		return plugin.Bundle{}, fmt.Errorf("validating mesh manifest: %w", err)
	}
	if !result.Valid {
		return plugin.Bundle{}, &manifest.InvalidError{Path: "mesh/plugin.yaml", Issues: result.Issues}
	}
	m, err := manifest.ParseBytes(manifestBytes)
	if err != nil {
		return plugin.Bundle{}, fmt.Errorf("parsing mesh manifest: %w", err)
	}
	return plugin.Bundle{Manifest: m, Register: Register}, nil
}
