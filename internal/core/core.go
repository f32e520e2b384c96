package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/compkit/compkit/internal/component"
	"github.com/compkit/compkit/internal/cpath"
	"github.com/compkit/compkit/internal/factory"
	"github.com/compkit/compkit/internal/library"
	"github.com/compkit/compkit/internal/plugin"
)

// Names of the fixed children of the root.
const (
	LibrariesName = "Libraries"
	FactoriesName = "Factories"
	RootTypeName  = "Root"
)

// Options configures New. Zero values pick defaults.
type Options struct {
	RootName string              // "Root"
	Types    *component.Registry // component.Default()
	Logger   *slog.Logger        // slog.Default()

	// Loader replaces the plugin manager. When nil a *plugin.Manager over
	// Types is created and exposed by Plugins.
	Loader      plugin.Loader
	SearchPaths []string
	Bundles     []plugin.Bundle
	LoadTimeout time.Duration // per plugin; 30s
}

// Core owns a component tree and the registries that populate it.
type Core struct {
	id        string
	root      *component.Node
	types     *component.Registry
	libs      *library.Registry
	factories *factory.Set
	loader    plugin.Loader
	manager   *plugin.Manager
	timeout   time.Duration
	logger    *slog.Logger
}

// New builds the root tree.
func New(opts Options) (*Core, error) {
	if opts.RootName == "" {
		opts.RootName = "Root"
	}
	if !cpath.ValidSegment(opts.RootName) {
		return nil, fmt.Errorf("creating root %q: %w", opts.RootName, component.ErrInvalidName)
	}
	if opts.Types == nil {
		opts.Types = component.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 30 * time.Second
	}

	id := uuid.New().String()
	opts.Logger = opts.Logger.With("core", id)

	c := &Core{
		id:        id,
		root:      component.NewNode(opts.RootName, RootTypeName, nil),
		types:     opts.Types,
		libs:      library.NewRegistry(opts.Types, LibrariesName, opts.Logger),
		factories: factory.NewSet(FactoriesName),
		loader:    opts.Loader,
		timeout:   opts.LoadTimeout,
		logger:    opts.Logger,
	}

	if c.loader == nil {
		c.manager = plugin.NewManager(opts.Types, opts.Logger)
		for _, b := range opts.Bundles {
			if err := c.manager.Provide(b); err != nil {
				return nil, err
			}
		}
		c.loader = c.manager
	} else if len(opts.Bundles) > 0 {
		return nil, errors.New("creating core: bundles need the built-in plugin manager")
	}
	c.loader.SetSearchPaths(opts.SearchPaths)

	if _, err := c.root.AddChild(c.libs); err != nil {
		return nil, fmt.Errorf("attaching libraries: %w", err)
	}
	if _, err := c.root.AddChild(c.factories); err != nil {
		return nil, fmt.Errorf("attaching factories: %w", err)
	}
	return c, nil
}

// ID identifies this tree in log records.
func (c *Core) ID() string { return c.id }

// Root returns the root node.
func (c *Core) Root() *component.Node { return c.root }

// Types returns the type registry.
func (c *Core) Types() *component.Registry { return c.types }

// Libraries returns the library registry attached under the root.
func (c *Core) Libraries() *library.Registry { return c.libs }

// Factories returns the factory set attached under the root.
func (c *Core) Factories() *factory.Set { return c.factories }

// Plugins returns the built-in plugin manager, or nil when Options.Loader
// replaced it.
func (c *Core) Plugins() *plugin.Manager { return c.manager }

// LoadPlugins loads each plugin in turn, each bounded by the load timeout.
// It keeps going after a failure and returns all failures joined.
func (c *Core) LoadPlugins(ctx context.Context, names ...string) error {
	var errs []error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = append(errs, &plugin.LoadError{Name: name, Err: err})
			break
		}
		lctx, cancel := context.WithTimeout(ctx, c.timeout)
		err := c.loader.LoadLibrary(lctx, name)
		cancel()
		if err != nil {
			c.logger.Warn("plugin not loaded", "plugin", name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Resolve resolves text against the root.
func (c *Core) Resolve(text string) (component.Component, error) {
	return c.root.ResolveString(text)
}

// Create builds a typeName component through the factory set and attaches
// it at p, whose parent must already exist.
func (c *Core) Create(p cpath.Path, typeName string) (component.Component, error) {
	if p.IsEmpty() || p.Base() == "" {
		return nil, fmt.Errorf("creating %q: %w", p, component.ErrInvalidName)
	}
	parent, err := c.root.Access(p.Parent())
	if err != nil {
		return nil, fmt.Errorf("creating %s: parent: %w", p, err)
	}

	f, err := c.factories.Ensure(c.types, typeName)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", p, err)
	}
	comp, err := f.Build(p.Base())
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", p, err)
	}
	if _, err := parent.Base().AddChild(comp); err != nil {
		return nil, fmt.Errorf("creating %s: %w", p, err)
	}
	c.logger.Debug("component created", "path", comp.Base().Path().Text(false), "type", typeName)
	return comp, nil
}

// Close terminates all libraries.
func (c *Core) Close() error {
	return c.libs.TerminateAll()
}
