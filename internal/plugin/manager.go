package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/compkit/compkit/internal/component"
)

const listSeparator = os.PathListSeparator

// Loaded describes a plugin that has been activated.
type Loaded struct {
	Name    string
	Version string
	Source  string
	Types   []string // types the plugin staged
}

// Manager discovers and activates plugins into a type registry.
type Manager struct {
	types      *component.Registry
	apiVersion string
	logger     *slog.Logger
	open       func(path string) (RegisterFunc, error)
	manifests  *cache.Cache // manifest path -> *cachedManifest

	mu      sync.RWMutex
	paths   []string
	bundles map[string]Bundle

	// slot serializes loads; it is a channel so waiting honors ctx.
	slot chan struct{}

	// state guards loaded and order for readers; only the slot holder
	// writes them.
	state  sync.RWMutex
	loaded map[string]*Loaded
	order  []string
}

// NewManager creates a manager that registers plugin types into types.
func NewManager(types *component.Registry, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		types:      types,
		apiVersion: component.APIVersion,
		logger:     logger,
		open:       openShared,
		manifests:  cache.New(10*time.Minute, 30*time.Minute),
		bundles:    make(map[string]Bundle),
		slot:       make(chan struct{}, 1),
		loaded:     make(map[string]*Loaded),
	}
}

// SetSearchPaths replaces the directories searched for plugins, in
// priority order.
func (m *Manager) SetSearchPaths(paths []string) {
	m.mu.Lock()
	m.paths = slices.Clone(paths)
	m.mu.Unlock()
}

// SearchPaths returns the current search paths.
func (m *Manager) SearchPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.paths)
}

// Provide offers a plugin compiled into the binary. A nil Register or a
// manifest whose name differs from b's is rejected.
func (m *Manager) Provide(b Bundle) error {
	if b.Manifest == nil || b.Register == nil {
		return errors.New("providing bundle: manifest and register function are required")
	}
	name := b.Manifest.Name
	if name == "" {
		return errors.New("providing bundle: manifest has no name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bundles[name]; ok {
		return fmt.Errorf("providing bundle %q: already provided", name)
	}
	m.bundles[name] = b
	return nil
}

// Discover lists every plugin visible to the manager, sorted by name.
// Plugins with unreadable or invalid manifests are included with Err set.
func (m *Manager) Discover() []*Discovered {
	m.mu.RLock()
	paths := m.paths
	bundles := make([]Bundle, 0, len(m.bundles))
	for _, b := range m.bundles {
		bundles = append(bundles, b)
	}
	m.mu.RUnlock()

	ds := m.discoverPaths(paths)
	seen := make(map[string]bool, len(ds))
	for _, d := range ds {
		seen[d.Name] = true
	}
	for _, b := range bundles {
		if !seen[b.Manifest.Name] {
			ds = append(ds, &Discovered{Name: b.Manifest.Name, Source: BundledSource, Manifest: b.Manifest})
		}
	}
	sortDiscovered(ds)
	return ds
}

// Loaded returns the activated plugins in load order.
func (m *Manager) Loaded() []Loaded {
	m.state.RLock()
	defer m.state.RUnlock()

	out := make([]Loaded, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, *m.loaded[name])
	}
	return out
}

// IsLoaded reports whether name has been activated.
func (m *Manager) IsLoaded(name string) bool {
	m.state.RLock()
	defer m.state.RUnlock()
	_, ok := m.loaded[name]
	return ok
}

// LoadLibrary activates name and, first, the plugins it requires. Loading
// an already loaded plugin is a no-op. Each plugin is committed on its
// own, so when a dependent fails its dependencies stay loaded. Every error
// is a *LoadError naming the plugin that was asked for.
func (m *Manager) LoadLibrary(ctx context.Context, name string) error {
	select {
	case m.slot <- struct{}{}:
	case <-ctx.Done():
		return loadError(name, ctx.Err())
	}
	defer func() { <-m.slot }()

	plan, err := m.plan(name)
	if err != nil {
		return loadError(name, err)
	}

	for _, d := range plan {
		if err := m.activate(ctx, d); err != nil {
			if d.Name != name {
				err = loadError(d.Name, err)
			}
			return loadError(name, err)
		}
	}
	return nil
}

// activate checks d's constraints, runs its registration into a batch and
// commits the batch.
func (m *Manager) activate(ctx context.Context, d *Discovered) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mf := d.Manifest
	ok, err := mf.SupportsAPI(m.apiVersion)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: requires component API %s, have %s", ErrIncompatible, mf.API, m.apiVersion)
	}
	if _, err := mf.SemVersion(); err != nil {
		return err
	}
	for _, req := range mf.Requires {
		dep := m.loaded[req.Name]
		ok, err := req.Satisfied(dep.Version)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: requires %s %s, have %s", ErrIncompatible, req.Name, req.Version, dep.Version)
		}
	}

	register, err := m.registerFunc(d)
	if err != nil {
		return err
	}

	batch := m.types.NewBatch()
	if err := runRegister(ctx, register, batch); err != nil {
		return err
	}

	staged := batch.TypeNames()
	for _, typeName := range slices.Concat(mf.Provides, mf.Libraries) {
		if !slices.Contains(staged, typeName) && !m.types.IsRegistered(typeName) {
			return fmt.Errorf("manifest declares type %q but the plugin did not register it", typeName)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := batch.Commit(); err != nil {
		return err
	}

	m.state.Lock()
	m.loaded[d.Name] = &Loaded{
		Name:    d.Name,
		Version: mf.Version,
		Source:  d.Source,
		Types:   staged,
	}
	m.order = append(m.order, d.Name)
	m.state.Unlock()
	m.logger.Debug("loaded plugin", "plugin", d.Name, "version", mf.Version, "source", d.Source, "types", len(staged))
	return nil
}

// registerFunc picks the activation for d: its shared object when the
// manifest names one, otherwise the provided bundle.
func (m *Manager) registerFunc(d *Discovered) (RegisterFunc, error) {
	if d.Manifest.Library != "" {
		path, err := d.libraryPath()
		if err != nil {
			return nil, err
		}
		return m.open(path)
	}

	m.mu.RLock()
	b, ok := m.bundles[d.Name]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNoActivation
	}
	return b.Register, nil
}

// runRegister runs register on its own goroutine so a cancelled ctx can
// abandon it. An abandoned batch is never committed.
func runRegister(ctx context.Context, register RegisterFunc, b *component.Batch) error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("plugin register panicked: %v", r)
			}
		}()
		done <- register(b)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("registering types: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
