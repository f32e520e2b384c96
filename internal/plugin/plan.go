package plugin

import (
	"fmt"
	"strings"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// plan resolves name and its requirements into load order, dependencies
// first. Plugins already loaded are left out. Callers hold the load slot.
func (m *Manager) plan(name string) ([]*Discovered, error) {
	state := make(map[string]visitState)
	var order []*Discovered

	var visit func(name string, chain []string) error
	visit = func(name string, chain []string) error {
		if _, ok := m.loaded[name]; ok {
			return nil
		}
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: %s", ErrDependencyCycle, strings.Join(append(chain, name), " -> "))
		case visited:
			return nil
		}
		state[name] = visiting

		d, err := m.find(name)
		if err != nil {
			if len(chain) > 0 {
				return fmt.Errorf("required by %s: %w", chain[len(chain)-1], err)
			}
			return err
		}

		for _, req := range d.Manifest.Requires {
			if err := visit(req.Name, append(chain, name)); err != nil {
				return err
			}
		}

		state[name] = visited
		order = append(order, d)
		return nil
	}

	if err := visit(name, nil); err != nil {
		return nil, err
	}
	return order, nil
}

// find locates a plugin by name: search paths first, then bundles.
func (m *Manager) find(name string) (*Discovered, error) {
	m.mu.RLock()
	paths := m.paths
	b, bundled := m.bundles[name]
	m.mu.RUnlock()

	if d, ok := m.findPath(paths, name); ok {
		if d.Err != nil {
			return nil, d.Err
		}
		return d, nil
	}
	if bundled && b.Manifest != nil {
		return &Discovered{Name: name, Source: BundledSource, Manifest: b.Manifest}, nil
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, name, strings.Join(paths, string(listSeparator)))
}
