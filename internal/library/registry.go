package library

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/compkit/compkit/internal/component"
)

// RegistryTypeName is the component type name of a Registry.
const RegistryTypeName = "Libraries"

// Registry is the component holding one façade per library type.
type Registry struct {
	*component.Node
	types  *component.Registry
	flight singleflight.Group
	logger *slog.Logger
}

// NewRegistry creates a detached library registry constructing façades
// through types.
func NewRegistry(types *component.Registry, name string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{types: types, logger: logger}
	r.Node = component.NewNode(name, RegistryTypeName, r)
	return r
}

// Get returns the façade for t, creating it on first use.
//
// When t's type name is not registered yet, t's constructor is registered
// first; a constructor registered earlier, typically by a plugin, is used
// instead. Concurrent first calls for the same type build one façade: the
// others wait for it. The façade stays the same for as long as it remains
// attached.
func Get[L Library](r *Registry, t Type[L]) (L, error) {
	if c, ok := r.Child(t.name); ok {
		return asType[L](c, t.name)
	}

	v, err, _ := r.flight.Do(t.name, func() (any, error) {
		if c, ok := r.Child(t.name); ok {
			return c, nil
		}
		return r.create(t.name, t.registerIfAbsent)
	})
	if err != nil {
		var zero L
		return zero, err
	}
	return asType[L](v.(component.Component), t.name)
}

// Open returns the façade registered as typeName, creating it on first use
// like Get. The type must already be registered, typically by a plugin.
func (r *Registry) Open(typeName string) (Library, error) {
	v, err, _ := r.flight.Do(typeName, func() (any, error) {
		if c, ok := r.Child(typeName); ok {
			return c, nil
		}
		return r.create(typeName, nil)
	})
	if err != nil {
		return nil, err
	}
	lib, ok := v.(Library)
	if !ok {
		return nil, fmt.Errorf("library %q is a %T: %w", typeName, v, ErrNotLibrary)
	}
	return lib, nil
}

// create builds, initiates and attaches a façade. A non-nil register is
// called first to put a constructor in place when typeName is free.
func (r *Registry) create(typeName string, register func(*component.Registry) (bool, error)) (component.Component, error) {
	forced := false
	if register != nil {
		var err error
		forced, err = register(r.types)
		if err != nil {
			return nil, fmt.Errorf("registering library %q: %w", typeName, err)
		}
	}

	c, err := r.types.Construct(typeName, typeName)
	if err != nil {
		return nil, fmt.Errorf("creating library %q: %w", typeName, err)
	}
	lib, ok := c.(Library)
	if !ok {
		return nil, fmt.Errorf("creating library %q: built %T: %w", typeName, c, ErrNotLibrary)
	}
	if err := lib.Initiate(); err != nil {
		return nil, fmt.Errorf("initiating library %q: %w", typeName, err)
	}
	if _, err := r.AddChild(lib); err != nil {
		_ = lib.Terminate()
		return nil, fmt.Errorf("attaching library %q: %w", typeName, err)
	}

	r.logger.Debug("library created",
		"type", typeName,
		"library", lib.LibraryName(),
		"forced_registration", forced)
	return lib, nil
}

// Lookup returns an existing façade by type name.
func (r *Registry) Lookup(typeName string) (Library, bool) {
	c, ok := r.Child(typeName)
	if !ok {
		return nil, false
	}
	lib, ok := c.(Library)
	return lib, ok
}

// Libraries returns the attached façades in creation order.
func (r *Registry) Libraries() []Library {
	var out []Library
	for _, c := range r.Children() {
		if lib, ok := c.(Library); ok {
			out = append(out, lib)
		}
	}
	return out
}

// TerminateAll terminates every façade in reverse creation order and
// returns their errors joined.
func (r *Registry) TerminateAll() error {
	libs := r.Libraries()
	var errs []error
	for i := len(libs) - 1; i >= 0; i-- {
		if err := libs[i].Terminate(); err != nil {
			errs = append(errs, fmt.Errorf("terminating library %q: %w", libs[i].Base().Name(), err))
		}
	}
	return errors.Join(errs...)
}
