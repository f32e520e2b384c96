package component

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/compkit/compkit/internal/cpath"
)

// Constructor builds a detached component with the given instance name.
type Constructor func(name string) Component

// Registrar accepts type registrations. It is implemented by *Registry for
// immediate registration and by *Batch for staged registration.
type Registrar interface {
	Register(typeName string, ctor Constructor) error
	register(typeName string, ctor Constructor, id uintptr) error
}

type entry struct {
	ctor Constructor
	id   uintptr
}

// Registry maps type names to constructors. It is safe for concurrent use;
// a single lock covers the whole map since registration is rare compared
// to construction.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	logger  *slog.Logger
}

// NewRegistry creates an empty registry. Tests use it to stay isolated from
// the process-wide one.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
		logger:  slog.Default(),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. It exists before any init
// function runs, so plugins may register into it from init.
func Default() *Registry { return defaultRegistry }

// SetLogger replaces the registry's logger.
func (r *Registry) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	r.mu.Lock()
	r.logger = l
	r.mu.Unlock()
}

// funcID identifies a constructor. Closures created by the same function
// literal share an identity.
func funcID(fn any) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// Register maps typeName to ctor. Registering the same pair again is a
// no-op; registering a different constructor under a taken name fails with
// ErrConflictingRegistration and keeps the original.
//
// Constructors are compared by code pointer, so two closures made by the
// same function literal count as the same constructor even when they
// capture different values. Registering the second one is then a no-op,
// not a conflict.
func (r *Registry) Register(typeName string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("registering type %q: nil constructor", typeName)
	}
	return r.register(typeName, ctor, funcID(ctor))
}

func (r *Registry) register(typeName string, ctor Constructor, id uintptr) error {
	if typeName == "" {
		return fmt.Errorf("registering type: %w: empty type name", ErrInvalidName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	added, err := r.insertLocked(typeName, entry{ctor: ctor, id: id})
	if err != nil {
		return err
	}
	if added {
		r.logger.Debug("registered component type", "type", typeName)
	}
	return nil
}

func (r *Registry) insertLocked(typeName string, e entry) (bool, error) {
	if existing, ok := r.entries[typeName]; ok {
		if existing.id == e.id {
			return false, nil
		}
		return false, fmt.Errorf("registering type %q: %w", typeName, ErrConflictingRegistration)
	}
	r.entries[typeName] = e
	return true, nil
}

// RegisterIfAbsent registers ctor only when typeName is free, reporting
// whether it did. Unlike Register it never conflicts.
func (r *Registry) RegisterIfAbsent(typeName string, ctor Constructor) (bool, error) {
	if typeName == "" {
		return false, fmt.Errorf("registering type: %w: empty type name", ErrInvalidName)
	}
	if ctor == nil {
		return false, fmt.Errorf("registering type %q: nil constructor", typeName)
	}
	return r.registerIfAbsent(typeName, ctor, funcID(ctor))
}

func (r *Registry) registerIfAbsent(typeName string, ctor Constructor, id uintptr) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[typeName]; ok {
		return false, nil
	}
	r.entries[typeName] = entry{ctor: ctor, id: id}
	r.logger.Debug("registered component type", "type", typeName, "forced", true)
	return true, nil
}

// Construct builds a detached instance of typeName called instanceName.
// The instance reports typeName as its type name.
func (r *Registry) Construct(typeName, instanceName string) (Component, error) {
	r.mu.RLock()
	e, ok := r.entries[typeName]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("constructing %q as %q: %w", instanceName, typeName, ErrUnknownType)
	}
	if !cpath.ValidSegment(instanceName) {
		return nil, fmt.Errorf("constructing %q as %q: %w", instanceName, typeName, ErrInvalidName)
	}

	c := e.ctor(instanceName)
	if c == nil || c.Base() == nil {
		return nil, fmt.Errorf("constructing %q as %q: constructor returned nil", instanceName, typeName)
	}

	n := c.Base()
	if n.parent.Load() != nil {
		return nil, fmt.Errorf("constructing %q as %q: %w", instanceName, typeName, ErrAttached)
	}
	if n.name != instanceName {
		return nil, fmt.Errorf("constructing %q as %q: constructor named it %q", instanceName, typeName, n.name)
	}
	n.typeName = typeName
	if n.self == Component(n) {
		n.self = c
	}
	return c, nil
}

// IsRegistered reports whether typeName has a constructor.
func (r *Registry) IsRegistered(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[typeName]
	return ok
}

// TypeNames returns all registered type names, sorted.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterType registers a constructor returning a concrete component type.
// Identity for conflict detection is that of ctor itself.
func RegisterType[T Component](r Registrar, typeName string, ctor func(name string) T) error {
	if ctor == nil {
		return fmt.Errorf("registering type %q: nil constructor", typeName)
	}
	wrapped := func(name string) Component { return ctor(name) }
	return r.register(typeName, wrapped, funcID(ctor))
}

// RegisterTypeIfAbsent is RegisterIfAbsent for a constructor returning a
// concrete component type. Like RegisterType it records the identity of
// ctor itself, so a later RegisterType of the same function is a no-op.
func RegisterTypeIfAbsent[T Component](r *Registry, typeName string, ctor func(name string) T) (bool, error) {
	if typeName == "" {
		return false, fmt.Errorf("registering type: %w: empty type name", ErrInvalidName)
	}
	if ctor == nil {
		return false, fmt.Errorf("registering type %q: nil constructor", typeName)
	}
	wrapped := func(name string) Component { return ctor(name) }
	return r.registerIfAbsent(typeName, wrapped, funcID(ctor))
}
