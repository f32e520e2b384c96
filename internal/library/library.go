package library

import (
	"errors"
	"fmt"

	"github.com/compkit/compkit/internal/component"
)

// ErrNotLibrary is returned when a library type constructs a component that
// does not implement Library.
var ErrNotLibrary = errors.New("component is not a library")

// Library is the façade of a library of components.
type Library interface {
	component.Component
	LibraryName() string
	Namespace() string
	Description() string
	// Initiate runs once, before the façade is attached to the registry.
	Initiate() error
	// Terminate runs when the registry shuts libraries down.
	Terminate() error
}

// Info describes a library.
type Info struct {
	Name        string // e.g. "Mesh"
	Namespace   string // e.g. "CF.Mesh"
	Description string
}

// Facade implements the metadata half of Library with no-op lifecycle hooks.
// Concrete façades embed it and override Initiate or Terminate as needed.
type Facade struct {
	*component.Node
	info Info
}

// NewFacade creates the embedded part of a façade. self is the embedding
// component.
func NewFacade(instanceName, typeName string, info Info, self component.Component) *Facade {
	return &Facade{
		Node: component.NewNode(instanceName, typeName, self),
		info: info,
	}
}

func (f *Facade) LibraryName() string { return f.info.Name }
func (f *Facade) Namespace() string   { return f.info.Namespace }
func (f *Facade) Description() string { return f.info.Description }
func (f *Facade) Initiate() error     { return nil }
func (f *Facade) Terminate() error    { return nil }

// Type describes a library type: the type name its façade is registered and
// attached under, and the constructor used when no other one was registered.
type Type[L Library] struct {
	name string
	ctor func(name string) L
}

// Define declares a library type. Packages providing a library usually keep
// the result in an exported variable.
func Define[L Library](typeName string, ctor func(name string) L) Type[L] {
	return Type[L]{name: typeName, ctor: ctor}
}

// Name returns the type name.
func (t Type[L]) Name() string { return t.name }

// registerIfAbsent registers t's constructor unless the type name is taken.
func (t Type[L]) registerIfAbsent(types *component.Registry) (bool, error) {
	return component.RegisterTypeIfAbsent(types, t.name, t.ctor)
}

func asType[L Library](c component.Component, typeName string) (L, error) {
	var zero L
	l, ok := c.(L)
	if !ok {
		return zero, fmt.Errorf("library %q is a %T: %w", typeName, c, ErrNotLibrary)
	}
	return l, nil
}
