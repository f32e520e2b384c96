package factory

import (
	"errors"
	"fmt"

	"github.com/compkit/compkit/internal/component"
)

// ErrProductMismatch is returned when the registry builds something other
// than the product type a Typed factory promises.
var ErrProductMismatch = errors.New("factory product type mismatch")

// Factory builds components of one product type.
type Factory interface {
	component.Component
	ProductTypeName() string
	Build(instanceName string) (component.Component, error)
}

// TypeName returns the component type name of a factory for productType.
func TypeName(productType string) string {
	return "Factory<" + productType + ">"
}

// Dynamic is a factory that delegates construction to a type registry by
// product type name.
type Dynamic struct {
	*component.Node
	types   *component.Registry
	product string
}

// New creates a detached factory called name for productType. The product
// does not need to be registered yet; Build fails until it is.
func New(types *component.Registry, name, productType string) *Dynamic {
	f := &Dynamic{types: types, product: productType}
	f.Node = component.NewNode(name, TypeName(productType), f)
	return f
}

func (f *Dynamic) ProductTypeName() string { return f.product }

// Build constructs a detached product called instanceName.
func (f *Dynamic) Build(instanceName string) (component.Component, error) {
	c, err := f.types.Construct(f.product, instanceName)
	if err != nil {
		return nil, fmt.Errorf("factory %q: %w", f.Name(), err)
	}
	return c, nil
}

// Create builds a product and keeps it as a child of the factory.
func (f *Dynamic) Create(instanceName string) (component.Component, error) {
	c, err := f.Build(instanceName)
	if err != nil {
		return nil, err
	}
	return f.AddChild(c)
}

// Typed is a factory whose products are statically known to be T.
type Typed[T component.Component] struct {
	*Dynamic
}

// NewTyped registers ctor as productType in types and returns a factory for
// it. Registration fails, and no factory is returned, when productType is
// already bound to a different constructor.
func NewTyped[T component.Component](types *component.Registry, name, productType string, ctor func(name string) T) (*Typed[T], error) {
	if err := component.RegisterType(types, productType, ctor); err != nil {
		return nil, fmt.Errorf("creating factory %q: %w", name, err)
	}
	f := &Typed[T]{Dynamic: &Dynamic{types: types, product: productType}}
	f.Node = component.NewNode(name, TypeName(productType), f)
	return f, nil
}

// Make builds a detached product as a T.
func (f *Typed[T]) Make(instanceName string) (T, error) {
	var zero T
	c, err := f.Build(instanceName)
	if err != nil {
		return zero, err
	}
	t, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("factory %q built %T: %w", f.Name(), c, ErrProductMismatch)
	}
	return t, nil
}

// Create builds a T and keeps it as a child of the factory.
func (f *Typed[T]) Create(instanceName string) (T, error) {
	var zero T
	t, err := f.Make(instanceName)
	if err != nil {
		return zero, err
	}
	if _, err := f.AddChild(t); err != nil {
		return zero, err
	}
	return t, nil
}

// Builds matches factories whose product is productType.
func Builds(productType string) component.Predicate {
	return func(c component.Component) bool {
		f, ok := c.(Factory)
		return ok && f.ProductTypeName() == productType
	}
}
