package factory

import (
	"fmt"
	"sync"

	"github.com/compkit/compkit/internal/component"
)

// SetTypeName is the component type name of a Set.
const SetTypeName = "Factories"

// Set is a component grouping factories, one per product type.
type Set struct {
	*component.Node
	mu sync.Mutex
}

// NewSet creates an empty, detached factory set.
func NewSet(name string) *Set {
	s := &Set{}
	s.Node = component.NewNode(name, SetTypeName, s)
	return s
}

// Add attaches f unless a factory for the same product is already present.
func (s *Set) Add(f Factory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, err := s.For(f.ProductTypeName()); err == nil {
		return fmt.Errorf("adding factory %q: %q already builds %q: %w",
			f.Base().Name(), existing.Base().Name(), f.ProductTypeName(), component.ErrDuplicateName)
	}
	if _, err := s.AddChild(f); err != nil {
		return fmt.Errorf("adding factory: %w", err)
	}
	return nil
}

// For returns the factory building productType.
func (s *Set) For(productType string) (Factory, error) {
	for _, c := range s.Children() {
		if Builds(productType)(c) {
			return c.(Factory), nil
		}
	}
	return nil, fmt.Errorf("factory for %q: %w", productType, component.ErrNotFound)
}

// ProductTypes lists the product types of the attached factories.
func (s *Set) ProductTypes() []string {
	var out []string
	for _, c := range s.Children() {
		if f, ok := c.(Factory); ok {
			out = append(out, f.ProductTypeName())
		}
	}
	return out
}

// Ensure returns the factory building productType, first adding a Dynamic
// factory named after the product when the set has none.
func (s *Set) Ensure(types *component.Registry, productType string) (Factory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, err := s.For(productType); err == nil {
		return f, nil
	}
	f := New(types, productType, productType)
	if _, err := s.AddChild(f); err != nil {
		return nil, fmt.Errorf("adding factory for %q: %w", productType, err)
	}
	return f, nil
}
