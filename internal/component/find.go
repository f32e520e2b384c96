package component

import (
	"fmt"
	"iter"
)

// Predicate selects components during recursive searches.
type Predicate func(Component) bool

// All matches every component.
func All() Predicate { return func(Component) bool { return true } }

// ByName matches components with the given name.
func ByName(name string) Predicate {
	return func(c Component) bool { return c.Base().name == name }
}

// ByType matches components whose declared type name is typeName.
func ByType(typeName string) Predicate {
	return func(c Component) bool { return c.Base().typeName == typeName }
}

// Is matches components implementing T.
func Is[T any]() Predicate {
	return func(c Component) bool {
		_, ok := c.(T)
		return ok
	}
}

func Not(p Predicate) Predicate {
	return func(c Component) bool { return !p(c) }
}

func And(ps ...Predicate) Predicate {
	return func(c Component) bool {
		for _, p := range ps {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

func Or(ps ...Predicate) Predicate {
	return func(c Component) bool {
		for _, p := range ps {
			if p(c) {
				return true
			}
		}
		return false
	}
}

// FindRecursive yields the descendants of n matching pred, depth-first in
// pre-order. The sequence is lazy and each range over it starts a fresh
// traversal. No lock is held while the caller's loop body runs.
func (n *Node) FindRecursive(pred Predicate) iter.Seq[Component] {
	return func(yield func(Component) bool) {
		n.find(pred, yield)
	}
}

func (n *Node) find(pred Predicate, yield func(Component) bool) bool {
	for _, child := range n.snapshot() {
		if pred(child.self) && !yield(child.self) {
			return false
		}
		if !child.find(pred, yield) {
			return false
		}
	}
	return true
}

// FindRecursiveUnique returns the only descendant matching pred.
func (n *Node) FindRecursiveUnique(pred Predicate) (Component, error) {
	var found Component
	for c := range n.FindRecursive(pred) {
		if found != nil {
			return nil, fmt.Errorf("searching under %q: %s and %s: %w",
				n.name, found.Base().Path(), c.Base().Path(), ErrAmbiguousMatch)
		}
		found = c
	}
	if found == nil {
		return nil, fmt.Errorf("searching under %q: %w", n.name, ErrNotFound)
	}
	return found, nil
}

// FindAll yields the descendants of n that implement T and match pred.
func FindAll[T any](n *Node, pred Predicate) iter.Seq[T] {
	if pred == nil {
		pred = All()
	}
	return func(yield func(T) bool) {
		for c := range n.FindRecursive(And(Is[T](), pred)) {
			if !yield(c.(T)) {
				return
			}
		}
	}
}

// FindUnique returns the only descendant of n that implements T and
// matches pred.
func FindUnique[T any](n *Node, pred Predicate) (T, error) {
	var zero T
	if pred == nil {
		pred = All()
	}
	c, err := n.FindRecursiveUnique(And(Is[T](), pred))
	if err != nil {
		return zero, err
	}
	return c.(T), nil
}

// Walk visits n and its descendants in pre-order with their depth below n.
// Returning false from fn skips the component's subtree.
func (n *Node) Walk(fn func(c Component, depth int) bool) {
	n.walk(0, fn)
}

func (n *Node) walk(depth int, fn func(Component, int) bool) {
	if !fn(n.self, depth) {
		return
	}
	for _, child := range n.snapshot() {
		child.walk(depth+1, fn)
	}
}
