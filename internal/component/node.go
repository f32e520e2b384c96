package component

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/compkit/compkit/internal/cpath"
)

// DefaultTypeName is reported by nodes created without a type name.
const DefaultTypeName = "Component"

// Component is anything that can live in the tree. Concrete components
// embed a *Node, which provides Base.
type Component interface {
	Base() *Node
}

// Attacher is implemented by components that want to know when they are
// added to a parent.
type Attacher interface {
	OnAttach(parent Component)
}

// Detacher is implemented by components that want to know when they are
// removed from their parent.
type Detacher interface {
	OnDetach(parent Component)
}

// structure serializes every add and remove, across all trees, so ancestry
// checks cannot interleave with another mutation.
var structure sync.Mutex

// Node is an element of the component tree. It owns its children and holds
// a non-owning reference to its parent.
type Node struct {
	name     string
	typeName string
	self     Component

	parent atomic.Pointer[Node]

	mu       sync.RWMutex
	children map[string]*Node
	order    []string
}

// NewNode creates a detached node. self is the component embedding the
// node; lookups return it instead of the bare node. A nil self makes the
// node stand for itself.
func NewNode(name, typeName string, self Component) *Node {
	if typeName == "" {
		typeName = DefaultTypeName
	}
	n := &Node{
		name:     name,
		typeName: typeName,
		self:     self,
		children: make(map[string]*Node),
	}
	if n.self == nil {
		n.self = n
	}
	return n
}

// Base returns n itself.
func (n *Node) Base() *Node { return n }

// Self returns the component embedding n.
func (n *Node) Self() Component { return n.self }

func (n *Node) Name() string     { return n.name }
func (n *Node) TypeName() string { return n.typeName }

// Parent returns the owning component, or nil for a root.
func (n *Node) Parent() Component {
	p := n.parent.Load()
	if p == nil {
		return nil
	}
	return p.self
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent.Load() == nil }

// Root returns the root of the tree n belongs to.
func (n *Node) Root() Component { return n.rootNode().self }

func (n *Node) rootNode() *Node {
	cur := n
	for {
		p := cur.parent.Load()
		if p == nil {
			return cur
		}
		cur = p
	}
}

// Path returns the absolute address of n, in the form //Root/child/...
func (n *Node) Path() cpath.Path {
	var names []string
	for cur := n; cur != nil; cur = cur.parent.Load() {
		names = append(names, cur.name)
	}
	slices.Reverse(names)
	return cpath.MustParse("//" + strings.Join(names, cpath.Separator))
}

// AddChild takes ownership of c and makes n its parent. c must be detached,
// validly named and not an ancestor of n.
func (n *Node) AddChild(c Component) (Component, error) {
	if c == nil || c.Base() == nil {
		return nil, fmt.Errorf("adding child to %q: %w: nil component", n.name, ErrInvalidName)
	}
	child := c.Base()
	if !cpath.ValidSegment(child.name) {
		return nil, fmt.Errorf("adding %q to %q: %w", child.name, n.name, ErrInvalidName)
	}

	structure.Lock()
	for a := n; a != nil; a = a.parent.Load() {
		if a == child {
			structure.Unlock()
			return nil, fmt.Errorf("adding %q to %q: %w", child.name, n.name, ErrCycle)
		}
	}
	if child.parent.Load() != nil {
		structure.Unlock()
		return nil, fmt.Errorf("adding %q to %q: %w", child.name, n.name, ErrAttached)
	}

	n.mu.Lock()
	if _, exists := n.children[child.name]; exists {
		n.mu.Unlock()
		structure.Unlock()
		return nil, fmt.Errorf("adding %q to %q: %w", child.name, n.name, ErrDuplicateName)
	}
	child.parent.Store(n)
	n.children[child.name] = child
	n.order = append(n.order, child.name)
	n.mu.Unlock()
	structure.Unlock()

	if a, ok := child.self.(Attacher); ok {
		a.OnAttach(n.self)
	}
	return child.self, nil
}

// RemoveChild detaches the named child and hands it to the caller.
func (n *Node) RemoveChild(name string) (Component, error) {
	structure.Lock()
	n.mu.Lock()
	child, ok := n.children[name]
	if !ok {
		n.mu.Unlock()
		structure.Unlock()
		return nil, fmt.Errorf("removing %q from %q: %w", name, n.name, ErrNotFound)
	}
	delete(n.children, name)
	if i := slices.Index(n.order, name); i >= 0 {
		n.order = slices.Delete(n.order, i, i+1)
	}
	child.parent.Store(nil)
	n.mu.Unlock()
	structure.Unlock()

	if d, ok := child.self.(Detacher); ok {
		d.OnDetach(n.self)
	}
	return child.self, nil
}

// Child returns the direct child with the given name.
func (n *Node) Child(name string) (Component, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	c, ok := n.children[name]
	if !ok {
		return nil, false
	}
	return c.self, true
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []Component {
	nodes := n.snapshot()
	out := make([]Component, len(nodes))
	for i, c := range nodes {
		out[i] = c.self
	}
	return out
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.children)
}

func (n *Node) snapshot() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	nodes := make([]*Node, 0, len(n.order))
	for _, name := range n.order {
		nodes = append(nodes, n.children[name])
	}
	return nodes
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.typeName, n.Path())
}
