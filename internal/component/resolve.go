package component

import (
	"fmt"
	"strings"

	"github.com/compkit/compkit/internal/cpath"
)

// Resolve walks p and returns the component it designates.
//
// Absolute paths start at the root of n's tree, relative paths at n. In the
// //Root/... form the first segment must name the root. "." stays in place
// and ".." moves to the parent. A missing segment yields (nil, nil); stepping
// above the root is an error.
func (n *Node) Resolve(p cpath.Path) (Component, error) {
	if p.Protocol() != cpath.CPath {
		return nil, fmt.Errorf("resolving %s: %w", p, ErrUnsupportedProtocol)
	}

	cur := n
	segs := p.Segments()
	if p.IsAbsolute() {
		cur = n.rootNode()
		if strings.HasPrefix(p.Text(false), "//") && len(segs) > 0 {
			if segs[0] != cur.name {
				return nil, nil
			}
			segs = segs[1:]
		}
	}

	for _, s := range segs {
		switch s {
		case cpath.Current:
		case cpath.Up:
			parent := cur.parent.Load()
			if parent == nil {
				return nil, fmt.Errorf("resolving %s from %q: %w", p, n.name, ErrAboveRoot)
			}
			cur = parent
		default:
			cur.mu.RLock()
			next := cur.children[s]
			cur.mu.RUnlock()
			if next == nil {
				return nil, nil
			}
			cur = next
		}
	}
	return cur.self, nil
}

// ResolveString parses text and resolves it.
func (n *Node) ResolveString(text string) (Component, error) {
	p, err := cpath.Parse(text)
	if err != nil {
		return nil, err
	}
	return n.Resolve(p)
}

// Access is Resolve with a missing component reported as ErrNotFound.
func (n *Node) Access(p cpath.Path) (Component, error) {
	c, err := n.Resolve(p)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("resolving %s from %q: %w", p, n.name, ErrNotFound)
	}
	return c, nil
}

// AccessAs resolves p and asserts the result to T.
func AccessAs[T any](n *Node, p cpath.Path) (T, error) {
	var zero T
	c, err := n.Access(p)
	if err != nil {
		return zero, err
	}
	t, ok := c.(T)
	if !ok {
		return zero, fmt.Errorf("resolving %s: %s is a %s: %w", p, c.Base().Name(), c.Base().TypeName(), ErrNotFound)
	}
	return t, nil
}
