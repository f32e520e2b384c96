package component

import "testing"

// widget is a minimal component used across the package tests.
type widget struct {
	*Node
	attachedTo string
	detached   int
}

func newWidget(name string) *widget {
	w := &widget{}
	w.Node = NewNode(name, "Widget", w)
	return w
}

func (w *widget) OnAttach(parent Component) { w.attachedTo = parent.Base().Name() }
func (w *widget) OnDetach(Component)        { w.detached++ }

// gadget is a second concrete type with an extra capability.
type gadget struct {
	*Node
}

type pinger interface{ Ping() string }

func newGadget(name string) *gadget {
	g := &gadget{}
	g.Node = NewNode(name, "Gadget", g)
	return g
}

func (g *gadget) Ping() string { return "pong:" + g.Name() }

// buildTree creates Root{Mesh{nodes, coords}, Solver{nodes}, Tools}.
func buildTree(t *testing.T) *Node {
	t.Helper()
	root := NewNode("Root", "", nil)
	mesh := mustAdd(t, root, newWidget("Mesh"))
	mustAdd(t, mesh.Base(), newGadget("nodes"))
	mustAdd(t, mesh.Base(), newWidget("coords"))
	solver := mustAdd(t, root, newWidget("Solver"))
	mustAdd(t, solver.Base(), newGadget("nodes"))
	mustAdd(t, root, newWidget("Tools"))
	return root
}

func mustAdd(t *testing.T, parent *Node, c Component) Component {
	t.Helper()
	added, err := parent.AddChild(c)
	if err != nil {
		t.Fatalf("AddChild(%s): %v", c.Base().Name(), err)
	}
	return added
}
