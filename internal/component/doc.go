// Package component implements the component tree and the type registry
// that populates it.
//
// Every component embeds a *Node. A Node owns its children exclusively,
// keeps a non-owning reference to its parent and can be addressed with a
// cpath.Path relative to itself or absolutely from the root of its tree.
// The Registry maps type names to constructors so components can be built
// by name, including types contributed by plugins at runtime.
package component

// APIVersion is the version of the component API that plugins declare
// compatibility with.
const APIVersion = "1.4.0"
