// Package plugin loads component plugins. A plugin is a directory holding a
// plugin.yaml manifest and, optionally, a Go shared object exporting
// Register. Plugins compiled into the binary are offered with Provide and
// activated the same way once their manifest is found.
//
// Every plugin registers its types into a component.Batch that is committed
// only when activation succeeds, so a failed load leaves the type registry
// unchanged.
package plugin
