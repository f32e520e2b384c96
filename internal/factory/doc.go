// Package factory provides components that build other components by type
// name. A Typed factory binds its product's constructor at creation time and
// registers it, so whenever a Typed factory for a type exists, that type can
// be constructed.
package factory
