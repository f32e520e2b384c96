// Package core assembles a component tree: the root component, the type
// registry, the library registry, the factory set and the plugin loader.
//
// A fresh tree looks like
//
//	//Root
//	//Root/Libraries
//	//Root/Factories
//
// and grows as plugins are loaded and components are created.
package core
