package plugin

import (
	"errors"
	"fmt"
)

// ErrPluginLoadFailed matches every error returned by LoadLibrary.
var ErrPluginLoadFailed = errors.New("plugin load failed")

var (
	// ErrNotFound means no search path or bundle holds the plugin.
	ErrNotFound = errors.New("plugin not found")
	// ErrIncompatible means a version constraint is not met.
	ErrIncompatible = errors.New("incompatible plugin")
	// ErrDependencyCycle means plugins require each other.
	ErrDependencyCycle = errors.New("plugin dependency cycle")
	// ErrNoActivation means a manifest names neither a shared object nor a
	// provided bundle.
	ErrNoActivation = errors.New("plugin has no library and no bundle")
)

// LoadError reports why a plugin could not be loaded.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading plugin %q: %v", e.Name, e.Err)
}

// Unwrap exposes both ErrPluginLoadFailed and the cause to errors.Is.
func (e *LoadError) Unwrap() []error {
	return []error{ErrPluginLoadFailed, e.Err}
}

func loadError(name string, err error) error {
	return &LoadError{Name: name, Err: err}
}
