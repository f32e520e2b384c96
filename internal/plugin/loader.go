package plugin

import (
	"context"

	"github.com/compkit/compkit/internal/component"
	"github.com/compkit/compkit/internal/manifest"
)

// Loader is what the component core needs from a plugin system.
type Loader interface {
	SetSearchPaths(paths []string)
	LoadLibrary(ctx context.Context, name string) error
}

// RegisterSymbol is the symbol looked up in a plugin shared object. It must
// be a func(*component.Batch) error or a variable of that type.
const RegisterSymbol = "Register"

// RegisterFunc stages a plugin's component types.
type RegisterFunc func(b *component.Batch) error

// Bundle is a plugin compiled into the binary. Its manifest is used when no
// search path holds one for the same name.
type Bundle struct {
	Manifest *manifest.Manifest
	Register RegisterFunc
}

var _ Loader = (*Manager)(nil)
