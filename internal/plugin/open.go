package plugin

import (
	"fmt"
	goplugin "plugin"

	"github.com/compkit/compkit/internal/component"
)

// openShared opens a Go plugin shared object and returns its Register
// function. The runtime keeps opened objects for the life of the process.
func openShared(path string) (RegisterFunc, error) {
	p, err := goplugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	sym, err := p.Lookup(RegisterSymbol)
	if err != nil {
		return nil, fmt.Errorf("looking up %s in %s: %w", RegisterSymbol, path, err)
	}

	switch fn := sym.(type) {
	case func(*component.Batch) error:
		return fn, nil
	case *func(*component.Batch) error:
		if *fn == nil {
			return nil, fmt.Errorf("%s in %s is nil", RegisterSymbol, path)
		}
		return *fn, nil
	case *RegisterFunc:
		if *fn == nil {
			return nil, fmt.Errorf("%s in %s is nil", RegisterSymbol, path)
		}
		return *fn, nil
	default:
		return nil, fmt.Errorf("%s in %s has type %T, want func(*component.Batch) error", RegisterSymbol, path, sym)
	}
}
