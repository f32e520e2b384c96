package component

import (
	"fmt"
	"sort"
)

// Batch stages registrations so they reach the registry all together or
// not at all. A Batch is not safe for concurrent use.
type Batch struct {
	reg       *Registry
	pending   map[string]entry
	committed bool
}

// NewBatch starts an empty batch against r.
func (r *Registry) NewBatch() *Batch {
	return &Batch{reg: r, pending: make(map[string]entry)}
}

// Stage runs fn with a fresh batch and commits it when fn succeeds. When fn
// fails the registry is left untouched.
func (r *Registry) Stage(fn func(*Batch) error) error {
	b := r.NewBatch()
	if err := fn(b); err != nil {
		return err
	}
	return b.Commit()
}

// Register stages typeName. Conflicts with the registry or with the batch
// are reported immediately.
func (b *Batch) Register(typeName string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("registering type %q: nil constructor", typeName)
	}
	return b.register(typeName, ctor, funcID(ctor))
}

func (b *Batch) register(typeName string, ctor Constructor, id uintptr) error {
	if b.committed {
		return fmt.Errorf("registering type %q: batch already committed", typeName)
	}
	if typeName == "" {
		return fmt.Errorf("registering type: %w: empty type name", ErrInvalidName)
	}

	if existing, ok := b.pending[typeName]; ok {
		if existing.id == id {
			return nil
		}
		return fmt.Errorf("registering type %q: %w", typeName, ErrConflictingRegistration)
	}

	b.reg.mu.RLock()
	existing, ok := b.reg.entries[typeName]
	b.reg.mu.RUnlock()
	if ok {
		if existing.id == id {
			return nil
		}
		return fmt.Errorf("registering type %q: %w", typeName, ErrConflictingRegistration)
	}

	b.pending[typeName] = entry{ctor: ctor, id: id}
	return nil
}

// TypeNames returns the staged type names, sorted.
func (b *Batch) TypeNames() []string {
	names := make([]string, 0, len(b.pending))
	for name := range b.pending {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of staged types.
func (b *Batch) Len() int { return len(b.pending) }

// Commit applies the staged registrations. If any of them now conflicts
// with the registry nothing is applied.
func (b *Batch) Commit() error {
	if b.committed {
		return fmt.Errorf("committing batch: already committed")
	}

	r := b.reg
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, e := range b.pending {
		if existing, ok := r.entries[name]; ok && existing.id != e.id {
			return fmt.Errorf("committing type %q: %w", name, ErrConflictingRegistration)
		}
	}
	for name, e := range b.pending {
		if _, ok := r.entries[name]; !ok {
			r.entries[name] = e
		}
	}
	b.committed = true
	r.logger.Debug("committed component types", "count", len(b.pending))
	return nil
}
