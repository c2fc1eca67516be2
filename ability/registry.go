package ability

import (
	"fmt"
	"sort"
	"sync"
)

// KindFactory looks up the factory for a kind name used in ability specs.
// The set of kinds is closed.
func KindFactory(name string) (Factory, error) {
	switch name {
	case "throw":
		return NewThrowKind, nil
	case "place":
		return NewPlaceKind, nil
	case "slam":
		return NewSlamKind, nil
	case "lob":
		return NewLobKind, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Registration binds an ability key to its kind and constants.
type Registration struct {
	Key     string
	Factory Factory
	Params  Params
}

// Registry collects registrations during startup. Build freezes it.
type Registry struct {
	mu      sync.Mutex
	entries map[string]Registration
	frozen  bool

	once    sync.Once
	catalog *Catalog
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Registration)}
}

// Register adds a registration. It fails once the registry is built.
func (r *Registry) Register(reg Registration) error {
	if r == nil {
		return ErrRegistryFrozen
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: register %s", ErrRegistryFrozen, reg.Key)
	}
	if reg.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidParams)
	}
	if reg.Factory == nil {
		return fmt.Errorf("%w: %s: nil factory", ErrInvalidParams, reg.Key)
	}
	if _, dup := r.entries[reg.Key]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, reg.Key)
	}
	if reg.Params.Key == "" {
		reg.Params.Key = reg.Key
	}
	if err := reg.Params.validate(); err != nil {
		return err
	}
	if r.entries == nil {
		r.entries = make(map[string]Registration)
	}
	r.entries[reg.Key] = reg
	return nil
}

// Build freezes the registry and returns its catalog. Every call returns
// the same catalog.
func (r *Registry) Build() *Catalog {
	if r == nil {
		return &Catalog{}
	}
	r.once.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.frozen = true

		c := &Catalog{entries: make(map[string]Registration, len(r.entries))}
		for k, v := range r.entries {
			c.entries[k] = v
			c.keys = append(c.keys, k)
		}
		sort.Strings(c.keys)
		r.catalog = c
	})
	return r.catalog
}

// Catalog is the immutable key to constructor table.
type Catalog struct {
	entries map[string]Registration
	keys    []string
}

// Keys returns the registered keys in sorted order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.keys...)
}

func (c *Catalog) Params(key string) (Params, bool) {
	if c == nil {
		return Params{}, false
	}
	reg, ok := c.entries[key]
	return reg.Params, ok
}

// Preloads returns the content paths an ability acquires on equip.
func (c *Catalog) Preloads(key string) ([]string, error) {
	p, ok := c.Params(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAbility, key)
	}
	return p.Preloads(), nil
}

// New builds an instance of key for owner.
func (c *Catalog) New(key string, owner Owner, world World) (*Instance, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAbility, key)
	}
	reg, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAbility, key)
	}
	if owner == nil {
		return nil, fmt.Errorf("%w: %s: nil owner", ErrInvalidParams, key)
	}
	kind, err := reg.Factory(reg.Params, owner)
	if err != nil {
		return nil, fmt.Errorf("ability: new %s: %w", key, err)
	}
	return NewInstance(reg.Params, kind, owner, world)
}
