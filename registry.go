package arbor

import (
	"fmt"
	"sync"
)

var (
	registry   = make(map[string]*Definition)
	registryMu sync.RWMutex
)

// Register makes d available to Lookup and Use under its name.
func Register(d *Definition) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[d.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDefinition, d.name)
	}
	registry[d.name] = d
	return nil
}

// Lookup returns the definition registered under name.
func Lookup(name string) (*Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[name]
	return d, ok
}

// Use returns the definition registered under name, for use with
// MapContext.Nest when the nested definition lives in another package.
func Use(name string) (*Definition, error) {
	if d, ok := Lookup(name); ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDefinition, name)
}

// Reset clears the definition registry.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]*Definition)
}
