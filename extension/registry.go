// registry.go holds the global extension registry. Extensions
// self-register from init(), before main() runs, so registration errors
// are programmer errors and panic, as database/sql.Register does.

package extension

import (
	"slices"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]Extension)
	order    []string // registration order, for stable command listings
)

// Register adds an extension to the registry. It panics when the name is
// already taken.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := registry[name]; exists {
		panic("extension already registered: " + name)
	}
	registry[name] = e
	order = append(order, name)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, 0, len(order))
	for _, name := range order {
		exts = append(exts, registry[name])
	}
	return exts
}

// Get returns a specific extension by name, or nil if not found.
func Get(name string) Extension {
	mu.RLock()
	defer mu.RUnlock()
	return registry[name]
}

// Names returns the names of all registered extensions.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	return slices.Clone(order)
}
