package descriptor

import (
	"fmt"
	"sync"
)

// Registry holds a pool of loaded Plugin descriptors shared across
// resolution runs. Registration order is preserved: it is the
// declaration-order fallback used when deriving a canonical linearization.
//
// Registry is safe for concurrent use; descriptors themselves are
// immutable and may be read without synchronization.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]*Plugin),
	}
}

// Register adds a plugin descriptor to the pool.
func (r *Registry) Register(p *Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}

	r.plugins[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get returns a plugin descriptor by name.
func (r *Registry) Get(name string) (*Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.plugins[name]
	return p, ok
}

// MustGet returns a plugin descriptor or panics if it is not registered.
func (r *Registry) MustGet(name string) *Plugin {
	p, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("plugin %q not registered", name))
	}
	return p
}

// Names returns all registered plugin names in declaration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.plugins)
}

// DeclarationIndex returns the registration position of a plugin, or -1.
func (r *Registry) DeclarationIndex(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}

// Clear empties the registry. Intended for tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.plugins = make(map[string]*Plugin)
	r.order = nil
}
