// internal/integrations/registry.go
package integrations

import (
	"fmt"
	"sort"
	"sync"
)

type RegistryInterface interface {
	Register(provider TicketProvider) error
	Get(name string) (TicketProvider, error)
	SetActive(name string) error
	GetActive() (TicketProvider, error)
	Names() []string
}

// Registry holds the configured ticket providers; exactly one is active.
type Registry struct {
	providers map[string]TicketProvider
	active    string
	mu        sync.RWMutex
}

func NewRegistry() RegistryInterface {
	return &Registry{
		providers: make(map[string]TicketProvider),
	}
}

func (r *Registry) Register(provider TicketProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := provider.Name()
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("el proveedor de tickets '%s' ya está registrado", name)
	}

	r.providers[name] = provider
	return nil
}

func (r *Registry) Get(name string) (TicketProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("proveedor de tickets '%s' no encontrado", name)
	}
	return provider, nil
}

func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return fmt.Errorf("no se puede activar '%s': proveedor no registrado", name)
	}

	r.active = name
	return nil
}

func (r *Registry) GetActive() (TicketProvider, error) {
	r.mu.RLock()
	activeName := r.active
	r.mu.RUnlock()

	if activeName == "" {
		return nil, fmt.Errorf("no hay proveedor de tickets activo")
	}

	return r.Get(activeName)
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
