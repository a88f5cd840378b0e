package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Registry maps names to page renderers. The first renderer registered is
// the default, returned for a blank name. The HTTP component resolves its
// page renderer here and `careers renderers` lists the entries.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	order     []string
}

// NewRegistry registers renderers in order; the first becomes the default.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if err := r.Register(renderer); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds renderer under its Name(). Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if r == nil {
		return errors.New("render: registry is nil")
	}
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.renderers == nil {
		r.renderers = make(map[string]Renderer)
	}
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	r.order = append(r.order, name)
	return nil
}

// Get returns the renderer called name, or the default when name is blank.
func (r *Registry) Get(name string) (Renderer, error) {
	if r == nil {
		return nil, errors.New("render: registry is nil")
	}
	name = strings.TrimSpace(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		if len(r.order) == 0 {
			return nil, errors.New("render: no renderers registered")
		}
		name = r.order[0]
	}
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not registered (available: %s)", name, strings.Join(r.order, ", "))
	}
	return renderer, nil
}

// Names lists the registered renderers in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
