package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores role forms by id. It is constructed explicitly and passed
// to the components that need it; there is no package-level table.
type Registry struct {
	mu    sync.RWMutex
	forms map[string]RoleForm
}

// NewRegistry creates a registry seeded with forms. It panics when a form is
// invalid or duplicated, which keeps static wiring honest; use Register for
// data loaded at runtime.
func NewRegistry(forms ...RoleForm) *Registry {
	r := &Registry{forms: make(map[string]RoleForm, len(forms))}
	for _, form := range forms {
		r.MustRegister(form)
	}
	return r
}

// Register validates and adds a role form. Duplicate ids return an error.
func (r *Registry) Register(form RoleForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.forms == nil {
		r.forms = make(map[string]RoleForm)
	}
	if _, exists := r.forms[form.RoleID]; exists {
		return fmt.Errorf("schema: role %q already registered", form.RoleID)
	}
	r.forms[form.RoleID] = form.Clone()
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(form RoleForm) {
	if err := r.Register(form); err != nil {
		panic(err)
	}
}

// Lookup returns the form registered for roleID. Unknown ids report false.
func (r *Registry) Lookup(roleID string) (RoleForm, bool) {
	if r == nil {
		return RoleForm{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	form, ok := r.forms[roleID]
	if !ok {
		return RoleForm{}, false
	}
	return form.Clone(), true
}

// MustLookup panics when roleID is not registered. It is meant for static
// wiring and tests.
func (r *Registry) MustLookup(roleID string) RoleForm {
	form, err := r.Get(roleID)
	if err != nil {
		panic(err)
	}
	return form
}

// Get is Lookup with an error, for call sites that propagate failures.
func (r *Registry) Get(roleID string) (RoleForm, error) {
	form, ok := r.Lookup(roleID)
	if !ok {
		return RoleForm{}, fmt.Errorf("%w: %q", ErrRoleNotConfigured, roleID)
	}
	return form, nil
}

// List returns the registered role ids, sorted.
func (r *Registry) List() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.forms))
	for id := range r.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether roleID is registered.
func (r *Registry) Has(roleID string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.forms[roleID]
	return ok
}

// Len reports how many forms are registered.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.forms)
}
