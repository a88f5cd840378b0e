package form

import (
	"fmt"

	"github.com/goliatone/go-careers/pkg/schema"
)

// RoleSource resolves role forms. *schema.Registry satisfies it.
type RoleSource interface {
	Lookup(roleID string) (schema.RoleForm, bool)
}

// Engine creates form states for the roles known to its source. The source
// is injected so tests can run against synthetic schemas.
type Engine struct {
	source RoleSource
}

// NewEngine constructs an Engine over source.
func NewEngine(source RoleSource) *Engine {
	return &Engine{source: source}
}

// Role resolves roleID through the engine's source.
func (e *Engine) Role(roleID string) (schema.RoleForm, error) {
	if e == nil || e.source == nil {
		return schema.RoleForm{}, fmt.Errorf("%w: %q", schema.ErrRoleNotConfigured, roleID)
	}
	role, ok := e.source.Lookup(roleID)
	if !ok {
		return schema.RoleForm{}, fmt.Errorf("%w: %q", schema.ErrRoleNotConfigured, roleID)
	}
	return role, nil
}

// Initialize returns a fresh state for roleID, or ErrRoleNotConfigured.
func (e *Engine) Initialize(roleID string) (State, error) {
	role, err := e.Role(roleID)
	if err != nil {
		return State{}, err
	}
	return Initialize(role), nil
}
