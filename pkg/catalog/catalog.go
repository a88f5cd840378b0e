package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-careers/pkg/schema"
)

// Listing is a job opening shown on the landing page.
type Listing struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	LongDesc    string `json:"longDesc,omitempty" yaml:"longDesc,omitempty"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
	// FormURL links to an externally hosted form for the same role.
	FormURL string `json:"formUrl,omitempty" yaml:"formUrl,omitempty"`
}

// Role pairs a listing with its application form. Form is nil when the role
// has no form configured.
type Role struct {
	Listing Listing
	Form    *schema.RoleForm
}

// Catalog is an immutable, ordered set of roles.
type Catalog struct {
	roles    []Role
	index    map[string]int
	registry *schema.Registry
}

// New builds a catalog from roles in display order. Listing ids must be
// unique and every form must pass schema validation. A form's role id
// defaults to the listing id and must match it when set.
func New(roles ...Role) (*Catalog, error) {
	c := &Catalog{
		roles:    make([]Role, 0, len(roles)),
		index:    make(map[string]int, len(roles)),
		registry: schema.NewRegistry(),
	}
	for _, role := range roles {
		if err := c.add(role); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(role Role) error {
	id := strings.TrimSpace(role.Listing.ID)
	if id == "" {
		return errors.New("catalog: role id is required")
	}
	if _, exists := c.index[id]; exists {
		return fmt.Errorf("catalog: duplicate role %q", id)
	}
	role.Listing.ID = id

	if role.Form != nil {
		form := role.Form.Clone()
		if form.RoleID == "" {
			form.RoleID = id
		}
		if form.RoleID != id {
			return fmt.Errorf("catalog: role %q declares form for %q", id, form.RoleID)
		}
		if err := c.registry.Register(form); err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		role.Form = &form
	}

	c.index[id] = len(c.roles)
	c.roles = append(c.roles, role)
	return nil
}

// Len reports how many listings the catalog holds.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.roles)
}

// Listings returns every listing in declaration order.
func (c *Catalog) Listings() []Listing {
	if c == nil {
		return nil
	}
	out := make([]Listing, len(c.roles))
	for idx, role := range c.roles {
		out[idx] = role.Listing
	}
	return out
}

// Listing returns the listing for id.
func (c *Catalog) Listing(id string) (Listing, bool) {
	role, ok := c.role(id)
	if !ok {
		return Listing{}, false
	}
	return role.Listing, true
}

// Form returns the application form configured for id. Listings without a
// form report false.
func (c *Catalog) Form(id string) (schema.RoleForm, bool) {
	return c.Registry().Lookup(id)
}

// Roles returns copies of every role in declaration order.
func (c *Catalog) Roles() []Role {
	if c == nil {
		return nil
	}
	out := make([]Role, len(c.roles))
	for idx, role := range c.roles {
		out[idx] = cloneRole(role)
	}
	return out
}

// Registry exposes the schema registry holding the roles that have a form.
func (c *Catalog) Registry() *schema.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

func (c *Catalog) role(id string) (Role, bool) {
	if c == nil {
		return Role{}, false
	}
	idx, ok := c.index[id]
	if !ok {
		return Role{}, false
	}
	return cloneRole(c.roles[idx]), true
}

func cloneRole(role Role) Role {
	if role.Form != nil {
		form := role.Form.Clone()
		role.Form = &form
	}
	return role
}
