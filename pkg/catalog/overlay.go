package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"gopkg.in/yaml.v3"
)

// ApplyOverlay patches roles of c with RFC 6902 documents. raw is a JSON or
// YAML object keyed by role id whose values are patch operation lists, for
// example:
//
//	{"php-developer": [{"op": "replace", "path": "/title", "value": "Senior PHP Developer"}]}
//
// Patches address the role as it appears in a catalog file (listing fields
// plus a `form` object). The receiver is left untouched; the returned catalog
// is validated like a freshly loaded one.
func ApplyOverlay(c *Catalog, raw []byte) (*Catalog, error) {
	if c == nil {
		return nil, errors.New("catalog: overlay requires a catalog")
	}
	patches, err := parseOverlay(raw)
	if err != nil {
		return nil, err
	}

	roles := c.Roles()
	ids := make([]string, 0, len(patches))
	for id := range patches {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		idx, ok := c.index[id]
		if !ok {
			return nil, fmt.Errorf("catalog: overlay targets unknown role %q", id)
		}
		patched, err := patchRole(roles[idx], patches[id])
		if err != nil {
			return nil, fmt.Errorf("catalog: overlay %q: %w", id, err)
		}
		roles[idx] = patched
	}

	return New(roles...)
}

func parseOverlay(raw []byte) (map[string][]byte, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse overlay: %w", err)
	}

	out := make(map[string][]byte, len(doc))
	for id, ops := range doc {
		if _, ok := ops.([]any); !ok {
			return nil, fmt.Errorf("catalog: overlay for %q must be a list of patch operations", id)
		}
		encoded, err := sonic.Marshal(ops)
		if err != nil {
			return nil, fmt.Errorf("catalog: encode overlay %q: %w", id, err)
		}
		out[strings.TrimSpace(id)] = encoded
	}
	return out, nil
}

func patchRole(role Role, ops []byte) (Role, error) {
	patch, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return Role{}, fmt.Errorf("decode patch: %w", err)
	}
	original, err := sonic.Marshal(fileFromRole(role))
	if err != nil {
		return Role{}, fmt.Errorf("encode role: %w", err)
	}
	modified, err := patch.Apply(original)
	if err != nil {
		return Role{}, fmt.Errorf("apply patch: %w", err)
	}

	var out roleFile
	if err := sonic.Unmarshal(modified, &out); err != nil {
		return Role{}, fmt.Errorf("decode patched role: %w", err)
	}
	if out.ID != role.Listing.ID {
		return Role{}, errors.New("patch cannot change the role id")
	}
	return out.role()
}
