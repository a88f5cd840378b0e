package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-careers/pkg/schema"
)

//go:embed data/*.yaml
var defaultFS embed.FS

// DefaultFS exposes the embedded catalog files.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaultFS, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default loads the catalog shipped with the binary. Each call returns a new
// catalog.
func Default() (*Catalog, error) {
	return LoadFS(DefaultFS())
}

// LoadFS walks fsys in lexical order and parses every JSON/YAML catalog file.
// Roles keep the order of their files and of their position within a file.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	if fsys == nil {
		return New()
	}

	var roles []Role
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		parsed, err := parseRoles(data, path)
		if err != nil {
			return err
		}
		roles = append(roles, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return New(roles...)
}

// Parse builds a catalog from a single catalog document. source names the
// document in errors and selects JSON decoding when it ends in ".json".
func Parse(data []byte, source string) (*Catalog, error) {
	roles, err := parseRoles(data, source)
	if err != nil {
		return nil, err
	}
	return New(roles...)
}

func parseRoles(data []byte, source string) ([]Role, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	roles := make([]Role, 0, len(doc.Roles))
	for idx, raw := range doc.Roles {
		role, err := raw.role()
		if err != nil {
			return nil, fmt.Errorf("catalog: %s role %d: %w", source, idx, err)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

type documentFile struct {
	Roles []roleFile `json:"roles" yaml:"roles"`
}

type roleFile struct {
	Listing `yaml:",inline"`
	Form    *formFile `json:"form,omitempty" yaml:"form,omitempty"`
}

type formFile struct {
	RoleID    string                   `json:"roleId,omitempty" yaml:"roleId,omitempty"`
	RoleLabel string                   `json:"roleLabel" yaml:"roleLabel"`
	Fields    []schema.FieldDescriptor `json:"fields" yaml:"fields"`
}

func (r roleFile) role() (Role, error) {
	role := Role{Listing: r.Listing}
	if r.Form == nil {
		return role, nil
	}

	form := schema.RoleForm{
		RoleID:    r.Form.RoleID,
		RoleLabel: r.Form.RoleLabel,
		Fields:    make([]schema.FieldDescriptor, len(r.Form.Fields)),
	}
	for idx, field := range r.Form.Fields {
		kind, err := schema.ParseKind(string(field.Kind))
		if err != nil {
			return Role{}, fmt.Errorf("field %q: %w", field.Name, err)
		}
		field.Kind = kind
		field.Options = append([]schema.Option(nil), field.Options...)
		if len(field.Accept) > 0 {
			accept := make([]string, len(field.Accept))
			for i, ext := range field.Accept {
				accept[i] = schema.NormalizeExtension(ext)
			}
			field.Accept = accept
		}
		form.Fields[idx] = field
	}
	role.Form = &form
	return role, nil
}

func fileFromRole(role Role) roleFile {
	out := roleFile{Listing: role.Listing}
	if role.Form != nil {
		form := role.Form.Clone()
		out.Form = &formFile{
			RoleID:    form.RoleID,
			RoleLabel: form.RoleLabel,
			Fields:    form.Fields,
		}
	}
	return out
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}

	if strings.EqualFold(filepath.Ext(source), ".json") {
		if err := sonic.Unmarshal(data, &doc); err != nil {
			return documentFile{}, fmt.Errorf("catalog: parse %s: %w", source, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("catalog: parse %s: %w", source, err)
	}
	return doc, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
