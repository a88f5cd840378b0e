package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRoleNotConfigured is returned when a role id has no form configured.
// Callers surface it as a "not configured" message, never as a crash.
var ErrRoleNotConfigured = errors.New("schema: role form not configured")

// Option is a single choice offered by select, radio, and checkbox-group
// fields.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// FieldDescriptor declares one input of a role form. Descriptors are
// immutable once registered.
type FieldDescriptor struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"kind" yaml:"kind"`
	Required    bool      `json:"required" yaml:"required"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	// Accept lists lower-cased file extensions (".pdf") for file fields.
	Accept []string `json:"accept,omitempty" yaml:"accept,omitempty"`
}

// Accepts reports whether ext (with or without the leading dot) is listed in
// Accept. Matching is case-insensitive.
func (f FieldDescriptor) Accepts(ext string) bool {
	ext = NormalizeExtension(ext)
	for _, allowed := range f.Accept {
		if NormalizeExtension(allowed) == ext {
			return true
		}
	}
	return false
}

// AcceptAttr renders Accept as the comma separated list used by HTML file
// inputs.
func (f FieldDescriptor) AcceptAttr() string {
	return strings.Join(f.Accept, ",")
}

// HasOption reports whether value is one of the declared option values.
func (f FieldDescriptor) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// RoleForm is the ordered field configuration for one hiring role.
type RoleForm struct {
	RoleID    string            `json:"roleId" yaml:"roleId"`
	RoleLabel string            `json:"roleLabel" yaml:"roleLabel"`
	Fields    []FieldDescriptor `json:"fields" yaml:"fields"`
}

// Field returns the descriptor named name.
func (r RoleForm) Field(name string) (FieldDescriptor, bool) {
	for _, field := range r.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// FileField returns the first file-kind field. Roles carry at most one by
// convention; extra file fields are ignored by the submitter.
func (r RoleForm) FileField() (FieldDescriptor, bool) {
	for _, field := range r.Fields {
		if field.Kind == KindFile {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// Names returns the field names in declaration order.
func (r RoleForm) Names() []string {
	names := make([]string, 0, len(r.Fields))
	for _, field := range r.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Clone returns a deep copy so callers cannot mutate registered forms.
func (r RoleForm) Clone() RoleForm {
	out := RoleForm{
		RoleID:    r.RoleID,
		RoleLabel: r.RoleLabel,
		Fields:    make([]FieldDescriptor, len(r.Fields)),
	}
	for idx, field := range r.Fields {
		cloned := field
		cloned.Options = append([]Option(nil), field.Options...)
		cloned.Accept = append([]string(nil), field.Accept...)
		out.Fields[idx] = cloned
	}
	return out
}

// Validate checks the structural rules of a role form.
func (r RoleForm) Validate() error {
	if strings.TrimSpace(r.RoleID) == "" {
		return errors.New("schema: role id is required")
	}
	if strings.TrimSpace(r.RoleLabel) == "" {
		return fmt.Errorf("schema: role %q: label is required", r.RoleID)
	}
	seen := make(map[string]struct{}, len(r.Fields))
	for idx, field := range r.Fields {
		if err := validateField(field); err != nil {
			return fmt.Errorf("schema: role %q field %d: %w", r.RoleID, idx, err)
		}
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("schema: role %q: duplicate field name %q", r.RoleID, field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}

func validateField(field FieldDescriptor) error {
	if strings.TrimSpace(field.Name) == "" {
		return errors.New("name is required")
	}
	if !field.Kind.Valid() {
		return fmt.Errorf("%s: unknown kind %q", field.Name, field.Kind)
	}
	if field.Kind.HasOptions() && len(field.Options) == 0 {
		return fmt.Errorf("%s: %s fields require options", field.Name, field.Kind)
	}
	if !field.Kind.HasOptions() && len(field.Options) > 0 {
		return fmt.Errorf("%s: %s fields cannot declare options", field.Name, field.Kind)
	}
	if field.Kind != KindFile && len(field.Accept) > 0 {
		return fmt.Errorf("%s: accept is only valid on file fields", field.Name)
	}
	for _, ext := range field.Accept {
		if NormalizeExtension(ext) == "." {
			return fmt.Errorf("%s: empty accepted extension", field.Name)
		}
	}
	return nil
}

// NormalizeExtension lower-cases ext and ensures a single leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	return "." + strings.TrimLeft(ext, ".")
}

// ParseAccept splits an HTML accept attribute (".pdf,.doc") into normalised
// extensions.
func ParseAccept(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, NormalizeExtension(part))
	}
	return out
}
