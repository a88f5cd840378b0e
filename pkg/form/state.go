package form

import (
	"fmt"

	"github.com/goliatone/go-careers/pkg/schema"
)

// State holds the values of one active role form. It behaves as a value:
// every update returns a new State and leaves the receiver untouched. The
// key set always equals the role's field names.
type State struct {
	role   schema.RoleForm
	values map[string]Value
}

// Initialize seeds a fresh State for role: checkbox-groups start empty, file
// fields start without an attachment, everything else is the empty string.
// It never merges with a previous state.
func Initialize(role schema.RoleForm) State {
	values := make(map[string]Value, len(role.Fields))
	for _, field := range role.Fields {
		values[field.Name] = EmptyValue(field.Kind)
	}
	return State{role: role, values: values}
}

// Role returns the role form the state is scoped to.
func (s State) Role() schema.RoleForm {
	return s.role
}

// Names returns the field names in schema order.
func (s State) Names() []string {
	return s.role.Names()
}

// Len reports how many fields the state tracks.
func (s State) Len() int {
	return len(s.values)
}

// Value returns the value stored for name.
func (s State) Value(name string) (Value, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Text returns the string value of a text-like field, or "" when the field
// is unknown or holds another variant.
func (s State) Text(name string) string {
	if text, ok := s.values[name].(Text); ok {
		return string(text)
	}
	return ""
}

// Choices returns a copy of a checkbox-group selection.
func (s State) Choices(name string) Choices {
	if choices, ok := s.values[name].(Choices); ok {
		return choices.clone()
	}
	return Choices{}
}

// Attachment returns the file of a file field, or nil.
func (s State) Attachment(name string) *File {
	if attachment, ok := s.values[name].(Attachment); ok {
		return attachment.File
	}
	return nil
}

// SetValue replaces the value of one field. It performs no validation beyond
// checking that the field exists and the variant fits its kind.
func (s State) SetValue(name string, value Value) (State, error) {
	field, ok := s.role.Field(name)
	if !ok {
		return s, fmt.Errorf("form: role %q has no field %q", s.role.RoleID, name)
	}
	if value == nil {
		value = EmptyValue(field.Kind)
	}
	if value == nil {
		return s, fmt.Errorf("form: field %q has unsupported kind %q", name, field.Kind)
	}
	if !value.Fits(field.Kind) {
		return s, fmt.Errorf("form: field %q (%s) cannot hold %T", name, field.Kind, value)
	}
	if choices, ok := value.(Choices); ok {
		value = choices.clone()
	}

	next := s.clone()
	next.values[name] = value
	return next, nil
}

// ToggleOption adds or removes optionValue from a checkbox-group. Adding an
// option that is already selected is a no-op; re-adding a removed option
// appends it at the end.
func (s State) ToggleOption(name, optionValue string, included bool) (State, error) {
	field, ok := s.role.Field(name)
	if !ok {
		return s, fmt.Errorf("form: role %q has no field %q", s.role.RoleID, name)
	}
	if field.Kind != schema.KindCheckboxGroup {
		return s, fmt.Errorf("form: field %q is %s, not checkbox-group", name, field.Kind)
	}

	current := s.Choices(name)
	next := s.clone()
	if included {
		next.values[name] = current.With(optionValue)
	} else {
		next.values[name] = current.Without(optionValue)
	}
	return next, nil
}

// Reset returns the initial state for the same role.
func (s State) Reset() State {
	return Initialize(s.role)
}

// Snapshot returns the values as plain Go types keyed by field name:
// string, []string, or the attachment file name.
func (s State) Snapshot() map[string]any {
	out := make(map[string]any, len(s.values))
	for name, value := range s.values {
		switch typed := value.(type) {
		case Text:
			out[name] = string(typed)
		case Choices:
			out[name] = []string(typed.clone())
		case Attachment:
			if typed.File != nil {
				out[name] = typed.File.Name
			} else {
				out[name] = ""
			}
		}
	}
	return out
}

func (s State) clone() State {
	values := make(map[string]Value, len(s.values))
	for name, value := range s.values {
		values[name] = value
	}
	return State{role: s.role, values: values}
}
