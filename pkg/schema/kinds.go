package schema

import (
	"fmt"
	"strings"
)

// FieldKind is the closed set of input kinds a role form can declare.
type FieldKind string

const (
	KindText          FieldKind = "text"
	KindPhone         FieldKind = "tel"
	KindURL           FieldKind = "url"
	KindSelect        FieldKind = "select"
	KindRadio         FieldKind = "radio"
	KindCheckboxGroup FieldKind = "checkbox-group"
	KindFile          FieldKind = "file"
)

// Kinds returns every supported field kind in declaration order.
func Kinds() []FieldKind {
	return []FieldKind{
		KindText,
		KindPhone,
		KindURL,
		KindSelect,
		KindRadio,
		KindCheckboxGroup,
		KindFile,
	}
}

// ParseKind resolves a catalog kind name. "phone" is accepted as an alias of
// "tel".
func ParseKind(raw string) (FieldKind, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "phone" {
		return KindPhone, nil
	}
	kind := FieldKind(name)
	if !kind.Valid() {
		return "", fmt.Errorf("schema: unknown field kind %q", raw)
	}
	return kind, nil
}

// Valid reports whether k is one of the supported kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case KindText, KindPhone, KindURL, KindSelect, KindRadio, KindCheckboxGroup, KindFile:
		return true
	default:
		return false
	}
}

// HasOptions reports whether the kind renders a fixed option list.
func (k FieldKind) HasOptions() bool {
	switch k {
	case KindSelect, KindRadio, KindCheckboxGroup:
		return true
	default:
		return false
	}
}

// StoresText reports whether values of this kind are kept as a single string.
func (k FieldKind) StoresText() bool {
	switch k {
	case KindText, KindPhone, KindURL, KindSelect, KindRadio:
		return true
	default:
		return false
	}
}

// InputType maps the kind onto the HTML input type attribute. Kinds rendered
// with dedicated controls return an empty string.
func (k FieldKind) InputType() string {
	switch k {
	case KindText, KindPhone, KindURL, KindFile:
		return string(k)
	case KindRadio:
		return "radio"
	case KindCheckboxGroup:
		return "checkbox"
	default:
		return ""
	}
}
