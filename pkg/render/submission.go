package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// SubmissionTokenField names the hidden input used to recognise duplicate
// posts of the same form.
const SubmissionTokenField = "submissionToken"

// HiddenField is a hidden input emitted alongside the role's fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// SubmissionToken returns the hidden token field. A blank token gets a fresh
// random one.
func SubmissionToken(token string) HiddenField {
	if strings.TrimSpace(token) == "" {
		token = NewSubmissionToken()
	}
	return Hidden(SubmissionTokenField, token)
}

// NewSubmissionToken returns a random token.
func NewSubmissionToken() string {
	return uuid.NewString()
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if field.Name = strings.TrimSpace(field.Name); field.Name != "" {
			out[field.Name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns fields sorted by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: strings.TrimSpace(name), Value: fields[name]})
	}
	return result
}
