package form

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-careers/pkg/schema"
)

// DefaultMaxMemory bounds the in-memory portion of parsed multipart bodies;
// larger uploads spill to temporary files.
const DefaultMaxMemory = 4 << 20

// FromRequest builds a State for role from a submitted form. Multipart and
// urlencoded bodies are both accepted. Checkbox-group values keep the order
// in which the browser submitted them; unknown option values are dropped. A
// missing upload leaves the attachment empty so validation can report it.
func FromRequest(role schema.RoleForm, r *http.Request) (State, error) {
	state := Initialize(role)
	if r == nil {
		return state, errors.New("form: request is nil")
	}
	if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return state, fmt.Errorf("form: parse request: %w", err)
	}

	for _, field := range role.Fields {
		var (
			next State
			err  error
		)
		switch field.Kind {
		case schema.KindText, schema.KindPhone, schema.KindURL, schema.KindSelect, schema.KindRadio:
			next, err = state.SetValue(field.Name, Text(r.FormValue(field.Name)))
		case schema.KindCheckboxGroup:
			next = state
			for _, option := range r.Form[field.Name] {
				if !field.HasOption(option) {
					continue
				}
				next, err = next.ToggleOption(field.Name, option, true)
				if err != nil {
					break
				}
			}
		case schema.KindFile:
			next = state
			if r.MultipartForm == nil {
				break
			}
			headers := r.MultipartForm.File[field.Name]
			if len(headers) == 0 || headers[0].Size == 0 && headers[0].Filename == "" {
				break
			}
			file, ferr := FromFileHeader(headers[0])
			if ferr != nil {
				return state, ferr
			}
			next, err = state.SetValue(field.Name, Attach(file))
		default:
			return state, fmt.Errorf("form: field %q has unsupported kind %q", field.Name, field.Kind)
		}
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
