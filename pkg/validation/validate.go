package validation

import (
	"sort"

	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/schema"
)

// MaxFileSizeBytes is the largest accepted upload (10 MiB).
const MaxFileSizeBytes int64 = 10 * 1024 * 1024

// Messages surfaced next to invalid fields.
const (
	MsgRequired        = "This field is required."
	MsgSelectOne       = "Please select at least one option."
	MsgAttachCV        = "Please attach your CV."
	MsgFileTooLarge    = "File size must be 10 MB or less."
	MsgFileTypeInvalid = "Only PDF, DOC, or DOCX files are allowed."
)

// AcceptedFilesHint is shown next to CV inputs.
const AcceptedFilesHint = "Accepted file types: PDF, DOC, DOCX. Max size 10 MB."

// Errors maps field names to the message shown for that field. Only invalid
// fields are present.
type Errors map[string]string

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Fields returns the invalid field names sorted.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the message for name, or "".
func (e Errors) Get(name string) string {
	return e[name]
}

// Validate checks every required field of role against state. It is pure:
// the same inputs always produce the same map. Optional fields are never
// checked, whatever they hold.
func Validate(role schema.RoleForm, state form.State) Errors {
	errs := Errors{}
	for _, field := range role.Fields {
		if !field.Required {
			continue
		}
		if msg := check(field, state); msg != "" {
			errs[field.Name] = msg
		}
	}
	return errs
}

// check returns the message for a required field. Unknown kinds hold no
// value and are reported as missing.
func check(field schema.FieldDescriptor, state form.State) string {
	switch field.Kind {
	case schema.KindText, schema.KindPhone, schema.KindURL, schema.KindSelect, schema.KindRadio:
		if form.Text(state.Text(field.Name)).IsEmpty() {
			return MsgRequired
		}
	case schema.KindCheckboxGroup:
		if len(state.Choices(field.Name)) == 0 {
			return MsgSelectOne
		}
	case schema.KindFile:
		return checkFile(field, state.Attachment(field.Name))
	default:
		return MsgRequired
	}
	return ""
}

// checkFile applies the size rule first and the extension rule second; a
// file failing both reports the extension message.
func checkFile(field schema.FieldDescriptor, file *form.File) string {
	if file == nil {
		return MsgAttachCV
	}
	msg := ""
	if file.Size > MaxFileSizeBytes {
		msg = MsgFileTooLarge
	}
	if len(field.Accept) > 0 && !field.Accepts(file.Extension()) {
		msg = MsgFileTypeInvalid
	}
	return msg
}
