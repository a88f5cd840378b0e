package form

import (
	"strings"

	"github.com/goliatone/go-careers/pkg/schema"
)

// Value is the sealed union of field values. Each schema kind maps onto
// exactly one variant:
//
//	text, tel, url, select, radio -> Text
//	checkbox-group                -> Choices
//	file                          -> Attachment
type Value interface {
	// Fits reports whether the variant can be stored for kind.
	Fits(kind schema.FieldKind) bool
	// IsEmpty reports whether the value holds no user input.
	IsEmpty() bool
	sealed()
}

// Text holds the value of text-like, select, and radio fields.
type Text string

func (Text) Fits(kind schema.FieldKind) bool { return kind.StoresText() }
func (t Text) IsEmpty() bool                 { return strings.TrimSpace(string(t)) == "" }
func (Text) sealed()                         {}

// Choices is an insertion-ordered set used by checkbox-group fields.
type Choices []string

func (Choices) Fits(kind schema.FieldKind) bool { return kind == schema.KindCheckboxGroup }
func (c Choices) IsEmpty() bool                 { return len(c) == 0 }
func (Choices) sealed()                         {}

// Contains reports whether option is selected.
func (c Choices) Contains(option string) bool {
	for _, existing := range c {
		if existing == option {
			return true
		}
	}
	return false
}

// With returns a copy that includes option, appended at the end when it was
// not already present.
func (c Choices) With(option string) Choices {
	if c.Contains(option) {
		return c.clone()
	}
	return append(c.clone(), option)
}

// Without returns a copy with option removed.
func (c Choices) Without(option string) Choices {
	out := make(Choices, 0, len(c))
	for _, existing := range c {
		if existing != option {
			out = append(out, existing)
		}
	}
	return out
}

// Join renders the selection as the comma-and-space list sent upstream.
func (c Choices) Join() string {
	return strings.Join(c, ", ")
}

func (c Choices) clone() Choices {
	out := make(Choices, len(c))
	copy(out, c)
	return out
}

// Attachment holds the optional file of a file field.
type Attachment struct {
	File *File
}

func (Attachment) Fits(kind schema.FieldKind) bool { return kind == schema.KindFile }
func (a Attachment) IsEmpty() bool                 { return a.File == nil }
func (Attachment) sealed()                         {}

// Attach wraps file in an Attachment.
func Attach(file *File) Attachment {
	return Attachment{File: file}
}

// EmptyValue returns the initial value for kind, or nil for an unknown kind.
func EmptyValue(kind schema.FieldKind) Value {
	switch kind {
	case schema.KindText, schema.KindPhone, schema.KindURL, schema.KindSelect, schema.KindRadio:
		return Text("")
	case schema.KindCheckboxGroup:
		return Choices{}
	case schema.KindFile:
		return Attachment{}
	default:
		return nil
	}
}
