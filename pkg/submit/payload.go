package submit

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/schema"
)

// Part names added ahead of the role's own fields.
const (
	PartRole       = "role"
	PartRoleID     = "roleId"
	PartCV         = "cv"
	PartCVFileName = "cvFileName"
)

// Part is one named text part of the multipart body.
type Part struct {
	Name  string
	Value string
}

// Payload is the ordered set of parts sent to the endpoint.
type Payload struct {
	parts    []Part
	boundary string
}

// BuildPayload assembles the parts for role from state: role label, role id,
// the base64 CV and its file name when the first file field holds a file,
// then every non-file field in schema order. Checkbox-groups are joined with
// ", ". Reading the CV can fail; nothing is sent in that case.
func BuildPayload(role schema.RoleForm, state form.State) (*Payload, error) {
	payload := &Payload{boundary: multipart.NewWriter(io.Discard).Boundary()}
	payload.add(PartRole, role.RoleLabel)
	payload.add(PartRoleID, role.RoleID)

	if field, ok := role.FileField(); ok {
		if file := state.Attachment(field.Name); file != nil {
			encoded, err := encodeFile(file)
			if err != nil {
				return nil, err
			}
			payload.add(PartCV, encoded)
			payload.add(PartCVFileName, file.Name)
		}
	}

	for _, field := range role.Fields {
		switch field.Kind {
		case schema.KindFile:
			continue
		case schema.KindCheckboxGroup:
			payload.add(field.Name, state.Choices(field.Name).Join())
		case schema.KindText, schema.KindPhone, schema.KindURL, schema.KindSelect, schema.KindRadio:
			payload.add(field.Name, state.Text(field.Name))
		default:
			return nil, fmt.Errorf("submit: field %q has unsupported kind %q", field.Name, field.Kind)
		}
	}
	return payload, nil
}

func encodeFile(file *form.File) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("submit: open %s: %w", file.Name, err)
	}
	defer src.Close()

	var out strings.Builder
	out.Grow(base64.StdEncoding.EncodedLen(int(file.Size)))
	enc := base64.NewEncoder(base64.StdEncoding, &out)
	if _, err := io.Copy(enc, src); err != nil {
		return "", fmt.Errorf("submit: read %s: %w", file.Name, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("submit: encode %s: %w", file.Name, err)
	}
	return out.String(), nil
}

func (p *Payload) add(name, value string) {
	p.parts = append(p.parts, Part{Name: name, Value: value})
}

// Get returns the value of the first part called name.
func (p *Payload) Get(name string) (string, bool) {
	for _, part := range p.parts {
		if part.Name == name {
			return part.Value, true
		}
	}
	return "", false
}

// Names returns the part names in send order.
func (p *Payload) Names() []string {
	names := make([]string, len(p.parts))
	for idx, part := range p.parts {
		names[idx] = part.Name
	}
	return names
}

// Parts returns a copy of the parts in send order.
func (p *Payload) Parts() []Part {
	return append([]Part(nil), p.parts...)
}

// ContentType returns the multipart/form-data header value matching the
// body written by WriteTo.
func (p *Payload) ContentType() string {
	return "multipart/form-data; boundary=" + p.boundary
}

// WriteTo writes the multipart body to w.
func (p *Payload) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	mw := multipart.NewWriter(counter)
	if err := mw.SetBoundary(p.boundary); err != nil {
		return counter.n, fmt.Errorf("submit: boundary: %w", err)
	}
	for _, part := range p.parts {
		if err := mw.WriteField(part.Name, part.Value); err != nil {
			return counter.n, fmt.Errorf("submit: write %s: %w", part.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return counter.n, fmt.Errorf("submit: close body: %w", err)
	}
	return counter.n, nil
}

// Reader returns the encoded body.
func (p *Payload) Reader() (io.Reader, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
