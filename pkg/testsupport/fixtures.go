package testsupport

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/schema"
)

// SamplePDF is a tiny document whose magic bytes sniff as application/pdf.
var SamplePDF = []byte("%PDF-1.4\n1 0 obj<<>>endobj\ntrailer<<>>\n%%EOF\n")

// RoleForm returns a compact role covering every field kind. All fields are
// required and the file field accepts PDF, DOC, and DOCX.
func RoleForm() schema.RoleForm {
	return schema.RoleForm{
		RoleID:    "backend-engineer",
		RoleLabel: "Backend Engineer",
		Fields: []schema.FieldDescriptor{
			{Name: "fullName", Label: "Full Name", Kind: schema.KindText, Required: true, Placeholder: "Enter your full name"},
			{Name: "phone", Label: "Phone", Kind: schema.KindPhone, Required: true},
			{Name: "website", Label: "Website", Kind: schema.KindURL, Required: true},
			{Name: "level", Label: "Level", Kind: schema.KindSelect, Required: true, Options: options("Junior", "Senior")},
			{Name: "onSite", Label: "On-site?", Kind: schema.KindRadio, Required: true, Options: options("Yes", "No")},
			{Name: "stack", Label: "Stack", Kind: schema.KindCheckboxGroup, Required: true, Options: options("Go", "Rust", "Python")},
			{Name: "cvFile", Label: "CV", Kind: schema.KindFile, Required: true, Accept: []string{".pdf", ".doc", ".docx"}},
		},
	}
}

// OptionalRoleForm mirrors RoleForm with every field optional.
func OptionalRoleForm() schema.RoleForm {
	role := RoleForm()
	role.RoleID = "backend-engineer-optional"
	for i := range role.Fields {
		role.Fields[i].Required = false
	}
	return role
}

func options(values ...string) []schema.Option {
	out := make([]schema.Option, 0, len(values))
	for _, value := range values {
		out = append(out, schema.Option{Label: value, Value: value})
	}
	return out
}

// FilledState returns a state for role where every field holds a valid
// value: sample text, the first option of choice fields, and SamplePDF as
// resume.pdf for file fields.
func FilledState(t testing.TB, role schema.RoleForm) form.State {
	t.Helper()

	state := form.Initialize(role)
	var err error
	for _, field := range role.Fields {
		switch field.Kind {
		case schema.KindSelect, schema.KindRadio:
			state, err = state.SetValue(field.Name, form.Text(field.Options[0].Value))
		case schema.KindCheckboxGroup:
			state, err = state.ToggleOption(field.Name, field.Options[0].Value, true)
		case schema.KindFile:
			state, err = state.SetValue(field.Name, form.Attach(form.NewFile("resume.pdf", SamplePDF)))
		case schema.KindURL:
			state, err = state.SetValue(field.Name, form.Text("https://example.com/"+field.Name))
		case schema.KindText, schema.KindPhone:
			state, err = state.SetValue(field.Name, form.Text("sample "+field.Name))
		default:
			t.Fatalf("fill %s: unsupported kind %q", field.Name, field.Kind)
		}
		if err != nil {
			t.Fatalf("fill %s: %v", field.Name, err)
		}
	}
	return state
}

// FailingFile returns a file whose reader always fails to open.
func FailingFile(name string) *form.File {
	return form.NewFileFunc(name, 128, "application/pdf", func() (io.ReadCloser, error) {
		return nil, errors.New("testsupport: file unavailable")
	})
}

// RecordedRequest is a request captured by Endpoint with its multipart parts
// flattened in the order they were sent.
type RecordedRequest struct {
	Method      string
	ContentType string
	Names       []string
	Fields      map[string]string
}

// Endpoint is a fake form-processing endpoint that records every request and
// replies with a configurable status and body.
type Endpoint struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests []RecordedRequest
	hook     func()
}

// NewEndpoint starts an Endpoint replying with status and body. The server
// is closed when the test ends.
func NewEndpoint(t testing.TB, status int, body string) *Endpoint {
	t.Helper()

	endpoint := &Endpoint{status: status, body: body}
	endpoint.Server = httptest.NewServer(http.HandlerFunc(endpoint.serve))
	t.Cleanup(endpoint.Close)
	return endpoint
}

// Respond changes the reply for subsequent requests.
func (e *Endpoint) Respond(status int, body string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = status
	e.body = body
}

// OnRequest installs a hook run before each reply, outside the lock. Tests
// use it to hold requests open.
func (e *Endpoint) OnRequest(hook func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hook = hook
}

// Requests returns the captured requests.
func (e *Endpoint) Requests() []RecordedRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]RecordedRequest, len(e.requests))
	copy(out, e.requests)
	return out
}

func (e *Endpoint) serve(w http.ResponseWriter, r *http.Request) {
	recorded := RecordedRequest{
		Method:      r.Method,
		ContentType: r.Header.Get("Content-Type"),
		Fields:      map[string]string{},
	}
	if mediaType, params, err := mime.ParseMediaType(recorded.ContentType); err == nil && strings.HasPrefix(mediaType, "multipart/") {
		reader := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := reader.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(part)
			recorded.Names = append(recorded.Names, part.FormName())
			recorded.Fields[part.FormName()] = string(data)
		}
	}

	e.mu.Lock()
	e.requests = append(e.requests, recorded)
	status, body, hook := e.status, e.body, e.hook
	e.mu.Unlock()

	if hook != nil {
		hook()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
