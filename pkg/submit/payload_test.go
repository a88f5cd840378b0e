package submit_test

import (
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-careers/pkg/catalog"
	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/schema"
	"github.com/goliatone/go-careers/pkg/submit"
	"github.com/goliatone/go-careers/pkg/testsupport"
)

func TestBuildPayloadOrdersParts(t *testing.T) {
	role := testsupport.RoleForm()
	state := testsupport.FilledState(t, role)
	state, _ = state.ToggleOption("stack", "Python", true)

	payload, err := submit.BuildPayload(role, state)
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}

	want := []string{"role", "roleId", "cv", "cvFileName", "fullName", "phone", "website", "level", "onSite", "stack"}
	if diff := cmp.Diff(want, payload.Names()); diff != "" {
		t.Fatalf("part order mismatch (-want +got):\n%s", diff)
	}

	expect := map[string]string{
		"role":       "Backend Engineer",
		"roleId":     "backend-engineer",
		"cv":         base64.StdEncoding.EncodeToString(testsupport.SamplePDF),
		"cvFileName": "resume.pdf",
		"stack":      "Go, Python",
		"level":      "Junior",
	}
	for name, value := range expect {
		got, ok := payload.Get(name)
		if !ok {
			t.Fatalf("missing part %s", name)
		}
		if got != value {
			t.Fatalf("%s: expected %q, got %q", name, value, got)
		}
	}
}

func TestBuildPayloadWithoutAttachment(t *testing.T) {
	role := testsupport.OptionalRoleForm()
	payload, err := submit.BuildPayload(role, form.Initialize(role))
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}

	if _, ok := payload.Get("cv"); ok {
		t.Fatalf("cv part should be omitted without a file")
	}
	if _, ok := payload.Get("cvFileName"); ok {
		t.Fatalf("cvFileName part should be omitted without a file")
	}
	stack, ok := payload.Get("stack")
	if !ok || stack != "" {
		t.Fatalf("expected empty stack part, got %q (%v)", stack, ok)
	}
}

func TestBuildPayloadMetaExpert(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	role := cat.Registry().MustLookup("meta-expert")
	state := testsupport.FilledState(t, role)

	payload, err := submit.BuildPayload(role, state)
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}
	checks := map[string]string{
		"role":       "Expert Meta Marketer",
		"roleId":     "meta-expert",
		"cvFileName": "resume.pdf",
	}
	for name, want := range checks {
		if got, _ := payload.Get(name); got != want {
			t.Fatalf("%s: expected %q, got %q", name, want, got)
		}
	}
	if _, ok := payload.Get("cvFile"); ok {
		t.Fatalf("file fields must not be sent as their own part")
	}

	cv, ok := payload.Get("cv")
	if !ok {
		t.Fatalf("expected cv part")
	}
	if want := base64.StdEncoding.EncodeToString(testsupport.SamplePDF); cv != want {
		t.Fatalf("cv: expected base64 of the attachment %q, got %q", want, cv)
	}
	decoded, err := base64.StdEncoding.DecodeString(cv)
	if err != nil {
		t.Fatalf("decode cv: %v", err)
	}
	if diff := cmp.Diff(testsupport.SamplePDF, decoded); diff != "" {
		t.Fatalf("cv bytes mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPayloadRejectsUnknownKind(t *testing.T) {
	role := schema.RoleForm{
		RoleID:    "writer",
		RoleLabel: "Writer",
		Fields:    []schema.FieldDescriptor{{Name: "color", Label: "Color", Kind: schema.FieldKind("color")}},
	}
	if _, err := submit.BuildPayload(role, form.Initialize(role)); err == nil {
		t.Fatalf("expected unsupported kind error")
	}
}

func TestBuildPayloadFileReadFailure(t *testing.T) {
	role := testsupport.RoleForm()
	state, err := testsupport.FilledState(t, role).SetValue("cvFile", form.Attach(testsupport.FailingFile("cv.pdf")))
	if err != nil {
		t.Fatalf("set value: %v", err)
	}
	if _, err := submit.BuildPayload(role, state); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestPayloadWriteToProducesMultipart(t *testing.T) {
	role := testsupport.RoleForm()
	payload, err := submit.BuildPayload(role, testsupport.FilledState(t, role))
	if err != nil {
		t.Fatalf("build payload: %v", err)
	}
	body, err := payload.Reader()
	if err != nil {
		t.Fatalf("reader: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(payload.ContentType())
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("unexpected content type %q (%v)", payload.ContentType(), err)
	}
	reader := multipart.NewReader(body, params["boundary"])

	var names []string
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		names = append(names, part.FormName())
	}
	if diff := cmp.Diff(payload.Names(), names); diff != "" {
		t.Fatalf("encoded parts mismatch (-want +got):\n%s", diff)
	}
}
