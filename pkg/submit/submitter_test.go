package submit_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/submit"
	"github.com/goliatone/go-careers/pkg/testsupport"
)

func newSubmitter(endpoint *testsupport.Endpoint) *submit.Submitter {
	return submit.New(
		submit.WithEndpoint(endpoint.URL),
		submit.WithHTTPClient(endpoint.Client()),
	)
}

func TestSubmitOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   submit.Result
	}{
		{name: "success", status: http.StatusOK, body: `{"success":true}`, want: submit.Succeeded()},
		{name: "rejected with message", status: http.StatusOK, body: `{"success":false,"message":"Duplicate"}`, want: submit.Failed("Duplicate", nil)},
		{name: "rejected without message", status: http.StatusOK, body: `{"success":false}`, want: submit.Failed(submit.MsgRejected, nil)},
		{name: "null message", status: http.StatusOK, body: `{"message":null}`, want: submit.Failed(submit.MsgRejected, nil)},
		{name: "empty message kept", status: http.StatusOK, body: `{"message":""}`, want: submit.Failed("", nil)},
		{name: "numeric message", status: http.StatusOK, body: `{"message":42}`, want: submit.Failed("42", nil)},
		{name: "success as string", status: http.StatusOK, body: `{"success":"true"}`, want: submit.Failed(submit.MsgRejected, nil)},
		{name: "not json", status: http.StatusOK, body: `<html>ok</html>`, want: submit.Failed(submit.MsgRejected, nil)},
		{name: "json array", status: http.StatusOK, body: `[1,2]`, want: submit.Failed(submit.MsgRejected, nil)},
		{name: "server error", status: http.StatusInternalServerError, body: `{"success":true}`, want: submit.Failed(submit.MsgUnexpected, nil)},
	}

	role := testsupport.RoleForm()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := testsupport.NewEndpoint(t, tt.status, tt.body)
			got := newSubmitter(endpoint).Submit(context.Background(), role, testsupport.FilledState(t, role))

			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(submit.Result{}, "Err")); diff != "" {
				t.Fatalf("result mismatch (-want +got):\n%s", diff)
			}
			if len(endpoint.Requests()) != 1 {
				t.Fatalf("expected exactly one request, got %d", len(endpoint.Requests()))
			}
		})
	}
}

func TestSubmitSendsMultipartPayload(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK, `{"success":true}`)
	role := testsupport.RoleForm()

	result := newSubmitter(endpoint).Submit(context.Background(), role, testsupport.FilledState(t, role))
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	requests := endpoint.Requests()
	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	req := requests[0]
	if req.Method != http.MethodPost {
		t.Fatalf("expected POST, got %s", req.Method)
	}
	want := []string{"role", "roleId", "cv", "cvFileName", "fullName", "phone", "website", "level", "onSite", "stack"}
	if diff := cmp.Diff(want, req.Names); diff != "" {
		t.Fatalf("parts mismatch (-want +got):\n%s", diff)
	}
	if req.Fields["roleId"] != "backend-engineer" || req.Fields["cvFileName"] != "resume.pdf" {
		t.Fatalf("unexpected fields %v", req.Fields)
	}
}

func TestSubmitServerErrorKeepsCause(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusBadGateway, "")
	role := testsupport.RoleForm()

	result := newSubmitter(endpoint).Submit(context.Background(), role, testsupport.FilledState(t, role))
	if result.Success || result.Message != submit.MsgUnexpected {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Err == nil {
		t.Fatalf("expected the cause to be kept")
	}
}

func TestSubmitNetworkError(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK, `{"success":true}`)
	url := endpoint.URL
	endpoint.Close()

	role := testsupport.RoleForm()
	result := submit.New(submit.WithEndpoint(url)).Submit(context.Background(), role, testsupport.FilledState(t, role))
	if result.Success || result.Message != submit.MsgUnexpected || result.Err == nil {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSubmitFileReadFailureSendsNothing(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK, `{"success":true}`)
	role := testsupport.RoleForm()
	state, err := testsupport.FilledState(t, role).SetValue("cvFile", form.Attach(testsupport.FailingFile("cv.pdf")))
	if err != nil {
		t.Fatalf("set value: %v", err)
	}

	result := newSubmitter(endpoint).Submit(context.Background(), role, state)
	if result.Success || result.Message != submit.MsgUnexpected {
		t.Fatalf("unexpected result %+v", result)
	}
	if n := len(endpoint.Requests()); n != 0 {
		t.Fatalf("expected no request, got %d", n)
	}
}

func TestNewDefaultsToAppsScriptEndpoint(t *testing.T) {
	if got := submit.New().Endpoint(); got != submit.DefaultEndpoint {
		t.Fatalf("expected default endpoint, got %q", got)
	}
	if got := submit.New(submit.WithEndpoint("  ")).Endpoint(); got != submit.DefaultEndpoint {
		t.Fatalf("blank override should be ignored, got %q", got)
	}
}
