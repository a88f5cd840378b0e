package application_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-careers/pkg/application"
	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/schema"
	"github.com/goliatone/go-careers/pkg/submit"
	"github.com/goliatone/go-careers/pkg/testsupport"
	"github.com/goliatone/go-careers/pkg/validation"
)

type countingSubmitter struct {
	calls  atomic.Int32
	result submit.Result
}

func (c *countingSubmitter) Submit(context.Context, schema.RoleForm, form.State) submit.Result {
	c.calls.Add(1)
	return c.result
}

func newSession(t *testing.T, submitter application.Submitter) *application.Session {
	t.Helper()
	role := testsupport.RoleForm()
	engine := form.NewEngine(schema.NewRegistry(role))
	session, err := application.NewSession(engine, role.RoleID, submitter,
		application.WithState(testsupport.FilledState(t, role)))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func TestNewSessionUnknownRole(t *testing.T) {
	engine := form.NewEngine(schema.NewRegistry(testsupport.RoleForm()))
	_, err := application.NewSession(engine, "data-scientist", &countingSubmitter{})
	if !errors.Is(err, schema.ErrRoleNotConfigured) {
		t.Fatalf("expected ErrRoleNotConfigured, got %v", err)
	}
}

func TestSubmitInvalidSkipsSubmitter(t *testing.T) {
	submitter := &countingSubmitter{result: submit.Succeeded()}
	session := newSession(t, submitter)
	if err := session.SetValue("cvFile", nil); err != nil {
		t.Fatalf("clear cv: %v", err)
	}

	outcome, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitter.calls.Load() != 0 {
		t.Fatalf("submitter should not be called on validation errors")
	}
	if !outcome.Invalid() || outcome.Submitted() {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if diff := cmp.Diff(validation.Errors{"cvFile": validation.MsgAttachCV}, session.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	want := application.Status{Kind: application.StatusError, Message: application.MsgFixErrors}
	if diff := cmp.Diff(want, session.Status()); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitSuccessResetsForm(t *testing.T) {
	submitter := &countingSubmitter{result: submit.Succeeded()}
	session := newSession(t, submitter)

	outcome, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submitter.calls.Load() != 1 {
		t.Fatalf("expected one submission, got %d", submitter.calls.Load())
	}
	if !outcome.Submitted() || outcome.Dialog == nil {
		t.Fatalf("expected success dialog, got %+v", outcome)
	}
	wantBody := "Thank you for applying for the Backend Engineer role. Our team will review your application and get back to you if there is a good fit."
	if outcome.Dialog.Body != wantBody {
		t.Fatalf("unexpected dialog body %q", outcome.Dialog.Body)
	}

	role := session.Role()
	if diff := cmp.Diff(form.Initialize(role).Snapshot(), session.Values().Snapshot()); diff != "" {
		t.Fatalf("form not reset (-want +got):\n%s", diff)
	}
	if !session.Errors().Empty() {
		t.Fatalf("expected errors to be cleared")
	}
	if session.Status().Kind != application.StatusSuccess {
		t.Fatalf("expected success status, got %+v", session.Status())
	}
}

func TestSubmitFailureKeepsValues(t *testing.T) {
	submitter := &countingSubmitter{result: submit.Failed("Duplicate application", nil)}
	session := newSession(t, submitter)
	before := session.Values().Snapshot()

	outcome, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Submitted() || outcome.Invalid() {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	want := application.Status{Kind: application.StatusError, Message: "Duplicate application"}
	if diff := cmp.Diff(want, session.Status()); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, session.Values().Snapshot()); diff != "" {
		t.Fatalf("values changed (-before +after):\n%s", diff)
	}
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var calls atomic.Int32
	submitter := application.SubmitterFunc(func(context.Context, schema.RoleForm, form.State) submit.Result {
		calls.Add(1)
		close(entered)
		<-release
		return submit.Succeeded()
	})
	session := newSession(t, submitter)

	done := make(chan error, 1)
	go func() {
		_, err := session.Submit(context.Background())
		done <- err
	}()
	<-entered

	if !session.Submitting() {
		t.Fatalf("expected session to report an in-flight submission")
	}
	if _, err := session.Submit(context.Background()); !errors.Is(err, application.ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one submission, got %d", calls.Load())
	}
	if session.Submitting() {
		t.Fatalf("expected in-flight flag to be cleared")
	}
}

func TestSubmitClearsPreviousStatus(t *testing.T) {
	submitter := &countingSubmitter{result: submit.Succeeded()}
	session := newSession(t, submitter)
	if err := session.SetValue("fullName", form.Text("")); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if _, err := session.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if session.Status().Kind != application.StatusError {
		t.Fatalf("expected error status")
	}

	if err := session.SetValue("fullName", form.Text("Ada")); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if _, err := session.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if session.Status().Kind != application.StatusSuccess || !session.Errors().Empty() {
		t.Fatalf("expected clean success, got %+v %v", session.Status(), session.Errors())
	}
}
