package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-careers/pkg/form"
	"github.com/goliatone/go-careers/pkg/testsupport"
	"github.com/goliatone/go-careers/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multi-select scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func openStub(path string) (*form.File, error) {
	if path == "missing.pdf" {
		return nil, errors.New("no such file")
	}
	return form.NewFile(path, testsupport.SamplePDF), nil
}

func TestCollectFillsEveryFieldKind(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"  Ada Lovelace ", "+1 555 0100", "https://ada.dev", "resume.pdf"},
		selectIdx: []int{1, 0},
		multiIdx:  [][]int{{2, 0}},
	}
	collector := NewCollector(WithPromptDriver(driver), WithFileOpener(openStub))

	state, err := collector.Collect(context.Background(), form.Initialize(testsupport.RoleForm()))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := map[string]any{
		"fullName": "Ada Lovelace",
		"phone":    "+1 555 0100",
		"website":  "https://ada.dev",
		"level":    "Senior",
		"onSite":   "Yes",
		"stack":    []string{"Python", "Go"},
		"cvFile":   "resume.pdf",
	}
	if diff := cmp.Diff(want, state.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 0 {
		t.Fatalf("unexpected messages: %v", driver.infoMessages)
	}
}

func TestCollectRepromptsInvalidFields(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"", "Ada", // fullName: empty first
			"555", "https://ada.dev",
			"notes.txt", "missing.pdf", "cv.pdf", // wrong type, unreadable, then valid
		},
		selectIdx: []int{0, 1},
		multiIdx:  [][]int{{}, {1}},
	}
	collector := NewCollector(WithPromptDriver(driver), WithFileOpener(openStub), WithTheme(Theme{ErrorPrefix: "! "}))

	state, err := collector.Collect(context.Background(), form.Initialize(testsupport.RoleForm()))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if errs := validation.Validate(testsupport.RoleForm(), state); !errs.Empty() {
		t.Fatalf("expected valid state, got %v", errs)
	}

	want := []string{
		"! Full Name: " + validation.MsgRequired,
		"! Stack: " + validation.MsgSelectOne,
		"! CV: " + validation.MsgFileTypeInvalid,
		"! no such file",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectOffersSkipForOptionalChoices(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "", "", ""},
		selectIdx: []int{2, 2},
		multiIdx:  [][]int{nil},
	}
	collector := NewCollector(WithPromptDriver(driver), WithFileOpener(openStub))

	state, err := collector.Collect(context.Background(), form.Initialize(testsupport.OptionalRoleForm()))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := driver.selects[0].Options; !cmp.Equal(got, []string{"Junior", "Senior", skipOption}) {
		t.Fatalf("select options = %v", got)
	}
	if state.Text("level") != "" || state.Attachment("cvFile") != nil {
		t.Fatalf("expected skipped fields to stay empty: %v", state.Snapshot())
	}
}

func TestCollectUsesCurrentValuesAsDefaults(t *testing.T) {
	role := testsupport.RoleForm()
	state := testsupport.FilledState(t, role)
	driver := &stubDriver{
		inputs:    []string{"sample fullName", "sample phone", "https://example.com/website", "resume.pdf"},
		selectIdx: []int{0, 0},
		multiIdx:  [][]int{{0}},
	}
	collector := NewCollector(WithPromptDriver(driver), WithFileOpener(openStub))

	if _, err := collector.Collect(context.Background(), state); err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := driver.selects[0].DefaultIndex; got != 0 {
		t.Fatalf("level default index = %d, want 0", got)
	}
}

func TestCollectPropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{}
	collector := NewCollector(WithPromptDriver(driver))

	_, err := collector.Collect(context.Background(), form.Initialize(testsupport.RoleForm()))
	if err == nil {
		t.Fatal("expected driver error")
	}
}

func TestReviewAndConfirm(t *testing.T) {
	role := testsupport.RoleForm()
	state := testsupport.FilledState(t, role)
	driver := &stubDriver{confirm: []bool{true}}
	collector := NewCollector(WithPromptDriver(driver))

	if err := collector.Review(context.Background(), state); err != nil {
		t.Fatalf("review: %v", err)
	}
	ok, err := collector.Confirm(context.Background(), "Submit application?")
	if err != nil || !ok {
		t.Fatalf("confirm = %v, %v", ok, err)
	}

	want := []string{
		"Role: Backend Engineer",
		"Full Name: sample fullName",
		"Phone: sample phone",
		"Website: https://example.com/website",
		"Level: Junior",
		"On-site?: Yes",
		"Stack: Go",
		"CV: resume.pdf",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("review mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateSurveyInterrupt(t *testing.T) {
	if err := translateSurveyErr(errors.New("other")); errors.Is(err, ErrAborted) {
		t.Fatal("unexpected abort translation")
	}
}
