package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-careers/internal/config"
	"github.com/goliatone/go-careers/pkg/application"
	"github.com/goliatone/go-careers/pkg/renderers/tui"
	"github.com/goliatone/go-careers/pkg/schema"
	"github.com/goliatone/go-careers/pkg/testsupport"
)

const writerCatalog = `
roles:
  - id: writer
    title: Writer
    description: Words for the blog.
    form:
      roleLabel: Technical Writer
      fields:
        - { name: fullName, label: Full Name, kind: text, required: true }
        - name: level
          label: Level
          kind: select
          required: true
          options:
            - { label: Junior, value: Junior }
            - { label: Senior, value: Senior }
  - id: editor
    title: Editor
    description: Edits words.
    formUrl: https://forms.example.com/editor
`

type scriptedDriver struct {
	inputs  []string
	selects []int
	confirm bool
	info    []string
}

func (d *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return d.confirm, nil
}

func (d *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return -1, errors.New("no select scripted")
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	return next, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	return nil, errors.New("no multi-select scripted")
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.info = append(d.info, msg)
	return nil
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roles.yaml"), []byte(content), 0o644))
	return dir
}

func execute(t *testing.T, a *app, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvCatalogDir, writeCatalog(t, writerCatalog))
	t.Setenv(config.EnvLogFormat, "console")

	var out, errOut bytes.Buffer
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRolesCommand(t *testing.T) {
	out, _, err := execute(t, &app{}, "roles")
	require.NoError(t, err)
	assert.Regexp(t, `writer\s+Writer\s+configured`, out)
	assert.Regexp(t, `editor\s+Editor\s+external`, out)
}

func TestRolesCommandJSON(t *testing.T) {
	out, _, err := execute(t, &app{}, "roles", "--json")
	require.NoError(t, err)

	var got []roleRow
	require.NoError(t, sonic.UnmarshalString(out, &got))
	want := []roleRow{
		{ID: "writer", Title: "Writer", Form: true},
		{ID: "editor", Title: "Editor", FormURL: "https://forms.example.com/editor"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("roles mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAPICommand(t *testing.T) {
	out, _, err := execute(t, &app{}, "openapi", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "openapi: 3.0.3")
	assert.Contains(t, out, "/api/roles/writer/applications")
	assert.NotContains(t, out, "/api/roles/editor/applications")

	_, _, err = execute(t, &app{}, "openapi", "--format", "xml")
	assert.Error(t, err)
}

func TestApplyCommandSubmits(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK, `{"success":true}`)
	t.Setenv(config.EnvScriptURL, endpoint.URL)

	driver := &scriptedDriver{inputs: []string{"Ada Lovelace"}, selects: []int{1}, confirm: true}
	_, _, err := execute(t, &app{driver: driver}, "apply", "writer")
	require.NoError(t, err)

	requests := endpoint.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "Ada Lovelace", requests[0].Fields["fullName"])
	assert.Equal(t, "Senior", requests[0].Fields["level"])

	assert.Contains(t, driver.info, "Role: Technical Writer")
	assert.Contains(t, driver.info, "Level: Senior")
	assert.Contains(t, driver.info, application.SuccessTitle)
}

func TestApplyCommandDeclined(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK, `{"success":true}`)
	t.Setenv(config.EnvScriptURL, endpoint.URL)

	driver := &scriptedDriver{inputs: []string{"Ada"}, selects: []int{0}, confirm: false}
	_, _, err := execute(t, &app{driver: driver}, "apply", "writer")
	require.NoError(t, err)
	assert.Empty(t, endpoint.Requests())
	assert.Contains(t, driver.info, "Application not submitted.")
}

func TestApplyCommandRejected(t *testing.T) {
	endpoint := testsupport.NewEndpoint(t, http.StatusOK, `{"success":false,"message":"Position closed"}`)
	t.Setenv(config.EnvScriptURL, endpoint.URL)

	driver := &scriptedDriver{inputs: []string{"Ada"}, selects: []int{0}, confirm: true}
	_, _, err := execute(t, &app{driver: driver}, "apply", "writer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Position closed")
}

func TestApplyCommandUnknownRoles(t *testing.T) {
	_, _, err := execute(t, &app{driver: &scriptedDriver{}}, "apply", "editor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "https://forms.example.com/editor")

	_, _, err = execute(t, &app{driver: &scriptedDriver{}}, "apply", "ghost")
	assert.ErrorIs(t, err, schema.ErrRoleNotConfigured)
}

func TestLintCommand(t *testing.T) {
	out, _, err := execute(t, &app{}, "lint", writeCatalog(t, writerCatalog))
	require.NoError(t, err)
	assert.Contains(t, out, "catalog ok")

	out, _, err = execute(t, &app{}, "lint")
	require.NoError(t, err)
	assert.Contains(t, out, "catalog ok")

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("roles:\n  - id: ghost\n    title: Ghost\n"), 0o644))
	_, errOut, err := execute(t, &app{}, "lint", broken)
	require.Error(t, err)
	assert.Contains(t, errOut, broken+": roles > ghost -> role has neither a form nor a formUrl")

	_, errOut, err = execute(t, &app{}, "lint", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, errOut, "missing.yaml: file ->")
}

func TestRenderersCommand(t *testing.T) {
	out, _, err := execute(t, &app{}, "renderers")
	require.NoError(t, err)
	assert.Regexp(t, `NAME\s+CONTENT TYPE\s+DEFAULT`, out)
	assert.Regexp(t, `vanilla\s+text/html; charset=utf-8\s+yes`, out)
}

func TestServeRejectsUnknownRenderer(t *testing.T) {
	_, _, err := execute(t, &app{}, "serve", "--renderer", "react")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `renderer "react" not registered (available: vanilla)`)
}
