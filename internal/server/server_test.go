package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-careers/components/applications"
	"github.com/goliatone/go-careers/pkg/catalog"
)

func newTestServer(t *testing.T, opts Options, fns ...applications.OptionFn) *Server {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	fns = append([]applications.OptionFn{applications.WithCatalog(applications.StaticCatalog(c))}, fns...)

	srv, err := New(applications.New(fns...), opts)
	require.NoError(t, err)
	return srv
}

func get(h http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerRoutes(t *testing.T) {
	h := newTestServer(t, Options{}).Handler()

	rec := get(h, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(h, "/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/careers", rec.Header().Get("Location"))

	rec = get(h, "/assets/careers.css", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".careers-page")

	rec = get(h, "/careers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Meta Expert")

	rec = get(h, "/careers/php-developer", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/careers/php-developer/apply"`)

	rec = get(h, "/api/roles/meta-expert/form", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"roleId":"meta-expert"`)
}

func TestServerMountsUnderBasePath(t *testing.T) {
	h := newTestServer(t, Options{}, applications.WithBasePath("/jobs")).Handler()

	assert.Equal(t, "/jobs/careers", get(h, "/", nil).Header().Get("Location"))
	assert.Equal(t, http.StatusOK, get(h, "/jobs/careers", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/careers", nil).Code)
}

func TestServerCORS(t *testing.T) {
	h := newTestServer(t, Options{AllowedOrigins: []string{"https://site.example.com"}}).Handler()

	rec := get(h, "/api/roles", map[string]string{"Origin": "https://site.example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://site.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(h, "/api/roles", map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGinPath(t *testing.T) {
	assert.Equal(t, "/jobs/careers/:jobId/apply", ginPath("/jobs/careers/{jobId}/apply"))
	assert.Equal(t, "/api/openapi.json", ginPath("/api/openapi.json"))
}

func TestRunShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t, Options{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewRequiresComponent(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}
