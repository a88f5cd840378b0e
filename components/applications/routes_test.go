package applications

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-careers/pkg/catalog"
)

func TestRoutesJoinBasePath(t *testing.T) {
	routes := Routes("jobs/")
	require.Len(t, routes, len(routeTable))
	assert.Equal(t, Route{Method: http.MethodGet, Path: "/jobs/careers"}, routes[0])
	assert.Equal(t, "POST /jobs/careers/{jobId}/apply", routes[2].Pattern())

	for _, route := range Routes("/") {
		assert.NotContains(t, route.Path, "//")
	}
}

func TestRegisterRoutesRegistersHandler(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	mux := http.NewServeMux()
	patterns, err := RegisterRoutes(mux, "/jobs", WithCatalog(StaticCatalog(c)))
	require.NoError(t, err)
	assert.Contains(t, patterns, "GET /jobs/careers")
	assert.Contains(t, patterns, "GET /jobs/api/openapi.json")

	req := httptest.NewRequest(http.MethodGet, "/jobs/careers/php-developer", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/jobs/careers/php-developer/apply"`)
}

func TestRegisterRoutesRequiresMux(t *testing.T) {
	_, err := RegisterRoutes(nil, "/jobs")
	assert.Error(t, err)
}

func TestComponentOptionsDefaults(t *testing.T) {
	comp := New(WithBasePath("careers-site/"))
	opts := comp.Options()
	assert.Equal(t, "/careers-site", opts.BasePath)
	assert.Equal(t, DefaultMaxUploadBytes, opts.MaxUploadBytes)
	assert.Equal(t, "/careers-site/careers", comp.Routes()[0].Path)
}
