package applications

import (
	"errors"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Route is one method and path served by the component. Path uses
// net/http wildcard syntax, e.g. "/careers/{jobId}".
type Route struct {
	Method string
	Path   string
}

// Pattern renders the route as a net/http ServeMux pattern.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

const (
	pathListings   = "/careers"
	pathRole       = "/careers/{jobId}"
	pathApply      = "/careers/{jobId}/apply"
	pathAPIRoles   = "/api/roles"
	pathAPIForm    = "/api/roles/{roleId}/form"
	pathAPIApply   = "/api/roles/{roleId}/applications"
	pathAPIOpenAPI = "/api/openapi.json"
)

var routeTable = []Route{
	{Method: http.MethodGet, Path: pathListings},
	{Method: http.MethodGet, Path: pathRole},
	{Method: http.MethodPost, Path: pathApply},
	{Method: http.MethodGet, Path: pathAPIRoles},
	{Method: http.MethodGet, Path: pathAPIForm},
	{Method: http.MethodPost, Path: pathAPIApply},
	{Method: http.MethodGet, Path: pathAPIOpenAPI},
}

// Routes lists every route under basePath in registration order.
func Routes(basePath string) []Route {
	base := normalizeBasePath(basePath)
	out := make([]Route, 0, len(routeTable))
	for _, route := range routeTable {
		out = append(out, Route{Method: route.Method, Path: base + route.Path})
	}
	return out
}

// RegisterRoutes registers the component routes under basePath on mux and
// returns the registered patterns.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the routes using a pre-built Options
// value. basePath overrides opts.BasePath.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	if mux == nil {
		return nil, errors.New("applications: missing mux")
	}
	opts.BasePath = basePath
	opts = NewOptions(func(o *Options) { *o = opts })

	handler := HandlerWithOptions(opts)
	var patterns []string
	for _, route := range Routes(opts.BasePath) {
		mux.Handle(route.Pattern(), handler)
		patterns = append(patterns, route.Pattern())
	}
	return patterns, nil
}

func normalizeBasePath(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return ""
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}
