// Package applications serves the careers site over net/http: the listing
// and role pages, the application form post, and a small JSON API with its
// OpenAPI description. It is a self-contained component that mounts on any
// Mux under a base path.
package applications
