// Package careers wires the careers site for embedding in another Go
// application: the embedded catalog, templates, and assets, plus the HTTP
// component serving listings and applications.
package careers

import (
	"io/fs"

	"github.com/goliatone/go-careers/components/applications"
	"github.com/goliatone/go-careers/pkg/catalog"
	"github.com/goliatone/go-careers/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet referenced by the rendered pages.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(careers.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// DefaultCatalog loads the roles shipped with the binary.
func DefaultCatalog() (*catalog.Catalog, error) {
	return catalog.Default()
}

// NewComponent builds the applications component. Without options it serves
// the embedded catalog and submits to the default endpoint.
func NewComponent(fns ...applications.OptionFn) *applications.Component {
	return applications.New(fns...)
}
