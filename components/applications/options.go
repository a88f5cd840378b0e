package applications

import (
	"net/http"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-careers/pkg/application"
	"github.com/goliatone/go-careers/pkg/catalog"
	"github.com/goliatone/go-careers/pkg/render"
)

// DefaultMaxUploadBytes bounds request bodies: the 10 MiB CV plus the rest
// of the form.
const DefaultMaxUploadBytes int64 = 12 << 20

// GuardFunc runs before every route. A returned HTTPError picks the status
// code; any other error maps to 403.
type GuardFunc func(r *http.Request) error

// CatalogSource yields the catalog to serve. *catalog.Live satisfies it.
type CatalogSource interface {
	Current() *catalog.Catalog
}

type staticCatalog struct {
	catalog *catalog.Catalog
}

func (s staticCatalog) Current() *catalog.Catalog { return s.catalog }

// StaticCatalog serves c for the component's lifetime.
func StaticCatalog(c *catalog.Catalog) CatalogSource {
	return staticCatalog{catalog: c}
}

type Options struct {
	// BasePath prefixes every route and every link the pages render.
	BasePath  string
	Catalog   CatalogSource
	Submitter application.Submitter
	// Renderer wins over Renderers. Without either the component registers
	// the vanilla renderer in a registry of its own.
	Renderer       render.Renderer
	Renderers      *render.Registry
	RendererName   string
	Theme          *theme.RendererConfig
	MaxUploadBytes int64
	APITitle       string
	Guard          GuardFunc
	Logger         *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		MaxUploadBytes: DefaultMaxUploadBytes,
		APITitle:       "Careers API",
		Logger:         zap.NewNop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.APITitle == "" {
		opts.APITitle = "Careers API"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	opts.BasePath = normalizeBasePath(opts.BasePath)
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithCatalog(source CatalogSource) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = source
	}
}

func WithSubmitter(submitter application.Submitter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Submitter = submitter
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

// WithRendererRegistry resolves the page renderer called name from registry;
// a blank name picks the registry default.
func WithRendererRegistry(registry *render.Registry, name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderers = registry
		o.RendererName = name
	}
}

func WithTheme(cfg *theme.RendererConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = cfg
	}
}

func WithMaxUploadBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxUploadBytes = limit
	}
}

func WithAPITitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.APITitle = title
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
