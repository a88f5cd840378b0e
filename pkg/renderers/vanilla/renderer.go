package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-careers/pkg/render"
	rendertemplate "github.com/goliatone/go-careers/pkg/render/template"
	"github.com/goliatone/go-careers/pkg/render/template/gotemplate"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	siteName         string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSiteName sets the brand shown in page headers and titles.
func WithSiteName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.siteName = name
		}
	}
}

// Renderer produces the server-rendered HTML pages of the careers site.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), siteName: "Careers"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithName("vanilla"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := renderer.GlobalContext(map[string]any{
		"classes": chromeClasses(),
		"site":    map[string]any{"name": cfg.siteName},
	}); err != nil {
		return nil, fmt.Errorf("vanilla renderer: global context: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

// Register builds a renderer with options and adds it to registry.
func Register(registry *render.Registry, options ...Option) error {
	if registry == nil {
		return errors.New("vanilla renderer: registry is required")
	}
	renderer, err := New(options...)
	if err != nil {
		return err
	}
	return registry.Register(renderer)
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders page. Themes may swap the template used for each page kind
// through their partials.
func (r *Renderer) Render(_ context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("vanilla renderer: template renderer is nil")
	}

	name, err := templateFor(page.Kind, opts)
	if err != nil {
		return nil, err
	}
	result, err := r.templates.RenderTemplate(name, map[string]any{
		"page": buildPageView(page, opts),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s: %w", page.Kind, err)
	}
	return []byte(result), nil
}

func templateFor(kind render.PageKind, opts render.RenderOptions) (string, error) {
	var partial, fallback string
	switch kind {
	case render.PageListings:
		partial, fallback = render.PartialListings, "listings.tmpl"
	case render.PageRole:
		partial, fallback = render.PartialRole, "role.tmpl"
	case render.PageNotFound:
		partial, fallback = render.PartialNotFound, "not_found.tmpl"
	default:
		return "", fmt.Errorf("vanilla renderer: unsupported page kind %q", kind)
	}
	if opts.Theme != nil {
		if name := opts.Theme.Partials[partial]; name != "" {
			return name, nil
		}
	}
	return fallback, nil
}
