package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName is the theme shipped with the site.
const DefaultThemeName = "careers"

// Partial keys a theme can override to swap page templates.
const (
	PartialListings = "pages.listings"
	PartialRole     = "pages.role"
	PartialNotFound = "pages.not-found"
)

// DefaultThemeManifest returns the built-in theme: a dark palette with a
// light variant. The stylesheet key resolves to the embedded careers.css.
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"background":  "#0b0b12",
			"foreground":  "#f4f4f5",
			"muted":       "#a1a1aa",
			"card":        "rgba(255, 255, 255, 0.04)",
			"border":      "rgba(255, 255, 255, 0.12)",
			"accent":      "#8b5cf6",
			"destructive": "#ef4444",
			"success":     "#22c55e",
		},
		Templates: map[string]string{
			PartialListings: "listings.tmpl",
			PartialRole:     "role.tmpl",
			PartialNotFound: "not_found.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": "careers.css",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {
				Tokens: map[string]string{
					"background": "#fafafa",
					"foreground": "#18181b",
					"muted":      "#52525b",
					"card":       "#ffffff",
					"border":     "#e4e4e7",
				},
			},
		},
	}
}

// ManifestSelector resolves themes from a fixed set of manifests.
type ManifestSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector validates manifests and returns a selector whose
// blank lookups resolve to defaultTheme/defaultVariant.
func NewManifestSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*ManifestSelector, error) {
	if len(manifests) == 0 {
		return nil, errors.New("render: at least one theme manifest is required")
	}
	provider := theme.NewRegistry()
	selector := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := provider.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
		}
		selector.manifests[manifest.Name] = manifest
	}
	if selector.defaultTheme == "" {
		selector.defaultTheme = manifests[0].Name
	}
	if _, ok := selector.manifests[selector.defaultTheme]; !ok {
		return nil, fmt.Errorf("render: default theme %q not registered", selector.defaultTheme)
	}
	return selector, nil
}

// Themes lists the registered theme names.
func (s *ManifestSelector) Themes() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select implements theme.ThemeSelector.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}

	variant = strings.TrimSpace(variant)
	if variant == "" && name == s.defaultTheme {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ResolveTheme selects name/variant and flattens the manifest into the
// renderer configuration: variant tokens, templates, and asset files override
// the base manifest, tokens are mirrored as CSS custom properties, and asset
// keys resolve against the asset prefix.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("render: theme selector is required")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("render: theme %q resolved without a manifest", name)
	}
	manifest := selection.Manifest

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix
	if v, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		files = mergeStrings(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	prefix = strings.TrimRight(prefix, "/")
	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file := files[key]
			if file == "" {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			return prefix + "/" + file
		},
	}, nil
}

// CSSVarsStyle renders the CSS custom properties of cfg as an inline style
// declaration, sorted by name.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for idx, key := range keys {
		if idx > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}
