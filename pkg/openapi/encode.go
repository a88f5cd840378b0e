package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Format selects the serialization used by Encode.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml", or "yml" (case insensitive).
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("openapi: unsupported format %q", raw)
	}
}

// Encode serializes doc as indented JSON or YAML.
func Encode(doc *openapi3.T, format Format) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is nil")
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal: %w", err)
	}

	var tree any
	if err := sonic.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("openapi: decode: %w", err)
	}
	switch format {
	case FormatYAML:
		return yaml.Marshal(tree)
	case FormatJSON, "":
		return sonic.ConfigStd.MarshalIndent(tree, "", "  ")
	default:
		return nil, fmt.Errorf("openapi: unsupported format %q", format)
	}
}

// Load parses and validates a document produced by Describe or any other
// OpenAPI 3 source.
func Load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}
