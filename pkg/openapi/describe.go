package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-careers/pkg/schema"
	"github.com/goliatone/go-careers/pkg/validation"
)

const (
	// Version is the OpenAPI version emitted by Describe.
	Version = "3.0.3"
	// ResponseSchemaName is the component holding the submission response.
	ResponseSchemaName = "SubmissionResponse"
	// SubmissionTokenField is the optional idempotency field accepted by
	// every application operation.
	SubmissionTokenField = "submissionToken"
)

// Options tunes the generated document.
type Options struct {
	Title       string
	Version     string
	Description string
	// BasePath prefixes every path, e.g. "/jobs".
	BasePath string
	// ServerURL is listed under servers when set.
	ServerURL string
}

// ApplicationPath returns the path of the application operation for roleID.
func ApplicationPath(basePath, roleID string) string {
	return strings.TrimRight(basePath, "/") + "/api/roles/" + roleID + "/applications"
}

// OperationID returns the operationId used for roleID.
func OperationID(roleID string) string {
	return "apply-" + roleID
}

// Describe builds and validates the API document for every role in registry.
func Describe(registry *schema.Registry, opts Options) (*openapi3.T, error) {
	if registry == nil {
		return nil, errors.New("openapi: registry is nil")
	}
	if opts.Title == "" {
		opts.Title = "Careers API"
	}
	if opts.Version == "" {
		opts.Version = "1.0.0"
	}

	response := submissionResponseSchema()
	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       opts.Title,
			Version:     opts.Version,
			Description: opts.Description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				ResponseSchemaName: openapi3.NewSchemaRef("", response),
			},
		},
	}
	if opts.ServerURL != "" {
		doc.Servers = openapi3.Servers{&openapi3.Server{URL: opts.ServerURL}}
	}

	for _, roleID := range registry.List() {
		role, err := registry.Get(roleID)
		if err != nil {
			return nil, fmt.Errorf("openapi: %w", err)
		}
		doc.Paths.Set(ApplicationPath(opts.BasePath, roleID), &openapi3.PathItem{
			Post: applicationOperation(role, response),
		})
	}

	if err := doc.Validate(context.Background(), openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

func applicationOperation(role schema.RoleForm, response *openapi3.Schema) *openapi3.Operation {
	responseRef := func(description string) *openapi3.ResponseRef {
		return &openapi3.ResponseRef{Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/"+ResponseSchemaName, response))}
	}

	return &openapi3.Operation{
		OperationID: OperationID(role.RoleID),
		Summary:     "Apply for " + role.RoleLabel,
		Tags:        []string{"applications"},
		RequestBody: &openapi3.RequestBodyRef{Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithDescription(role.RoleLabel + " application form").
			WithContent(openapi3.NewContentWithFormDataSchema(requestSchema(role)))},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, responseRef("Application accepted by the recruiting endpoint")),
			openapi3.WithStatus(404, responseRef("Role form not configured")),
			openapi3.WithStatus(422, responseRef("Validation failed; errors maps field names to messages")),
			openapi3.WithStatus(502, responseRef("The recruiting endpoint rejected or failed the submission")),
		),
	}
}

// requestSchema maps a role form onto the multipart body accepted by the
// application operation.
func requestSchema(role schema.RoleForm) *openapi3.Schema {
	body := openapi3.NewObjectSchema()
	var required []string
	for _, field := range role.Fields {
		body.WithProperty(field.Name, fieldSchema(field))
		if field.Required {
			required = append(required, field.Name)
		}
	}
	token := openapi3.NewStringSchema().WithFormat("uuid")
	token.Description = "Optional idempotency token; concurrent posts with the same token are sent once."
	body.WithProperty(SubmissionTokenField, token)
	body.Required = required
	return body
}

func fieldSchema(field schema.FieldDescriptor) *openapi3.Schema {
	var s *openapi3.Schema
	switch field.Kind {
	case schema.KindSelect, schema.KindRadio:
		s = openapi3.NewStringSchema().WithEnum(optionValues(field)...)
	case schema.KindCheckboxGroup:
		s = openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema().WithEnum(optionValues(field)...))
		if field.Required {
			s.MinItems = 1
		}
	case schema.KindFile:
		s = openapi3.NewStringSchema().WithFormat("binary")
		s.Extensions = map[string]any{
			"x-accept":        field.Accept,
			"x-max-file-size": validation.MaxFileSizeBytes,
		}
	case schema.KindURL:
		s = openapi3.NewStringSchema().WithFormat("uri")
	case schema.KindText, schema.KindPhone:
		s = openapi3.NewStringSchema()
	default:
		// Unknown kinds never leave the catalog; describe them as free text.
		s = openapi3.NewStringSchema()
	}
	s.Title = field.Label
	if field.Placeholder != "" {
		s.Description = field.Placeholder
	}
	if field.Required && field.Kind.StoresText() {
		s.MinLength = 1
	}
	return s
}

func optionValues(field schema.FieldDescriptor) []any {
	out := make([]any, 0, len(field.Options))
	for _, option := range field.Options {
		out = append(out, option.Value)
	}
	return out
}

func submissionResponseSchema() *openapi3.Schema {
	errorsSchema := openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())
	errorsSchema.Description = "Field name to validation message."

	s := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("errors", errorsSchema)
	s.Required = []string{"success"}
	return s
}
