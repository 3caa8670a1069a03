// Package export describes a template's submission payload as an OpenAPI
// document, so external systems can validate fill requests without parsing
// the SVG themselves.
package export

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/printplog/svgform/pkg/fields"
)

// Extension keys attached to each property so consumers can trace a schema
// entry back to its SVG element and grammar metadata.
const (
	extElementID    = "x-svg-element-id"
	extFieldType    = "x-field-type"
	extDependsOn    = "x-depends-on"
	extTrackingRole = "x-tracking-role"
	extTrackingID   = "x-tracking-id"
	extGrayscale    = "x-requires-grayscale"
)

// Schema builds an object schema with one property per field, keyed by field
// id. Editable fields become required; computed and generated fields stay
// optional since the engine derives them.
func Schema(list []fields.Field) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Properties = make(openapi3.Schemas, len(list))

	for _, field := range list {
		prop := propertySchema(field)
		schema.Properties[field.ID] = openapi3.NewSchemaRef("", prop)
		if field.Editable && field.DependsOn == "" {
			schema.Required = append(schema.Required, field.ID)
		}
	}
	return schema
}

func propertySchema(field fields.Field) *openapi3.Schema {
	var prop *openapi3.Schema

	switch field.Type {
	case fields.FieldTypeCheckbox, fields.FieldTypeHiddenToggle:
		prop = openapi3.NewBoolSchema()
	case fields.FieldTypeNumber, fields.FieldTypeRange:
		prop = openapi3.NewSchema()
		prop.Type = &openapi3.Types{openapi3.TypeNumber}
	case fields.FieldTypeDate:
		prop = openapi3.NewStringSchema()
		prop.Format = "date"
	case fields.FieldTypeEmail:
		prop = openapi3.NewStringSchema()
		prop.Format = "email"
	case fields.FieldTypeUpload, fields.FieldTypeFile, fields.FieldTypeSignature:
		prop = openapi3.NewStringSchema()
		prop.Format = "binary"
	default:
		prop = openapi3.NewStringSchema()
	}

	prop.Title = field.Name
	prop.Description = field.HelperText
	if field.Default != nil {
		prop.Default = field.Default
	}
	if field.Max != nil && *field.Max > 0 {
		limit := uint64(*field.Max)
		prop.MaxLength = &limit
	}
	for _, option := range field.Options {
		prop.Enum = append(prop.Enum, option.Value)
	}

	prop.Extensions = map[string]any{
		extElementID: field.SVGElementID,
		extFieldType: string(field.Type),
	}
	if field.DependsOn != "" {
		prop.Extensions[extDependsOn] = field.DependsOn
	}
	if field.TrackingRole != "" {
		prop.Extensions[extTrackingRole] = field.TrackingRole
	}
	if field.IsTrackingID {
		prop.Extensions[extTrackingID] = true
	}
	if field.RequiresGrayscale {
		prop.Extensions[extGrayscale] = true
	}
	return prop
}

// Document wraps the submission schema in a minimal OpenAPI 3 document with a
// single fill operation, ready for client generators.
func Document(title string, list []fields.Field) *openapi3.T {
	submission := Schema(list)

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{
		"Submission": openapi3.NewSchemaRef("", submission),
	}

	request := openapi3.NewRequestBody().
		WithRequired(true).
		WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/Submission", nil))

	response := openapi3.NewResponse().WithDescription("Filled SVG document")

	operation := openapi3.NewOperation()
	operation.OperationID = "fillTemplate"
	operation.Summary = "Fill the template with submitted field values"
	operation.RequestBody = &openapi3.RequestBodyRef{Value: request}
	operation.AddResponse(200, response)

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: "1.0.0",
		},
		Components: &components,
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/fill", &openapi3.PathItem{Post: operation}),
		),
	}
}

// JSON serialises the document with stable indentation.
func JSON(doc *openapi3.T) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("export: document is required")
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("export: marshal document: %w", err)
	}
	var buf json.RawMessage = raw
	out, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: indent document: %w", err)
	}
	return out, nil
}

// YAML serialises the document through its JSON form so the kin-openapi
// marshalling rules apply before the YAML encoding.
func YAML(doc *openapi3.T) ([]byte, error) {
	raw, err := JSON(doc)
	if err != nil {
		return nil, err
	}
	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("export: decode document: %w", err)
	}
	out, err := yaml.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	return out, nil
}
