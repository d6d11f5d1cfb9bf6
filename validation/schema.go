package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON Schema for validating decoded JSON arguments.
// It is immutable and safe for concurrent use.
type Schema struct {
	schema *gojsonschema.Schema
}

// CompileSchema compiles a schema document. doc may be any value that
// marshals to a JSON Schema object.
func CompileSchema(doc any) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// Validate checks args against the schema. Nil args are treated as an
// empty object. Violations come back as an invalid-params AppError.
func (s *Schema) Validate(args map[string]any) error {
	if args == nil {
		args = map[string]any{}
	}

	result, err := s.schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		v := New()
		v.AddError("arguments", err.Error())
		return v.Validate()
	}
	if result.Valid() {
		return nil
	}

	v := New()
	for _, re := range result.Errors() {
		field, msg := re.Field(), re.Description()
		if re.Type() == "required" {
			if prop, ok := re.Details()["property"].(string); ok {
				field, msg = prop, msgRequired
			}
		}
		v.AddError(field, msg)
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
