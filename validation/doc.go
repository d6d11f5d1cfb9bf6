// Package validation checks tool arguments before they reach a backend.
//
// Two layers are provided. Schema validates the raw argument object against
// a tool's JSON Schema (types, enums, required fields). Validate then checks
// the decoded, typed argument struct with go-playground/validator tags. Both
// report failures as an invalid-params AppError.
//
//	schema, _ := validation.CompileSchema(descriptor.InputSchema)
//	if err := schema.Validate(args); err != nil {
//	    return err
//	}
//
// Both layers collect failures in a Validator, which folds them into a
// single AppError.
package validation
