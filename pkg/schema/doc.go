// Package schema provides a type-safe validation system for flat field records.
//
// It defines a simple type system with built-in types (string, int, float, bool,
// any, map), enums, slices, optional fields and custom validators. Schemas map
// field names to types and validation is strict: required fields must be present
// and fields the schema does not define are rejected.
//
// Basic usage:
//
//	numerical := schema.Schema{
//	    "id":       schema.String(),
//	    "prompt":   schema.Optional(schema.String()),
//	    "min":      schema.Optional(schema.Float()),
//	    "location": schema.Optional(schema.OneOf("aboveStimulus", "belowStimulus", "sidebar")),
//	}
//
//	data := map[string]any{
//	    "id":  "q1",
//	    "min": 0,
//	}
//
//	if err := schema.Validate(numerical, data); err != nil {
//	    // err is an *AggregateError of *ValidationError, one per offending field
//	}
//
// Validating a subset of fields, as when checking defaults before they
// are merged into a record:
//
//	schema.ValidateFields(numerical, defaults, "min")
//
// Custom validators can be registered for domain-specific validation:
//
//	option := schema.Custom("option", func(v any) error {
//	    if _, ok := v.(string); ok {
//	        return nil
//	    }
//	    return fmt.Errorf("expected string option, got %T", v)
//	})
//
// The package has no dependencies beyond the Go standard library.
package schema
