package schema

import "sort"

// Schema is a map of field names to their expected types.
// Example: {"id": String(), "min": Optional(Float()), "options": Slice(String())}
type Schema map[string]Type

// Fields returns the field names of the schema in sorted order.
func (s Schema) Fields() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Required returns the names of the fields that are not optional, sorted.
func (s Schema) Required() []string {
	var keys []string
	for _, k := range s.Fields() {
		if !IsOptional(s[k]) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Extend returns a new schema containing the fields of s overlaid with extra.
func (s Schema) Extend(extra Schema) Schema {
	out := make(Schema, len(s)+len(extra))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Validate checks if data conforms to the schema.
// Fields not wrapped in Optional must be present and non-nil. Keys in data that
// the schema does not define are rejected. Errors are reported in field order
// and aggregated into a single *AggregateError.
func Validate(schema Schema, data map[string]any) error {
	if schema == nil {
		// No schema = no validation
		return nil
	}

	var errs []error

	// Validate each field in the schema
	for _, fieldName := range schema.Fields() {
		fieldType := schema[fieldName]
		value, exists := data[fieldName]
		if !exists || value == nil {
			if IsOptional(fieldType) {
				continue
			}
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
				Value:  nil,
			})
			continue
		}

		// Validate the value against the type
		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	unknown := make([]string, 0)
	for key := range data {
		if _, ok := schema[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, &ValidationError{
			Key:    key,
			Reason: "unknown field",
			Value:  nil,
		})
	}

	// If there are errors, aggregate them
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// ValidateFields validates only specific fields from data against the schema.
// Missing fields are treated as an error unless the field is optional.
func ValidateFields(schema Schema, data map[string]any, fields ...string) error {
	if len(fields) == 0 {
		// No fields to validate
		return nil
	}

	var errs []error

	for _, fieldName := range fields {
		fieldType, exists := schema[fieldName]
		if !exists {
			// Field not defined in schema
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "not defined in schema",
				Value:  nil,
			})
			continue
		}

		value, fieldExists := data[fieldName]
		if !fieldExists || value == nil {
			if IsOptional(fieldType) {
				continue
			}
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
				Value:  nil,
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
