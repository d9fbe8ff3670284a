package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error checking via errors.Is().
var (
	// ErrValidation indicates a field/kind violation on a response, component,
	// sequence or study section.
	ErrValidation = errors.New("validation error")

	// ErrKindChange indicates an attempt to change the type of an existing entity.
	ErrKindChange = errors.New("type cannot change")

	// ErrNotFound indicates a lookup by id or name that matched nothing.
	ErrNotFound = errors.New("not found")

	// ErrStructural indicates a broken cross-reference in an assembled study.
	ErrStructural = errors.New("structural error")

	// ErrAsset indicates a failure to package a referenced file.
	ErrAsset = errors.New("asset error")
)

// ValidationError reports an invalid field on an entity.
// It wraps ErrValidation and, when present, the underlying cause
// (a *schema.AggregateError or ErrKindChange).
type ValidationError struct {
	Entity string // "response", "component", "sequence", "studyMetadata", "uiConfig"
	Name   string // Response id or component name, when known
	Kind   string // Declared type, when known
	Field  string // Offending field path, e.g. "response[1].options"
	Msg    string
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	subject := e.Entity
	if e.Name != "" {
		subject = fmt.Sprintf("%s %q", subject, e.Name)
	}
	if e.Kind != "" {
		subject = fmt.Sprintf("%s (%s)", subject, e.Kind)
	}
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: field %q: %s", ErrValidation.Error(), subject, e.Field, msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), subject, msg)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// withPrefix returns a copy of e whose Field is nested under prefix.
func (e *ValidationError) withPrefix(prefix string) *ValidationError {
	cp := *e
	if cp.Field == "" {
		cp.Field = prefix
	} else {
		cp.Field = prefix + "." + cp.Field
	}
	return &cp
}

// NotFoundError reports a failed lookup. Wraps ErrNotFound.
type NotFoundError struct {
	What string // "response", "component"
	Key  string
	In   string // Owner, e.g. the component name
}

func (e *NotFoundError) Error() string {
	if e.In != "" {
		return fmt.Sprintf("%s %q %s in %q", e.What, e.Key, ErrNotFound.Error(), e.In)
	}
	return fmt.Sprintf("%s %q %s", e.What, e.Key, ErrNotFound.Error())
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StructuralError represents a broken study structure detected at build time.
// Wraps ErrStructural for errors.Is() compatibility.
type StructuralError struct {
	Kind string // "missing_component", "duplicate_response", "invalid_sequence"
	Msg  string
}

func (e *StructuralError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return ErrStructural.Error()
	}
	return fmt.Sprintf("%s: %s", ErrStructural.Error(), e.Msg)
}

func (e *StructuralError) Unwrap() error { return ErrStructural }

// AssetError reports a file that could not be packaged.
type AssetError struct {
	Src  string
	Dest string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("%s: copy %q to %q: %v", ErrAsset.Error(), e.Src, e.Dest, e.Err)
}

func (e *AssetError) Unwrap() []error { return []error{ErrAsset, e.Err} }
