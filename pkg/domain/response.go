package domain

import (
	"encoding/json"
	"fmt"

	"github.com/mohae/deepcopy"
)

// Fields is a bag of named field values as they appear in the study document.
type Fields map[string]any

// copyFields returns a deep copy of f with nil values removed.
func copyFields(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if v == nil {
			continue
		}
		out[k] = deepcopy.Copy(v)
	}
	return out
}

// Response is one answerable input field on a component.
// Its kind is fixed at creation.
type Response struct {
	kind   ResponseKind
	fields Fields
}

// NewResponse validates fields against the schema of fields["type"] and
// returns the new response.
func NewResponse(fields Fields) (*Response, error) {
	kind, err := parseResponseKind(fields[FieldType])
	if err != nil {
		if id, ok := fields[FieldID].(string); ok {
			err.(*ValidationError).Name = id
		}
		return nil, err
	}

	body := copyFields(fields)
	delete(body, FieldType)
	if err := validateResponseFields(kind, body); err != nil {
		return nil, err
	}
	return &Response{kind: kind, fields: body}, nil
}

// MustResponse is like NewResponse but panics on error.
func MustResponse(fields Fields) *Response {
	r, err := NewResponse(fields)
	if err != nil {
		panic(err)
	}
	return r
}

// Kind returns the response type.
func (r *Response) Kind() ResponseKind { return r.kind }

// ID returns the response id.
func (r *Response) ID() string {
	id, _ := r.fields[FieldID].(string)
	return id
}

// Get returns a copy of the named field and whether it is set.
func (r *Response) Get(field string) (any, bool) {
	if field == FieldType {
		return string(r.kind), true
	}
	v, ok := r.fields[field]
	if !ok {
		return nil, false
	}
	return deepcopy.Copy(v), true
}

// Fields returns a deep copy of every field, including "type".
func (r *Response) Fields() Fields {
	out := copyFields(r.fields)
	out[FieldType] = string(r.kind)
	return out
}

// Set assigns fields and revalidates. With overwrite every given field is
// assigned and a nil value unsets it; without overwrite only fields that are
// currently unset are filled. A "type" equal to the current kind is ignored, a
// different one is rejected. On error the response is left unchanged.
func (r *Response) Set(overwrite bool, fields Fields) error {
	if err := r.checkKind(fields); err != nil {
		return err
	}

	next := copyFields(r.fields)
	for k, v := range fields {
		if k == FieldType {
			continue
		}
		if overwrite {
			if v == nil {
				delete(next, k)
			} else {
				next[k] = deepcopy.Copy(v)
			}
			continue
		}
		if _, set := next[k]; !set && v != nil {
			next[k] = deepcopy.Copy(v)
		}
	}

	if err := validateResponseFields(r.kind, next); err != nil {
		return err
	}
	r.fields = next
	return nil
}

// Clone returns an independent copy of r with overrides applied.
func (r *Response) Clone(overrides Fields) (*Response, error) {
	cp := r.copy()
	if len(overrides) == 0 {
		return cp, nil
	}
	if err := cp.Set(true, overrides); err != nil {
		return nil, err
	}
	return cp, nil
}

func (r *Response) copy() *Response {
	return &Response{kind: r.kind, fields: copyFields(r.fields)}
}

func (r *Response) checkKind(fields Fields) error {
	v, ok := fields[FieldType]
	if !ok {
		return nil
	}
	if kindString(v) == string(r.kind) {
		return nil
	}
	return &ValidationError{
		Entity: "response",
		Name:   r.ID(),
		Kind:   string(r.kind),
		Field:  FieldType,
		Msg:    fmt.Sprintf("cannot change type from %q to %v", r.kind, v),
		Err:    ErrKindChange,
	}
}

// MarshalJSON emits the response as a flat object with its "type".
func (r *Response) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.fields)+1)
	for k, v := range r.fields {
		out[k] = v
	}
	out[FieldType] = r.kind
	return json.Marshal(out)
}

func (r *Response) String() string {
	return fmt.Sprintf("Response(%s %q)", r.kind, r.ID())
}

func kindString(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case ResponseKind:
		return string(k)
	case ComponentKind:
		return string(k)
	default:
		return fmt.Sprint(v)
	}
}
