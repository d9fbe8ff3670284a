package domain

import (
	"encoding/json"
	"fmt"

	"github.com/mohae/deepcopy"
)

// Component is one page or stimulus of a study. The name keys the component
// in the study registry and is never emitted as a field. Metadata is free
// per-instance data for generator callbacks and is not emitted either.
type Component struct {
	name      string
	kind      ComponentKind
	fields    Fields
	responses []*Response
	metadata  map[string]any
}

// ComponentOption configures NewComponent.
type ComponentOption func(*componentConfig)

type componentConfig struct {
	base         *Component
	metadata     map[string]any
	responses    []*Response
	hasResponses bool
}

// WithBase inherits every field, the response list and the metadata of base
// that the call does not give explicitly. Inherited values are deep copies.
func WithBase(base *Component) ComponentOption {
	return func(c *componentConfig) { c.base = base }
}

// WithMetadata sets the metadata bag of the component.
func WithMetadata(md map[string]any) ComponentOption {
	return func(c *componentConfig) { c.metadata = md }
}

// WithResponses sets the response list of the component.
func WithResponses(responses ...*Response) ComponentOption {
	return func(c *componentConfig) {
		c.responses = responses
		c.hasResponses = true
	}
}

// NewComponent validates fields against the schema of their "type" (or the
// base's type) and returns the new component. The "response" field, when
// present, must hold a []*Response.
func NewComponent(name string, fields Fields, opts ...ComponentOption) (*Component, error) {
	var cfg componentConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if name == "" {
		return nil, &ValidationError{Entity: "component", Field: "name", Msg: "name is required"}
	}

	body := copyFields(withoutReserved(fields))
	responses, hasResponses, err := responsesFrom(name, fields, cfg)
	if err != nil {
		return nil, err
	}

	var kind ComponentKind
	if t, ok := fields[FieldType]; ok && t != nil {
		kind, err = parseComponentKind(t)
		if err != nil {
			err.(*ValidationError).Name = name
			return nil, err
		}
		if cfg.base != nil && kind != cfg.base.kind {
			return nil, &ValidationError{
				Entity: "component",
				Name:   name,
				Kind:   string(cfg.base.kind),
				Field:  FieldType,
				Msg:    fmt.Sprintf("cannot change type of base %q from %q to %q", cfg.base.name, cfg.base.kind, kind),
				Err:    ErrKindChange,
			}
		}
	} else if cfg.base != nil {
		kind = cfg.base.kind
	} else {
		return nil, &ValidationError{Entity: "component", Name: name, Field: FieldType, Msg: "type is required"}
	}

	metadata := cfg.metadata
	if cfg.base != nil {
		for k, v := range cfg.base.fields {
			if _, given := fields[k]; !given {
				body[k] = deepcopy.Copy(v)
			}
		}
		if !hasResponses {
			responses = cloneResponses(cfg.base.responses)
		}
		if metadata == nil {
			metadata = cfg.base.metadata
		}
	}

	if err := validateComponentFields(name, kind, body); err != nil {
		return nil, err
	}
	if err := checkResponseIDs(name, kind, responses); err != nil {
		return nil, err
	}

	return &Component{
		name:      name,
		kind:      kind,
		fields:    body,
		responses: responses,
		metadata:  copyMetadata(metadata),
	}, nil
}

// MustComponent is like NewComponent but panics on error.
func MustComponent(name string, fields Fields, opts ...ComponentOption) *Component {
	c, err := NewComponent(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// withoutReserved returns a shallow copy of f without "type" and "response".
func withoutReserved(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		if k != FieldType && k != FieldResponse {
			out[k] = v
		}
	}
	return out
}

func responsesFrom(name string, fields Fields, cfg componentConfig) ([]*Response, bool, error) {
	if cfg.hasResponses {
		return cloneResponses(cfg.responses), true, nil
	}
	raw, ok := fields[FieldResponse]
	if !ok {
		return nil, false, nil
	}
	if raw == nil {
		return []*Response{}, true, nil
	}
	list, ok := raw.([]*Response)
	if !ok {
		return nil, false, &ValidationError{
			Entity: "component",
			Name:   name,
			Field:  FieldResponse,
			Msg:    fmt.Sprintf("expected []*Response, got %T", raw),
		}
	}
	return cloneResponses(list), true, nil
}

func cloneResponses(in []*Response) []*Response {
	out := make([]*Response, 0, len(in))
	for _, r := range in {
		if r != nil {
			out = append(out, r.copy())
		}
	}
	return out
}

func copyMetadata(md map[string]any) map[string]any {
	out := make(map[string]any, len(md))
	for k, v := range md {
		out[k] = deepcopy.Copy(v)
	}
	return out
}

func checkResponseIDs(name string, kind ComponentKind, responses []*Response) error {
	seen := make(map[string]int, len(responses))
	for i, r := range responses {
		if j, dup := seen[r.ID()]; dup {
			return &ValidationError{
				Entity: "component",
				Name:   name,
				Kind:   string(kind),
				Field:  fmt.Sprintf("%s[%d].%s", FieldResponse, i, FieldID),
				Msg:    fmt.Sprintf("duplicate response id %q (first at index %d)", r.ID(), j),
			}
		}
		seen[r.ID()] = i
	}
	return nil
}

// Name returns the registry key of the component.
func (c *Component) Name() string { return c.name }

// Kind returns the component type.
func (c *Component) Kind() ComponentKind { return c.kind }

// Get returns a copy of the named field and whether it is set.
// "type" and "response" are always set.
func (c *Component) Get(field string) (any, bool) {
	switch field {
	case FieldType:
		return string(c.kind), true
	case FieldResponse:
		return c.Responses(), true
	}
	v, ok := c.fields[field]
	if !ok {
		return nil, false
	}
	return deepcopy.Copy(v), true
}

// Fields returns a deep copy of the scalar and structural fields, including
// "type" but excluding the response list.
func (c *Component) Fields() Fields {
	out := copyFields(c.fields)
	out[FieldType] = string(c.kind)
	return out
}

// Metadata returns a copy of the metadata bag.
func (c *Component) Metadata() map[string]any { return copyMetadata(c.metadata) }

// Responses returns a copy of the response list.
func (c *Component) Responses() []*Response { return cloneResponses(c.responses) }

// Response returns a copy of the response with the given id.
func (c *Component) Response(id string) (*Response, bool) {
	for _, r := range c.responses {
		if r.ID() == id {
			return r.copy(), true
		}
	}
	return nil, false
}

// SetResponses replaces the response list.
func (c *Component) SetResponses(responses ...*Response) error {
	list := cloneResponses(responses)
	if err := checkResponseIDs(c.name, c.kind, list); err != nil {
		return err
	}
	c.responses = list
	return nil
}

// Set assigns fields with the same rules as Response.Set. A "response" value
// must hold a []*Response and replaces the list when overwrite is true or the
// list is empty.
func (c *Component) Set(overwrite bool, fields Fields) error {
	if err := c.checkKind(fields); err != nil {
		return err
	}

	next := copyFields(c.fields)
	responses := c.responses
	for k, v := range fields {
		switch k {
		case FieldType:
			continue
		case FieldResponse:
			list, ok := v.([]*Response)
			if !ok && v != nil {
				return &ValidationError{
					Entity: "component",
					Name:   c.name,
					Kind:   string(c.kind),
					Field:  FieldResponse,
					Msg:    fmt.Sprintf("expected []*Response, got %T", v),
				}
			}
			if overwrite || len(responses) == 0 {
				responses = cloneResponses(list)
			}
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

	if err := validateComponentFields(c.name, c.kind, next); err != nil {
		return err
	}
	if err := checkResponseIDs(c.name, c.kind, responses); err != nil {
		return err
	}
	c.fields = next
	c.responses = responses
	return nil
}

// EditResponse applies fields to the response with the given id, overwriting,
// and replaces it in place.
func (c *Component) EditResponse(id string, fields Fields) error {
	for i, r := range c.responses {
		if r.ID() != id {
			continue
		}
		edited := r.copy()
		if err := edited.Set(true, fields); err != nil {
			var ve *ValidationError
			if asValidation(err, &ve) {
				return ve.withPrefix(fmt.Sprintf("%s[%d]", FieldResponse, i))
			}
			return err
		}
		next := append([]*Response(nil), c.responses...)
		next[i] = edited
		if err := checkResponseIDs(c.name, c.kind, next); err != nil {
			return err
		}
		c.responses = next
		return nil
	}
	return &NotFoundError{What: "response", Key: id, In: c.name}
}

// ApplyResponseContext fills unset response fields from ctx.
func (c *Component) ApplyResponseContext(ctx ResponseContext) error {
	next := cloneResponses(c.responses)
	for i, r := range next {
		if err := ctx.apply(r); err != nil {
			var ve *ValidationError
			if asValidation(err, &ve) {
				return ve.withPrefix(fmt.Sprintf("%s[%d]", FieldResponse, i))
			}
			return err
		}
	}
	c.responses = next
	return nil
}

// Clone returns an independent copy named name with overrides applied. An empty
// name keeps the current one.
func (c *Component) Clone(name string, overrides Fields) (*Component, error) {
	if name == "" {
		name = c.name
	}
	cp := c.copy(name)
	if len(overrides) == 0 {
		return cp, nil
	}
	if err := cp.Set(true, overrides); err != nil {
		return nil, err
	}
	return cp, nil
}

// Derive returns an independent copy named name whose metadata is the current
// metadata overlaid with md.
func (c *Component) Derive(name string, md map[string]any) *Component {
	cp := c.copy(name)
	for k, v := range md {
		cp.metadata[k] = deepcopy.Copy(v)
	}
	return cp
}

// WithFields returns an independent copy with fields replaced wholesale and
// revalidated. Used by row expansion after placeholder substitution.
func (c *Component) WithFields(name string, fields Fields, responses []*Response, md map[string]any) (*Component, error) {
	body := copyFields(withoutReserved(fields))
	if err := validateComponentFields(name, c.kind, body); err != nil {
		return nil, err
	}
	list := cloneResponses(responses)
	if err := checkResponseIDs(name, c.kind, list); err != nil {
		return nil, err
	}
	return &Component{
		name:      name,
		kind:      c.kind,
		fields:    body,
		responses: list,
		metadata:  copyMetadata(md),
	}, nil
}

func (c *Component) copy(name string) *Component {
	return &Component{
		name:      name,
		kind:      c.kind,
		fields:    copyFields(c.fields),
		responses: cloneResponses(c.responses),
		metadata:  copyMetadata(c.metadata),
	}
}

func (c *Component) checkKind(fields Fields) error {
	v, ok := fields[FieldType]
	if !ok || kindString(v) == string(c.kind) {
		return nil
	}
	return &ValidationError{
		Entity: "component",
		Name:   c.name,
		Kind:   string(c.kind),
		Field:  FieldType,
		Msg:    fmt.Sprintf("cannot change type from %q to %v", c.kind, v),
		Err:    ErrKindChange,
	}
}

// MarshalJSON emits the component as it appears under "components" in the
// study document. The response list is always present.
func (c *Component) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.fields)+2)
	for k, v := range c.fields {
		out[k] = v
	}
	out[FieldType] = c.kind
	responses := c.responses
	if responses == nil {
		responses = []*Response{}
	}
	out[FieldResponse] = responses
	return json.Marshal(out)
}

func (c *Component) String() string {
	return fmt.Sprintf("Component(%s %q, %d responses)", c.kind, c.name, len(c.responses))
}
