package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/revisit/pkg/schema"
)

// ContextRule holds default fields for responses of one kind, or for every
// kind when Kind is WildcardKind.
type ContextRule struct {
	Kind   string
	Fields Fields
}

// ResponseContext is an ordered list of default rules. Rules never overwrite
// a field a response already has. When a wildcard rule and a kind rule both
// offer a field, the kind rule wins.
type ResponseContext []ContextRule

// NewResponseContext builds a context from a kind to fields mapping. The
// wildcard rule comes first, the remaining kinds follow in sorted order.
func NewResponseContext(rules map[string]Fields) (ResponseContext, error) {
	kinds := make([]string, 0, len(rules))
	for k := range rules {
		if k == WildcardKind {
			continue
		}
		if _, ok := responseSchemas[ResponseKind(k)]; !ok {
			return nil, &ValidationError{
				Entity: "responseContext",
				Field:  k,
				Msg:    fmt.Sprintf("unknown response type %q, valid types are %v", k, ResponseKinds()),
			}
		}
		if err := checkRule(ResponseKind(k), rules[k]); err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	ctx := make(ResponseContext, 0, len(rules))
	if f, ok := rules[WildcardKind]; ok {
		ctx = append(ctx, ContextRule{Kind: WildcardKind, Fields: copyFields(f)})
	}
	for _, k := range kinds {
		ctx = append(ctx, ContextRule{Kind: k, Fields: copyFields(rules[k])})
	}
	return ctx, nil
}

// checkRule validates the fields a kind rule offers against the kind's
// schema. Fields the rule does not name are not required here.
func checkRule(kind ResponseKind, fields Fields) error {
	keys := make([]string, 0, len(fields))
	for k, v := range fields {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if err := schema.ValidateFields(responseSchemas[kind], fields, keys...); err != nil {
		return &ValidationError{
			Entity: "responseContext",
			Kind:   string(kind),
			Field:  firstField(err),
			Err:    err,
		}
	}
	return nil
}

// Defaults resolves the fields ctx offers to a response of the given kind.
// Wildcard fields the kind does not define are dropped.
func (ctx ResponseContext) Defaults(kind ResponseKind) Fields {
	sch := responseSchemas[kind]
	out := Fields{}
	for _, rule := range ctx {
		switch rule.Kind {
		case WildcardKind:
			for k, v := range rule.Fields {
				if _, legal := sch[k]; legal {
					out[k] = v
				}
			}
		case string(kind):
			for k, v := range rule.Fields {
				out[k] = v
			}
		}
	}
	return out
}

func (ctx ResponseContext) apply(r *Response) error {
	defaults := ctx.Defaults(r.kind)
	if len(defaults) == 0 {
		return nil
	}
	return r.Set(false, defaults)
}

func asValidation(err error, target **ValidationError) bool {
	return errors.As(err, target)
}
