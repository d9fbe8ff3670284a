package dsl

import (
	"fmt"
	"reflect"

	"github.com/aretw0/revisit/pkg/domain"
)

// placeholder is the empty questionnaire expanded when a sequence holds no
// component of its own.
func placeholder() *domain.Component {
	return domain.MustComponent(domain.PlaceholderName, domain.Fields{domain.FieldType: string(domain.ComponentQuestionnaire)})
}

// FromRows clones every component of the tree once per row and returns a new
// flat sequence of the clones with the same order and sample count. Clones
// are named "<name>_<column:value>_..." and carry the template metadata
// overlaid with the row. Every "datum:<column>" value in the template fields
// and responses is replaced by the row's value. Name-only references are
// dropped since there is nothing to clone.
func (s *Sequence) FromRows(rows []domain.Row) (*Sequence, error) {
	templates := s.Flatten()
	if len(templates) == 0 {
		templates = []*domain.Component{placeholder()}
	}

	out := s.derive()
	for _, tmpl := range templates {
		for i, row := range rows {
			c, err := expand(tmpl, row)
			if err != nil {
				return nil, fmt.Errorf("failed to expand %q with row %d: %w", tmpl.Name(), i, err)
			}
			out.children = append(out.children, Ref{Name: c.Name(), Component: c})
		}
	}
	s.log().Debug("expanded rows", "templates", len(templates), "rows", len(rows), "components", len(out.children))
	return out, nil
}

func expand(tmpl *domain.Component, row domain.Row) (*domain.Component, error) {
	name := tmpl.Name() + "_" + row.Encode("_")

	fields, err := substituteFields(tmpl.Fields(), row)
	if err != nil {
		return nil, err
	}

	var responses []*domain.Response
	for _, r := range tmpl.Responses() {
		rf, err := substituteFields(r.Fields(), row)
		if err != nil {
			return nil, fmt.Errorf("response %q: %w", r.ID(), err)
		}
		nr, err := domain.NewResponse(rf)
		if err != nil {
			return nil, err
		}
		responses = append(responses, nr)
	}

	md := tmpl.Metadata()
	for k, v := range row.Map() {
		md[k] = v
	}
	return tmpl.WithFields(name, fields, responses, md)
}

// Generate builds one new component per row from a field template and
// appends them to s. The name and any field may be a "datum:<column>"
// placeholder; a placeholder name is rendered as a string. Each component's
// metadata is its row.
func (s *Sequence) Generate(rows []domain.Row, name string, fields domain.Fields, opts ...domain.ComponentOption) (*Sequence, error) {
	for i, row := range rows {
		compName := name
		if col, ok := domain.DatumColumn(name); ok {
			v, found := row.Get(col)
			if !found {
				return nil, fmt.Errorf("row %d: %w", i, &domain.NotFoundError{What: "column", Key: col, In: "name"})
			}
			compName = fmt.Sprint(v)
		}

		f, err := substituteFields(fields, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		copts := append([]domain.ComponentOption{domain.WithMetadata(row.Map())}, opts...)
		c, err := domain.NewComponent(compName, f, copts...)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		s.Add(c)
	}
	return s, nil
}

func substituteFields(f domain.Fields, row domain.Row) (domain.Fields, error) {
	out := make(domain.Fields, len(f))
	for k, v := range f {
		nv, err := substitute(v, row)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = nv
	}
	return out, nil
}

func substitute(v any, row domain.Row) (any, error) {
	switch x := v.(type) {
	case string:
		col, ok := domain.DatumColumn(x)
		if !ok {
			return x, nil
		}
		val, found := row.Get(col)
		if !found {
			return nil, &domain.NotFoundError{What: "column", Key: col, In: row.String()}
		}
		return val, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			ne, err := substitute(e, row)
			if err != nil {
				return nil, err
			}
			out[k] = ne
		}
		return out, nil
	case domain.Fields:
		return substituteFields(x, row)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			ne, err := substitute(e, row)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	default:
		return substituteValue(reflect.ValueOf(v), row)
	}
}

// substituteValue walks typed containers such as map[string]string or
// []string. Containers are rebuilt as map[string]any and []any.
func substituteValue(rv reflect.Value, row domain.Row) (any, error) {
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return rv.Interface(), nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			ne, err := substitute(iter.Value().Interface(), row)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = ne
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return rv.Interface(), nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			ne, err := substitute(rv.Index(i).Interface(), row)
			if err != nil {
				return nil, err
			}
			out[i] = ne
		}
		return out, nil
	case reflect.String:
		if _, ok := domain.DatumColumn(rv.String()); ok {
			return substitute(rv.String(), row)
		}
		return rv.Interface(), nil
	case reflect.Invalid:
		return nil, nil
	default:
		return rv.Interface(), nil
	}
}
