package domain

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/aretw0/revisit/pkg/schema"
)

// datumPattern matches a row placeholder such as "datum:r1".
var datumPattern = regexp.MustCompile(`^datum:(\w+)$`)

// DatumColumn returns the column named by a "datum:<column>" placeholder.
func DatumColumn(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	m := datumPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// templated accepts row placeholders in place of any value, so a template can
// carry "datum:n" in an int field until rows are expanded.
type templated struct {
	schema.Type
}

func (t templated) Validate(value any) error {
	if _, ok := DatumColumn(value); ok {
		return nil
	}
	return t.Type.Validate(value)
}

func req(t schema.Type) schema.Type { return templated{t} }
func opt(t schema.Type) schema.Type { return schema.Optional(templated{t}) }

var (
	location = schema.OneOf(LocationAboveStimulus, LocationBelowStimulus, LocationSidebar)

	// option is either a bare string or a {label, value} object.
	option = schema.Custom("option", func(v any) error {
		switch o := v.(type) {
		case string:
			return nil
		case map[string]any:
			if _, ok := o["label"].(string); !ok {
				return fmt.Errorf("option object needs a string label")
			}
			if _, ok := o["value"]; !ok {
				return fmt.Errorf("option object needs a value")
			}
			return nil
		default:
			return fmt.Errorf("expected string or {label, value}, got %T", v)
		}
	})

	sliderOption = schema.Custom("sliderOption", func(v any) error {
		o, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("expected {label, value}, got %T", v)
		}
		if _, ok := o["label"].(string); !ok {
			return fmt.Errorf("slider option needs a string label")
		}
		return schema.Float().Validate(o["value"])
	})

	// answerOptions is a named preset (e.g. "likely-7") or an explicit list.
	answerOptions = schema.Custom("answerOptions", func(v any) error {
		if _, ok := v.(string); ok {
			return nil
		}
		return schema.Slice(schema.String()).Validate(v)
	})

	correctAnswer = schema.Custom("answer", func(v any) error {
		o, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("expected {id, answer}, got %T", v)
		}
		if _, ok := o["id"].(string); !ok {
			return fmt.Errorf("answer needs a string id")
		}
		if _, ok := o["answer"]; !ok {
			return fmt.Errorf("answer needs an answer value")
		}
		return nil
	})
)

var responseBase = schema.Schema{
	FieldID:         req(schema.String()),
	"prompt":        opt(schema.String()),
	"secondaryText": opt(schema.String()),
	"required":      opt(schema.Bool()),
	"location":      opt(location),
	"requiredValue": opt(schema.Any()),
	"requiredLabel": opt(schema.String()),
	"paramCapture":  opt(schema.String()),
	"hidden":        opt(schema.Bool()),
	"withDivider":   opt(schema.Bool()),
	"style":         opt(schema.Map()),
}

var responseSchemas = map[ResponseKind]schema.Schema{
	ResponseNumerical: responseBase.Extend(schema.Schema{
		"placeholder": opt(schema.String()),
		"min":         opt(schema.Float()),
		"max":         opt(schema.Float()),
	}),
	ResponseShortText: responseBase.Extend(schema.Schema{
		"placeholder": opt(schema.String()),
	}),
	ResponseLongText: responseBase.Extend(schema.Schema{
		"placeholder": opt(schema.String()),
	}),
	ResponseLikert: responseBase.Extend(schema.Schema{
		"numItems":   req(schema.Int()),
		"leftLabel":  opt(schema.String()),
		"rightLabel": opt(schema.String()),
		"start":      opt(schema.Int()),
		"spacing":    opt(schema.Int()),
	}),
	ResponseDropdown: responseBase.Extend(schema.Schema{
		"placeholder":   opt(schema.String()),
		"options":       req(schema.Slice(option)),
		"minSelections": opt(schema.Int()),
		"maxSelections": opt(schema.Int()),
	}),
	ResponseSlider: responseBase.Extend(schema.Schema{
		"options":       req(schema.Slice(sliderOption)),
		"startingValue": opt(schema.Float()),
		"withBar":       opt(schema.Bool()),
		"snapToTick":    opt(schema.Bool()),
	}),
	ResponseRadio: responseBase.Extend(schema.Schema{
		"options":    req(schema.Slice(option)),
		"leftLabel":  opt(schema.String()),
		"rightLabel": opt(schema.String()),
		"horizontal": opt(schema.Bool()),
		"withOther":  opt(schema.Bool()),
	}),
	ResponseCheckbox: responseBase.Extend(schema.Schema{
		"options":       req(schema.Slice(option)),
		"minSelections": opt(schema.Int()),
		"maxSelections": opt(schema.Int()),
		"horizontal":    opt(schema.Bool()),
		"withOther":     opt(schema.Bool()),
	}),
	ResponseIFrame: responseBase,
	ResponseMatrixRadio: responseBase.Extend(schema.Schema{
		"answerOptions":   req(answerOptions),
		"questionOptions": req(schema.Slice(schema.String())),
	}),
	ResponseMatrixCheckbox: responseBase.Extend(schema.Schema{
		"answerOptions":   req(answerOptions),
		"questionOptions": req(schema.Slice(schema.String())),
	}),
}

// The response list is held outside the field bag and checked separately.
var componentBase = schema.Schema{
	"nextButtonText":        opt(schema.String()),
	"nextButtonLocation":    opt(location),
	"instructionLocation":   opt(location),
	"correctAnswer":         opt(schema.Slice(correctAnswer)),
	"provideFeedback":       opt(schema.Bool()),
	"trainingAttempts":      opt(schema.Int()),
	"allowFailedTraining":   opt(schema.Bool()),
	"nextButtonDisableTime": opt(schema.Int()),
	"nextButtonEnableTime":  opt(schema.Int()),
	"previousButton":        opt(schema.Bool()),
	"meta":                  opt(schema.Map()),
	"description":           opt(schema.String()),
	"instruction":           opt(schema.String()),
}

var componentSchemas = map[ComponentKind]schema.Schema{
	ComponentMarkdown: componentBase.Extend(schema.Schema{
		FieldPath: req(schema.String()),
	}),
	ComponentReact: componentBase.Extend(schema.Schema{
		FieldPath:       req(schema.String()),
		FieldParameters: opt(schema.Map()),
	}),
	ComponentImage: componentBase.Extend(schema.Schema{
		FieldPath: req(schema.String()),
		"style":   opt(schema.Map()),
	}),
	ComponentWebsite: componentBase.Extend(schema.Schema{
		FieldPath:       req(schema.String()),
		FieldParameters: opt(schema.Map()),
	}),
	ComponentQuestionnaire: componentBase,
	ComponentVega: componentBase.Extend(schema.Schema{
		FieldPath: opt(schema.String()),
		"config":  opt(schema.Map()),
	}),
}

// ResponseKinds lists the known response kinds in sorted order.
func ResponseKinds() []ResponseKind {
	kinds := make([]ResponseKind, 0, len(responseSchemas))
	for k := range responseSchemas {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ComponentKinds lists the known component kinds in sorted order.
func ComponentKinds() []ComponentKind {
	kinds := make([]ComponentKind, 0, len(componentSchemas))
	for k := range componentSchemas {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ResponseSchema returns the legal fields of a response kind, without "type".
func ResponseSchema(kind ResponseKind) (schema.Schema, bool) {
	s, ok := responseSchemas[kind]
	return s, ok
}

// ComponentSchema returns the legal fields of a component kind, without "type"
// and "response".
func ComponentSchema(kind ComponentKind) (schema.Schema, bool) {
	s, ok := componentSchemas[kind]
	return s, ok
}

func parseResponseKind(v any) (ResponseKind, error) {
	var s string
	switch k := v.(type) {
	case nil:
		return "", &ValidationError{Entity: "response", Field: FieldType, Msg: "type is required"}
	case ResponseKind:
		s = string(k)
	case string:
		s = k
	default:
		return "", &ValidationError{Entity: "response", Field: FieldType, Msg: fmt.Sprintf("expected string, got %T", v)}
	}
	kind := ResponseKind(s)
	if _, ok := responseSchemas[kind]; !ok {
		return "", &ValidationError{
			Entity: "response",
			Field:  FieldType,
			Msg:    fmt.Sprintf("unexpected type %q, valid types are %v", s, ResponseKinds()),
		}
	}
	return kind, nil
}

func parseComponentKind(v any) (ComponentKind, error) {
	var s string
	switch k := v.(type) {
	case nil:
		return "", &ValidationError{Entity: "component", Field: FieldType, Msg: "type is required"}
	case ComponentKind:
		s = string(k)
	case string:
		s = k
	default:
		return "", &ValidationError{Entity: "component", Field: FieldType, Msg: fmt.Sprintf("expected string, got %T", v)}
	}
	kind := ComponentKind(s)
	if _, ok := componentSchemas[kind]; !ok {
		return "", &ValidationError{
			Entity: "component",
			Field:  FieldType,
			Msg:    fmt.Sprintf("unexpected type %q, valid types are %v", s, ComponentKinds()),
		}
	}
	return kind, nil
}

func validateResponseFields(kind ResponseKind, fields Fields) error {
	if err := schema.Validate(responseSchemas[kind], fields); err != nil {
		id, _ := fields[FieldID].(string)
		return &ValidationError{
			Entity: "response",
			Name:   id,
			Kind:   string(kind),
			Field:  firstField(err),
			Err:    err,
		}
	}
	return nil
}

func validateComponentFields(name string, kind ComponentKind, fields Fields) error {
	if err := schema.Validate(componentSchemas[kind], fields); err != nil {
		return &ValidationError{
			Entity: "component",
			Name:   name,
			Kind:   string(kind),
			Field:  firstField(err),
			Err:    err,
		}
	}
	if kind == ComponentVega && fields[FieldPath] == nil && fields["config"] == nil {
		return &ValidationError{
			Entity: "component",
			Name:   name,
			Kind:   string(kind),
			Field:  FieldPath,
			Msg:    "vega components need either path or config",
		}
	}
	return nil
}

func firstField(err error) string {
	if names := schema.FieldNames(err); len(names) > 0 {
		return names[0]
	}
	return ""
}
