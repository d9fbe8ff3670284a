// Package recipe loads declarative study recipes written in YAML or JSON.
//
// A recipe names its components once, lets later components inherit from
// earlier ones through "base", and describes the sequence tree with the same
// vocabulary as the dsl package:
//
//	studyMetadata:
//	  title: JND
//	  version: pilot
//	  authors: [Ada]
//	  date: "2024-11-05"
//	  description: Scatterplot discrimination
//	  organizations: [VDL]
//	uiConfig:
//	  contactEmail: contact@revisit.dev
//	  logoPath: assets/logo.svg
//	  withProgressBar: true
//	  sidebar: true
//	responseContext:
//	  all: {required: true}
//	components:
//	  - name: trial
//	    type: react-component
//	    path: assets/Scatter.tsx
//	    parameters: {r: "datum:r"}
//	sequence:
//	  order: fixed
//	  components:
//	    - order: random
//	      components: [trial]
//	      data: jnd.csv
//
// Sequence children are component names or nested sequences. A name that is
// not declared in the recipe is kept as a reference to be resolved at build
// time, typically against an imported library. Components are emitted only
// when the sequence uses them; the others serve as bases.
package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/revisit/internal/logging"
	"github.com/aretw0/revisit/pkg/adapters/csv"
	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/dsl"
	"github.com/aretw0/revisit/pkg/study"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Recipe is the decoded form of a recipe file.
type Recipe struct {
	Schema            string                    `mapstructure:"$schema"`
	StudyMetadata     map[string]any            `mapstructure:"studyMetadata"`
	UIConfig          map[string]any            `mapstructure:"uiConfig"`
	ImportedLibraries []string                  `mapstructure:"importedLibraries"`
	ResponseContext   map[string]map[string]any `mapstructure:"responseContext"`
	Components        []ComponentSpec           `mapstructure:"components"`
	Sequence          SequenceSpec              `mapstructure:"sequence"`

	// Dir resolves relative data files. Load sets it to the recipe directory.
	Dir string `mapstructure:"-"`
}

// ComponentSpec declares a named component. Keys other than the reserved
// ones below are component fields.
type ComponentSpec struct {
	Name     string           `mapstructure:"name"`
	Base     string           `mapstructure:"base"`
	Metadata map[string]any   `mapstructure:"metadata"`
	Response []map[string]any `mapstructure:"response"`
	Fields   map[string]any   `mapstructure:",remain"`
}

// SequenceSpec declares a sequence node. Data rows and permutations apply in
// that order after the children are collected. Data is a CSV file; inline
// rows take their columns in sorted order.
type SequenceSpec struct {
	Order      string           `mapstructure:"order"`
	NumSamples int              `mapstructure:"numSamples"`
	Components []any            `mapstructure:"components"`
	Data       string           `mapstructure:"data"`
	Rows       []map[string]any `mapstructure:"rows"`
	Permute    []PermuteSpec    `mapstructure:"permute"`
}

// PermuteSpec is one factorial step. Factor columns are taken in sorted order.
type PermuteSpec struct {
	Factors    []map[string]any `mapstructure:"factors"`
	Order      string           `mapstructure:"order"`
	NumSamples int              `mapstructure:"numSamples"`
}

// Load reads a recipe file. Files ending in .json are parsed as JSON, anything
// else as YAML.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe: %w", err)
	}
	format := "yaml"
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = "json"
	}
	r, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.Dir = filepath.Dir(path)
	return r, nil
}

// Parse decodes recipe data in the given format ("json" or "yaml").
func Parse(data []byte, format string) (*Recipe, error) {
	var raw map[string]any
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse recipe JSON: %w", err)
		}
		raw, _ = numbers(raw).(map[string]any)
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse recipe YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported recipe format %q", format)
	}

	var r Recipe
	if err := decode(raw, &r); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}
	return &r, nil
}

// numbers turns JSON numbers into ints when they are written without a
// fraction or exponent, and into float64 otherwise, matching YAML decoding.
func numbers(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := strconv.Atoi(x.String()); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case map[string]any:
		for k, e := range x {
			x[k] = numbers(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = numbers(e)
		}
		return x
	default:
		return v
	}
}

func decode(in any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// Option configures Study.
type Option func(*builder)

// WithLogger sets the logger handed to the sequences and the study.
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		b.logger = logger
	}
}

type builder struct {
	recipe     *Recipe
	logger     *slog.Logger
	components map[string]*domain.Component
}

// Study resolves the recipe into a study ready to build.
func (r *Recipe) Study(opts ...Option) (*study.Study, error) {
	b := &builder{recipe: r, components: make(map[string]*domain.Component)}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}

	md, err := domain.NewStudyMetadata(r.StudyMetadata)
	if err != nil {
		return nil, err
	}
	ui, err := domain.NewUIConfig(r.UIConfig)
	if err != nil {
		return nil, err
	}

	rules := make(map[string]domain.Fields, len(r.ResponseContext))
	for kind, fields := range r.ResponseContext {
		rules[kind] = domain.Fields(fields)
	}
	ctx, err := domain.NewResponseContext(rules)
	if err != nil {
		return nil, err
	}

	for i, spec := range r.Components {
		if err := b.component(spec); err != nil {
			return nil, fmt.Errorf("components[%d]: %w", i, err)
		}
	}

	seq, err := b.sequence(r.Sequence, "sequence")
	if err != nil {
		return nil, err
	}

	studyOpts := []study.Option{
		study.WithLogger(b.logger),
		study.WithResponseContext(ctx),
		study.WithImportedLibraries(r.ImportedLibraries...),
	}
	if r.Schema != "" {
		studyOpts = append(studyOpts, study.WithSchema(r.Schema))
	}
	return study.New(md, ui, seq, studyOpts...), nil
}

func (b *builder) component(spec ComponentSpec) error {
	if spec.Name == "" {
		return &domain.ValidationError{Entity: "component", Field: "name", Msg: "name is required"}
	}
	if _, dup := b.components[spec.Name]; dup {
		return &domain.ValidationError{Entity: "component", Name: spec.Name, Field: "name", Msg: "duplicate component name"}
	}

	var opts []domain.ComponentOption
	if spec.Base != "" {
		base, ok := b.components[spec.Base]
		if !ok {
			return &domain.NotFoundError{What: "base component", Key: spec.Base, In: spec.Name}
		}
		opts = append(opts, domain.WithBase(base))
	}
	if spec.Metadata != nil {
		opts = append(opts, domain.WithMetadata(spec.Metadata))
	}
	if spec.Response != nil {
		responses := make([]*domain.Response, 0, len(spec.Response))
		for i, fields := range spec.Response {
			r, err := domain.NewResponse(domain.Fields(fields))
			if err != nil {
				return fmt.Errorf("component %q response[%d]: %w", spec.Name, i, err)
			}
			responses = append(responses, r)
		}
		opts = append(opts, domain.WithResponses(responses...))
	}

	c, err := domain.NewComponent(spec.Name, domain.Fields(spec.Fields), opts...)
	if err != nil {
		return err
	}
	b.components[spec.Name] = c
	return nil
}

func (b *builder) sequence(spec SequenceSpec, path string) (*dsl.Sequence, error) {
	order := domain.Order(spec.Order)
	if order == "" {
		order = domain.OrderFixed
	}
	seq, err := dsl.NewSequence(order, dsl.WithNumSamples(spec.NumSamples), dsl.WithLogger(b.logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for i, child := range spec.Components {
		at := fmt.Sprintf("%s.components[%d]", path, i)
		switch child := child.(type) {
		case string:
			if c, ok := b.components[child]; ok {
				seq.Add(c)
			} else {
				seq.AddRef(child)
			}
		case map[string]any:
			var nested SequenceSpec
			if err := decode(child, &nested); err != nil {
				return nil, fmt.Errorf("%s: %w", at, err)
			}
			inner, err := b.sequence(nested, at)
			if err != nil {
				return nil, err
			}
			seq.Concat(inner)
		default:
			return nil, fmt.Errorf("%s: expected a component name or a sequence, got %T", at, child)
		}
	}

	rows, err := b.rows(spec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if rows != nil {
		if seq, err = seq.FromRows(rows); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	for i, step := range spec.Permute {
		factors := make([]domain.Row, len(step.Factors))
		for j, f := range step.Factors {
			factors[j] = domain.RowFromMap(f)
		}
		order := domain.Order(step.Order)
		if order == "" {
			order = domain.OrderFixed
		}
		if seq, err = seq.Permute(factors, order, step.NumSamples); err != nil {
			return nil, fmt.Errorf("%s.permute[%d]: %w", path, i, err)
		}
	}
	return seq, nil
}

// rows returns the data rows of spec, nil when it declares none. Inline rows
// follow the file rows.
func (b *builder) rows(spec SequenceSpec) ([]domain.Row, error) {
	if spec.Data == "" && spec.Rows == nil {
		return nil, nil
	}
	var rows []domain.Row
	if spec.Data != "" {
		path := spec.Data
		if !filepath.IsAbs(path) && b.recipe.Dir != "" {
			path = filepath.Join(b.recipe.Dir, path)
		}
		loaded, err := csv.Load(path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, loaded...)
	}
	for _, r := range spec.Rows {
		rows = append(rows, domain.RowFromMap(r))
	}
	if rows == nil {
		rows = []domain.Row{}
	}
	return rows, nil
}
