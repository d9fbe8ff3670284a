package study

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/revisit/internal/logging"
	"github.com/aretw0/revisit/internal/validator"
	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/dsl"
)

// DefaultSchema is the study config schema the generated documents target.
const DefaultSchema = "https://raw.githubusercontent.com/revisit-studies/study/v2.0.0-rc1/src/parser/StudyConfigSchema.json"

// Study gathers everything needed to assemble a study document.
type Study struct {
	schema     string
	metadata   domain.StudyMetadata
	ui         domain.UIConfig
	sequence   *dsl.Sequence
	components []*domain.Component
	libraries  []string
	context    domain.ResponseContext
	logger     *slog.Logger
}

// Option configures a Study.
type Option func(*Study)

// WithLogger sets the logger used during assembly and saving.
func WithLogger(l *slog.Logger) Option {
	return func(s *Study) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSchema overrides DefaultSchema.
func WithSchema(url string) Option {
	return func(s *Study) { s.schema = url }
}

// WithComponents registers components outside the sequence tree. They win
// over sequence components with the same name.
func WithComponents(components ...*domain.Component) Option {
	return func(s *Study) { s.components = append(s.components, components...) }
}

// WithImportedLibraries declares runner libraries. References of the form
// "$<library>.<component>" resolve against them.
func WithImportedLibraries(libraries ...string) Option {
	return func(s *Study) { s.libraries = append(s.libraries, libraries...) }
}

// WithResponseContext sets defaults applied to every response at build time.
func WithResponseContext(ctx domain.ResponseContext) Option {
	return func(s *Study) { s.context = ctx }
}

// New creates a study.
func New(metadata domain.StudyMetadata, ui domain.UIConfig, sequence *dsl.Sequence, opts ...Option) *Study {
	s := &Study{
		schema:   DefaultSchema,
		metadata: metadata,
		ui:       ui,
		sequence: sequence,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sequence returns the root sequence.
func (s *Study) Sequence() *dsl.Sequence { return s.sequence }

// Build assembles the document. Components are collected from the sequence
// tree and the explicit list, copied, given the response context and checked
// against every reference in the tree. The study itself is not modified.
func (s *Study) Build() (*Document, error) {
	if err := s.metadata.Validate(); err != nil {
		return nil, err
	}
	if err := s.ui.Validate(); err != nil {
		return nil, err
	}
	if s.sequence == nil {
		return nil, &domain.StructuralError{Kind: "invalid_sequence", Msg: "study has no sequence"}
	}

	registry := make(map[string]*domain.Component)
	origins := make(map[string]*domain.Component)
	var names []string
	add := func(c *domain.Component, source string) {
		prev, dup := origins[c.Name()]
		if prev == c {
			return
		}
		if dup {
			s.logger.Warn("duplicate component name", "component", c.Name(), "source", source)
		} else {
			names = append(names, c.Name())
		}
		origins[c.Name()] = c
		registry[c.Name()] = c.Derive(c.Name(), nil)
	}
	for _, c := range s.sequence.Flatten() {
		add(c, "sequence")
	}
	for _, c := range s.components {
		if c != nil {
			add(c, "explicit")
		}
	}

	for _, name := range names {
		if err := registry[name].ApplyResponseContext(s.context); err != nil {
			return nil, fmt.Errorf("failed to apply response context to %q: %w", name, err)
		}
	}

	known := make(map[string]*domain.Component, len(registry))
	for k, v := range registry {
		known[k] = v
	}
	for _, ref := range s.sequence.Refs() {
		if s.isLibraryRef(ref) {
			known[ref] = nil
		}
	}
	if err := validator.ValidateSequence(s.sequence, known); err != nil {
		return nil, err
	}

	s.logger.Debug("built study",
		"title", s.metadata.Title,
		"components", len(names),
		"depth", s.sequence.Depth(),
	)

	return &Document{
		Schema:            s.schema,
		StudyMetadata:     s.metadata,
		UIConfig:          s.ui,
		ImportedLibraries: append([]string(nil), s.libraries...),
		Components:        registry,
		Sequence:          s.sequence,
		names:             names,
		logger:            s.logger,
	}, nil
}

func (s *Study) isLibraryRef(ref string) bool {
	for _, lib := range s.libraries {
		if strings.HasPrefix(ref, "$"+lib+".") {
			return true
		}
	}
	return false
}
