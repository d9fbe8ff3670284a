package dsl

import (
	"encoding/json"
	"log/slog"

	"github.com/aretw0/revisit/internal/logging"
	"github.com/aretw0/revisit/pkg/domain"
)

// Child is an element of a sequence: a Ref or a nested *Sequence.
type Child interface {
	child()
}

// Ref points at a component by name. Component is nil for references to
// components defined outside the tree, such as imported library entries.
type Ref struct {
	Name      string
	Component *domain.Component
}

func (Ref) child() {}

// Sequence is an ordering group of components and nested sequences.
// The study runner applies the order; this package only records it.
type Sequence struct {
	order      domain.Order
	numSamples int
	children   []Child
	logger     *slog.Logger
}

func (*Sequence) child() {}

// Option configures a Sequence.
type Option func(*Sequence)

// WithNumSamples sets how many children the runner draws.
func WithNumSamples(n int) Option {
	return func(s *Sequence) { s.numSamples = n }
}

// WithLogger sets the logger used by tree transforms.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sequence) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSequence creates an empty sequence with the given order.
func NewSequence(order domain.Order, opts ...Option) (*Sequence, error) {
	s := &Sequence{order: order, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if err := domain.ValidateOrder(s.order, s.numSamples); err != nil {
		return nil, err
	}
	return s, nil
}

// MustSequence is like NewSequence but panics on error.
func MustSequence(order domain.Order, opts ...Option) *Sequence {
	s, err := NewSequence(order, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Order returns the presentation policy.
func (s *Sequence) Order() domain.Order { return s.order }

// NumSamples returns the sample count, zero meaning all children.
func (s *Sequence) NumSamples() int { return s.numSamples }

// Children returns a copy of the direct children.
func (s *Sequence) Children() []Child { return append([]Child(nil), s.children...) }

// Len returns the number of direct children.
func (s *Sequence) Len() int { return len(s.children) }

// Concat appends children and returns s for chaining.
// A sequence cannot contain itself.
func (s *Sequence) Concat(children ...Child) *Sequence {
	for _, c := range children {
		switch c := c.(type) {
		case *Sequence:
			if c == nil {
				continue
			}
			if c == s || c.contains(s) {
				s.log().Warn("ignoring cyclic sequence", "order", c.order)
				continue
			}
		case Ref:
			if c.Name == "" && c.Component != nil {
				c.Name = c.Component.Name()
			}
			if c.Name == "" {
				continue
			}
			s.children = append(s.children, c)
			continue
		case nil:
			continue
		}
		s.children = append(s.children, c)
	}
	return s
}

// Add appends components and returns s for chaining.
func (s *Sequence) Add(components ...*domain.Component) *Sequence {
	for _, c := range components {
		if c != nil {
			s.children = append(s.children, Ref{Name: c.Name(), Component: c})
		}
	}
	return s
}

// AddRef appends references to components defined outside the tree.
func (s *Sequence) AddRef(names ...string) *Sequence {
	for _, n := range names {
		if n != "" {
			s.children = append(s.children, Ref{Name: n})
		}
	}
	return s
}

// Flatten collects every component held by the tree, depth first, in order.
func (s *Sequence) Flatten() []*domain.Component {
	var out []*domain.Component
	s.walk(func(r Ref) {
		if r.Component != nil {
			out = append(out, r.Component)
		}
	})
	return out
}

// Components is an alias of Flatten.
func (s *Sequence) Components() []*domain.Component { return s.Flatten() }

// Refs returns every referenced name, depth first, in order.
func (s *Sequence) Refs() []string {
	var out []string
	s.walk(func(r Ref) { out = append(out, r.Name) })
	return out
}

// Component returns the first component in the tree with the given name.
func (s *Sequence) Component(name string) (*domain.Component, bool) {
	for _, c := range s.Flatten() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Depth returns the nesting depth, 1 for a sequence without nested sequences.
func (s *Sequence) Depth() int {
	deepest := 0
	for _, c := range s.children {
		if sub, ok := c.(*Sequence); ok {
			deepest = max(deepest, sub.Depth())
		}
	}
	return deepest + 1
}

func (s *Sequence) walk(fn func(Ref)) {
	for _, c := range s.children {
		switch c := c.(type) {
		case Ref:
			fn(c)
		case *Sequence:
			c.walk(fn)
		}
	}
}

func (s *Sequence) contains(target *Sequence) bool {
	for _, c := range s.children {
		if sub, ok := c.(*Sequence); ok {
			if sub == target || sub.contains(target) {
				return true
			}
		}
	}
	return false
}

func (s *Sequence) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger
}

// derive returns an empty sequence with the same order, sample count and logger.
func (s *Sequence) derive() *Sequence {
	return &Sequence{order: s.order, numSamples: s.numSamples, logger: s.logger}
}

type sequenceJSON struct {
	Order      domain.Order `json:"order"`
	Components []any        `json:"components"`
	NumSamples int          `json:"numSamples,omitempty"`
}

// MarshalJSON emits the sequence with components replaced by their names.
func (s *Sequence) MarshalJSON() ([]byte, error) {
	out := sequenceJSON{
		Order:      s.order,
		Components: make([]any, 0, len(s.children)),
		NumSamples: s.numSamples,
	}
	for _, c := range s.children {
		switch c := c.(type) {
		case Ref:
			out.Components = append(out.Components, c.Name)
		case *Sequence:
			out.Components = append(out.Components, c)
		}
	}
	return json.Marshal(out)
}
