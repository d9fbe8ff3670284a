package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/revisit/pkg/domain"
)

// ComponentFunc derives a replacement for a component. It receives the
// component metadata and a copy of the original component.
type ComponentFunc func(metadata map[string]any, original *domain.Component) (*domain.Component, error)

// Map rebuilds the tree with every component replaced by fn's result.
// It is best effort: when fn fails, panics or returns nil the original is kept.
func (s *Sequence) Map(fn ComponentFunc) *Sequence {
	return MapComponents(s, nil, fn)
}

// MapComponents is like Map but resolves each reference in registry first,
// which also lets it transform name-only references.
func MapComponents(s *Sequence, registry map[string]*domain.Component, fn ComponentFunc) *Sequence {
	out := s.derive()
	for _, c := range s.children {
		switch c := c.(type) {
		case Ref:
			comp := c.Component
			if r, ok := registry[c.Name]; ok && r != nil {
				comp = r
			}
			if comp == nil {
				out.children = append(out.children, c)
				continue
			}
			next, err := callSafe(fn, comp)
			if err != nil {
				s.log().Debug("keeping original component", "component", comp.Name(), "err", err)
				out.children = append(out.children, Ref{Name: comp.Name(), Component: comp})
				continue
			}
			out.children = append(out.children, Ref{Name: next.Name(), Component: next})
		case *Sequence:
			out.children = append(out.children, MapComponents(c, registry, fn))
		}
	}
	return out
}

var errNilComponent = errors.New("callback returned no component")

func callSafe(fn ComponentFunc, comp *domain.Component) (next *domain.Component, err error) {
	defer func() {
		if r := recover(); r != nil {
			next, err = nil, fmt.Errorf("callback panicked: %v", r)
		}
	}()
	next, err = fn(comp.Metadata(), comp.Derive(comp.Name(), nil))
	if err == nil && next == nil {
		err = errNilComponent
	}
	return next, err
}
