package dsl

import (
	"github.com/aretw0/revisit/pkg/domain"
)

// Permute crosses factors against every component of the tree and returns the
// rebuilt tree; s is left untouched.
//
// Each component leaf becomes a new sequence with the given order and sample
// count holding one clone per factor, named "<name>__<column:value>_..." and
// carrying the leaf metadata overlaid with the factor. Nested sequences keep
// their own order and sample count. An empty tree is seeded with the
// placeholder questionnaire first. When the tree holds a single child with a
// single component, the outer layer is dropped and the permuted child is
// returned directly.
//
// Chained calls nest: factor lists of sizes k1..kn yield k1*...*kn leaves.
func (s *Sequence) Permute(factors []domain.Row, order domain.Order, numSamples int) (*Sequence, error) {
	if err := domain.ValidateOrder(order, numSamples); err != nil {
		return nil, err
	}

	src := s
	if len(s.Flatten()) == 0 {
		src = s.derive()
		src.children = append(s.Children(), Ref{Name: domain.PlaceholderName, Component: placeholder()})
	}

	p := permuter{factors: factors, order: order, numSamples: numSamples}
	out := p.sequence(src)

	if len(src.children) == 1 && len(src.Flatten()) == 1 {
		if inner, ok := out.children[0].(*Sequence); ok {
			s.log().Debug("permuted single component", "factors", len(factors), "order", order)
			return inner, nil
		}
	}
	s.log().Debug("permuted sequence", "factors", len(factors), "order", order, "depth", out.Depth())
	return out, nil
}

type permuter struct {
	factors    []domain.Row
	order      domain.Order
	numSamples int
}

func (p permuter) sequence(s *Sequence) *Sequence {
	out := s.derive()
	for _, c := range s.children {
		switch c := c.(type) {
		case Ref:
			if c.Component == nil {
				out.children = append(out.children, c)
				continue
			}
			out.children = append(out.children, p.leaf(s, c.Component))
		case *Sequence:
			out.children = append(out.children, p.sequence(c))
		}
	}
	return out
}

func (p permuter) leaf(parent *Sequence, comp *domain.Component) *Sequence {
	inner := &Sequence{order: p.order, numSamples: p.numSamples, logger: parent.logger}
	for _, f := range p.factors {
		name := comp.Name() + "__" + f.Encode("_")
		inner.children = append(inner.children, Ref{Name: name, Component: comp.Derive(name, f.Map())})
	}
	return inner
}
