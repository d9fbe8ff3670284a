package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/dsl"
)

// ValidateSequence checks that every name referenced by the tree is present in
// registry and that every sequence carries a valid order. All problems are
// reported together as a *domain.StructuralError.
func ValidateSequence(root *dsl.Sequence, registry map[string]*domain.Component) error {
	if root == nil {
		return &domain.StructuralError{Kind: "invalid_sequence", Msg: "study has no sequence"}
	}

	var errors []string
	reported := make(map[string]bool)
	kind := "missing_component"

	// Crawl breadth first so shallow problems are listed first.
	queue := []*dsl.Sequence{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if err := domain.ValidateOrder(current.Order(), current.NumSamples()); err != nil {
			errors = append(errors, err.Error())
			kind = "invalid_sequence"
		}

		for _, c := range current.Children() {
			switch c := c.(type) {
			case dsl.Ref:
				if _, ok := registry[c.Name]; ok || reported[c.Name] {
					continue
				}
				reported[c.Name] = true
				errors = append(errors, fmt.Sprintf("Missing component: '%s'", c.Name))
			case *dsl.Sequence:
				queue = append(queue, c)
			}
		}
	}

	if len(errors) > 0 {
		return &domain.StructuralError{
			Kind: kind,
			Msg:  fmt.Sprintf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- ")),
		}
	}

	return nil
}
