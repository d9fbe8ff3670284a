package graph

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/dsl"
)

// Overlay marks components to emphasize on the graph.
type Overlay struct {
	Highlight []string
}

// GenerateMermaid produces a Mermaid flowchart of a sequence tree.
// Sequences are hexagons labelled with their order; fixed children are
// numbered. Component shapes follow their kind:
// - Questionnaire: [/Parallelogram/]
// - React component: [[Subroutine]]
// - Markdown: (Rounded)
// - Reference without a component: >Flag] on a dotted edge
// - Default: [Rectangle]
func GenerateMermaid(root *dsl.Sequence, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	if root != nil {
		w := &writer{sb: &sb, declared: make(map[string]bool)}
		w.sequence(root)
		if w.external {
			sb.WriteString("    classDef external stroke-dasharray:4 2;\n")
		}
	}

	if overlay != nil && len(overlay.Highlight) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef highlight fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		seen := make(map[string]bool)
		for _, name := range overlay.Highlight {
			id := sanitizeMermaidID(name)
			if !seen[id] && id != "" {
				seen[id] = true
				sb.WriteString(fmt.Sprintf("    class %s highlight;\n", id))
			}
		}
	}

	return sb.String()
}

type writer struct {
	sb       *strings.Builder
	seq      int
	declared map[string]bool
	external bool
}

func (w *writer) sequence(s *dsl.Sequence) string {
	id := fmt.Sprintf("seq%d", w.seq)
	w.seq++

	label := string(s.Order())
	if s.NumSamples() > 0 {
		label = fmt.Sprintf("%s, %d of %d", label, s.NumSamples(), s.Len())
	}
	w.sb.WriteString(fmt.Sprintf("    %s{{\"%s\"}}\n", id, escape(label)))

	for i, child := range s.Children() {
		var to string
		dotted := false
		switch c := child.(type) {
		case *dsl.Sequence:
			to = w.sequence(c)
		case dsl.Ref:
			to = w.component(c)
			dotted = c.Component == nil
		}

		arrow := "-->"
		if dotted {
			arrow = "-.->"
		}
		if s.Order() == domain.OrderFixed {
			arrow = fmt.Sprintf("-- \"%d\" -->", i+1)
			if dotted {
				arrow = fmt.Sprintf("-. \"%d\" .->", i+1)
			}
		}
		w.sb.WriteString(fmt.Sprintf("    %s %s %s\n", id, arrow, to))
	}
	return id
}

func (w *writer) component(ref dsl.Ref) string {
	id := sanitizeMermaidID(ref.Name)
	if w.declared[id] {
		return id
	}
	w.declared[id] = true

	opener, closer := "[", "]"
	if ref.Component == nil {
		opener = ">"
		w.external = true
	} else {
		switch ref.Component.Kind() {
		case domain.ComponentQuestionnaire:
			opener, closer = "[/", "/]"
		case domain.ComponentReact:
			opener, closer = "[[", "]]"
		case domain.ComponentMarkdown:
			opener, closer = "(", ")"
		}
	}
	w.sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escape(ref.Name), closer))
	if ref.Component == nil {
		w.sb.WriteString(fmt.Sprintf("    class %s external;\n", id))
	}
	return id
}

var unsafeID = regexp.MustCompile(`[^A-Za-z0-9_]`)

func sanitizeMermaidID(id string) string {
	return "c_" + unsafeID.ReplaceAllString(id, "_")
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}
