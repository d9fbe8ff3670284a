package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/revisit/internal/presentation/graph"
	"github.com/aretw0/revisit/internal/presentation/tui"
	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/schema"
)

// RunGraph writes the Mermaid flowchart of a recipe's sequence tree.
func RunGraph(w io.Writer, path string, highlight []string, logger *slog.Logger) error {
	doc, _, err := LoadDocument(path, logger)
	if err != nil {
		return err
	}
	var overlay *graph.Overlay
	if len(highlight) > 0 {
		overlay = &graph.Overlay{Highlight: highlight}
	}
	_, err = fmt.Fprint(w, graph.GenerateMermaid(doc.Sequence, overlay))
	return err
}

// RunInspect writes a rendered markdown summary of a recipe's study.
// Raw markdown is written when style is "markdown".
func RunInspect(w io.Writer, path, style string, width int, logger *slog.Logger) error {
	doc, _, err := LoadDocument(path, logger)
	if err != nil {
		return err
	}
	summary := tui.Summary(doc)
	if style == "markdown" {
		_, err = fmt.Fprint(w, summary)
		return err
	}

	render, err := tui.NewRenderer(style, width)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := render(summary)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}

// KindSchemas lists the legal fields of every response and component kind.
type KindSchemas struct {
	Responses  map[domain.ResponseKind]schema.Schema  `json:"responses"`
	Components map[domain.ComponentKind]schema.Schema `json:"components"`
}

// RunKinds writes the field schemas of all kinds as JSON. A non-empty kind
// limits the output to the response or component kind of that name.
func RunKinds(w io.Writer, kind string) error {
	out := KindSchemas{
		Responses:  make(map[domain.ResponseKind]schema.Schema),
		Components: make(map[domain.ComponentKind]schema.Schema),
	}
	for _, k := range domain.ResponseKinds() {
		if kind == "" || kind == string(k) {
			out.Responses[k], _ = domain.ResponseSchema(k)
		}
	}
	for _, k := range domain.ComponentKinds() {
		if kind == "" || kind == string(k) {
			out.Components[k], _ = domain.ComponentSchema(k)
		}
	}
	if len(out.Responses)+len(out.Components) == 0 {
		return &domain.NotFoundError{What: "kind", Key: kind}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode kinds: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
