package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/dsl"
	"github.com/aretw0/revisit/pkg/study"
)

// Summary describes a built study as markdown: metadata, a count of
// components per kind and an outline of the sequence tree.
func Summary(doc *study.Document) string {
	var sb strings.Builder
	md := doc.StudyMetadata

	fmt.Fprintf(&sb, "# %s\n\n", md.Title)
	if md.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", md.Description)
	}
	fmt.Fprintf(&sb, "- **Version:** %s\n", md.Version)
	fmt.Fprintf(&sb, "- **Date:** %s\n", md.Date)
	if len(md.Authors) > 0 {
		fmt.Fprintf(&sb, "- **Authors:** %s\n", strings.Join(md.Authors, ", "))
	}
	if len(doc.ImportedLibraries) > 0 {
		fmt.Fprintf(&sb, "- **Libraries:** %s\n", strings.Join(doc.ImportedLibraries, ", "))
	}

	kinds := make(map[domain.ComponentKind]int)
	responses := make(map[domain.ComponentKind]int)
	for _, c := range doc.Components {
		kinds[c.Kind()]++
		responses[c.Kind()] += len(c.Responses())
	}
	keys := make([]string, 0, len(kinds))
	for k := range kinds {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	fmt.Fprintf(&sb, "\n## Components (%d)\n\n", len(doc.Components))
	sb.WriteString("| Kind | Components | Responses |\n|---|---|---|\n")
	for _, k := range keys {
		kind := domain.ComponentKind(k)
		fmt.Fprintf(&sb, "| %s | %d | %d |\n", k, kinds[kind], responses[kind])
	}

	if doc.Sequence != nil {
		fmt.Fprintf(&sb, "\n## Sequence (depth %d)\n\n", doc.Sequence.Depth())
		outline(&sb, doc.Sequence, 0)
	}
	return sb.String()
}

func outline(sb *strings.Builder, s *dsl.Sequence, depth int) {
	indent := strings.Repeat("  ", depth)
	label := string(s.Order())
	if s.NumSamples() > 0 {
		label = fmt.Sprintf("%s, %d of %d", label, s.NumSamples(), s.Len())
	}
	fmt.Fprintf(sb, "%s- *%s*\n", indent, label)
	for _, child := range s.Children() {
		switch c := child.(type) {
		case *dsl.Sequence:
			outline(sb, c, depth+1)
		case dsl.Ref:
			fmt.Fprintf(sb, "%s  - `%s`\n", indent, c.Name)
		}
	}
}
