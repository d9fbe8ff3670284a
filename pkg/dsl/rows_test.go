package dsl_test

import (
	"fmt"
	"testing"

	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scatterTemplate(t *testing.T) *domain.Component {
	t.Helper()
	c, err := domain.NewComponent("jnd", domain.Fields{
		"type":        "react-component",
		"path":        "widgets/Scatter.tsx",
		"description": "datum:label",
		"parameters": map[string]any{
			"r1":     "datum:r1",
			"r2":     "datum:r2",
			"static": "kept",
			"nested": map[string]any{"points": []any{"datum:n", 10}},
		},
	},
		domain.WithResponses(domain.MustResponse(domain.Fields{
			"type":     "likert",
			"id":       "confidence",
			"numItems": "datum:n",
		})),
		domain.WithMetadata(map[string]any{"source": "pilot", "r1": "template"}),
	)
	require.NoError(t, err)
	return c
}

func jndRows() []domain.Row {
	return []domain.Row{
		domain.RowOf("r1", 0.3, "r2", 0.5, "n", 5, "label", "low"),
		domain.RowOf("r1", 0.6, "r2", 0.8, "n", 7, "label", "high"),
		domain.RowOf("r1", 0.9, "r2", 0.1, "n", 3, "label", "mixed"),
	}
}

func TestSequence_FromRows(t *testing.T) {
	src := dsl.MustSequence(domain.OrderRandom, dsl.WithNumSamples(2)).Add(scatterTemplate(t))
	out, err := src.FromRows(jndRows())
	require.NoError(t, err)

	assert.Equal(t, domain.OrderRandom, out.Order())
	assert.Equal(t, 2, out.NumSamples())
	assert.Equal(t, []string{
		"jnd_r1:0.3_r2:0.5_n:5_label:low",
		"jnd_r1:0.6_r2:0.8_n:7_label:high",
		"jnd_r1:0.9_r2:0.1_n:3_label:mixed",
	}, names(out.Flatten()))

	for i, c := range out.Flatten() {
		row := jndRows()[i]
		r1, _ := row.Get("r1")
		n, _ := row.Get("n")
		label, _ := row.Get("label")

		params, _ := c.Get("parameters")
		p := params.(map[string]any)
		assert.Equal(t, r1, p["r1"], c.Name())
		assert.Equal(t, "kept", p["static"])
		assert.Equal(t, []any{n, 10}, p["nested"].(map[string]any)["points"])

		desc, _ := c.Get("description")
		assert.Equal(t, label, desc)

		resp, ok := c.Response("confidence")
		require.True(t, ok)
		items, _ := resp.Get("numItems")
		assert.Equal(t, n, items)

		md := c.Metadata()
		assert.Equal(t, "pilot", md["source"])
		assert.Equal(t, r1, md["r1"], "row values override template metadata")
		assert.Equal(t, label, md["label"])
	}

	t.Run("Template Is Untouched", func(t *testing.T) {
		tmpl, ok := src.Component("jnd")
		require.True(t, ok)
		params, _ := tmpl.Get("parameters")
		assert.Equal(t, "datum:r1", params.(map[string]any)["r1"])
		assert.Equal(t, 1, src.Len())
	})
}

func TestSequence_FromRows_EdgeCases(t *testing.T) {
	t.Run("Zero Rows", func(t *testing.T) {
		out, err := dsl.MustSequence(domain.OrderFixed).Add(scatterTemplate(t)).FromRows(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, out.Len())
	})

	t.Run("Placeholder Template", func(t *testing.T) {
		out, err := dsl.MustSequence(domain.OrderFixed).FromRows([]domain.Row{
			domain.RowOf("a", 1),
			domain.RowOf("a", 2),
		})
		require.NoError(t, err)
		comps := out.Flatten()
		assert.Equal(t, []string{"place-holder-component_a:1", "place-holder-component_a:2"}, names(comps))
		assert.Equal(t, domain.ComponentQuestionnaire, comps[0].Kind())
		assert.Equal(t, map[string]any{"a": 2}, comps[1].Metadata())
	})

	t.Run("Every Template Times Every Row", func(t *testing.T) {
		out, err := dsl.MustSequence(domain.OrderFixed).
			Add(page(t, "a"), page(t, "b")).
			FromRows([]domain.Row{domain.RowOf("k", "x"), domain.RowOf("k", "y")})
		require.NoError(t, err)
		assert.Equal(t, []string{"a_k:x", "a_k:y", "b_k:x", "b_k:y"}, names(out.Flatten()))
	})

	t.Run("Unknown Column", func(t *testing.T) {
		_, err := dsl.MustSequence(domain.OrderFixed).Add(scatterTemplate(t)).FromRows([]domain.Row{domain.RowOf("r1", 1)})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "column", nf.What)
	})

	t.Run("Typed Containers", func(t *testing.T) {
		tmpl := domain.MustComponent("trial", domain.Fields{
			"type":       "website",
			"path":       "https://example.org/task",
			"parameters": map[string]string{"level": "datum:level", "mode": "fixed"},
		}, domain.WithResponses(domain.MustResponse(domain.Fields{
			"type":    "radio",
			"id":      "pick",
			"options": []string{"datum:level", "b"},
		})))

		out, err := dsl.MustSequence(domain.OrderFixed).Add(tmpl).FromRows([]domain.Row{domain.RowOf("level", "easy")})
		require.NoError(t, err)
		c := out.Flatten()[0]

		params, _ := c.Get("parameters")
		assert.Equal(t, map[string]any{"level": "easy", "mode": "fixed"}, params)
		r, ok := c.Response("pick")
		require.True(t, ok)
		options, _ := r.Get("options")
		assert.Equal(t, []any{"easy", "b"}, options)
	})

	t.Run("Substituted Value Must Fit Field", func(t *testing.T) {
		tmpl := domain.MustComponent("img", domain.Fields{"type": "image", "path": "datum:file"})
		_, err := dsl.MustSequence(domain.OrderFixed).Add(tmpl).FromRows([]domain.Row{domain.RowOf("file", 42)})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestSequence_Generate(t *testing.T) {
	rows := []domain.Row{
		domain.RowOf("id", 1, "file", "assets/a.png"),
		domain.RowOf("id", 2, "file", "assets/b.png"),
	}
	s := dsl.MustSequence(domain.OrderRandom).Add(page(t, "intro"))

	out, err := s.Generate(rows, "datum:id", domain.Fields{
		"type":  "image",
		"path":  "datum:file",
		"style": map[string]any{"width": "50%"},
	})
	require.NoError(t, err)
	assert.Same(t, s, out)
	assert.Equal(t, []string{"intro", "1", "2"}, names(out.Flatten()))

	img, ok := out.Component("2")
	require.True(t, ok)
	path, _ := img.Get("path")
	assert.Equal(t, "assets/b.png", path)
	assert.Equal(t, map[string]any{"id": 2, "file": "assets/b.png"}, img.Metadata())

	t.Run("Literal Name Collides", func(t *testing.T) {
		s := dsl.MustSequence(domain.OrderFixed)
		_, err := s.Generate(rows, "same", domain.Fields{"type": "questionnaire"})
		require.NoError(t, err)
		assert.Equal(t, []string{"same", "same"}, s.Refs())
	})

	t.Run("Missing Column", func(t *testing.T) {
		_, err := dsl.MustSequence(domain.OrderFixed).Generate(rows, "datum:nope", domain.Fields{"type": "questionnaire"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Invalid Component", func(t *testing.T) {
		_, err := dsl.MustSequence(domain.OrderFixed).Generate(rows, "x-datum", domain.Fields{"type": "markdown"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func ExampleSequence_FromRows() {
	tmpl := domain.MustComponent("trial", domain.Fields{
		"type":       "website",
		"path":       "https://example.org/task",
		"parameters": map[string]any{"level": "datum:level"},
	})
	out, _ := dsl.MustSequence(domain.OrderRandom).Add(tmpl).FromRows([]domain.Row{
		domain.RowOf("level", "easy"),
		domain.RowOf("level", "hard"),
	})
	fmt.Println(out.Refs())
	// Output: [trial_level:easy trial_level:hard]
}
