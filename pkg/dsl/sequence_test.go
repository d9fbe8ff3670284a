package dsl_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/revisit/pkg/domain"
	"github.com/aretw0/revisit/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(t *testing.T, name string) *domain.Component {
	t.Helper()
	c, err := domain.NewComponent(name, domain.Fields{"type": "markdown", "path": "assets/" + name + ".md"})
	require.NoError(t, err)
	return c
}

func names(cs []*domain.Component) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name()
	}
	return out
}

func TestNewSequence(t *testing.T) {
	s, err := dsl.NewSequence(domain.OrderRandom, dsl.WithNumSamples(2))
	require.NoError(t, err)
	assert.Equal(t, domain.OrderRandom, s.Order())
	assert.Equal(t, 2, s.NumSamples())
	assert.Equal(t, 0, s.Len())

	_, err = dsl.NewSequence("shuffle")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = dsl.NewSequence(domain.OrderCustom)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Panics(t, func() { dsl.MustSequence("shuffle") })
}

func TestSequence_Concat(t *testing.T) {
	intro, trial, outro := page(t, "intro"), page(t, "trial"), page(t, "outro")

	inner := dsl.MustSequence(domain.OrderRandom).Add(trial).AddRef("$vlat.se.full")
	root := dsl.MustSequence(domain.OrderFixed).
		Add(intro).
		Concat(inner).
		Concat(dsl.Ref{Component: outro})

	assert.Equal(t, 3, root.Len())
	assert.Equal(t, 2, root.Depth())
	assert.Equal(t, []string{"intro", "trial", "outro"}, names(root.Flatten()))
	assert.Equal(t, []string{"intro", "trial", "$vlat.se.full", "outro"}, root.Refs())

	got, ok := root.Component("trial")
	require.True(t, ok)
	assert.Same(t, trial, got)
	_, ok = root.Component("$vlat.se.full")
	assert.False(t, ok)

	t.Run("Cycles Are Ignored", func(t *testing.T) {
		root.Concat(root)
		inner.Concat(root)
		assert.Equal(t, 3, root.Len())
		assert.Equal(t, 2, inner.Len())
	})

	t.Run("Empty Children Are Ignored", func(t *testing.T) {
		s := dsl.MustSequence(domain.OrderFixed).Concat(nil, dsl.Ref{}).Add(nil).AddRef("")
		assert.Equal(t, 0, s.Len())
	})
}

func TestSequence_MarshalJSON(t *testing.T) {
	inner := dsl.MustSequence(domain.OrderCustom, dsl.WithNumSamples(1)).Add(page(t, "a"), page(t, "b"))
	root := dsl.MustSequence(domain.OrderFixed).Add(page(t, "intro")).Concat(inner).AddRef("$lib.comp")

	data, err := json.Marshal(root)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"order": "fixed",
		"components": [
			"intro",
			{"order": "custom", "numSamples": 1, "components": ["a", "b"]},
			"$lib.comp"
		]
	}`, string(data))

	empty, err := json.Marshal(dsl.MustSequence(domain.OrderRandom))
	require.NoError(t, err)
	assert.JSONEq(t, `{"order": "random", "components": []}`, string(empty))
}
