package domain_test

import (
	"testing"

	"github.com/aretw0/revisit/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionnaire(t *testing.T, responses ...*domain.Response) *domain.Component {
	t.Helper()
	c, err := domain.NewComponent("survey", domain.Fields{"type": "questionnaire"}, domain.WithResponses(responses...))
	require.NoError(t, err)
	return c
}

func TestNewResponseContext(t *testing.T) {
	t.Run("Wildcard First Then Sorted Kinds", func(t *testing.T) {
		ctx, err := domain.NewResponseContext(map[string]domain.Fields{
			"shortText": {"placeholder": "type here"},
			"all":       {"required": true},
			"likert":    {"leftLabel": "low"},
		})
		require.NoError(t, err)
		require.Len(t, ctx, 3)
		assert.Equal(t, "all", ctx[0].Kind)
		assert.Equal(t, "likert", ctx[1].Kind)
		assert.Equal(t, "shortText", ctx[2].Kind)
	})

	t.Run("Unknown Kind", func(t *testing.T) {
		_, err := domain.NewResponseContext(map[string]domain.Fields{"numeric": {"min": 0}})
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "numerical")
	})

	t.Run("Kind Rule Fields Are Checked", func(t *testing.T) {
		_, err := domain.NewResponseContext(map[string]domain.Fields{"likert": {"placeholder": "n/a"}})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "responseContext", ve.Entity)
		assert.Equal(t, "placeholder", ve.Field)

		_, err = domain.NewResponseContext(map[string]domain.Fields{"numerical": {"min": "zero"}})
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = domain.NewResponseContext(map[string]domain.Fields{
			"numerical": {"min": "datum:low", "prompt": nil},
			"all":       {"placeholder": "n/a"},
		})
		assert.NoError(t, err, "placeholders, nil fields and wildcard extras are allowed")
	})
}

func TestApplyResponseContext(t *testing.T) {
	t.Run("Numeric Defaults Then Overwrite", func(t *testing.T) {
		c := questionnaire(t, domain.MustResponse(domain.Fields{"type": "numerical", "id": "q1", "max": 100}))
		ctx, err := domain.NewResponseContext(map[string]domain.Fields{"numerical": {"min": 0}})
		require.NoError(t, err)

		require.NoError(t, c.ApplyResponseContext(ctx))
		r, ok := c.Response("q1")
		require.True(t, ok)
		want := domain.Fields{"type": "numerical", "id": "q1", "max": 100, "min": 0}
		if diff := cmp.Diff(want, r.Fields()); diff != "" {
			t.Errorf("after context (-want +got):\n%s", diff)
		}

		require.NoError(t, c.EditResponse("q1", domain.Fields{"max": 50}))
		r, _ = c.Response("q1")
		max, _ := r.Get("max")
		assert.Equal(t, 50, max)
	})

	t.Run("Never Overwrites Set Fields", func(t *testing.T) {
		c := questionnaire(t, domain.MustResponse(domain.Fields{"type": "shortText", "id": "name", "required": true}))
		ctx, err := domain.NewResponseContext(map[string]domain.Fields{
			"all":       {"required": false},
			"shortText": {"required": false},
		})
		require.NoError(t, err)

		require.NoError(t, c.ApplyResponseContext(ctx))
		r, _ := c.Response("name")
		required, _ := r.Get("required")
		assert.Equal(t, true, required)
	})

	t.Run("Kind Rule Wins Over Wildcard", func(t *testing.T) {
		c := questionnaire(t,
			domain.MustResponse(domain.Fields{"type": "shortText", "id": "a"}),
			domain.MustResponse(domain.Fields{"type": "numerical", "id": "b"}),
		)
		ctx, err := domain.NewResponseContext(map[string]domain.Fields{
			"all":       {"placeholder": "generic"},
			"shortText": {"placeholder": "specific"},
		})
		require.NoError(t, err)
		require.NoError(t, c.ApplyResponseContext(ctx))

		a, _ := c.Response("a")
		b, _ := c.Response("b")
		pa, _ := a.Get("placeholder")
		pb, _ := b.Get("placeholder")
		assert.Equal(t, "specific", pa)
		assert.Equal(t, "generic", pb)
	})

	t.Run("Wildcard Skips Fields A Kind Lacks", func(t *testing.T) {
		c := questionnaire(t, domain.MustResponse(domain.Fields{"type": "likert", "id": "l", "numItems": 5}))
		ctx, err := domain.NewResponseContext(map[string]domain.Fields{
			"all": {"placeholder": "n/a", "required": true},
		})
		require.NoError(t, err)
		require.NoError(t, c.ApplyResponseContext(ctx))

		r, _ := c.Response("l")
		_, ok := r.Get("placeholder")
		assert.False(t, ok)
		required, _ := r.Get("required")
		assert.Equal(t, true, required)
	})

	t.Run("Kind Rule Is Strict", func(t *testing.T) {
		c := questionnaire(
			t,
			domain.MustResponse(domain.Fields{"type": "shortText", "id": "ok"}),
			domain.MustResponse(domain.Fields{"type": "likert", "id": "l", "numItems": 5}),
		)
		ctx := domain.ResponseContext{
			{Kind: "all", Fields: domain.Fields{"required": true}},
			{Kind: "likert", Fields: domain.Fields{"placeholder": "bad"}},
		}

		err := c.ApplyResponseContext(ctx)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "response[1].placeholder", ve.Field)

		r, _ := c.Response("ok")
		_, ok := r.Get("required")
		assert.False(t, ok, "failed application must not leave partial changes")
	})

	t.Run("Defaults Resolution", func(t *testing.T) {
		ctx, err := domain.NewResponseContext(map[string]domain.Fields{
			"all":       {"required": true, "min": 1},
			"numerical": {"min": 5},
		})
		require.NoError(t, err)
		assert.Equal(t, domain.Fields{"required": true, "min": 5}, ctx.Defaults(domain.ResponseNumerical))
		assert.Equal(t, domain.Fields{"required": true}, ctx.Defaults(domain.ResponseShortText))
	})
}
