package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/revisit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numerical(t *testing.T, fields domain.Fields) *domain.Response {
	t.Helper()
	f := domain.Fields{"type": "numerical", "id": "q1"}
	for k, v := range fields {
		f[k] = v
	}
	r, err := domain.NewResponse(f)
	require.NoError(t, err)
	return r
}

func TestNewResponse(t *testing.T) {
	t.Run("Valid Numerical", func(t *testing.T) {
		r := numerical(t, domain.Fields{"max": 100, "prompt": "How many?"})
		assert.Equal(t, domain.ResponseNumerical, r.Kind())
		assert.Equal(t, "q1", r.ID())

		max, ok := r.Get("max")
		assert.True(t, ok)
		assert.Equal(t, 100, max)

		_, ok = r.Get("min")
		assert.False(t, ok)
	})

	t.Run("Missing Type", func(t *testing.T) {
		_, err := domain.NewResponse(domain.Fields{"id": "q1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)

		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "type", ve.Field)
		assert.Equal(t, "q1", ve.Name)
	})

	t.Run("Unknown Type Lists Valid Kinds", func(t *testing.T) {
		_, err := domain.NewResponse(domain.Fields{"type": "numeric", "id": "q1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unexpected type "numeric"`)
		assert.Contains(t, err.Error(), "numerical")
		assert.Contains(t, err.Error(), "matrix-radio")
	})

	t.Run("Field Not Legal For Kind", func(t *testing.T) {
		_, err := domain.NewResponse(domain.Fields{
			"type":    "numerical",
			"id":      "q1",
			"options": []any{"a", "b"},
		})
		require.Error(t, err)
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "options", ve.Field)
		assert.Equal(t, "numerical", ve.Kind)
		assert.Contains(t, err.Error(), "unknown field")
	})

	t.Run("Required Kind Field", func(t *testing.T) {
		_, err := domain.NewResponse(domain.Fields{"type": "likert", "id": "q1"})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "numItems", ve.Field)
	})

	t.Run("Wrong Value Type", func(t *testing.T) {
		_, err := domain.NewResponse(domain.Fields{"type": "numerical", "id": "q1", "max": "lots"})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "max", ve.Field)
	})

	t.Run("Row Placeholder Passes Type Checks", func(t *testing.T) {
		r, err := domain.NewResponse(domain.Fields{"type": "likert", "id": "q1", "numItems": "datum:n"})
		require.NoError(t, err)
		v, _ := r.Get("numItems")
		assert.Equal(t, "datum:n", v)
	})

	t.Run("Nil Values Are Dropped", func(t *testing.T) {
		r := numerical(t, domain.Fields{"min": nil})
		_, ok := r.Get("min")
		assert.False(t, ok)
	})

	t.Run("Choice Options", func(t *testing.T) {
		_, err := domain.NewResponse(domain.Fields{
			"type":    "dropdown",
			"id":      "pick",
			"options": []any{"a", map[string]any{"label": "B", "value": "b"}},
		})
		assert.NoError(t, err)

		_, err = domain.NewResponse(domain.Fields{
			"type":    "dropdown",
			"id":      "pick",
			"options": []any{map[string]any{"value": "b"}},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestResponse_Set(t *testing.T) {
	t.Run("Kind Change Always Fails", func(t *testing.T) {
		r := numerical(t, domain.Fields{"max": 100})

		for _, overwrite := range []bool{true, false} {
			err := r.Set(overwrite, domain.Fields{"type": "shortText", "max": 5})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrKindChange)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}

		max, _ := r.Get("max")
		assert.Equal(t, 100, max)
		assert.Equal(t, domain.ResponseNumerical, r.Kind())
	})

	t.Run("Same Kind Is Ignored", func(t *testing.T) {
		r := numerical(t, nil)
		require.NoError(t, r.Set(true, domain.Fields{"type": domain.ResponseNumerical, "min": 1}))
		min, _ := r.Get("min")
		assert.Equal(t, 1, min)
	})

	t.Run("Overwrite", func(t *testing.T) {
		r := numerical(t, domain.Fields{"max": 100})
		require.NoError(t, r.Set(true, domain.Fields{"max": 50}))
		max, _ := r.Get("max")
		assert.Equal(t, 50, max)
	})

	t.Run("Fill Only Unset", func(t *testing.T) {
		r := numerical(t, domain.Fields{"max": 100})
		require.NoError(t, r.Set(false, domain.Fields{"max": 10, "min": 0}))

		max, _ := r.Get("max")
		min, _ := r.Get("min")
		assert.Equal(t, 100, max)
		assert.Equal(t, 0, min)
	})

	t.Run("Nil Unsets With Overwrite", func(t *testing.T) {
		r := numerical(t, domain.Fields{"max": 100})
		require.NoError(t, r.Set(true, domain.Fields{"max": nil}))
		_, ok := r.Get("max")
		assert.False(t, ok)
	})

	t.Run("Invalid Result Leaves Response Unchanged", func(t *testing.T) {
		r := numerical(t, domain.Fields{"max": 100})
		err := r.Set(true, domain.Fields{"max": 1, "options": []any{"x"}})
		require.ErrorIs(t, err, domain.ErrValidation)

		max, _ := r.Get("max")
		assert.Equal(t, 100, max)
		_, ok := r.Get("options")
		assert.False(t, ok)
	})

	t.Run("Required Id Cannot Be Removed", func(t *testing.T) {
		r := numerical(t, nil)
		err := r.Set(true, domain.Fields{"id": nil})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "id", ve.Field)
	})
}

func TestResponse_Clone(t *testing.T) {
	base, err := domain.NewResponse(domain.Fields{
		"type":    "checkbox",
		"id":      "colors",
		"prompt":  "Pick colors",
		"options": []any{"red", "green"},
	})
	require.NoError(t, err)

	t.Run("No Overrides Copies Everything", func(t *testing.T) {
		cp, err := base.Clone(nil)
		require.NoError(t, err)
		assert.Equal(t, base.Fields(), cp.Fields())
		assert.NotSame(t, base, cp)
	})

	t.Run("Clone Owns Nested Values", func(t *testing.T) {
		cp, err := base.Clone(domain.Fields{"id": "colors-2"})
		require.NoError(t, err)
		require.NoError(t, cp.Set(true, domain.Fields{"options": []any{"blue"}}))

		opts, _ := base.Get("options")
		assert.Equal(t, []any{"red", "green"}, opts)
		assert.Equal(t, "colors", base.ID())
		assert.Equal(t, "colors-2", cp.ID())
	})

	t.Run("Get Returns A Copy", func(t *testing.T) {
		opts, _ := base.Get("options")
		opts.([]any)[0] = "purple"

		again, _ := base.Get("options")
		assert.Equal(t, "red", again.([]any)[0])
	})

	t.Run("Kind Override Rejected", func(t *testing.T) {
		_, err := base.Clone(domain.Fields{"type": "radio"})
		assert.ErrorIs(t, err, domain.ErrKindChange)
	})
}

func TestResponse_MarshalJSON(t *testing.T) {
	r := numerical(t, domain.Fields{"max": 100, "location": "sidebar"})
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"numerical","id":"q1","max":100,"location":"sidebar"}`, string(data))
}

func TestKindIntrospection(t *testing.T) {
	kinds := domain.ResponseKinds()
	assert.Len(t, kinds, 11)
	assert.Contains(t, kinds, domain.ResponseMatrixCheckbox)

	sch, ok := domain.ResponseSchema(domain.ResponseLikert)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "numItems"}, sch.Required())

	_, ok = domain.ResponseSchema("nope")
	assert.False(t, ok)

	comps := domain.ComponentKinds()
	assert.Equal(t, []domain.ComponentKind{
		domain.ComponentImage,
		domain.ComponentMarkdown,
		domain.ComponentQuestionnaire,
		domain.ComponentReact,
		domain.ComponentVega,
		domain.ComponentWebsite,
	}, comps)

	md, ok := domain.ComponentSchema(domain.ComponentMarkdown)
	require.True(t, ok)
	assert.Equal(t, []string{"path"}, md.Required())
}

func TestDatumColumn(t *testing.T) {
	col, ok := domain.DatumColumn("datum:r1")
	assert.True(t, ok)
	assert.Equal(t, "r1", col)

	for _, v := range []any{"datum:", "datum:a-b", "xdatum:a", 3, nil} {
		_, ok := domain.DatumColumn(v)
		assert.False(t, ok, "%v", v)
	}
}
