package gemini_test

import (
	"context"
	"testing"

	"github.com/lmertens/annuaire"
	"github.com/lmertens/annuaire/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify_EmptyInput(t *testing.T) {
	t.Parallel()

	c := gemini.NewClassifier(nil)
	_, err := c.Classify(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, annuaire.EINVALID, annuaire.ErrorCode(err))
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt([]*annuaire.Place{
		{
			ID:      "id-1",
			Name:    "Le Panier Vert",
			Address: "Rue Haute 3, 1000 Bruxelles",
			Types:   []string{"store", "food"},
		},
		{
			ID:   "id-2",
			Name: "Marché du Samedi",
		},
	})

	assert.Contains(t, prompt, "<index>1</index>")
	assert.Contains(t, prompt, "<name>Le Panier Vert</name>")
	assert.Contains(t, prompt, "<address>Rue Haute 3, 1000 Bruxelles</address>")
	assert.Contains(t, prompt, "<types>store|food</types>")
	assert.Contains(t, prompt, "<index>2</index>")
	// Empty optional fields are omitted entirely.
	assert.NotContains(t, prompt, "<address></address>")
	assert.NotContains(t, prompt, "<types></types>")
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	places := []*annuaire.Place{
		{ID: "id-1", Name: "Le Panier Vert"},
		{ID: "id-2", Name: "Marché du Samedi"},
		{ID: "id-3", Name: "Société Anonyme"},
	}

	t.Run("maps numbered answers to place IDs", func(t *testing.T) {
		t.Parallel()

		got := gemini.ParseResponse("1: shop\n2: market\n3: unknown\n", places)
		assert.Equal(t, map[string]annuaire.Category{
			"id-1": annuaire.CategoryShop,
			"id-2": annuaire.CategoryMarket,
		}, got)
	})

	t.Run("ignores noise and bad indexes", func(t *testing.T) {
		t.Parallel()

		got := gemini.ParseResponse("Here are the results:\n1: shop\n9: market\nnope\n2: warehouse\n", places)
		assert.Equal(t, map[string]annuaire.Category{
			"id-1": annuaire.CategoryShop,
		}, got)
	})

	t.Run("empty response yields empty map", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, gemini.ParseResponse("", places))
	})
}
