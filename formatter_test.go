package annuaire_test

import (
	"testing"

	"github.com/lmertens/annuaire"
	"github.com/stretchr/testify/assert"
)

func TestFormatPlaces(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, annuaire.FormatPlaces(nil))
	})

	t.Run("formats name, category, address and types", func(t *testing.T) {
		t.Parallel()

		got := annuaire.FormatPlaces([]*annuaire.Place{
			{
				Name:     "Ferme du Hayon",
				Category: annuaire.CategoryProducer,
				Address:  "Rue du Moulin 1, 6769 Meix-devant-Virton",
				Types:    []string{"farm", "food"},
			},
			{
				Name:     "Marché de Namur",
				Category: annuaire.CategoryUnknown,
			},
		})

		assert.Contains(t, got, "## Ferme du Hayon (producer)")
		assert.Contains(t, got, "Address: Rue du Moulin 1, 6769 Meix-devant-Virton")
		assert.Contains(t, got, "Types: farm|food")
		// Unknown category is not rendered as a suffix.
		assert.Contains(t, got, "## Marché de Namur")
		assert.NotContains(t, got, "(unknown)")
	})
}

func TestPlace_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *annuaire.Place {
		return &annuaire.Place{
			SurveyID: "s1",
			PlaceRef: "ChIJ123",
			Name:     "Ferme du Hayon",
		}
	}

	t.Run("valid place", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing survey ID", func(t *testing.T) {
		t.Parallel()
		p := valid()
		p.SurveyID = ""
		assert.Equal(t, annuaire.EINVALID, annuaire.ErrorCode(p.Validate()))
	})

	t.Run("missing place ref", func(t *testing.T) {
		t.Parallel()
		p := valid()
		p.PlaceRef = ""
		assert.Equal(t, annuaire.EINVALID, annuaire.ErrorCode(p.Validate()))
	})

	t.Run("bad category", func(t *testing.T) {
		t.Parallel()
		p := valid()
		p.Category = "warehouse"
		assert.Equal(t, annuaire.EINVALID, annuaire.ErrorCode(p.Validate()))
	})
}

func TestSurvey_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid survey", func(t *testing.T) {
		t.Parallel()
		s := &annuaire.Survey{Name: "wallonie", Keywords: "magasin bio\nmarché fermier"}
		assert.NoError(t, s.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		s := &annuaire.Survey{Keywords: "magasin bio"}
		assert.Equal(t, annuaire.EINVALID, annuaire.ErrorCode(s.Validate()))
	})

	t.Run("no keywords", func(t *testing.T) {
		t.Parallel()
		s := &annuaire.Survey{Name: "wallonie", Keywords: "\n  \n"}
		assert.Equal(t, annuaire.EINVALID, annuaire.ErrorCode(s.Validate()))
	})
}

func TestSurvey_Lists(t *testing.T) {
	t.Parallel()

	s := &annuaire.Survey{
		Cities:   "Namur\n\n  Liège  \n",
		Keywords: "magasin bio",
	}
	assert.Equal(t, []string{"Namur", "Liège"}, s.CityList())
	assert.Equal(t, []string{"magasin bio"}, s.KeywordList())
}
