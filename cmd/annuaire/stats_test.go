package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/lmertens/annuaire"
	main "github.com/lmertens/annuaire/cmd/annuaire"
	"github.com/lmertens/annuaire/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	survey := &annuaire.Survey{ID: "survey-123", Name: "gaume-bio"}

	t.Run("prints per-category and per-city counts", func(t *testing.T) {
		t.Parallel()

		places := &mock.PlaceService{
			FindPlacesFn: func(_ context.Context, _ annuaire.PlaceFilter) ([]*annuaire.Place, error) {
				return []*annuaire.Place{
					{Name: "Ferme du Hayon", Category: annuaire.CategoryProducer, City: "Meix-devant-Virton", Certified: true, Email: "info@hayon.be"},
					{Name: "Ferme des Sources", Category: annuaire.CategoryProducer, City: "Virton"},
					{Name: "Épicerie du Centre", Category: annuaire.CategoryShop, City: "Virton"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Surveys: surveyServiceWith(survey),
			Places:  places,
		}

		err := (&main.StatsCmd{Name: "gaume-bio"}).Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "gaume-bio: 3 places (1 certified, 1 with contact details)")
		assert.Contains(t, output, "producer")
		assert.Contains(t, output, "shop")
		assert.Contains(t, output, "Virton")
		assert.Contains(t, output, "Meix-devant-Virton")
		assert.NotContains(t, output, "market")
	})

	t.Run("handles empty surveys", func(t *testing.T) {
		t.Parallel()

		places := &mock.PlaceService{
			FindPlacesFn: func(_ context.Context, _ annuaire.PlaceFilter) ([]*annuaire.Place, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Surveys: surveyServiceWith(survey),
			Places:  places,
		}

		err := (&main.StatsCmd{Name: "gaume-bio"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No places found")
	})
}
