package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/lmertens/annuaire"
	main "github.com/lmertens/annuaire/cmd/annuaire"
	"github.com/lmertens/annuaire/mock"
	"github.com/lmertens/annuaire/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichCmd_Run(t *testing.T) {
	t.Parallel()

	survey := &annuaire.Survey{ID: "survey-123", Name: "gaume-bio"}

	t.Run("reports enrichment counts", func(t *testing.T) {
		t.Parallel()

		places := &mock.PlaceService{
			FindPlacesFn: func(_ context.Context, _ annuaire.PlaceFilter) ([]*annuaire.Place, error) {
				return []*annuaire.Place{
					{ID: "id-1", Name: "Ferme du Hayon", Website: "https://hayon.be"},
				}, nil
			},
			UpdatePlaceFn: func(_ context.Context, id string, _ annuaire.PlaceUpdate) (*annuaire.Place, error) {
				return &annuaire.Place{ID: id}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Surveys: surveyServiceWith(survey),
			Places:  places,
			Enricher: &scrape.Enricher{
				Places: places,
				Fetcher: &mock.Fetcher{
					FetchFn: func(_ context.Context, _ string) (string, error) {
						return "<html></html>", nil
					},
				},
				Contacts: &mock.Enricher{
					EnrichFn: func(_ string, _ string) (*annuaire.Contact, error) {
						return &annuaire.Contact{Email: "info@hayon.be"}, nil
					},
				},
				Concurrency: 1,
			},
		}

		err := (&main.EnrichCmd{Name: "gaume-bio"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Fetching 1 websites")
		assert.Contains(t, stdout.String(), "Enriched 1 of 1 places")
	})

	t.Run("says so when nothing is left to enrich", func(t *testing.T) {
		t.Parallel()

		places := &mock.PlaceService{
			FindPlacesFn: func(_ context.Context, _ annuaire.PlaceFilter) ([]*annuaire.Place, error) {
				return []*annuaire.Place{{ID: "id-1", Name: "Sans site"}}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Surveys: surveyServiceWith(survey),
			Places:  places,
			Enricher: &scrape.Enricher{
				Places:   places,
				Fetcher:  &mock.Fetcher{},
				Contacts: &mock.Enricher{},
			},
		}

		err := (&main.EnrichCmd{Name: "gaume-bio"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No places with a website")
	})
}
