package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/lmertens/annuaire"
	main "github.com/lmertens/annuaire/cmd/annuaire"
	"github.com/lmertens/annuaire/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	survey := &annuaire.Survey{ID: "survey-123", Name: "gaume-bio"}

	t.Run("writes places to CSV with legacy columns", func(t *testing.T) {
		t.Parallel()

		places := &mock.PlaceService{
			FindPlacesFn: func(_ context.Context, _ annuaire.PlaceFilter) ([]*annuaire.Place, error) {
				return []*annuaire.Place{{
					Name:           "Ferme du Hayon",
					Address:        "Rue du Hayon 1, 6769 Meix-devant-Virton, Belgique",
					City:           "Meix-devant-Virton",
					PostalCode:     "6769",
					Rating:         4.9,
					Reviews:        27,
					Types:          []string{"farm", "food"},
					MapsURL:        "https://www.google.com/maps/place/?q=place_id:ref-1",
					MatchedKeyword: "ferme",
				}}, nil
			},
		}

		out := filepath.Join(t.TempDir(), "export.csv")
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Surveys: surveyServiceWith(survey),
			Places:  places,
		}

		err := (&main.ExportCmd{Name: "gaume-bio", Output: out}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported 1 place")

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		content := string(data)
		assert.Contains(t, content, "name,address,city,postal_code,rating,reviews,types,maps_url,matched_keyword")
		assert.Contains(t, content, "Ferme du Hayon")
		assert.Contains(t, content, "farm|food")

		_, err = os.Stat(out + ".tmp")
		assert.True(t, os.IsNotExist(err), "temp file should be gone after commit")
	})

	t.Run("empty survey produces a header-only file", func(t *testing.T) {
		t.Parallel()

		places := &mock.PlaceService{
			FindPlacesFn: func(_ context.Context, _ annuaire.PlaceFilter) ([]*annuaire.Place, error) {
				return nil, nil
			},
		}

		out := filepath.Join(t.TempDir(), "empty.csv")
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Surveys: surveyServiceWith(survey),
			Places:  places,
		}

		err := (&main.ExportCmd{Name: "gaume-bio", Output: out}).Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "name,address,city,postal_code,rating,reviews,types,maps_url,matched_keyword\n", string(data))
	})

	t.Run("full adds the extended columns", func(t *testing.T) {
		t.Parallel()

		places := &mock.PlaceService{
			FindPlacesFn: func(_ context.Context, _ annuaire.PlaceFilter) ([]*annuaire.Place, error) {
				return []*annuaire.Place{{
					Name:      "Ferme du Hayon",
					PlaceRef:  "ref-1",
					Category:  annuaire.CategoryProducer,
					Email:     "info@hayon.be",
					Certified: true,
				}}, nil
			},
		}

		out := filepath.Join(t.TempDir(), "full.csv")
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Surveys: surveyServiceWith(survey),
			Places:  places,
		}

		err := (&main.ExportCmd{Name: "gaume-bio", Output: out, Full: true}).Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		content := string(data)
		assert.Contains(t, content, "place_ref,category,website,email,phone,certified")
		assert.Contains(t, content, "info@hayon.be")
		assert.Contains(t, content, "true")
	})
}
