package csv_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	annuairecsv "github.com/lmertens/annuaire/csv"

	"github.com/lmertens/annuaire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlace() *annuaire.Place {
	return &annuaire.Place{
		SurveyID:       "s1",
		PlaceRef:       "ChIJ123",
		Category:       annuaire.CategoryProducer,
		Name:           "Ferme du Hayon",
		Address:        "Rue du Moulin 1, 6769 Meix-devant-Virton, Belgique",
		City:           "Meix-devant-Virton",
		PostalCode:     "6769",
		Rating:         4.8,
		Reviews:        37,
		Types:          []string{"farm", "food"},
		MapsURL:        "https://www.google.com/maps/place/?q=place_id:ChIJ123",
		MatchedKeyword: "ferme",
	}
}

func TestExporter_SaveCommit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data", "producteurs.csv")
	e := annuairecsv.NewExporter(path, false)
	ctx := context.Background()

	require.NoError(t, e.Save(ctx, testPlace()))
	require.NoError(t, e.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "name,address,city,postal_code,rating,reviews,types,maps_url,matched_keyword", lines[0])
	assert.Contains(t, lines[1], "Ferme du Hayon")
	assert.Contains(t, lines[1], "4.8")
	assert.Contains(t, lines[1], "farm|food")
	assert.Contains(t, lines[1], "ferme")

	// Temp file is gone after commit.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestExporter_FullColumns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "places.csv")
	e := annuairecsv.NewExporter(path, true)

	p := testPlace()
	p.Website = "https://fermeduhayon.be"
	p.Email = "info@fermeduhayon.be"
	p.Certified = true

	require.NoError(t, e.Save(context.Background(), p))
	require.NoError(t, e.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), "place_ref,category,website,email,phone,certified")
	assert.Contains(t, string(data), "ChIJ123,producer,https://fermeduhayon.be,info@fermeduhayon.be,,true")
}

func TestExporter_Abort(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "places.csv")
	e := annuairecsv.NewExporter(path, false)

	require.NoError(t, e.Save(context.Background(), testPlace()))
	require.NoError(t, e.Abort())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "final file must not exist after abort")
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file must be removed by abort")
}

func TestExporter_AbortWithoutSave(t *testing.T) {
	t.Parallel()

	e := annuairecsv.NewExporter(filepath.Join(t.TempDir(), "places.csv"), false)
	assert.NoError(t, e.Abort())
}

func TestExporter_CommitWithoutRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "places.csv")
	e := annuairecsv.NewExporter(path, false)

	require.NoError(t, e.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,address,city,postal_code,rating,reviews,types,maps_url,matched_keyword", strings.TrimSpace(string(data)))
}

func TestExporter_OverwritesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "places.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	e := annuairecsv.NewExporter(path, false)
	require.NoError(t, e.Save(context.Background(), testPlace()))
	require.NoError(t, e.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "Ferme du Hayon")
}
