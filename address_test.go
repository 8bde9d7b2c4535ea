package annuaire_test

import (
	"testing"

	"github.com/lmertens/annuaire"
	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		address    string
		wantPostal string
		wantCity   string
	}{
		{
			name:       "belgian address with four digit postal code",
			address:    "Rue de Fer 12, 5000 Namur, Belgique",
			wantPostal: "5000",
			wantCity:   "Namur",
		},
		{
			name:       "french address with five digit postal code",
			address:    "3 Rue des Lilas, 59000 Lille, France",
			wantPostal: "59000",
			wantCity:   "Lille",
		},
		{
			name:       "multi word city",
			address:    "Chaussée de Mons 45, 1400 Braine-le-Comte, Belgique",
			wantPostal: "1400",
			wantCity:   "Braine-le-Comte",
		},
		{
			name:       "no postal segment",
			address:    "Grand Place, Bruxelles",
			wantPostal: "",
			wantCity:   "",
		},
		{
			name:       "empty address",
			address:    "",
			wantPostal: "",
			wantCity:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			postal, city := annuaire.ParseAddress(tt.address)
			assert.Equal(t, tt.wantPostal, postal)
			assert.Equal(t, tt.wantCity, city)
		})
	}
}

func TestBuildMapsURL(t *testing.T) {
	t.Parallel()

	got := annuaire.BuildMapsURL("ChIJabc123")
	assert.Equal(t, "https://www.google.com/maps/place/?q=place_id:ChIJabc123", got)
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "namur__belgium", annuaire.Slugify("Namur, Belgium"))
	assert.Equal(t, "la_louvière", annuaire.Slugify("La Louvière"))
	assert.Equal(t, "", annuaire.Slugify(""))
}
