package annuaire

import (
	"context"
	"strings"
	"time"
)

// Category classifies a place into one of the catalog's top-level groups.
type Category string

// Category constants for Place.Category.
const (
	CategoryProducer Category = "producer"
	CategoryShop     Category = "shop"
	CategoryMarket   Category = "market"
	CategoryUnknown  Category = "unknown"
)

// Valid returns true if c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryProducer, CategoryShop, CategoryMarket, CategoryUnknown:
		return true
	}
	return false
}

// Place represents one catalog entry: a producer, shop or market.
type Place struct {
	ID       string `json:"id"`
	SurveyID string `json:"surveyId"`

	// PlaceRef is the upstream place identifier (Google place_id).
	// Deduplication is keyed on it.
	PlaceRef string `json:"placeRef"`

	Category   Category `json:"category"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	PostalCode string   `json:"postalCode"`
	Rating     float64  `json:"rating"`
	Reviews    int      `json:"reviews"`

	// Types holds the upstream place types (e.g. "farm", "grocery_or_supermarket").
	Types []string `json:"types"`

	MapsURL        string `json:"mapsUrl"`
	MatchedKeyword string `json:"matchedKeyword"`

	// QueryCity is the city the originating search query targeted. It can
	// differ from City when results spill over municipal boundaries.
	QueryCity string `json:"queryCity"`

	Website   string `json:"website"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Certified bool   `json:"certified"`

	// ContentHash fingerprints the identity fields so re-scrapes can detect
	// upstream changes without comparing field by field.
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the place contains invalid fields.
func (p *Place) Validate() error {
	if p.SurveyID == "" {
		return Errorf(EINVALID, "place survey ID required")
	}
	if p.PlaceRef == "" {
		return Errorf(EINVALID, "place reference required")
	}
	if p.Name == "" {
		return Errorf(EINVALID, "place name required")
	}
	if p.Category != "" && !p.Category.Valid() {
		return Errorf(EINVALID, "unknown category %q", p.Category)
	}
	return nil
}

// JoinTypes renders the type list in the pipe-joined form used by the CSV
// export (e.g. "farm|food|point_of_interest").
func JoinTypes(types []string) string {
	return strings.Join(types, "|")
}

// SplitTypes parses a pipe-joined type list. Empty input yields nil.
func SplitTypes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}

// PlaceService represents a service for managing catalog places.
type PlaceService interface {
	// CreatePlace creates a new place.
	// Returns ECONFLICT if the survey already has a place with the same PlaceRef.
	CreatePlace(ctx context.Context, place *Place) error

	// FindPlaceByID retrieves a place by ID.
	// Returns ENOTFOUND if the place does not exist.
	FindPlaceByID(ctx context.Context, id string) (*Place, error)

	// FindPlaces retrieves places matching the filter, ordered by name.
	FindPlaces(ctx context.Context, filter PlaceFilter) ([]*Place, error)

	// UpdatePlace updates an existing place.
	// Returns ENOTFOUND if the place does not exist.
	UpdatePlace(ctx context.Context, id string, upd PlaceUpdate) (*Place, error)

	// DeletePlacesBySurvey removes all places for a survey.
	DeletePlacesBySurvey(ctx context.Context, surveyID string) error
}

// PlaceFilter represents a filter for FindPlaces.
type PlaceFilter struct {
	ID        *string   `json:"id"`
	SurveyID  *string   `json:"surveyId"`
	PlaceRef  *string   `json:"placeRef"`
	Category  *Category `json:"category"`
	City      *string   `json:"city"`
	Certified *bool     `json:"certified"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PlaceUpdate represents fields that can be updated on a place.
type PlaceUpdate struct {
	Category       *Category `json:"category"`
	Name           *string   `json:"name"`
	Address        *string   `json:"address"`
	City           *string   `json:"city"`
	PostalCode     *string   `json:"postalCode"`
	Rating         *float64  `json:"rating"`
	Reviews        *int      `json:"reviews"`
	Types          []string  `json:"types"`
	MatchedKeyword *string   `json:"matchedKeyword"`
	Website        *string   `json:"website"`
	Email          *string   `json:"email"`
	Phone          *string   `json:"phone"`
	Certified      *bool     `json:"certified"`
	ContentHash    *string   `json:"contentHash"`
}

// PlaceWriter writes places to an export destination with atomic semantics.
// Save stages a place; Commit makes the export visible; Abort discards
// staged rows.
type PlaceWriter interface {
	Save(ctx context.Context, place *Place) error
	Commit() error
	Abort() error
}
